// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package hashmap

// reserve implements spec.md §4.4: it atomically adds n to the Map's
// occupied count, clamped to the table's physical capacity, and credits
// whatever was actually granted to area.reserved. If granting all n would
// cross the resize threshold, it grants nothing and reports that a resize
// is needed; a smaller partial grant is never made in that case.
//
// Once resizeFail is set (a prior resize's allocation failed), the
// threshold check is skipped so inserts keep succeeding, clamped only by
// the table's physical capacity, matching spec.md §7's allocation-failure
// error handling.
func (m *Map) reserve(area *Area, n uint32) (granted uint32, resizeNeeded bool) {
	if n == 0 {
		return 0, false
	}

	nBuckets := m.load().n
	for {
		capture := m.occupied.Load()
		if !m.resizeFail.Load() &&
			uint64(capture)+uint64(n) > uint64(float64(nBuckets)*m.resizePercentage) {
			return 0, true
		}

		var update uint32
		if capture >= nBuckets {
			update = capture
		} else if n > nBuckets-capture {
			update = nBuckets
		} else {
			update = capture + n
		}

		if m.occupied.CompareAndSwap(capture, update) {
			granted = update - capture
			area.reserved += granted
			return granted, false
		}
	}
}
