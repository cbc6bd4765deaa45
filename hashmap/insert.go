// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package hashmap

// cfi is "cascading forward insertion": the Robin Hood insertion described
// in spec.md §4.6. start (already locked, found empty or outranked by a
// richer entry via find) receives interior; if that displaces an occupant,
// the displaced record is propagated forward, stealing any slot whose
// occupant has a strictly smaller psl, until it lands in an empty slot.
//
// cfi returns the bucket it finally wrote into, still locked; the caller
// must unlock it.
func cfi(t *table, startIdx uint32, interior bucketProtected) *bucket {
	idx := startIdx
	cur := &t.buckets[idx]

	displaced := cur.protected
	cur.protected = interior
	if displaced.kv == nil {
		return cur
	}
	interior = displaced

	for {
		prev := cur
		idx = (idx + 1) & (t.n - 1)
		cur = &t.buckets[idx]
		cur.lock()
		prev.unlock()

		interior.psl++

		if cur.protected.kv == nil {
			cur.protected = interior
			return cur
		}
		if cur.protected.psl < interior.psl {
			swap := cur.protected
			cur.protected = interior
			interior = swap
		}
	}
}

// backwardShiftDelete fills the hole left at idx (whose bucket is already
// locked and has had its kv cleared) by walking forward and copying each
// successor back while it has nonzero psl, decrementing as it goes. It
// unlocks every bucket it touches, including idx's, before returning.
func backwardShiftDelete(t *table, idx uint32) {
	cur := &t.buckets[idx]
	for {
		nextIdx := (idx + 1) & (t.n - 1)
		next := &t.buckets[nextIdx]
		next.lock()

		if next.protected.kv == nil || next.protected.psl == 0 {
			cur.unlock()
			next.unlock()
			return
		}

		cur.protected = next.protected
		cur.protected.psl--
		next.protected.kv = nil
		cur.unlock()

		cur = next
		idx = nextIdx
	}
}
