// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package hashmap

// CAS is the container's single entry point, implementing spec.md §4.5. It
// orchestrates Get, Set, and Delete atop find, cfi (insertion), and
// backwardShiftDelete, helping drive any in-progress resize to completion
// before acting.
//
// area must have been claimed with Map.AcquireArea by the calling
// goroutine and not yet released. expected must be non-nil: on entry it
// names the value the caller believes is current (nil means "no entry
// expected" for Set, or is ignored for Get); on a ResultAgain return it has
// been overwritten with the value actually observed.
//
// newValue is the value to install on a successful Set, or, for Delete, a
// non-nil sentinel distinguishing "delete unconditionally" (newValue != nil)
// from "delete only if expected matches" (newValue == nil), per spec.md
// §4.5's documented, intentionally asymmetric Delete contract.
func (m *Map) CAS(area *Area, key []byte, expected *any, newValue any, opt Option, cbArg any) Result {
	if area == nil {
		panic(errNilArea)
	}
	if expected == nil {
		panic(errNilExpected)
	}

	kh := newKeyHandle(m.hashFn, key)

	area.busy.Store(true)
	if m.resizing.Load() {
		m.resize(area, false)
	}

	for {
		t := m.load()
		res := find(t.buckets, t.n, kh)
		if m.metrics != nil {
			m.metrics.ObserveProbeLength(res.psl)
		}

		if res.found {
			return m.casHit(area, t, res, expected, newValue, opt, cbArg)
		}

		if opt != OptionSet {
			res.bucket.unlock()
			m.notRunning(area)
			return ResultError
		}

		if area.reserved == 0 {
			granted, resizeNeeded := m.reserve(area, m.minReserve)
			if resizeNeeded {
				res.bucket.unlock()
				coordinator := m.tryBecomeCoordinator()
				m.resize(area, coordinator)
				continue
			}
			if granted == 0 {
				res.bucket.unlock()
				m.notRunning(area)
				return ResultError
			}
		}

		keyCopy := append([]byte(nil), key...)
		area.reserved--
		dest := cfi(t, res.idx, bucketProtected{hash: kh.hash, psl: res.psl, kv: &kv{value: newValue, key: keyCopy}})
		dest.unlock()
		m.notRunning(area)
		if m.metrics != nil {
			m.metrics.SetOccupancy(m.occupied.Load())
		}
		return ResultSuccess
	}
}

// casHit handles the "entry exists" half of CAS, described in spec.md §4.5.
func (m *Map) casHit(area *Area, t *table, res findResult, expected *any, newValue any, opt Option, cbArg any) Result {
	cur := res.bucket.protected.kv.value

	switch opt {
	case OptionDelete:
		if newValue == nil && !valuesEqual(*expected, cur) {
			m.invoke(cur, ReasonAcquire, cbArg)
			*expected = cur
			res.bucket.unlock()
			m.notRunning(area)
			return ResultAgain
		}

		m.invoke(cur, ReasonDropDelete, cbArg)
		res.bucket.protected.kv = nil
		backwardShiftDelete(t, res.idx)
		area.reserved++
		m.notRunning(area)
		if m.metrics != nil {
			m.metrics.SetOccupancy(m.occupied.Load())
		}
		return ResultSuccess

	case OptionGet:
		m.invoke(cur, ReasonAcquire, cbArg)
		*expected = cur
		res.bucket.unlock()
		m.notRunning(area)
		return ResultAgain

	default: // OptionSet
		if !valuesEqual(*expected, cur) {
			m.invoke(cur, ReasonAcquire, cbArg)
			*expected = cur
			res.bucket.unlock()
			m.notRunning(area)
			return ResultAgain
		}

		m.invoke(cur, ReasonDropSet, cbArg)
		res.bucket.protected.kv.value = newValue
		res.bucket.unlock()
		m.notRunning(area)
		return ResultSuccess
	}
}

func (m *Map) invoke(value any, reason Reason, arg any) {
	if m.callback != nil {
		m.callback(value, reason, arg)
	}
}

// notRunning implements spec.md §4.5's critical-section exit: clear busy,
// and if a resize is underway, nudge the coordinator in case it is the last
// thing it was waiting on.
func (m *Map) notRunning(area *Area) {
	area.busy.Store(false)
	if m.resizing.Load() {
		m.resizeMu.Lock()
		m.otherReadyCond.Signal()
		m.resizeMu.Unlock()
	}
}

func valuesEqual(a, b any) bool {
	return a == b
}
