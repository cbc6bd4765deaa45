// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package hashmap

import "github.com/aristanetworks/concurrent-hashmap/monotime"

// resize implements spec.md §4.7. The goroutine that flips resizing
// false->true (via Map.tryBecomeCoordinator, called by its caller) runs
// this as the coordinator; every other goroutine that observes resizing
// runs this as a helper. Both paths converge on the same cooperative
// rehash and commit.
//
// area.busy is cleared until the coordinator's quiescence barrier has
// passed: a goroutine helping or coordinating a resize is, by definition,
// not inside an ordinary critical section, and the coordinator's quiescence
// check depends on that. It is set again before the rehash and stays set
// through the commit and on return.
func (m *Map) resize(area *Area, isCoordinator bool) {
	if m.resizeFail.Load() {
		if isCoordinator {
			// We already won the coordinator CAS in tryBecomeCoordinator;
			// release that claim instead of leaving resizing stuck true
			// with no one left to ever broadcast the conds waiting on it.
			m.resizing.Store(false)
		}
		return
	}

	area.busy.Store(false)

	var oldT, newT *table
	if isCoordinator {
		oldT = m.load()
		newN := oldT.n * 2
		newT = m.allocTable(newN)
		if newT == nil {
			m.resizeFail.Store(true)
			m.resizing.Store(false)

			m.resizeMu.Lock()
			m.mainReadyCond.Broadcast()
			m.resizeMu.Unlock()

			m.logf("resize: allocation of %d buckets failed, giving up on future resizes", newN)
			area.busy.Store(true)
			return
		}
		m.newTbl.Store(newT)
		m.resizeIdx.Store(0)

		m.resizeMu.Lock()
		m.threadsResizing.Add(1)
		for {
			ready := true
			m.areas.forEach(func(a *Area) {
				if a.busy.Load() {
					ready = false
				}
			})
			if ready {
				break
			}
			m.otherReadyCond.Wait()
		}
		m.mainThreadReady = true
		m.mainReadyCond.Broadcast()
		m.resizeMu.Unlock()

		m.logf("resize: coordinating growth from %d to %d buckets", oldT.n, newN)
	} else {
		m.resizeMu.Lock()
		if m.resizing.Load() {
			m.otherReadyCond.Signal()
			m.threadsResizing.Add(1)
		} else {
			// The resize this goroutine meant to help with already
			// finished (or failed) before it took the mutex.
			area.busy.Store(true)
			m.resizeMu.Unlock()
			return
		}

		for !m.mainThreadReady && m.resizing.Load() {
			m.mainReadyCond.Wait()
		}
		if !m.resizing.Load() {
			m.threadsResizing.Add(-1)
			area.busy.Store(true)
			m.resizeMu.Unlock()
			return
		}

		oldT = m.load()
		newT = m.newTbl.Load()
		m.resizeMu.Unlock()
	}

	area.busy.Store(true)

	start := monotime.Now()
	m.rehashChunks(oldT, newT)

	m.resizeMu.Lock()
	if m.threadsResizing.Add(-1) == 0 {
		m.tbl.Store(newT)
		m.newTbl.Store(nil)
		m.mainThreadReady = false
		m.stopCond.Broadcast()
		m.resizing.Store(false)
		if m.metrics != nil {
			m.metrics.ObserveResize(monotime.Since(start))
		}
		m.logf("resize: committed %d buckets", newT.n)
	} else {
		m.stopCond.Wait()
	}
	m.resizeMu.Unlock()
}

// rehashChunks implements spec.md §4.7 step 6: the old table is partitioned
// into worker-sized chunks by atomically advancing resizeIdx; each
// participant claims and rehashes a chunk until none remain. Per-bucket
// locking makes this independent across chunks and across participants.
func (m *Map) rehashChunks(oldT, newT *table) {
	chunk := oldT.n / uint32(m.numWorkers)
	if chunk == 0 {
		chunk = 1
	}

	for {
		idx := m.resizeIdx.Add(chunk) - chunk
		if idx >= oldT.n {
			return
		}
		n := chunk
		if idx+n > oldT.n {
			n = oldT.n - idx
		}

		for i := uint32(0); i < n; i++ {
			old := &oldT.buckets[idx+i]
			if old.protected.kv == nil {
				continue
			}
			kh := keyHandle{key: old.protected.kv.key, hash: old.protected.hash}
			res := find(newT.buckets, newT.n, kh)
			dest := cfi(newT, res.idx, bucketProtected{
				hash: old.protected.hash,
				psl:  res.psl,
				kv:   old.protected.kv,
			})
			dest.unlock()
		}
	}
}

// tryBecomeCoordinator performs the test-and-set on resizing: the caller
// that flips it false->true coordinates; everyone else helps.
func (m *Map) tryBecomeCoordinator() bool {
	return m.resizing.CompareAndSwap(false, true)
}

func (m *Map) logf(format string, args ...any) {
	if m.log == nil {
		return
	}
	m.log.Infof(format, args...)
}
