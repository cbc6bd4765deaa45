// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package hashmap

import (
	"bytes"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// spinBudget is how many times lock busy-spins (yielding the P, the closest
// Go gets to a CPU pause without cgo) before it falls back to a bounded
// exponential backoff sleep. A healthy bucket lock is held for a handful of
// field reads/writes, so most contention resolves well within the budget.
const spinBudget = 64

// kv is the heap-allocated payload a non-empty bucket points to. It is
// allocated on insert and freed on delete, overwrite, or Map teardown.
type kv struct {
	value any
	key   []byte
}

// bucketProtected is guarded by the owning bucket's lock.
type bucketProtected struct {
	hash uint32
	psl  uint32
	kv   *kv // nil means the bucket is empty
}

// bucket is one slot of the open-addressed table.
type bucket struct {
	locked    atomic.Bool
	protected bucketProtected
}

// lock acquires the bucket's spinlock, via a bounded test-and-set spin and,
// under sustained contention, an exponential backoff sleep. An implementer
// may substitute a parking-lot-style wait here once contention exceeds a
// threshold; the contract bucket.lock offers is exclusion, not a particular
// spin algorithm.
func (b *bucket) lock() {
	var bo *backoff.ExponentialBackOff
	for i := 0; !b.locked.CompareAndSwap(false, true); i++ {
		if i < spinBudget {
			runtime.Gosched()
			continue
		}
		if bo == nil {
			bo = newSpinlockBackoff()
		}
		time.Sleep(bo.NextBackOff())
	}
}

// tryLock attempts to acquire the spinlock without blocking.
func (b *bucket) tryLock() bool {
	return b.locked.CompareAndSwap(false, true)
}

func (b *bucket) unlock() {
	b.locked.Store(false)
}

func newSpinlockBackoff() *backoff.ExponentialBackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = time.Microsecond
	bo.MaxInterval = time.Millisecond
	bo.Multiplier = 1.5
	bo.RandomizationFactor = 0.25
	bo.MaxElapsedTime = 0
	return bo
}

func keysEqual(a, b []byte) bool {
	return bytes.Equal(a, b)
}
