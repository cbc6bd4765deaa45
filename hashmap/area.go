// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package hashmap

import (
	"context"
	"sync/atomic"

	sem "github.com/aristanetworks/concurrent-hashmap/sync/semaphore"
)

// Area is the per-goroutine mutator context named in spec.md §4.3: a
// reservation credit against the Map's occupancy threshold, and a busy flag
// the resize coordinator polls to detect quiescence. Exactly one goroutine
// may hold a given Area at a time; claim it with Map.AcquireArea and give it
// back with Map.ReleaseArea.
type Area struct {
	reserved uint32
	busy     atomic.Bool
}

// areaPool is the "ifc" (indexed free-chain) spec.md §4.3 names as a
// trivial, out-of-scope subordinate component: a fixed-size set of Areas,
// one per worker, handed out and returned. The teacher's semaphore.Weighted
// bounds concurrent claims to NumWorkers, so a caller that forgets to
// release an Area blocks the next claim instead of silently growing an
// unbounded pool.
type areaPool struct {
	areas []Area
	free  chan *Area
	sem   *sem.Weighted
}

func newAreaPool(n int) *areaPool {
	p := &areaPool{
		areas: make([]Area, n),
		free:  make(chan *Area, n),
		sem:   sem.NewWeighted(int64(n)),
	}
	for i := range p.areas {
		p.free <- &p.areas[i]
	}
	return p
}

// acquire blocks until an Area is free, then returns it.
func (p *areaPool) acquire(ctx context.Context) (*Area, error) {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	return <-p.free, nil
}

// release returns a to the pool. a must have been produced by acquire on
// the same pool and must carry no outstanding reservation.
func (p *areaPool) release(a *Area) {
	p.free <- a
	p.sem.Release(1)
}

// outstanding reports how many Areas are currently claimed.
func (p *areaPool) outstanding() int64 {
	return int64(len(p.areas)) - p.sem.Available()
}

// forEach calls fn for every Area in the pool, claimed or not. Used by the
// resize coordinator to poll busy flags; it never blocks on the semaphore.
func (p *areaPool) forEach(fn func(*Area)) {
	for i := range p.areas {
		fn(&p.areas[i])
	}
}
