// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package hashmap

import (
	"context"
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"github.com/aristanetworks/concurrent-hashmap/hashfn"
	"github.com/aristanetworks/concurrent-hashmap/logger"
	"github.com/aristanetworks/concurrent-hashmap/metrics"
	"golang.org/x/sync/errgroup"
)

const (
	defaultInitialSizeLog2  = 4
	defaultResizePercentage = 0.94
	defaultMinReserve       = 24
)

// Map is a process-local, concurrent, byte-keyed associative container. See
// the package doc for the algorithm; see Config for tuning. The zero value
// is not usable; construct one with New.
type Map struct {
	rc atomic.Int64

	hashFn     HashFunc
	callback   Callback
	log        logger.Logger
	metrics    *metrics.Recorder
	numWorkers int

	resizePercentage float64
	minReserve       uint32

	tbl      atomic.Pointer[table]
	occupied atomic.Uint32

	areas *areaPool

	// resize coordination, guarded by resizeMu except where noted.
	resizing        atomic.Bool
	resizeFail      atomic.Bool
	threadsResizing atomic.Int32
	newTbl          atomic.Pointer[table]
	resizeIdx       atomic.Uint32

	resizeMu        sync.Mutex
	mainThreadReady bool
	mainReadyCond   *sync.Cond
	otherReadyCond  *sync.Cond
	stopCond        *sync.Cond

	// allocTable is overridable in tests to simulate allocation failure,
	// since Go's make([]bucket, n) has no error return the way the source
	// container's malloc does.
	allocTable func(uint32) *table
}

// New constructs a Map per cfg. NumWorkers must be >= 1; all other fields
// have the defaults documented on Config.
func New(cfg Config) (*Map, error) {
	if cfg.NumWorkers < 1 {
		panic(errZeroWorkers)
	}
	if cfg.ResizePercentage == 0 {
		cfg.ResizePercentage = defaultResizePercentage
	}
	if cfg.ResizePercentage <= 0 || cfg.ResizePercentage > 1 {
		panic(errBadResizePct)
	}
	if cfg.InitialSizeLog2 == 0 {
		cfg.InitialSizeLog2 = defaultInitialSizeLog2
	}
	if cfg.MinReserve == 0 {
		cfg.MinReserve = defaultMinReserve
	}
	if cfg.Hash == nil {
		cfg.Hash = hashfn.XXHash()
	}

	// spec.md §4.8: round up to a power of two that is at least
	// max(n_threads+1, ceil(MinReserve/ResizePercentage)), matching
	// hashmap_create's n_buckets floor in hashmap.h.
	minRequired := uint64(cfg.NumWorkers) + 1
	if reserveFloor := uint64(math.Ceil(float64(cfg.MinReserve) / cfg.ResizePercentage)); reserveFloor > minRequired {
		minRequired = reserveFloor
	}

	n := uint32(1) << cfg.InitialSizeLog2
	for uint64(n) < minRequired {
		n *= 2
	}

	m := &Map{
		hashFn:           cfg.Hash,
		callback:         cfg.Callback,
		log:              cfg.Logger,
		metrics:          cfg.Metrics,
		numWorkers:       cfg.NumWorkers,
		resizePercentage: cfg.ResizePercentage,
		minReserve:       cfg.MinReserve,
		areas:            newAreaPool(cfg.NumWorkers),
		allocTable:       newTable,
	}
	m.rc.Store(1)
	m.tbl.Store(newTable(n))
	m.mainReadyCond = sync.NewCond(&m.resizeMu)
	m.otherReadyCond = sync.NewCond(&m.resizeMu)
	m.stopCond = sync.NewCond(&m.resizeMu)

	if m.metrics != nil {
		m.metrics.SetOccupancy(0)
	}
	return m, nil
}

// Ref increments the Map's reference count and returns the same Map,
// mirroring the source container's hashmap_copy_ref: callers that hand a
// Map to more than one owner should Ref on handout and Close on release.
func (m *Map) Ref() *Map {
	m.rc.Add(1)
	return m
}

// Close releases a reference. When the last reference is released, every
// remaining entry is dropped via ReasonDropDestroy and the Map's resources
// are freed.
//
// Close panics if any Area is still claimed: tearing down the table out
// from under a goroutine mid-CAS is a caller bug, not a condition Close can
// recover from.
func (m *Map) Close() {
	if m.rc.Add(-1) > 0 {
		return
	}
	if m.areas.outstanding() != 0 {
		panic(errCloseWithAreasOut)
	}

	t := m.load()
	for i := range t.buckets {
		p := &t.buckets[i].protected
		if p.kv == nil {
			continue
		}
		m.invoke(p.kv.value, ReasonDropDestroy, nil)
		p.kv = nil
	}
}

// AcquireArea blocks until an Area is available and returns it. The
// returned Area must be passed to every CAS call the caller makes until it
// is returned with ReleaseArea.
func (m *Map) AcquireArea(ctx context.Context) (*Area, error) {
	area, err := m.areas.acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("hashmap: AcquireArea: %w", err)
	}
	area.busy.Store(true)
	return area, nil
}

// ReleaseArea flushes any of area's unspent reservation credit back into
// occupied and returns area to the pool, per spec.md §4.3
// (hashmap_area_flush in hashmap.h subtracts the same credit on release).
func (m *Map) ReleaseArea(area *Area) {
	if area.reserved != 0 {
		m.occupied.Add(uint32(-int32(area.reserved)))
		area.reserved = 0
	}
	area.busy.Store(false)
	m.areas.release(area)
}

// Get is CAS(area, key, OptionGet): a successful lookup reports
// ResultAgain with the value in *expected, a miss reports ResultError.
func (m *Map) Get(area *Area, key []byte, value *any) Result {
	return m.CAS(area, key, value, nil, OptionGet, nil)
}

// Set is CAS(area, key, OptionSet): expected nil means "insert only if
// absent"; a non-nil expected means "overwrite only if the current value
// matches".
func (m *Map) Set(area *Area, key []byte, expected *any, newValue any) Result {
	if expected == nil {
		var absent any
		expected = &absent
	}
	return m.CAS(area, key, expected, newValue, OptionSet, nil)
}

// Delete is CAS(area, key, OptionDelete). See CAS's doc comment for the
// newValue-as-sentinel contract this shares with the underlying engine.
func (m *Map) Delete(area *Area, key []byte, expected *any, unconditional bool) Result {
	var sentinel any
	if unconditional {
		sentinel = struct{}{}
	}
	return m.CAS(area, key, expected, sentinel, OptionDelete, nil)
}

// RunWorkers runs fn once per cfg.NumWorkers goroutine, each with its own
// freshly claimed Area, and waits for all of them to finish. It is a
// convenience for tests and simple fixed-worker-pool embedders; production
// callers with their own goroutine lifecycle should call AcquireArea and
// ReleaseArea directly instead.
func (m *Map) RunWorkers(ctx context.Context, fn func(ctx context.Context, area *Area, worker int) error) error {
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < m.numWorkers; i++ {
		worker := i
		g.Go(func() error {
			area, err := m.AcquireArea(ctx)
			if err != nil {
				return err
			}
			defer m.ReleaseArea(area)
			return fn(ctx, area, worker)
		})
	}
	return g.Wait()
}
