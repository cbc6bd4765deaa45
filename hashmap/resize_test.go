// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package hashmap

import (
	"context"
	"testing"
)

// TestResizeAllocationFailureDegradesGracefully exercises spec.md §7's
// allocation-failure path: once allocTable reports failure, resizeFail
// latches, the table stops growing, and reserve clamps grants to whatever
// physical capacity remains instead of the load-factor threshold.
func TestResizeAllocationFailureDegradesGracefully(t *testing.T) {
	m, err := New(Config{
		NumWorkers:       1,
		InitialSizeLog2:  1,
		ResizePercentage: 0.9,
		MinReserve:       1,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	m.allocTable = func(uint32) *table { return nil }

	area, err := m.AcquireArea(context.Background())
	if err != nil {
		t.Fatalf("AcquireArea: %v", err)
	}
	defer m.ReleaseArea(area)

	if res := m.Set(area, []byte("a"), nil, 1); res != ResultSuccess {
		t.Fatalf("Set(a) = %v, want Success", res)
	}

	// The second insert crosses the threshold, triggers a resize, and the
	// injected allocTable fails it; reserve's post-failure clamp still
	// lets this insert land in the table's one remaining empty bucket.
	if res := m.Set(area, []byte("b"), nil, 2); res != ResultSuccess {
		t.Fatalf("Set(b) = %v, want Success", res)
	}
	if !m.resizeFail.Load() {
		t.Fatalf("resizeFail not set after allocTable returned nil")
	}

	// The table (2 buckets) is now physically full and can never grow
	// again; a third distinct key has nowhere to go.
	if res := m.Set(area, []byte("c"), nil, 3); res != ResultError {
		t.Fatalf("Set(c) after table filled post-resizeFail = %v, want Error", res)
	}

	var got any
	if res := m.Get(area, []byte("a"), &got); res != ResultAgain || got != 1 {
		t.Fatalf("Get(a) = %v, %v, want Again, 1", res, got)
	}
}

func TestTryBecomeCoordinator(t *testing.T) {
	m, err := New(Config{NumWorkers: 1})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !m.tryBecomeCoordinator() {
		t.Fatalf("first tryBecomeCoordinator should succeed")
	}
	if m.tryBecomeCoordinator() {
		t.Fatalf("second tryBecomeCoordinator should fail while resizing is held")
	}
	m.resizing.Store(false)
	if !m.tryBecomeCoordinator() {
		t.Fatalf("tryBecomeCoordinator should succeed again once resizing clears")
	}
}
