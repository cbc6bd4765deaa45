// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package hashmap_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/aristanetworks/concurrent-hashmap/hashmap"
)

// TestConcurrentWorkersDisjointKeys exercises spec.md §8's fixed-worker-pool
// scenario: NumWorkers goroutines, each with its own Area, inserting
// disjoint key sets concurrently. The total entry count forces several
// resizes during the insert phase, so this also exercises the cooperative
// resize protocol under contention.
func TestConcurrentWorkersDisjointKeys(t *testing.T) {
	const numWorkers = 8
	const perWorker = 50

	m := newTestMap(t, hashmap.Config{NumWorkers: numWorkers})

	err := m.RunWorkers(context.Background(), func(ctx context.Context, area *hashmap.Area, worker int) error {
		for i := 0; i < perWorker; i++ {
			key := []byte(fmt.Sprintf("w%d-%d", worker, i))
			if res := m.Set(area, key, nil, worker*perWorker+i); res != hashmap.ResultSuccess {
				return fmt.Errorf("worker %d: Set(%s) = %v, want Success", worker, key, res)
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("RunWorkers (insert phase): %v", err)
	}

	err = m.RunWorkers(context.Background(), func(ctx context.Context, area *hashmap.Area, worker int) error {
		for i := 0; i < perWorker; i++ {
			key := []byte(fmt.Sprintf("w%d-%d", worker, i))
			var got any
			if res := m.Get(area, key, &got); res != hashmap.ResultAgain {
				return fmt.Errorf("worker %d: Get(%s) = %v, want Again", worker, key, res)
			}
			if want := worker*perWorker + i; got != want {
				return fmt.Errorf("worker %d: Get(%s) = %v, want %d", worker, key, got, want)
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("RunWorkers (verify phase): %v", err)
	}
}

// TestConcurrentSetContendsOnSameKey has every worker race to set the same
// key; exactly one write should be the final value reported by a later Get,
// and no worker should observe a torn or missing entry.
func TestConcurrentSetContendsOnSameKey(t *testing.T) {
	const numWorkers = 16

	m := newTestMap(t, hashmap.Config{NumWorkers: numWorkers})
	key := []byte("contended")

	err := m.RunWorkers(context.Background(), func(ctx context.Context, area *hashmap.Area, worker int) error {
		var expected any
		res := m.Set(area, key, &expected, worker)
		if res != hashmap.ResultSuccess && res != hashmap.ResultAgain {
			return fmt.Errorf("worker %d: Set = %v, want Success or Again", worker, res)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("RunWorkers: %v", err)
	}

	area, err := m.AcquireArea(context.Background())
	if err != nil {
		t.Fatalf("AcquireArea: %v", err)
	}
	defer m.ReleaseArea(area)

	var got any
	if res := m.Get(area, key, &got); res != hashmap.ResultAgain {
		t.Fatalf("Get = %v, want Again", res)
	}
	if w, ok := got.(int); !ok || w < 0 || w >= numWorkers {
		t.Fatalf("Get value = %v, want an int in [0, %d)", got, numWorkers)
	}
}
