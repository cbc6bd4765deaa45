// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package hashmap

import (
	"context"
	"testing"

	"github.com/aristanetworks/concurrent-hashmap/testutil"
)

// These exercise the panic-valued programming errors declared in errors.go,
// asserting the exact sentinel each contract violation panics with (not
// merely that some panic occurred).

func TestCASPanicsOnNilArea(t *testing.T) {
	m, err := New(Config{NumWorkers: 1})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(m.Close)

	var v any
	testutil.ShouldPanicWith(t, errNilArea, func() {
		m.CAS(nil, []byte("k"), &v, "v", OptionSet, nil)
	})
}

func TestCASPanicsOnNilExpected(t *testing.T) {
	m, err := New(Config{NumWorkers: 1})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(m.Close)

	area, err := m.AcquireArea(context.Background())
	if err != nil {
		t.Fatalf("AcquireArea: %v", err)
	}
	defer m.ReleaseArea(area)

	testutil.ShouldPanicWith(t, errNilExpected, func() {
		m.CAS(area, []byte("k"), nil, "v", OptionSet, nil)
	})
}

func TestCloseWithOutstandingAreaPanics(t *testing.T) {
	m, err := New(Config{NumWorkers: 1})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	area, err := m.AcquireArea(context.Background())
	if err != nil {
		t.Fatalf("AcquireArea: %v", err)
	}
	defer m.ReleaseArea(area)

	testutil.ShouldPanicWith(t, errCloseWithAreasOut, func() {
		m.Close()
	})
}
