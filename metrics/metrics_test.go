// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	m := &dto.Metric{}
	if err := g.Write(m); err != nil {
		t.Fatalf("Write: %v", err)
	}
	return m.GetGauge().GetValue()
}

func TestSetOccupancy(t *testing.T) {
	r := New("test")
	r.SetOccupancy(7)
	if got := gaugeValue(t, r.occupied); got != 7 {
		t.Errorf("SetOccupancy(7): occupied gauge = %v, want 7", got)
	}
	r.SetOccupancy(3)
	if got := gaugeValue(t, r.occupied); got != 3 {
		t.Errorf("SetOccupancy(3): occupied gauge = %v, want 3", got)
	}
}

func TestObserveResizeIncrementsCounter(t *testing.T) {
	r := New("test")

	m := &dto.Metric{}
	if err := r.resizeTotal.Write(m); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got := m.GetCounter().GetValue(); got != 0 {
		t.Fatalf("initial resizesTotal = %v, want 0", got)
	}

	r.ObserveResize(5 * time.Millisecond)

	if err := r.resizeTotal.Write(m); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got := m.GetCounter().GetValue(); got != 1 {
		t.Errorf("resizesTotal after one ObserveResize = %v, want 1", got)
	}
}

func TestObserveProbeLengthRecordsSamples(t *testing.T) {
	r := New("test")
	r.ObserveProbeLength(0)
	r.ObserveProbeLength(3)

	m := &dto.Metric{}
	if err := r.probeLength.Write(m); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got := m.GetHistogram().GetSampleCount(); got != 2 {
		t.Errorf("probeLength sample count = %v, want 2", got)
	}
}

func TestDescribeAndCollect(t *testing.T) {
	r := New("test")
	reg := prometheus.NewRegistry()
	if err := reg.Register(r); err != nil {
		t.Fatalf("Register: %v", err)
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	if len(families) != 4 {
		t.Errorf("Gather returned %d metric families, want 4", len(families))
	}
}
