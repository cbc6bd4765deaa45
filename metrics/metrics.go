// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

// Package metrics exposes a Recorder that a hashmap.Map reports occupancy,
// resize, and probe-length observations to, via
// github.com/prometheus/client_golang, the metrics library the teacher
// module's collectors are built on.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder wraps the Prometheus collectors a Map reports to. The zero value
// is not usable; construct one with New and register it with a registerer
// of the caller's choosing.
type Recorder struct {
	occupied    prometheus.Gauge
	resizeTotal prometheus.Counter
	resizeDur   prometheus.Histogram
	probeLength prometheus.Histogram
}

// New builds a Recorder whose metric names are prefixed with namespace
// (e.g. the embedding service's name) so that multiple Maps in one process
// don't collide when registered against the same registerer.
func New(namespace string) *Recorder {
	return &Recorder{
		occupied: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "hashmap",
			Name:      "occupied_buckets",
			Help:      "Number of buckets holding an entry or reserved as unspent per-Area credit.",
		}),
		resizeTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "hashmap",
			Name:      "resizes_total",
			Help:      "Number of completed online resizes.",
		}),
		resizeDur: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "hashmap",
			Name:      "resize_duration_seconds",
			Help:      "Wall-clock duration of a completed online resize.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
		probeLength: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "hashmap",
			Name:      "probe_length",
			Help:      "Probe sequence length (psl) observed by a CAS call.",
			Buckets:   prometheus.LinearBuckets(0, 1, 16),
		}),
	}
}

// Describe implements prometheus.Collector.
func (r *Recorder) Describe(ch chan<- *prometheus.Desc) {
	r.occupied.Describe(ch)
	r.resizeTotal.Describe(ch)
	r.resizeDur.Describe(ch)
	r.probeLength.Describe(ch)
}

// Collect implements prometheus.Collector.
func (r *Recorder) Collect(ch chan<- prometheus.Metric) {
	r.occupied.Collect(ch)
	r.resizeTotal.Collect(ch)
	r.resizeDur.Collect(ch)
	r.probeLength.Collect(ch)
}

// SetOccupancy records the Map's current occupied bucket count (live
// entries plus reservation credit held by Areas).
func (r *Recorder) SetOccupancy(n uint32) {
	r.occupied.Set(float64(n))
}

// ObserveResize records a completed resize's wall-clock duration.
func (r *Recorder) ObserveResize(d time.Duration) {
	r.resizeTotal.Inc()
	r.resizeDur.Observe(d.Seconds())
}

// ObserveProbeLength records the psl a CAS call terminated at, whether it
// hit or missed.
func (r *Recorder) ObserveProbeLength(psl uint32) {
	r.probeLength.Observe(float64(psl))
}
