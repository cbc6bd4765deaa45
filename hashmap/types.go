// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package hashmap

import (
	"github.com/aristanetworks/concurrent-hashmap/logger"
	"github.com/aristanetworks/concurrent-hashmap/metrics"
)

// HashFunc hashes a key's bytes to a 32-bit value. The container never
// interprets the result beyond masking it against (n-1); it must be a pure
// function of the bytes it is given. See package hashfn for ready-made
// choices.
type HashFunc func(key []byte) uint32

// Reason tells a Callback why it was invoked.
type Reason int

const (
	// ReasonAcquire means the caller is observing a value that was not
	// changed: a successful Get, or a Set/Delete whose expected value
	// didn't match the current one.
	ReasonAcquire Reason = iota
	// ReasonDropSet means a value was overwritten by a successful Set.
	ReasonDropSet
	// ReasonDropDelete means a value was removed by a successful Delete.
	ReasonDropDelete
	// ReasonDropDestroy means the Map was torn down with this value still
	// live in it.
	ReasonDropDestroy
)

func (r Reason) String() string {
	switch r {
	case ReasonAcquire:
		return "acquire"
	case ReasonDropSet:
		return "drop-set"
	case ReasonDropDelete:
		return "drop-delete"
	case ReasonDropDestroy:
		return "drop-destroy"
	default:
		return "unknown"
	}
}

// Callback is invoked with the owning bucket's spinlock held; it must not
// call back into the Map that invoked it.
type Callback func(value any, reason Reason, arg any)

// Option selects which of the three primitive operations CAS performs.
type Option int

const (
	// OptionSet conditionally inserts or overwrites a value.
	OptionSet Option = iota
	// OptionGet reads the current value of a key.
	OptionGet
	// OptionDelete conditionally removes a key.
	OptionDelete
)

// Result is CAS's outcome.
type Result int

const (
	// ResultSuccess means the requested state change happened.
	ResultSuccess Result = iota
	// ResultAgain means the caller's expected value did not match the
	// current one (or, for Get, that the read succeeded: AGAIN is Get's
	// success signal, SUCCESS being reserved for state changes). The
	// current value has been written into *expected.
	ResultAgain
	// ResultError means the operation does not apply: Get or Delete found
	// no entry, or an allocation failed.
	ResultError
)

func (r Result) String() string {
	switch r {
	case ResultSuccess:
		return "success"
	case ResultAgain:
		return "again"
	case ResultError:
		return "error"
	default:
		return "unknown"
	}
}

// Config configures a Map. NumWorkers, the count of goroutines that will
// each claim exactly one Area, is the only required field.
type Config struct {
	// NumWorkers is the number of goroutines that will concurrently use
	// the Map, each claiming one Area. Must be >= 1.
	NumWorkers int

	// InitialSizeLog2 sets the initial bucket count to 1<<InitialSizeLog2,
	// rounded up if needed to satisfy MinReserve and NumWorkers. Default 4.
	InitialSizeLog2 uint8

	// ResizePercentage is the load-factor ceiling in (0,1]; the table
	// grows when occupied/n exceeds it. Default 0.94.
	ResizePercentage float64

	// MinReserve is the per-Area reservation batch size. Default 24.
	MinReserve uint32

	// Hash computes a key's hash. Default hashfn.XXHash().
	Hash HashFunc

	// Callback, if set, is invoked on value acquisition, delete,
	// set-overwrite, and Map teardown.
	Callback Callback

	// Logger receives resize lifecycle messages. A nil Logger silences
	// them.
	Logger logger.Logger

	// Metrics, if set, receives occupancy, resize, and probe-length
	// observations.
	Metrics *metrics.Recorder
}
