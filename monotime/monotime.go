// Copyright (C) 2016  Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

// Package monotime provides a fast monotonic clock source, used by the
// hashmap package to time resizes without ever reading the wall clock.
package monotime

import "time"

// epoch is fixed at package init so Now returns a cheap, monotonically
// non-decreasing offset rather than a wall-clock timestamp.
var epoch = time.Now()

// Now returns a monotonic timestamp, in nanoseconds, with no defined
// relationship to wall-clock time.
func Now() uint64 {
	return uint64(time.Since(epoch))
}

// Since returns the Duration elapsed since t, a timestamp returned by Now.
func Since(t uint64) time.Duration {
	return time.Duration(Now() - t)
}
