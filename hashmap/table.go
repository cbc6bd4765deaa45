// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package hashmap

// table bundles a bucket array with its length so the two are always
// swapped together atomically on resize commit. The source container keeps
// these as two separate atomics (a bucket pointer and an n_buckets count);
// bundling them removes any window where a reader could observe a new
// buckets pointer paired with the old length, or vice versa.
type table struct {
	buckets []bucket
	n       uint32 // always a power of two
}

func newTable(n uint32) *table {
	return &table{buckets: make([]bucket, n), n: n}
}

func (m *Map) load() *table {
	return m.tbl.Load()
}
