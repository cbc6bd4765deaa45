// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

// Package hashmap implements a process-local, in-memory associative
// container keyed by arbitrary byte strings and valued by opaque values,
// built for high-throughput concurrent access from a fixed pool of worker
// goroutines.
//
// The table is an open-addressed Robin Hood hash table. Each bucket has its
// own spinlock; probes walk the table hand-over-hand, holding at most two
// bucket locks at a time. Growth is a cooperative online resize: the
// goroutine that notices the load factor crossed the threshold becomes the
// coordinator, quiesces every other worker through their per-worker Area,
// then every participating worker rehashes a partitioned slice of the old
// table, and the last participant to finish commits the new one.
//
// All three primitive operations (Get, Set, Delete) are expressed through a
// single compare-and-swap entry point, CAS, matching the container's
// original design: a GET that finds its key reports AGAIN (the read value
// is returned through expected) and a GET that misses reports ERROR, a
// conditional SET only replaces a
// value that matches an expected one, and a conditional DELETE only removes
// a value that matches an expected one.
//
// A goroutine must claim an Area before calling CAS and must release it
// before exiting; Map.Close is not safe to call while any Area remains
// claimed.
package hashmap
