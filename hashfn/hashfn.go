// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

// Package hashfn supplies the embedder-side hash functions for
// github.com/aristanetworks/concurrent-hashmap/hashmap. The container never
// interprets a hash beyond masking it against n-1, so any uniform 32-bit
// function works; this package offers the two the teacher reaches for
// elsewhere in this module: a fast non-cryptographic hash for the common
// case, and a seeded hash/maphash-backed one for callers that want
// per-process randomization to avoid adversarial key collisions.
package hashfn

import (
	"hash/maphash"

	"github.com/cespare/xxhash/v2"
)

// XXHash returns a hash function built on xxhash64, truncated to 32 bits.
// This is the reference hash named in the container's external interface:
// cheap, well distributed, and stable across processes (useful for tests
// that assert on exact bucket placement).
func XXHash() func(key []byte) uint32 {
	return func(key []byte) uint32 {
		return uint32(xxhash.Sum64(key))
	}
}

// Maphash returns a hash function seeded once at construction time with a
// random maphash.Seed, so that two processes (or two Maps) hash the same
// bytes differently. Prefer this when keys are attacker-influenced and
// probe-length blowup is a concern; the container's Robin Hood invariant
// bounds variance but not an adversary who can target a fixed seed.
func Maphash() func(key []byte) uint32 {
	seed := maphash.MakeSeed()
	return func(key []byte) uint32 {
		return uint32(hashBytes(seed, key))
	}
}
