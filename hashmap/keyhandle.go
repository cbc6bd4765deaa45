// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package hashmap

// keyHandle is transient, per-operation state binding a caller's key to its
// computed hash. It never escapes to the heap in the common case and holds
// no locks of its own.
type keyHandle struct {
	key  []byte
	hash uint32
}

// newKeyHandle computes a keyHandle for key. It performs no validation: a
// Go []byte can't be nil with a nonzero len, so the C source's nil-pointer
// check (errNilKeyNonzeroLen) has no counterpart here and is never raised.
func newKeyHandle(hash HashFunc, key []byte) keyHandle {
	return keyHandle{key: key, hash: hash(key)}
}

func (k keyHandle) bucketIndex(n uint32) uint32 {
	return k.hash & (n - 1)
}
