// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package hashmap

// findResult is the outcome of a probe: the terminal bucket, still locked,
// and the psl the caller should use if it proceeds to insert there.
type findResult struct {
	found  bool
	bucket *bucket
	idx    uint32
	psl    uint32
}

// find performs the Robin Hood linear probe described in spec.md §4.2: it
// acquires the first candidate bucket's lock, then walks forward
// hand-over-hand (locking the next slot before releasing the current one),
// tracking the running displacement psl. It returns with the terminal
// bucket still locked; the caller must unlock it.
//
// Three terminal conditions, checked in order:
//   - the slot is empty: this is the correct insertion point.
//   - the slot's occupant has a psl smaller than ours: by the Robin Hood
//     monotonicity invariant, no later slot can hold our key either.
//   - the slot's occupant matches hash, key length, and bytes: found.
func find(buckets []bucket, n uint32, kh keyHandle) findResult {
	idx := kh.bucketIndex(n)
	cur := &buckets[idx]
	cur.lock()

	var psl uint32
	for {
		p := &cur.protected
		if p.kv == nil || p.psl < psl {
			return findResult{found: false, bucket: cur, idx: idx, psl: psl}
		}
		if p.hash == kh.hash && keysEqual(p.kv.key, kh.key) {
			return findResult{found: true, bucket: cur, idx: idx, psl: p.psl}
		}

		psl++
		nextIdx := (idx + 1) & (n - 1)
		next := &buckets[nextIdx]
		next.lock()
		cur.unlock()
		cur = next
		idx = nextIdx
	}
}
