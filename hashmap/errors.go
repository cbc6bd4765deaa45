// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package hashmap

// programmingError is the panic value for contract violations the caller
// controls and could have avoided: a null key with a nonzero size, a nil
// expected pointer, destroying a Map with outstanding Areas. These are
// non-recoverable by design, mirroring the source container's use of
// abort()/assert() for the same conditions.
type programmingError string

func (e programmingError) Error() string { return string(e) }

const (
	errNilKeyNonzeroLen  programmingError = "hashmap: key is nil but key_sz != 0"
	errNilExpected       programmingError = "hashmap: expected pointer is nil"
	errCloseWithAreasOut programmingError = "hashmap: Close called with outstanding Areas"
	errNilArea           programmingError = "hashmap: area is nil"
	errZeroWorkers       programmingError = "hashmap: NumWorkers must be >= 1"
	errBadResizePct      programmingError = "hashmap: ResizePercentage must be in (0, 1]"
)
