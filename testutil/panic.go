// Copyright (c) 2015 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

// Package testutil holds small assertion helpers shared by this module's
// test files, adapted from the teacher's internal test package down to the
// pieces exercised by the hashmap package's programming-error paths.
package testutil

import (
	"fmt"
	"reflect"
	"runtime"
	"testing"
)

// ShouldPanic fails t unless fn panics.
func ShouldPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		if r := recover(); r == nil {
			t.Errorf("%sThe function %p should have panicked",
				getCallerInfo(), fn)
		}
	}()

	fn()
}

// ShouldPanicWith fails t unless fn panics with a value deeply equal to msg.
func ShouldPanicWith(t *testing.T, msg interface{}, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Errorf("%sThe function %p should have panicked with %#v",
				getCallerInfo(), fn, msg)
			return
		}
		if !reflect.DeepEqual(msg, r) {
			t.Errorf("%sThe function %p panicked with the wrong value.\n"+
				"Expected: %#v\nReceived: %#v",
				getCallerInfo(), fn, msg, r)
		}
	}()

	fn()
}

func getCallerInfo() string {
	_, file, line, ok := runtime.Caller(4)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s:%d\n", file, line)
}
