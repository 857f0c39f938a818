// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bf

import "github.com/go-interpreter/bf/internal/runtime"

// Status reports how a Run call ended. The zero value, StatusOK,
// indicates the program ran to completion.
type Status = runtime.Status

// The complete set of statuses a Run call can return.
const (
	StatusOK            = runtime.StatusOK
	StatusGuardError    = runtime.StatusGuardError
	StatusHandlerError  = runtime.StatusHandlerError
	StatusMallocError   = runtime.StatusMallocError
	StatusMmapError     = runtime.StatusMmapError
	StatusMunmapError   = runtime.StatusMunmapError
	StatusNoMemory      = runtime.StatusNoMemory
	StatusPageSizeError = runtime.StatusPageSizeError
	StatusTapeExceeded  = runtime.StatusTapeExceeded
	StatusTapeUnderflow = runtime.StatusTapeUnderflow
	StatusTimeExceeded  = runtime.StatusTimeExceeded
	StatusUnbalanced    = runtime.StatusUnbalanced
)

// ScanError wraps a source-level problem detected before any code is
// generated, so callers can match on a type from this package rather
// than reaching into internal/ir. Unbalanced brackets are not reported
// this way: Run returns StatusUnbalanced with a nil error for them, and
// ir.Scan reports no other kind of error.
type ScanError struct {
	Err error
}

func (e *ScanError) Error() string {
	return "bf: " + e.Err.Error()
}

func (e *ScanError) Unwrap() error {
	return e.Err
}
