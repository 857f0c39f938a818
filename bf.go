// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bf just-in-time compiles tape-language source to native
// machine code and runs it under a guarded tape and an optional
// virtual-time (process CPU time) budget.
package bf

import (
	"errors"
	"io"
	"time"

	"github.com/go-interpreter/bf/internal/codegen"
	"github.com/go-interpreter/bf/internal/ir"
	"github.com/go-interpreter/bf/internal/runtime"
)

// DefaultMaxDataSize is the tape size used when Config.MaxDataSize is
// left at zero, matching the original tool's default of half a
// megabyte.
const DefaultMaxDataSize = 1 << 19

// Config controls one Run call.
type Config struct {
	// MaxDataSize is the number of addressable tape cells. Zero selects
	// DefaultMaxDataSize.
	MaxDataSize uintptr
	// Timeout bounds the process's virtual (user CPU) time during the
	// run, measured by ITIMER_VIRTUAL. Zero means no limit.
	Timeout time.Duration
	// Stdin and Stdout back the ',' and '.' operators. A nil Stdin
	// behaves as an immediately-exhausted stream; a nil Stdout discards
	// writes.
	Stdin  io.Reader
	Stdout io.Writer
}

// Run compiles src and executes it per cfg, returning the status the
// run ended with. A non-OK status other than the ones ir.Scan can
// detect statically (StatusUnbalanced) always comes from the runtime
// envelope, never from a Go error value, since the whole point of this
// package is that the hot path runs as native code with no Go frames
// to return through.
func Run(src []byte, cfg Config) (Status, error) {
	program, err := ir.Scan(src)
	if err != nil {
		if err == ir.ErrUnbalanced {
			return StatusUnbalanced, nil
		}
		return StatusOK, &ScanError{Err: err}
	}
	ir.ResolveLoops(program)

	maxData := cfg.MaxDataSize
	if maxData == 0 {
		maxData = DefaultMaxDataSize
	}
	forward, reverse := ir.MaxDisplacement(program)

	tape, err := runtime.NewTape(maxData, forward, reverse)
	if err != nil {
		if errors.Is(err, runtime.ErrGuard) {
			return StatusGuardError, nil
		}
		return StatusMmapError, nil
	}
	defer tape.Close()

	buf, err := codegen.Generate(program, tape.Start(), codegen.Callbacks{
		GetChar: runtime.GetCharAddr(),
		PutChar: runtime.PutCharAddr(),
	})
	if err != nil {
		return StatusMmapError, nil
	}
	defer buf.Destroy()

	entry, err := buf.Finalize()
	if err != nil {
		return StatusGuardError, nil
	}

	stdin := cfg.Stdin
	if stdin == nil {
		stdin = io.LimitReader(nil, 0)
	}
	stdout := cfg.Stdout
	if stdout == nil {
		stdout = io.Discard
	}

	return runtime.Run(entry, tape, stdin, stdout, cfg.Timeout), nil
}
