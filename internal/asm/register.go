// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package asm provides a writable-then-executable code buffer and a
// catalogue of x86 instruction-level emit operations, hiding the
// bit-level ModR/M encoding and the 32/64-bit REX.W difference from
// callers. It does not handle the 32/64-bit difference in how an
// external call's first argument is passed; internal/codegen does that
// in its own build-tagged files.
package asm

// Reg identifies one of the eight low-numbered general-purpose
// registers. The extended register set (R8-R15) is never used by this
// package; all emitters assert that a Reg is below 8.
type Reg uint8

// Register encoding, matching the x86 ModR/M register field order.
const (
	RegAX Reg = 0
	RegCX Reg = 1
	RegDX Reg = 2
	RegBX Reg = 3
	RegSP Reg = 4
	RegBP Reg = 5
	RegSI Reg = 6
	RegDI Reg = 7
)

func (r Reg) valid() bool {
	return r < 8
}

// Cond is a condition code for a conditional branch.
type Cond uint8

const (
	// CondEqual branches when the zero flag is set.
	CondEqual Cond = 0x84
	// CondNotEqual branches when the zero flag is clear.
	CondNotEqual Cond = 0x85
	// CondLessOrEqual branches on signed <=.
	CondLessOrEqual Cond = 0x8E
)
