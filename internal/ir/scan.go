// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ir scans raw tape-language source into a condensed
// intermediate representation: runs of the same operator collapse into
// a single instruction carrying a signed count, and every loop bracket
// is paired with its match ahead of code generation.
package ir

import "errors"

// Op identifies a tape-language operation after coalescing. '+' and '-'
// share OpModify, so the eight operators map to seven Op values; the
// ones aside from OpModify/OpRight/OpLeft correspond 1:1 with a single
// source character.
type Op uint8

const (
	// OpModify adds Val (mod 256, wrapping) to the current cell.
	OpModify Op = iota
	// OpRight advances the pointer by Val cells.
	OpRight
	// OpLeft retreats the pointer by Val cells.
	OpLeft
	// OpGet reads one byte from the input stream into the current cell,
	// or stores zero on end-of-stream.
	OpGet
	// OpPut writes the current cell to the output stream.
	OpPut
	// OpIf branches past its matching OpEndIf when the current cell is
	// zero.
	OpIf
	// OpEndIf branches back to its matching OpIf when the current cell
	// is non-zero.
	OpEndIf
)

// ErrUnbalanced is returned by Scan when '[' and ']' counts do not
// match, either because a ']' appears with no open '[', or because the
// source ends with one or more '[' still open.
var ErrUnbalanced = errors.New("ir: unbalanced brackets")

// Instruction is a single condensed program step.
type Instruction struct {
	Op Op
	// Val holds the signed net count ('+' minus '-') for OpModify and
	// the run length for OpRight/OpLeft. It is unused (zero) for the
	// other ops.
	Val int64
	// Branch is the index, within the condensed program, of this
	// instruction's matching bracket. Set only on OpIf and OpEndIf.
	Branch int
}

// byteOf maps a source character to the Op it introduces, reporting ok
// = false for any character outside the eight recognized operators
// (tape-language source treats all other bytes as comments).
func byteOf(c byte) (Op, bool) {
	switch c {
	case '+', '-':
		return OpModify, true
	case '>':
		return OpRight, true
	case '<':
		return OpLeft, true
	case ',':
		return OpGet, true
	case '.':
		return OpPut, true
	case '[':
		return OpIf, true
	case ']':
		return OpEndIf, true
	default:
		return 0, false
	}
}

// Scan condenses src into a program: runs of '+'/'-' coalesce into a
// single OpModify with a signed Val, runs of '>'/'<' coalesce into a
// single OpRight/OpLeft with a positive Val, and every other recognized
// character becomes its own instruction. Loop brackets are left
// unpaired; call ResolveLoops on the result before generating code.
//
// Scan performs the same single pass over src that a naive interpreter
// would, so a malformed program (unbalanced brackets) is rejected before
// any code is emitted.
func Scan(src []byte) ([]Instruction, error) {
	if err := checkBalance(src); err != nil {
		return nil, err
	}

	var program []Instruction
	lastOp, have := Op(0), false

	for _, c := range src {
		op, ok := byteOf(c)
		if !ok {
			continue
		}

		switch op {
		case OpModify, OpLeft, OpRight:
			delta := int64(1)
			if c == '-' {
				delta = -1
			}
			if have && lastOp == op {
				program[len(program)-1].Val += delta
				continue
			}
			program = append(program, Instruction{Op: op, Val: delta})
		default:
			program = append(program, Instruction{Op: op})
		}

		lastOp, have = op, true
	}

	return program, nil
}

// checkBalance performs the cheap single pass that rejects a malformed
// program before any allocation for the condensed form occurs.
func checkBalance(src []byte) error {
	depth := 0
	for _, c := range src {
		switch c {
		case '[':
			depth++
		case ']':
			if depth == 0 {
				return ErrUnbalanced
			}
			depth--
		}
	}
	if depth != 0 {
		return ErrUnbalanced
	}
	return nil
}
