// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package codegen walks a condensed program and emits native machine
// code for it into an asm.CodeBuffer: one pass, one instruction becomes
// one fixed sequence of emitted ops, with no peephole optimization.
package codegen

import (
	"io/ioutil"
	"log"
	"os"
	"unsafe"

	"github.com/go-interpreter/bf/internal/asm"
	"github.com/go-interpreter/bf/internal/ir"
)

// PrintDebugInfo selects the package logger's destination, io.Discard or
// os.Stderr. The choice is made once, in init, from the variable's
// initial value; assigning it later does not redirect the logger.
var PrintDebugInfo = false

var logger *log.Logger

func init() {
	w := ioutil.Discard
	if PrintDebugInfo {
		w = os.Stderr
	}
	logger = log.New(w, "codegen: ", log.Lshortfile)
}

// ptrReg holds the tape cursor across the entire run. It must survive
// the getchar/putchar calls below, so it is one of the callee-saved
// registers explicitly preserved in the prologue/epilogue.
const ptrReg = asm.RegBX

// scratchReg is the second register saved in the prologue and restored
// in the epilogue, pressed into service for the 64-bit-safe pointer
// comparisons in emitLeft and as the argument register for the putchar
// call on amd64. On amd64 it is a caller-saved register, so its value
// does not survive the getchar/putchar calls; it only holds short-lived
// values.
const scratchReg = asm.RegDI

// pointerSize adapts the stack-alignment arithmetic to the host word
// size without needing a build-tagged constant.
var pointerSize = int(unsafe.Sizeof(uintptr(0)))

// Callbacks holds the native function pointers the generated code
// invokes for byte I/O. Both must remain valid for the lifetime of the
// generated code; internal/runtime supplies them as addresses of
// small, non-Go trampolines.
type Callbacks struct {
	GetChar uintptr
	PutChar uintptr
}

// Generate emits a complete, self-contained routine for program: save
// the caller's registers, align the stack, walk every instruction in
// order, then restore and return. tapeStart is the address of the first
// addressable tape cell: the pointer register starts there, and OpLeft
// clamps to it. program must already have had ir.ResolveLoops applied.
func Generate(program []ir.Instruction, tapeStart uintptr, cb Callbacks) (*asm.CodeBuffer, error) {
	buf, err := asm.New()
	if err != nil {
		return nil, err
	}

	emitPrologue(buf, tapeStart)

	labels := make([]*asm.Label, len(program))
	for i, inst := range program {
		if inst.Op == ir.OpIf || inst.Op == ir.OpEndIf {
			if labels[i] == nil {
				labels[i] = buf.NewLabel()
			}
			if labels[inst.Branch] == nil {
				labels[inst.Branch] = buf.NewLabel()
			}
		}
	}

	for i, inst := range program {
		switch inst.Op {
		case ir.OpRight:
			emitRight(buf, inst.Val)
		case ir.OpLeft:
			emitLeft(buf, tapeStart, inst.Val)
		case ir.OpModify:
			emitModify(buf, inst.Val)
		case ir.OpPut:
			emitPut(buf, cb.PutChar)
		case ir.OpGet:
			emitGet(buf, cb.GetChar)
		case ir.OpIf:
			emitIf(buf, labels[i], labels[inst.Branch])
		case ir.OpEndIf:
			emitEndIf(buf, labels[inst.Branch], labels[i])
		default:
			logger.Panicf("codegen: unhandled op %v at instruction %d", inst.Op, i)
		}
	}

	emitEpilogue(buf)
	return buf, nil
}

// emitPrologue matches the C original's frame setup: save the frame
// pointer, 16-byte-align the stack, save the two registers this routine
// keeps live across calls, and load the tape cursor.
func emitPrologue(buf *asm.CodeBuffer, tapeStart uintptr) {
	buf.PushR(asm.RegBP)
	buf.MovRR(asm.RegBP, asm.RegSP)
	buf.AndRImmz32(asm.RegSP, ^uint32(15))

	buf.PushR(ptrReg)
	buf.PushR(scratchReg)

	if adjust := stackAdjust(); adjust > 0 {
		buf.SubRImmz32(asm.RegSP, adjust)
	}

	buf.MovRImmPtr(ptrReg, tapeStart)
}

// emitEpilogue restores the registers saved in emitPrologue, zeroes the
// (unused) return value register, and returns to the caller.
func emitEpilogue(buf *asm.CodeBuffer) {
	if adjust := stackAdjust(); adjust > 0 {
		buf.AddRImmz32(asm.RegSP, adjust)
	}

	buf.PopR(scratchReg)
	buf.PopR(ptrReg)
	buf.XorRR(asm.RegAX, asm.RegAX)
	buf.Leave()
	buf.Ret()
}

// stackAdjust keeps the call-site stack 16-byte aligned after the two
// pushes in the prologue, mirroring the C original's arithmetic.
func stackAdjust() uint32 {
	pushed := uint32(2 * pointerSize)
	if pushed >= 16 {
		return 0
	}
	return 16 - pushed
}

func emitRight(buf *asm.CodeBuffer, n int64) {
	if n == 0 {
		return
	}
	buf.AddRImmz32(ptrReg, uint32(n))
}

// emitLeft clamps the pointer at tapeStart rather than letting it run
// negative: `cmp ptrReg, tapeStart+n; jle clamp; sub ptrReg, n; jmp done;
// clamp: mov ptrReg, tapeStart; done:`. The comparison always goes
// through scratchReg rather than a direct immediate compare, since a
// 64-bit immediate cannot be used as a CMP operand; routing both
// architectures through the same scratch-register path keeps this
// function free of a build-tag split.
func emitLeft(buf *asm.CodeBuffer, tapeStart uintptr, n int64) {
	if n == 0 {
		return
	}

	clamp := buf.NewLabel()
	done := buf.NewLabel()

	minValue := tapeStart + uintptr(n)
	buf.MovRImmPtr(scratchReg, minValue)
	buf.CmpRR(ptrReg, scratchReg)
	buf.Jcc(asm.CondLessOrEqual, clamp)
	buf.SubRImmz32(ptrReg, uint32(n))
	buf.Jmp(done)
	buf.Bind(clamp)
	buf.MovRImmPtr(ptrReg, tapeStart)
	buf.Bind(done)
}

func emitModify(buf *asm.CodeBuffer, n int64) {
	if n&0xFF == 0 {
		return
	}
	buf.AddRM8Imm8(ptrReg, uint8(n&0xFF))
}

// emitGet calls GetChar, which returns -1 (EOF) at end of stream; a
// returned EOF stores zero into the current cell instead, matching the
// tape-language convention that running past the end of input reads as
// zero forever.
func emitGet(buf *asm.CodeBuffer, getChar uintptr) {
	eof := buf.NewLabel()

	buf.Call(getChar)
	// cmp eax, -1 (3D id, never REX.W): GetChar returns a 32-bit C int,
	// so only the low 32 bits of AX hold the result. CmpRImmz32 would
	// compare all of RAX on amd64 and miss EOF.
	buf.EmitByte(0x3D)
	buf.EmitU32(uint32(0xFFFFFFFF))
	buf.Jcc(asm.CondNotEqual, eof)
	buf.XorRR(asm.RegAX, asm.RegAX)
	buf.Bind(eof)
	buf.MovRM8R8(ptrReg, asm.RegAX)
}

// emitPut loads the current cell into the low byte of AX, zero-extends
// it, then hands it to PutChar using the host's calling convention
// (emitPutArg, arch-specific) before calling.
func emitPut(buf *asm.CodeBuffer, putChar uintptr) {
	buf.XorRR(asm.RegAX, asm.RegAX)
	buf.MovR8RM8(asm.RegAX, ptrReg)
	emitPutArg(buf)
	buf.Call(putChar)
}

func emitIf(buf *asm.CodeBuffer, top, end *asm.Label) {
	buf.CmpRM8Imm8(ptrReg, 0)
	buf.Jcc(asm.CondEqual, end)
	buf.Bind(top)
}

func emitEndIf(buf *asm.CodeBuffer, top, end *asm.Label) {
	buf.CmpRM8Imm8(ptrReg, 0)
	buf.Jcc(asm.CondNotEqual, top)
	buf.Bind(end)
}
