// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

// This file holds the emitters whose encoding is identical on 386 and
// amd64: byte-register ops, the control-flow instructions, and the
// stack ops. The handful of emitters that differ by a REX.W prefix live
// in emitter_amd64.go and emitter_386.go.

// AddRM8Imm8 emits `add byte [reg], imm` (0x80 /0 ib), treating reg as a
// bare memory operand (mod=00) rather than a register operand: this is
// how the tape cell addressed by the pointer register is incremented.
func (b *CodeBuffer) AddRM8Imm8(reg Reg, imm uint8) {
	assertValid(reg)
	b.EmitByte(0x80)
	b.EmitByte(byte(reg))
	b.EmitByte(imm)
}

// CmpRM8Imm8 emits `cmp byte [reg], imm` (0x80 /7 ib).
func (b *CodeBuffer) CmpRM8Imm8(reg Reg, imm uint8) {
	assertValid(reg)
	b.EmitByte(0x80)
	b.EmitByte(0x38 | byte(reg))
	b.EmitByte(imm)
}

// MovR8RM8 emits `mov reg8, byte [sreg]` (0x8A /r): load a tape byte
// into the low 8 bits of reg.
func (b *CodeBuffer) MovR8RM8(reg, sreg Reg) {
	assertValid(reg)
	assertValid(sreg)
	b.EmitByte(0x8A)
	b.EmitByte((byte(reg) << 3) | byte(sreg))
}

// MovRM8R8 emits `mov byte [reg], sreg8` (0x88 /r): store the low 8 bits
// of sreg into a tape byte.
func (b *CodeBuffer) MovRM8R8(reg, sreg Reg) {
	assertValid(reg)
	assertValid(sreg)
	b.EmitByte(0x88)
	b.EmitByte((byte(sreg) << 3) | byte(reg))
}

// PushR emits `push reg` (0x50+rd).
func (b *CodeBuffer) PushR(reg Reg) {
	assertValid(reg)
	b.EmitByte(0x50 + byte(reg))
}

// PopR emits `pop reg` (0x58+rd).
func (b *CodeBuffer) PopR(reg Reg) {
	assertValid(reg)
	b.EmitByte(0x58 + byte(reg))
}

// Leave emits the function epilogue `leave` (0xC9).
func (b *CodeBuffer) Leave() {
	b.EmitByte(0xC9)
}

// Ret emits `ret` (0xC3).
func (b *CodeBuffer) Ret() {
	b.EmitByte(0xC3)
}

// Jcc emits a near conditional branch (0F 8x cd) to lab.
func (b *CodeBuffer) Jcc(cond Cond, lab *Label) {
	b.EmitByte(0x0F)
	b.EmitByte(byte(cond))
	b.EmitLabelRef(lab)
}

// Jmp emits a near unconditional branch (E9 cd) to lab.
func (b *CodeBuffer) Jmp(lab *Label) {
	b.EmitByte(0xE9)
	b.EmitLabelRef(lab)
}

func assertValid(r Reg) {
	if !r.valid() {
		panic("asm: register out of range")
	}
}
