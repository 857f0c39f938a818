// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build 386

package asm

// On 386 the same opcode bytes as emitter_amd64.go apply to the native
// 32-bit registers, with no REX prefix.

// AddRImmz32 emits `add reg, imm`.
func (b *CodeBuffer) AddRImmz32(reg Reg, imm uint32) {
	assertValid(reg)
	if reg == RegAX {
		b.EmitByte(0x05)
		b.EmitU32(imm)
		return
	}
	b.EmitByte(0x81)
	b.EmitByte(0xC0 | byte(reg))
	b.EmitU32(imm)
}

// SubRImmz32 emits `sub reg, imm`.
func (b *CodeBuffer) SubRImmz32(reg Reg, imm uint32) {
	assertValid(reg)
	if reg == RegAX {
		b.EmitByte(0x2D)
		b.EmitU32(imm)
		return
	}
	b.EmitByte(0x81)
	b.EmitByte(0xE8 | byte(reg))
	b.EmitU32(imm)
}

// AndRImmz32 emits `and reg, imm`.
func (b *CodeBuffer) AndRImmz32(reg Reg, imm uint32) {
	assertValid(reg)
	if reg == RegAX {
		b.EmitByte(0x25)
		b.EmitU32(imm)
		return
	}
	b.EmitByte(0x81)
	b.EmitByte(0xE0 | byte(reg))
	b.EmitU32(imm)
}

// CmpRImmz32 emits `cmp reg, imm`.
func (b *CodeBuffer) CmpRImmz32(reg Reg, imm uint32) {
	assertValid(reg)
	if reg == RegAX {
		b.EmitByte(0x3D)
		b.EmitU32(imm)
		return
	}
	b.EmitByte(0x81)
	b.EmitByte(0xF8 | byte(reg))
	b.EmitU32(imm)
}

// CmpRR emits `cmp reg, srcreg`.
func (b *CodeBuffer) CmpRR(reg, srcreg Reg) {
	assertValid(reg)
	assertValid(srcreg)
	b.EmitByte(0x39)
	b.EmitByte(0xC0 | (byte(srcreg) << 3) | byte(reg))
}

// MovRR emits `mov reg, srcreg`.
func (b *CodeBuffer) MovRR(reg, srcreg Reg) {
	assertValid(reg)
	assertValid(srcreg)
	b.EmitByte(0x8B)
	b.EmitByte(0xC0 | (byte(reg) << 3) | byte(srcreg))
}

// MovRImmPtr emits `mov reg, imm` loading a full 32-bit immediate
// (B8+rd id).
func (b *CodeBuffer) MovRImmPtr(reg Reg, imm uintptr) {
	assertValid(reg)
	b.EmitByte(0xB8 + byte(reg))
	b.EmitPtr(imm)
}

// MovRMRint emits `mov [reg], srcreg`. reg == RegSP requires a SIB byte.
func (b *CodeBuffer) MovRMRint(reg, srcreg Reg) {
	assertValid(reg)
	assertValid(srcreg)
	b.EmitByte(0x89)
	b.EmitByte((byte(srcreg) << 3) | byte(reg))
	if reg == RegSP {
		b.EmitByte(0x24)
	}
}

// XorRR emits `xor reg, srcreg`.
func (b *CodeBuffer) XorRR(reg, srcreg Reg) {
	assertValid(reg)
	assertValid(srcreg)
	b.EmitByte(0x31)
	b.EmitByte(0xC0 | (byte(reg) << 3) | byte(srcreg))
}

// Call emits a materialize-then-indirect-call sequence: load imm into
// EAX, then `call eax` (FF D0).
func (b *CodeBuffer) Call(imm uintptr) {
	b.MovRImmPtr(RegAX, imm)
	b.EmitByte(0xFF)
	b.EmitByte(0xD0)
}
