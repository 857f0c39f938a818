// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"encoding/binary"
	"errors"
	"unsafe"

	"github.com/edsrzf/mmap-go"
	"golang.org/x/sys/unix"
)

// codeBufferSize is large enough for any program this JIT is expected to
// compile; running out is a programmer error, not a recoverable condition.
const codeBufferSize = 1 << 20

// ErrMap is returned by New when the OS refuses the anonymous mapping.
var ErrMap = errors.New("asm: failed to map code buffer")

// ErrFinalize is returned by Finalize when the W->X permission change is
// refused by the OS.
var ErrFinalize = errors.New("asm: failed to make code buffer executable")

// sourceSite is a single pending fixup: the buffer offset of a 32-bit
// displacement slot within the code buffer that must be rewritten once
// its Label is bound. Owned by the Label until the Label is resolved.
type sourceSite struct {
	offset int // byte offset into the buffer of the 32-bit slot
	next   *sourceSite
}

// Label models a jump target. A Label is created unresolved; it is
// resolved exactly once, by binding it at the buffer's current emission
// offset. A Label with unresolved sites must not be discarded without
// binding: CodeBuffer tracks every Label it creates and asserts this on
// Destroy.
type Label struct {
	resolved bool
	offset   int // valid only once resolved

	sites *sourceSite
	next  *Label // link into the owning buffer's label list
}

// CodeBuffer is an executable-memory arena: append-only emission of raw
// bytes, tracked unresolved forward references, and a one-way transition
// from writable to executable.
type CodeBuffer struct {
	region     mmap.MMap
	offset     int
	finalized  bool
	labels     *Label
}

// New maps a fresh, zeroed, read-write code buffer.
func New() (*CodeBuffer, error) {
	region, err := mmap.MapRegion(nil, codeBufferSize, mmap.RDWR, mmap.ANON, 0)
	if err != nil {
		return nil, ErrMap
	}
	return &CodeBuffer{region: region}, nil
}

// Offset returns the current append offset, i.e. the number of bytes
// emitted so far.
func (b *CodeBuffer) Offset() int {
	return b.offset
}

func (b *CodeBuffer) checkSpace(n int) {
	if b.offset+n > len(b.region) {
		panic("asm: code buffer exhausted")
	}
}

// EmitByte appends a single byte.
func (b *CodeBuffer) EmitByte(v byte) {
	b.checkSpace(1)
	b.region[b.offset] = v
	b.offset++
}

// EmitU32 appends a 32-bit little-endian word.
func (b *CodeBuffer) EmitU32(v uint32) {
	b.checkSpace(4)
	binary.LittleEndian.PutUint32(b.region[b.offset:], v)
	b.offset += 4
}

// EmitPtr appends a pointer-sized little-endian word (4 bytes on 386, 8
// on amd64).
func (b *CodeBuffer) EmitPtr(v uintptr) {
	n := int(unsafe.Sizeof(v))
	b.checkSpace(n)
	for i := 0; i < n; i++ {
		b.region[b.offset+i] = byte(v >> (8 * uint(i)))
	}
	b.offset += n
}

// NewLabel creates a fresh, unresolved label and links it into this
// buffer's label list so Destroy can account for it.
func (b *CodeBuffer) NewLabel() *Label {
	lab := &Label{next: b.labels}
	b.labels = lab
	return lab
}

// EmitLabelRef appends the 32-bit signed displacement to lab, computed as
// target - (slot + 4), matching a near jump/branch encoding. If lab is
// already resolved the displacement is written immediately; otherwise a
// pending source site is registered and a placeholder zero is written.
func (b *CodeBuffer) EmitLabelRef(lab *Label) {
	b.checkSpace(4)
	if lab.resolved {
		disp := int32(lab.offset - (b.offset + 4))
		binary.LittleEndian.PutUint32(b.region[b.offset:], uint32(disp))
		b.offset += 4
		return
	}

	site := &sourceSite{offset: b.offset, next: lab.sites}
	lab.sites = site
	binary.LittleEndian.PutUint32(b.region[b.offset:], 0)
	b.offset += 4
}

// Bind resolves lab at the buffer's current offset, patching every
// pending source site with resolved_offset - (site_offset + 4) and
// freeing the pending list.
func (b *CodeBuffer) Bind(lab *Label) {
	if lab.resolved {
		panic("asm: label resolved twice")
	}
	lab.offset = b.offset
	lab.resolved = true

	for site := lab.sites; site != nil; {
		disp := int32(lab.offset - (site.offset + 4))
		binary.LittleEndian.PutUint32(b.region[site.offset:], uint32(disp))
		next := site.next
		site = next
	}
	lab.sites = nil
}

// Finalize performs the one-shot writable -> executable transition and
// returns the entry address of the buffer. Finalize must be called at
// most once.
func (b *CodeBuffer) Finalize() (uintptr, error) {
	if b.finalized {
		panic("asm: code buffer finalized twice")
	}
	if err := unix.Mprotect(b.region, unix.PROT_READ|unix.PROT_EXEC); err != nil {
		return 0, ErrFinalize
	}
	b.finalized = true
	return uintptr(unsafe.Pointer(&b.region[0])), nil
}

// Destroy releases the mapped region. Every label created by this buffer
// must already be resolved; an unresolved label here means a loop or
// branch was left dangling by the code generator, a programmer error.
func (b *CodeBuffer) Destroy() error {
	for lab := b.labels; lab != nil; lab = lab.next {
		if !lab.resolved {
			panic("asm: label destroyed while unresolved")
		}
	}
	b.labels = nil
	return b.region.Unmap()
}
