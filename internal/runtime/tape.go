// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package runtime hosts the pieces of program execution that cannot be
// expressed in pure Go: mapping a tape with guard pages, and catching
// the signals that a guard-page hit or an expired virtual-time timer
// raise while the generated machine code is running.
package runtime

import (
	"errors"
	"math"
	"unsafe"

	"github.com/edsrzf/mmap-go"
	"golang.org/x/sys/unix"
)

// ErrMap is returned when the tape's anonymous mapping cannot be
// created.
var ErrMap = errors.New("runtime: failed to map tape")

// ErrGuard is returned when a guard page's permissions cannot be set.
var ErrGuard = errors.New("runtime: failed to configure guard page")

// pageSize is resolved once at package init; the original interpreter
// queries sysconf(_SC_PAGESIZE) per run, but the value never changes
// over a process's lifetime.
var pageSize = unix.Getpagesize()

// Tape is a guarded block of addressable memory: a read-write region
// bracketed by PROT_NONE guard pages sized to the largest displacement
// the program's '<'/'>' runs ever reach, so a runaway pointer walks off
// the user region and faults deterministically rather than corrupting
// adjacent memory.
type Tape struct {
	region       mmap.MMap
	pagesReverse int
	pagesForward int
	userSize     uintptr
}

// maxDisplacement bounds forward/reverse before any page arithmetic is
// done on them, mirroring the original interpreter's
// "traverse_forward/reverse >= SIZE_MAX/2 - page_size" check: past this
// point the page-count and allocation-size arithmetic below would
// overflow rather than fail cleanly.
const maxDisplacement = math.MaxInt64/2 - 1<<20

// NewTape maps a tape sized to hold userSize addressable bytes, with
// guard pages sized from forward/reverse (the largest '>' / '<' run
// lengths observed in the program, in bytes). A forward or reverse
// displacement too large for the page-count arithmetic below to carry
// out safely is rejected as a guard-configuration error rather than
// silently wrapping.
func NewTape(userSize uintptr, forward, reverse int64) (*Tape, error) {
	if forward >= maxDisplacement-int64(pageSize) || reverse >= maxDisplacement-int64(pageSize) {
		return nil, ErrGuard
	}

	pagesForward := ceilDiv(forward, int64(pageSize))
	pagesReverse := ceilDiv(reverse, int64(pageSize))

	rounded := roundUp(userSize, uintptr(pageSize))
	allocated := rounded + uintptr(pagesForward+pagesReverse)*uintptr(pageSize)

	region, err := mmap.MapRegion(nil, int(allocated), mmap.RDWR, mmap.ANON, 0)
	if err != nil {
		return nil, ErrMap
	}

	if pagesReverse > 0 {
		if err := unix.Mprotect(region[:pagesReverse*pageSize], unix.PROT_NONE); err != nil {
			region.Unmap()
			return nil, ErrGuard
		}
	}
	if pagesForward > 0 {
		start := pagesReverse*pageSize + int(rounded)
		if err := unix.Mprotect(region[start:start+pagesForward*pageSize], unix.PROT_NONE); err != nil {
			region.Unmap()
			return nil, ErrGuard
		}
	}

	return &Tape{
		region:       region,
		pagesReverse: pagesReverse,
		pagesForward: pagesForward,
		userSize:     rounded,
	}, nil
}

// Start returns the address of the first addressable (non-guard) cell.
func (t *Tape) Start() uintptr {
	return addrOf(t.region) + uintptr(t.pagesReverse*pageSize)
}

// Base returns the address of the mapping's first byte (the start of
// the reverse guard region), needed by the fault classifier to tell a
// guard hit from a fault that belongs to the rest of the process.
func (t *Tape) Base() uintptr {
	return addrOf(t.region)
}

// End returns the address one past the mapping's last byte.
func (t *Tape) End() uintptr {
	return addrOf(t.region) + uintptr(len(t.region))
}

// UserStart and UserEnd bound the read-write region between the two
// guard bands.
func (t *Tape) UserStart() uintptr { return t.Start() }
func (t *Tape) UserEnd() uintptr   { return t.Start() + t.userSize }

// Close releases the tape's mapping, guard pages included.
func (t *Tape) Close() error {
	return t.region.Unmap()
}

func addrOf(region mmap.MMap) uintptr {
	return uintptr(unsafe.Pointer(&region[0]))
}

func ceilDiv(n, d int64) int {
	if n <= 0 {
		return 0
	}
	return int((n + d - 1) / d)
}

func roundUp(n, align uintptr) uintptr {
	return (n + align - 1) &^ (align - 1)
}
