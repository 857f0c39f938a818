// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build cgo

package runtime

/*
extern int bfReadByte(void);
extern int bfWriteByte(int);

// bf_getchar and bf_putchar are the addresses the JIT calls directly
// from generated machine code. They exist only to give the exported Go
// functions below a plain C calling convention and an address that can
// be materialized as a 64-bit immediate; cgo's own entry stubs already
// do the stack-switching work of crossing back into Go, so this is the
// one safe way for generated code to reach Go state.
static int bf_getchar(void) {
    return bfReadByte();
}

static int bf_putchar(int c) {
    return bfWriteByte(c);
}

static void *bf_getchar_addr(void) { return (void *) bf_getchar; }
static void *bf_putchar_addr(void) { return (void *) bf_putchar; }
*/
import "C"

import (
	"io"
	"sync"
	"unsafe"
)

// stdin and stdout hold the current run's input/output streams. Exactly one
// tape-language program runs at a time (Run serializes on runMu), so a
// single package-level pair is sufficient.
var (
	ioMu   sync.Mutex
	stdin  io.Reader
	stdout io.Writer
)

// BindIO installs the streams the next run's ,/. instructions read from
// and write to. Callers must hold runMu for the duration of the run.
func BindIO(r io.Reader, w io.Writer) {
	ioMu.Lock()
	defer ioMu.Unlock()
	stdin, stdout = r, w
}

//export bfReadByte
func bfReadByte() C.int {
	ioMu.Lock()
	r := stdin
	ioMu.Unlock()

	if r == nil {
		return -1
	}
	var b [1]byte
	n, err := r.Read(b[:])
	if n == 0 || err != nil {
		return -1
	}
	return C.int(b[0])
}

//export bfWriteByte
func bfWriteByte(c C.int) C.int {
	ioMu.Lock()
	w := stdout
	ioMu.Unlock()

	if w == nil {
		return -1
	}
	b := [1]byte{byte(c)}
	if _, err := w.Write(b[:]); err != nil {
		return -1
	}
	return c
}

// GetCharAddr returns the address of the native byte-input routine:
// read one byte from the bound reader, or -1 at end of stream.
func GetCharAddr() uintptr {
	return uintptr(unsafe.Pointer(C.bf_getchar_addr()))
}

// PutCharAddr returns the address of the native byte-output routine:
// write one byte to the bound writer.
func PutCharAddr() uintptr {
	return uintptr(unsafe.Pointer(C.bf_putchar_addr()))
}
