// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build amd64

package codegen

import "github.com/go-interpreter/bf/internal/asm"

// emitPutArg places the byte to print where the SysV AMD64 ABI expects
// a function's first integer argument: RDI.
func emitPutArg(buf *asm.CodeBuffer) {
	buf.MovRR(asm.RegDI, asm.RegAX)
}
