// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build 386

package codegen

import "github.com/go-interpreter/bf/internal/asm"

// emitPutArg places the byte to print where cdecl expects a function's
// first argument: at [esp]. The prologue's stackAdjust already carved
// out room for it while keeping the call site 16-byte aligned.
func emitPutArg(buf *asm.CodeBuffer) {
	buf.MovRMRint(asm.RegSP, asm.RegAX)
}
