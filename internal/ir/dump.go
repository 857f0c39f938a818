// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ir

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"
)

// PrintDebugInfo selects the package logger's destination, io.Discard or
// os.Stderr. The logger is configured once, in init, from the
// variable's initial value; assigning it later does not redirect the
// logger.
var PrintDebugInfo = false

var logger *log.Logger

func init() {
	w := ioutil.Discard
	if PrintDebugInfo {
		w = os.Stderr
	}
	logger = log.New(w, "ir: ", log.Lshortfile)
}

func (op Op) String() string {
	switch op {
	case OpModify:
		return "modify"
	case OpRight:
		return "right"
	case OpLeft:
		return "left"
	case OpGet:
		return "get"
	case OpPut:
		return "put"
	case OpIf:
		return "if"
	case OpEndIf:
		return "endif"
	default:
		return "invalid"
	}
}

// Dump renders program as one line per instruction, annotating each
// OpIf/OpEndIf with the index of its matching bracket. It is intended
// for -v/-dump style diagnostics, not for machine consumption.
func Dump(program []Instruction) string {
	var out string
	for i, inst := range program {
		out += formatInstruction(i, inst) + "\n"
	}
	return out
}

func formatInstruction(i int, inst Instruction) string {
	switch inst.Op {
	case OpModify, OpRight, OpLeft:
		return fmt.Sprintf("%d: %s %d", i, inst.Op, inst.Val)
	case OpIf, OpEndIf:
		return fmt.Sprintf("%d: %s -> %d", i, inst.Op, inst.Branch)
	default:
		return fmt.Sprintf("%d: %s", i, inst.Op)
	}
}
