// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command bfdump prints the condensed instruction stream for a
// tape-language source file without running it.
package main

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"

	"github.com/go-interpreter/bf/internal/ir"
)

func main() {
	log.SetPrefix("bfdump: ")
	log.SetFlags(0)

	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <source-file>\n", os.Args[0])
		os.Exit(1)
	}

	src, err := ioutil.ReadFile(os.Args[1])
	if err != nil {
		log.Fatalf("could not read %s: %v", os.Args[1], err)
	}

	program, err := ir.Scan(src)
	if err != nil {
		log.Fatalf("could not scan program: %v", err)
	}
	ir.ResolveLoops(program)

	fmt.Print(ir.Dump(program))
}
