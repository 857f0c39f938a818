// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command bf just-in-time compiles and runs a tape-language source
// file.
package main

import (
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"time"

	"github.com/go-interpreter/bf"
	"github.com/go-interpreter/bf/internal/codegen"
	"github.com/go-interpreter/bf/internal/ir"
)

func main() {
	log.SetPrefix("bf: ")
	log.SetFlags(0)

	maxData := flag.Uint64("tape", bf.DefaultMaxDataSize, "number of addressable tape cells")
	timeout := flag.Duration("timeout", 0, "virtual (CPU) time limit for the run (0 disables it)")
	verbose := flag.Bool("v", false, "print the condensed program before running")

	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <source-file>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	ir.PrintDebugInfo = *verbose
	codegen.PrintDebugInfo = *verbose

	src, err := ioutil.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatalf("could not read %s: %v", flag.Arg(0), err)
	}

	if *verbose {
		program, err := ir.Scan(src)
		if err != nil {
			log.Fatalf("could not scan program: %v", err)
		}
		ir.ResolveLoops(program)
		fmt.Fprint(os.Stderr, ir.Dump(program))
	}

	status, err := bf.Run(src, bf.Config{
		MaxDataSize: uintptr(*maxData),
		Timeout:     *timeout,
		Stdin:       os.Stdin,
		Stdout:      os.Stdout,
	})
	if err != nil {
		log.Fatal(err)
	}
	if status != bf.StatusOK {
		fmt.Fprintf(os.Stderr, "bf: %s\n", status)
		os.Exit(int(status))
	}
}
