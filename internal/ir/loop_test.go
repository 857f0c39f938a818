// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ir

import "testing"

func TestResolveLoopsSingle(t *testing.T) {
	program, err := Scan([]byte("[+]"))
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	ResolveLoops(program)

	if program[0].Op != OpIf || program[0].Branch != 2 {
		t.Fatalf("If branch = %d, want 2", program[0].Branch)
	}
	if program[2].Op != OpEndIf || program[2].Branch != 0 {
		t.Fatalf("EndIf branch = %d, want 0", program[2].Branch)
	}
}

func TestResolveLoopsNested(t *testing.T) {
	// [ > [ < ] > ]
	program, err := Scan([]byte("[>[<]>]"))
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	ResolveLoops(program)

	// Indices: 0:If 1:Right 2:If 3:Left 4:EndIf 5:Right 6:EndIf
	if program[0].Branch != 6 || program[6].Branch != 0 {
		t.Fatalf("outer loop mispaired: If->%d EndIf->%d", program[0].Branch, program[6].Branch)
	}
	if program[2].Branch != 4 || program[4].Branch != 2 {
		t.Fatalf("inner loop mispaired: If->%d EndIf->%d", program[2].Branch, program[4].Branch)
	}
}

func TestResolveLoopsSequential(t *testing.T) {
	program, err := Scan([]byte("[+][-]"))
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	ResolveLoops(program)

	if program[0].Branch != 2 || program[2].Branch != 0 {
		t.Fatalf("first loop mispaired: %+v", program[0:3])
	}
	if program[3].Branch != 5 || program[5].Branch != 3 {
		t.Fatalf("second loop mispaired: %+v", program[3:6])
	}
}

func TestMaxDisplacement(t *testing.T) {
	program, err := Scan([]byte(">>>><<+.<<<<<<<"))
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	forward, reverse := MaxDisplacement(program)
	if forward != 4 {
		t.Errorf("forward = %d, want 4", forward)
	}
	if reverse != 7 {
		t.Errorf("reverse = %d, want 7", reverse)
	}
}
