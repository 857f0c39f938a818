// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import "testing"

func TestLabelBackwardBranch(t *testing.T) {
	buf, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer buf.Destroy()

	top := buf.NewLabel()
	buf.Bind(top)
	buf.Ret()

	before := buf.Offset()
	buf.Jmp(top)

	// The displacement is resolved immediately since top is already
	// bound: target(0) - (slot(before+1) + 4).
	want := int32(0 - (before + 1 + 4))
	got := readDisp32(t, buf, before+1)
	if got != want {
		t.Fatalf("backward branch displacement = %d, want %d", got, want)
	}
}

func TestLabelForwardBranchSingleSite(t *testing.T) {
	buf, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer buf.Destroy()

	end := buf.NewLabel()

	siteAt := buf.Offset() + 1 // where the displacement slot lands
	buf.Jmp(end)
	buf.Ret()

	bindOffset := buf.Offset()
	buf.Bind(end)

	want := int32(bindOffset - (siteAt + 4))
	got := readDisp32(t, buf, siteAt)
	if got != want {
		t.Fatalf("forward branch displacement = %d, want %d", got, want)
	}
}

func TestLabelForwardBranchMultipleSites(t *testing.T) {
	buf, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer buf.Destroy()

	end := buf.NewLabel()

	site1 := buf.Offset() + 1
	buf.Jmp(end)
	site2 := buf.Offset() + 2
	buf.Jcc(CondEqual, end)

	bindOffset := buf.Offset()
	buf.Bind(end)

	if got, want := readDisp32(t, buf, site1), int32(bindOffset-(site1+4)); got != want {
		t.Fatalf("site1 displacement = %d, want %d", got, want)
	}
	if got, want := readDisp32(t, buf, site2), int32(bindOffset-(site2+4)); got != want {
		t.Fatalf("site2 displacement = %d, want %d", got, want)
	}
}

func TestBindTwiceFails(t *testing.T) {
	buf, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer buf.Destroy()

	lab := buf.NewLabel()
	buf.Bind(lab)

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic rebinding a resolved label")
		}
	}()
	buf.Bind(lab)
}

func TestDestroyWithUnresolvedLabelPanics(t *testing.T) {
	buf, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	lab := buf.NewLabel()
	buf.Jmp(lab) // never bound

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic destroying buffer with unresolved label")
		}
	}()
	buf.Destroy()
}

func TestFinalizeTwicePanics(t *testing.T) {
	buf, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer buf.Destroy()

	buf.Ret()
	if _, err := buf.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic finalizing twice")
		}
	}()
	buf.Finalize()
}

func readDisp32(t *testing.T, buf *CodeBuffer, offset int) int32 {
	t.Helper()
	raw := buf.region[offset : offset+4]
	return int32(uint32(raw[0]) | uint32(raw[1])<<8 | uint32(raw[2])<<16 | uint32(raw[3])<<24)
}
