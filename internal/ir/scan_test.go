// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ir

import (
	"reflect"
	"testing"
)

func TestScanCoalescesRuns(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []Instruction
	}{
		{"empty", "", nil},
		{"comments around one get", "hello, world", []Instruction{{Op: OpGet}}},
		{"modify run", "+++--", []Instruction{{Op: OpModify, Val: 1}}},
		{"right run", ">>>", []Instruction{{Op: OpRight, Val: 3}}},
		{"left run", "<<", []Instruction{{Op: OpLeft, Val: 2}}},
		{
			"mixed runs do not coalesce across op boundary",
			"++>><<",
			[]Instruction{
				{Op: OpModify, Val: 2},
				{Op: OpRight, Val: 2},
				{Op: OpLeft, Val: 2},
			},
		},
		{
			"distinct single-char ops never coalesce",
			".,.,",
			[]Instruction{
				{Op: OpPut}, {Op: OpGet}, {Op: OpPut}, {Op: OpGet},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Scan([]byte(tc.src))
			if err != nil {
				t.Fatalf("Scan(%q): %v", tc.src, err)
			}
			if len(tc.want) == 0 && len(got) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Scan(%q) = %+v, want %+v", tc.src, got, tc.want)
			}
		})
	}
}

func TestScanUnbalanced(t *testing.T) {
	tests := []string{
		"]",
		"[",
		"[[]",
		"[]]",
		"++[--",
	}

	for _, src := range tests {
		if _, err := Scan([]byte(src)); err != ErrUnbalanced {
			t.Errorf("Scan(%q) error = %v, want ErrUnbalanced", src, err)
		}
	}
}

func TestScanBalancedNesting(t *testing.T) {
	if _, err := Scan([]byte("[[][]]")); err != nil {
		t.Fatalf("Scan: %v", err)
	}
}
