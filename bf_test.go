// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bf_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/go-interpreter/bf"
)

type testCase struct {
	name    string
	program string
	input   string
	want    []byte
	status  bf.Status
}

func TestRun(t *testing.T) {
	tests := []testCase{
		{
			name:    "hello world",
			program: "++++++++++[>+++++++>++++++++++>+++>+<<<<-]>++.>+.+++++++..+++.>++.<<+++++++++++++++.>.+++.------.--------.>+.>.",
			want:    []byte("Hello World!\n"),
			status:  bf.StatusOK,
		},
		{
			name:    "bare put of zero cell",
			program: ".",
			want:    []byte{0},
			status:  bf.StatusOK,
		},
		{
			name:    "echo one byte",
			program: ",.",
			input:   "\x00",
			want:    []byte{0},
			status:  bf.StatusOK,
		},
		{
			name:    "increment read byte",
			program: ",+.",
			input:   "\x00",
			want:    []byte{1},
			status:  bf.StatusOK,
		},
		{
			name:    "increment read byte four times",
			program: ",++++.",
			input:   "\x00",
			want:    []byte{4},
			status:  bf.StatusOK,
		},
		{
			name:    "move right modify move left",
			program: "++>+><<.",
			want:    []byte{2},
			status:  bf.StatusOK,
		},
		{
			name:    "two cells in sequence",
			program: "++>+><<.>.",
			want:    []byte{2, 1},
			status:  bf.StatusOK,
		},
		{
			name:    "extra left before reading back",
			program: "++>+><<<.>.",
			want:    []byte{2, 1},
			status:  bf.StatusOK,
		},
		{
			name:    "loop accumulates into neighbor cell",
			program: "+++[>++<-].>.",
			want:    []byte{0, 6},
			status:  bf.StatusOK,
		},
		{
			name:    "loop builds a larger value",
			program: "+++++[>++++++++<-]>.",
			want:    []byte{40},
			status:  bf.StatusOK,
		},
		{
			name:    "two puts without a loop",
			program: "+.++++++.",
			want:    []byte{1, 7},
			status:  bf.StatusOK,
		},
		{
			name:    "add then subtract back to zero",
			program: "+-",
			want:    []byte{},
			status:  bf.StatusOK,
		},
		{
			name:    "unopened close bracket",
			program: "]",
			status:  bf.StatusUnbalanced,
		},
		{
			name:    "extra close bracket after balanced pair",
			program: "[]]",
			status:  bf.StatusUnbalanced,
		},
		{
			name:    "dangling open bracket",
			program: "[",
			status:  bf.StatusUnbalanced,
		},
		{
			name:    "non-operator bytes are comments",
			program: "a",
			status:  bf.StatusOK,
		},
		{
			name:    "read past end of input yields zero",
			program: ",,.",
			want:    []byte{0},
			status:  bf.StatusOK,
		},
		{
			name:    "left clamps at tape start",
			program: "><",
			status:  bf.StatusOK,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			status, err := bf.Run([]byte(tc.program), bf.Config{
				Stdin:   strings.NewReader(tc.input),
				Stdout:  &out,
				Timeout: 5 * time.Second,
			})
			if err != nil {
				t.Fatalf("Run: %v", err)
			}
			if status != tc.status {
				t.Fatalf("status = %v, want %v", status, tc.status)
			}
			if tc.want != nil && !bytes.Equal(out.Bytes(), tc.want) {
				t.Fatalf("output = %v, want %v", out.Bytes(), tc.want)
			}
		})
	}
}

func TestRunTapeExceeded(t *testing.T) {
	status, err := bf.Run([]byte("+[>+]"), bf.Config{
		MaxDataSize: 1 << 12,
		Timeout:     5 * time.Second,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if status != bf.StatusTapeExceeded {
		t.Fatalf("status = %v, want StatusTapeExceeded", status)
	}
}

func TestRunTimeExceeded(t *testing.T) {
	status, err := bf.Run([]byte("+[]"), bf.Config{
		Timeout: 50 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if status != bf.StatusTimeExceeded {
		t.Fatalf("status = %v, want StatusTimeExceeded", status)
	}
}
