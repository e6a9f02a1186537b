// Copyright 2025 The Spectra Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package batch

import (
	"bytes"
	"strings"
	"testing"
)

func TestBar(t *testing.T) {
	tests := []struct {
		name      string
		completed int
		total     int
		want      string
	}{
		{"empty", 0, 4, "[>" + strings.Repeat(" ", 39) + "] 0%"},
		{"half", 2, 4, "[" + strings.Repeat("=", 20) + ">" + strings.Repeat(" ", 19) + "] 50%"},
		{"third", 1, 3, "[" + strings.Repeat("=", 13) + ">" + strings.Repeat(" ", 26) + "] 33%"},
		{"complete", 4, 4, "[" + strings.Repeat("=", 40) + "] 100%"},
		{"clamped", 9, 4, "[" + strings.Repeat("=", 40) + "] 100%"},
		{"zero total", 0, 0, "[" + strings.Repeat("=", 40) + "] 100%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Bar(tt.completed, tt.total)
			if got != tt.want {
				t.Errorf("Bar(%d, %d) = %q, want %q", tt.completed, tt.total, got, tt.want)
			}
			if n := strings.Index(got, "]"); n != BarWidth+1 {
				t.Errorf("bar width = %d, want %d", n-1, BarWidth)
			}
		})
	}
}

func TestProgressInPlace(t *testing.T) {
	out := &bytes.Buffer{}
	p := NewProgress(out, 2, true)
	p.Interrupt()
	p.Advance()
	p.Interrupt()
	p.Advance()
	p.Advance()

	want := "\r" + Bar(1, 2) + "\n" + "\r" + Bar(2, 2) + "\r" + Bar(2, 2)
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
	if p.Done() != 2 {
		t.Errorf("Done = %d, want 2", p.Done())
	}
}

func TestProgressLines(t *testing.T) {
	out := &bytes.Buffer{}
	p := NewProgress(out, 2, false)
	p.Advance()
	p.Interrupt()
	p.Advance()

	want := Bar(1, 2) + "\n" + Bar(2, 2) + "\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}
