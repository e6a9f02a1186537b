// Copyright 2025 The Spectra Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package batch

import (
	"fmt"
	"io"
	"strings"
)

// BarWidth is the number of cells between the progress bar's brackets.
const BarWidth = 40

// Bar renders completed out of total as "[=====>    ] 50%". A zero total
// renders as complete.
func Bar(completed int, total int) string {
	if total <= 0 {
		completed, total = 1, 1
	}
	completed = min(max(completed, 0), total)
	pos := (BarWidth * completed) / total
	percent := (100 * completed) / total

	sb := strings.Builder{}
	sb.Grow(BarWidth + 8)
	sb.WriteByte('[')
	for i := range BarWidth {
		switch {
		case i < pos:
			sb.WriteByte('=')
		case i == pos:
			sb.WriteByte('>')
		default:
			sb.WriteByte(' ')
		}
	}
	fmt.Fprintf(&sb, "] %d%%", percent)
	return sb.String()
}

// Progress draws a Bar after every completed job.
type Progress struct {
	w     io.Writer
	total int
	done  int

	// inPlace redraws the bar over itself with a carriage return. Otherwise
	// every update is written on its own line.
	inPlace bool
}

// NewProgress returns a Progress for total jobs.
func NewProgress(w io.Writer, total int, inPlace bool) *Progress {
	return &Progress{w: w, total: total, inPlace: inPlace}
}

// Advance marks one more job as done and redraws the bar.
func (p *Progress) Advance() {
	if p.done < p.total {
		p.done++
	}
	if p.inPlace {
		fmt.Fprint(p.w, "\r"+Bar(p.done, p.total))
	} else {
		fmt.Fprintln(p.w, Bar(p.done, p.total))
	}
}

// Done returns the number of jobs marked as done.
func (p *Progress) Done() int {
	return p.done
}

// Interrupt ends the bar's line so that other output (such as a prompt) does
// not overwrite it. It is a no-op unless the bar is drawn in place and has
// been drawn at least once.
func (p *Progress) Interrupt() {
	if p.inPlace && (p.done > 0) {
		fmt.Fprintln(p.w)
	}
}
