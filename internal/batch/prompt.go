// Copyright 2025 The Spectra Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package batch

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Confirmer answers yes/no questions.
type Confirmer interface {
	Confirm(question string) (bool, error)
}

// Prompt is a Confirmer that writes the question to Out and reads the answer
// from In. It blocks until an answer arrives.
type Prompt struct {
	in  *bufio.Reader
	out io.Writer

	// AssumeYes answers every question with yes, without reading from In.
	AssumeYes bool
}

// NewPrompt returns a Prompt reading from in and writing to out.
func NewPrompt(in io.Reader, out io.Writer) *Prompt {
	return &Prompt{in: bufio.NewReader(in), out: out}
}

// Confirm prints question followed by " (y/n): " and reads a reply. Blank
// lines are skipped. The first character of the reply decides: 'y' or 'Y'
// means yes, anything else means no. End of input means no.
func (p *Prompt) Confirm(question string) (bool, error) {
	if p.AssumeYes {
		return true, nil
	}
	if _, err := fmt.Fprintf(p.out, "%s (y/n): ", question); err != nil {
		return false, err
	}

	for {
		line, err := p.in.ReadString('\n')
		if reply := strings.TrimSpace(line); reply != "" {
			return (reply[0] == 'y') || (reply[0] == 'Y'), nil
		}
		if err == io.EOF {
			return false, nil
		} else if err != nil {
			return false, err
		}
	}
}
