// Copyright 2025 The Spectra Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package batch

import (
	"path/filepath"
	"strings"
)

// OutputExt is the extension given to every derived output path.
const OutputExt = ".tga"

// Job is one input to output conversion.
type Job struct {
	InputPath  string
	OutputPath string
}

// NewJob returns a Job for inputPath. If outputPath is empty it is derived
// with OutputPathFor.
func NewJob(inputPath string, outputPath string) Job {
	if outputPath == "" {
		outputPath = OutputPathFor(inputPath)
	}
	return Job{InputPath: inputPath, OutputPath: outputPath}
}

// OutputPathFor replaces inputPath's extension, whatever its case, with
// ".tga". A path without an extension has ".tga" appended.
func OutputPathFor(inputPath string) string {
	return strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + OutputExt
}

// Outcome is the terminal state of a Job.
type Outcome uint8

const (
	OutcomePending = Outcome(0)
	OutcomeSkipped = Outcome(1)
	OutcomeFailed  = Outcome(2)
	OutcomeSuccess = Outcome(3)
)

func (o Outcome) String() string {
	switch o {
	case OutcomePending:
		return "pending"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFailed:
		return "failed"
	case OutcomeSuccess:
		return "succeeded"
	}
	return "unknown"
}

// Summary counts the outcomes of a run. Completed is Skipped + Failed +
// Converted, and never exceeds Total.
type Summary struct {
	Total     int
	Completed int
	Converted int
	Skipped   int
	Failed    int
}

func (s *Summary) record(o Outcome) {
	switch o {
	case OutcomeSkipped:
		s.Skipped++
	case OutcomeFailed:
		s.Failed++
	case OutcomeSuccess:
		s.Converted++
	default:
		return
	}
	s.Completed++
}
