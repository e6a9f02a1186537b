// Copyright 2025 The Spectra Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

// ----------------

// Package batch drives conversions of a single image file or of every PNG
// file in a directory.
//
// Jobs run one at a time, in order. Before each job whose output already
// exists, the user is asked whether to overwrite it. A failed job is logged
// and the rest of the batch carries on.
package batch

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/phoenix-svg/spectra/internal/codec"
)

// ErrAborted is returned by ConvertJob when the user declines to overwrite
// an existing output file.
var ErrAborted = errors.New("batch: aborted by user")

// Converter runs conversion jobs.
type Converter struct {
	Codec   codec.Codec
	Confirm Confirmer

	// Out receives console output: the file count, prompts, the progress
	// bar and the completion message.
	Out io.Writer
	Log *slog.Logger

	// InPlace is whether the progress bar is redrawn over itself.
	InPlace bool
}

// Run resolves inputPath and converts it.
//
// In single file mode, the error from the one job is returned, except that
// a declined overwrite is not an error. In directory mode, per-job failures
// are logged and Run returns nil. A directory without PNG files is not an
// error either.
func (c *Converter) Run(inputPath string, outputPath string) (Summary, error) {
	target, err := Resolve(inputPath, outputPath)
	if errors.Is(err, ErrNoFilesFound) {
		c.Log.Warn("No PNG files found in directory", "dir", inputPath)
		return Summary{}, nil
	} else if err != nil {
		return Summary{}, err
	}

	if target.Dir {
		if outputPath != "" {
			c.Log.Warn("Output path is ignored in directory mode", "output", outputPath)
		}
		return c.RunBatch(target.Jobs), nil
	}
	return c.runSingle(target.Jobs[0])
}

func (c *Converter) runSingle(job Job) (Summary, error) {
	s := Summary{Total: 1}
	outcome, err := c.ConvertJob(job, nil)
	s.record(outcome)

	switch outcome {
	case OutcomeSkipped:
		fmt.Fprintln(c.Out, "Aborted by user.")
		return s, nil
	case OutcomeSuccess:
		fmt.Fprintf(c.Out, "Converted %q to %q\n", job.InputPath, job.OutputPath)
		return s, nil
	}
	return s, err
}

// RunBatch converts every job, drawing a progress bar as it goes, and
// returns the tally. It does not stop at failures.
func (c *Converter) RunBatch(jobs []Job) Summary {
	s := Summary{Total: len(jobs)}
	fmt.Fprintf(c.Out, "Found %d PNG files in directory. Converting . . .\n", len(jobs))

	progress := NewProgress(c.Out, len(jobs), c.InPlace)
	for _, job := range jobs {
		outcome, err := c.ConvertJob(job, progress.Interrupt)
		s.record(outcome)
		if outcome == OutcomeFailed {
			progress.Interrupt()
			c.Log.Error("Conversion failed", "input", job.InputPath, "err", err)
		}
		progress.Advance()
	}

	progress.Interrupt()
	fmt.Fprintln(c.Out, "Done.")
	c.Log.Debug("Batch finished",
		"total", s.Total,
		"converted", s.Converted,
		"skipped", s.Skipped,
		"failed", s.Failed,
	)
	return s
}

// ConvertJob runs one job: the overwrite check, then decode and encode.
//
// beforePrompt, if non-nil, is called just before the user is asked about
// overwriting.
//
// It returns OutcomeSkipped with ErrAborted if the user declines, and
// OutcomeFailed with a *codec.DecodeError or *codec.EncodeError if the
// conversion fails.
func (c *Converter) ConvertJob(job Job, beforePrompt func()) (Outcome, error) {
	_, err := os.Stat(job.OutputPath)
	if err == nil {
		if beforePrompt != nil {
			beforePrompt()
		}
		ok, err := c.Confirm.Confirm(fmt.Sprintf("Overwrite existing %q?", job.OutputPath))
		if err != nil {
			return OutcomeFailed, err
		} else if !ok {
			c.Log.Debug("Skipping existing output", "output", job.OutputPath)
			return OutcomeSkipped, ErrAborted
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return OutcomeFailed, &codec.EncodeError{Path: job.OutputPath, Err: err}
	}

	buf, err := c.Codec.Decode(job.InputPath)
	if err != nil {
		return OutcomeFailed, err
	}
	defer buf.Release()

	c.Log.Debug("Decoded image",
		"input", job.InputPath,
		"width", buf.Width,
		"height", buf.Height,
		"channels", buf.SourceChannels,
	)
	if err := c.Codec.Encode(job.OutputPath, buf); err != nil {
		return OutcomeFailed, err
	}
	return OutcomeSuccess, nil
}
