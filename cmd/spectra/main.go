// Copyright 2025 The Spectra Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

// ----------------

// spectra converts PNG images to the Targa (TGA) image file format.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/phoenix-svg/spectra/internal/batch"
	"github.com/phoenix-svg/spectra/internal/codec"
	"github.com/phoenix-svg/spectra/lib/tga"
)

var version = "dev"

const longStr = `spectra converts PNG images to the Targa (TGA) image file format.

The input is either a single image file or a directory. A directory is not
searched recursively: every file directly inside it whose extension is .png
(in any letter case) is converted.

Each output is written next to its input, with the extension replaced by
.tga. In single file mode an explicit output path can be given instead. In
directory mode a second argument is accepted but ignored.

Every TGA is written with 32 bits per pixel (RGBA), whatever the color type
of the source image. Single file mode also accepts BMP, GIF, JPEG, TIFF and
WEBP inputs.

If an output file already exists you are asked whether to overwrite it.`

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Stderr.WriteString("spectra: " + err.Error() + "\n")
		os.Exit(1)
	}
}

type options struct {
	yes       bool
	noRLE     bool
	logLevel  string
	logFormat string
	verbose   bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:           "spectra <input.png | folder> [output.tga]",
		Version:       version,
		Short:         "Convert PNG images to Targa (TGA)",
		Long:          longStr,
		Args:          cobra.RangeArgs(1, 2),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Arguments are valid by now. Later errors are not usage errors.
			cmd.SilenceUsage = true
			return run(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "Overwrite existing output files without asking")
	cmd.Flags().BoolVar(&opts.noRLE, "no-rle", false, "Write uncompressed TGA instead of run-length encoded")
	cmd.Flags().StringVarP(&opts.logLevel, "log-level", "l", "info", "Log level (error/warn/info/debug)")
	cmd.Flags().StringVar(&opts.logFormat, "log-format", "text", "Log output format (text/json)")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	return cmd
}

func run(cmd *cobra.Command, args []string, opts *options) error {
	if err := opts.validate(); err != nil {
		return err
	}
	inputPath, outputPath := args[0], ""
	if len(args) > 1 {
		outputPath = args[1]
	}

	prompt := batch.NewPrompt(cmd.InOrStdin(), cmd.OutOrStdout())
	prompt.AssumeYes = opts.yes

	conv := &batch.Converter{
		Codec: &codec.TGA{
			Options: tga.EncodeOptions{Uncompressed: opts.noRLE},
		},
		Confirm: prompt,
		Out:     cmd.OutOrStdout(),
		Log:     buildLogger(cmd.ErrOrStderr(), opts.level(), opts.logFormat),
		InPlace: isTerminal(cmd.OutOrStdout()),
	}
	_, err := conv.Run(inputPath, outputPath)
	return err
}

func (o *options) validate() error {
	switch strings.ToLower(strings.TrimSpace(o.logLevel)) {
	case "error", "warn", "info", "debug":
	default:
		return fmt.Errorf("invalid --log-level %q (expected error/warn/info/debug)", o.logLevel)
	}
	switch strings.ToLower(strings.TrimSpace(o.logFormat)) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid --log-format %q (expected text/json)", o.logFormat)
	}
	return nil
}

func (o *options) level() slog.Level {
	if o.verbose {
		return slog.LevelDebug
	}
	switch strings.ToLower(strings.TrimSpace(o.logLevel)) {
	case "error":
		return slog.LevelError
	case "warn":
		return slog.LevelWarn
	case "debug":
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

func buildLogger(w io.Writer, level slog.Level, format string) *slog.Logger {
	if strings.ToLower(strings.TrimSpace(format)) == "json" {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	}
	removeTime := func(groups []string, a slog.Attr) slog.Attr {
		if (a.Key == slog.TimeKey) && (len(groups) == 0) {
			return slog.Attr{}
		}
		return a
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: removeTime,
	}))
}

// isTerminal reports whether w is a terminal, in which case the progress bar
// is redrawn in place.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
