// Copyright 2025 The Spectra Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/phoenix-svg/spectra/internal/batch"
)

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writePNG(t *testing.T, path string) {
	t.Helper()
	buf := &bytes.Buffer{}
	if err := png.Encode(buf, image.NewNRGBA(image.Rect(0, 0, 4, 3))); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestUsageError(t *testing.T) {
	stdout, _, err := execute(t, "")
	if err == nil {
		t.Fatal("expected an error with no arguments")
	}
	if !strings.Contains(stdout, "Usage:") {
		t.Errorf("usage not printed: %q", stdout)
	}

	if _, _, err := execute(t, "", "a.png", "b.tga", "c"); err == nil {
		t.Error("expected an error with three arguments")
	}
}

func TestMissingInput(t *testing.T) {
	dir := t.TempDir()
	stdout, _, err := execute(t, "", filepath.Join(dir, "missing.png"))
	if !errors.Is(err, batch.ErrInputNotFound) {
		t.Fatalf("err = %v, want %v", err, batch.ErrInputNotFound)
	}
	if strings.Contains(stdout, "Usage:") {
		t.Errorf("usage printed for a runtime error: %q", stdout)
	}
	if _, err := os.Stat(filepath.Join(dir, "missing.tga")); err == nil {
		t.Error("output file was created")
	}
}

func TestConvertFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "icon.PNG")
	writePNG(t, in)

	stdout, _, err := execute(t, "", in)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.Contains(stdout, "Converted") {
		t.Errorf("stdout = %q", stdout)
	}
	if _, err := os.Stat(filepath.Join(dir, "icon.tga")); err != nil {
		t.Errorf("output: %v", err)
	}
}

func TestOverwritePrompt(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "icon.png")
	out := filepath.Join(dir, "icon.tga")
	writePNG(t, in)
	if err := os.WriteFile(out, []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}

	stdout, _, err := execute(t, "n\n", in)
	if err != nil {
		t.Fatalf("declined: %v", err)
	}
	if !strings.Contains(stdout, "(y/n)") || !strings.Contains(stdout, "Aborted by user.") {
		t.Errorf("declined stdout = %q", stdout)
	}
	if data, _ := os.ReadFile(out); string(data) != "old" {
		t.Errorf("declined: output = %q, want unchanged", data)
	}

	stdout, _, err = execute(t, "", "--yes", in)
	if err != nil {
		t.Fatalf("--yes: %v", err)
	}
	if strings.Contains(stdout, "(y/n)") {
		t.Errorf("--yes still prompted: %q", stdout)
	}
	if data, _ := os.ReadFile(out); string(data) == "old" {
		t.Error("--yes: output was not overwritten")
	}
}

func TestConvertDirectoryNoRLE(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"))
	writePNG(t, filepath.Join(dir, "b.png"))

	stdout, _, err := execute(t, "", "--no-rle", dir)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.Contains(stdout, "Done.") {
		t.Errorf("stdout = %q", stdout)
	}
	data, err := os.ReadFile(filepath.Join(dir, "a.tga"))
	if err != nil {
		t.Fatal(err)
	}
	if (data[2] != 0x02) || (len(data) != 18+(4*3*4)) {
		t.Errorf("a.tga: type %d, %d bytes, want an uncompressed 4x3 image", data[2], len(data))
	}
}

func TestEmptyDirectory(t *testing.T) {
	_, stderr, err := execute(t, "", t.TempDir())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.Contains(stderr, "No PNG files found") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestBadLogFlags(t *testing.T) {
	in := filepath.Join(t.TempDir(), "a.png")
	writePNG(t, in)
	if _, _, err := execute(t, "", "--log-level", "loud", in); err == nil {
		t.Error("expected an error for --log-level loud")
	}
	if _, _, err := execute(t, "", "--log-format", "xml", in); err == nil {
		t.Error("expected an error for --log-format xml")
	}
}

func TestOptionsLevel(t *testing.T) {
	tests := []struct {
		opts options
		want slog.Level
	}{
		{options{logLevel: "info"}, slog.LevelInfo},
		{options{logLevel: "ERROR"}, slog.LevelError},
		{options{logLevel: " warn "}, slog.LevelWarn},
		{options{logLevel: "debug"}, slog.LevelDebug},
		{options{logLevel: "error", verbose: true}, slog.LevelDebug},
	}
	for _, tt := range tests {
		if got := tt.opts.level(); got != tt.want {
			t.Errorf("%+v: level = %v, want %v", tt.opts, got, tt.want)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	if isTerminal(&bytes.Buffer{}) {
		t.Error("a bytes.Buffer is not a terminal")
	}
}
