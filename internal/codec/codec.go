// Copyright 2025 The Spectra Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

// ----------------

// Package codec loads source images into 4-channel pixel buffers and writes
// those buffers out as TGA files.
package codec

import (
	"bufio"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/phoenix-svg/spectra/internal/pixbuf"
	"github.com/phoenix-svg/spectra/lib/tga"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Codec decodes and encodes whole image files.
type Codec interface {
	// Decode loads the image at path, expanded to 4 channels.
	Decode(path string) (*pixbuf.Buffer, error)
	// Encode writes buf to path.
	Encode(path string, buf *pixbuf.Buffer) error
}

// DecodeError reports that the image at Path could not be loaded.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("error loading %q: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// EncodeError reports that the image could not be written to Path.
type EncodeError struct {
	Path string
	Err  error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("error writing %q: %v", e.Path, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }

// TGA is a Codec that reads any image format registered with the image
// package (BMP, GIF, JPEG, PNG, TIFF and WEBP) and writes 32-bit TGA.
//
// The zero value is ready to use.
type TGA struct {
	Options tga.EncodeOptions
}

var _ Codec = (*TGA)(nil)

// Decode implements Codec.
func (c *TGA) Decode(path string) (*pixbuf.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	defer f.Close()

	m, _, err := image.Decode(bufio.NewReader(f))
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	buf, err := pixbuf.FromImage(m)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	return buf, nil
}

// Encode implements Codec. The file is written to a temporary sibling of path
// and renamed into place, so a failed write never leaves a truncated TGA
// behind or clobbers an existing one.
func (c *TGA) Encode(path string, buf *pixbuf.Buffer) error {
	if err := buf.Validate(); err != nil {
		return &EncodeError{Path: path, Err: err}
	}
	if err := c.writeFileAtomic(path, buf); err != nil {
		return &EncodeError{Path: path, Err: err}
	}
	return nil
}

func (c *TGA) writeFileAtomic(path string, buf *pixbuf.Buffer) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".spectra-*.tga.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	w := bufio.NewWriter(tmp)
	if err := tga.Encode(w, buf.Image(), &c.Options); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
