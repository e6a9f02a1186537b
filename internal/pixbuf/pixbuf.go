// Copyright 2025 The Spectra Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

// ----------------

// Package pixbuf holds decoded images as flat 4-channel pixel buffers.
//
// Whatever the source image's color model (gray, paletted, RGB, RGBA, 8 or
// 16 bits per channel), a Buffer always has exactly 4 bytes per pixel in R,
// G, B, A order with non-premultiplied alpha.
package pixbuf

import (
	"errors"
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Channels is the number of bytes per pixel in every Buffer.
const Channels = 4

var (
	ErrBadArgument = errors.New("pixbuf: bad argument")
	ErrReleased    = errors.New("pixbuf: buffer was released")
)

// Buffer is a 4-channel image held in memory for the duration of one
// conversion.
type Buffer struct {
	// Pix holds the pixels in row-major order, 4*Width bytes per row.
	Pix    []byte
	Width  int
	Height int

	// Channels is always 4.
	Channels int

	// SourceChannels is the number of channels in the image that this
	// Buffer was built from: 1 for gray, 3 for opaque color, 4 otherwise.
	SourceChannels int
}

// New returns a zeroed (transparent black) Buffer.
func New(width int, height int) (*Buffer, error) {
	if (width < 0) || (height < 0) || ((width > 0) && (height > (maxInt / (Channels * width)))) {
		return nil, ErrBadArgument
	}
	return &Buffer{
		Pix:            make([]byte, Channels*width*height),
		Width:          width,
		Height:         height,
		Channels:       Channels,
		SourceChannels: Channels,
	}, nil
}

const maxInt = int(^uint(0) >> 1)

// FromImage expands m to a 4-channel Buffer. The top-left pixel of m's
// bounds becomes the Buffer's (0, 0).
func FromImage(m image.Image) (*Buffer, error) {
	if m == nil {
		return nil, ErrBadArgument
	}
	b := m.Bounds()
	ret, err := New(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}
	ret.SourceChannels = sourceChannels(m)
	i := 0

	switch m := m.(type) {
	case *image.Gray:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				at := m.GrayAt(x, y)
				ret.Pix[i+0] = at.Y
				ret.Pix[i+1] = at.Y
				ret.Pix[i+2] = at.Y
				ret.Pix[i+3] = 0xFF
				i += 4
			}
		}
		return ret, nil

	case *image.Gray16:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				at := m.Gray16At(x, y)
				ret.Pix[i+0] = uint8(at.Y >> 8)
				ret.Pix[i+1] = uint8(at.Y >> 8)
				ret.Pix[i+2] = uint8(at.Y >> 8)
				ret.Pix[i+3] = 0xFF
				i += 4
			}
		}
		return ret, nil

	case *image.NRGBA:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			j := m.PixOffset(b.Min.X, y)
			i += copy(ret.Pix[i:], m.Pix[j:j+(4*b.Dx())])
		}
		return ret, nil

	case *image.Paletted:
		palette := make([]color.NRGBA, len(m.Palette))
		for k, c := range m.Palette {
			palette[k] = color.NRGBAModel.Convert(c).(color.NRGBA)
		}
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				at := color.NRGBA{}
				if k := int(m.ColorIndexAt(x, y)); k < len(palette) {
					at = palette[k]
				}
				ret.Pix[i+0] = at.R
				ret.Pix[i+1] = at.G
				ret.Pix[i+2] = at.B
				ret.Pix[i+3] = at.A
				i += 4
			}
		}
		return ret, nil
	}

	draw.Draw(ret.Image(), image.Rect(0, 0, ret.Width, ret.Height), m, b.Min, draw.Src)
	return ret, nil
}

// Image returns an *image.NRGBA that shares b's pixels.
func (b *Buffer) Image() *image.NRGBA {
	return &image.NRGBA{
		Pix:    b.Pix,
		Stride: Channels * b.Width,
		Rect:   image.Rect(0, 0, b.Width, b.Height),
	}
}

// Release drops the pixel data. A released Buffer reports ErrReleased from
// Validate.
func (b *Buffer) Release() {
	b.Pix = nil
}

// Validate checks that b is internally consistent and still holds its pixels.
func (b *Buffer) Validate() error {
	if b == nil {
		return ErrBadArgument
	}
	if (b.Pix == nil) && (b.Width > 0) && (b.Height > 0) {
		return ErrReleased
	}
	if (b.Channels != Channels) || (b.Width < 0) || (b.Height < 0) ||
		(len(b.Pix) != (Channels * b.Width * b.Height)) {
		return ErrBadArgument
	}
	return nil
}

func sourceChannels(m image.Image) int {
	switch m := m.(type) {
	case *image.Gray, *image.Gray16:
		return 1
	case *image.YCbCr:
		return 3
	case *image.RGBA:
		if m.Opaque() {
			return 3
		}
	case *image.RGBA64:
		if m.Opaque() {
			return 3
		}
	case *image.Paletted:
		if m.Opaque() {
			return 3
		}
	}
	return 4
}
