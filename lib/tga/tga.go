// Copyright 2025 The Spectra Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

// ----------------

// Package tga implements the Truevision TGA (Targa) image file format.
//
// Only the true-color subset is supported: image types 2 (uncompressed) and
// 10 (run-length encoded), at 24 or 32 bits per pixel. That is what game
// engines and UI toolkits that consume Targa textures expect. Color-mapped
// and grayscale TGA files are rejected.
//
// TGA has no magic number, so this package does not register itself with
// the image package. Call Decode or DecodeConfig directly.
//
// TGA is specified at
// https://www.dca.fee.unicamp.br/~martino/disciplinas/ea978/tgaffs.pdf
package tga

import (
	"errors"
	"image"
	"image/color"
	"io"
)

var (
	ErrBadArgument        = errors.New("tga: bad argument")
	ErrNotATGAFile        = errors.New("tga: not a TGA file")
	ErrUnsupportedTGAFile = errors.New("tga: unsupported TGA file")
	ErrImageIsTooLarge    = errors.New("tga: image is too large")
)

const headerSize = 18

// maxPacketLength is the maximum number of pixels in one run-length packet.
const maxPacketLength = 128

// ImageType is the TGA header's "image type" field.
type ImageType uint8

const (
	ImageTypeTrueColor    = ImageType(0x02)
	ImageTypeRLETrueColor = ImageType(0x0A)
)

// Image descriptor bits.
const (
	descriptorRightToLeft = 0x10
	descriptorTopToBottom = 0x20
)

type header struct {
	idLength     int
	imageType    ImageType
	width        int
	height       int
	bitsPerPixel int
	descriptor   uint8
}

func (h *header) bytesPerPixel() int {
	return h.bitsPerPixel / 8
}

func decodeHeader(r io.Reader) (retHeader header, retConfig image.Config, retErr error) {
	buf := [headerSize]byte{}
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return header{}, image.Config{}, err
	}

	h := header{
		idLength:     int(buf[0x00]),
		imageType:    ImageType(buf[0x02]),
		width:        int(buf[0x0C]) | (int(buf[0x0D]) << 8),
		height:       int(buf[0x0E]) | (int(buf[0x0F]) << 8),
		bitsPerPixel: int(buf[0x10]),
		descriptor:   buf[0x11],
	}

	// Color map type must be 0 or 1. Anything else means this is not a TGA
	// file at all rather than an unsupported flavor of one.
	switch buf[0x01] {
	case 0x00:
		// No-op.
	case 0x01:
		return header{}, image.Config{}, ErrUnsupportedTGAFile
	default:
		return header{}, image.Config{}, ErrNotATGAFile
	}

	switch h.imageType {
	case ImageTypeTrueColor, ImageTypeRLETrueColor:
		// No-op.
	case 0x00, 0x01, 0x03, 0x09, 0x0B:
		return header{}, image.Config{}, ErrUnsupportedTGAFile
	default:
		return header{}, image.Config{}, ErrNotATGAFile
	}

	switch h.bitsPerPixel {
	case 24, 32:
		// No-op.
	case 15, 16:
		return header{}, image.Config{}, ErrUnsupportedTGAFile
	default:
		return header{}, image.Config{}, ErrNotATGAFile
	}

	return h, image.Config{
		ColorModel: color.NRGBAModel,
		Width:      h.width,
		Height:     h.height,
	}, nil
}

// DecodeConfig reads a TGA image configuration from r.
func DecodeConfig(r io.Reader) (image.Config, error) {
	_, config, err := decodeHeader(r)
	return config, err
}

// Decode reads a TGA image from r. The concrete type of the returned image
// is always *image.NRGBA. 24-bit images are given opaque alpha.
func Decode(r io.Reader) (image.Image, error) {
	h, config, err := decodeHeader(r)
	if err != nil {
		return nil, err
	}
	if h.idLength > 0 {
		if _, err := io.CopyN(io.Discard, r, int64(h.idLength)); err != nil {
			return nil, noEOF(err)
		}
	}

	m := image.NewNRGBA(image.Rect(0, 0, config.Width, config.Height))
	d := &decoder{r: r, h: &h, dst: m}
	if h.imageType == ImageTypeRLETrueColor {
		err = d.decodeRLE()
	} else {
		err = d.decodeRaw()
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

// EncodeOptions are optional arguments to Encode. The zero value is valid and
// means to use the default configuration.
type EncodeOptions struct {
	// If true, the image is written as type 2 (uncompressed). The default is
	// type 10 (run-length encoded).
	Uncompressed bool
}

// Encode writes src to w in the TGA format, as 32 bits per pixel (BGRA,
// non-premultiplied alpha) with a bottom-left origin.
//
// Every source image, whatever its color model, is expanded to 4 channels.
//
// options may be nil, which means to use the default configuration.
func Encode(w io.Writer, src image.Image, options *EncodeOptions) error {
	if (w == nil) || (src == nil) {
		return ErrBadArgument
	}
	b := src.Bounds()
	bW, bH := b.Dx(), b.Dy()
	if (bW > 0xFFFF) || (bH > 0xFFFF) {
		return ErrImageIsTooLarge
	}

	imageType := ImageTypeRLETrueColor
	if (options != nil) && options.Uncompressed {
		imageType = ImageTypeTrueColor
	}

	buf := [headerSize]byte{}
	buf[0x02] = uint8(imageType)
	buf[0x0C] = uint8(bW >> 0)
	buf[0x0D] = uint8(bW >> 8)
	buf[0x0E] = uint8(bH >> 0)
	buf[0x0F] = uint8(bH >> 8)
	buf[0x10] = 32
	buf[0x11] = 8 // 8 alpha bits, bottom-left origin.
	if _, err := w.Write(buf[:]); err != nil {
		return err
	}

	m, origin := asNRGBA(src)
	e := &encoder{w: w}
	for y := bH - 1; y >= 0; y-- {
		i := m.PixOffset(origin.X, origin.Y+y)
		row := m.Pix[i : i+(4*bW)]
		if imageType == ImageTypeRLETrueColor {
			e.encodeRLERow(row)
		} else {
			e.encodeRawRow(row)
		}
		if e.err != nil {
			return e.err
		}
	}
	return e.flush()
}

func noEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}
