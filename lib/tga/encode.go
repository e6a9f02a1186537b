// Copyright 2025 The Spectra Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package tga

import (
	"image"
	"io"

	"golang.org/x/image/draw"
)

// asNRGBA returns src as an *image.NRGBA, along with the point in that image
// that corresponds to src.Bounds().Min. Images that are already NRGBA are
// used in place. Others are converted, which un-premultiplies alpha and
// narrows 16-bit channels to their high byte.
func asNRGBA(src image.Image) (*image.NRGBA, image.Point) {
	if m, ok := src.(*image.NRGBA); ok {
		return m, m.Bounds().Min
	}
	b := src.Bounds()
	m := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(m, m.Bounds(), src, b.Min, draw.Src)
	return m, image.Point{}
}

const encoderBufferSize = 4096 - 64

type encoder struct {
	w    io.Writer
	err  error
	bufJ int
	buf  [encoderBufferSize]byte
}

func (e *encoder) flush() error {
	if e.bufJ > 0 {
		if e.err == nil {
			_, e.err = e.w.Write(e.buf[:e.bufJ])
		}
		e.bufJ = 0
	}
	return e.err
}

func (e *encoder) writeByte(x uint8) {
	if e.bufJ >= encoderBufferSize {
		e.flush()
	}
	e.buf[e.bufJ] = x
	e.bufJ++
}

// writePixel writes the RGBA pixel p in TGA's BGRA order.
func (e *encoder) writePixel(p [4]byte) {
	if e.bufJ+4 > encoderBufferSize {
		e.flush()
	}
	e.buf[e.bufJ+0] = p[2]
	e.buf[e.bufJ+1] = p[1]
	e.buf[e.bufJ+2] = p[0]
	e.buf[e.bufJ+3] = p[3]
	e.bufJ += 4
}

func (e *encoder) encodeRawRow(row []byte) {
	for i := 0; i < len(row); i += 4 {
		e.writePixel([4]byte(row[i:]))
	}
}

// encodeRLERow writes one scanline as a sequence of run-length packets.
// Packets never span scanlines.
//
// A run packet is used when a pixel repeats at least once. Otherwise a raw
// packet accumulates pixels until the next pixel would start a run.
func (e *encoder) encodeRLERow(row []byte) {
	n := len(row) / 4
	px := func(i int) [4]byte { return [4]byte(row[4*i:]) }

	for i := 0; i < n; {
		length, run := 1, false
		if i < (n - 1) {
			length = 2
			run = px(i) == px(i+1)
			if run {
				for k := i + 2; (k < n) && (length < maxPacketLength); k++ {
					if px(k) != px(i) {
						break
					}
					length++
				}
			} else {
				for k := i + 2; (k < n) && (length < maxPacketLength); k++ {
					if px(k) == px(k-1) {
						length--
						break
					}
					length++
				}
			}
		}

		if run {
			e.writeByte(0x80 | uint8(length-1))
			e.writePixel(px(i))
		} else {
			e.writeByte(uint8(length - 1))
			for k := i; k < (i + length); k++ {
				e.writePixel(px(k))
			}
		}
		i += length
	}
}
