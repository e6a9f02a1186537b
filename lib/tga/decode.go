// Copyright 2025 The Spectra Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package tga

import (
	"bufio"
	"image"
	"io"
)

type decoder struct {
	r   io.Reader
	h   *header
	dst *image.NRGBA

	// n is the number of pixels stored so far, in file order.
	n int
}

// put stores p, one pixel in TGA's BGR or BGRA order, at the next position in
// file order, honoring the descriptor's origin bits.
func (d *decoder) put(p []byte) {
	w := d.h.width
	x, y := d.n%w, d.n/w
	if (d.h.descriptor & descriptorTopToBottom) == 0 {
		y = d.h.height - 1 - y
	}
	if (d.h.descriptor & descriptorRightToLeft) != 0 {
		x = w - 1 - x
	}

	i := d.dst.PixOffset(x, y)
	d.dst.Pix[i+0] = p[2]
	d.dst.Pix[i+1] = p[1]
	d.dst.Pix[i+2] = p[0]
	if len(p) == 4 {
		d.dst.Pix[i+3] = p[3]
	} else {
		d.dst.Pix[i+3] = 0xFF
	}
	d.n++
}

func (d *decoder) decodeRaw() error {
	bpp := d.h.bytesPerPixel()
	row := make([]byte, bpp*d.h.width)
	for y := 0; y < d.h.height; y++ {
		if _, err := io.ReadFull(d.r, row); err != nil {
			return noEOF(err)
		}
		for i := 0; i < len(row); i += bpp {
			d.put(row[i : i+bpp])
		}
	}
	return nil
}

// decodeRLE reads run-length packets. Packets may span scanlines, as some
// writers emit them that way, but may not run past the end of the image.
func (d *decoder) decodeRLE() error {
	br := bufio.NewReader(d.r)
	total := d.h.width * d.h.height
	p := make([]byte, d.h.bytesPerPixel())

	for d.n < total {
		c, err := br.ReadByte()
		if err != nil {
			return noEOF(err)
		}
		count := int(c&0x7F) + 1
		if (d.n + count) > total {
			return ErrNotATGAFile
		}

		if (c & 0x80) != 0 {
			if _, err := io.ReadFull(br, p); err != nil {
				return noEOF(err)
			}
			for range count {
				d.put(p)
			}
		} else {
			for range count {
				if _, err := io.ReadFull(br, p); err != nil {
					return noEOF(err)
				}
				d.put(p)
			}
		}
	}
	return nil
}
