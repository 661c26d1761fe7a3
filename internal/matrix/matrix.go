// Copyright 2025 The Wuffs Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0> or the MIT license
// <LICENSE-MIT or https://opensource.org/licenses/MIT>, at your
// option. This file may not be copied, modified, or distributed
// except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

// Package matrix is a thin adapter over the standard library's image
// package, giving the scramble pipeline the small set of pixel-grid
// operations it needs (row copy, transpose, resize, concat, reflect-pad,
// wrap-translate) without depending on a general-purpose numerical matrix
// library, which is out of scope for this codec.
//
// Every Image is three-channel (RGB), stored with a throwaway alpha channel
// fixed at 0xFF, backed by an *image.RGBA for compatibility with the rest of
// the standard library image ecosystem (image/png, golang.org/x/image/draw).
package matrix

import (
	"image"
	"image/draw"

	xdraw "golang.org/x/image/draw"
)

// ErrShape is returned when two images involved in an operation have
// incompatible dimensions.
var ErrShape = shapeError("matrix: incompatible image dimensions")

type shapeError string

func (e shapeError) Error() string { return string(e) }

// Pixel is one RGB triple.
type Pixel [3]uint8

// Image is a rectangular grid of RGB pixels.
type Image struct {
	Width  int
	Height int
	pix    *image.RGBA
}

// New returns a white w×h image.
func New(w, h int) *Image {
	img := &Image{Width: w, Height: h, pix: image.NewRGBA(image.Rect(0, 0, w, h))}
	img.Fill(Pixel{0xFF, 0xFF, 0xFF})
	return img
}

// FromRGBA adapts an existing *image.RGBA without copying its pixels.
func FromRGBA(src *image.RGBA) *Image {
	b := src.Bounds()
	return &Image{Width: b.Dx(), Height: b.Dy(), pix: src}
}

// FromStdImage copies any image.Image into a fresh three-channel Image.
func FromStdImage(src image.Image) *Image {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return FromRGBA(dst)
}

// RGBA returns the backing *image.RGBA, e.g. for png.Encode.
func (m *Image) RGBA() *image.RGBA { return m.pix }

// Fill sets every pixel of m to p.
func (m *Image) Fill(p Pixel) {
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			m.Set(x, y, p)
		}
	}
}

// At returns the pixel at (x, y). It does not bounds-check.
func (m *Image) At(x, y int) Pixel {
	o := m.pix.PixOffset(x, y)
	px := m.pix.Pix[o : o+4 : o+4]
	return Pixel{px[0], px[1], px[2]}
}

// Set writes the pixel at (x, y). It does not bounds-check.
func (m *Image) Set(x, y int, p Pixel) {
	o := m.pix.PixOffset(x, y)
	px := m.pix.Pix[o : o+4 : o+4]
	px[0], px[1], px[2], px[3] = p[0], p[1], p[2], 0xFF
}

// Rect returns a fresh copy of the w×h region of m with top-left corner
// (x, y). Pixels outside m's bounds are left white.
func (m *Image) Rect(x, y, w, h int) *Image {
	ret := New(w, h)
	for dy := 0; dy < h; dy++ {
		sy := y + dy
		if sy < 0 || sy >= m.Height {
			continue
		}
		for dx := 0; dx < w; dx++ {
			sx := x + dx
			if sx < 0 || sx >= m.Width {
				continue
			}
			ret.Set(dx, dy, m.At(sx, sy))
		}
	}
	return ret
}

// CopyRow copies row i of src into row j of dst. The two images must have
// the same width.
func CopyRow(src *Image, i int, dst *Image, j int) error {
	if src.Width != dst.Width {
		return ErrShape
	}
	for x := 0; x < src.Width; x++ {
		dst.Set(x, j, src.At(x, i))
	}
	return nil
}

// Transpose returns the transpose of m (rows and columns swapped).
func (m *Image) Transpose() *Image {
	ret := New(m.Height, m.Width)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			ret.Set(y, x, m.At(x, y))
		}
	}
	return ret
}

// Resize returns a copy of m scaled to w×h using bilinear interpolation,
// the same algorithm lib/handsum uses (via golang.org/x/image/draw.BiLinear)
// for its thumbnail scaling.
func (m *Image) Resize(w, h int) *Image {
	ret := New(w, h)
	xdraw.BiLinear.Scale(ret.pix, ret.pix.Bounds(), m.pix, m.pix.Bounds(), xdraw.Src, nil)
	return ret
}

// HConcat places right to the right of left, requiring equal heights.
func HConcat(left, right *Image) (*Image, error) {
	if left.Height != right.Height {
		return nil, ErrShape
	}
	ret := New(left.Width+right.Width, left.Height)
	pasteAt(ret, left, 0, 0)
	pasteAt(ret, right, left.Width, 0)
	return ret, nil
}

// VConcat stacks bottom below top, requiring equal widths.
func VConcat(top, bottom *Image) (*Image, error) {
	if top.Width != bottom.Width {
		return nil, ErrShape
	}
	ret := New(top.Width, top.Height+bottom.Height)
	pasteAt(ret, top, 0, 0)
	pasteAt(ret, bottom, 0, top.Height)
	return ret, nil
}

// Paste copies src into dst with src's top-left corner at (x, y), clipping
// to dst's bounds.
func Paste(dst *Image, src *Image, x, y int) {
	pasteAt(dst, src, x, y)
}

func pasteAt(dst *Image, src *Image, x, y int) {
	for sy := 0; sy < src.Height; sy++ {
		dy := y + sy
		if dy < 0 || dy >= dst.Height {
			continue
		}
		for sx := 0; sx < src.Width; sx++ {
			dx := x + sx
			if dx < 0 || dx >= dst.Width {
				continue
			}
			dst.Set(dx, dy, src.At(sx, sy))
		}
	}
}

// ReflectPad returns m padded on each side by the given number of pixels,
// mirroring the border rows/columns back into the frame (OpenCV's
// BORDER_REFLECT, used by the original RowShuffle step when its row count
// does not divide evenly into row groups).
func (m *Image) ReflectPad(top, bottom, left, right int) *Image {
	w, h := m.Width+left+right, m.Height+top+bottom
	ret := New(w, h)
	for y := 0; y < h; y++ {
		sy := reflectIndex(y-top, m.Height)
		for x := 0; x < w; x++ {
			sx := reflectIndex(x-left, m.Width)
			ret.Set(x, y, m.At(sx, sy))
		}
	}
	return ret
}

// reflectIndex maps an out-of-range index into [0, n) by mirroring at the
// edges, e.g. for n=4: -1->0, -2->1, 4->3, 5->2.
func reflectIndex(i, n int) int {
	if n <= 1 {
		return 0
	}
	for i < 0 || i >= n {
		if i < 0 {
			i = -i - 1
		}
		if i >= n {
			i = 2*n - i - 1
		}
	}
	return i
}

// WrapTranslate returns an image of the same size as m where pixel (r, c)
// of the output equals pixel ((r-sy) mod H, (c-sx) mod W) of m.
func (m *Image) WrapTranslate(sx, sy int) *Image {
	w, h := m.Width, m.Height
	sx = mod(sx, w)
	sy = mod(sy, h)
	ret := New(w, h)
	if sx == 0 && sy == 0 {
		pasteAt(ret, m, 0, 0)
		return ret
	}
	for y := 0; y < h; y++ {
		sy2 := mod(y-sy, h)
		for x := 0; x < w; x++ {
			sx2 := mod(x-sx, w)
			ret.Set(x, y, m.At(sx2, sy2))
		}
	}
	return ret
}

func mod(a, n int) int {
	if n == 0 {
		return 0
	}
	a %= n
	if a < 0 {
		a += n
	}
	return a
}
