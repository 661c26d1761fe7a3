// Copyright 2025 The Wuffs Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0> or the MIT license
// <LICENSE-MIT or https://opensource.org/licenses/MIT>, at your
// option. This file may not be copied, modified, or distributed
// except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

// Package bitexpand spreads each byte of a buffer over several output bytes
// so that a lossy channel (a video codec's chroma/luma quantization) is
// less likely to confuse two values: each part is mapped to the center of
// its quantization bin in [0, 256) rather than to an arbitrary representative,
// maximizing distance from neighboring bins under rounding noise.
package bitexpand

import "errors"

// ErrLayout is returned by Shrink when the input length is not a multiple
// of the expansion factor.
var ErrLayout = errors.New("bitexpand: input length is not a multiple of the expansion factor")

// ErrFactor is returned when e is not one of the supported expansion
// factors (those that evenly divide a byte: 1, 2, 4).
var ErrFactor = errors.New("bitexpand: expansion factor must be 1, 2 or 4")

type table struct {
	bitsPerPart int
	valuesPerPart int
	lut         []byte // palette center for each part value
}

var tables [5]*table // indexed by e; only 1, 2, 4 are populated

func lookup(e int) (*table, error) {
	if e != 1 && e != 2 && e != 4 {
		return nil, ErrFactor
	}
	if tables[e] != nil {
		return tables[e], nil
	}
	bitsPerPart := 8 / e
	valuesPerPart := 1 << bitsPerPart
	step := 256.0 / float64(valuesPerPart)
	lut := make([]byte, valuesPerPart)
	for i := range lut {
		v := int((float64(i) + 0.5) * step)
		if v > 255 {
			v = 255
		}
		lut[i] = byte(v)
	}
	t := &table{bitsPerPart: bitsPerPart, valuesPerPart: valuesPerPart, lut: lut}
	tables[e] = t
	return t, nil
}

// Expand splits every byte of in into e output bytes. Part j (0-indexed,
// low-order bits first) carries bits [j*b, (j+1)*b) of the input byte,
// where b = 8/e, rendered at the center of its quantization bin.
func Expand(in []byte, e int) ([]byte, error) {
	t, err := lookup(e)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(in)*e)
	mask := byte(t.valuesPerPart - 1)
	for _, b := range in {
		for j := 0; j < e; j++ {
			part := (b >> uint(j*t.bitsPerPart)) & mask
			out = append(out, t.lut[part])
		}
	}
	return out, nil
}

// Shrink is the inverse of Expand: for every e consecutive input bytes, each
// is mapped to the palette index with the smallest absolute distance, then
// the e indices are re-packed into a single output byte at their original
// bit positions.
func Shrink(in []byte, e int) ([]byte, error) {
	t, err := lookup(e)
	if err != nil {
		return nil, err
	}
	if len(in)%e != 0 {
		return nil, ErrLayout
	}
	out := make([]byte, len(in)/e)
	for i := 0; i < len(out); i++ {
		var v byte
		for j := 0; j < e; j++ {
			idx := nearest(t.lut, in[i*e+j])
			v |= byte(idx) << uint(j*t.bitsPerPart)
		}
		out[i] = v
	}
	return out, nil
}

func nearest(lut []byte, v byte) int {
	best, bestDist := 0, 256
	for i, c := range lut {
		d := int(c) - int(v)
		if d < 0 {
			d = -d
		}
		if d < bestDist {
			bestDist, best = d, i
		}
	}
	return best
}
