// Copyright 2025 The Wuffs Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0> or the MIT license
// <LICENSE-MIT or https://opensource.org/licenses/MIT>, at your
// option. This file may not be copied, modified, or distributed
// except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

package matrix

import "testing"

func gradient(w, h int) *Image {
	m := New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m.Set(x, y, Pixel{uint8(x), uint8(y), uint8(x + y)})
		}
	}
	return m
}

func TestTransposeInvolution(t *testing.T) {
	m := gradient(5, 3)
	got := m.Transpose().Transpose()
	if got.Width != m.Width || got.Height != m.Height {
		t.Fatalf("shape mismatch after double transpose")
	}
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if got.At(x, y) != m.At(x, y) {
				t.Fatalf("pixel (%d,%d): got %v want %v", x, y, got.At(x, y), m.At(x, y))
			}
		}
	}
}

func TestCopyRow(t *testing.T) {
	src := gradient(4, 4)
	dst := New(4, 4)
	if err := CopyRow(src, 2, dst, 0); err != nil {
		t.Fatal(err)
	}
	for x := 0; x < 4; x++ {
		if dst.At(x, 0) != src.At(x, 2) {
			t.Fatalf("column %d: got %v want %v", x, dst.At(x, 0), src.At(x, 2))
		}
	}
}

func TestCopyRowShapeMismatch(t *testing.T) {
	src := New(4, 4)
	dst := New(5, 4)
	if err := CopyRow(src, 0, dst, 0); err != ErrShape {
		t.Fatalf("got %v, want ErrShape", err)
	}
}

func TestHVConcat(t *testing.T) {
	a := New(2, 3)
	a.Fill(Pixel{1, 1, 1})
	b := New(4, 3)
	b.Fill(Pixel{2, 2, 2})
	h, err := HConcat(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if h.Width != 6 || h.Height != 3 {
		t.Fatalf("got %dx%d, want 6x3", h.Width, h.Height)
	}
	if h.At(0, 0) != (Pixel{1, 1, 1}) || h.At(5, 0) != (Pixel{2, 2, 2}) {
		t.Fatalf("hconcat placed pixels incorrectly")
	}

	v, err := VConcat(a, a)
	if err != nil {
		t.Fatal(err)
	}
	if v.Width != 2 || v.Height != 6 {
		t.Fatalf("got %dx%d, want 2x6", v.Width, v.Height)
	}
}

func TestReflectPad(t *testing.T) {
	m := gradient(4, 4)
	p := m.ReflectPad(0, 2, 0, 0)
	if p.Height != 6 {
		t.Fatalf("got height %d, want 6", p.Height)
	}
	// Reflect border: row 4 mirrors row 3, row 5 mirrors row 2.
	for x := 0; x < 4; x++ {
		if p.At(x, 4) != m.At(x, 3) {
			t.Fatalf("row 4 mismatch at col %d", x)
		}
		if p.At(x, 5) != m.At(x, 2) {
			t.Fatalf("row 5 mismatch at col %d", x)
		}
	}
}

func TestWrapTranslateRoundTrip(t *testing.T) {
	m := gradient(10, 7)
	shifted := m.WrapTranslate(3, -2)
	back := shifted.WrapTranslate(-3, 2)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if back.At(x, y) != m.At(x, y) {
				t.Fatalf("pixel (%d,%d): got %v want %v", x, y, back.At(x, y), m.At(x, y))
			}
		}
	}
}

func TestWrapTranslateZero(t *testing.T) {
	m := gradient(6, 6)
	same := m.WrapTranslate(0, 0)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if same.At(x, y) != m.At(x, y) {
				t.Fatalf("zero shift changed pixel (%d,%d)", x, y)
			}
		}
	}
}

func TestResizeShape(t *testing.T) {
	m := gradient(8, 8)
	r := m.Resize(16, 4)
	if r.Width != 16 || r.Height != 4 {
		t.Fatalf("got %dx%d, want 16x4", r.Width, r.Height)
	}
}
