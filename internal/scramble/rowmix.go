// Copyright 2025 The Wuffs Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0> or the MIT license
// <LICENSE-MIT or https://opensource.org/licenses/MIT>, at your
// option. This file may not be copied, modified, or distributed
// except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

package scramble

import (
	"github.com/tetrachromatic/vidscramble/internal/matrix"
	"github.com/tetrachromatic/vidscramble/internal/mt19937"
)

// RowMix halves a frame into a top and bottom half and stores their
// per-pixel sum and difference (S, D) in row positions permuted by the
// same Mersenne-twister construction RowShuffle uses. It is the one
// lossy step: S and D are reconstructed through 8-bit rounding, so
// inverse(transform(x)) only recovers x up to +/-1 per channel.
type RowMix struct {
	rowGroupSize int
	seed         int

	fitted       bool
	half         int
	numRowGroups int
	permutation  []int
}

// NewRowMix validates rowGroupSize and returns an unfitted RowMix.
func NewRowMix(rowGroupSize, seed int) (*RowMix, error) {
	if rowGroupSize <= 0 {
		return nil, ErrConfig
	}
	return &RowMix{rowGroupSize: rowGroupSize, seed: seed}, nil
}

// Fit implements Step. The probe's row count must be even, and half of it
// must be divisible by rowGroupSize.
func (s *RowMix) Fit(st *State, probe *matrix.Image) error {
	if probe.Height%2 != 0 {
		return ErrConfig
	}
	half := probe.Height / 2
	if half%s.rowGroupSize != 0 {
		return ErrConfig
	}
	s.half = half
	s.numRowGroups = half / s.rowGroupSize
	s.permutation = mt19937.Permutation(s.numRowGroups, uint32(s.seed))
	s.fitted = true
	return nil
}

func (s *RowMix) destRows(i int) (sRow, dRow int) {
	group, within := i/s.rowGroupSize, i%s.rowGroupSize
	base := s.rowGroupSize*s.permutation[group] + within
	return base, s.half + base
}

// Transform implements Step.
func (s *RowMix) Transform(st *State, img *matrix.Image) *matrix.Image {
	out := matrix.New(img.Width, img.Height)
	for i := 0; i < s.half; i++ {
		sRow, dRow := s.destRows(i)
		for x := 0; x < img.Width; x++ {
			top := img.At(x, i)
			bottom := img.At(x, s.half+i)
			var sp, dp matrix.Pixel
			for c := 0; c < 3; c++ {
				t, b := int(top[c]), int(bottom[c])
				sum := (t + b) / 2
				diff := (t - b) / 2
				if diff < 0 {
					diff += 256
				}
				sp[c] = byte(sum)
				dp[c] = byte(diff)
			}
			out.Set(x, sRow, sp)
			out.Set(x, dRow, dp)
		}
	}
	return out
}

// InverseTransform implements Step.
func (s *RowMix) InverseTransform(st *State, img *matrix.Image) *matrix.Image {
	out := matrix.New(img.Width, img.Height)
	for i := 0; i < s.half; i++ {
		sRow, dRow := s.destRows(i)
		for x := 0; x < img.Width; x++ {
			sp := img.At(x, sRow)
			dp := img.At(x, dRow)
			var top, bottom matrix.Pixel
			for c := 0; c < 3; c++ {
				sum, diff := int(sp[c]), int(dp[c])
				if diff > 127 {
					diff -= 256
				}
				top[c] = clamp8(sum + diff)
				bottom[c] = clamp8(sum - diff)
			}
			out.Set(x, i, top)
			out.Set(x, s.half+i, bottom)
		}
	}
	return out
}

func clamp8(v int) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}

type rowMixDescriptor struct {
	Name         string `json:"name"`
	RowGroupSize int    `json:"row_group_size"`
	RandomSeed   int    `json:"random_seed"`
}

// Descriptor implements Step.
func (s *RowMix) Descriptor() interface{} {
	return rowMixDescriptor{Name: "RowMix", RowGroupSize: s.rowGroupSize, RandomSeed: s.seed}
}
