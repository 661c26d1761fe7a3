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

// RowShuffle reorders groups of rowGroupSize rows according to a
// permutation seeded by seed (Mersenne-twister 32-bit). Rows are padded
// with a reflected border, if needed, up to a multiple of rowGroupSize
// before the permutation is applied; the inverse drops that padding.
type RowShuffle struct {
	rowGroupSize int
	seed         int

	fitted       bool
	originalRows int
	numRowGroups int
	permutation  []int
}

// NewRowShuffle validates rowGroupSize and returns an unfitted RowShuffle.
func NewRowShuffle(rowGroupSize, seed int) (*RowShuffle, error) {
	if rowGroupSize <= 0 {
		return nil, ErrConfig
	}
	return &RowShuffle{rowGroupSize: rowGroupSize, seed: seed}, nil
}

// Fit implements Step.
func (s *RowShuffle) Fit(st *State, probe *matrix.Image) error {
	s.originalRows = probe.Height
	padded := padAmount(probe.Height, s.rowGroupSize)
	s.numRowGroups = (probe.Height + padded) / s.rowGroupSize
	s.permutation = mt19937.Permutation(s.numRowGroups, uint32(s.seed))
	s.fitted = true
	return nil
}

// Transform implements Step.
func (s *RowShuffle) Transform(st *State, img *matrix.Image) *matrix.Image {
	padded := img
	if n := padAmount(img.Height, s.rowGroupSize); n > 0 {
		padded = img.ReflectPad(0, n, 0, 0)
	}
	out := matrix.New(padded.Width, padded.Height)
	for i := 0; i < s.numRowGroups; i++ {
		dest := s.permutation[i]
		for r := 0; r < s.rowGroupSize; r++ {
			matrix.CopyRow(padded, i*s.rowGroupSize+r, out, dest*s.rowGroupSize+r)
		}
	}
	return out
}

// InverseTransform implements Step.
func (s *RowShuffle) InverseTransform(st *State, img *matrix.Image) *matrix.Image {
	out := matrix.New(img.Width, s.numRowGroups*s.rowGroupSize)
	for i := 0; i < s.numRowGroups; i++ {
		dest := s.permutation[i]
		for r := 0; r < s.rowGroupSize; r++ {
			matrix.CopyRow(img, dest*s.rowGroupSize+r, out, i*s.rowGroupSize+r)
		}
	}
	return out.Rect(0, 0, out.Width, s.originalRows)
}

type rowShuffleDescriptor struct {
	Name         string `json:"name"`
	RowGroupSize int    `json:"row_group_size"`
	RandomSeed   int    `json:"random_seed"`
}

// Descriptor implements Step.
func (s *RowShuffle) Descriptor() interface{} {
	return rowShuffleDescriptor{Name: "RowShuffle", RowGroupSize: s.rowGroupSize, RandomSeed: s.seed}
}

// padAmount returns how many rows must be appended to rows to make it a
// multiple of group (0 if it already is).
func padAmount(rows, group int) int {
	r := rows % group
	if r == 0 {
		return 0
	}
	return group - r
}
