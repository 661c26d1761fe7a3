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

import "github.com/tetrachromatic/vidscramble/internal/matrix"

// ImageTranspose swaps rows and columns. It is its own inverse and carries
// no state beyond readiness.
type ImageTranspose struct {
	fitted bool
}

// NewImageTranspose returns an unfitted ImageTranspose step.
func NewImageTranspose() *ImageTranspose {
	return &ImageTranspose{}
}

// Fit implements Step.
func (s *ImageTranspose) Fit(st *State, probe *matrix.Image) error {
	s.fitted = true
	return nil
}

// Transform implements Step.
func (s *ImageTranspose) Transform(st *State, img *matrix.Image) *matrix.Image {
	return img.Transpose()
}

// InverseTransform implements Step.
func (s *ImageTranspose) InverseTransform(st *State, img *matrix.Image) *matrix.Image {
	return img.Transpose()
}

type imageTransposeDescriptor struct {
	Name string `json:"name"`
}

// Descriptor implements Step.
func (s *ImageTranspose) Descriptor() interface{} {
	return imageTransposeDescriptor{Name: "ImageTranspose"}
}
