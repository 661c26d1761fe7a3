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

// ImageShift wrap-translates a frame by (timestamp*sx, timestamp*sy),
// so consecutive frames shift progressively. It is stateless beyond the
// shared State's Timestamp.
type ImageShift struct {
	sx, sy int
	fitted bool
}

// NewImageShift returns an unfitted ImageShift.
func NewImageShift(sx, sy int) *ImageShift {
	return &ImageShift{sx: sx, sy: sy}
}

// Fit implements Step.
func (s *ImageShift) Fit(st *State, probe *matrix.Image) error {
	s.fitted = true
	return nil
}

// Transform implements Step.
func (s *ImageShift) Transform(st *State, img *matrix.Image) *matrix.Image {
	t := int(st.Timestamp)
	return img.WrapTranslate(t*s.sx, t*s.sy)
}

// InverseTransform implements Step.
func (s *ImageShift) InverseTransform(st *State, img *matrix.Image) *matrix.Image {
	t := int(st.Timestamp)
	return img.WrapTranslate(-t*s.sx, -t*s.sy)
}

type imageShiftDescriptor struct {
	Name string `json:"name"`
	Sx   int    `json:"sx"`
	Sy   int    `json:"sy"`
}

// Descriptor implements Step.
func (s *ImageShift) Descriptor() interface{} {
	return imageShiftDescriptor{Name: "ImageShift", Sx: s.sx, Sy: s.sy}
}
