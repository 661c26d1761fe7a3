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

// Step is the contract every scramble transform implements. Fit runs once
// on a probe frame at pipeline-fit time; Transform and InverseTransform
// must satisfy inverse(transform(x)) == x for all admissible x, modulo the
// documented lossy steps (RowMix's 8-bit rounding).
type Step interface {
	// Fit prepares the step to operate on frames shaped like probe,
	// recording whatever per-shape state it needs in st or internally.
	Fit(st *State, probe *matrix.Image) error

	// Transform produces the forward output for img.
	Transform(st *State, img *matrix.Image) *matrix.Image

	// InverseTransform produces the inverse output for img.
	InverseTransform(st *State, img *matrix.Image) *matrix.Image

	// Descriptor returns the JSON-serializable value describing this
	// step's name and constructor arguments, e.g. rowShuffleDescriptor.
	Descriptor() interface{}
}
