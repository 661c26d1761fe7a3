// Copyright 2025 The Wuffs Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0> or the MIT license
// <LICENSE-MIT or https://opensource.org/licenses/MIT>, at your
// option. This file may not be copied, modified, or distributed
// except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

// Package scramble implements the four reversible image transforms a
// Pipeline composes: ImageTranspose, RowShuffle, RowMix and ImageShift.
// Every step shares a State, fed forward frame to frame by the owning
// pipeline.
package scramble

import "errors"

// ErrConfig is returned by a step constructor when an argument is out of
// range (a non-positive row_group_size, for instance).
var ErrConfig = errors.New("scramble: invalid step configuration")

// ErrNotFitted names the condition of a step used before Fit. Step's
// Transform and InverseTransform have no error result, so no step in this
// package returns it; package pipeline reports the same condition with its
// own ErrNotFitted.
var ErrNotFitted = errors.New("scramble: step used before Fit")

// State is the mutable record every step's Fit/Transform/InverseTransform
// shares, carried frame to frame by the owning pipeline. Field order
// matches the wire JSON object's key order (see package pipeline).
type State struct {
	OutputWidthWoData  uint64 `json:"output_width_wo_data"`
	OutputHeightWoData uint64 `json:"output_height_wo_data"`
	DataRegionWidth    uint64 `json:"data_region_width"`
	DataRegionHeight   uint64 `json:"data_region_height"`
	InputHeight        uint64 `json:"input_height"`
	InputWidth         uint64 `json:"input_width"`
	Timestamp          uint64 `json:"timestamp"`
}
