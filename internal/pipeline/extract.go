// Copyright 2025 The Wuffs Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0> or the MIT license
// <LICENSE-MIT or https://opensource.org/licenses/MIT>, at your
// option. This file may not be copied, modified, or distributed
// except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

package pipeline

import (
	"encoding/json"

	"github.com/tetrachromatic/vidscramble/internal/dataembed"
	"github.com/tetrachromatic/vidscramble/internal/fiducial"
	"github.com/tetrachromatic/vidscramble/internal/matrix"
)

// ExtractData samples one pixel at the center of every data block named by
// t's grid geometry, assembling them (three channel bytes per block) into
// the encoded buffer dataembed.DecodeData expects, and returns the decoded
// descriptor JSON.
func ExtractData(img *matrix.Image, t fiducial.Transform) ([]byte, error) {
	bx := (t.DataBoxX1 - t.DataBoxX0) / float64(t.GridCols)
	by := (t.DataBoxY1 - t.DataBoxY0) / float64(t.GridRows)

	buf := make(dataembed.EncodedBuffer, t.GridRows*t.GridCols*3)
	for i := 0; i < t.GridRows; i++ {
		y := int(t.DataBoxY0 + (float64(i)+0.5)*by)
		for j := 0; j < t.GridCols; j++ {
			x := int(t.DataBoxX0 + (float64(j)+0.5)*bx)
			p := img.At(x, y)
			idx := (i*t.GridCols + j) * 3
			buf[idx], buf[idx+1], buf[idx+2] = p[0], p[1], p[2]
		}
	}

	return dataembed.DecodeData(dataembed.Config{}, buf)
}

// DetectAndExtract locates the three fiducial markers in img. "First
// success wins" is defined by a successful decode, not by marker
// correlation score alone: every pitch-sweep candidate fiducial.Detect
// turns up plausible is validated here by actually extracting and decoding
// its data strip, and the sweep continues to the next candidate if that
// fails, rather than stopping on the first geometrically plausible but
// undecodable guess. It returns the decoded descriptor bytes extracted
// from the winning candidate, and fills in the geometric fields of the
// returned Transform that ExtractData's grid sampling cannot supply on its
// own (the pre-embed frame dimensions, read back out of the decoded
// descriptor's state snapshot).
func DetectAndExtract(img *matrix.Image, nominalSize int) (fiducial.Transform, []byte, error) {
	var data []byte
	t, err := fiducial.Detect(img, nominalSize, func(cand fiducial.Transform) bool {
		d, derr := ExtractData(img, cand)
		if derr != nil {
			return false
		}
		data = d
		return true
	})
	if err != nil {
		return fiducial.Transform{}, nil, err
	}

	var descriptor struct {
		State struct {
			OutputWidthWoData  int `json:"output_width_wo_data"`
			OutputHeightWoData int `json:"output_height_wo_data"`
		} `json:"state"`
	}
	if err := json.Unmarshal(data, &descriptor); err != nil {
		return fiducial.Transform{}, nil, ErrParse
	}
	t.OriginalWidth = descriptor.State.OutputWidthWoData
	t.OriginalHeight = descriptor.State.OutputHeightWoData

	return t, data, nil
}
