// Copyright 2025 The Wuffs Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0> or the MIT license
// <LICENSE-MIT or https://opensource.org/licenses/MIT>, at your
// option. This file may not be copied, modified, or distributed
// except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

// Package vidscramble embeds a self-describing control payload into video
// frames so a downstream process can, from any single received frame,
// recover geometric alignment, decode the JSON descriptor of the
// scrambling pipeline that was applied, and undo that scrambling.
//
// This package is a thin façade over internal/pipeline, internal/fiducial
// and internal/scramble for library consumers who only need the public
// entry points: building and fitting a Pipeline, serializing and parsing
// its descriptor, and locating and decoding the embedded payload in a
// received frame.
package vidscramble

import (
	"github.com/tetrachromatic/vidscramble/internal/fiducial"
	"github.com/tetrachromatic/vidscramble/internal/matrix"
	"github.com/tetrachromatic/vidscramble/internal/pipeline"
	"github.com/tetrachromatic/vidscramble/internal/scramble"
)

// Image is the RGB pixel grid every Pipeline operation reads and writes.
type Image = matrix.Image

// Pipeline orders scramble steps, carries their shared state, and drives
// fit/transform/inverse-transform across frames.
type Pipeline = pipeline.Pipeline

// ImageDataTransform is the geometry a receiver recovers from locating the
// fiducial markers in a frame: the data grid's and the image region's
// bounding boxes, the grid's dimensions, and the pre-embed dimensions to
// resize the cropped region back to.
type ImageDataTransform = fiducial.Transform

// Step is the contract every scramble transform implements.
type Step = scramble.Step

// NewPipeline returns an unfitted Pipeline over steps, with data-embed
// block size blockSize and numRows block rows.
func NewPipeline(steps []Step, blockSize, numRows int) *Pipeline {
	return pipeline.New(steps, blockSize, numRows)
}

// ParsePipeline reconstructs a Pipeline from a JSON descriptor previously
// produced by Pipeline.ToJSON.
func ParsePipeline(data []byte) (*Pipeline, error) {
	return pipeline.ParsePipeline(data)
}

// DetectAndExtract locates the three fiducial markers in img and decodes
// the embedded pipeline descriptor, returning the geometry needed to
// invert the scramble along with the raw descriptor bytes.
func DetectAndExtract(img *Image, nominalSize int) (ImageDataTransform, []byte, error) {
	return pipeline.DetectAndExtract(img, nominalSize)
}
