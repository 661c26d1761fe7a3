// Copyright 2025 The Wuffs Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0> or the MIT license
// <LICENSE-MIT or https://opensource.org/licenses/MIT>, at your
// option. This file may not be copied, modified, or distributed
// except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

// Package pipeline orders scramble steps, carries their shared State, and
// drives fit/transform/inverse-transform across frames, appending (or
// parsing) the data-embed strip that lets a receiver reconstruct it from a
// single frame with no side channel.
package pipeline

import (
	"errors"

	"github.com/tetrachromatic/vidscramble/internal/dataembed"
	"github.com/tetrachromatic/vidscramble/internal/fiducial"
	"github.com/tetrachromatic/vidscramble/internal/matrix"
	"github.com/tetrachromatic/vidscramble/internal/scramble"
)

// ErrNotFitted is returned by Transform/InverseTransform when Fit was never
// called (or failed).
var ErrNotFitted = errors.New("pipeline: used before Fit")

// Pipeline owns an ordered list of scramble steps, the State they share, and
// the data-embed geometry parameters used to append a self-describing strip
// to every transformed frame.
type Pipeline struct {
	Steps []scramble.Step
	State scramble.State

	DataEmbedBlockSize int
	DataEmbedNumRows   int
	DataEmbedInterval  int

	// TransformIncrementsTimestamp controls whether Transform and
	// InverseTransform advance State.Timestamp after producing their
	// output. Defaults to true.
	TransformIncrementsTimestamp bool

	config dataembed.Config
	fitted bool
}

// New returns an unfitted Pipeline over steps, with data-embed geometry
// parameters blockSize and numRows and the documented defaults
// (DataEmbedInterval=1, TransformIncrementsTimestamp=true).
func New(steps []scramble.Step, blockSize, numRows int) *Pipeline {
	return &Pipeline{
		Steps:                         steps,
		DataEmbedBlockSize:            blockSize,
		DataEmbedNumRows:              numRows,
		DataEmbedInterval:             1,
		TransformIncrementsTimestamp: true,
	}
}

// Fit requires a 3-channel frame (all matrix.Image values qualify), records
// the input dimensions, runs every step's Fit followed immediately by its
// Transform on a working copy to discover the post-scramble dimensions,
// then allocates and validates the data-embed geometry against those
// dimensions. Timestamp is reset to zero.
func (p *Pipeline) Fit(img *matrix.Image) error {
	if p.DataEmbedInterval < 1 {
		p.DataEmbedInterval = 1
	}

	p.State = scramble.State{
		InputWidth:  uint64(img.Width),
		InputHeight: uint64(img.Height),
	}

	cur := img
	for _, step := range p.Steps {
		if err := step.Fit(&p.State, cur); err != nil {
			return err
		}
		cur = step.Transform(&p.State, cur)
	}

	p.State.OutputWidthWoData = uint64(cur.Width)
	p.State.OutputHeightWoData = uint64(cur.Height)

	p.config = dataembed.Config{
		BlockSize:  p.DataEmbedBlockSize,
		NumRows:    p.DataEmbedNumRows,
		ImageWidth: cur.Width,
	}
	if err := p.config.Validate(); err != nil {
		return err
	}

	p.State.DataRegionWidth = uint64(p.config.NumBlocksPerRow() * p.DataEmbedBlockSize)
	p.State.DataRegionHeight = uint64(p.DataEmbedNumRows * p.DataEmbedBlockSize)
	p.State.Timestamp = 0
	p.fitted = true
	return nil
}

// Transform runs every step's Transform in order, then appends either the
// payload strip (on data-embed-interval boundaries) or a markers-omitted
// blank strip of identical geometry. If TransformIncrementsTimestamp,
// State.Timestamp advances by one after the output is produced.
func (p *Pipeline) Transform(img *matrix.Image) (*matrix.Image, error) {
	if !p.fitted {
		return nil, ErrNotFitted
	}

	cur := img
	for _, step := range p.Steps {
		cur = step.Transform(&p.State, cur)
	}

	var out *matrix.Image
	var err error
	if p.State.Timestamp%uint64(p.DataEmbedInterval) == 0 {
		descriptor, jerr := p.ToJSON()
		if jerr != nil {
			return nil, jerr
		}
		encoded, eerr := dataembed.EncodeData(p.config, descriptor)
		if eerr != nil {
			return nil, eerr
		}
		out, err = dataembed.EncodedDataAsImage(p.config, cur, encoded)
	} else {
		out, err = dataembed.BlankStripImage(p.config, cur)
	}
	if err != nil {
		return nil, err
	}

	if p.TransformIncrementsTimestamp {
		p.State.Timestamp++
	}
	return out, nil
}

// InverseTransform crops the image region identified by t out of img,
// resizes it back to the pre-embed dimensions recorded in t, then applies
// every step's InverseTransform in reverse order.
func (p *Pipeline) InverseTransform(img *matrix.Image, t fiducial.Transform) (*matrix.Image, error) {
	if !p.fitted {
		return nil, ErrNotFitted
	}

	x0, y0 := int(t.ImageBoxX0), int(t.ImageBoxY0)
	w, h := int(t.ImageBoxX1-t.ImageBoxX0), int(t.ImageBoxY1-t.ImageBoxY0)
	cropped := img.Rect(x0, y0, w, h)
	cur := cropped.Resize(t.OriginalWidth, t.OriginalHeight)

	for i := len(p.Steps) - 1; i >= 0; i-- {
		cur = p.Steps[i].InverseTransform(&p.State, cur)
	}

	if p.TransformIncrementsTimestamp {
		p.State.Timestamp++
	}
	return cur, nil
}
