// Copyright 2025 The Wuffs Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0> or the MIT license
// <LICENSE-MIT or https://opensource.org/licenses/MIT>, at your
// option. This file may not be copied, modified, or distributed
// except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

package dataembed

import (
	"github.com/tetrachromatic/vidscramble/internal/fiducial"
	"github.com/tetrachromatic/vidscramble/internal/matrix"
)

var white = matrix.Pixel{255, 255, 255}

// alignmentPadRows is the fixed white strip height prepended above the
// widened frame before the data strip is appended.
const alignmentPadRows = 16

// EncodedDataAsImage renders data onto a copy of img: a 5-block-wide
// marker padder column to the right, alignmentPadRows of white padding above,
// and the data strip (with both bottom fiducial markers and the block
// grid's pixel payload) below, with a half-block white separator on
// either side of the strip.
func EncodedDataAsImage(cfg Config, img *matrix.Image, data EncodedBuffer) (*matrix.Image, error) {
	return assemble(cfg, img, data, true)
}

// BlankStripImage renders the same overall geometry as EncodedDataAsImage
// but with no markers and no block payload, for frames between
// data_embed_interval boundaries: "append a blank-data strip of identical
// geometry (markers omitted)".
func BlankStripImage(cfg Config, img *matrix.Image) (*matrix.Image, error) {
	return assemble(cfg, img, nil, false)
}

func assemble(cfg Config, img *matrix.Image, data EncodedBuffer, withMarkers bool) (*matrix.Image, error) {
	if img.Width != cfg.ImageWidth {
		return nil, ErrConfig
	}
	bs := cfg.BlockSize
	fid := cfg.Fiducial()

	strip := matrix.New(cfg.ImageWidthWithMarker(), cfg.NumRows*bs)
	strip.Fill(white)

	rightPadder := matrix.New(5*bs, img.Height)
	rightPadder.Fill(white)

	if withMarkers {
		marker0, err := fiducial.Render(fiducial.MarkerBottomLeft, fid)
		if err != nil {
			return nil, err
		}
		matrix.Paste(strip, marker0, bs/2, 0)

		marker1, err := fiducial.Render(fiducial.MarkerBottomRight, fid)
		if err != nil {
			return nil, err
		}
		matrix.Paste(strip, marker1, cfg.FiducialMarkerCol2(), (cfg.NumRows-4)*bs)

		numBlocksPerRow := cfg.NumBlocksPerRow()
		for i := 0; i < cfg.NumRows; i++ {
			for k := 0; k < numBlocksPerRow; k++ {
				idx := (i*numBlocksPerRow + k) * 3
				var p matrix.Pixel
				for ch := 0; ch < 3; ch++ {
					if idx+ch < len(data) {
						p[ch] = data[idx+ch]
					}
				}
				col := fid + bs + k*bs
				row := i * bs
				fillBlock(strip, col, row, bs, p)
			}
		}

		marker2, err := fiducial.Render(fiducial.MarkerTopRight, fid)
		if err != nil {
			return nil, err
		}
		matrix.Paste(rightPadder, marker2, bs/2, 0)
	}

	widened, err := matrix.HConcat(img, rightPadder)
	if err != nil {
		return nil, err
	}

	topPad := matrix.New(widened.Width, alignmentPadRows)
	topPad.Fill(white)
	halfStrip := matrix.New(widened.Width, bs/2)
	halfStrip.Fill(white)

	assembled, err := matrix.VConcat(topPad, widened)
	if err != nil {
		return nil, err
	}
	assembled, err = matrix.VConcat(assembled, halfStrip)
	if err != nil {
		return nil, err
	}
	assembled, err = matrix.VConcat(assembled, strip)
	if err != nil {
		return nil, err
	}
	assembled, err = matrix.VConcat(assembled, halfStrip)
	if err != nil {
		return nil, err
	}
	return assembled, nil
}

func fillBlock(img *matrix.Image, x, y, size int, p matrix.Pixel) {
	for yy := 0; yy < size; yy++ {
		for xx := 0; xx < size; xx++ {
			img.Set(x+xx, y+yy, p)
		}
	}
}
