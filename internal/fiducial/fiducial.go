// Copyright 2025 The Wuffs Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0> or the MIT license
// <LICENSE-MIT or https://opensource.org/licenses/MIT>, at your
// option. This file may not be copied, modified, or distributed
// except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

// Package fiducial renders and locates the three ArUco-style marker
// bitmaps used to anchor the data-embed block grid: MarkerBottomLeft,
// MarkerBottomRight and MarkerTopRight. Detection tolerates the scale
// perturbation a lossy transport introduces by sweeping a small set of
// pitch corrections and re-scoring each candidate.
package fiducial

import (
	"errors"

	"github.com/tetrachromatic/vidscramble/internal/matrix"
)

// Marker ids, part of the wire format: the three predefined fiducial
// indices data-embed renders and this package detects.
const (
	MarkerBottomLeft  = 0
	MarkerBottomRight = 1
	MarkerTopRight    = 2
)

// ErrDetection is returned when a marker cannot be located, the recovered
// grid dimensions fail their sanity bounds, or the pitch sweep is
// exhausted without a usable candidate.
var ErrDetection = errors.New("fiducial: unable to locate markers")

// maxRows and maxCols bound a recovered grid to sane values; a detection
// that implies more than this is treated as noise, not a real grid.
const (
	maxRows = 24
	maxCols = 960
)

// pitchDeltas is the sweep order: no correction first, then alternating
// positive/negative corrections growing in magnitude up to 10%.
func pitchDeltas() []float64 {
	deltas := make([]float64, 0, 21)
	deltas = append(deltas, 0)
	for k := 1; k <= 10; k++ {
		d := float64(k) * 0.01
		deltas = append(deltas, d, -d)
	}
	return deltas
}

// Transform is the geometry recovered by Detect: the data grid's and the
// full image region's bounding boxes, the grid's dimensions in blocks, and
// the pre-embed dimensions to resize the cropped region back to.
type Transform struct {
	DataBoxX0, DataBoxY0, DataBoxX1, DataBoxY1   float64
	ImageBoxX0, ImageBoxY0, ImageBoxX1, ImageBoxY1 float64
	GridRows, GridCols                           int
	OriginalWidth, OriginalHeight                 int
}

// Render draws marker id as a size x size pixel bitmap: a 1-cell black
// border ring around the dictionary's gridSize x gridSize interior, each
// cell flat-filled black or white.
func Render(id int, size int) (*matrix.Image, error) {
	if id < 0 || id >= dictionarySize {
		return nil, ErrDetection
	}
	cells := gridSize + 2
	img := matrix.New(size, size)
	black := matrix.Pixel{0, 0, 0}
	white := matrix.Pixel{255, 255, 255}

	for cy := 0; cy < cells; cy++ {
		y0, y1 := cellBounds(cy, cells, size)
		for cx := 0; cx < cells; cx++ {
			x0, x1 := cellBounds(cx, cells, size)
			p := black
			if cy > 0 && cy < cells-1 && cx > 0 && cx < cells-1 {
				if !dictionary[id][cy-1][cx-1] {
					p = white
				}
			}
			for y := y0; y < y1; y++ {
				for x := x0; x < x1; x++ {
					img.Set(x, y, p)
				}
			}
		}
	}
	return img, nil
}

func cellBounds(i, cells, size int) (int, int) {
	return i * size / cells, (i + 1) * size / cells
}

// Detect locates all three markers within img by sweeping pitch
// corrections around nominalSize (the caller's best estimate of a
// marker's on-screen size, in pixels — typically 4x the data-embed block
// size last seen, or a scale derived from img's own dimensions for the
// first frame). "First success wins" is defined by validate, not by
// marker-correlation score alone: a candidate whose three markers score
// within the Hamming threshold and whose grid bounds pass the sanity
// check is still only a geometry guess, since a coarser or finer pitch can
// score just as well without being the one the embedder actually used. For
// every such candidate Detect calls validate(t), which the caller uses to
// attempt the real decode (package pipeline's DetectAndExtract does
// exactly this), and only commits to t if validate reports success; it
// keeps sweeping otherwise. validate may be nil, in which case the first
// geometrically plausible candidate is returned unvalidated. Detect
// returns ErrDetection if the sweep is exhausted without a validated
// candidate.
func Detect(img *matrix.Image, nominalSize int, validate func(Transform) bool) (Transform, error) {
	if nominalSize < gridSize+2 {
		nominalSize = gridSize + 2
	}
	for _, delta := range pitchDeltas() {
		size := int(float64(nominalSize) * (1 + delta))
		if size < gridSize+2 {
			continue
		}
		t, ok := tryDetect(img, size)
		if !ok {
			continue
		}
		if validate == nil || validate(t) {
			return t, nil
		}
	}
	return Transform{}, ErrDetection
}

func tryDetect(img *matrix.Image, size int) (Transform, bool) {
	bl, foundBL := locateMarker(img, MarkerBottomLeft, size)
	if !foundBL {
		return Transform{}, false
	}
	br, foundBR := locateMarker(img, MarkerBottomRight, size)
	if !foundBR {
		return Transform{}, false
	}
	tr, foundTR := locateMarker(img, MarkerTopRight, size)
	if !foundTR {
		return Transform{}, false
	}

	blockSize := size / 4
	if blockSize <= 0 {
		return Transform{}, false
	}
	halfBlock := float64(blockSize) / 2

	// The block grid sits strictly between marker-0's right edge and
	// marker-1's left edge, each separated by a half-block gap (see
	// dataembed's strip layout).
	dataY0, dataY1 := minF(float64(bl.y), float64(br.y)), maxF(float64(bl.y+bl.size), float64(br.y+br.size))
	dataX0 := float64(bl.x+bl.size) + halfBlock
	dataX1 := float64(br.x) - halfBlock
	if dataX1 <= dataX0 {
		return Transform{}, false
	}

	gridCols := int((dataX1 - dataX0) / float64(blockSize))
	gridRows := int((dataY1 - dataY0) / float64(blockSize))
	if gridRows <= 0 || gridRows > maxRows || gridCols <= 0 || gridCols > maxCols {
		return Transform{}, false
	}

	// The pre-embed image region sits above the data strip: its left edge
	// is a half-block left of marker-0's left edge, its top is marker-2's
	// top, its right edge is
	// a half-block inset from marker-2, and its bottom a half-block inset
	// from marker-1's top.
	imageX0 := float64(bl.x) - halfBlock
	imageY0 := float64(tr.y)
	imageX1 := float64(tr.x) - halfBlock
	imageY1 := float64(br.y) - halfBlock
	if imageX1 <= imageX0 || imageY1 <= imageY0 {
		return Transform{}, false
	}

	return Transform{
		DataBoxX0: dataX0, DataBoxY0: dataY0, DataBoxX1: dataX1, DataBoxY1: dataY1,
		ImageBoxX0: imageX0, ImageBoxY0: imageY0, ImageBoxX1: imageX1, ImageBoxY1: imageY1,
		GridRows: gridRows, GridCols: gridCols,
	}, true
}

type foundMarker struct {
	x, y, size int
}

// maxHammingAccepted is the largest total bit-error count (border ring
// plus interior codeword) tolerated before a candidate window is
// rejected; tolerates the anti-aliasing blur a resize/compression round
// trip introduces.
const maxHammingAccepted = 6

// locateMarker brute-force scans img for the best-scoring window of the
// given size matching dictionary[id]'s codeword, striding by max(1,
// size/16) to keep the scan affordable on larger frames.
func locateMarker(img *matrix.Image, id int, size int) (foundMarker, bool) {
	if size > img.Width || size > img.Height {
		return foundMarker{}, false
	}
	stride := size / 16
	if stride < 1 {
		stride = 1
	}

	best := foundMarker{}
	bestScore := maxHammingAccepted + 1
	for y := 0; y+size <= img.Height; y += stride {
		for x := 0; x+size <= img.Width; x += stride {
			score := scoreWindow(img, x, y, size, id)
			if score < bestScore {
				bestScore = score
				best = foundMarker{x: x, y: y, size: size}
			}
		}
	}
	return best, bestScore <= maxHammingAccepted
}

// scoreWindow counts bit errors between the window at (x0,y0) of size
// `size` and the rendering of dictionary[id]: border-ring cells that
// aren't dark, plus the Hamming distance of the thresholded interior
// cells against the codeword.
func scoreWindow(img *matrix.Image, x0, y0, size int, id int) int {
	cells := gridSize + 2
	errs := 0
	for cy := 0; cy < cells; cy++ {
		ry0, ry1 := cellBounds(cy, cells, size)
		for cx := 0; cx < cells; cx++ {
			rx0, rx1 := cellBounds(cx, cells, size)
			dark := cellIsDark(img, x0+rx0, y0+ry0, x0+rx1, y0+ry1)
			if cy == 0 || cy == cells-1 || cx == 0 || cx == cells-1 {
				if !dark {
					errs++
				}
				continue
			}
			if dark != dictionary[id][cy-1][cx-1] {
				errs++
			}
		}
	}
	return errs
}

func cellIsDark(img *matrix.Image, x0, y0, x1, y1 int) bool {
	var sum, n int
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			p := img.At(x, y)
			sum += int(p[0]) + int(p[1]) + int(p[2])
			n++
		}
	}
	if n == 0 {
		return false
	}
	avg := sum / (3 * n)
	return avg < 128
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
