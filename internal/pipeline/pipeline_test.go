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
	"bytes"
	"testing"

	"github.com/tetrachromatic/vidscramble/internal/matrix"
	"github.com/tetrachromatic/vidscramble/internal/scramble"
)

func photo(w, h int) *matrix.Image {
	img := matrix.New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, matrix.Pixel{
				uint8((x * 37) % 256),
				uint8((y * 53) % 256),
				uint8((x + y*7) % 256),
			})
		}
	}
	return img
}

func s4Steps() []scramble.Step {
	rowShuffle, err := scramble.NewRowShuffle(8, 42)
	if err != nil {
		panic(err)
	}
	return []scramble.Step{
		scramble.NewImageTranspose(),
		rowShuffle,
		scramble.NewImageShift(1, 0),
	}
}

// S4: serialize, parse, re-fit on the same frame, serialize again; both
// JSON strings equal.
func TestS4PipelineJSONRoundTrip(t *testing.T) {
	probe := photo(1280, 720)

	p := New(s4Steps(), 8, 4)
	if err := p.Fit(probe); err != nil {
		t.Fatal(err)
	}
	first, err := p.ToJSON()
	if err != nil {
		t.Fatal(err)
	}

	parsed, err := ParsePipeline(first)
	if err != nil {
		t.Fatal(err)
	}
	if err := parsed.Fit(probe); err != nil {
		t.Fatal(err)
	}
	second, err := parsed.ToJSON()
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(first, second) {
		t.Fatalf("JSON mismatch:\nfirst:  %s\nsecond: %s", first, second)
	}
}

// Property 11: parse(pipeline.to_json()) produces a pipeline that, after
// fit on the same probe, emits byte-identical JSON. Exercised across a
// second, RowMix-bearing pipeline shape.
func TestParserIdempotence(t *testing.T) {
	probe := photo(256, 64)
	rowMix, err := scramble.NewRowMix(4, 7)
	if err != nil {
		t.Fatal(err)
	}
	steps := []scramble.Step{scramble.NewImageTranspose(), rowMix, scramble.NewImageShift(2, -1)}

	p := New(steps, 4, 4)
	if err := p.Fit(probe); err != nil {
		t.Fatal(err)
	}
	first, err := p.ToJSON()
	if err != nil {
		t.Fatal(err)
	}

	parsed, err := ParsePipeline(first)
	if err != nil {
		t.Fatal(err)
	}
	if err := parsed.Fit(probe); err != nil {
		t.Fatal(err)
	}
	second, err := parsed.ToJSON()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("JSON mismatch:\nfirst:  %s\nsecond: %s", first, second)
	}
}

func TestParsePipelineRejectsUnknownStep(t *testing.T) {
	_, err := ParsePipeline([]byte(`{"steps":[{"name":"Bogus"}],"data_embed_block_size":8,"data_embed_num_rows":4}`))
	if err != ErrParse {
		t.Fatalf("got %v, want ErrParse", err)
	}
}

func TestParsePipelineRejectsMissingParam(t *testing.T) {
	_, err := ParsePipeline([]byte(`{"steps":[{"name":"RowShuffle","row_group_size":8}],"data_embed_block_size":8,"data_embed_num_rows":4}`))
	if err != ErrParse {
		t.Fatalf("got %v, want ErrParse", err)
	}
}

func TestTransformBeforeFitFails(t *testing.T) {
	p := New(s4Steps(), 8, 4)
	if _, err := p.Transform(photo(32, 32)); err != ErrNotFitted {
		t.Fatalf("got %v, want ErrNotFitted", err)
	}
}

// S5: end-to-end single frame — transform, render, detect+extract, and the
// decoded descriptor equals the original to_json() output. The transposed
// frame is 720 pixels wide, so 8 block rows are needed to hold the
// descriptor.
func TestS5EndToEndSingleFrame(t *testing.T) {
	probe := photo(1280, 720)
	p := New(s4Steps(), 8, 8)
	if err := p.Fit(probe); err != nil {
		t.Fatal(err)
	}

	wantJSON, err := p.ToJSON()
	if err != nil {
		t.Fatal(err)
	}

	rendered, err := p.Transform(probe)
	if err != nil {
		t.Fatal(err)
	}

	nominalSize := 4 * p.DataEmbedBlockSize
	_, gotJSON, err := DetectAndExtract(rendered, nominalSize)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(wantJSON, gotJSON) {
		t.Fatalf("decoded descriptor mismatch:\nwant: %s\ngot:  %s", wantJSON, gotJSON)
	}
}

// Property 8: inverse(transform(x)) has shape (input_height, input_width, 3).
func TestPipelineReversibilityShape(t *testing.T) {
	probe := photo(1280, 720)
	rowShuffle, err := scramble.NewRowShuffle(8, 3)
	if err != nil {
		t.Fatal(err)
	}
	p := New([]scramble.Step{rowShuffle, scramble.NewImageShift(1, 1)}, 8, 4)
	if err := p.Fit(probe); err != nil {
		t.Fatal(err)
	}

	rendered, err := p.Transform(probe)
	if err != nil {
		t.Fatal(err)
	}

	nominalSize := 4 * p.DataEmbedBlockSize
	transform, _, err := DetectAndExtract(rendered, nominalSize)
	if err != nil {
		t.Fatal(err)
	}

	recovered, err := p.InverseTransform(rendered, transform)
	if err != nil {
		t.Fatal(err)
	}
	if recovered.Width != probe.Width || recovered.Height != probe.Height {
		t.Fatalf("got %dx%d, want %dx%d", recovered.Width, recovered.Height, probe.Width, probe.Height)
	}
}
