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
	"bytes"
	"testing"

	"github.com/tetrachromatic/vidscramble/internal/matrix"
)

// S3 (embed capacity boundary): block_size=8, num_rows=4, image_width=1280
// -> num_blocks_per_row=152, num_bytes_per_row=456, num_bytes_total=1824.
func TestFixedVectorS3(t *testing.T) {
	cfg := Config{BlockSize: 8, NumRows: 4, ImageWidth: 1280}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	if got := cfg.NumBlocksPerRow(); got != 152 {
		t.Fatalf("NumBlocksPerRow: got %d, want 152", got)
	}
	if got := cfg.NumBytesPerRow(); got != 456 {
		t.Fatalf("NumBytesPerRow: got %d, want 456", got)
	}
	if got := cfg.NumBytesTotal(); got != 1824 {
		t.Fatalf("NumBytesTotal: got %d, want 1824", got)
	}
}

func smallConfig() Config {
	return Config{BlockSize: 8, NumRows: 4, ImageWidth: 1280}
}

// Property 5: for any payload whose compressed size fits within capacity
// and any valid geometry, decode_data(encode_data(p)) == p.
func TestDataEmbedRoundTrip(t *testing.T) {
	cfg := smallConfig()
	payloads := [][]byte{
		[]byte(`{"steps":[],"data_embed_block_size":8}`),
		[]byte("short"),
		bytes.Repeat([]byte("AB"), 100),
	}
	for _, payload := range payloads {
		enc, err := EncodeData(cfg, payload)
		if err != nil {
			t.Fatalf("EncodeData(%q): %v", payload, err)
		}
		if len(enc) != cfg.NumBytesTotal() {
			t.Fatalf("encoded length %d, want %d", len(enc), cfg.NumBytesTotal())
		}
		got, err := DecodeData(cfg, enc)
		if err != nil {
			t.Fatalf("DecodeData: %v", err)
		}
		if !bytes.Equal(got, payload) {
			t.Fatalf("got %q, want %q", got, payload)
		}
	}
}

// Property 6: the largest payload accepted plus one byte raises
// ErrCapacity. Tested directly at the EncodeCompressed level (bypassing
// deflate, whose output size is not exactly controllable) using
// already-"compressed" byte strings of known length.
func TestCapacityErrorIsExact(t *testing.T) {
	cfg := smallConfig()
	capacityRSBytes := cfg.NumBytesTotal() / expansionFactor // 456
	maxBlocks := capacityRSBytes / 15                        // 30
	maxCombinedLen := maxBlocks * 12                          // 360
	maxCompressedLen := maxCombinedLen - 6                    // 354

	ok := bytes.Repeat([]byte{0x42}, maxCompressedLen)
	if _, err := EncodeCompressed(cfg, ok); err != nil {
		t.Fatalf("largest accepted payload rejected: %v", err)
	}

	tooBig := bytes.Repeat([]byte{0x42}, maxCompressedLen+1)
	if _, err := EncodeCompressed(cfg, tooBig); err != ErrCapacity {
		t.Fatalf("got %v, want ErrCapacity", err)
	}
}

func TestEncodedDataAsImageContainsMarkers(t *testing.T) {
	cfg := Config{BlockSize: 8, NumRows: 4, ImageWidth: 200}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	enc, err := EncodeData(cfg, []byte("hello vidscramble"))
	if err != nil {
		t.Fatal(err)
	}
	src := matrix.New(cfg.ImageWidth, 100)
	src.Fill(matrix.Pixel{10, 20, 30})

	out, err := EncodedDataAsImage(cfg, src, enc)
	if err != nil {
		t.Fatal(err)
	}
	wantWidth := cfg.ImageWidthWithMarker()
	if out.Width != wantWidth {
		t.Fatalf("got width %d, want %d", out.Width, wantWidth)
	}
	wantHeight := alignmentPadRows + src.Height + cfg.BlockSize/2 + cfg.NumRows*cfg.BlockSize + cfg.BlockSize/2
	if out.Height != wantHeight {
		t.Fatalf("got height %d, want %d", out.Height, wantHeight)
	}
	// Each marker's top-left cell is part of its black border ring.
	stripTop := alignmentPadRows + src.Height + cfg.BlockSize/2
	corners := [][2]int{
		{cfg.BlockSize / 2, stripTop},
		{cfg.FiducialMarkerCol2(), stripTop + (cfg.NumRows-4)*cfg.BlockSize},
		{cfg.ImageWidth + cfg.BlockSize/2, alignmentPadRows},
	}
	for i, c := range corners {
		if out.At(c[0], c[1]) != (matrix.Pixel{0, 0, 0}) {
			t.Fatalf("marker %d: top-left corner at (%d,%d) not black", i, c[0], c[1])
		}
	}
}

func TestBlankStripImageMatchesEncodedGeometry(t *testing.T) {
	cfg := Config{BlockSize: 8, NumRows: 4, ImageWidth: 200}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	enc, err := EncodeData(cfg, []byte("hello"))
	if err != nil {
		t.Fatal(err)
	}
	src := matrix.New(cfg.ImageWidth, 100)
	src.Fill(matrix.Pixel{10, 20, 30})

	withData, err := EncodedDataAsImage(cfg, src, enc)
	if err != nil {
		t.Fatal(err)
	}
	blank, err := BlankStripImage(cfg, src)
	if err != nil {
		t.Fatal(err)
	}
	if blank.Width != withData.Width || blank.Height != withData.Height {
		t.Fatalf("got %dx%d, want %dx%d", blank.Width, blank.Height, withData.Width, withData.Height)
	}
	// No marker content: the data strip's top-left cell must stay white.
	if blank.At(cfg.BlockSize/2, alignmentPadRows+src.Height+cfg.BlockSize/2) != white {
		t.Fatal("blank strip top-left corner not white")
	}
}

func TestConfigValidation(t *testing.T) {
	cases := []Config{
		{BlockSize: 3, NumRows: 4, ImageWidth: 1280},  // odd block size
		{BlockSize: 8, NumRows: 2, ImageWidth: 1280},   // too few rows
		{BlockSize: 8, NumRows: 4, ImageWidth: 10},     // too narrow
	}
	for _, cfg := range cases {
		if err := cfg.Validate(); err != ErrConfig {
			t.Fatalf("cfg %+v: got %v, want ErrConfig", cfg, err)
		}
	}
}
