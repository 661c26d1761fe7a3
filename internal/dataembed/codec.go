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
	"github.com/tetrachromatic/vidscramble/internal/bitexpand"
	"github.com/tetrachromatic/vidscramble/internal/deflate"
	"github.com/tetrachromatic/vidscramble/internal/framing"
	"github.com/tetrachromatic/vidscramble/internal/rs"
)

// EncodedBuffer is the rendered strip's payload byte sequence: RS-encoded
// metadata, RS-encoded compressed payload, then zero-padding up to the
// grid's capacity.
type EncodedBuffer []byte

// EncodeData deflates payload, then delegates to EncodeCompressed.
func EncodeData(cfg Config, payload []byte) (EncodedBuffer, error) {
	compressed, err := deflate.Compress(payload)
	if err != nil {
		return nil, err
	}
	return EncodeCompressed(cfg, compressed)
}

// EncodeCompressed builds the strip payload from an already-deflated
// byte string: prepends the metadata header, RS-encodes the combined
// bytes in 12-byte chunks, bit-expands by 4, and zero-pads to the grid's
// total capacity. It fails with ErrCapacity if the expanded length
// exceeds that capacity.
func EncodeCompressed(cfg Config, compressed []byte) (EncodedBuffer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(compressed) > 0xFFFF {
		return nil, ErrConfig
	}

	header := framing.Encode(framing.Header{
		NumRows:              uint16(cfg.NumRows),
		NumBlocksPerRow:      uint16(cfg.NumBlocksPerRow()),
		CompressedPayloadLen: uint16(len(compressed)),
	})
	combined := append(header, compressed...)

	rsBytes := make([]byte, 0, ((len(combined)+rs.DataLength-1)/rs.DataLength)*rs.CodeLength)
	for i := 0; i < len(combined); i += rs.DataLength {
		end := i + rs.DataLength
		if end > len(combined) {
			end = len(combined)
		}
		blk, err := rs.EncodeBlock(combined[i:end])
		if err != nil {
			return nil, err
		}
		rsBytes = append(rsBytes, blk[:]...)
	}

	expanded, err := bitexpand.Expand(rsBytes, expansionFactor)
	if err != nil {
		return nil, err
	}

	total := cfg.NumBytesTotal()
	if len(expanded) > total {
		return nil, ErrCapacity
	}
	out := make(EncodedBuffer, total)
	copy(out, expanded)
	return out, nil
}

// DecodeData shrinks, RS-decodes and inflates buf back into the original
// payload passed to EncodeData.
func DecodeData(cfg Config, buf EncodedBuffer) ([]byte, error) {
	_, compressed, err := DecodeCompressed(cfg, buf)
	if err != nil {
		return nil, err
	}
	return deflate.Decompress(compressed)
}

// DecodeCompressed is the inverse of EncodeCompressed: it returns the
// decoded Header and the still-deflated payload bytes, without inflating
// them. Decoding proceeds one RS block at a time, stopping as soon as
// enough bytes have been recovered to cover the header-declared
// compressed length; it fails with ErrTruncation if buf runs out first.
func DecodeCompressed(cfg Config, buf EncodedBuffer) (framing.Header, []byte, error) {
	shrunk, err := bitexpand.Shrink(buf, expansionFactor)
	if err != nil {
		return framing.Header{}, nil, err
	}
	if len(shrunk) < rs.CodeLength {
		return framing.Header{}, nil, ErrTruncation
	}
	numBlocks := len(shrunk) / rs.CodeLength

	decodeBlockAt := func(i int) ([rs.DataLength]byte, error) {
		var blk rs.Block
		copy(blk[:], shrunk[i*rs.CodeLength:(i+1)*rs.CodeLength])
		return rs.DecodeBlock(blk)
	}

	first, err := decodeBlockAt(0)
	if err != nil {
		return framing.Header{}, nil, err
	}
	header, err := framing.Decode(first[:framing.HeaderSize])
	if err != nil {
		return framing.Header{}, nil, err
	}

	needed := framing.HeaderSize + int(header.CompressedPayloadLen)
	combined := append([]byte(nil), first[:]...)
	for blockIdx := 1; len(combined) < needed; blockIdx++ {
		if blockIdx >= numBlocks {
			return framing.Header{}, nil, ErrTruncation
		}
		dec, err := decodeBlockAt(blockIdx)
		if err != nil {
			return framing.Header{}, nil, err
		}
		combined = append(combined, dec[:]...)
	}

	return header, combined[framing.HeaderSize:needed], nil
}
