// Copyright 2025 The Wuffs Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0> or the MIT license
// <LICENSE-MIT or https://opensource.org/licenses/MIT>, at your
// option. This file may not be copied, modified, or distributed
// except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

// Package framing encodes and decodes the metadata header that precedes a
// compressed payload inside an embedded data block: a sequence of 16-bit
// integers in network byte order, matching original_source's network-byte-order
// metadata header. Component E uses it for a fixed 3-field header:
// (num_rows, num_blocks_per_row, compressed_payload_len).
package framing

import (
	"encoding/binary"
	"errors"
)

// HeaderSize is the number of bytes occupied by an encoded Header.
const HeaderSize = 6

// ErrFraming is returned by Decode (and DecodeUint16s) when the input
// length is not a whole number of uint16 fields, and by Decode when the
// input holds a whole number of fields other than 3.
var ErrFraming = errors.New("framing: byte length must be even")

// Header is data-embed's fixed 3-field metadata header.
type Header struct {
	NumRows              uint16
	NumBlocksPerRow      uint16
	CompressedPayloadLen uint16
}

// Encode serializes h as 3 big-endian uint16 fields.
func Encode(h Header) []byte {
	return EncodeUint16s([]uint16{h.NumRows, h.NumBlocksPerRow, h.CompressedPayloadLen})
}

// Decode parses a Header out of exactly HeaderSize bytes.
func Decode(in []byte) (Header, error) {
	vs, err := DecodeUint16s(in)
	if err != nil {
		return Header{}, err
	}
	if len(vs) != 3 {
		return Header{}, ErrFraming
	}
	return Header{NumRows: vs[0], NumBlocksPerRow: vs[1], CompressedPayloadLen: vs[2]}, nil
}

// EncodeUint16s serializes vs as big-endian uint16 fields, back to back.
func EncodeUint16s(vs []uint16) []byte {
	out := make([]byte, len(vs)*2)
	for i, v := range vs {
		binary.BigEndian.PutUint16(out[i*2:i*2+2], v)
	}
	return out
}

// DecodeUint16s parses in as a sequence of big-endian uint16 fields.
// An odd-length input is rejected with ErrFraming.
func DecodeUint16s(in []byte) ([]uint16, error) {
	if len(in)%2 != 0 {
		return nil, ErrFraming
	}
	out := make([]uint16, len(in)/2)
	for i := range out {
		out[i] = binary.BigEndian.Uint16(in[i*2 : i*2+2])
	}
	return out, nil
}
