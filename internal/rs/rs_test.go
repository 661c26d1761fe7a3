// Copyright 2025 The Wuffs Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0> or the MIT license
// <LICENSE-MIT or https://opensource.org/licenses/MIT>, at your
// option. This file may not be copied, modified, or distributed
// except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

package rs

import (
	"bytes"
	"testing"
)

// S1 from spec §8: data = "ABC...L" (12 bytes), encode then flip byte 7,
// decode must return the original data.
func TestFixedVectorS1(t *testing.T) {
	data := []byte("ABCDEFGHIJKL")
	blk, err := EncodeBlock(data)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(blk[:DataLength], data) {
		t.Fatalf("first 12 bytes of encoded block should equal input; got %q", blk[:DataLength])
	}

	blk[7] ^= 0xFF
	out, err := DecodeBlock(blk)
	if err != nil {
		t.Fatalf("decode failed after single-byte corruption: %v", err)
	}
	if !bytes.Equal(out[:], data) {
		t.Fatalf("got %q, want %q", out, data)
	}
}

func TestRoundTripAnySingleByteError(t *testing.T) {
	data := []byte{0x01, 0x0A, 0x0F, 0x00, 0x05, 0x0C, 0x03, 0x09, 0x0E, 0x02, 0x0B, 0x07}
	blk, err := EncodeBlock(data)
	if err != nil {
		t.Fatal(err)
	}
	for pos := 0; pos < CodeLength; pos++ {
		for _, corruption := range []byte{0x01, 0x05, 0x0F} {
			corrupted := blk
			corrupted[pos] ^= corruption
			out, err := DecodeBlock(corrupted)
			if err != nil {
				t.Fatalf("pos=%d corruption=%x: decode failed: %v", pos, corruption, err)
			}
			if !bytes.Equal(out[:], data) {
				t.Fatalf("pos=%d corruption=%x: got %v want %v", pos, corruption, out, data)
			}
		}
	}
}

func TestEncodeTooLong(t *testing.T) {
	_, err := EncodeBlock(make([]byte, DataLength+1))
	if err != ErrTooLong {
		t.Fatalf("got %v, want ErrTooLong", err)
	}
}

func TestEncodeShortIsZeroPadded(t *testing.T) {
	blk, err := EncodeBlock([]byte{0x0A, 0x0B})
	if err != nil {
		t.Fatal(err)
	}
	for i := 2; i < DataLength; i++ {
		if blk[i] != 0 {
			t.Fatalf("byte %d: got %x, want 0 (zero padding)", i, blk[i])
		}
	}
	out, err := DecodeBlock(blk)
	if err != nil {
		t.Fatal(err)
	}
	if out[0] != 0x0A || out[1] != 0x0B {
		t.Fatalf("got %v", out)
	}
}
