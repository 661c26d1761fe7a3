// Copyright 2025 The Wuffs Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0> or the MIT license
// <LICENSE-MIT or https://opensource.org/licenses/MIT>, at your
// option. This file may not be copied, modified, or distributed
// except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

package deflate

import (
	"bytes"
	"testing"

	"github.com/tetrachromatic/vidscramble/lib/compression"
)

var (
	_ compression.Reader = (*Reader)(nil)
	_ compression.Writer = (*Writer)(nil)
)

func TestRoundTrip(t *testing.T) {
	src := bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog "), 50)
	compressed, err := Compress(src)
	if err != nil {
		t.Fatal(err)
	}
	if len(compressed) >= len(src) {
		t.Fatalf("compressed size %d not smaller than source %d", len(compressed), len(src))
	}
	got, err := Decompress(compressed)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, src) {
		t.Fatalf("round trip mismatch: got %d bytes, want %d", len(got), len(src))
	}
}

func TestWriterReuseAcrossReset(t *testing.T) {
	var buf1, buf2 bytes.Buffer
	w := NewWriter()
	if err := w.Reset(&buf1, nil, compression.LevelSmallest); err != nil {
		t.Fatal(err)
	}
	w.Write([]byte("hello"))
	w.Close()

	if err := w.Reset(&buf2, nil, compression.LevelSmallest); err != nil {
		t.Fatal(err)
	}
	w.Write([]byte("world"))
	w.Close()

	got, err := Decompress(buf2.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, []byte("world")) {
		t.Fatalf("got %q, want %q", got, "world")
	}
}

func TestEmptyInput(t *testing.T) {
	compressed, err := Compress(nil)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Decompress(compressed)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Fatalf("got %d bytes, want 0", len(got))
	}
}
