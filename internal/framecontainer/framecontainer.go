// Copyright 2025 The Wuffs Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0> or the MIT license
// <LICENSE-MIT or https://opensource.org/licenses/MIT>, at your
// option. This file may not be copied, modified, or distributed
// except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

// Package framecontainer reads and writes the minimal frame container
// cmd/vidscramble uses in place of a video file: a sequence of
// uint32-length-prefixed PNG byte strings concatenated into one file. It is
// a concrete, in-scope stand-in for the out-of-scope general video
// demuxing/decoding the original system's OpenCV VideoCapture performed.
package framecontainer

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"image/png"
	"io"
	"os"

	"github.com/tetrachromatic/vidscramble/lib/readerat"
)

// ErrFormat is returned when a length prefix would run past the end of the
// container, or a frame's bytes do not decode as PNG.
var ErrFormat = errors.New("framecontainer: malformed container")

// Reader sequentially yields the decoded frames of a container file, backed
// by a readerat.ReadSeeker the way lib/readerat's doc comment recommends for
// safe independent-offset reads over a single *os.File.
type Reader struct {
	rs  *readerat.ReadSeeker
	pos int64
}

// Open wraps f (already positioned at the start of the container) for
// frame-by-frame reading.
func Open(f *os.File) (*Reader, error) {
	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	return &Reader{rs: &readerat.ReadSeeker{ReaderAt: f, Size: info.Size()}}, nil
}

// Next returns the next frame as an image.Image, or io.EOF once the
// container is exhausted.
func (r *Reader) Next() (image.Image, error) {
	if _, err := r.rs.Seek(r.pos, io.SeekStart); err != nil {
		return nil, err
	}

	var lenBuf [4]byte
	if _, err := io.ReadFull(r.rs, lenBuf[:]); err != nil {
		return nil, err
	}
	n := binary.BigEndian.Uint32(lenBuf[:])

	frame := make([]byte, n)
	if _, err := io.ReadFull(r.rs, frame); err != nil {
		return nil, ErrFormat
	}
	r.pos += 4 + int64(n)

	// Each frame's own bytes are self-describing (a PNG magic number in
	// practice, but image.Decode dispatches to whatever decoder is
	// registered, so callers can register bmp/tiff/webp/gif/jpeg via blank
	// imports to author test fixtures in whichever format is convenient).
	img, _, err := image.Decode(bytes.NewReader(frame))
	if err != nil {
		return nil, ErrFormat
	}
	return img, nil
}

// Writer appends uint32-length-prefixed PNG frames to an underlying writer.
type Writer struct {
	w io.Writer
}

// NewWriter returns a Writer appending frames to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteFrame PNG-encodes img and appends it, length-prefixed, to the
// container.
func (w *Writer) WriteFrame(img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}

	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(buf.Len()))
	if _, err := w.w.Write(lenBuf[:]); err != nil {
		return err
	}
	_, err := w.w.Write(buf.Bytes())
	return err
}
