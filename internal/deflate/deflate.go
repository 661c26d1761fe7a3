// Copyright 2025 The Wuffs Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0> or the MIT license
// <LICENSE-MIT or https://opensource.org/licenses/MIT>, at your
// option. This file may not be copied, modified, or distributed
// except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

// Package deflate implements the lib/compression.Reader and
// lib/compression.Writer interfaces on top of the standard library's
// compress/flate, the codec the payload-compression step of data-embed
// uses: a raw DEFLATE stream, with no zlib or gzip framing, keeps the
// metadata header (package framing) as the only wrapper around the
// embedded bytes.
package deflate

import (
	"bytes"
	"compress/flate"
	"io"

	"github.com/tetrachromatic/vidscramble/lib/compression"
)

// Reader is both a compression.Reader and an io.ReadCloser. Call Reset
// before calling Read.
//
// It is analogous to the value returned by flate.NewReader in the Go
// standard library, plus the Reset method compression.Reader requires.
type Reader struct {
	rc io.ReadCloser
}

// NewReader returns a Reader not yet attached to an underlying stream;
// call Reset before Read.
func NewReader() *Reader {
	return &Reader{}
}

// Reset implements compression.Reader.
func (r *Reader) Reset(reader io.Reader, dictionary []byte) error {
	if r.rc != nil {
		r.rc.Close()
	}
	if len(dictionary) == 0 {
		r.rc = flate.NewReader(reader)
	} else {
		r.rc = flate.NewReaderDict(reader, dictionary)
	}
	return nil
}

// Read implements compression.Reader.
func (r *Reader) Read(p []byte) (int, error) {
	return r.rc.Read(p)
}

// Close implements compression.Reader.
func (r *Reader) Close() error {
	if r.rc == nil {
		return nil
	}
	return r.rc.Close()
}

// Writer is both a compression.Writer and an io.WriteCloser. Call Reset
// before calling Write.
type Writer struct {
	w    *flate.Writer
	dict []byte
}

// NewWriter returns a Writer not yet attached to an underlying stream;
// call Reset before Write.
func NewWriter() *Writer {
	return &Writer{}
}

// Reset implements compression.Writer. flate.Writer has no built-in support
// for changing its dictionary in place (unlike zlib), so a dictionary
// change allocates a fresh *flate.Writer; an unchanged dictionary reuses
// the existing one, matching the reuse-when-possible shape of
// lib/raczlib's CodecWriter.compress.
func (w *Writer) Reset(writer io.Writer, dictionary []byte, level compression.Level) error {
	flateLevel := int(level.Interpolate(
		flate.BestSpeed,
		flate.BestSpeed,
		flate.DefaultCompression,
		flate.BestCompression,
		flate.BestCompression,
	))

	if w.w == nil || !bytes.Equal(w.dict, dictionary) {
		fw, err := flate.NewWriterDict(writer, flateLevel, dictionary)
		if err != nil {
			return err
		}
		w.w = fw
		w.dict = dictionary
		return nil
	}
	w.w.Reset(writer)
	return nil
}

// Write implements compression.Writer.
func (w *Writer) Write(p []byte) (int, error) {
	return w.w.Write(p)
}

// Close implements compression.Writer.
func (w *Writer) Close() error {
	if w.w == nil {
		return nil
	}
	return w.w.Close()
}

// Compress is a convenience one-shot wrapper for data-embed: it deflates
// src at LevelSmallest, the level data-embed uses to maximize the payload
// that fits inside a fixed block grid.
func Compress(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := NewWriter()
	if err := w.Reset(&buf, nil, compression.LevelSmallest); err != nil {
		return nil, err
	}
	if _, err := w.Write(src); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decompress is a convenience one-shot wrapper for data-embed: it inflates
// a raw DEFLATE stream read from src.
func Decompress(src []byte) ([]byte, error) {
	r := NewReader()
	if err := r.Reset(bytes.NewReader(src), nil); err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}
