// Copyright 2025 The Wuffs Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0> or the MIT license
// <LICENSE-MIT or https://opensource.org/licenses/MIT>, at your
// option. This file may not be copied, modified, or distributed
// except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

// Package rs implements the systematic Reed-Solomon code used to protect
// the embedded data payload: code length 15, data length 12, FEC length 3,
// over GF(2^4). The generator polynomial uses a sequential-root
// construction starting at root index 0 with 3 roots, matching
// original_source/src/data_embed.cpp's use of the schifra RS library (no
// library in the retrieved Go corpus implements RS over GF(16) at these
// parameters, so this is hand-built on the standard library; see
// DESIGN.md).
//
// GF(2^4) symbols only represent values 0-15, but EncodeBlock/DecodeBlock's
// data is arbitrary full-range bytes (the embedded header and compress/flate
// output are not nibble-valued). Each byte is therefore treated as two
// independent GF(16) symbols, its low and high nibble, and run through two
// parallel (15, 12, 3) codes: one over every block's low-nibble plane, one
// over the high-nibble plane. A single corrupted byte corrupts one symbol
// in each plane, still within each plane's one-symbol correction capacity,
// so whole-byte errors correct exactly as the single-error-per-symbol
// algebra promises. See DESIGN.md for why this plane-split replaces a
// direct byte-as-symbol encoding, which would index the 16-entry log/antilog
// tables out of range.
package rs

import "errors"

const (
	// CodeLength is the total number of symbols in one RS block.
	CodeLength = 15
	// DataLength is the number of message symbols in one RS block.
	DataLength = 12
	// FECLength is the number of parity symbols in one RS block.
	FECLength = 3

	generatorRootIndex = 0
	generatorRootCount = FECLength
)

// ErrTooLong is returned by EncodeBlock when more than DataLength bytes of
// data are supplied.
var ErrTooLong = errors.New("rs: data length exceeds block capacity")

// ErrRS is returned by DecodeBlock when the block has more errors than the
// code can correct (more than one symbol in this (15,12,3) code).
var ErrRS = errors.New("rs: unable to correct block")

// Block is one encoded (15, 12, 3) RS codeword.
type Block [CodeLength]byte

func generatorPoly() []byte {
	f := getField()
	g := []byte{1}
	for i := 0; i < generatorRootCount; i++ {
		root := f.pow(2, generatorRootIndex+i)
		g = f.polyMul(g, []byte{1, root})
	}
	return g
}

// EncodeBlock encodes up to DataLength bytes of data (zero-padded if
// shorter) into a 15-byte systematic RS codeword: the first 12 bytes are
// the (possibly zero-padded) data, the next 3 are the FEC parity. Each
// data byte is split into a low-nibble and a high-nibble GF(16) symbol,
// which are encoded as two independent (15, 12, 3) codes and repacked a
// nibble each into the 3 parity bytes; see the package doc comment.
func EncodeBlock(data []byte) (Block, error) {
	var blk Block
	if len(data) > DataLength {
		return blk, ErrTooLong
	}
	copy(blk[:], data)

	var lo, hi [DataLength]byte
	for i := 0; i < DataLength; i++ {
		lo[i] = blk[i] & 0x0F
		hi[i] = blk[i] >> 4
	}
	loCode := encodeSymbols(lo)
	hiCode := encodeSymbols(hi)
	for j := 0; j < FECLength; j++ {
		blk[DataLength+j] = hiCode[DataLength+j]<<4 | loCode[DataLength+j]
	}
	return blk, nil
}

// encodeSymbols encodes a DataLength-symbol message (each symbol a GF(16)
// element, 0-15) into a CodeLength-symbol systematic codeword.
func encodeSymbols(msg [DataLength]byte) [CodeLength]byte {
	f := getField()
	gen := generatorPoly()

	scratch := make([]byte, CodeLength)
	copy(scratch, msg[:])
	for i := 0; i < DataLength; i++ {
		coef := scratch[i]
		if coef == 0 {
			continue
		}
		for j, gv := range gen {
			scratch[i+j] ^= f.mul(gv, coef)
		}
	}
	var code [CodeLength]byte
	copy(code[:], msg[:])
	copy(code[DataLength:], scratch[DataLength:])
	return code
}

// DecodeBlock decodes a 15-byte RS codeword, returning the 12-byte message.
// It decodes the low-nibble and high-nibble planes independently, each
// correcting up to one symbol error; since a corrupted byte corrupts one
// symbol in each plane, this corrects any single whole-byte error. More
// than one corrupted symbol in either plane yields ErrRS.
func DecodeBlock(block Block) ([DataLength]byte, error) {
	var loCode, hiCode [CodeLength]byte
	for i := 0; i < CodeLength; i++ {
		loCode[i] = block[i] & 0x0F
		hiCode[i] = block[i] >> 4
	}
	lo, err := decodeSymbols(loCode)
	if err != nil {
		return [DataLength]byte{}, err
	}
	hi, err := decodeSymbols(hiCode)
	if err != nil {
		return [DataLength]byte{}, err
	}

	var out [DataLength]byte
	for i := 0; i < DataLength; i++ {
		out[i] = hi[i]<<4 | lo[i]
	}
	return out, nil
}

// decodeSymbols decodes one CodeLength-symbol plane, correcting up to one
// symbol error.
func decodeSymbols(code [CodeLength]byte) ([DataLength]byte, error) {
	var out [DataLength]byte
	f := getField()

	syn := [generatorRootCount]byte{}
	allZero := true
	for k := 0; k < generatorRootCount; k++ {
		syn[k] = evalPoly(f, code[:], f.pow(2, generatorRootIndex+k))
		if syn[k] != 0 {
			allZero = false
		}
	}

	if allZero {
		copy(out[:], code[:DataLength])
		return out, nil
	}

	// Single-error-correction: with roots alpha^0, alpha^1, alpha^2, an
	// error of magnitude m at codeword position j (degree i = CodeLength-1-j)
	// produces syndromes S_k = m * alpha^(k*i). S_0 == m directly.
	m := syn[0]
	if m == 0 {
		// S_0 == 0 but another syndrome is nonzero: more than one error.
		return out, ErrRS
	}
	ratio := f.div(syn[1], m)
	pos := -1
	for i := 0; i < 15; i++ {
		if f.pow(2, i) == ratio {
			pos = i
			break
		}
	}
	if pos < 0 {
		return out, ErrRS
	}
	if f.pow(2, 2*pos) != f.div(syn[2], m) {
		return out, ErrRS
	}

	j := CodeLength - 1 - pos
	corrected := code
	corrected[j] ^= m
	copy(out[:], corrected[:DataLength])
	return out, nil
}

// evalPoly evaluates the codeword (highest-degree-coefficient-first, degree
// CodeLength-1 down to 0) at x using Horner's method.
func evalPoly(f *field, block []byte, x byte) byte {
	var acc byte
	for _, c := range block {
		acc = f.mul(acc, x) ^ c
	}
	return acc
}
