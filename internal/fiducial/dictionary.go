// Copyright 2025 The Wuffs Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0> or the MIT license
// <LICENSE-MIT or https://opensource.org/licenses/MIT>, at your
// option. This file may not be copied, modified, or distributed
// except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

package fiducial

import "github.com/tetrachromatic/vidscramble/internal/mt19937"

// gridSize is the number of bit cells on a side of a marker's interior
// (the 6x6 ArUco-style payload, excluding the 1-cell black border ring).
const gridSize = 6

// dictionarySize is the number of predefined codewords. Only ids 0, 1 and 2
// (MarkerBottomLeft, MarkerBottomRight, MarkerTopRight) are used by this
// system, but the dictionary is built at ArUco scale so its minimum
// inter-codeword distance is meaningful.
const dictionarySize = 50

// minHammingDistance is the minimum pairwise Hamming distance enforced
// across the dictionary, mirroring the separation real ArUco dictionaries
// maintain between codewords (without reproducing OpenCV's published
// codebook; see DESIGN.md).
const minHammingDistance = 8

// dictionarySeed fixes the dictionary deterministically: any two builds of
// this package produce byte-identical marker bitmaps.
const dictionarySeed = 0x41525543 // "ARUC"

// codeword is a gridSize x gridSize bit pattern, true meaning a black cell.
type codeword [gridSize][gridSize]bool

var dictionary = buildDictionary()

func buildDictionary() [dictionarySize]codeword {
	var dict [dictionarySize]codeword
	src := mt19937.NewSource(dictionarySeed)
	for i := 0; i < dictionarySize; i++ {
		for {
			cw := randomCodeword(src)
			ok := true
			for j := 0; j < i; j++ {
				if hamming(cw, dict[j]) < minHammingDistance {
					ok = false
					break
				}
			}
			if ok {
				dict[i] = cw
				break
			}
		}
	}
	return dict
}

func randomCodeword(src *mt19937.Source) codeword {
	var cw codeword
	bits := src.Uint32()
	consumed := 0
	for r := 0; r < gridSize; r++ {
		for c := 0; c < gridSize; c++ {
			if consumed == 32 {
				bits = src.Uint32()
				consumed = 0
			}
			cw[r][c] = bits&1 != 0
			bits >>= 1
			consumed++
		}
	}
	return cw
}

func hamming(a, b codeword) int {
	d := 0
	for r := 0; r < gridSize; r++ {
		for c := 0; c < gridSize; c++ {
			if a[r][c] != b[r][c] {
				d++
			}
		}
	}
	return d
}
