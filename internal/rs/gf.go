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

import "sync"

// primitivePoly is x^4 + x + 1, the field-generating polynomial for
// GF(2^4), matching field_descriptor = 4 in the original implementation.
const primitivePoly = 0x13

// field holds the process-wide, immutable GF(16) log/antilog tables. It is
// built once, lazily, under fieldOnce: building it is cheap at these sizes,
// but the spec calls for a one-shot guard regardless (see §7 of SPEC_FULL).
type field struct {
	exp [15]byte // exp[i] = alpha^i
	log [16]byte // log[v] = i such that alpha^i == v (log[0] is unused)
}

var (
	fieldOnce sync.Once
	theField  *field
)

func getField() *field {
	fieldOnce.Do(func() {
		f := &field{}
		x := 1
		for i := 0; i < 15; i++ {
			f.exp[i] = byte(x)
			f.log[x] = byte(i)
			x <<= 1
			if x&0x10 != 0 {
				x ^= primitivePoly
			}
		}
		theField = f
	})
	return theField
}

func (f *field) mul(a, b byte) byte {
	if a == 0 || b == 0 {
		return 0
	}
	return f.exp[(int(f.log[a])+int(f.log[b]))%15]
}

func (f *field) div(a, b byte) byte {
	if a == 0 {
		return 0
	}
	return f.exp[((int(f.log[a])-int(f.log[b]))%15+15)%15]
}

func (f *field) pow(a byte, n int) byte {
	if a == 0 {
		if n == 0 {
			return 1
		}
		return 0
	}
	e := (int(f.log[a]) * n) % 15
	if e < 0 {
		e += 15
	}
	return f.exp[e]
}

// polyMul multiplies two polynomials given highest-degree-coefficient-first.
func (f *field) polyMul(a, b []byte) []byte {
	out := make([]byte, len(a)+len(b)-1)
	for i, av := range a {
		if av == 0 {
			continue
		}
		for j, bv := range b {
			out[i+j] ^= f.mul(av, bv)
		}
	}
	return out
}
