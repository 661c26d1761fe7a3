// Copyright 2025 The Wuffs Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0> or the MIT license
// <LICENSE-MIT or https://opensource.org/licenses/MIT>, at your
// option. This file may not be copied, modified, or distributed
// except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

package pipeline

import (
	"encoding/json"
	"errors"

	"github.com/tetrachromatic/vidscramble/internal/scramble"
)

// ErrParse is returned when a JSON descriptor is malformed, names an
// unrecognized step, or a step record is missing a required parameter.
var ErrParse = errors.New("pipeline: malformed descriptor")

type stepEnvelope struct {
	Name string `json:"name"`
}

// stepConstructors maps each recognized step name to a function that
// unmarshals its record's parameters and builds the corresponding step.
// Step names outside this table are rejected.
var stepConstructors = map[string]func(json.RawMessage) (scramble.Step, error){
	"ImageTranspose": func(raw json.RawMessage) (scramble.Step, error) {
		return scramble.NewImageTranspose(), nil
	},
	"RowShuffle": func(raw json.RawMessage) (scramble.Step, error) {
		var p struct {
			RowGroupSize *int `json:"row_group_size"`
			RandomSeed   *int `json:"random_seed"`
		}
		if err := json.Unmarshal(raw, &p); err != nil || p.RowGroupSize == nil || p.RandomSeed == nil {
			return nil, ErrParse
		}
		step, err := scramble.NewRowShuffle(*p.RowGroupSize, *p.RandomSeed)
		if err != nil {
			return nil, ErrParse
		}
		return step, nil
	},
	"RowMix": func(raw json.RawMessage) (scramble.Step, error) {
		var p struct {
			RowGroupSize *int `json:"row_group_size"`
			RandomSeed   *int `json:"random_seed"`
		}
		if err := json.Unmarshal(raw, &p); err != nil || p.RowGroupSize == nil || p.RandomSeed == nil {
			return nil, ErrParse
		}
		step, err := scramble.NewRowMix(*p.RowGroupSize, *p.RandomSeed)
		if err != nil {
			return nil, ErrParse
		}
		return step, nil
	},
	"ImageShift": func(raw json.RawMessage) (scramble.Step, error) {
		var p struct {
			Sx *int `json:"sx"`
			Sy *int `json:"sy"`
		}
		if err := json.Unmarshal(raw, &p); err != nil || p.Sx == nil || p.Sy == nil {
			return nil, ErrParse
		}
		return scramble.NewImageShift(*p.Sx, *p.Sy), nil
	},
}

// ParsePipeline reads a JSON descriptor (as emitted by Pipeline.ToJSON) and
// reconstructs the pipeline it describes, unfitted. Each step record is
// dispatched by its "name" field; unknown names or missing/wrongly-typed
// parameters raise ErrParse.
func ParsePipeline(data []byte) (*Pipeline, error) {
	var w struct {
		Steps              []json.RawMessage `json:"steps"`
		DataEmbedBlockSize int               `json:"data_embed_block_size"`
		DataEmbedNumRows   int               `json:"data_embed_num_rows"`
		DataEmbedInterval  *int              `json:"data_embed_interval"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, ErrParse
	}

	steps := make([]scramble.Step, len(w.Steps))
	for i, raw := range w.Steps {
		var env stepEnvelope
		if err := json.Unmarshal(raw, &env); err != nil {
			return nil, ErrParse
		}
		ctor, ok := stepConstructors[env.Name]
		if !ok {
			return nil, ErrParse
		}
		step, err := ctor(raw)
		if err != nil {
			return nil, err
		}
		steps[i] = step
	}

	p := New(steps, w.DataEmbedBlockSize, w.DataEmbedNumRows)
	if w.DataEmbedInterval != nil {
		p.DataEmbedInterval = *w.DataEmbedInterval
	}
	return p, nil
}
