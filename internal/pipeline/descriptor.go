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

	"github.com/tetrachromatic/vidscramble/internal/scramble"
)

// wireDescriptor is the JSON shape emitted and parsed each frame. Field
// declaration order is the wire key order: encoding/json marshals struct
// fields in declaration order, giving stable, deterministic output the way
// the original emitter's ordered JSON object did.
type wireDescriptor struct {
	Steps               []interface{}  `json:"steps"`
	DataEmbedBlockSize  int            `json:"data_embed_block_size"`
	DataEmbedNumRows    int            `json:"data_embed_num_rows"`
	DataEmbedInterval   *int           `json:"data_embed_interval,omitempty"`
	State               scramble.State `json:"state"`
}

// ToJSON serializes the ordered step descriptors, the data-embed geometry
// parameters and a snapshot of State.
func (p *Pipeline) ToJSON() ([]byte, error) {
	steps := make([]interface{}, len(p.Steps))
	for i, step := range p.Steps {
		steps[i] = step.Descriptor()
	}

	w := wireDescriptor{
		Steps:              steps,
		DataEmbedBlockSize: p.DataEmbedBlockSize,
		DataEmbedNumRows:   p.DataEmbedNumRows,
		State:              p.State,
	}
	if p.DataEmbedInterval != 1 {
		interval := p.DataEmbedInterval
		w.DataEmbedInterval = &interval
	}
	return json.Marshal(w)
}

// SyncState copies only the timestamp field out of a previously-emitted
// descriptor, leaving the rest of State (and the step list) untouched.
func (p *Pipeline) SyncState(data []byte) error {
	var w struct {
		State struct {
			Timestamp uint64 `json:"timestamp"`
		} `json:"state"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return ErrParse
	}
	p.State.Timestamp = w.State.Timestamp
	return nil
}
