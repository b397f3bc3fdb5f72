/*
 * Copyright 2026 The Inkwell Authors. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package block

import (
	"encoding/json"
	"fmt"
)

// Marshal encodes the given block to JSON. The type tag of the block is
// always included so that Unmarshal can restore the variant.
func Marshal(b Block) ([]byte, error) {
	data, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("marshal block %s: %w", b.BlockID(), err)
	}
	return data, nil
}

// Unmarshal decodes a block from JSON, choosing the variant by its type tag.
func Unmarshal(data []byte) (Block, error) {
	var header struct {
		Type Type `json:"type"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		return nil, fmt.Errorf("unmarshal block: %w", err)
	}

	var b Block
	switch t := header.Type; {
	case t.IsText():
		b = &TextBlock{}
	case t.IsList():
		b = &ListBlock{}
	case t.IsTable():
		b = &TableBlock{}
	case t.IsImage():
		b = &ImageBlock{}
	default:
		return nil, fmt.Errorf("unmarshal block of %q: %w", t, ErrUnknownBlockType)
	}

	if err := json.Unmarshal(data, b); err != nil {
		return nil, fmt.Errorf("unmarshal %s block: %w", header.Type, err)
	}
	return b, nil
}

// Blocks is a list of blocks that can be encoded to and decoded from JSON.
type Blocks []Block

// UnmarshalJSON decodes each element by its type tag.
func (bs *Blocks) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return fmt.Errorf("unmarshal blocks: %w", err)
	}

	blocks := make(Blocks, 0, len(raws))
	for _, raw := range raws {
		b, err := Unmarshal(raw)
		if err != nil {
			return err
		}
		blocks = append(blocks, b)
	}
	*bs = blocks
	return nil
}
