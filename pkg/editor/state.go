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

// Package editor provides the editing dispatcher: an editor State, the
// Actions that change it and the Reducer that applies them. States are
// values; Reduce never modifies the state it is given.
package editor

import (
	"github.com/inkwell-team/inkwell/pkg/document"
	"github.com/inkwell-team/inkwell/pkg/document/block"
)

// Range is a selected range [Start, End) in a block.
type Range struct {
	Start int
	End   int
}

// IsCollapsed returns true if this range selects nothing.
func (r Range) IsCollapsed() bool {
	return r.Start >= r.End
}

// State is the state of an editor.
type State struct {
	Document        *document.Document
	SelectedBlockID string
	CursorPosition  int
	Selection       *Range
	IsEditing       bool
	CurrentStyle    block.TextStyle
}

// NewState creates the state of an editor opening the given document. The
// first block is selected.
func NewState(doc *document.Document) State {
	state := State{
		Document:     doc,
		CurrentStyle: block.DefaultTextStyle(),
	}
	if doc.Len() > 0 {
		state.SelectedBlockID = doc.Blocks[0].BlockID()
	}
	return state
}

// HasSelection returns true if a non-empty range is selected.
func (s State) HasSelection() bool {
	return s.Selection != nil && !s.Selection.IsCollapsed()
}
