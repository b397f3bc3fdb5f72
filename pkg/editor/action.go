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

package editor

import (
	"github.com/inkwell-team/inkwell/pkg/document"
	"github.com/inkwell-team/inkwell/pkg/document/block"
	"github.com/inkwell-team/inkwell/pkg/document/richtext"
)

// Action is an edit dispatched to a Reducer. The concrete actions below are
// the only implementations.
type Action interface {
	// Name returns the name of this action, used in logs and metrics.
	Name() string

	isAction()
}

// SetDocument replaces the whole document.
type SetDocument struct {
	Document *document.Document
}

// BlockUpdates is a partial update of a block. Nil fields are kept.
type BlockUpdates struct {
	Type      *block.Type
	Content   *richtext.Content
	Style     *block.TextStyle
	Alignment *block.Alignment
}

// UpdateBlock updates fields of the block with the given id.
type UpdateBlock struct {
	ID      string
	Updates BlockUpdates
}

// ReplaceBlock replaces the block with the same id as the given block.
type ReplaceBlock struct {
	Block block.Block
}

// AddBlock appends a block to the document.
type AddBlock struct {
	Block block.Block
}

// InsertBlockAfter inserts an empty paragraph with the given id after the
// block with AfterID, copying its style, and selects it. When Block is set it
// is inserted instead and NewID is ignored.
type InsertBlockAfter struct {
	AfterID string
	NewID   string
	Block   block.Block
}

// DeleteBlock deletes the block with the given id.
type DeleteBlock struct {
	ID string
}

// SetSelection selects the range [Start, End) of the given block.
type SetSelection struct {
	BlockID string
	Start   int
	End     int
}

// SetStyle overlays the given style on the current style. If a range is
// selected in a text block, the style is applied to it too.
type SetStyle struct {
	Style richtext.Style
}

// ToggleEditing sets whether the editor is in editing mode.
type ToggleEditing struct {
	Editing bool
}

// SetCursorPosition moves the cursor in the selected block.
type SetCursorPosition struct {
	Position int
}

// ApplyFormatting overlays a style on a range of a text block.
type ApplyFormatting struct {
	BlockID string
	Start   int
	End     int
	Style   richtext.Style
}

// InsertText inserts text into a text block. An empty style continues the
// style of the text before the position.
type InsertText struct {
	BlockID  string
	Position int
	Text     string
	Style    richtext.Style
}

// DeleteText deletes a range of a text block.
type DeleteText struct {
	BlockID string
	Start   int
	End     int
}

// ReplaceContent replaces the content of a text block.
type ReplaceContent struct {
	BlockID string
	Content richtext.Content
}

// Name returns the name of this action.
func (SetDocument) Name() string { return "set-document" }

// Name returns the name of this action.
func (UpdateBlock) Name() string { return "update-block" }

// Name returns the name of this action.
func (ReplaceBlock) Name() string { return "replace-block" }

// Name returns the name of this action.
func (AddBlock) Name() string { return "add-block" }

// Name returns the name of this action.
func (InsertBlockAfter) Name() string { return "insert-block-after" }

// Name returns the name of this action.
func (DeleteBlock) Name() string { return "delete-block" }

// Name returns the name of this action.
func (SetSelection) Name() string { return "set-selection" }

// Name returns the name of this action.
func (SetStyle) Name() string { return "set-style" }

// Name returns the name of this action.
func (ToggleEditing) Name() string { return "toggle-editing" }

// Name returns the name of this action.
func (SetCursorPosition) Name() string { return "set-cursor-position" }

// Name returns the name of this action.
func (ApplyFormatting) Name() string { return "apply-formatting" }

// Name returns the name of this action.
func (InsertText) Name() string { return "insert-text" }

// Name returns the name of this action.
func (DeleteText) Name() string { return "delete-text" }

// Name returns the name of this action.
func (ReplaceContent) Name() string { return "replace-content" }

func (SetDocument) isAction()       {}
func (UpdateBlock) isAction()       {}
func (ReplaceBlock) isAction()      {}
func (AddBlock) isAction()          {}
func (InsertBlockAfter) isAction()  {}
func (DeleteBlock) isAction()       {}
func (SetSelection) isAction()      {}
func (SetStyle) isAction()          {}
func (ToggleEditing) isAction()     {}
func (SetCursorPosition) isAction() {}
func (ApplyFormatting) isAction()   {}
func (InsertText) isAction()        {}
func (DeleteText) isAction()        {}
func (ReplaceContent) isAction()    {}
