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
	"fmt"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/inkwell-team/inkwell/pkg/document"
	"github.com/inkwell-team/inkwell/pkg/document/block"
	"github.com/inkwell-team/inkwell/pkg/document/richtext"
	"github.com/inkwell-team/inkwell/pkg/errors"
)

var (
	// ErrUnknownAction is returned when the reducer is given an action it
	// does not know.
	ErrUnknownAction = errors.InvalidArgument("unknown action").WithCode("ErrUnknownAction")

	// ErrNoDocument is returned when a block action is dispatched to a state
	// without a document.
	ErrNoDocument = errors.FailedPrecond("no document").WithCode("ErrNoDocument")
)

// Option configures a Reducer.
type Option func(*Reducer)

// WithClock sets the clock used to refresh the update time of documents.
func WithClock(now func() time.Time) Option {
	return func(r *Reducer) {
		r.now = now
	}
}

// WithLogger sets the logger of edits.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(r *Reducer) {
		r.logger = logger
	}
}

// Reducer applies actions to editor states.
type Reducer struct {
	now    func() time.Time
	logger *zap.SugaredLogger
}

// NewReducer creates a new Reducer.
func NewReducer(opts ...Option) *Reducer {
	r := &Reducer{
		now:    time.Now,
		logger: zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reduce returns the state after applying the given action to the given
// state. On error the given state stays the current one.
func (r *Reducer) Reduce(state State, action Action) (State, error) {
	if action == nil {
		return state, fmt.Errorf("reduce nil action: %w", ErrUnknownAction)
	}

	switch action.(type) {
	case SetDocument, SetSelection, SetStyle, ToggleEditing, SetCursorPosition:
	default:
		if state.Document == nil {
			return state, fmt.Errorf("reduce %s: %w", action.Name(), ErrNoDocument)
		}
	}

	switch a := action.(type) {
	case SetDocument:
		state.Document = a.Document
		return state, nil
	case UpdateBlock:
		return r.mutate(state, func(doc *document.Document) (*document.Document, error) {
			return doc.UpdateBlock(a.ID, func(b block.Block) (block.Block, error) {
				return applyUpdates(b, a.Updates)
			})
		})
	case ReplaceBlock:
		return r.mutate(state, func(doc *document.Document) (*document.Document, error) {
			return doc.ReplaceBlock(a.Block)
		})
	case AddBlock:
		return r.mutate(state, func(doc *document.Document) (*document.Document, error) {
			return doc.AddBlock(a.Block)
		})
	case InsertBlockAfter:
		return r.insertBlockAfter(state, a)
	case DeleteBlock:
		return r.deleteBlock(state, a)
	case SetSelection:
		state.SelectedBlockID = a.BlockID
		state.Selection = &Range{Start: a.Start, End: a.End}
		return state, nil
	case SetStyle:
		return r.setStyle(state, a)
	case ToggleEditing:
		state.IsEditing = a.Editing
		return state, nil
	case SetCursorPosition:
		state.CursorPosition = a.Position
		return state, nil
	case ApplyFormatting:
		next, err := r.mutate(state, func(doc *document.Document) (*document.Document, error) {
			return doc.ApplyFormatting(a.BlockID, a.Start, a.End, a.Style)
		})
		if err == nil {
			r.logContent("STYL", next, a.BlockID)
		}
		return next, err
	case InsertText:
		return r.insertText(state, a)
	case DeleteText:
		next, err := r.mutate(state, func(doc *document.Document) (*document.Document, error) {
			return doc.DeleteText(a.BlockID, a.Start, a.End)
		})
		if err != nil {
			return state, err
		}
		next.SelectedBlockID = a.BlockID
		next.CursorPosition = min(max(min(a.Start, a.End), 0), blockLen(next.Document, a.BlockID))
		next.Selection = nil
		r.logContent("DELT", next, a.BlockID)
		return next, nil
	case ReplaceContent:
		next, err := r.mutate(state, func(doc *document.Document) (*document.Document, error) {
			return doc.ReplaceContent(a.BlockID, a.Content)
		})
		if err == nil {
			r.logContent("EDIT", next, a.BlockID)
		}
		return next, err
	default:
		return state, fmt.Errorf("reduce %T: %w", action, ErrUnknownAction)
	}
}

// mutate applies the given mutation to the document of the state and
// refreshes its update time.
func (r *Reducer) mutate(
	state State,
	mutation func(doc *document.Document) (*document.Document, error),
) (State, error) {
	doc, err := mutation(state.Document)
	if err != nil {
		return state, err
	}

	state.Document = doc.Touch(r.now())
	return state, nil
}

func (r *Reducer) insertBlockAfter(state State, a InsertBlockAfter) (State, error) {
	after, err := state.Document.FindBlock(a.AfterID)
	if err != nil {
		return state, err
	}

	inserted := a.Block
	if inserted == nil {
		style := state.CurrentStyle
		if text, ok := after.(*block.TextBlock); ok {
			style = text.Style
		}
		inserted = block.NewParagraph(a.NewID, style)
	}

	next, err := r.mutate(state, func(doc *document.Document) (*document.Document, error) {
		return doc.InsertBlockAfter(a.AfterID, inserted)
	})
	if err != nil {
		return state, err
	}

	next.SelectedBlockID = inserted.BlockID()
	next.CursorPosition = 0
	next.Selection = nil
	return next, nil
}

func (r *Reducer) deleteBlock(state State, a DeleteBlock) (State, error) {
	idx := state.Document.IndexOf(a.ID)

	next, err := r.mutate(state, func(doc *document.Document) (*document.Document, error) {
		return doc.DeleteBlock(a.ID)
	})
	if err != nil {
		return state, err
	}

	if state.SelectedBlockID == a.ID {
		next.SelectedBlockID = ""
		if blocks := next.Document.Blocks; len(blocks) > 0 {
			next.SelectedBlockID = blocks[max(idx-1, 0)].BlockID()
		}
		next.CursorPosition = 0
		next.Selection = nil
	}
	return next, nil
}

func (r *Reducer) setStyle(state State, a SetStyle) (State, error) {
	state.CurrentStyle = state.CurrentStyle.With(a.Style)
	if state.Document == nil || !state.HasSelection() || a.Style.IsEmpty() {
		return state, nil
	}

	selected, err := state.Document.FindBlock(state.SelectedBlockID)
	if err != nil {
		return state, nil
	}
	if _, ok := block.Content(selected); !ok {
		return state, nil
	}

	next, err := r.mutate(state, func(doc *document.Document) (*document.Document, error) {
		return doc.ApplyFormatting(state.SelectedBlockID, state.Selection.Start, state.Selection.End, a.Style)
	})
	if err != nil {
		return state, err
	}
	r.logContent("STYL", next, state.SelectedBlockID)
	return next, nil
}

func (r *Reducer) insertText(state State, a InsertText) (State, error) {
	target, err := state.Document.FindBlock(a.BlockID)
	if err != nil {
		return state, err
	}
	content, ok := block.Content(target)
	if !ok {
		return state, fmt.Errorf("insert text into %s: %w", a.BlockID, block.ErrNotTextBlock)
	}

	if a.Text == "" {
		return state, nil
	}

	style := a.Style
	if style.IsEmpty() {
		style = richtext.StyleAt(content, a.Position)
	}

	next, err := r.mutate(state, func(doc *document.Document) (*document.Document, error) {
		return doc.InsertText(a.BlockID, a.Position, a.Text, style)
	})
	if err != nil {
		return state, err
	}

	next.SelectedBlockID = a.BlockID
	next.CursorPosition = min(max(a.Position, 0), content.Len()) + richtext.FromString(a.Text, style).Len()
	next.Selection = nil
	r.logContent("EDIT", next, a.BlockID)
	return next, nil
}

func blockLen(doc *document.Document, blockID string) int {
	b, err := doc.FindBlock(blockID)
	if err != nil {
		return 0
	}
	return block.Len(b)
}

// logContent logs the content of the given block after an edit.
func (r *Reducer) logContent(op string, state State, blockID string) {
	if !r.logger.Desugar().Core().Enabled(zapcore.DebugLevel) {
		return
	}

	b, err := state.Document.FindBlock(blockID)
	if err != nil {
		return
	}
	content, _ := block.Content(b)
	r.logger.Debugf("%s: '%s' edits %s", op, blockID, content.Marshal())
}

// applyUpdates applies the given partial update to a copy of a block.
func applyUpdates(b block.Block, updates BlockUpdates) (block.Block, error) {
	switch b := b.(type) {
	case *block.TextBlock:
		if updates.Type != nil {
			if !updates.Type.IsText() {
				return nil, fmt.Errorf("change %s to %q: %w", b.ID, *updates.Type, block.ErrUnknownBlockType)
			}
			b.Type = *updates.Type
		}
		if updates.Content != nil {
			replaced, err := block.WithContent(b, *updates.Content)
			if err != nil {
				return nil, err
			}
			b = replaced.(*block.TextBlock)
		}
		if updates.Style != nil {
			b.Style = *updates.Style
		}
		if updates.Alignment != nil {
			b.Alignment = *updates.Alignment
		}
		return b, nil
	case *block.ListBlock:
		if updates.Content != nil || updates.Alignment != nil {
			return nil, fmt.Errorf("update list %s: %w", b.ID, block.ErrNotTextBlock)
		}
		if updates.Type != nil {
			if !updates.Type.IsList() {
				return nil, fmt.Errorf("change %s to %q: %w", b.ID, *updates.Type, block.ErrUnknownBlockType)
			}
			b.Type = *updates.Type
		}
		if updates.Style != nil {
			for i := range b.Items {
				b.Items[i].Style = *updates.Style
			}
		}
		return b, nil
	case *block.TableBlock:
		if updates.Content != nil || updates.Alignment != nil || (updates.Type != nil && !updates.Type.IsTable()) {
			return nil, fmt.Errorf("update table %s: %w", b.ID, block.ErrNotTextBlock)
		}
		if updates.Style != nil {
			for i := range b.Rows {
				for j := range b.Rows[i].Cells {
					b.Rows[i].Cells[j].Style = *updates.Style
				}
			}
		}
		return b, nil
	case *block.ImageBlock:
		if updates.Content != nil || updates.Style != nil || (updates.Type != nil && !updates.Type.IsImage()) {
			return nil, fmt.Errorf("update image %s: %w", b.ID, block.ErrNotTextBlock)
		}
		if updates.Alignment != nil {
			b.Alignment = *updates.Alignment
		}
		return b, nil
	default:
		return nil, fmt.Errorf("update block %T: %w", b, block.ErrUnknownBlockType)
	}
}
