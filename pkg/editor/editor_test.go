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

package editor_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/inkwell-team/inkwell/pkg/document"
	"github.com/inkwell-team/inkwell/pkg/document/block"
	"github.com/inkwell-team/inkwell/pkg/document/richtext"
	"github.com/inkwell-team/inkwell/pkg/editor"
	"github.com/inkwell-team/inkwell/pkg/errors"
)

var (
	createdAt = time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)
	editedAt  = createdAt.Add(time.Hour)
)

func newReducer() *editor.Reducer {
	return editor.NewReducer(editor.WithClock(func() time.Time { return editedAt }))
}

func newState(t *testing.T, text string) editor.State {
	doc := document.NewDefault("d1", createdAt)
	doc, err := doc.ReplaceContent(document.DefaultBlockID, richtext.FromString(text, richtext.Style{}))
	require.NoError(t, err)
	return editor.NewState(doc)
}

func contentOf(t *testing.T, state editor.State, id string) richtext.Content {
	b, err := state.Document.FindBlock(id)
	require.NoError(t, err)
	content, ok := block.Content(b)
	require.True(t, ok)
	return content
}

func TestNewState(t *testing.T) {
	state := editor.NewState(document.NewDefault("d1", createdAt))
	assert.Equal(t, document.DefaultBlockID, state.SelectedBlockID)
	assert.Equal(t, 0, state.CursorPosition)
	assert.Nil(t, state.Selection)
	assert.False(t, state.IsEditing)
	assert.Equal(t, block.DefaultTextStyle(), state.CurrentStyle)
}

func TestReduceState(t *testing.T) {
	r := newReducer()
	state := newState(t, "Hello")

	t.Run("selection and cursor test", func(t *testing.T) {
		next, err := r.Reduce(state, editor.SetSelection{BlockID: "block-1", Start: 1, End: 3})
		assert.NoError(t, err)
		assert.Equal(t, &editor.Range{Start: 1, End: 3}, next.Selection)
		assert.True(t, next.HasSelection())
		assert.Nil(t, state.Selection)

		next, err = r.Reduce(next, editor.SetCursorPosition{Position: 4})
		assert.NoError(t, err)
		assert.Equal(t, 4, next.CursorPosition)

		next, err = r.Reduce(next, editor.ToggleEditing{Editing: true})
		assert.NoError(t, err)
		assert.True(t, next.IsEditing)
		assert.Equal(t, createdAt, next.Document.UpdatedAt)
	})

	t.Run("set document test", func(t *testing.T) {
		doc := document.New("d2", "Other", "kim", createdAt)
		next, err := r.Reduce(editor.State{}, editor.SetDocument{Document: doc})
		assert.NoError(t, err)
		assert.Same(t, doc, next.Document)
	})

	t.Run("no document test", func(t *testing.T) {
		_, err := r.Reduce(editor.State{}, editor.DeleteBlock{ID: "block-1"})
		assert.ErrorIs(t, err, editor.ErrNoDocument)

		_, err = r.Reduce(state, nil)
		assert.ErrorIs(t, err, editor.ErrUnknownAction)
	})
}

func TestReduceBlocks(t *testing.T) {
	r := newReducer()
	state := newState(t, "Hello")

	t.Run("add block refreshes update time test", func(t *testing.T) {
		next, err := r.Reduce(state, editor.AddBlock{Block: block.NewParagraph("block-2", block.DefaultTextStyle())})
		assert.NoError(t, err)
		assert.Equal(t, 2, next.Document.Len())
		assert.Equal(t, editedAt, next.Document.UpdatedAt)
		assert.Equal(t, createdAt, state.Document.UpdatedAt)
	})

	t.Run("insert block after copies style test", func(t *testing.T) {
		style := block.DefaultTextStyle()
		style.FontSize = 24
		size := style
		doc, err := state.Document.UpdateBlock("block-1", func(b block.Block) (block.Block, error) {
			b.(*block.TextBlock).Style = size
			return b, nil
		})
		require.NoError(t, err)
		state := editor.NewState(doc)

		next, err := r.Reduce(state, editor.InsertBlockAfter{AfterID: "block-1", NewID: "block-2"})
		assert.NoError(t, err)
		assert.Equal(t, "block-2", next.SelectedBlockID)

		b, err := next.Document.FindBlock("block-2")
		assert.NoError(t, err)
		assert.Equal(t, block.TypeParagraph, b.BlockType())
		assert.Equal(t, 24, b.(*block.TextBlock).Style.FontSize)

		_, err = r.Reduce(state, editor.InsertBlockAfter{AfterID: "missing", NewID: "block-3"})
		assert.ErrorIs(t, err, document.ErrBlockNotFound)
	})

	t.Run("insert given block after test", func(t *testing.T) {
		table, err := block.New("table-1", block.TypeTable, block.DefaultTextStyle())
		require.NoError(t, err)

		next, err := r.Reduce(state, editor.InsertBlockAfter{AfterID: "block-1", Block: table})
		assert.NoError(t, err)
		assert.Equal(t, "table-1", next.SelectedBlockID)
		assert.Equal(t, 1, next.Document.IndexOf("table-1"))
		assert.Equal(t, 1, state.Document.Len())
	})

	t.Run("invalid block test", func(t *testing.T) {
		_, err := r.Reduce(state, editor.AddBlock{})
		assert.ErrorIs(t, err, block.ErrInvalidBlock)

		_, err = r.Reduce(state, editor.ReplaceBlock{})
		assert.ErrorIs(t, err, block.ErrInvalidBlock)

		_, err = r.Reduce(state, editor.InsertBlockAfter{AfterID: "block-1"})
		assert.ErrorIs(t, err, block.ErrInvalidBlock)
		assert.Equal(t, errors.ErrCodeInvalidArgument, errors.StatusOf(err))

		_, err = r.Reduce(state, editor.AddBlock{Block: block.NewParagraph("", block.DefaultTextStyle())})
		assert.ErrorIs(t, err, block.ErrInvalidBlock)
		assert.Equal(t, 1, state.Document.Len())
	})

	t.Run("delete selected block test", func(t *testing.T) {
		next, err := r.Reduce(state, editor.InsertBlockAfter{AfterID: "block-1", NewID: "block-2"})
		require.NoError(t, err)

		next, err = r.Reduce(next, editor.DeleteBlock{ID: "block-2"})
		assert.NoError(t, err)
		assert.Equal(t, 1, next.Document.Len())
		assert.Equal(t, "block-1", next.SelectedBlockID)

		next, err = r.Reduce(next, editor.DeleteBlock{ID: "block-1"})
		assert.NoError(t, err)
		assert.Equal(t, 0, next.Document.Len())
		assert.Equal(t, "", next.SelectedBlockID)

		_, err = r.Reduce(next, editor.DeleteBlock{ID: "block-1"})
		assert.ErrorIs(t, err, document.ErrBlockNotFound)
	})

	t.Run("update block test", func(t *testing.T) {
		heading := block.TypeHeading1
		center := block.AlignCenter
		next, err := r.Reduce(state, editor.UpdateBlock{
			ID:      "block-1",
			Updates: editor.BlockUpdates{Type: &heading, Alignment: &center},
		})
		assert.NoError(t, err)

		b, err := next.Document.FindBlock("block-1")
		assert.NoError(t, err)
		text := b.(*block.TextBlock)
		assert.Equal(t, block.TypeHeading1, text.Type)
		assert.Equal(t, block.AlignCenter, text.Alignment)
		assert.Equal(t, "Hello", text.Content.PlainText())
		assert.Equal(t, editedAt, next.Document.UpdatedAt)

		table := block.TypeTable
		_, err = r.Reduce(state, editor.UpdateBlock{ID: "block-1", Updates: editor.BlockUpdates{Type: &table}})
		assert.ErrorIs(t, err, block.ErrUnknownBlockType)
	})

	t.Run("update non-text block test", func(t *testing.T) {
		img := &block.ImageBlock{ID: "img", Alignment: block.AlignCenter}
		next, err := r.Reduce(state, editor.AddBlock{Block: img})
		require.NoError(t, err)

		content := richtext.FromString("x", richtext.Style{})
		_, err = r.Reduce(next, editor.UpdateBlock{ID: "img", Updates: editor.BlockUpdates{Content: &content}})
		assert.ErrorIs(t, err, block.ErrNotTextBlock)

		right := block.AlignRight
		next, err = r.Reduce(next, editor.UpdateBlock{ID: "img", Updates: editor.BlockUpdates{Alignment: &right}})
		assert.NoError(t, err)
		b, _ := next.Document.FindBlock("img")
		assert.Equal(t, block.AlignRight, b.(*block.ImageBlock).Alignment)
		assert.Equal(t, block.AlignCenter, img.Alignment)
	})

	t.Run("replace block test", func(t *testing.T) {
		list, err := block.New("block-1", block.TypeBulleted, block.DefaultTextStyle())
		require.NoError(t, err)
		next, err := r.Reduce(state, editor.ReplaceBlock{Block: list})
		assert.NoError(t, err)
		b, _ := next.Document.FindBlock("block-1")
		assert.Equal(t, block.TypeBulleted, b.BlockType())
	})
}

func TestReduceText(t *testing.T) {
	r := newReducer()
	bold := richtext.Style{Bold: richtext.Bool(true)}

	t.Run("insert text moves cursor test", func(t *testing.T) {
		state := newState(t, "Hello")
		next, err := r.Reduce(state, editor.InsertText{BlockID: "block-1", Position: 5, Text: " World"})
		assert.NoError(t, err)
		assert.Equal(t, "Hello World", contentOf(t, next, "block-1").PlainText())
		assert.Equal(t, 11, next.CursorPosition)
		assert.Equal(t, editedAt, next.Document.UpdatedAt)

		next, err = r.Reduce(next, editor.InsertText{BlockID: "block-1", Position: 99, Text: "!"})
		assert.NoError(t, err)
		assert.Equal(t, "Hello World!", contentOf(t, next, "block-1").PlainText())
		assert.Equal(t, 12, next.CursorPosition)
	})

	t.Run("insert text continues style test", func(t *testing.T) {
		state := editor.NewState(document.NewDefault("d1", createdAt))
		next, err := r.Reduce(state, editor.InsertText{BlockID: "block-1", Position: 0, Text: "Hi", Style: bold})
		require.NoError(t, err)
		next, err = r.Reduce(next, editor.InsertText{BlockID: "block-1", Position: 2, Text: "!"})
		require.NoError(t, err)

		content := richtext.Compact(contentOf(t, next, "block-1"))
		assert.Equal(t, []richtext.Span{{Text: "Hi!", Style: bold}}, content.Spans)
	})

	t.Run("apply formatting test", func(t *testing.T) {
		state := newState(t, "Hello World")
		next, err := r.Reduce(state, editor.ApplyFormatting{BlockID: "block-1", Start: 2, End: 5, Style: bold})
		assert.NoError(t, err)
		assert.Equal(t, []richtext.Span{
			{Text: "He"},
			{Text: "llo", Style: bold},
			{Text: " World"},
		}, contentOf(t, next, "block-1").Spans)
	})

	t.Run("delete text test", func(t *testing.T) {
		state := newState(t, "Hello World")
		next, err := r.Reduce(state, editor.DeleteText{BlockID: "block-1", Start: 5, End: 11})
		assert.NoError(t, err)
		assert.Equal(t, "Hello", contentOf(t, next, "block-1").PlainText())
		assert.Equal(t, 5, next.CursorPosition)
	})

	t.Run("replace content test", func(t *testing.T) {
		state := newState(t, "Hello")
		next, err := r.Reduce(state, editor.ReplaceContent{
			BlockID: "block-1",
			Content: richtext.FromString("Bye", bold),
		})
		assert.NoError(t, err)
		assert.Equal(t, "Bye", contentOf(t, next, "block-1").PlainText())
	})

	t.Run("insert empty text test", func(t *testing.T) {
		state := newState(t, "Hello")
		next, err := r.Reduce(state, editor.InsertText{BlockID: "block-1", Position: 2})
		assert.NoError(t, err)
		assert.Same(t, state.Document, next.Document)
		assert.Equal(t, createdAt, next.Document.UpdatedAt)

		_, err = r.Reduce(state, editor.InsertText{BlockID: "missing"})
		assert.ErrorIs(t, err, document.ErrBlockNotFound)
	})

	t.Run("replace content without spans test", func(t *testing.T) {
		state := newState(t, "Hello")
		next, err := r.Reduce(state, editor.ReplaceContent{BlockID: "block-1", Content: richtext.Content{}})
		assert.NoError(t, err)
		assert.Equal(t, richtext.NewEmpty(), contentOf(t, next, "block-1"))

		empty := richtext.Content{Spans: []richtext.Span{}}
		next, err = r.Reduce(state, editor.UpdateBlock{ID: "block-1", Updates: editor.BlockUpdates{Content: &empty}})
		assert.NoError(t, err)
		assert.Equal(t, richtext.NewEmpty(), contentOf(t, next, "block-1"))
		assert.NoError(t, next.Document.Validate())
	})

	t.Run("text edit on image test", func(t *testing.T) {
		state := newState(t, "Hello")
		next, err := r.Reduce(state, editor.AddBlock{Block: &block.ImageBlock{ID: "img", Alignment: block.AlignLeft}})
		require.NoError(t, err)

		_, err = r.Reduce(next, editor.InsertText{BlockID: "img", Text: "x"})
		assert.ErrorIs(t, err, block.ErrNotTextBlock)
		assert.Equal(t, errors.ErrCodeFailedPrecondition, errors.StatusOf(err))
	})
}

func TestReduceSetStyle(t *testing.T) {
	r := newReducer()
	italic := richtext.Style{Italic: richtext.Bool(true)}

	t.Run("without selection test", func(t *testing.T) {
		state := newState(t, "Hello")
		next, err := r.Reduce(state, editor.SetStyle{Style: italic})
		assert.NoError(t, err)
		assert.True(t, next.CurrentStyle.Italic)
		assert.Equal(t, createdAt, next.Document.UpdatedAt)
		assert.Len(t, contentOf(t, next, "block-1").Spans, 1)
	})

	t.Run("with selection test", func(t *testing.T) {
		state := newState(t, "Hello")
		next, err := r.Reduce(state, editor.SetSelection{BlockID: "block-1", Start: 0, End: 5})
		require.NoError(t, err)
		next, err = r.Reduce(next, editor.SetStyle{Style: italic})
		assert.NoError(t, err)
		assert.Equal(t, []richtext.Span{{Text: "Hello", Style: italic}}, contentOf(t, next, "block-1").Spans)
		assert.Equal(t, editedAt, next.Document.UpdatedAt)
	})
}

func TestReducerLogging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r := editor.NewReducer(editor.WithLogger(zap.New(core).Sugar()))

	state := newState(t, "Hello")
	_, err := r.Reduce(state, editor.InsertText{BlockID: "block-1", Position: 5, Text: "!"})
	require.NoError(t, err)
	_, err = r.Reduce(state, editor.DeleteText{BlockID: "block-1", Start: 0, End: 1})
	require.NoError(t, err)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, `EDIT: 'block-1' edits [{"val":"Hello"},{"val":"!"}]`, entries[0].Message)
	assert.Contains(t, entries[1].Message, "DELT: 'block-1'")
}

func TestSession(t *testing.T) {
	t.Run("dispatch test", func(t *testing.T) {
		session := editor.NewSession(newReducer(), newState(t, ""))
		state, err := session.Dispatch(
			editor.ToggleEditing{Editing: true},
			editor.InsertText{BlockID: "block-1", Position: 0, Text: "abc"},
		)
		assert.NoError(t, err)
		assert.True(t, state.IsEditing)
		assert.Equal(t, state, session.State())

		_, err = session.Dispatch(editor.DeleteBlock{ID: "missing"})
		assert.ErrorIs(t, err, document.ErrBlockNotFound)
		assert.Equal(t, state, session.State())
	})

	t.Run("concurrent dispatch test", func(t *testing.T) {
		session := editor.NewSession(newReducer(), newState(t, ""))
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := session.Dispatch(editor.InsertText{BlockID: "block-1", Position: 0, Text: "x"})
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		assert.Equal(t, 50, contentOf(t, session.State(), "block-1").Len())
	})
}
