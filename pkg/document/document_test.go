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

package document_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-team/inkwell/pkg/document"
	"github.com/inkwell-team/inkwell/pkg/document/block"
	"github.com/inkwell-team/inkwell/pkg/document/richtext"
	"github.com/inkwell-team/inkwell/pkg/errors"
)

var now = time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)

func paragraph(id, text string) *block.TextBlock {
	b := block.NewParagraph(id, block.DefaultTextStyle())
	b.Content = richtext.FromString(text, richtext.Style{})
	return b
}

func TestDocument(t *testing.T) {
	t.Run("constructor test", func(t *testing.T) {
		doc := document.New("d1", "", "", now)
		assert.Equal(t, document.DefaultTitle, doc.Title)
		assert.Equal(t, document.DefaultAuthor, doc.Metadata.Author)
		assert.Equal(t, document.InitialVersion, doc.Metadata.Version)
		assert.Equal(t, now, doc.CreatedAt)
		assert.Equal(t, 0, doc.Len())
		assert.NotNil(t, doc.Blocks)
	})

	t.Run("default document test", func(t *testing.T) {
		doc := document.NewDefault("d1", now)
		assert.Equal(t, "Untitled Document", doc.Title)
		assert.Equal(t, "Anonymous", doc.Metadata.Author)
		assert.Equal(t, 1, doc.Metadata.Version)
		require.Equal(t, 1, doc.Len())

		b, err := doc.FindBlock(document.DefaultBlockID)
		assert.NoError(t, err)
		assert.Equal(t, block.TypeParagraph, b.BlockType())
		assert.Equal(t, "", doc.PlainText())
		assert.NoError(t, doc.Validate())
	})
}

func TestBlockMutations(t *testing.T) {
	base := document.New("d1", "Notes", "kim", now)
	base, err := base.AddBlock(paragraph("a", "first"))
	require.NoError(t, err)
	base, err = base.AddBlock(paragraph("b", "second"))
	require.NoError(t, err)

	t.Run("add block test", func(t *testing.T) {
		doc, err := base.AddBlock(paragraph("c", "third"))
		assert.NoError(t, err)
		assert.Equal(t, "first\nsecond\nthird", doc.PlainText())
		assert.Equal(t, "first\nsecond", base.PlainText())

		_, err = base.AddBlock(paragraph("a", "again"))
		assert.ErrorIs(t, err, document.ErrDuplicateBlockID)
		assert.Equal(t, errors.ErrCodeAlreadyExists, errors.StatusOf(err))
	})

	t.Run("nil and unnamed block test", func(t *testing.T) {
		_, err := base.AddBlock(nil)
		assert.ErrorIs(t, err, block.ErrInvalidBlock)

		_, err = base.ReplaceBlock(nil)
		assert.ErrorIs(t, err, block.ErrInvalidBlock)

		_, err = base.InsertBlockAfter("a", paragraph("", "no id"))
		assert.ErrorIs(t, err, block.ErrInvalidBlock)
		assert.Equal(t, errors.ErrCodeInvalidArgument, errors.StatusOf(err))
		assert.Equal(t, 2, base.Len())
	})

	t.Run("replace content without spans test", func(t *testing.T) {
		doc, err := base.ReplaceContent("a", richtext.Content{})
		assert.NoError(t, err)
		b, err := doc.FindBlock("a")
		require.NoError(t, err)
		content, _ := block.Content(b)
		assert.Equal(t, richtext.NewEmpty(), content)
		assert.NoError(t, doc.Validate())
	})

	t.Run("insert block after test", func(t *testing.T) {
		doc, err := base.InsertBlockAfter("a", paragraph("c", "middle"))
		assert.NoError(t, err)
		assert.Equal(t, "first\nmiddle\nsecond", doc.PlainText())
		assert.Equal(t, 1, doc.IndexOf("c"))

		doc, err = base.InsertBlockAfter("b", paragraph("c", "last"))
		assert.NoError(t, err)
		assert.Equal(t, 2, doc.IndexOf("c"))

		_, err = base.InsertBlockAfter("zz", paragraph("c", ""))
		assert.ErrorIs(t, err, document.ErrBlockNotFound)

		_, err = base.InsertBlockAfter("a", paragraph("b", ""))
		assert.ErrorIs(t, err, document.ErrDuplicateBlockID)
	})

	t.Run("delete block test", func(t *testing.T) {
		doc, err := base.DeleteBlock("a")
		assert.NoError(t, err)
		assert.Equal(t, 1, doc.Len())
		assert.Equal(t, -1, doc.IndexOf("a"))
		assert.Equal(t, 2, base.Len())

		_, err = base.DeleteBlock("a-missing")
		assert.ErrorIs(t, err, document.ErrBlockNotFound)
		assert.Equal(t, errors.ErrCodeNotFound, errors.StatusOf(err))
	})

	t.Run("replace block test", func(t *testing.T) {
		heading := block.NewParagraph("b", block.DefaultTextStyle())
		heading.Type = block.TypeHeading1
		doc, err := base.ReplaceBlock(heading)
		assert.NoError(t, err)

		b, err := doc.FindBlock("b")
		assert.NoError(t, err)
		assert.Equal(t, block.TypeHeading1, b.BlockType())

		b, err = base.FindBlock("b")
		assert.NoError(t, err)
		assert.Equal(t, block.TypeParagraph, b.BlockType())
	})

	t.Run("update block test", func(t *testing.T) {
		doc, err := base.UpdateBlock("a", func(b block.Block) (block.Block, error) {
			b.(*block.TextBlock).Alignment = block.AlignCenter
			return b, nil
		})
		assert.NoError(t, err)

		b, _ := doc.FindBlock("a")
		assert.Equal(t, block.AlignCenter, b.(*block.TextBlock).Alignment)
		b, _ = base.FindBlock("a")
		assert.Equal(t, block.AlignLeft, b.(*block.TextBlock).Alignment)

		_, err = base.UpdateBlock("a", func(b block.Block) (block.Block, error) {
			return paragraph("renamed", ""), nil
		})
		assert.ErrorIs(t, err, document.ErrBlockNotFound)
	})
}

func TestTextEdits(t *testing.T) {
	base := document.New("d1", "Notes", "kim", now)
	base, err := base.AddBlock(paragraph("p", "Hello World"))
	require.NoError(t, err)
	base, err = base.AddBlock(&block.ImageBlock{ID: "img", Alignment: block.AlignCenter})
	require.NoError(t, err)

	t.Run("insert text test", func(t *testing.T) {
		doc, err := base.InsertText("p", 5, ",", richtext.Style{})
		assert.NoError(t, err)
		assert.Equal(t, "Hello, World\n", doc.PlainText())
		assert.Equal(t, "Hello World\n", base.PlainText())
	})

	t.Run("delete text test", func(t *testing.T) {
		doc, err := base.DeleteText("p", 5, 11)
		assert.NoError(t, err)
		assert.Equal(t, "Hello\n", doc.PlainText())
	})

	t.Run("apply formatting test", func(t *testing.T) {
		bold := richtext.Style{Bold: richtext.Bool(true)}
		doc, err := base.ApplyFormatting("p", 2, 5, bold)
		assert.NoError(t, err)

		b, _ := doc.FindBlock("p")
		content, _ := block.Content(b)
		assert.Equal(t, []richtext.Span{
			{Text: "He"},
			{Text: "llo", Style: bold},
			{Text: " World"},
		}, content.Spans)
	})

	t.Run("replace content test", func(t *testing.T) {
		doc, err := base.ReplaceContent("p", richtext.FromString("Bye", richtext.Style{}))
		assert.NoError(t, err)
		assert.Equal(t, "Bye\n", doc.PlainText())
	})

	t.Run("edit non-text block test", func(t *testing.T) {
		_, err := base.InsertText("img", 0, "x", richtext.Style{})
		assert.ErrorIs(t, err, block.ErrNotTextBlock)
		assert.Equal(t, errors.ErrCodeFailedPrecondition, errors.StatusOf(err))

		_, err = base.DeleteText("missing", 0, 1)
		assert.ErrorIs(t, err, document.ErrBlockNotFound)
	})
}

func TestDocumentCodec(t *testing.T) {
	t.Run("round trip test", func(t *testing.T) {
		doc := document.NewDefault("d1", now)
		doc, err := doc.InsertText(document.DefaultBlockID, 0, "Hi", richtext.Style{Italic: richtext.Bool(true)})
		require.NoError(t, err)
		doc, err = doc.AddBlock(block.NewTable("t", 1, 2, block.DefaultTextStyle()))
		require.NoError(t, err)
		doc = doc.Touch(now.Add(time.Minute))

		data, err := doc.Marshal()
		assert.NoError(t, err)

		decoded, err := document.Unmarshal(data)
		assert.NoError(t, err)
		assert.Equal(t, doc, decoded)
	})

	t.Run("null blocks test", func(t *testing.T) {
		decoded, err := document.Unmarshal([]byte(`{"id":"d1","blocks":null}`))
		assert.NoError(t, err)
		assert.NotNil(t, decoded.Blocks)
	})

	t.Run("invalid block test", func(t *testing.T) {
		_, err := document.Unmarshal([]byte(`{"id":"d1","blocks":[{"id":"x","type":"quote"}]}`))
		assert.ErrorIs(t, err, block.ErrUnknownBlockType)
	})
}

func TestDeepCopy(t *testing.T) {
	doc := document.NewDefault("d1", now)
	clone := doc.DeepCopy()
	clone.Blocks[0].(*block.TextBlock).Content = richtext.FromString("changed", richtext.Style{})

	assert.Equal(t, "", doc.PlainText())
	assert.Equal(t, "changed", clone.PlainText())
}
