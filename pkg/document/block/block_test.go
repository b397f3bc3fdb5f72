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

package block_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inkwell-team/inkwell/pkg/document/block"
	"github.com/inkwell-team/inkwell/pkg/document/richtext"
	"github.com/inkwell-team/inkwell/pkg/errors"
)

func TestType(t *testing.T) {
	t.Run("variant classification test", func(t *testing.T) {
		tests := []struct {
			typ   block.Type
			text  bool
			list  bool
			table bool
			image bool
		}{
			{block.TypeParagraph, true, false, false, false},
			{block.TypeHeading1, true, false, false, false},
			{block.TypeHeading2, true, false, false, false},
			{block.TypeHeading3, true, false, false, false},
			{block.TypeBulleted, false, true, false, false},
			{block.TypeNumbered, false, true, false, false},
			{block.TypeTable, false, false, true, false},
			{block.TypeImage, false, false, false, true},
		}
		for _, tc := range tests {
			t.Run(string(tc.typ), func(t *testing.T) {
				assert.Equal(t, tc.text, tc.typ.IsText())
				assert.Equal(t, tc.list, tc.typ.IsList())
				assert.Equal(t, tc.table, tc.typ.IsTable())
				assert.Equal(t, tc.image, tc.typ.IsImage())
				assert.True(t, tc.typ.IsValid())
			})
		}
		assert.False(t, block.Type("quote").IsValid())
	})
}

func TestNew(t *testing.T) {
	style := block.DefaultTextStyle()

	t.Run("text block test", func(t *testing.T) {
		b, err := block.New("block-1", block.TypeHeading2, style)
		assert.NoError(t, err)
		assert.Equal(t, "block-1", b.BlockID())
		assert.Equal(t, block.TypeHeading2, b.BlockType())

		content, ok := block.Content(b)
		assert.True(t, ok)
		assert.Equal(t, richtext.NewEmpty(), content)
		assert.NoError(t, block.Validate(b))
	})

	t.Run("every variant is valid test", func(t *testing.T) {
		for _, typ := range []block.Type{
			block.TypeParagraph, block.TypeBulleted, block.TypeNumbered, block.TypeTable, block.TypeImage,
		} {
			b, err := block.New("b-"+string(typ), typ, style)
			assert.NoError(t, err)
			assert.Equal(t, typ, b.BlockType())
			assert.NoError(t, block.Validate(b))
		}
	})

	t.Run("unknown type test", func(t *testing.T) {
		_, err := block.New("block-1", block.Type("quote"), style)
		assert.ErrorIs(t, err, block.ErrUnknownBlockType)
		assert.Equal(t, errors.ErrCodeInvalidArgument, errors.StatusOf(err))
	})

	t.Run("table layout test", func(t *testing.T) {
		table := block.NewTable("t", 2, 3, style)
		assert.Len(t, table.Rows, 2)
		assert.Len(t, table.Rows[1].Cells, 3)
		assert.Equal(t, "t-2-3", table.Rows[1].Cells[2].ID)
		assert.Equal(t, "\t\t\n\t\t", block.PlainText(table))
	})
}

func TestTextStyle(t *testing.T) {
	t.Run("defaults test", func(t *testing.T) {
		style := block.DefaultTextStyle()
		assert.False(t, style.Bold)
		assert.Equal(t, 14, style.FontSize)
		assert.Equal(t, "Inter", style.FontFamily)
		assert.Equal(t, "#000000", style.Color)
		assert.Equal(t, "transparent", style.BackgroundColor)
	})

	t.Run("inline overlay test", func(t *testing.T) {
		style := block.DefaultTextStyle().With(richtext.Style{
			Bold:     richtext.Bool(true),
			FontSize: richtext.Int(20),
		})
		assert.True(t, style.Bold)
		assert.False(t, style.Italic)
		assert.Equal(t, 20, style.FontSize)
		assert.Equal(t, "Inter", style.FontFamily)

		assert.Equal(t, style, block.DefaultTextStyle().With(style.Inline()))
	})
}

func TestValidate(t *testing.T) {
	t.Run("invalid id test", func(t *testing.T) {
		b := block.NewParagraph("block 1", block.DefaultTextStyle())
		err := block.Validate(b)
		assert.ErrorIs(t, err, block.ErrInvalidBlock)
	})

	t.Run("invalid style test", func(t *testing.T) {
		style := block.DefaultTextStyle()
		style.FontSize = 0
		assert.ErrorIs(t, block.Validate(block.NewParagraph("p", style)), block.ErrInvalidBlock)

		style = block.DefaultTextStyle()
		style.Color = "#12"
		assert.ErrorIs(t, block.Validate(block.NewParagraph("p", style)), block.ErrInvalidBlock)
	})

	t.Run("invalid inline style test", func(t *testing.T) {
		b := block.NewParagraph("p", block.DefaultTextStyle())
		b.Content = richtext.FromString("hi", richtext.Style{FontSize: richtext.Int(-1)})
		assert.ErrorIs(t, block.Validate(b), block.ErrInvalidBlock)
	})

	t.Run("invalid image alignment test", func(t *testing.T) {
		b := &block.ImageBlock{ID: "img", Alignment: block.AlignJustify}
		assert.ErrorIs(t, block.Validate(b), block.ErrInvalidBlock)
	})

	t.Run("nil block test", func(t *testing.T) {
		assert.ErrorIs(t, block.Validate(nil), block.ErrInvalidBlock)
	})
}

func TestContent(t *testing.T) {
	t.Run("replace content test", func(t *testing.T) {
		b := block.NewParagraph("p", block.DefaultTextStyle())
		replaced, err := block.WithContent(b, richtext.FromString("Hello", richtext.Style{}))
		assert.NoError(t, err)
		assert.Equal(t, "Hello", block.PlainText(replaced))
		assert.Equal(t, 5, block.Len(replaced))
		assert.Equal(t, "", block.PlainText(b))
	})

	t.Run("non-text block test", func(t *testing.T) {
		img := &block.ImageBlock{ID: "img", Alt: "a cat", Alignment: block.AlignCenter}
		_, ok := block.Content(img)
		assert.False(t, ok)
		assert.Equal(t, 0, block.Len(img))
		assert.Equal(t, "a cat", block.PlainText(img))

		_, err := block.WithContent(img, richtext.NewEmpty())
		assert.ErrorIs(t, err, block.ErrNotTextBlock)
		assert.Equal(t, errors.ErrCodeFailedPrecondition, errors.StatusOf(err))
	})
}

func TestDeepCopy(t *testing.T) {
	t.Run("list copy is independent test", func(t *testing.T) {
		list := &block.ListBlock{
			ID:   "l",
			Type: block.TypeBulleted,
			Items: []block.ListItem{
				{ID: "l-1", Content: richtext.FromString("one", richtext.Style{}), Style: block.DefaultTextStyle()},
				{ID: "l-2", Content: richtext.FromString("two", richtext.Style{}), Style: block.DefaultTextStyle()},
			},
		}
		clone := list.DeepCopy().(*block.ListBlock)
		clone.Items[0].Content.Spans[0].Text = "uno"

		assert.Equal(t, "one\ntwo", block.PlainText(list))
		assert.Equal(t, "uno\ntwo", block.PlainText(clone))
	})

	t.Run("table copy is independent test", func(t *testing.T) {
		table := block.NewTable("t", 1, 1, block.DefaultTextStyle())
		table.ColumnWidths = []int{120}
		clone := table.DeepCopy().(*block.TableBlock)
		clone.Rows[0].Cells[0].Content = richtext.FromString("x", richtext.Style{})
		clone.ColumnWidths[0] = 80

		assert.Equal(t, "", block.PlainText(table))
		assert.Equal(t, 120, table.ColumnWidths[0])
	})
}

func TestCodec(t *testing.T) {
	t.Run("round trip of every variant test", func(t *testing.T) {
		text := block.NewParagraph("p", block.DefaultTextStyle())
		text.Content = richtext.ApplyFormatting(
			richtext.FromString("Hello", richtext.Style{}), 0, 2, richtext.Style{Bold: richtext.Bool(true)},
		)
		list, err := block.New("l", block.TypeNumbered, block.DefaultTextStyle())
		assert.NoError(t, err)
		table := block.NewTable("t", 2, 2, block.DefaultTextStyle())
		table.ColumnWidths = []int{100, 200}
		img := &block.ImageBlock{ID: "i", Src: "https://example.com/cat.png", Alt: "cat", Width: 64, Alignment: block.AlignRight}

		for _, b := range []block.Block{text, list, table, img} {
			data, err := block.Marshal(b)
			assert.NoError(t, err)
			assert.Contains(t, string(data), `"type":"`+string(b.BlockType())+`"`)

			decoded, err := block.Unmarshal(data)
			assert.NoError(t, err)
			assert.Equal(t, b, decoded)
		}
	})

	t.Run("unknown type test", func(t *testing.T) {
		_, err := block.Unmarshal([]byte(`{"id":"q","type":"quote"}`))
		assert.ErrorIs(t, err, block.ErrUnknownBlockType)

		_, err = block.Unmarshal([]byte(`{"id":"q"}`))
		assert.ErrorIs(t, err, block.ErrUnknownBlockType)
	})

	t.Run("malformed JSON test", func(t *testing.T) {
		_, err := block.Unmarshal([]byte(`{`))
		assert.Error(t, err)
	})
}
