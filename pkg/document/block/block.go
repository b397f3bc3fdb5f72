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

// Package block provides the blocks of a document. A block is one of the
// variants TextBlock, ListBlock, TableBlock and ImageBlock, discriminated by
// its Type. Consumers switch over the concrete types.
package block

import (
	"fmt"

	"github.com/inkwell-team/inkwell/internal/validation"
	"github.com/inkwell-team/inkwell/pkg/document/richtext"
	"github.com/inkwell-team/inkwell/pkg/errors"
)

var (
	// ErrNotTextBlock is returned when a text edit is addressed to a block
	// that does not own a rich text.
	ErrNotTextBlock = errors.FailedPrecond("block is not a text block").WithCode("ErrNotTextBlock")

	// ErrUnknownBlockType is returned when the type of a block is not known.
	ErrUnknownBlockType = errors.InvalidArgument("unknown block type").WithCode("ErrUnknownBlockType")

	// ErrInvalidBlock is returned when a block fails validation.
	ErrInvalidBlock = errors.InvalidArgument("invalid block").WithCode("ErrInvalidBlock")
)

// Type is the type tag of a block.
type Type string

// The types of blocks.
const (
	TypeParagraph Type = "paragraph"
	TypeHeading1  Type = "heading1"
	TypeHeading2  Type = "heading2"
	TypeHeading3  Type = "heading3"
	TypeBulleted  Type = "bulleted"
	TypeNumbered  Type = "numbered"
	TypeTable     Type = "table"
	TypeImage     Type = "image"
)

// IsText returns true if blocks of this type are TextBlocks.
func (t Type) IsText() bool {
	return t == TypeParagraph || t == TypeHeading1 || t == TypeHeading2 || t == TypeHeading3
}

// IsList returns true if blocks of this type are ListBlocks.
func (t Type) IsList() bool {
	return t == TypeBulleted || t == TypeNumbered
}

// IsTable returns true if blocks of this type are TableBlocks.
func (t Type) IsTable() bool {
	return t == TypeTable
}

// IsImage returns true if blocks of this type are ImageBlocks.
func (t Type) IsImage() bool {
	return t == TypeImage
}

// IsValid returns true if this type is one of the known types.
func (t Type) IsValid() bool {
	return t.IsText() || t.IsList() || t.IsTable() || t.IsImage()
}

// Alignment is the horizontal alignment of a block.
type Alignment string

// The alignments of blocks. Images do not support AlignJustify.
const (
	AlignLeft    Alignment = "left"
	AlignCenter  Alignment = "center"
	AlignRight   Alignment = "right"
	AlignJustify Alignment = "justify"
)

// TextStyle is the default style of the text of a block. Unlike
// richtext.Style every field has a value.
type TextStyle struct {
	Bold            bool   `json:"bold"`
	Italic          bool   `json:"italic"`
	Underline       bool   `json:"underline"`
	Strikethrough   bool   `json:"strikethrough"`
	FontSize        int    `json:"fontSize" validate:"gt=0"`
	FontFamily      string `json:"fontFamily" validate:"required"`
	Color           string `json:"color" validate:"css_color"`
	BackgroundColor string `json:"backgroundColor" validate:"css_color"`
}

// DefaultTextStyle returns the style of new blocks.
func DefaultTextStyle() TextStyle {
	return TextStyle{
		FontSize:        14,
		FontFamily:      "Inter",
		Color:           "#000000",
		BackgroundColor: "transparent",
	}
}

// With returns this style with the set fields of the given inline style
// applied. It resolves the effective style of a character.
func (s TextStyle) With(inline richtext.Style) TextStyle {
	if inline.Bold != nil {
		s.Bold = *inline.Bold
	}
	if inline.Italic != nil {
		s.Italic = *inline.Italic
	}
	if inline.Underline != nil {
		s.Underline = *inline.Underline
	}
	if inline.Strikethrough != nil {
		s.Strikethrough = *inline.Strikethrough
	}
	if inline.FontSize != nil {
		s.FontSize = *inline.FontSize
	}
	if inline.FontFamily != nil {
		s.FontFamily = *inline.FontFamily
	}
	if inline.Color != nil {
		s.Color = *inline.Color
	}
	if inline.BackgroundColor != nil {
		s.BackgroundColor = *inline.BackgroundColor
	}
	return s
}

// Inline returns an inline style that sets every field of this style.
func (s TextStyle) Inline() richtext.Style {
	return richtext.Style{
		Bold:            richtext.Bool(s.Bold),
		Italic:          richtext.Bool(s.Italic),
		Underline:       richtext.Bool(s.Underline),
		Strikethrough:   richtext.Bool(s.Strikethrough),
		FontSize:        richtext.Int(s.FontSize),
		FontFamily:      richtext.String(s.FontFamily),
		Color:           richtext.String(s.Color),
		BackgroundColor: richtext.String(s.BackgroundColor),
	}
}

// Block is a unit of a document.
type Block interface {
	// BlockID returns the id of this block. Ids are given by the caller that
	// creates the block.
	BlockID() string

	// BlockType returns the type tag of this block.
	BlockType() Type

	// DeepCopy copies this block deeply.
	DeepCopy() Block

	isBlock()
}

// New creates an empty block of the given type.
func New(id string, t Type, style TextStyle) (Block, error) {
	switch {
	case t.IsText():
		return &TextBlock{
			ID:        id,
			Type:      t,
			Content:   richtext.NewEmpty(),
			Style:     style,
			Alignment: AlignLeft,
		}, nil
	case t.IsList():
		return &ListBlock{
			ID:   id,
			Type: t,
			Items: []ListItem{{
				ID:      itemID(id, 1),
				Content: richtext.NewEmpty(),
				Style:   style,
			}},
		}, nil
	case t.IsTable():
		return NewTable(id, defaultTableSize, defaultTableSize, style), nil
	case t.IsImage():
		return &ImageBlock{
			ID:        id,
			Alignment: AlignCenter,
		}, nil
	default:
		return nil, fmt.Errorf("new block %s of %q: %w", id, t, ErrUnknownBlockType)
	}
}

// NewParagraph creates an empty paragraph with the given style.
func NewParagraph(id string, style TextStyle) *TextBlock {
	return &TextBlock{
		ID:        id,
		Type:      TypeParagraph,
		Content:   richtext.NewEmpty(),
		Style:     style,
		Alignment: AlignLeft,
	}
}

// Validate validates the structure of the given block.
func Validate(b Block) error {
	if b == nil {
		return fmt.Errorf("validate nil block: %w", ErrInvalidBlock)
	}
	if err := validation.ValidateStruct(b); err != nil {
		return fmt.Errorf("validate block %s: %w: %w", b.BlockID(), ErrInvalidBlock, err)
	}
	return nil
}

// Content returns the rich text of the given block if it is a text block.
func Content(b Block) (richtext.Content, bool) {
	if text, ok := b.(*TextBlock); ok {
		return text.Content, true
	}
	return richtext.Content{}, false
}

// WithContent returns a copy of the given text block whose content is
// replaced with the given content. A content without spans is replaced with
// an empty content.
func WithContent(b Block, content richtext.Content) (Block, error) {
	text, ok := b.(*TextBlock)
	if !ok {
		return nil, fmt.Errorf("replace content of %s: %w", b.BlockID(), ErrNotTextBlock)
	}

	replaced := *text
	if len(content.Spans) == 0 {
		replaced.Content = richtext.NewEmpty()
	} else {
		replaced.Content = content.DeepCopy()
	}
	return &replaced, nil
}

// PlainText returns the plain text of the given block. List items and table
// rows are separated by newlines, table cells by tabs and images yield their
// alternative text.
func PlainText(b Block) string {
	switch b := b.(type) {
	case *TextBlock:
		return b.Content.PlainText()
	case *ListBlock:
		return b.plainText()
	case *TableBlock:
		return b.plainText()
	case *ImageBlock:
		return b.Alt
	default:
		return ""
	}
}

// Len returns the length of the plain text of the given block in UTF-16 code
// units. Only text blocks have a length.
func Len(b Block) int {
	if content, ok := Content(b); ok {
		return content.Len()
	}
	return 0
}

func itemID(blockID string, n int) string {
	return fmt.Sprintf("%s-%d", blockID, n)
}
