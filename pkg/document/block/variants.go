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
	"slices"
	"strings"

	"github.com/inkwell-team/inkwell/pkg/document/richtext"
)

const defaultTableSize = 3

// TextBlock is a paragraph or a heading.
type TextBlock struct {
	ID        string           `json:"id" validate:"required,case_sensitive_slug"`
	Type      Type             `json:"type" validate:"oneof=paragraph heading1 heading2 heading3"`
	Content   richtext.Content `json:"content"`
	Style     TextStyle        `json:"style"`
	Alignment Alignment        `json:"alignment" validate:"oneof=left center right justify"`
}

// BlockID returns the id of this block.
func (b *TextBlock) BlockID() string { return b.ID }

// BlockType returns the type of this block.
func (b *TextBlock) BlockType() Type { return b.Type }

// DeepCopy copies this block deeply.
func (b *TextBlock) DeepCopy() Block {
	clone := *b
	clone.Content = b.Content.DeepCopy()
	return &clone
}

func (b *TextBlock) isBlock() {}

// ListItem is an item of a list.
type ListItem struct {
	ID      string           `json:"id" validate:"required,case_sensitive_slug"`
	Content richtext.Content `json:"content"`
	Level   int              `json:"level" validate:"min=0,max=8"`
	Style   TextStyle        `json:"style"`
}

// ListBlock is a bulleted or numbered list.
type ListBlock struct {
	ID    string     `json:"id" validate:"required,case_sensitive_slug"`
	Type  Type       `json:"type" validate:"oneof=bulleted numbered"`
	Items []ListItem `json:"items" validate:"dive"`
}

// BlockID returns the id of this block.
func (b *ListBlock) BlockID() string { return b.ID }

// BlockType returns the type of this block.
func (b *ListBlock) BlockType() Type { return b.Type }

// DeepCopy copies this block deeply.
func (b *ListBlock) DeepCopy() Block {
	clone := *b
	clone.Items = make([]ListItem, len(b.Items))
	for i, item := range b.Items {
		item.Content = item.Content.DeepCopy()
		clone.Items[i] = item
	}
	return &clone
}

func (b *ListBlock) isBlock() {}

func (b *ListBlock) plainText() string {
	texts := make([]string, 0, len(b.Items))
	for _, item := range b.Items {
		texts = append(texts, item.Content.PlainText())
	}
	return strings.Join(texts, "\n")
}

// TableCell is a cell of a table.
type TableCell struct {
	ID      string           `json:"id" validate:"required,case_sensitive_slug"`
	Content richtext.Content `json:"content"`
	Style   TextStyle        `json:"style"`
	Colspan int              `json:"colspan,omitempty" validate:"omitempty,min=1"`
	Rowspan int              `json:"rowspan,omitempty" validate:"omitempty,min=1"`
}

// TableRow is a row of a table.
type TableRow struct {
	ID    string      `json:"id" validate:"required,case_sensitive_slug"`
	Cells []TableCell `json:"cells" validate:"dive"`
}

// TableBlock is a table of rich text cells.
type TableBlock struct {
	ID           string     `json:"id" validate:"required,case_sensitive_slug"`
	Rows         []TableRow `json:"rows" validate:"dive"`
	ColumnWidths []int      `json:"columnWidths,omitempty" validate:"omitempty,dive,gt=0"`
}

// NewTable creates a table of empty cells.
func NewTable(id string, rows, cols int, style TextStyle) *TableBlock {
	table := &TableBlock{ID: id}
	for r := 0; r < rows; r++ {
		row := TableRow{ID: itemID(id, r+1)}
		for c := 0; c < cols; c++ {
			row.Cells = append(row.Cells, TableCell{
				ID:      itemID(row.ID, c+1),
				Content: richtext.NewEmpty(),
				Style:   style,
			})
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

// BlockID returns the id of this block.
func (b *TableBlock) BlockID() string { return b.ID }

// BlockType returns the type of this block.
func (b *TableBlock) BlockType() Type { return TypeTable }

// DeepCopy copies this block deeply.
func (b *TableBlock) DeepCopy() Block {
	clone := *b
	clone.ColumnWidths = slices.Clone(b.ColumnWidths)
	clone.Rows = make([]TableRow, len(b.Rows))
	for i, row := range b.Rows {
		cells := make([]TableCell, len(row.Cells))
		for j, cell := range row.Cells {
			cell.Content = cell.Content.DeepCopy()
			cells[j] = cell
		}
		row.Cells = cells
		clone.Rows[i] = row
	}
	return &clone
}

func (b *TableBlock) isBlock() {}

// MarshalJSON marshals this block with its type tag.
func (b *TableBlock) MarshalJSON() ([]byte, error) {
	type alias TableBlock
	return json.Marshal(struct {
		Type Type `json:"type"`
		*alias
	}{TypeTable, (*alias)(b)})
}

func (b *TableBlock) plainText() string {
	rows := make([]string, 0, len(b.Rows))
	for _, row := range b.Rows {
		cells := make([]string, 0, len(row.Cells))
		for _, cell := range row.Cells {
			cells = append(cells, cell.Content.PlainText())
		}
		rows = append(rows, strings.Join(cells, "\t"))
	}
	return strings.Join(rows, "\n")
}

// ImageBlock is an image.
type ImageBlock struct {
	ID        string    `json:"id" validate:"required,case_sensitive_slug"`
	Src       string    `json:"src"`
	Alt       string    `json:"alt"`
	Width     int       `json:"width,omitempty" validate:"min=0"`
	Height    int       `json:"height,omitempty" validate:"min=0"`
	Alignment Alignment `json:"alignment" validate:"oneof=left center right"`
}

// BlockID returns the id of this block.
func (b *ImageBlock) BlockID() string { return b.ID }

// BlockType returns the type of this block.
func (b *ImageBlock) BlockType() Type { return TypeImage }

// DeepCopy copies this block deeply.
func (b *ImageBlock) DeepCopy() Block {
	clone := *b
	return &clone
}

func (b *ImageBlock) isBlock() {}

// MarshalJSON marshals this block with its type tag.
func (b *ImageBlock) MarshalJSON() ([]byte, error) {
	type alias ImageBlock
	return json.Marshal(struct {
		Type Type `json:"type"`
		*alias
	}{TypeImage, (*alias)(b)})
}
