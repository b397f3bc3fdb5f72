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

// Package document provides the document aggregate: an ordered sequence of
// blocks with a title and metadata. Every mutation returns a new document and
// leaves the receiver untouched, so a document can be shared between readers.
package document

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/inkwell-team/inkwell/pkg/document/block"
	"github.com/inkwell-team/inkwell/pkg/document/richtext"
	"github.com/inkwell-team/inkwell/pkg/errors"
)

const (
	// DefaultTitle is the title of a document created without one.
	DefaultTitle = "Untitled Document"

	// DefaultAuthor is the author of a document created without one.
	DefaultAuthor = "Anonymous"

	// DefaultBlockID is the id of the first block of a default document.
	DefaultBlockID = "block-1"

	// InitialVersion is the version of a new document.
	InitialVersion = 1
)

var (
	// ErrBlockNotFound is returned when the block could not be found.
	ErrBlockNotFound = errors.NotFound("block not found").WithCode("ErrBlockNotFound")

	// ErrDuplicateBlockID is returned when a block with the same id already
	// exists in the document.
	ErrDuplicateBlockID = errors.AlreadyExists("block id already exists").WithCode("ErrDuplicateBlockID")
)

// Metadata is the metadata of a document.
type Metadata struct {
	Author  string `json:"author"`
	Version int    `json:"version"`
}

// Document is a block-based rich text document.
type Document struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
	Blocks    block.Blocks `json:"blocks"`
	Metadata  Metadata     `json:"metadata"`
}

// New creates a document without blocks.
func New(id, title, author string, now time.Time) *Document {
	if title == "" {
		title = DefaultTitle
	}
	if author == "" {
		author = DefaultAuthor
	}

	return &Document{
		ID:        id,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
		Blocks:    block.Blocks{},
		Metadata: Metadata{
			Author:  author,
			Version: InitialVersion,
		},
	}
}

// NewDefault creates the document an editor starts with: an untitled
// document holding one empty paragraph.
func NewDefault(id string, now time.Time) *Document {
	doc := New(id, DefaultTitle, DefaultAuthor, now)
	doc.Blocks = block.Blocks{block.NewParagraph(DefaultBlockID, block.DefaultTextStyle())}
	return doc
}

// Len returns the number of blocks in this document.
func (d *Document) Len() int {
	return len(d.Blocks)
}

// IndexOf returns the index of the block with the given id, or -1.
func (d *Document) IndexOf(id string) int {
	return slices.IndexFunc(d.Blocks, func(b block.Block) bool {
		return b.BlockID() == id
	})
}

// FindBlock returns the block with the given id.
func (d *Document) FindBlock(id string) (block.Block, error) {
	idx := d.IndexOf(id)
	if idx < 0 {
		return nil, fmt.Errorf("find block %s: %w", id, ErrBlockNotFound)
	}
	return d.Blocks[idx], nil
}

// AddBlock returns a document with the given block appended.
func (d *Document) AddBlock(b block.Block) (*Document, error) {
	if err := block.Validate(b); err != nil {
		return nil, fmt.Errorf("add block: %w", err)
	}
	if d.IndexOf(b.BlockID()) >= 0 {
		return nil, fmt.Errorf("add block %s: %w", b.BlockID(), ErrDuplicateBlockID)
	}

	next := d.shallowCopy()
	next.Blocks = append(slices.Clone(d.Blocks), b)
	return next, nil
}

// InsertBlockAfter returns a document with the given block inserted right
// after the block with the given id.
func (d *Document) InsertBlockAfter(afterID string, b block.Block) (*Document, error) {
	idx := d.IndexOf(afterID)
	if idx < 0 {
		return nil, fmt.Errorf("insert block after %s: %w", afterID, ErrBlockNotFound)
	}
	if err := block.Validate(b); err != nil {
		return nil, fmt.Errorf("insert block after %s: %w", afterID, err)
	}
	if d.IndexOf(b.BlockID()) >= 0 {
		return nil, fmt.Errorf("insert block %s: %w", b.BlockID(), ErrDuplicateBlockID)
	}

	next := d.shallowCopy()
	next.Blocks = slices.Insert(slices.Clone(d.Blocks), idx+1, b)
	return next, nil
}

// ReplaceBlock returns a document in which the block with the id of the
// given block is replaced by it.
func (d *Document) ReplaceBlock(b block.Block) (*Document, error) {
	if err := block.Validate(b); err != nil {
		return nil, fmt.Errorf("replace block: %w", err)
	}

	idx := d.IndexOf(b.BlockID())
	if idx < 0 {
		return nil, fmt.Errorf("replace block %s: %w", b.BlockID(), ErrBlockNotFound)
	}

	next := d.shallowCopy()
	next.Blocks = slices.Clone(d.Blocks)
	next.Blocks[idx] = b
	return next, nil
}

// UpdateBlock returns a document in which the block with the given id is
// replaced by the result of the given updater. The updater receives a copy
// of the block and may modify it.
func (d *Document) UpdateBlock(id string, updater func(b block.Block) (block.Block, error)) (*Document, error) {
	b, err := d.FindBlock(id)
	if err != nil {
		return nil, err
	}

	updated, err := updater(b.DeepCopy())
	if err != nil {
		return nil, fmt.Errorf("update block %s: %w", id, err)
	}
	if err := block.Validate(updated); err != nil {
		return nil, fmt.Errorf("update block %s: %w", id, err)
	}
	if updated.BlockID() != id {
		return nil, fmt.Errorf("update block %s to %s: %w", id, updated.BlockID(), ErrBlockNotFound)
	}

	return d.ReplaceBlock(updated)
}

// DeleteBlock returns a document without the block with the given id.
func (d *Document) DeleteBlock(id string) (*Document, error) {
	if d.IndexOf(id) < 0 {
		return nil, fmt.Errorf("delete block %s: %w", id, ErrBlockNotFound)
	}

	next := d.shallowCopy()
	next.Blocks = slices.DeleteFunc(slices.Clone(d.Blocks), func(b block.Block) bool {
		return b.BlockID() == id
	})
	return next, nil
}

// UpdateTextContent returns a document in which the content of the text
// block with the given id is replaced by the result of the given edit.
func (d *Document) UpdateTextContent(id string, edit func(c richtext.Content) richtext.Content) (*Document, error) {
	return d.UpdateBlock(id, func(b block.Block) (block.Block, error) {
		content, ok := block.Content(b)
		if !ok {
			return nil, block.ErrNotTextBlock
		}
		return block.WithContent(b, edit(content))
	})
}

// InsertText inserts the given text into the text block with the given id.
func (d *Document) InsertText(id string, position int, text string, style richtext.Style) (*Document, error) {
	return d.UpdateTextContent(id, func(c richtext.Content) richtext.Content {
		return richtext.Insert(c, position, text, style)
	})
}

// DeleteText deletes the range [start, end) of the text block with the
// given id.
func (d *Document) DeleteText(id string, start, end int) (*Document, error) {
	return d.UpdateTextContent(id, func(c richtext.Content) richtext.Content {
		return richtext.Delete(c, start, end)
	})
}

// ApplyFormatting overlays the given style on the range [start, end) of the
// text block with the given id.
func (d *Document) ApplyFormatting(id string, start, end int, style richtext.Style) (*Document, error) {
	return d.UpdateTextContent(id, func(c richtext.Content) richtext.Content {
		return richtext.ApplyFormatting(c, start, end, style)
	})
}

// ReplaceContent replaces the content of the text block with the given id.
func (d *Document) ReplaceContent(id string, content richtext.Content) (*Document, error) {
	return d.UpdateTextContent(id, func(richtext.Content) richtext.Content {
		return content
	})
}

// Rename returns a document with the given title.
func (d *Document) Rename(title string) *Document {
	next := d.shallowCopy()
	next.Title = title
	return next
}

// Touch returns a document updated at the given time.
func (d *Document) Touch(now time.Time) *Document {
	next := d.shallowCopy()
	next.UpdatedAt = now
	return next
}

// PlainText returns the plain text of this document, one block per line.
func (d *Document) PlainText() string {
	texts := make([]string, 0, len(d.Blocks))
	for _, b := range d.Blocks {
		texts = append(texts, block.PlainText(b))
	}
	return strings.Join(texts, "\n")
}

// Validate validates the blocks of this document.
func (d *Document) Validate() error {
	seen := make(map[string]struct{}, len(d.Blocks))
	for _, b := range d.Blocks {
		if _, ok := seen[b.BlockID()]; ok {
			return fmt.Errorf("validate document %s: %s: %w", d.ID, b.BlockID(), ErrDuplicateBlockID)
		}
		seen[b.BlockID()] = struct{}{}

		if err := block.Validate(b); err != nil {
			return fmt.Errorf("validate document %s: %w", d.ID, err)
		}
	}
	return nil
}

// DeepCopy copies this document deeply.
func (d *Document) DeepCopy() *Document {
	next := d.shallowCopy()
	next.Blocks = make(block.Blocks, 0, len(d.Blocks))
	for _, b := range d.Blocks {
		next.Blocks = append(next.Blocks, b.DeepCopy())
	}
	return next
}

// Marshal encodes this document to JSON.
func (d *Document) Marshal() ([]byte, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("marshal document %s: %w", d.ID, err)
	}
	return data, nil
}

// Unmarshal decodes a document from JSON.
func Unmarshal(data []byte) (*Document, error) {
	doc := &Document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("unmarshal document: %w", err)
	}
	if doc.Blocks == nil {
		doc.Blocks = block.Blocks{}
	}
	return doc, nil
}

// shallowCopy copies this document sharing its blocks. Blocks are never
// modified in place, so sharing them between documents is safe.
func (d *Document) shallowCopy() *Document {
	next := *d
	return &next
}
