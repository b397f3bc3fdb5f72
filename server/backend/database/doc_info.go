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

package database

import (
	"fmt"
	"slices"
	"time"

	"github.com/inkwell-team/inkwell/pkg/document"
)

// DocInfo is a structure representing the stored snapshot of a document.
type DocInfo struct {
	// ID is the unique ID of the document.
	ID string `bson:"_id"`

	// Title is the title of the document.
	Title string `bson:"title"`

	// Author is the author of the document.
	Author string `bson:"author"`

	// Snapshot is the JSON encoding of the document.
	Snapshot []byte `bson:"snapshot"`

	// BlockCount is the number of blocks of the document.
	BlockCount int `bson:"block_count"`

	// Revision is increased whenever the document is updated.
	Revision int64 `bson:"revision"`

	// CreatedAt is the time when the document is created.
	CreatedAt time.Time `bson:"created_at"`

	// UpdatedAt is the time when the document is updated.
	UpdatedAt time.Time `bson:"updated_at"`

	// RemovedAt is the time when the document is removed.
	RemovedAt time.Time `bson:"removed_at,omitempty"`
}

// NewDocInfo creates the info storing the given document.
func NewDocInfo(doc *document.Document) (*DocInfo, error) {
	info := &DocInfo{ID: doc.ID, CreatedAt: doc.CreatedAt}
	if err := info.SetDocument(doc); err != nil {
		return nil, err
	}
	return info, nil
}

// SetDocument replaces the snapshot and the derived fields of this info with
// the given document.
func (info *DocInfo) SetDocument(doc *document.Document) error {
	snapshot, err := doc.Marshal()
	if err != nil {
		return fmt.Errorf("snapshot of %s: %w", doc.ID, err)
	}

	info.Title = doc.Title
	info.Author = doc.Metadata.Author
	info.Snapshot = snapshot
	info.BlockCount = doc.Len()
	info.UpdatedAt = doc.UpdatedAt
	return nil
}

// Document decodes the snapshot of this info.
func (info *DocInfo) Document() (*document.Document, error) {
	doc, err := document.Unmarshal(info.Snapshot)
	if err != nil {
		return nil, fmt.Errorf("document of %s: %w", info.ID, err)
	}
	return doc, nil
}

// IsRemoved returns true if the document is removed.
func (info *DocInfo) IsRemoved() bool {
	return !info.RemovedAt.IsZero()
}

// DeepCopy creates a deep copy of this DocInfo.
func (info *DocInfo) DeepCopy() *DocInfo {
	if info == nil {
		return nil
	}

	clone := *info
	clone.Snapshot = slices.Clone(info.Snapshot)
	return &clone
}
