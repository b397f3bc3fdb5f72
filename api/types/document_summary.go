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

// Package types provides the types exchanged between the Inkwell server and
// its clients.
package types

import (
	"time"
)

// DocumentSummary represents a summary of a stored document.
type DocumentSummary struct {
	// ID is the unique ID of the document.
	ID string `json:"id" yaml:"id"`

	// Title is the title of the document.
	Title string `json:"title" yaml:"title"`

	// Author is the author of the document.
	Author string `json:"author" yaml:"author"`

	// BlockCount is the number of blocks of the document.
	BlockCount int `json:"blockCount" yaml:"blockCount"`

	// Revision is the stored revision of the document.
	Revision int64 `json:"revision" yaml:"revision"`

	// CreatedAt is the time when the document is created.
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`

	// UpdatedAt is the time when the document is updated.
	UpdatedAt time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// Paging is the paging information of a document listing.
type Paging struct {
	// Offset is the ID of the document the page starts after.
	Offset string

	// PageSize is the maximum number of documents in a page.
	PageSize int

	// IsForward lists documents from the oldest when true.
	IsForward bool
}

// PlainText is the plain text rendering of a document.
type PlainText struct {
	Text string `json:"text" yaml:"text"`
}
