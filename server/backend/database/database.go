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

// Package database provides the storage of document snapshots. The memory
// and mongo packages implement Database.
package database

import (
	"context"
	"time"

	"github.com/inkwell-team/inkwell/pkg/errors"
)

var (
	// ErrDocumentNotFound is returned when the document could not be found.
	ErrDocumentNotFound = errors.NotFound("document not found").WithCode("ErrDocumentNotFound")

	// ErrDocumentAlreadyExists is returned when a document with the same id
	// already exists.
	ErrDocumentAlreadyExists = errors.AlreadyExists("document already exists").WithCode("ErrDocumentAlreadyExists")

	// ErrConflictOnUpdate is returned when the stored revision of a document
	// differs from the revision the update was based on.
	ErrConflictOnUpdate = errors.Aborted("conflict on update").WithCode("ErrConflictOnUpdate")
)

// DefaultPageSize is the page size used when a paging does not specify one.
const DefaultPageSize = 50

// Paging is the paging of document listings. Documents are ordered by id,
// which orders them by creation time.
type Paging struct {
	// Offset is the id after which the page starts. Empty starts at the end
	// selected by IsForward.
	Offset string

	// PageSize is the maximum number of documents of the page.
	PageSize int

	// IsForward lists from the oldest document when true.
	IsForward bool
}

// Size returns the page size, using the default if it is not positive.
func (p Paging) Size() int {
	if p.PageSize <= 0 {
		return DefaultPageSize
	}
	return p.PageSize
}

// Database represents a storage of document snapshots.
type Database interface {
	// Close closes the database.
	Close() error

	// CreateDocInfo stores a new document.
	CreateDocInfo(ctx context.Context, info *DocInfo) error

	// FindDocInfo finds the document of the given id. Removed documents are
	// not found.
	FindDocInfo(ctx context.Context, id string) (*DocInfo, error)

	// FindDocInfos lists the documents that are not removed.
	FindDocInfos(ctx context.Context, paging Paging) ([]*DocInfo, error)

	// UpdateDocInfo stores the given document if its stored revision equals
	// the revision of the given info, and returns the stored info with the
	// next revision.
	UpdateDocInfo(ctx context.Context, info *DocInfo) (*DocInfo, error)

	// RemoveDocInfo marks the document of the given id as removed.
	RemoveDocInfo(ctx context.Context, id string, removedAt time.Time) error

	// PurgeDocInfos deletes the documents removed before the given time and
	// returns how many were deleted.
	PurgeDocInfos(ctx context.Context, removedBefore time.Time) (int, error)
}
