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

// Package memory implements the database interface using in-memory database.
package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/go-memdb"

	"github.com/inkwell-team/inkwell/server/backend/database"
)

// DB is an in-memory database for testing or temporarily.
type DB struct {
	db *memdb.MemDB
}

// New returns a new in-memory database.
func New() (*DB, error) {
	memDB, err := memdb.NewMemDB(schema)
	if err != nil {
		return nil, fmt.Errorf("new memdb: %w", err)
	}

	return &DB{
		db: memDB,
	}, nil
}

// Close closes the database.
func (d *DB) Close() error {
	return nil
}

// CreateDocInfo stores a new document.
func (d *DB) CreateDocInfo(_ context.Context, info *database.DocInfo) error {
	txn := d.db.Txn(true)
	defer txn.Abort()

	raw, err := txn.First(tblDocuments, "id", info.ID)
	if err != nil {
		return fmt.Errorf("create document %s: %w", info.ID, err)
	}
	if raw != nil {
		return fmt.Errorf("create document %s: %w", info.ID, database.ErrDocumentAlreadyExists)
	}

	if err := txn.Insert(tblDocuments, info.DeepCopy()); err != nil {
		return fmt.Errorf("create document %s: %w", info.ID, err)
	}
	txn.Commit()

	return nil
}

// FindDocInfo finds the document of the given id.
func (d *DB) FindDocInfo(_ context.Context, id string) (*database.DocInfo, error) {
	txn := d.db.Txn(false)
	defer txn.Abort()

	info, err := findDocInfo(txn, id)
	if err != nil {
		return nil, fmt.Errorf("find document %s: %w", id, err)
	}

	return info.DeepCopy(), nil
}

// FindDocInfos lists the documents that are not removed.
func (d *DB) FindDocInfos(_ context.Context, paging database.Paging) ([]*database.DocInfo, error) {
	txn := d.db.Txn(false)
	defer txn.Abort()

	var iter memdb.ResultIterator
	var err error
	switch {
	case paging.IsForward:
		iter, err = txn.LowerBound(tblDocuments, "id", paging.Offset)
	case paging.Offset == "":
		iter, err = txn.GetReverse(tblDocuments, "id")
	default:
		iter, err = txn.ReverseLowerBound(tblDocuments, "id", paging.Offset)
	}
	if err != nil {
		return nil, fmt.Errorf("find documents: %w", err)
	}

	var infos []*database.DocInfo
	for raw := iter.Next(); raw != nil && len(infos) < paging.Size(); raw = iter.Next() {
		info := raw.(*database.DocInfo)
		if info.ID == paging.Offset || info.IsRemoved() {
			continue
		}

		infos = append(infos, info.DeepCopy())
	}

	return infos, nil
}

// UpdateDocInfo stores the given document if nobody updated it since it was
// read.
func (d *DB) UpdateDocInfo(_ context.Context, info *database.DocInfo) (*database.DocInfo, error) {
	txn := d.db.Txn(true)
	defer txn.Abort()

	stored, err := findDocInfo(txn, info.ID)
	if err != nil {
		return nil, fmt.Errorf("update document %s: %w", info.ID, err)
	}
	if stored.Revision != info.Revision {
		return nil, fmt.Errorf(
			"update document %s at revision %d, stored %d: %w",
			info.ID, info.Revision, stored.Revision, database.ErrConflictOnUpdate,
		)
	}

	updated := info.DeepCopy()
	updated.Revision++
	updated.CreatedAt = stored.CreatedAt
	updated.RemovedAt = stored.RemovedAt
	if err := txn.Insert(tblDocuments, updated); err != nil {
		return nil, fmt.Errorf("update document %s: %w", info.ID, err)
	}
	txn.Commit()

	return updated.DeepCopy(), nil
}

// RemoveDocInfo marks the document of the given id as removed.
func (d *DB) RemoveDocInfo(_ context.Context, id string, removedAt time.Time) error {
	txn := d.db.Txn(true)
	defer txn.Abort()

	stored, err := findDocInfo(txn, id)
	if err != nil {
		return fmt.Errorf("remove document %s: %w", id, err)
	}

	removed := stored.DeepCopy()
	removed.RemovedAt = removedAt
	if err := txn.Insert(tblDocuments, removed); err != nil {
		return fmt.Errorf("remove document %s: %w", id, err)
	}
	txn.Commit()

	return nil
}

// PurgeDocInfos deletes the documents removed before the given time.
func (d *DB) PurgeDocInfos(_ context.Context, removedBefore time.Time) (int, error) {
	txn := d.db.Txn(true)
	defer txn.Abort()

	iter, err := txn.Get(tblDocuments, "id")
	if err != nil {
		return 0, fmt.Errorf("purge documents: %w", err)
	}

	var purged []*database.DocInfo
	for raw := iter.Next(); raw != nil; raw = iter.Next() {
		info := raw.(*database.DocInfo)
		if info.IsRemoved() && info.RemovedAt.Before(removedBefore) {
			purged = append(purged, info)
		}
	}

	for _, info := range purged {
		if err := txn.Delete(tblDocuments, info); err != nil {
			return 0, fmt.Errorf("purge document %s: %w", info.ID, err)
		}
	}
	txn.Commit()

	return len(purged), nil
}

// findDocInfo returns the stored info of the given id. Callers must not
// modify it.
func findDocInfo(txn *memdb.Txn, id string) (*database.DocInfo, error) {
	raw, err := txn.First(tblDocuments, "id", id)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, database.ErrDocumentNotFound
	}

	info := raw.(*database.DocInfo)
	if info.IsRemoved() {
		return nil, database.ErrDocumentNotFound
	}
	return info, nil
}
