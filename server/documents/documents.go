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

// Package documents provides the document service: creating, reading,
// editing and removing stored documents. Edits of the same document are
// serialized by a named lock and stored with optimistic revisions.
package documents

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/inkwell-team/inkwell/api/types"
	"github.com/inkwell-team/inkwell/pkg/document"
	"github.com/inkwell-team/inkwell/pkg/editor"
	"github.com/inkwell-team/inkwell/server/backend"
	"github.com/inkwell-team/inkwell/server/backend/database"
	"github.com/inkwell-team/inkwell/server/backend/sync"
	"github.com/inkwell-team/inkwell/server/logging"
	"github.com/inkwell-team/inkwell/server/profiling/prometheus"
)

// now returns the current time in UTC with the precision kept by the
// databases.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// NewBlockID generates an ID for a block created by the server.
func NewBlockID() string {
	return "block-" + xid.New().String()
}

// CreateDocument creates and stores a default document with the given title
// and author. Empty values fall back to the document defaults.
func CreateDocument(
	ctx context.Context,
	be *backend.Backend,
	title string,
	author string,
) (*document.Document, error) {
	doc := document.NewDefault(xid.New().String(), now())
	if title != "" {
		doc = doc.Rename(title)
	}
	if author != "" {
		doc.Metadata.Author = author
	}

	info, err := database.NewDocInfo(doc)
	if err != nil {
		return nil, err
	}
	if err := be.DB.CreateDocInfo(ctx, info); err != nil {
		return nil, err
	}

	be.Documents.Add(info.ID, info.DeepCopy())
	if be.Metrics != nil {
		be.Metrics.AddDocumentsCreated()
	}
	logging.From(ctx).Debugf("DOCS: created %s", info.ID)

	return doc, nil
}

// GetDocument returns the stored document of the given id.
func GetDocument(
	ctx context.Context,
	be *backend.Backend,
	id string,
) (*document.Document, error) {
	info, err := findDocInfo(ctx, be, id)
	if err != nil {
		return nil, err
	}

	return info.Document()
}

// GetPlainText returns the plain text of the stored document of the given id.
func GetPlainText(
	ctx context.Context,
	be *backend.Backend,
	id string,
) (string, error) {
	doc, err := GetDocument(ctx, be, id)
	if err != nil {
		return "", err
	}

	return doc.PlainText(), nil
}

// ListDocumentSummaries returns a list of document summaries.
func ListDocumentSummaries(
	ctx context.Context,
	be *backend.Backend,
	paging types.Paging,
) ([]*types.DocumentSummary, error) {
	infos, err := be.DB.FindDocInfos(ctx, database.Paging{
		Offset:    paging.Offset,
		PageSize:  paging.PageSize,
		IsForward: paging.IsForward,
	})
	if err != nil {
		return nil, err
	}

	summaries := make([]*types.DocumentSummary, 0, len(infos))
	for _, info := range infos {
		summaries = append(summaries, toSummary(info))
	}

	return summaries, nil
}

// GetDocumentSummary returns the summary of the stored document of the given
// id.
func GetDocumentSummary(
	ctx context.Context,
	be *backend.Backend,
	id string,
) (*types.DocumentSummary, error) {
	info, err := findDocInfo(ctx, be, id)
	if err != nil {
		return nil, err
	}

	return toSummary(info), nil
}

// Edit applies the given actions to the stored document in order and stores
// the result. Either all actions are applied or none.
func Edit(
	ctx context.Context,
	be *backend.Backend,
	id string,
	actions ...editor.Action,
) (*document.Document, error) {
	locker := be.Lockers.Locker(sync.DocumentKey(id))
	locker.Lock()
	defer func() {
		if err := locker.Unlock(); err != nil {
			logging.From(ctx).Error(err)
		}
	}()

	info, err := findDocInfo(ctx, be, id)
	if err != nil {
		return nil, err
	}
	doc, err := info.Document()
	if err != nil {
		return nil, err
	}
	if len(actions) == 0 {
		return doc, nil
	}

	reducer := editor.NewReducer(
		editor.WithClock(now),
		editor.WithLogger(logging.From(ctx)),
	)
	state := editor.NewState(doc)
	for _, action := range actions {
		state, err = reducer.Reduce(state, action)
		if err != nil {
			addEditorAction(be, action, prometheus.ResultFailure)
			return nil, fmt.Errorf("edit %s: %w", id, err)
		}
		addEditorAction(be, action, prometheus.ResultSuccess)
	}

	if state.Document == doc {
		return doc, nil
	}
	if err := state.Document.Validate(); err != nil {
		return nil, fmt.Errorf("edit %s: %w", id, err)
	}
	if err := info.SetDocument(state.Document); err != nil {
		return nil, err
	}
	updated, err := be.DB.UpdateDocInfo(ctx, info)
	if err != nil {
		be.Documents.Remove(id)
		return nil, err
	}

	be.Documents.Add(id, updated)
	if be.Metrics != nil {
		be.Metrics.ObserveSnapshotBytes(len(updated.Snapshot))
	}

	return state.Document, nil
}

// RemoveDocument removes the stored document of the given id. Housekeeping
// purges it after the retention.
func RemoveDocument(
	ctx context.Context,
	be *backend.Backend,
	id string,
) error {
	locker := be.Lockers.Locker(sync.DocumentKey(id))
	locker.Lock()
	defer func() {
		if err := locker.Unlock(); err != nil {
			logging.From(ctx).Error(err)
		}
	}()

	be.Documents.Remove(id)
	if err := be.DB.RemoveDocInfo(ctx, id, now()); err != nil {
		return err
	}

	if be.Metrics != nil {
		be.Metrics.AddDocumentsRemoved()
	}
	logging.From(ctx).Debugf("DOCS: removed %s", id)

	return nil
}

// findDocInfo returns a copy of the info of the given id, from the cache if
// present.
func findDocInfo(
	ctx context.Context,
	be *backend.Backend,
	id string,
) (*database.DocInfo, error) {
	if info, ok := be.Documents.Get(id); ok {
		return info.DeepCopy(), nil
	}

	info, err := be.DB.FindDocInfo(ctx, id)
	if err != nil {
		return nil, err
	}

	be.Documents.Add(id, info.DeepCopy())
	return info, nil
}

func addEditorAction(be *backend.Backend, action editor.Action, result string) {
	if be.Metrics != nil {
		be.Metrics.AddEditorAction(action.Name(), result)
	}
}

func toSummary(info *database.DocInfo) *types.DocumentSummary {
	return &types.DocumentSummary{
		ID:         info.ID,
		Title:      info.Title,
		Author:     info.Author,
		BlockCount: info.BlockCount,
		Revision:   info.Revision,
		CreatedAt:  info.CreatedAt,
		UpdatedAt:  info.UpdatedAt,
	}
}
