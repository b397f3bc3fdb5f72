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

// Package testcases contains testcases for database. It is used by database
// implementations to test their own implementations with the same testcases.
package testcases

import (
	"context"
	"testing"
	"time"

	"github.com/rs/xid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-team/inkwell/pkg/document"
	"github.com/inkwell-team/inkwell/pkg/document/richtext"
	"github.com/inkwell-team/inkwell/server/backend/database"
)

// now is truncated to milliseconds, the precision of stored times.
var now = time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)

func newDocInfo(t *testing.T, title string) *database.DocInfo {
	doc := document.NewDefault(xid.New().String(), now).Rename(title)
	info, err := database.NewDocInfo(doc)
	require.NoError(t, err)
	return info
}

// RunCreateAndFindDocInfoTest runs the CreateDocInfo and FindDocInfo tests
// for the given db.
func RunCreateAndFindDocInfoTest(t *testing.T, db database.Database) {
	ctx := context.Background()

	t.Run("create and find docInfo test", func(t *testing.T) {
		info := newDocInfo(t, t.Name())
		assert.NoError(t, db.CreateDocInfo(ctx, info))

		found, err := db.FindDocInfo(ctx, info.ID)
		assert.NoError(t, err)
		assert.Equal(t, info.ID, found.ID)
		assert.Equal(t, t.Name(), found.Title)
		assert.Equal(t, info.Snapshot, found.Snapshot)
		assert.Equal(t, int64(0), found.Revision)
		assert.True(t, now.Equal(found.CreatedAt))

		doc, err := found.Document()
		assert.NoError(t, err)
		assert.Equal(t, info.ID, doc.ID)
	})

	t.Run("create duplicated docInfo test", func(t *testing.T) {
		info := newDocInfo(t, t.Name())
		assert.NoError(t, db.CreateDocInfo(ctx, info))
		assert.ErrorIs(t, db.CreateDocInfo(ctx, info), database.ErrDocumentAlreadyExists)
	})

	t.Run("find missing docInfo test", func(t *testing.T) {
		_, err := db.FindDocInfo(ctx, xid.New().String())
		assert.ErrorIs(t, err, database.ErrDocumentNotFound)
	})

	t.Run("found docInfo is a copy test", func(t *testing.T) {
		info := newDocInfo(t, t.Name())
		assert.NoError(t, db.CreateDocInfo(ctx, info))

		found, err := db.FindDocInfo(ctx, info.ID)
		assert.NoError(t, err)
		found.Title = "changed"

		found, err = db.FindDocInfo(ctx, info.ID)
		assert.NoError(t, err)
		assert.Equal(t, t.Name(), found.Title)
	})
}

// RunUpdateDocInfoTest runs the UpdateDocInfo tests for the given db.
func RunUpdateDocInfoTest(t *testing.T, db database.Database) {
	ctx := context.Background()

	t.Run("update docInfo test", func(t *testing.T) {
		info := newDocInfo(t, t.Name())
		assert.NoError(t, db.CreateDocInfo(ctx, info))

		doc, err := info.Document()
		require.NoError(t, err)
		doc, err = doc.InsertText(document.DefaultBlockID, 0, "Hello", richtext.Style{})
		require.NoError(t, err)
		require.NoError(t, info.SetDocument(doc.Touch(now.Add(time.Minute))))

		updated, err := db.UpdateDocInfo(ctx, info)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), updated.Revision)

		found, err := db.FindDocInfo(ctx, info.ID)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), found.Revision)
		assert.True(t, now.Add(time.Minute).Equal(found.UpdatedAt))
		assert.True(t, now.Equal(found.CreatedAt))

		doc, err = found.Document()
		assert.NoError(t, err)
		assert.Equal(t, "Hello", doc.PlainText())
	})

	t.Run("update with stale revision test", func(t *testing.T) {
		info := newDocInfo(t, t.Name())
		assert.NoError(t, db.CreateDocInfo(ctx, info))

		first := info.DeepCopy()
		first.Title = "first"
		_, err := db.UpdateDocInfo(ctx, first)
		assert.NoError(t, err)

		second := info.DeepCopy()
		second.Title = "second"
		_, err = db.UpdateDocInfo(ctx, second)
		assert.ErrorIs(t, err, database.ErrConflictOnUpdate)

		found, err := db.FindDocInfo(ctx, info.ID)
		assert.NoError(t, err)
		assert.Equal(t, "first", found.Title)
	})

	t.Run("update missing docInfo test", func(t *testing.T) {
		_, err := db.UpdateDocInfo(ctx, newDocInfo(t, t.Name()))
		assert.ErrorIs(t, err, database.ErrDocumentNotFound)
	})
}

// RunFindDocInfosTest runs the FindDocInfos tests for the given db. The db
// must not contain other documents.
func RunFindDocInfosTest(t *testing.T, db database.Database) {
	ctx := context.Background()

	var ids []string
	for i := 0; i < 5; i++ {
		info := newDocInfo(t, t.Name())
		require.NoError(t, db.CreateDocInfo(ctx, info))
		ids = append(ids, info.ID)
	}
	require.NoError(t, db.RemoveDocInfo(ctx, ids[2], now))

	idsOf := func(infos []*database.DocInfo) []string {
		var result []string
		for _, info := range infos {
			result = append(result, info.ID)
		}
		return result
	}

	t.Run("newest first test", func(t *testing.T) {
		infos, err := db.FindDocInfos(ctx, database.Paging{})
		assert.NoError(t, err)
		assert.Equal(t, []string{ids[4], ids[3], ids[1], ids[0]}, idsOf(infos))
	})

	t.Run("backward paging test", func(t *testing.T) {
		infos, err := db.FindDocInfos(ctx, database.Paging{PageSize: 2})
		assert.NoError(t, err)
		assert.Equal(t, []string{ids[4], ids[3]}, idsOf(infos))

		infos, err = db.FindDocInfos(ctx, database.Paging{Offset: ids[3], PageSize: 2})
		assert.NoError(t, err)
		assert.Equal(t, []string{ids[1], ids[0]}, idsOf(infos))
	})

	t.Run("forward paging test", func(t *testing.T) {
		infos, err := db.FindDocInfos(ctx, database.Paging{IsForward: true, PageSize: 2})
		assert.NoError(t, err)
		assert.Equal(t, []string{ids[0], ids[1]}, idsOf(infos))

		infos, err = db.FindDocInfos(ctx, database.Paging{Offset: ids[1], IsForward: true})
		assert.NoError(t, err)
		assert.Equal(t, []string{ids[3], ids[4]}, idsOf(infos))
	})
}

// RunRemoveDocInfoTest runs the RemoveDocInfo and PurgeDocInfos tests for
// the given db.
func RunRemoveDocInfoTest(t *testing.T, db database.Database) {
	ctx := context.Background()

	t.Run("remove docInfo test", func(t *testing.T) {
		info := newDocInfo(t, t.Name())
		assert.NoError(t, db.CreateDocInfo(ctx, info))
		assert.NoError(t, db.RemoveDocInfo(ctx, info.ID, now))

		_, err := db.FindDocInfo(ctx, info.ID)
		assert.ErrorIs(t, err, database.ErrDocumentNotFound)
		assert.ErrorIs(t, db.RemoveDocInfo(ctx, info.ID, now), database.ErrDocumentNotFound)
		assert.ErrorIs(t, db.CreateDocInfo(ctx, info), database.ErrDocumentAlreadyExists)
	})

	t.Run("purge removed docInfos test", func(t *testing.T) {
		old := newDocInfo(t, t.Name())
		recent := newDocInfo(t, t.Name())
		alive := newDocInfo(t, t.Name())
		for _, info := range []*database.DocInfo{old, recent, alive} {
			require.NoError(t, db.CreateDocInfo(ctx, info))
		}
		require.NoError(t, db.RemoveDocInfo(ctx, old.ID, now.Add(-48*time.Hour)))
		require.NoError(t, db.RemoveDocInfo(ctx, recent.ID, now))

		purged, err := db.PurgeDocInfos(ctx, now.Add(-24*time.Hour))
		assert.NoError(t, err)
		assert.GreaterOrEqual(t, purged, 1)

		assert.NoError(t, db.CreateDocInfo(ctx, old))
		assert.ErrorIs(t, db.CreateDocInfo(ctx, recent), database.ErrDocumentAlreadyExists)

		_, err = db.FindDocInfo(ctx, alive.ID)
		assert.NoError(t, err)
	})
}
