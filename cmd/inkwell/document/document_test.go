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

package document

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/inkwell-team/inkwell/api/types"
	"github.com/inkwell-team/inkwell/pkg/document"
	"github.com/inkwell-team/inkwell/pkg/document/richtext"
)

func newTestCommand() (*cobra.Command, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	cmd := &cobra.Command{Use: "test"}
	cmd.SetOut(buf)
	return cmd, buf
}

func TestPrint(t *testing.T) {
	now := time.Now().UTC()
	summaries := []*types.DocumentSummary{{
		ID:         "doc-1",
		Title:      "Notes",
		Author:     "alice",
		BlockCount: 2,
		Revision:   3,
		CreatedAt:  now,
		UpdatedAt:  now,
	}}

	t.Run("print summaries as table test", func(t *testing.T) {
		cmd, buf := newTestCommand()
		require.NoError(t, printSummaries(cmd, "", summaries))
		assert.Contains(t, buf.String(), "TITLE")
		assert.Contains(t, buf.String(), "doc-1")
		assert.Contains(t, buf.String(), "Notes")
	})

	t.Run("print summaries as json test", func(t *testing.T) {
		cmd, buf := newTestCommand()
		require.NoError(t, printSummaries(cmd, "json", summaries))

		var decoded []*types.DocumentSummary
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		require.Len(t, decoded, 1)
		assert.Equal(t, "alice", decoded[0].Author)
	})

	t.Run("print summaries as yaml test", func(t *testing.T) {
		cmd, buf := newTestCommand()
		require.NoError(t, printSummaries(cmd, "yaml", summaries))

		var decoded []map[string]any
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
		require.Len(t, decoded, 1)
		assert.Equal(t, "Notes", decoded[0]["title"])
	})

	t.Run("print document test", func(t *testing.T) {
		doc := document.NewDefault("doc-1", now)
		doc, err := doc.InsertText(document.DefaultBlockID, 0, "Hello", richtext.Style{})
		require.NoError(t, err)

		cmd, buf := newTestCommand()
		require.NoError(t, printDocument(cmd, "", doc))
		assert.Contains(t, buf.String(), document.DefaultBlockID)
		assert.Contains(t, buf.String(), "Hello")
	})

	t.Run("unknown output test", func(t *testing.T) {
		cmd, _ := newTestCommand()
		assert.Error(t, printSummaries(cmd, "xml", summaries))
	})
}
