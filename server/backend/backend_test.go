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

package backend_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-team/inkwell/pkg/document"
	"github.com/inkwell-team/inkwell/server/backend"
	"github.com/inkwell-team/inkwell/server/backend/database"
	"github.com/inkwell-team/inkwell/server/backend/housekeeping"
	"github.com/inkwell-team/inkwell/server/profiling/prometheus"
)

func TestBackend(t *testing.T) {
	t.Run("memory backend lifecycle test", func(t *testing.T) {
		metrics, err := prometheus.NewMetrics()
		require.NoError(t, err)

		conf := newValidBackendConf()
		be, err := backend.New(&conf, nil, &housekeeping.Config{
			Interval:                 "1h",
			RemovedDocumentRetention: "24h",
		}, metrics)
		require.NoError(t, err)
		assert.NotEmpty(t, be.Config.Hostname)
		assert.Len(t, be.Cache.Caches(), 1)

		require.NoError(t, be.Start())

		info, err := database.NewDocInfo(document.NewDefault("doc-1", time.Now().UTC()))
		require.NoError(t, err)
		require.NoError(t, be.DB.CreateDocInfo(context.Background(), info))

		assert.NoError(t, be.Shutdown())
	})

	t.Run("invalid housekeeping config test", func(t *testing.T) {
		conf := newValidBackendConf()
		_, err := backend.New(&conf, nil, &housekeeping.Config{
			Interval:                 "often",
			RemovedDocumentRetention: "24h",
		}, nil)
		assert.Error(t, err)
	})
}
