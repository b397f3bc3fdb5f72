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

package mongo_test

import (
	"context"
	"os"
	"testing"

	"github.com/rs/xid"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-team/inkwell/server/backend/database/mongo"
	"github.com/inkwell-team/inkwell/server/backend/database/testcases"
)

// setupTestDB dials a fresh database of the MongoDB at INKWELL_MONGO_URI and
// drops it when the test ends.
func setupTestDB(t *testing.T) *mongo.Client {
	uri := os.Getenv("INKWELL_MONGO_URI")
	if uri == "" {
		t.Skip("INKWELL_MONGO_URI is not set")
	}

	config := &mongo.Config{
		ConnectionTimeout: "5s",
		ConnectionURI:     uri,
		InkwellDatabase:   "inkwell-test-" + xid.New().String(),
		PingTimeout:       "5s",
	}
	require.NoError(t, config.Validate())

	cli, err := mongo.Dial(config)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, cli.DropDatabase(context.Background()))
		require.NoError(t, cli.Close())
	})

	return cli
}

func TestClient(t *testing.T) {
	t.Run("RunCreateAndFindDocInfo test", func(t *testing.T) {
		testcases.RunCreateAndFindDocInfoTest(t, setupTestDB(t))
	})

	t.Run("RunUpdateDocInfo test", func(t *testing.T) {
		testcases.RunUpdateDocInfoTest(t, setupTestDB(t))
	})

	t.Run("RunFindDocInfos test", func(t *testing.T) {
		testcases.RunFindDocInfosTest(t, setupTestDB(t))
	})

	t.Run("RunRemoveDocInfo test", func(t *testing.T) {
		testcases.RunRemoveDocInfoTest(t, setupTestDB(t))
	})
}
