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

package server_test

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-team/inkwell/server"
)

func TestNewConfigFromFile(t *testing.T) {
	t.Run("fail read config file test", func(t *testing.T) {
		conf := server.NewConfig()
		assert.Equal(t, conf.RPCAddr(), "localhost:"+strconv.Itoa(server.DefaultRPCPort))
		_, err := server.NewConfigFromFile("nowhere.yml")
		assert.Error(t, err)
		assert.Equal(t, conf.RPC.Port, server.DefaultRPCPort)
		assert.Equal(t, conf.RPC.CertFile, "")
		assert.Equal(t, conf.RPC.KeyFile, "")
		assert.Equal(t, conf.Backend.DocumentCacheSize, server.DefaultDocumentCacheSize)
		assert.NoError(t, conf.Validate())
	})

	t.Run("read config file test", func(t *testing.T) {
		conf, err := server.NewConfigFromFile("config.sample.yml")
		require.NoError(t, err)
		assert.NoError(t, conf.Validate())

		assert.Equal(t, conf.RPC.Port, server.DefaultRPCPort)
		assert.Equal(t, conf.RPC.CertFile, "")
		assert.Equal(t, conf.RPC.KeyFile, "")
		assert.Equal(t, int64(server.DefaultRPCMaxRequestBytes), conf.RPC.MaxRequestBytes)

		connTimeout, err := time.ParseDuration(conf.Mongo.ConnectionTimeout)
		assert.NoError(t, err)
		assert.Equal(t, connTimeout, server.DefaultMongoConnectionTimeout)
		assert.Equal(t, conf.Mongo.ConnectionURI, server.DefaultMongoConnectionURI)
		assert.Equal(t, conf.Mongo.InkwellDatabase, server.DefaultMongoInkwellDatabase)

		pingTimeout, err := time.ParseDuration(conf.Mongo.PingTimeout)
		assert.NoError(t, err)
		assert.Equal(t, pingTimeout, server.DefaultMongoPingTimeout)

		retention, err := time.ParseDuration(conf.Housekeeping.RemovedDocumentRetention)
		assert.NoError(t, err)
		assert.Equal(t, server.DefaultHousekeepingRemovedDocumentRetention, retention)

		cacheTTL, err := time.ParseDuration(conf.Backend.DocumentCacheTTL)
		assert.NoError(t, err)
		assert.Equal(t, server.DefaultDocumentCacheTTL, cacheTTL)
	})

	t.Run("default values of partial config test", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "partial.yml")
		require.NoError(t, os.WriteFile(path, []byte("RPC:\n  Port: 9090\n"), 0o600))

		conf, err := server.NewConfigFromFile(path)
		require.NoError(t, err)
		assert.Equal(t, 9090, conf.RPC.Port)
		assert.Nil(t, conf.Mongo)
		assert.Nil(t, conf.Profiling)
		assert.Equal(t, server.DefaultHousekeepingInterval.String(), conf.Housekeeping.Interval)
		assert.Equal(t, server.DefaultDocumentCacheSize, conf.Backend.DocumentCacheSize)
		assert.NoError(t, conf.Validate())
	})

	t.Run("invalid config test", func(t *testing.T) {
		conf := server.NewConfig()
		conf.Housekeeping.Interval = "sometimes"
		assert.Error(t, conf.Validate())
	})
}
