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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-team/inkwell/server/backend"
)

func newValidBackendConf() backend.Config {
	return backend.Config{
		DocumentCacheSize:  100,
		DocumentCacheTTL:   "10m",
		CacheStatsInterval: "0s",
	}
}

func TestConfig(t *testing.T) {
	t.Run("validate test", func(t *testing.T) {
		validConf := newValidBackendConf()
		assert.NoError(t, validConf.Validate())

		conf1 := validConf
		conf1.DocumentCacheSize = 0
		assert.Error(t, conf1.Validate())

		conf2 := validConf
		conf2.DocumentCacheTTL = "10 minutes"
		assert.Error(t, conf2.Validate())

		conf3 := validConf
		conf3.CacheStatsInterval = "m"
		assert.Error(t, conf3.Validate())
	})

	t.Run("parse test", func(t *testing.T) {
		validConf := newValidBackendConf()

		ttl, err := validConf.ParseDocumentCacheTTL()
		require.NoError(t, err)
		assert.Equal(t, 10*time.Minute, ttl)

		interval, err := validConf.ParseCacheStatsInterval()
		require.NoError(t, err)
		assert.Equal(t, time.Duration(0), interval)
	})
}
