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
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-team/inkwell/server"
)

func TestInkwell(t *testing.T) {
	t.Run("start and shutdown test", func(t *testing.T) {
		conf := server.NewConfig()
		conf.RPC.Port = 21101
		conf.Profiling = nil

		inkwell, err := server.New(conf)
		require.NoError(t, err)
		require.NoError(t, inkwell.Start())

		assert.Eventually(t, func() bool {
			resp, err := http.Get(fmt.Sprintf("http://%s/healthz", inkwell.RPCAddr()))
			if err != nil {
				return false
			}
			defer func() { _ = resp.Body.Close() }()
			return resp.StatusCode == http.StatusOK
		}, 3*time.Second, 50*time.Millisecond)

		assert.NoError(t, inkwell.Shutdown(true))
		assert.NoError(t, inkwell.Shutdown(true))

		select {
		case <-inkwell.ShutdownCh():
		default:
			t.Fatal("shutdown channel is not closed")
		}
	})

	t.Run("invalid config test", func(t *testing.T) {
		conf := server.NewConfig()
		conf.RPC.Port = 0
		_, err := server.New(conf)
		assert.Error(t, err)
	})
}
