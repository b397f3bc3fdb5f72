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

package config_test

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-team/inkwell/cmd/inkwell/config"
)

func TestConfig(t *testing.T) {
	t.Run("validate output test", func(t *testing.T) {
		assert.NoError(t, config.ValidateOutput(""))
		assert.NoError(t, config.ValidateOutput("json"))
		assert.NoError(t, config.ValidateOutput("yaml"))
		assert.ErrorIs(t, config.ValidateOutput("xml"), config.ErrUnknownOutput)
	})

	t.Run("bind flags test", func(t *testing.T) {
		t.Cleanup(viper.Reset)

		root := &cobra.Command{Use: "test"}
		require.NoError(t, config.Init(root))
		assert.Equal(t, config.DefaultRPCAddr, config.RPCAddr())

		require.NoError(t, root.PersistentFlags().Set("rpc-addr", "localhost:9090"))
		require.NoError(t, root.PersistentFlags().Set("output", "json"))
		assert.Equal(t, "localhost:9090", config.RPCAddr())
		assert.Equal(t, "json", config.Output())
		assert.NoError(t, config.Preload(root, nil))
	})

	t.Run("env test", func(t *testing.T) {
		t.Cleanup(viper.Reset)
		t.Setenv("INKWELL_RPC_ADDR", "inkwell.example.com:8080")

		root := &cobra.Command{Use: "test"}
		require.NoError(t, config.Init(root))
		assert.Equal(t, "inkwell.example.com:8080", config.RPCAddr())
	})
}
