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

// Package config provides the settings shared by the commands of the
// Inkwell CLI.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/inkwell-team/inkwell/client"
)

const (
	// DefaultRPCAddr is the default address of the Inkwell server.
	DefaultRPCAddr = "localhost:8080"

	// EnvPrefix is the prefix of the environment variables read by the CLI.
	EnvPrefix = "INKWELL"
)

var (
	// ErrUnknownOutput is returned when the output format is not supported.
	ErrUnknownOutput = errors.New("--output must be 'yaml' or 'json'")
)

// Init binds the persistent flags of the given root command to viper. The
// flags can also be given through INKWELL_RPC_ADDR and INKWELL_OUTPUT.
func Init(root *cobra.Command) error {
	root.PersistentFlags().String("rpc-addr", DefaultRPCAddr, "Address of the Inkwell server")
	root.PersistentFlags().StringP("output", "o", "", "One of 'yaml' or 'json'")

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.BindPFlag("rpcAddr", root.PersistentFlags().Lookup("rpc-addr")); err != nil {
		return fmt.Errorf("bind rpc-addr: %w", err)
	}
	if err := viper.BindEnv("rpcAddr", EnvPrefix+"_RPC_ADDR"); err != nil {
		return fmt.Errorf("bind rpc-addr env: %w", err)
	}
	if err := viper.BindPFlag("output", root.PersistentFlags().Lookup("output")); err != nil {
		return fmt.Errorf("bind output: %w", err)
	}

	return nil
}

// Preload validates the settings before running a command.
func Preload(_ *cobra.Command, _ []string) error {
	return ValidateOutput(Output())
}

// ValidateOutput validates the given output format.
func ValidateOutput(output string) error {
	if output != "" && output != "yaml" && output != "json" {
		return ErrUnknownOutput
	}
	return nil
}

// RPCAddr returns the address of the server.
func RPCAddr() string {
	return viper.GetString("rpcAddr")
}

// Output returns the output format. An empty format prints tables.
func Output() string {
	return viper.GetString("output")
}

// Dial creates a client for the server of RPCAddr.
func Dial() (*client.Client, error) {
	return client.New(RPCAddr())
}
