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

// Package main is the entry point of the Inkwell CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/inkwell-team/inkwell/cmd/inkwell/config"
	"github.com/inkwell-team/inkwell/cmd/inkwell/document"
)

var rootCmd = &cobra.Command{
	Use:          "inkwell",
	Short:        "Block-based rich text document server",
	SilenceUsage: true,
}

// Run executes CLI.
func Run() int {
	if err := rootCmd.Execute(); err != nil {
		return 1
	}

	return 0
}

func init() {
	if err := config.Init(rootCmd); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	rootCmd.AddCommand(document.SubCmd)
}
