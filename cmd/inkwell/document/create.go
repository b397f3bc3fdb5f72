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
	"context"

	"github.com/spf13/cobra"

	"github.com/inkwell-team/inkwell/cmd/inkwell/config"
)

var (
	title  string
	author string
)

func newCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "create",
		Short:   "Create a new document",
		Args:    cobra.NoArgs,
		PreRunE: config.Preload,
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := config.Dial()
			if err != nil {
				return err
			}
			defer func() {
				_ = cli.Close()
			}()

			doc, err := cli.CreateDocument(context.Background(), title, author)
			if err != nil {
				return err
			}

			return printDocument(cmd, config.Output(), doc)
		},
	}
}

func init() {
	cmd := newCreateCommand()
	cmd.Flags().StringVar(
		&title,
		"title",
		"",
		"The title of the document",
	)
	cmd.Flags().StringVar(
		&author,
		"author",
		"",
		"The author of the document",
	)
	SubCmd.AddCommand(cmd)
}
