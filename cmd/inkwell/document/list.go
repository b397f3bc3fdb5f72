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

	"github.com/inkwell-team/inkwell/api/types"
	"github.com/inkwell-team/inkwell/cmd/inkwell/config"
)

var (
	offset    string
	pageSize  int
	isForward bool
)

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Short:   "List documents",
		PreRunE: config.Preload,
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := config.Dial()
			if err != nil {
				return err
			}
			defer func() {
				_ = cli.Close()
			}()

			ctx := context.Background()
			summaries, err := cli.ListDocuments(ctx, types.Paging{
				Offset:    offset,
				PageSize:  pageSize,
				IsForward: isForward,
			})
			if err != nil {
				return err
			}

			return printSummaries(cmd, config.Output(), summaries)
		},
	}
}

func init() {
	cmd := newListCommand()
	cmd.Flags().StringVar(
		&offset,
		"offset",
		"",
		"The document ID to start after",
	)
	cmd.Flags().IntVar(
		&pageSize,
		"size",
		10,
		"The number of documents to output per page",
	)
	cmd.Flags().BoolVar(
		&isForward,
		"forward",
		false,
		"Whether to list from the oldest document",
	)
	SubCmd.AddCommand(cmd)
}
