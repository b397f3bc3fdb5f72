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
	"errors"

	"github.com/spf13/cobra"

	"github.com/inkwell-team/inkwell/cmd/inkwell/config"
)

func newShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [document id]",
		Short: "Show the blocks of a document",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("document id is required")
			}
			return nil
		},
		PreRunE: config.Preload,
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := config.Dial()
			if err != nil {
				return err
			}
			defer func() {
				_ = cli.Close()
			}()

			doc, err := cli.GetDocument(context.Background(), args[0])
			if err != nil {
				return err
			}

			return printDocument(cmd, config.Output(), doc)
		},
	}
}

func newTextCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "text [document id]",
		Short: "Print the plain text of a document",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("document id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := config.Dial()
			if err != nil {
				return err
			}
			defer func() {
				_ = cli.Close()
			}()

			text, err := cli.GetPlainText(context.Background(), args[0])
			if err != nil {
				return err
			}

			cmd.Println(text)
			return nil
		},
	}
}

func init() {
	SubCmd.AddCommand(newShowCommand())
	SubCmd.AddCommand(newTextCommand())
}
