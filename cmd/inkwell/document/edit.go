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

	"github.com/inkwell-team/inkwell/api/types"
	"github.com/inkwell-team/inkwell/cmd/inkwell/config"
	"github.com/inkwell-team/inkwell/pkg/document/block"
)

var (
	blockID   string
	blockType string
	afterID   string
	blockText string
	position  int
)

func newAddBlockCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add-block [document id]",
		Short: "Add a block to a document",
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

			doc, err := cli.AddBlock(context.Background(), args[0], types.AddBlockRequest{
				ID:      blockID,
				Type:    blockType,
				AfterID: afterID,
				Text:    blockText,
			})
			if err != nil {
				return err
			}

			return printDocument(cmd, config.Output(), doc)
		},
	}
}

func newInsertTextCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "insert [document id] [block id] [text]",
		Short: "Insert text into a text block",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 3 {
				return errors.New("document id, block id and text are required")
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

			doc, err := cli.InsertText(context.Background(), args[0], args[1], position, args[2], nil)
			if err != nil {
				return err
			}

			return printDocument(cmd, config.Output(), doc)
		},
	}
}

func init() {
	addBlockCmd := newAddBlockCommand()
	addBlockCmd.Flags().StringVar(
		&blockID,
		"id",
		"",
		"The id of the block, generated when empty",
	)
	addBlockCmd.Flags().StringVar(
		&blockType,
		"type",
		string(block.TypeParagraph),
		"The type of the block",
	)
	addBlockCmd.Flags().StringVar(
		&afterID,
		"after",
		"",
		"The id of the block to insert after, appended when empty",
	)
	addBlockCmd.Flags().StringVar(
		&blockText,
		"text",
		"",
		"The initial text of a text block",
	)
	SubCmd.AddCommand(addBlockCmd)

	insertCmd := newInsertTextCommand()
	insertCmd.Flags().IntVar(
		&position,
		"position",
		0,
		"The position to insert the text at, in UTF-16 code units",
	)
	SubCmd.AddCommand(insertCmd)
}
