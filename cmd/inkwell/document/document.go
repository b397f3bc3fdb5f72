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

// Package document provides the commands to edit documents of the server.
package document

import (
	"encoding/json"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/inkwell-team/inkwell/api/types"
	"github.com/inkwell-team/inkwell/pkg/document"
	"github.com/inkwell-team/inkwell/pkg/document/block"
)

// maxTextWidth is the maximum width of the text column of block tables.
const maxTextWidth = 48

var (
	// SubCmd represents the document command.
	SubCmd = &cobra.Command{
		Use:     "document [command]",
		Short:   "Manage documents",
		Aliases: []string{"doc", "docs"},
	}
)

func newTableWriter() table.Writer {
	tw := table.NewWriter()
	tw.Style().Options.DrawBorder = false
	tw.Style().Options.SeparateColumns = false
	tw.Style().Options.SeparateFooter = false
	tw.Style().Options.SeparateHeader = false
	tw.Style().Options.SeparateRows = false
	return tw
}

func printSummaries(cmd *cobra.Command, output string, summaries []*types.DocumentSummary) error {
	switch output {
	case "":
		tw := newTableWriter()
		tw.AppendHeader(table.Row{
			"ID",
			"TITLE",
			"AUTHOR",
			"BLOCKS",
			"REVISION",
			"CREATED AT",
			"UPDATED AT",
		})
		for _, summary := range summaries {
			tw.AppendRow(table.Row{
				summary.ID,
				summary.Title,
				summary.Author,
				summary.BlockCount,
				summary.Revision,
				humanize.Time(summary.CreatedAt),
				humanize.Time(summary.UpdatedAt),
			})
		}
		cmd.Printf("%s\n", tw.Render())
		return nil
	default:
		return printStructured(cmd, output, summaries)
	}
}

func printDocument(cmd *cobra.Command, output string, doc *document.Document) error {
	switch output {
	case "":
		cmd.Printf("%s (%s) by %s, updated %s\n",
			doc.Title,
			doc.ID,
			doc.Metadata.Author,
			humanize.Time(doc.UpdatedAt),
		)

		tw := newTableWriter()
		tw.SetColumnConfigs([]table.ColumnConfig{{Number: 3, WidthMax: maxTextWidth}})
		tw.AppendHeader(table.Row{"ID", "TYPE", "TEXT"})
		for _, b := range doc.Blocks {
			tw.AppendRow(table.Row{b.BlockID(), b.BlockType(), block.PlainText(b)})
		}
		cmd.Printf("%s\n", tw.Render())
		return nil
	default:
		return printStructured(cmd, output, doc)
	}
}

func printStructured(cmd *cobra.Command, output string, v any) error {
	switch output {
	case "json":
		jsonOutput, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal JSON: %w", err)
		}
		cmd.Println(string(jsonOutput))
	case "yaml":
		yamlOutput, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshal YAML: %w", err)
		}
		cmd.Println(string(yamlOutput))
	default:
		return fmt.Errorf("unknown output format: %s", output)
	}

	return nil
}
