// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/jeranaias/rexidian/internal/export"
)

func newExportCommand(app *App) *cobra.Command {
	var (
		format       string
		output       string
		title        string
		noMetadata   bool
		noTimestamps bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the stored conversation to Markdown or JSON",
		Long: `Export the stored conversation to Markdown or JSON.

Without --output a file named after the current time is written to the
working directory. Use --output - to print to stdout.`,
		Example: `  rexidian export
  rexidian export --format json --output dinner.json
  rexidian export --output - --no-metadata`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			exporter, err := export.ForFormat(format, &export.Options{
				IncludeMetadata:   !noMetadata,
				IncludeTimestamps: !noTimestamps,
			})
			if err != nil {
				return err
			}

			store, err := app.Settings()
			if err != nil {
				return err
			}
			snap := store.Snapshot()
			now := time.Now()
			data, err := exporter.Export(export.Transcript{
				Title:    title,
				History:  snap.ConversationHistory,
				Servings: snap.DefaultServings,
				Exported: now,
			})
			if errors.Is(err, export.ErrEmptyHistory) {
				return errors.New("nothing to export yet; start a conversation with: rexidian chat")
			}
			if err != nil {
				return err
			}

			if output == "-" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if strings.TrimSpace(output) == "" {
				output = export.DefaultFilename(exporter, now)
			}
			if err := export.WriteFile(output, data); err != nil {
				return err
			}
			logger := app.Logger()
			logger.Info().
				Str("file", output).
				Str("mime", exporter.MimeType()).
				Int("messages", len(snap.ConversationHistory)).
				Msg("conversation exported")
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", SuccessStyle.Render("Exported conversation to"), output)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "markdown", "Export format: "+strings.Join(export.Formats(), " or "))
	cmd.Flags().StringVarP(&output, "output", "o", "", "File to write, or - for stdout")
	cmd.Flags().StringVar(&title, "title", "", "Title for the exported document")
	cmd.Flags().BoolVar(&noMetadata, "no-metadata", false, "Leave out the metadata header")
	cmd.Flags().BoolVar(&noTimestamps, "no-timestamps", false, "Leave out per-message times")
	return cmd
}
