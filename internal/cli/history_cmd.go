// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/jeranaias/rexidian/internal/config"
	"github.com/jeranaias/rexidian/internal/model"
	"github.com/jeranaias/rexidian/internal/storage"
	"github.com/jeranaias/rexidian/internal/util"
)

const roleColumnWidth = 10

func newHistoryCommand(app *App) *cobra.Command {
	var (
		follow bool
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Print the stored conversation",
		Long: `Print the stored conversation, oldest first.

With --follow the command keeps running and prints new turns as another
session writes them (file backend only).`,
		Example: `  rexidian history
  rexidian history --limit 10
  rexidian history --follow`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := app.Settings()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			width := 0
			if out == os.Stdout && IsStdoutTTY() {
				width = GetTerminalWidth()
			}

			history := store.History()
			start := 0
			if limit > 0 && len(history) > limit {
				start = len(history) - limit
			}
			for _, msg := range history[start:] {
				fmt.Fprintln(out, formatHistoryLine(msg, width))
			}
			if len(history) == 0 && !follow {
				fmt.Fprintln(out, DimStyle.Render("No conversation yet. Start one with: rexidian chat"))
			}

			if !follow {
				return nil
			}
			if app.Config.Backend != config.BackendFile {
				return errors.Errorf("--follow needs the file backend, not %q", app.Config.Backend)
			}
			path, err := app.Config.SettingsPath()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return followHistory(ctx, path, len(history), out, width, func() model.History {
				store.Load()
				return store.History()
			})
		},
	}
	cmd.Flags().BoolVarP(&follow, "follow", "F", false, "Keep printing new turns as they are stored")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Only print the last n turns")
	return cmd
}

// followHistory prints turns appended after the first shown ones each time
// the blob file changes.
func followHistory(ctx context.Context, path string, shown int, out io.Writer, width int, reload func() model.History) error {
	return storage.Follow(ctx, path, func() {
		history := reload()
		if len(history) < shown {
			fmt.Fprintln(out, DimStyle.Render("(history cleared)"))
			shown = 0
		}
		for _, msg := range history[shown:] {
			fmt.Fprintln(out, formatHistoryLine(msg, width))
		}
		shown = len(history)
	})
}

// formatHistoryLine renders one turn on a single line. A positive width
// truncates the line to that many columns.
func formatHistoryLine(msg model.Message, width int) string {
	stamp := msg.Time().Format("2006-01-02 15:04")
	role := util.PadRight(msg.Role.DisplayName(), roleColumnWidth)
	content := util.OneLine(msg.Content)

	if width > 0 {
		room := width - len(stamp) - roleColumnWidth - 2
		content = util.TruncateWidth(content, room)
	}
	label := UserLabelStyle
	if msg.Role == model.RoleAssistant {
		label = AssistantLabelStyle
	}
	return DimStyle.Render(stamp) + " " + label.Render(role) + " " + content
}
