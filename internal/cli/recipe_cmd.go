// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/jeranaias/rexidian/internal/recipe"
	"github.com/jeranaias/rexidian/internal/ui/styles"
)

func newRecipeCommand(app *App) *cobra.Command {
	var (
		file string
		line int
	)

	cmd := &cobra.Command{
		Use:   "recipe",
		Short: "Insert a recipe template into the current document",
		Long: `Insert a recipe template into the current document.

The template's servings come from your settings. Without --file the template
is printed; on a terminal it is rendered as markdown.`,
		Example: `  rexidian recipe
  rexidian recipe --file notes/soup.md
  rexidian recipe --file notes/soup.md --line 0`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := app.Settings()
			if err != nil {
				return err
			}
			tmpl := recipe.Generate(store.Snapshot().DefaultServings)

			if file == "" {
				out := cmd.OutOrStdout()
				if out == os.Stdout && IsStdoutTTY() && app.Config.UI.RenderMarkdown {
					md := styles.NewMarkdown(GetTerminalWidth(), true)
					fmt.Fprintln(out, md.Render(tmpl))
					return nil
				}
				fmt.Fprintln(out, tmpl)
				return nil
			}

			doc := recipe.NewFileDocument(file, line)
			if err := doc.InsertTextAtCursor(tmpl); err != nil {
				if errors.Is(err, recipe.ErrCursorOutOfRange) {
					return errors.Wrapf(err, "--line %d", line)
				}
				return err
			}
			logger := app.Logger()
			logger.Info().Str("file", file).Int("line", line).Msg("recipe template inserted")
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", SuccessStyle.Render("Inserted recipe template into"), file)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Document to insert the template into")
	cmd.Flags().IntVarP(&line, "line", "l", recipe.EndOfDocument, "Zero-based line to insert before (-1 appends)")
	return cmd
}
