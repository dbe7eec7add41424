// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/jeranaias/rexidian/internal/recipe"
	"github.com/jeranaias/rexidian/internal/session"
	"github.com/jeranaias/rexidian/internal/ui/chat"
	"github.com/jeranaias/rexidian/internal/ui/styles"
)

func newChatCommand(app *App) *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Open an assistant session",
		Long: `Open an assistant session.

The full-screen view shows the stored conversation and greets you the first
time. Replies arrive after a short delay. Use --plain for a line-mode session
that works over pipes and dumb terminals.`,
		Example: `  rexidian chat
  rexidian chat --plain
  rexidian chat --ephemeral`,
		Annotations: map[string]string{annotationFullScreen: "true"},
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if plain || !IsTTY() || !IsStdoutTTY() {
				return runPlainChat(cmd, app)
			}
			return runFullScreenChat(cmd, app)
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "Use the line-mode REPL instead of the full-screen view")
	return cmd
}

// cookingTip returns a tip when the settings ask for one.
func cookingTip(app *App, show bool) string {
	if !show {
		return ""
	}
	return recipe.RandomTip(app.Rand())
}

func runFullScreenChat(cmd *cobra.Command, app *App) error {
	store, err := app.Settings()
	if err != nil {
		return err
	}

	sched := session.NewTeaScheduler()
	ctrl := session.NewController(store, app.Responder(), sched,
		session.Config{ResponseDelay: app.Config.ResponseDelay.Duration}, app.Logger())

	m := chat.New(ctrl, sched, chat.Options{
		Theme:          styles.NewTheme(),
		RenderMarkdown: app.Config.UI.RenderMarkdown,
		Tip:            cookingTip(app, store.Snapshot().ShowCookingTips),
	})

	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	sched.Attach(p)

	_, runErr := p.Run()

	// Replies still in flight are stored before exit.
	ctrl.Close()
	sched.Drain()

	if runErr != nil {
		return errors.Wrap(runErr, "chat view failed")
	}
	return nil
}
