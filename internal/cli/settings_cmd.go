// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newSettingsCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change assistant settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showSettings(cmd, app)
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show current settings",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return showSettings(cmd, app)
			},
		},
		&cobra.Command{
			Use:     "servings <n>",
			Short:   "Set the default servings used by recipe templates",
			Example: "  rexidian settings servings 6",
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				store, err := app.Settings()
				if err != nil {
					return err
				}
				if !store.SetDefaultServings(args[0]) {
					return errors.Errorf("invalid servings %q: must be a positive whole number", args[0])
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %d\n",
					SuccessStyle.Render("Default servings set to"), store.Snapshot().DefaultServings)
				return nil
			},
		},
		&cobra.Command{
			Use:       "tips <on|off>",
			Short:     "Show or hide cooking tips",
			Args:      cobra.ExactArgs(1),
			ValidArgs: []string{"on", "off"},
			RunE: func(cmd *cobra.Command, args []string) error {
				show, err := parseToggle(args[0])
				if err != nil {
					return err
				}
				store, err := app.Settings()
				if err != nil {
					return err
				}
				if err := store.SetShowCookingTips(show); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n",
					SuccessStyle.Render("Cooking tips"), onOff(show))
				return nil
			},
		},
		&cobra.Command{
			Use:   "clear-history",
			Short: "Delete the stored conversation, keeping preferences",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				store, err := app.Settings()
				if err != nil {
					return err
				}
				if err := store.ClearHistory(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("Conversation history cleared."))
				return nil
			},
		},
	)
	return cmd
}

func showSettings(cmd *cobra.Command, app *App) error {
	store, err := app.Settings()
	if err != nil {
		return err
	}
	s := store.Snapshot()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, TitleStyle.Render("Rexidian Settings"))
	fmt.Fprintf(out, "%s %d\n", LabelStyle.Render("Default servings:  "), s.DefaultServings)
	fmt.Fprintf(out, "%s %s\n", LabelStyle.Render("Cooking tips:      "), onOff(s.ShowCookingTips))
	fmt.Fprintf(out, "%s %d\n", LabelStyle.Render("History messages:  "), len(s.ConversationHistory))
	return nil
}

func parseToggle(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	default:
		return false, errors.Errorf("expected on or off, got %q", raw)
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
