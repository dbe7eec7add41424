// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/rexidian/internal/ui/styles"
)

// init configures lipgloss for the current output, respecting NO_COLOR and
// FORCE_COLOR.
func init() {
	lipgloss.SetColorProfile(GetColorProfile())
}

// =============================================================================
// SHARED STYLES FOR ALL CLI COMMANDS
// =============================================================================

var (
	// TitleStyle is used for command titles
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.Sage)

	// SectionStyle is used for section headers within commands
	SectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.TextPrimary)

	// LabelStyle is used for field labels
	LabelStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondary)

	// ValueStyle is used for regular values
	ValueStyle = lipgloss.NewStyle().
			Foreground(styles.TextPrimary)

	// DimStyle is used for timestamps and hints
	DimStyle = lipgloss.NewStyle().
			Foreground(styles.TextMuted)

	// SuccessStyle is used for confirmations
	SuccessStyle = lipgloss.NewStyle().
			Foreground(styles.Sage).
			Bold(true)

	// ErrorStyle is used for error messages
	ErrorStyle = lipgloss.NewStyle().
			Foreground(styles.Rose).
			Bold(true)

	// WarningStyle is used for warnings
	WarningStyle = lipgloss.NewStyle().
			Foreground(styles.Saffron)

	// TipStyle is used for cooking tips
	TipStyle = lipgloss.NewStyle().
			Foreground(styles.Saffron).
			Italic(true)

	// PromptStyle is used for the REPL prompt
	PromptStyle = lipgloss.NewStyle().
			Foreground(styles.Tomato).
			Bold(true)

	// UserLabelStyle and AssistantLabelStyle mark conversation turns
	UserLabelStyle = lipgloss.NewStyle().
			Foreground(styles.Tomato).
			Bold(true)
	AssistantLabelStyle = lipgloss.NewStyle().
				Foreground(styles.Sage).
				Bold(true)
)
