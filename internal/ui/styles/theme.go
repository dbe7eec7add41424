// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds the styled components for the application.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	ColorProfile termenv.Profile

	Header      lipgloss.Style
	HeaderTitle lipgloss.Style
	Tip         lipgloss.Style

	UserLabel      lipgloss.Style
	AssistantLabel lipgloss.Style
	Timestamp      lipgloss.Style
	Body           lipgloss.Style

	InputPrompt lipgloss.Style
	StatusBar   lipgloss.Style
	Error       lipgloss.Style
}

// NewTheme creates a theme for the current terminal. NO_COLOR forces the
// ASCII profile.
func NewTheme() *Theme {
	profile := termenv.ColorProfile()
	if os.Getenv("NO_COLOR") != "" {
		profile = termenv.Ascii
	}
	return NewThemeWithProfile(profile, termenv.HasDarkBackground())
}

// NewThemeWithProfile creates a theme for a known color profile.
func NewThemeWithProfile(profile termenv.Profile, isDark bool) *Theme {
	t := &Theme{
		IsDark:       isDark,
		ColorProfile: profile,
	}
	t.initStyles()
	return t
}

// HasColor reports whether the profile renders any color.
func (t *Theme) HasColor() bool {
	return t.ColorProfile != termenv.Ascii
}

func (t *Theme) initStyles() {
	t.Header = lipgloss.NewStyle().
		Background(SurfaceDim).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Sage)

	t.Tip = lipgloss.NewStyle().
		Foreground(Saffron).
		Italic(true)

	t.UserLabel = lipgloss.NewStyle().
		Bold(true).
		Foreground(Tomato)

	t.AssistantLabel = lipgloss.NewStyle().
		Bold(true).
		Foreground(Sage)

	t.Timestamp = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.Body = lipgloss.NewStyle().
		Foreground(TextPrimary).
		PaddingLeft(2)

	t.InputPrompt = lipgloss.NewStyle().
		Bold(true).
		Foreground(Tomato)

	t.StatusBar = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Background(SurfaceDim).
		Padding(0, 1)

	t.Error = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)
}
