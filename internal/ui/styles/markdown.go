// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// Markdown renders markdown for the terminal.
type Markdown struct {
	renderer *glamour.TermRenderer
	width    int
}

// NewMarkdown creates a renderer wrapping at width. When enabled is false,
// or the renderer cannot be built, Render returns its input unchanged.
func NewMarkdown(width int, enabled bool) *Markdown {
	if width <= 0 {
		width = 80
	}
	m := &Markdown{width: width}
	if !enabled {
		return m
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err == nil {
		m.renderer = r
	}
	return m
}

// Enabled reports whether output is rendered.
func (m *Markdown) Enabled() bool {
	return m.renderer != nil
}

// Width returns the wrap width.
func (m *Markdown) Width() int {
	return m.width
}

// Render renders content, returning it unchanged on failure.
func (m *Markdown) Render(content string) string {
	if m.renderer == nil {
		return content
	}
	out, err := m.renderer.Render(content)
	if err != nil {
		return content
	}
	return strings.Trim(out, "\n")
}
