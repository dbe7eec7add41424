// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling for the rexidian terminal views.

All colors use Lip Gloss AdaptiveColor for automatic light/dark detection.

# Color System (colors.go)

  - Sage: Brand color, assistant turns
  - Tomato: User turns, errors
  - Saffron: Cooking tips and warnings
  - Text colors: TextPrimary, TextSecondary, TextMuted

# Theme System (theme.go)

	theme := styles.NewTheme()
	header := theme.Header.Render("Rexidian")

# Markdown (markdown.go)

Markdown renders assistant turns and recipe templates with glamour, falling
back to the raw text when rendering is off or fails.
*/
package styles
