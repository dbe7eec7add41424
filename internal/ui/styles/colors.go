// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling for the rexidian terminal views.
package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// ACCENT COLORS
// =============================================================================

// Sage - Brand color, assistant turns
var Sage = lipgloss.AdaptiveColor{Light: "#4D7C0F", Dark: "#A3E635"}

// Tomato - User turns
var Tomato = lipgloss.AdaptiveColor{Light: "#C2410C", Dark: "#FB923C"}

// Saffron - Cooking tips, warnings
var Saffron = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#FBBF24"}

// Rose - Errors
var Rose = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}

// =============================================================================
// SURFACE AND TEXT COLORS
// =============================================================================

// SurfaceDim - Header and status bar background
var SurfaceDim = lipgloss.AdaptiveColor{Light: "#F5F5F4", Dark: "#1C1917"}

// Overlay - Borders, separators
var Overlay = lipgloss.AdaptiveColor{Light: "#E7E5E4", Dark: "#44403C"}

// TextPrimary - Main body text
var TextPrimary = lipgloss.AdaptiveColor{Light: "#1C1917", Dark: "#F5F5F4"}

// TextSecondary - Labels
var TextSecondary = lipgloss.AdaptiveColor{Light: "#57534E", Dark: "#D6D3D1"}

// TextMuted - Hints, timestamps
var TextMuted = lipgloss.AdaptiveColor{Light: "#A8A29E", Dark: "#78716C"}

// =============================================================================
// STATUS INDICATORS
// =============================================================================

// StatusIndicatorSet contains text indicators that do not rely on color.
type StatusIndicatorSet struct {
	Pending string
	Error   string
	Tip     string
}

// StatusIndicators are ASCII so they render on any terminal.
var StatusIndicators = StatusIndicatorSet{
	Pending: "[...]",
	Error:   "[X]",
	Tip:     "[tip]",
}
