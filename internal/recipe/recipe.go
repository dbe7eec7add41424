// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package recipe builds the recipe template inserted into documents and the
// cooking tips shown alongside the chat.
package recipe

import (
	"math/rand"
	"strconv"
)

// Footer closes every generated template.
const Footer = "*Created with Rexidian Recipe Assistant*"

// Generate returns an empty recipe skeleton whose notes are pre-filled with
// the given servings count. Non-positive servings are rendered as given;
// callers pass the validated settings value.
func Generate(servings int) string {
	return "# Recipe Name\n" +
		"\n" +
		"## Ingredients\n" +
		"- \n" +
		"\n" +
		"## Instructions\n" +
		"1. \n" +
		"\n" +
		"## Notes\n" +
		"- Prep time: \n" +
		"- Cook time: \n" +
		"- Servings: " + strconv.Itoa(servings) + "\n" +
		"\n" +
		"---\n" +
		Footer
}

// =============================================================================
// COOKING TIPS
// =============================================================================

// Tips are shown by the chat views when cooking tips are enabled.
var Tips = []string{
	"Salt pasta water until it tastes like the sea.",
	"Let meat rest for a few minutes after cooking so the juices settle.",
	"Read the whole recipe before you start, then measure everything out.",
	"A hot pan and dry ingredients are the secret to a good sear.",
	"Taste as you go and adjust seasoning at the end.",
	"Toast spices in a dry pan to wake up their flavour.",
	"Keep a damp towel under your cutting board so it does not slide.",
}

// RandomTip returns one of Tips chosen with rng.
func RandomTip(rng *rand.Rand) string {
	return Tips[rng.Intn(len(Tips))]
}
