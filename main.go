// rexidian - A recipe chat assistant for the terminal.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"os"

	"github.com/jeranaias/rexidian/internal/cli"
)

func main() {
	// cobra has already printed the error.
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
