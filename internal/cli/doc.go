// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides the rexidian command line.
//
// # Commands
//
//   - chat: Full-screen chat, or a line-mode REPL with --plain
//   - recipe: Print the recipe template or insert it into a file
//   - settings: Show or change servings, cooking tips and history
//   - history: Print the stored conversation, optionally following changes
//   - config: Show or initialize the configuration file
//
// # Global Flags
//
// Logging flags follow the usual --log-level, --log-format, --log-file set and
// are also read from REXIDIAN_LOG_LEVEL and friends. --data-dir, --backend and
// --ephemeral pick where settings live. Flags override the config file.
//
// # Usage
//
//	if err := cli.Execute(); err != nil {
//	    os.Exit(1)
//	}
package cli
