// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading for rexidian.
//
// # Key Types
//
//   - Config: Main configuration structure
//   - LogConfig: Log level, format and rotating file
//   - UIConfig: Terminal rendering options
//   - Duration: time.Duration that reads and writes as "1s" in TOML
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Command-line flags (applied by the CLI)
//   - Environment variables (REXIDIAN_*)
//   - ~/.rexidian/config.toml
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	path, err := cfg.SettingsPath()
package config
