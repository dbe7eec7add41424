// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging builds the zerolog logger shared by the CLI and the core
// components.
//
// Text format writes a console writer, JSON writes raw events. A log file,
// when set, is rotated by lumberjack. Console output can be turned off so a
// full-screen view is not overwritten; the file still receives events.
package logging
