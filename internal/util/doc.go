// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared by the storage and display code.
//
// # Key Functions
//
//   - AtomicWriteFile: Crash-safe file replacement (temp file, fsync, rename)
//   - TruncateWidth: Display-width aware truncation with ellipsis
//   - OneLine: Collapse whitespace so a message fits on one listing row
package util
