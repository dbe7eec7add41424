// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversation turns.
//
// # Key Types
//
//   - Role: Speaker of a turn (user or assistant)
//   - Message: One immutable turn with role, content and an epoch-millisecond timestamp
//   - History: Ordered sequence of messages, oldest first
//
// # Usage
//
//	msg := model.NewMessage(model.RoleUser, "How long do I rest a steak?", time.Now())
//	history = append(history, msg)
//
// Messages serialize with the keys "role", "content" and "timestamp", which is
// the layout stored in the settings blob.
package model
