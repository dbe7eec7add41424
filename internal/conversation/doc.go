// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package conversation provides the append-only view of one open chat.
//
// A Session never owns the history; it appends through the settings store so
// every turn is persisted as soon as it exists, and it replays whatever the
// store holds when the chat is reopened.
//
// # Usage
//
//	sess := conversation.NewSession(store)
//	for _, msg := range sess.Open() {
//	    render(msg)
//	}
//	if msg, ok := sess.AppendUser(input); ok {
//	    render(msg)
//	}
package conversation
