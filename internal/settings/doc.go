// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package settings owns the durable settings blob: the conversation history
// plus the user's recipe preferences.
//
// All mutation goes through Store, which writes the whole blob back after
// every change. Loading never fails: a missing or malformed blob degrades to
// defaults, and each field that is present overrides its default on its own.
//
// # Usage
//
//	store := settings.NewStore(blobs, logger)
//	current := store.Load()
//	_ = store.Append(model.NewMessage(model.RoleUser, "hi", time.Now()))
//	store.SetDefaultServings("6")
//	_ = store.ClearHistory()
package settings
