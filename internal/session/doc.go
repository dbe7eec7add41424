// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session wires user input to the conversation for one chat view.
//
// A Controller is a two-state machine. Closed is the initial state; Open
// greets an empty history or replays an existing one; each submitted message
// is appended at once and answered after a configurable delay; Close ends the
// view without touching the history.
//
// # Key Types
//
//   - Controller: Closed/Open state machine over a conversation.Session
//   - Scheduler: Delayed execution on the caller's single logical thread
//   - TeaScheduler: Scheduler that delivers tasks through a Bubble Tea program
//   - Status: Snapshot of a controller for display and logging
//
// # Usage
//
//	loop := tasks.NewLoop(logger)
//	ctrl := session.NewController(store, responder.NewCanned(0), loop, session.DefaultConfig(), logger)
//	loop.Call(func() { render(ctrl.Open()...) })
//	loop.Call(func() { ctrl.Submit(line) })
//
// # Threading
//
// Controller is not safe for concurrent use. Call it only from the
// scheduler's thread: a tasks.Loop task, or a Bubble Tea Update.
//
// Replies are never cancelled. A reply scheduled before Close is still
// appended to the history when it fires; it just is not shown.
package session
