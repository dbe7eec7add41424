// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat provides the full-screen chat view for rexidian.

The view is a Bubble Tea model over a session.Controller. It opens the
controller when built, so the greeting or the replayed history is on screen
from the first frame, and closes it when the user quits.

# Key Components

## Model (model.go)

Holds the controller, a scrolling viewport of the transcript, and the single
line input.

## Update Loop (update.go)

  - Enter submits the input line
  - PgUp/PgDn scroll the transcript
  - Esc or Ctrl+C closes the session and quits
  - session.RunMsg runs a scheduled reply on the UI goroutine

## View Rendering (view.go)

Header with the brand and, when cooking tips are enabled, a tip line; the
transcript with role labels and times; a status bar; the input.

# Usage

	sched := session.NewTeaScheduler()
	ctrl := session.NewController(store, r, sched, cfg, logger)
	m := chat.New(ctrl, sched, chat.Options{RenderMarkdown: true})
	p := tea.NewProgram(m, tea.WithAltScreen())
	sched.Attach(p)
	_, err := p.Run()
	sched.Drain()
*/
package chat
