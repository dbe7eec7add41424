// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tasks provides a single-threaded event loop.
//
// Everything that touches the conversation runs as a task on one Loop, so
// appends never interleave and history order always matches the order tasks
// were posted. Delayed work (the simulated reply latency) is armed with After
// and re-enters the loop when its timer fires.
//
// # Key Types
//
//   - Loop: FIFO executor on one goroutine, with timers that post back into it
//
// # Usage
//
//	loop := tasks.NewLoop(logger)
//	defer loop.Stop() // waits for armed timers, then drains
//
//	loop.Post(func() { ... })                  // fire and forget
//	loop.Call(func() { ... })                  // post and wait (never from inside the loop)
//	loop.After(time.Second, func() { ... })    // delayed, always runs
package tasks
