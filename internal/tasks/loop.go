// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tasks provides a single-threaded event loop.
package tasks

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// =============================================================================
// EVENT LOOP
// =============================================================================

// Loop runs posted functions one at a time, in posting order, on a single
// goroutine.
type Loop struct {
	mu      sync.Mutex
	idle    *sync.Cond // signalled when a timer fires or a task finishes
	queue   []func()
	timers  int  // armed timers that have not fired yet
	busy    bool // a task is executing
	stopped bool // no new work accepted; exit once the queue is empty

	wake chan struct{}
	done chan struct{}
	log  zerolog.Logger
}

// NewLoop creates a loop and starts its goroutine.
func NewLoop(logger zerolog.Logger) *Loop {
	l := &Loop{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
		log:  logger.With().Str("component", "loop").Logger(),
	}
	l.idle = sync.NewCond(&l.mu)
	go l.run()
	return l
}

// =============================================================================
// SCHEDULING
// =============================================================================

// Post queues fn. It returns false if the loop has been stopped.
func (l *Loop) Post(fn func()) bool {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		l.log.Warn().Msg("task posted after stop, dropped")
		return false
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()
	l.signal()
	return true
}

// Call posts fn and waits for it to finish. Calling it from a task running
// on the loop deadlocks.
func (l *Loop) Call(fn func()) bool {
	finished := make(chan struct{})
	if !l.Post(func() {
		defer close(finished)
		fn()
	}) {
		return false
	}
	<-finished
	return true
}

// After runs fn on the loop once d has elapsed. Armed timers cannot be
// cancelled; Stop waits for them.
func (l *Loop) After(d time.Duration, fn func()) {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		l.log.Warn().Dur("delay", d).Msg("timer armed after stop, dropped")
		return
	}
	l.timers++
	l.mu.Unlock()

	time.AfterFunc(d, func() {
		l.mu.Lock()
		l.timers--
		l.queue = append(l.queue, fn)
		l.idle.Broadcast()
		l.mu.Unlock()
		l.signal()
	})
}

// Pending returns the number of queued tasks plus armed timers.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue) + l.timers
}

// =============================================================================
// LIFECYCLE
// =============================================================================

// Stop waits until every armed timer has fired and every queued task has
// run, including work those tasks schedule in turn, and then stops the loop.
// It must not be called from a task on the loop.
func (l *Loop) Stop() {
	l.mu.Lock()
	for l.timers > 0 || len(l.queue) > 0 || l.busy {
		l.idle.Wait()
	}
	l.stopped = true
	l.mu.Unlock()
	l.signal()
	<-l.done
}

// Done is closed when the loop goroutine has exited.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

func (l *Loop) signal() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

func (l *Loop) run() {
	defer close(l.done)
	for {
		l.mu.Lock()
		if len(l.queue) == 0 {
			stopped := l.stopped
			l.mu.Unlock()
			if stopped {
				return
			}
			<-l.wake
			continue
		}
		fn := l.queue[0]
		l.queue[0] = nil
		l.queue = l.queue[1:]
		l.busy = true
		l.mu.Unlock()

		l.execute(fn)

		l.mu.Lock()
		l.busy = false
		l.idle.Broadcast()
		l.mu.Unlock()
	}
}

// execute runs one task; a panicking task is logged and the loop continues.
func (l *Loop) execute(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.log.Error().Interface("panic", r).Msg("task panicked")
		}
	}()
	fn()
}
