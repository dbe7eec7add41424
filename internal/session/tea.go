// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"sort"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// =============================================================================
// BUBBLE TEA INTEGRATION
// =============================================================================

// RunMsg carries a scheduled task into a Bubble Tea Update. Models pass it
// to TeaScheduler.Run.
type RunMsg struct {
	id int
}

// Sender delivers messages to a running program. *tea.Program implements it.
type Sender interface {
	Send(msg tea.Msg)
}

type teaTask struct {
	id  int
	due time.Time
	fn  func()
}

// TeaScheduler is a Scheduler whose tasks run inside the program's Update,
// so they share the view's single thread.
//
// Tasks that have not run when the program exits are kept; Drain runs them
// on the caller's goroutine once their delay has passed.
type TeaScheduler struct {
	mu      sync.Mutex
	sender  Sender
	nextID  int
	pending map[int]teaTask
	unsent  []int
}

// NewTeaScheduler creates a scheduler with no program attached.
func NewTeaScheduler() *TeaScheduler {
	return &TeaScheduler{pending: make(map[int]teaTask)}
}

// Attach sets the program tasks are delivered to. Tasks that fired before
// a program was attached are sent now.
func (s *TeaScheduler) Attach(sender Sender) {
	s.mu.Lock()
	s.sender = sender
	unsent := s.unsent
	s.unsent = nil
	s.mu.Unlock()

	for _, id := range unsent {
		sender.Send(RunMsg{id: id})
	}
}

// After implements Scheduler.
func (s *TeaScheduler) After(d time.Duration, fn func()) {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.pending[id] = teaTask{id: id, due: time.Now().Add(d), fn: fn}
	s.mu.Unlock()

	time.AfterFunc(d, func() {
		s.mu.Lock()
		sender := s.sender
		if sender == nil {
			s.unsent = append(s.unsent, id)
		}
		s.mu.Unlock()
		if sender != nil {
			sender.Send(RunMsg{id: id})
		}
	})
}

// Run executes the task named by msg. A task runs at most once.
func (s *TeaScheduler) Run(msg RunMsg) {
	s.mu.Lock()
	task, ok := s.pending[msg.id]
	delete(s.pending, msg.id)
	s.mu.Unlock()

	if ok {
		task.fn()
	}
}

// Pending returns the number of tasks that have not run.
func (s *TeaScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Drain runs every remaining task in due order, waiting for each delay.
// Call it only after the program has exited.
func (s *TeaScheduler) Drain() {
	s.mu.Lock()
	tasks := make([]teaTask, 0, len(s.pending))
	for _, t := range s.pending {
		tasks = append(tasks, t)
	}
	s.pending = make(map[int]teaTask)
	s.mu.Unlock()

	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].due.Equal(tasks[j].due) {
			return tasks[i].id < tasks[j].id
		}
		return tasks[i].due.Before(tasks[j].due)
	})
	for _, t := range tasks {
		if wait := time.Until(t.due); wait > 0 {
			time.Sleep(wait)
		}
		t.fn()
	}
}
