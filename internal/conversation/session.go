// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package conversation provides the append-only view of one open chat.
package conversation

import (
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/jeranaias/rexidian/internal/model"
	"github.com/jeranaias/rexidian/internal/settings"
)

// Greeting is appended once, when a chat is opened on an empty history.
const Greeting = "Hello! I'm your recipe assistant. I can help you with:\n\n" +
	"• Recipe suggestions and modifications\n" +
	"• Ingredient substitutions\n" +
	"• Cooking techniques and tips\n" +
	"• Meal planning ideas\n\n" +
	"What would you like to cook today?"

// Session appends turns to the persisted history.
type Session struct {
	store *settings.Store
	now   func() time.Time
}

// Option configures a Session.
type Option func(*Session)

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// NewSession creates a session over store.
func NewSession(store *settings.Store, opts ...Option) *Session {
	s := &Session{
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open returns the messages to render for a freshly opened chat. On an empty
// history the greeting is appended first; a non-empty history is replayed
// as-is and never greeted again.
func (s *Session) Open() []model.Message {
	if len(s.store.History()) == 0 {
		s.AppendAssistant(Greeting)
	}
	return s.Replay()
}

// AppendUser appends a user turn. Content is trimmed; empty content is
// ignored and reported with ok == false.
func (s *Session) AppendUser(content string) (model.Message, bool) {
	return s.append(model.RoleUser, content)
}

// AppendAssistant appends an assistant turn, with the same rules as AppendUser.
func (s *Session) AppendAssistant(content string) (model.Message, bool) {
	return s.append(model.RoleAssistant, content)
}

// Replay returns the stored history in insertion order.
func (s *Session) Replay() []model.Message {
	return s.store.History()
}

// Len returns the number of stored messages.
func (s *Session) Len() int {
	return len(s.store.History())
}

func (s *Session) append(role model.Role, content string) (model.Message, bool) {
	content = Normalize(content)
	if content == "" {
		return model.Message{}, false
	}

	msg := model.Message{
		Role:      role,
		Content:   content,
		Timestamp: s.store.History().NextTimestamp(s.now()),
	}
	// Persistence is best effort; the store logs write failures.
	_ = s.store.Append(msg)
	return msg, true
}

// Normalize puts content in NFC form and trims surrounding whitespace.
func Normalize(content string) string {
	return strings.TrimSpace(norm.NFC.String(content))
}
