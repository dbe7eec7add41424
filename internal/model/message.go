// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversation turns.
package model

import (
	"time"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Assistant"
	default:
		return string(r)
	}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message is a single turn in a conversation.
// Messages are values; once appended to a History they are never modified.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`

	// Timestamp is the creation time in Unix milliseconds.
	Timestamp int64 `json:"timestamp"`
}

// NewMessage creates a message stamped with t.
func NewMessage(role Role, content string, t time.Time) Message {
	return Message{
		Role:      role,
		Content:   content,
		Timestamp: t.UnixMilli(),
	}
}

// Time returns the timestamp as a time.Time in the local zone.
func (m Message) Time() time.Time {
	return time.UnixMilli(m.Timestamp)
}

// IsUser reports whether the message was written by the user.
func (m Message) IsUser() bool {
	return m.Role == RoleUser
}

// =============================================================================
// HISTORY TYPE
// =============================================================================

// History is an ordered list of messages, oldest first.
type History []Message

// Clone returns a copy that shares no backing array with h.
// A nil history clones to an empty, non-nil one.
func (h History) Clone() History {
	out := make(History, len(h))
	copy(out, h)
	return out
}

// Last returns the newest message, if any.
func (h History) Last() (Message, bool) {
	if len(h) == 0 {
		return Message{}, false
	}
	return h[len(h)-1], true
}

// NextTimestamp returns the timestamp for a message created at now so that
// the history stays non-decreasing even if the wall clock steps backwards.
func (h History) NextTimestamp(now time.Time) int64 {
	ts := now.UnixMilli()
	if last, ok := h.Last(); ok && last.Timestamp > ts {
		return last.Timestamp
	}
	return ts
}

// IsOrdered reports whether timestamps never decrease along the history.
func (h History) IsOrdered() bool {
	for i := 1; i < len(h); i++ {
		if h[i].Timestamp < h[i-1].Timestamp {
			return false
		}
	}
	return true
}

// CountByRole returns how many messages were sent by role.
func (h History) CountByRole(role Role) int {
	n := 0
	for _, m := range h {
		if m.Role == role {
			n++
		}
	}
	return n
}
