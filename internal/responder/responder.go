// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package responder computes the assistant's next turn.
//
// Responder is the seam a real assistant engine plugs into. The only policy
// shipped today is Canned, which ignores its input and picks one of a fixed
// set of replies.
package responder

import (
	"math/rand"
	"sync"
	"time"
)

// Responder produces the assistant reply to a user message. Implementations
// must return a non-empty string and must not block on I/O; callers add any
// delay themselves.
type Responder interface {
	Respond(userMessage string) string
}

// Func adapts a plain function to Responder.
type Func func(userMessage string) string

// Respond implements Responder.
func (f Func) Respond(userMessage string) string {
	return f(userMessage)
}

// =============================================================================
// CANNED RESPONSES
// =============================================================================

// DefaultPool is the fixed set of placeholder replies.
var DefaultPool = []string{
	"That sounds delicious! Let me help you with that recipe. What ingredients do you have available?",
	"Great choice! I can suggest some variations or help you adjust the recipe for different dietary needs.",
	"I'd be happy to help! Could you tell me more about what you're looking for - something quick, healthy, or perhaps for a special occasion?",
	"Excellent question! Here are some tips that might help you with that cooking technique.",
	"For ingredient substitutions, I recommend checking what you have in your pantry first. What are you trying to replace?",
}

// Canned picks a reply uniformly at random from a fixed pool.
// Safe for concurrent use.
type Canned struct {
	mu   sync.Mutex
	rng  *rand.Rand
	pool []string
}

// NewCanned creates a canned responder over DefaultPool. The same seed
// always yields the same sequence of replies; a zero seed uses the clock.
func NewCanned(seed int64) *Canned {
	return NewCannedWithPool(DefaultPool, seed)
}

// NewCannedWithPool is like NewCanned with a custom pool. Empty entries are
// dropped; an empty pool falls back to DefaultPool.
func NewCannedWithPool(pool []string, seed int64) *Canned {
	var kept []string
	for _, p := range pool {
		if p != "" {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		kept = append(kept, DefaultPool...)
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Canned{
		rng:  rand.New(rand.NewSource(seed)),
		pool: kept,
	}
}

// Respond implements Responder. The user message is not consulted.
func (c *Canned) Respond(string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pool[c.rng.Intn(len(c.pool))]
}

// Pool returns a copy of the replies Respond draws from.
func (c *Canned) Pool() []string {
	return append([]string(nil), c.pool...)
}
