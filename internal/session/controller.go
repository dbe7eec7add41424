// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session wires user input to the conversation for one chat view.
package session

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jeranaias/rexidian/internal/conversation"
	"github.com/jeranaias/rexidian/internal/model"
	"github.com/jeranaias/rexidian/internal/responder"
	"github.com/jeranaias/rexidian/internal/settings"
)

// =============================================================================
// STATE
// =============================================================================

// State is the lifecycle state of a chat view.
type State int

const (
	StateClosed State = iota
	StateOpen
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// Scheduler runs fn after d on the caller's logical thread.
type Scheduler interface {
	After(d time.Duration, fn func())
}

// Config holds configuration for a controller.
type Config struct {
	// ResponseDelay is the simulated latency before a reply is computed
	// (default: 1 second)
	ResponseDelay time.Duration
}

// DefaultConfig returns the default controller configuration.
func DefaultConfig() Config {
	return Config{
		ResponseDelay: time.Second,
	}
}

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller drives one chat view.
type Controller struct {
	sessionID string
	startTime time.Time
	state     State

	conv      *conversation.Session
	responder responder.Responder
	scheduler Scheduler
	delay     time.Duration

	pending  int
	onAppend func(model.Message)
	log      zerolog.Logger
}

// NewController creates a closed controller.
func NewController(
	store *settings.Store,
	r responder.Responder,
	scheduler Scheduler,
	cfg Config,
	logger zerolog.Logger,
	opts ...conversation.Option,
) *Controller {
	id := uuid.NewString()
	if cfg.ResponseDelay < 0 {
		cfg.ResponseDelay = 0
	}
	return &Controller{
		sessionID: id,
		startTime: time.Now(),
		state:     StateClosed,
		conv:      conversation.NewSession(store, opts...),
		responder: r,
		scheduler: scheduler,
		delay:     cfg.ResponseDelay,
		log:       logger.With().Str("session", id).Logger(),
	}
}

// OnAppend sets the function called with every message appended while the
// controller is open, user turns and replies alike.
func (c *Controller) OnAppend(fn func(model.Message)) {
	c.onAppend = fn
}

// Open moves to the open state and returns the history to render, greeting
// an empty history first. Opening an open controller replays only.
func (c *Controller) Open() []model.Message {
	if c.state == StateOpen {
		return c.conv.Replay()
	}
	c.state = StateOpen
	messages := c.conv.Open()
	c.log.Info().Int("messages", len(messages)).Msg("session opened")
	return messages
}

// Submit appends a user message and schedules the reply. Blank input, or
// input while closed, is ignored and reported with ok == false.
func (c *Controller) Submit(text string) (model.Message, bool) {
	if c.state != StateOpen {
		c.log.Debug().Msg("submit on closed session ignored")
		return model.Message{}, false
	}

	msg, ok := c.conv.AppendUser(text)
	if !ok {
		return model.Message{}, false
	}
	c.notify(msg)

	c.pending++
	c.log.Debug().Dur("delay", c.delay).Int("pending", c.pending).Msg("reply scheduled")
	c.scheduler.After(c.delay, func() {
		c.reply(msg.Content)
	})
	return msg, true
}

// Close moves to the closed state. Scheduled replies still land in the
// history.
func (c *Controller) Close() {
	if c.state == StateClosed {
		return
	}
	c.state = StateClosed
	c.log.Info().Int("pending_replies", c.pending).Msg("session closed")
}

// reply computes and appends the assistant turn for userText. Replies are
// matched to questions by position only.
func (c *Controller) reply(userText string) {
	c.pending--

	content := c.responder.Respond(userText)
	msg, ok := c.conv.AppendAssistant(content)
	if !ok {
		c.log.Warn().Msg("responder returned an empty reply, nothing appended")
		return
	}
	c.log.Debug().Bool("open", c.state == StateOpen).Msg("reply appended")
	c.notify(msg)
}

func (c *Controller) notify(msg model.Message) {
	if c.state == StateOpen && c.onAppend != nil {
		c.onAppend(msg)
	}
}

// =============================================================================
// SESSION STATUS
// =============================================================================

// Status represents the current controller status.
type Status struct {
	SessionID      string
	StartTime      time.Time
	Duration       time.Duration
	State          State
	MessageCount   int
	PendingReplies int
}

// GetStatus returns the current controller status.
func (c *Controller) GetStatus() Status {
	return Status{
		SessionID:      c.sessionID,
		StartTime:      c.startTime,
		Duration:       time.Since(c.startTime),
		State:          c.state,
		MessageCount:   c.conv.Len(),
		PendingReplies: c.pending,
	}
}

// SessionID returns the controller's unique ID.
func (c *Controller) SessionID() string {
	return c.sessionID
}

// State returns the lifecycle state.
func (c *Controller) State() State {
	return c.state
}

// FormatDuration returns a human-readable duration string.
func FormatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	if d < time.Minute {
		return d.String()
	}
	return d.Truncate(time.Minute).String()
}
