// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package settings

import (
	"strconv"
	"strings"
	"sync"
	"unicode"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/jeranaias/rexidian/internal/model"
	"github.com/jeranaias/rexidian/internal/storage"
)

// =============================================================================
// STORE
// =============================================================================

// Store is the single source of truth for Settings. Every mutation is
// written through to the blob store before the method returns.
//
// A failed write is logged and returned, but the in-memory change is kept:
// the process carries on and the next successful write persists everything.
type Store struct {
	mu       sync.Mutex
	blobs    storage.BlobStore
	current  Settings
	log      zerolog.Logger
	onChange []func(Settings)
}

// NewStore creates a store over blobs and loads the current settings.
func NewStore(blobs storage.BlobStore, logger zerolog.Logger) *Store {
	s := &Store{
		blobs: blobs,
		log:   logger.With().Str("component", "settings").Logger(),
	}
	s.Load()
	return s
}

// Load re-reads the blob and replaces the in-memory settings.
// Read errors and malformed content fall back to defaults.
func (s *Store) Load() Settings {
	raw, err := s.blobs.ReadBlob()
	if err != nil {
		s.log.Warn().Err(err).Msg("could not read settings, using defaults")
		raw = nil
	}

	loaded, rejected := decode(raw)
	if len(rejected) > 0 {
		s.log.Warn().Strs("fields", rejected).Msg("ignored unusable settings fields")
	}
	s.log.Debug().
		Int("messages", len(loaded.ConversationHistory)).
		Int("servings", loaded.DefaultServings).
		Bool("tips", loaded.ShowCookingTips).
		Msg("settings loaded")

	s.mu.Lock()
	s.current = loaded
	s.mu.Unlock()
	return loaded.Clone()
}

// Snapshot returns a deep copy of the current settings.
func (s *Store) Snapshot() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Clone()
}

// History returns a copy of the conversation history.
func (s *Store) History() model.History {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.ConversationHistory.Clone()
}

// Save replaces the settings and persists them.
func (s *Store) Save(next Settings) error {
	return s.mutate(func(cur *Settings) {
		*cur = next.Clone()
		if cur.ConversationHistory == nil {
			cur.ConversationHistory = model.History{}
		}
	})
}

// ClearHistory empties the conversation history and persists.
// Preferences are left untouched.
func (s *Store) ClearHistory() error {
	return s.mutate(func(cur *Settings) {
		cur.ConversationHistory = model.History{}
	})
}

// Append adds msg to the end of the history and persists.
func (s *Store) Append(msg model.Message) error {
	return s.mutate(func(cur *Settings) {
		cur.ConversationHistory = append(cur.ConversationHistory, msg)
	})
}

// SetShowCookingTips updates the cooking tips toggle and persists.
func (s *Store) SetShowCookingTips(show bool) error {
	return s.mutate(func(cur *Settings) {
		cur.ShowCookingTips = show
	})
}

// SetDefaultServings parses raw the way the settings field always has (a
// leading integer, so "6 people" is 6) and stores it if positive.
// Invalid input keeps the previous value and writes nothing; the return
// value reports whether the value was accepted.
func (s *Store) SetDefaultServings(raw string) bool {
	n, ok := ParseServings(raw)
	if !ok {
		s.log.Debug().Str("input", raw).Msg("rejected servings value")
		return false
	}
	// A failed write is already logged by mutate; the value was still accepted.
	_ = s.mutate(func(cur *Settings) {
		cur.DefaultServings = n
	})
	return true
}

// OnChange registers fn to be called with a snapshot after each mutation.
func (s *Store) OnChange(fn func(Settings)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = append(s.onChange, fn)
}

// mutate applies fn under the lock and writes the result through.
func (s *Store) mutate(fn func(*Settings)) error {
	s.mu.Lock()
	fn(&s.current)
	snapshot := s.current.Clone()
	data, err := Encode(s.current)
	if err == nil {
		err = s.blobs.WriteBlob(data)
	}
	listeners := append([]func(Settings){}, s.onChange...)
	s.mu.Unlock()

	if err != nil {
		s.log.Error().Err(err).Msg("failed to persist settings")
		return errors.Wrap(err, "failed to persist settings")
	}

	for _, fn := range listeners {
		fn(snapshot)
	}
	return nil
}

// =============================================================================
// INPUT PARSING
// =============================================================================

// ParseServings reads a leading decimal integer from raw, ignoring leading
// whitespace and trailing text, and accepts it only if positive.
func ParseServings(raw string) (int, bool) {
	s := strings.TrimLeftFunc(raw, unicode.IsSpace)

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
