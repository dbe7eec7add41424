// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package settings owns the durable settings blob.
package settings

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/jeranaias/rexidian/internal/model"
)

// =============================================================================
// SETTINGS TYPE
// =============================================================================

// Settings is the single persisted record of an installation.
type Settings struct {
	ConversationHistory model.History `json:"conversationHistory"`
	DefaultServings     int           `json:"defaultServings"`
	ShowCookingTips     bool          `json:"showCookingTips"`
}

const (
	// DefaultServings is used for a fresh install or an unusable stored value.
	DefaultServings = 4

	// DefaultShowCookingTips is the initial cooking tips toggle.
	DefaultShowCookingTips = true
)

// Wire keys of the blob.
const (
	keyHistory  = "conversationHistory"
	keyServings = "defaultServings"
	keyTips     = "showCookingTips"
)

// Defaults returns the settings of a fresh installation.
func Defaults() Settings {
	return Settings{
		ConversationHistory: model.History{},
		DefaultServings:     DefaultServings,
		ShowCookingTips:     DefaultShowCookingTips,
	}
}

// Clone returns a deep copy.
func (s Settings) Clone() Settings {
	s.ConversationHistory = s.ConversationHistory.Clone()
	return s
}

// =============================================================================
// CODEC
// =============================================================================

// Decode merges a raw blob over the defaults, one top-level field at a time.
// A present history replaces the default list wholesale. Fields that are
// missing, null, of the wrong type, or (for servings) not positive keep their
// default. Decode never fails; unusable input yields Defaults().
func Decode(raw []byte) Settings {
	s, _ := decode(raw)
	return s
}

// decode is Decode plus the list of fields that were present but unusable,
// so the store can log them.
func decode(raw []byte) (Settings, []string) {
	s := Defaults()
	if len(raw) == 0 {
		return s, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return s, []string{"<blob>"}
	}

	var rejected []string

	if v, ok := fields[keyHistory]; ok && !isNull(v) {
		var h model.History
		if err := json.Unmarshal(v, &h); err == nil && h != nil {
			s.ConversationHistory = h
		} else {
			rejected = append(rejected, keyHistory)
		}
	}

	if v, ok := fields[keyServings]; ok && !isNull(v) {
		var n int
		if err := json.Unmarshal(v, &n); err == nil && n > 0 {
			s.DefaultServings = n
		} else {
			rejected = append(rejected, keyServings)
		}
	}

	if v, ok := fields[keyTips]; ok && !isNull(v) {
		var b bool
		if err := json.Unmarshal(v, &b); err == nil {
			s.ShowCookingTips = b
		} else {
			rejected = append(rejected, keyTips)
		}
	}

	return s, rejected
}

func isNull(v json.RawMessage) bool {
	return string(v) == "null"
}

// Encode serializes the full settings record.
func Encode(s Settings) ([]byte, error) {
	if s.ConversationHistory == nil {
		s.ConversationHistory = model.History{}
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode settings")
	}
	return data, nil
}
