// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package settings

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/rexidian/internal/model"
	"github.com/jeranaias/rexidian/internal/storage"
)

// =============================================================================
// DECODE TESTS
// =============================================================================

func TestDecode(t *testing.T) {
	hello := model.History{{Role: model.RoleUser, Content: "hello", Timestamp: 10}}

	tests := []struct {
		name string
		raw  string
		want Settings
	}{
		{"absent", "", Defaults()},
		{"empty object", "{}", Defaults()},
		{"malformed", "{not json", Defaults()},
		{"not an object", "[1,2,3]", Defaults()},
		{"servings only", `{"defaultServings": 6}`,
			Settings{ConversationHistory: model.History{}, DefaultServings: 6, ShowCookingTips: true}},
		{"tips off", `{"showCookingTips": false}`,
			Settings{ConversationHistory: model.History{}, DefaultServings: 4, ShowCookingTips: false}},
		{"history replaces default", `{"conversationHistory":[{"role":"user","content":"hello","timestamp":10}]}`,
			Settings{ConversationHistory: hello, DefaultServings: 4, ShowCookingTips: true}},
		{"null history", `{"conversationHistory": null, "defaultServings": 2}`,
			Settings{ConversationHistory: model.History{}, DefaultServings: 2, ShowCookingTips: true}},
		{"wrong type falls back per field", `{"defaultServings": "lots", "showCookingTips": false}`,
			Settings{ConversationHistory: model.History{}, DefaultServings: 4, ShowCookingTips: false}},
		{"non-positive servings", `{"defaultServings": 0}`, Defaults()},
		{"unknown keys ignored", `{"theme": "dark", "defaultServings": 3}`,
			Settings{ConversationHistory: model.History{}, DefaultServings: 3, ShowCookingTips: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decode([]byte(tt.raw))
			assert.Equal(t, tt.want, got)
			assert.NotNil(t, got.ConversationHistory)
		})
	}
}

func TestEncode_FullRecord(t *testing.T) {
	data, err := Encode(Settings{DefaultServings: 4, ShowCookingTips: true})
	require.NoError(t, err)
	assert.JSONEq(t, `{"conversationHistory":[],"defaultServings":4,"showCookingTips":true}`, string(data))
}

// =============================================================================
// STORE TESTS
// =============================================================================

func newTestStore(t *testing.T, initial string) (*Store, *storage.MemoryBlobStore) {
	t.Helper()
	var seed []byte
	if initial != "" {
		seed = []byte(initial)
	}
	blobs := storage.NewMemoryBlobStore(seed)
	return NewStore(blobs, zerolog.Nop()), blobs
}

func TestStore_LoadAbsentBlob(t *testing.T) {
	store, blobs := newTestStore(t, "")

	assert.Equal(t, Defaults(), store.Snapshot())
	assert.Equal(t, 0, blobs.Writes(), "loading must not write")
}

func TestStore_LoadPartialBlob(t *testing.T) {
	store, _ := newTestStore(t, `{"defaultServings": 6}`)

	assert.Equal(t, Settings{
		ConversationHistory: model.History{},
		DefaultServings:     6,
		ShowCookingTips:     true,
	}, store.Snapshot())
}

func TestStore_AppendWritesThrough(t *testing.T) {
	store, blobs := newTestStore(t, "")

	msg := model.Message{Role: model.RoleUser, Content: "hello", Timestamp: 1}
	require.NoError(t, store.Append(msg))
	assert.Equal(t, 1, blobs.Writes())

	raw, err := blobs.ReadBlob()
	require.NoError(t, err)
	assert.Equal(t, model.History{msg}, Decode(raw).ConversationHistory)
}

func TestStore_ClearHistoryKeepsPreferences(t *testing.T) {
	store, blobs := newTestStore(t,
		`{"conversationHistory":[{"role":"user","content":"hi","timestamp":1}],"defaultServings":8,"showCookingTips":false}`)

	require.NoError(t, store.ClearHistory())

	reloaded := NewStore(blobs, zerolog.Nop()).Snapshot()
	assert.Empty(t, reloaded.ConversationHistory)
	assert.NotNil(t, reloaded.ConversationHistory)
	assert.Equal(t, 8, reloaded.DefaultServings)
	assert.False(t, reloaded.ShowCookingTips)
}

func TestStore_SetDefaultServings(t *testing.T) {
	tests := []struct {
		input    string
		accepted bool
		want     int
	}{
		{"6", true, 6},
		{" 12 ", true, 12},
		{"3 people", true, 3},
		{"+2", true, 2},
		{"0", false, 4},
		{"-5", false, 4},
		{"abc", false, 4},
		{"", false, 4},
		{"   ", false, 4},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			store, blobs := newTestStore(t, "")

			assert.Equal(t, tt.accepted, store.SetDefaultServings(tt.input))
			assert.Equal(t, tt.want, store.Snapshot().DefaultServings)
			if tt.accepted {
				assert.Equal(t, 1, blobs.Writes())
			} else {
				assert.Equal(t, 0, blobs.Writes(), "rejected input must not persist")
			}
		})
	}
}

func TestStore_SetShowCookingTips(t *testing.T) {
	store, blobs := newTestStore(t, "")

	require.NoError(t, store.SetShowCookingTips(false))
	assert.False(t, NewStore(blobs, zerolog.Nop()).Snapshot().ShowCookingTips)
}

func TestStore_SaveReplacesEverything(t *testing.T) {
	store, blobs := newTestStore(t, `{"defaultServings": 9}`)

	next := Settings{DefaultServings: 2, ShowCookingTips: false}
	require.NoError(t, store.Save(next))

	raw, _ := blobs.ReadBlob()
	assert.JSONEq(t, `{"conversationHistory":[],"defaultServings":2,"showCookingTips":false}`, string(raw))
}

func TestStore_FailedWriteKeepsProcessGoing(t *testing.T) {
	store, blobs := newTestStore(t, "")
	blobs.FailWrites = errors.New("read-only vault")

	err := store.Append(model.Message{Role: model.RoleUser, Content: "hi", Timestamp: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read-only vault")

	// In-memory state still carries the change
	assert.Len(t, store.History(), 1)

	// Once the store recovers, the next write persists everything
	blobs.FailWrites = nil
	require.NoError(t, store.Append(model.Message{Role: model.RoleAssistant, Content: "hello", Timestamp: 2}))
	raw, _ := blobs.ReadBlob()
	assert.Len(t, Decode(raw).ConversationHistory, 2)
}

func TestStore_SnapshotIsolation(t *testing.T) {
	store, _ := newTestStore(t, "")
	require.NoError(t, store.Append(model.Message{Role: model.RoleUser, Content: "a", Timestamp: 1}))

	snap := store.Snapshot()
	snap.ConversationHistory[0].Content = "changed"
	snap.DefaultServings = 99

	assert.Equal(t, "a", store.History()[0].Content)
	assert.Equal(t, 4, store.Snapshot().DefaultServings)
}

func TestStore_OnChange(t *testing.T) {
	store, _ := newTestStore(t, "")

	var seen []int
	store.OnChange(func(s Settings) { seen = append(seen, s.DefaultServings) })

	store.SetDefaultServings("5")
	store.SetDefaultServings("nope")
	require.NoError(t, store.SetShowCookingTips(false))

	assert.Equal(t, []int{5, 5}, seen)
}

func TestStore_FileBackedRoundTrip(t *testing.T) {
	blobs, err := storage.NewFileBlobStore(filepath.Join(t.TempDir(), "data.json"))
	require.NoError(t, err)

	store := NewStore(blobs, zerolog.Nop())
	require.True(t, store.SetDefaultServings("7"))
	require.NoError(t, store.Append(model.Message{Role: model.RoleUser, Content: "risotto?", Timestamp: 5}))

	reloaded := NewStore(blobs, zerolog.Nop()).Snapshot()
	assert.Equal(t, 7, reloaded.DefaultServings)
	require.Len(t, reloaded.ConversationHistory, 1)
	assert.Equal(t, "risotto?", reloaded.ConversationHistory[0].Content)
}
