// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zerolog.Level
		wantErr bool
	}{
		{"trace", zerolog.TraceLevel, false},
		{"DEBUG", zerolog.DebugLevel, false},
		{"", zerolog.InfoLevel, false},
		{"warning", zerolog.WarnLevel, false},
		{" error ", zerolog.ErrorLevel, false},
		{"loud", zerolog.NoLevel, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestNew_JSONToConsole(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Options{Level: "info", Format: "json", Console: &buf})
	require.NoError(t, err)

	l.Debug().Msg("hidden")
	l.Info().Str("component", "settings").Msg("loaded")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var event map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &event))
	assert.Equal(t, "loaded", event["message"])
	assert.Equal(t, "settings", event["component"])
	assert.Equal(t, "info", event["level"])
}

func TestNew_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Options{Level: "debug", Format: "text", Console: &buf})
	require.NoError(t, err)

	l.Debug().Msg("reply scheduled")
	assert.Contains(t, buf.String(), "reply scheduled")
}

func TestNew_FileOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rexidian.log")
	var console bytes.Buffer
	l, err := New(Options{Level: "info", Format: "json", File: path, Console: &console, NoConsole: true})
	require.NoError(t, err)

	l.Info().Msg("session opened")
	require.NoError(t, l.Close())

	assert.Empty(t, console.String())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "session opened")
}

func TestNew_NoSinksDiscards(t *testing.T) {
	l, err := New(Options{NoConsole: true})
	require.NoError(t, err)
	l.Info().Msg("nowhere")
	assert.NoError(t, l.Close())
}

func TestNew_BadLevel(t *testing.T) {
	_, err := New(Options{Level: "verbose"})
	assert.Error(t, err)
}
