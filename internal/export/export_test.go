// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/rexidian/internal/model"
)

var exportedAt = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func sampleTranscript() Transcript {
	base := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	return Transcript{
		History: model.History{
			model.NewMessage(model.RoleAssistant, "What would you like to cook today?", base),
			model.NewMessage(model.RoleUser, "risotto", base.Add(time.Minute)),
			model.NewMessage(model.RoleAssistant, "Try **arborio** rice.", base.Add(2*time.Minute)),
		},
		Servings: 4,
		Exported: exportedAt,
	}
}

func TestForFormat(t *testing.T) {
	tests := []struct {
		format string
		ext    string
	}{
		{"markdown", ".md"},
		{"md", ".md"},
		{" JSON ", ".json"},
	}
	for _, tt := range tests {
		exporter, err := ForFormat(tt.format, nil)
		require.NoError(t, err, tt.format)
		assert.Equal(t, tt.ext, exporter.FileExtension())
	}

	_, err := ForFormat("html", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestMarkdownExport(t *testing.T) {
	data, err := NewMarkdownExporter(nil).Export(sampleTranscript())
	require.NoError(t, err)
	out := string(data)

	assert.True(t, strings.HasPrefix(out, "---\ntitle: "+DefaultTitle+"\n"))
	assert.Contains(t, out, "messages: 3\n")
	assert.Contains(t, out, "servings: 4\n")
	assert.Contains(t, out, "- **Messages**: 3 (1 from you, 2 from the assistant)")
	assert.Contains(t, out, "Try **arborio** rice.")
	assert.Contains(t, out, "### You <sub>")
	assert.Less(t, strings.Index(out, "risotto"), strings.Index(out, "arborio"))
	assert.Contains(t, out, "*Exported from rexidian on March 14, 2025 at 9:30 AM*")
}

func TestMarkdownExportWithoutMetadata(t *testing.T) {
	exporter := NewMarkdownExporter(&Options{})
	data, err := exporter.Export(sampleTranscript())
	require.NoError(t, err)
	out := string(data)

	assert.False(t, strings.HasPrefix(out, "---"))
	assert.NotContains(t, out, "Session Information")
	assert.Contains(t, out, "### You\n\nrisotto")
}

func TestMarkdownTitleEscaping(t *testing.T) {
	tr := sampleTranscript()
	tr.Title = "Dinner\ninjected: true # [draft]"

	data, err := NewMarkdownExporter(nil).Export(tr)
	require.NoError(t, err)
	out := string(data)

	for _, line := range strings.Split(out, "\n")[:8] {
		assert.False(t, strings.HasPrefix(line, "injected:"), "frontmatter line injected: %q", line)
	}
	assert.Contains(t, out, `title: "Dinner\ninjected: true # [draft]"`)
	assert.Contains(t, out, `\# \[draft\]`)
}

func TestJSONExport(t *testing.T) {
	tr := sampleTranscript()
	data, err := NewJSONExporter(nil).Export(tr)
	require.NoError(t, err)

	var doc struct {
		Title    string          `json:"title"`
		Exported string          `json:"exported"`
		Servings int             `json:"defaultServings"`
		Count    int             `json:"messageCount"`
		Messages []model.Message `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, DefaultTitle, doc.Title)
	assert.Equal(t, "2025-03-14T09:30:00Z", doc.Exported)
	assert.Equal(t, 4, doc.Servings)
	assert.Equal(t, 3, doc.Count)
	assert.Equal(t, []model.Message(tr.History), doc.Messages)
}

func TestJSONExportMessagesOnly(t *testing.T) {
	data, err := NewJSONExporter(&Options{}).Export(sampleTranscript())
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Len(t, raw, 1)
	assert.Contains(t, raw, "messages")
}

func TestExportEmptyHistory(t *testing.T) {
	for _, format := range Formats() {
		exporter, err := ForFormat(format, nil)
		require.NoError(t, err)
		_, err = exporter.Export(Transcript{})
		assert.ErrorIs(t, err, ErrEmptyHistory, format)
	}
}

func TestWriteFile(t *testing.T) {
	exporter := NewMarkdownExporter(nil)
	path := filepath.Join(t.TempDir(), DefaultFilename(exporter, exportedAt))
	assert.Equal(t, "rexidian_conversation_20250314_093000.md", filepath.Base(path))

	require.NoError(t, WriteFile(path, []byte("# hi\n")))
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# hi\n", string(got))
}
