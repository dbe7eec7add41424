// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"time"

	"github.com/pkg/errors"

	"github.com/jeranaias/rexidian/internal/model"
)

// =============================================================================
// JSON EXPORTER
// =============================================================================

// JSONExporter exports transcripts to JSON. Messages keep the shape they
// have in the settings blob, so the array can be pasted back into
// conversationHistory.
type JSONExporter struct {
	options *Options
}

type jsonDocument struct {
	Title    string          `json:"title,omitempty"`
	Exported string          `json:"exported,omitempty"`
	Servings int             `json:"defaultServings,omitempty"`
	Count    int             `json:"messageCount,omitempty"`
	Messages []model.Message `json:"messages"`
}

// NewJSONExporter creates a new JSON exporter.
func NewJSONExporter(opts *Options) *JSONExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &JSONExporter{options: opts}
}

// Export converts a transcript to indented JSON. Without IncludeMetadata
// only the messages are written.
func (e *JSONExporter) Export(t Transcript) ([]byte, error) {
	t, err := t.normalized()
	if err != nil {
		return nil, err
	}

	doc := jsonDocument{Messages: t.History}
	if e.options.IncludeMetadata {
		doc.Title = t.Title
		doc.Exported = t.Exported.Format(time.RFC3339)
		doc.Servings = t.Servings
		doc.Count = len(t.History)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "encode transcript")
	}
	return append(data, '\n'), nil
}

// FileExtension returns the file extension for JSON.
func (e *JSONExporter) FileExtension() string {
	return ".json"
}

// MimeType returns the MIME type for JSON.
func (e *JSONExporter) MimeType() string {
	return "application/json"
}
