// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/jeranaias/rexidian/internal/model"
	"github.com/jeranaias/rexidian/internal/util"
)

// =============================================================================
// EXPORT INTERFACE
// =============================================================================

// ErrEmptyHistory is returned when there is nothing to export.
var ErrEmptyHistory = errors.New("conversation has no messages")

// ErrUnsupportedFormat is returned by ForFormat for an unknown format name.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Transcript is what gets exported: the history plus a little context.
type Transcript struct {
	Title    string
	History  model.History
	Servings int

	// Exported defaults to the current time.
	Exported time.Time
}

// Exporter converts a transcript to one file format.
type Exporter interface {
	Export(t Transcript) ([]byte, error)

	// FileExtension returns the extension including the dot, e.g. ".md".
	FileExtension() string

	MimeType() string
}

// =============================================================================
// EXPORT OPTIONS
// =============================================================================

// Options configures export behavior.
type Options struct {
	// IncludeMetadata adds a header with title, dates and counts.
	IncludeMetadata bool

	// IncludeTimestamps adds the time to every message heading.
	IncludeTimestamps bool
}

// DefaultOptions returns default export options.
func DefaultOptions() *Options {
	return &Options{
		IncludeMetadata:   true,
		IncludeTimestamps: true,
	}
}

// DefaultTitle is used when a transcript has no title.
const DefaultTitle = "Recipe assistant conversation"

// =============================================================================
// EXPORT FUNCTIONS
// =============================================================================

// Formats lists the names accepted by ForFormat.
func Formats() []string {
	return []string{"markdown", "json"}
}

// ForFormat returns the exporter for a format name. "md" is accepted as an
// alias for markdown.
func ForFormat(format string, opts *Options) (Exporter, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "markdown", "md":
		return NewMarkdownExporter(opts), nil
	case "json":
		return NewJSONExporter(opts), nil
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "%q (want one of %s)",
			format, strings.Join(Formats(), ", "))
	}
}

// DefaultFilename returns a file name for an export made at t.
func DefaultFilename(exporter Exporter, t time.Time) string {
	return fmt.Sprintf("rexidian_conversation_%s%s", t.Format("20060102_150405"), exporter.FileExtension())
}

// WriteFile writes exported content atomically with 0644 permissions.
func WriteFile(path string, data []byte) error {
	if err := util.AtomicWriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	return nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func (t Transcript) normalized() (Transcript, error) {
	if len(t.History) == 0 {
		return t, ErrEmptyHistory
	}
	if strings.TrimSpace(t.Title) == "" {
		t.Title = DefaultTitle
	}
	if t.Exported.IsZero() {
		t.Exported = time.Now()
	}
	return t, nil
}

// formatTimestamp formats a timestamp for display.
func formatTimestamp(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}

// formatShortTimestamp formats a timestamp for inline display.
func formatShortTimestamp(t time.Time) string {
	return t.Format("15:04:05")
}
