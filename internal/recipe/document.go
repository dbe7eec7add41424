// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package recipe

import (
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/jeranaias/rexidian/internal/util"
)

// Document is the editing surface a template is inserted into.
type Document interface {
	InsertTextAtCursor(text string) error
}

// ErrCursorOutOfRange is returned when the cursor line is past the end of
// the document.
var ErrCursorOutOfRange = errors.New("cursor is past the end of the document")

// EndOfDocument places the cursor after the last line.
const EndOfDocument = -1

// FileDocument is a markdown file with a line-based cursor.
type FileDocument struct {
	Path string

	// Line is the zero-based line the text is inserted before.
	// EndOfDocument appends.
	Line int
}

// NewFileDocument returns a document whose cursor is at line.
func NewFileDocument(path string, line int) *FileDocument {
	return &FileDocument{Path: path, Line: line}
}

// InsertTextAtCursor implements Document. A missing file is treated as an
// empty document. The file is rewritten atomically.
func (d *FileDocument) InsertTextAtCursor(text string) error {
	data, err := os.ReadFile(d.Path)
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "failed to read %s", d.Path)
	}
	existing := string(data)

	var lines []string
	if existing != "" {
		lines = strings.SplitAfter(existing, "\n")
		if lines[len(lines)-1] == "" {
			lines = lines[:len(lines)-1]
		}
	}

	at := d.Line
	if at == EndOfDocument {
		at = len(lines)
	}
	if at < 0 || at > len(lines) {
		return errors.Wrapf(ErrCursorOutOfRange, "line %d of %d", d.Line, len(lines))
	}

	// Keep the inserted block on its own lines.
	if at > 0 && !strings.HasSuffix(lines[at-1], "\n") {
		lines[at-1] += "\n"
	}
	block := text
	if !strings.HasSuffix(block, "\n") {
		block += "\n"
	}

	var sb strings.Builder
	for _, l := range lines[:at] {
		sb.WriteString(l)
	}
	sb.WriteString(block)
	for _, l := range lines[at:] {
		sb.WriteString(l)
	}

	mode := os.FileMode(0644)
	if info, statErr := os.Stat(d.Path); statErr == nil {
		mode = info.Mode().Perm()
	}
	if err := util.AtomicWriteFile(d.Path, []byte(sb.String()), mode); err != nil {
		return errors.Wrapf(err, "failed to write %s", d.Path)
	}
	return nil
}
