// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes the stored conversation to shareable files.
//
// # Formats
//
//   - Markdown: readable transcript with optional YAML frontmatter
//   - JSON: the messages in their stored shape plus export metadata
//
// # Usage
//
//	exporter, err := export.ForFormat("markdown", export.DefaultOptions())
//	if err != nil {
//	    return err
//	}
//	data, err := exporter.Export(export.Transcript{History: store.History()})
//	if err != nil {
//	    return err
//	}
//	err = export.WriteFile(path, data)
package export
