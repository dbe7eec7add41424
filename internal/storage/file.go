// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/jeranaias/rexidian/internal/util"
)

// =============================================================================
// FILE STORE
// =============================================================================

// FileBlobStore keeps the blob in a single file.
type FileBlobStore struct {
	// Path is the blob file, e.g. ~/.rexidian/data.json
	Path string
}

// NewFileBlobStore creates a file-backed store, creating the parent
// directory if needed.
func NewFileBlobStore(path string) (*FileBlobStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, errors.Wrapf(err, "failed to create data directory for %s", path)
	}
	return &FileBlobStore{Path: path}, nil
}

// ReadBlob implements BlobStore. A missing file is not an error.
func (s *FileBlobStore) ReadBlob() ([]byte, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "failed to read %s", s.Path)
	}
	return data, nil
}

// WriteBlob implements BlobStore.
// SECURITY: the blob holds the whole chat history, so it is written 0600.
func (s *FileBlobStore) WriteBlob(data []byte) error {
	if err := util.AtomicWriteFile(s.Path, data, 0600); err != nil {
		return errors.Wrapf(err, "failed to write %s", s.Path)
	}
	return nil
}
