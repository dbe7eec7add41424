// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides the persisted key-value blob the settings live in.
//
// The settings store only needs two operations from its host: read the
// whole blob and replace the whole blob. Backends implement BlobStore.
//
// # Key Types
//
//   - BlobStore: ReadBlob / WriteBlob contract
//   - FileBlobStore: One JSON file, replaced atomically on every write
//   - SQLiteBlobStore: One row in a SQLite database (pure Go driver)
//   - MemoryBlobStore: In-process store for tests and --ephemeral runs
//
// # Usage
//
//	blobs, err := storage.NewFileBlobStore(filepath.Join(dataDir, "data.json"))
//	raw, err := blobs.ReadBlob() // nil, nil on first run
//	err = blobs.WriteBlob(raw)
//
// Follow watches a file-backed blob and calls back after each replacement:
//
//	err := storage.Follow(ctx, path, func() { ... })
//
// # Storage Location
//
// By default the blob is stored in ~/.rexidian/data.json or ~/.rexidian/data.db.
package storage
