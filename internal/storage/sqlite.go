// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// =============================================================================
// SQLITE STORE
// =============================================================================

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS blobs (
	key        TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	updated_at INTEGER NOT NULL
);`

// DefaultBlobKey is the row the settings blob is stored under.
const DefaultBlobKey = "settings"

// SQLiteBlobStore keeps the blob as one row of a SQLite table.
type SQLiteBlobStore struct {
	mu     sync.Mutex
	db     *sql.DB
	key    string
	closed bool
}

// OpenSQLiteBlobStore opens (creating if needed) the database at path.
func OpenSQLiteBlobStore(path string) (*SQLiteBlobStore, error) {
	return OpenSQLiteBlobStoreWithKey(path, DefaultBlobKey)
}

// OpenSQLiteBlobStoreWithKey is like OpenSQLiteBlobStore but stores the blob
// under key, so several installations can share one database.
func OpenSQLiteBlobStoreWithKey(path, key string) (*SQLiteBlobStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, errors.Wrap(err, "failed to create database directory")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}

	// SQLite only supports one writer at a time
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=FULL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, errors.Wrapf(err, "failed to set pragma %q", pragma)
		}
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to initialize schema")
	}

	return &SQLiteBlobStore{db: db, key: key}, nil
}

// ReadBlob implements BlobStore.
func (s *SQLiteBlobStore) ReadBlob() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}

	var value []byte
	err := s.db.QueryRow("SELECT value FROM blobs WHERE key = ?", s.key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to read blob")
	}
	return value, nil
}

// WriteBlob implements BlobStore. The whole row is replaced in one statement.
func (s *SQLiteBlobStore) WriteBlob(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	if data == nil {
		data = []byte{}
	}
	_, err := s.db.Exec(
		`INSERT INTO blobs (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		s.key, data, time.Now().UnixMilli(),
	)
	if err != nil {
		return errors.Wrap(err, "failed to write blob")
	}
	return nil
}

// UpdatedAt returns when the blob was last written, or the zero time if never.
func (s *SQLiteBlobStore) UpdatedAt() (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return time.Time{}, ErrClosed
	}

	var ms int64
	err := s.db.QueryRow("SELECT updated_at FROM blobs WHERE key = ?", s.key).Scan(&ms)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, errors.Wrap(err, "failed to read blob timestamp")
	}
	return time.UnixMilli(ms), nil
}

// Close releases the database.
func (s *SQLiteBlobStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}
