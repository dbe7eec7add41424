// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides the persisted key-value blob the settings live in.
package storage

import (
	"sync"
)

// =============================================================================
// BLOB STORE INTERFACE
// =============================================================================

// BlobStore persists one opaque record.
type BlobStore interface {
	// ReadBlob returns the stored bytes, or nil with a nil error when
	// nothing has been written yet.
	ReadBlob() ([]byte, error)

	// WriteBlob replaces the stored bytes.
	WriteBlob(data []byte) error
}

// =============================================================================
// ERRORS
// =============================================================================

// ErrClosed is returned by backends used after Close.
// Use errors.Is(err, ErrClosed) to check for this error.
var ErrClosed = &StorageError{Message: "blob store is closed"}

// StorageError represents a storage-related error.
type StorageError struct {
	Message string
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	return e.Message
}

// Is implements errors.Is support for comparing storage errors.
func (e *StorageError) Is(target error) bool {
	t, ok := target.(*StorageError)
	if !ok {
		return false
	}
	return e.Message == t.Message
}

// =============================================================================
// MEMORY STORE
// =============================================================================

// MemoryBlobStore keeps the blob in memory. Safe for concurrent use.
type MemoryBlobStore struct {
	mu     sync.Mutex
	data   []byte
	writes int

	// FailWrites makes WriteBlob return this error when set.
	FailWrites error
}

// NewMemoryBlobStore creates a store, optionally pre-seeded with data.
func NewMemoryBlobStore(initial []byte) *MemoryBlobStore {
	s := &MemoryBlobStore{}
	if initial != nil {
		s.data = append([]byte(nil), initial...)
	}
	return s
}

// ReadBlob implements BlobStore.
func (s *MemoryBlobStore) ReadBlob() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return nil, nil
	}
	return append([]byte(nil), s.data...), nil
}

// WriteBlob implements BlobStore.
func (s *MemoryBlobStore) WriteBlob(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites != nil {
		return s.FailWrites
	}
	s.data = append([]byte{}, data...)
	s.writes++
	return nil
}

// Writes returns how many successful writes the store has seen.
func (s *MemoryBlobStore) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}
