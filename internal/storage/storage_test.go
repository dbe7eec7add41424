// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// SHARED CONTRACT
// =============================================================================

// checkBlobStoreContract exercises the behaviour every backend must share.
func checkBlobStoreContract(t *testing.T, s BlobStore) {
	t.Helper()

	data, err := s.ReadBlob()
	require.NoError(t, err)
	assert.Nil(t, data, "fresh store should report an absent blob")

	require.NoError(t, s.WriteBlob([]byte(`{"defaultServings":6}`)))
	data, err = s.ReadBlob()
	require.NoError(t, err)
	assert.Equal(t, `{"defaultServings":6}`, string(data))

	// Writes replace, never append
	require.NoError(t, s.WriteBlob([]byte(`{}`)))
	data, err = s.ReadBlob()
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))
}

func TestMemoryBlobStore_Contract(t *testing.T) {
	checkBlobStoreContract(t, NewMemoryBlobStore(nil))
}

func TestFileBlobStore_Contract(t *testing.T) {
	s, err := NewFileBlobStore(filepath.Join(t.TempDir(), "nested", "data.json"))
	require.NoError(t, err)
	checkBlobStoreContract(t, s)
}

func TestSQLiteBlobStore_Contract(t *testing.T) {
	s, err := OpenSQLiteBlobStore(filepath.Join(t.TempDir(), "data.db"))
	require.NoError(t, err)
	defer s.Close()
	checkBlobStoreContract(t, s)
}

// =============================================================================
// MEMORY STORE
// =============================================================================

func TestMemoryBlobStore_Seeded(t *testing.T) {
	seed := []byte(`{"showCookingTips":false}`)
	s := NewMemoryBlobStore(seed)
	seed[0] = 'X'

	data, err := s.ReadBlob()
	require.NoError(t, err)
	assert.Equal(t, `{"showCookingTips":false}`, string(data))
}

func TestMemoryBlobStore_FailWrites(t *testing.T) {
	s := NewMemoryBlobStore([]byte("old"))
	s.FailWrites = errors.New("disk full")

	err := s.WriteBlob([]byte("new"))
	assert.EqualError(t, err, "disk full")
	assert.Equal(t, 0, s.Writes())

	data, _ := s.ReadBlob()
	assert.Equal(t, "old", string(data))
}

// =============================================================================
// FILE STORE
// =============================================================================

func TestFileBlobStore_Permissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	s, err := NewFileBlobStore(path)
	require.NoError(t, err)
	require.NoError(t, s.WriteBlob([]byte("{}")))

	info, err := os.Stat(path)
	require.NoError(t, err)
	if os.PathSeparator == '/' {
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	}
}

func TestFileBlobStore_ReadError(t *testing.T) {
	dir := t.TempDir()
	// A directory where the file should be cannot be read as a blob.
	path := filepath.Join(dir, "data.json")
	require.NoError(t, os.Mkdir(path, 0700))

	s := &FileBlobStore{Path: path}
	_, err := s.ReadBlob()
	assert.Error(t, err)
}

// =============================================================================
// SQLITE STORE
// =============================================================================

func TestSQLiteBlobStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.db")

	s, err := OpenSQLiteBlobStore(path)
	require.NoError(t, err)
	require.NoError(t, s.WriteBlob([]byte(`{"defaultServings":2}`)))
	require.NoError(t, s.Close())

	s, err = OpenSQLiteBlobStore(path)
	require.NoError(t, err)
	defer s.Close()

	data, err := s.ReadBlob()
	require.NoError(t, err)
	assert.Equal(t, `{"defaultServings":2}`, string(data))

	updated, err := s.UpdatedAt()
	require.NoError(t, err)
	assert.False(t, updated.IsZero())
}

func TestSQLiteBlobStore_KeysAreIsolated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.db")

	a, err := OpenSQLiteBlobStoreWithKey(path, "a")
	require.NoError(t, err)
	require.NoError(t, a.WriteBlob([]byte("A")))
	require.NoError(t, a.Close())

	b, err := OpenSQLiteBlobStoreWithKey(path, "b")
	require.NoError(t, err)
	defer b.Close()

	data, err := b.ReadBlob()
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestSQLiteBlobStore_Closed(t *testing.T) {
	s, err := OpenSQLiteBlobStore(filepath.Join(t.TempDir(), "data.db"))
	require.NoError(t, err)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	_, err = s.ReadBlob()
	assert.True(t, errors.Is(err, ErrClosed))
	assert.True(t, errors.Is(s.WriteBlob([]byte("x")), ErrClosed))
}

// =============================================================================
// FOLLOW
// =============================================================================

func TestFollow_ReportsReplacement(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	s, err := NewFileBlobStore(path)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 16)
	done := make(chan error, 1)
	go func() {
		done <- Follow(ctx, path, func() { changed <- struct{}{} })
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, s.WriteBlob([]byte("{}")))

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported after write")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Follow did not return after cancel")
	}
}
