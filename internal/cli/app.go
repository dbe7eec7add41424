// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"io"
	"math/rand"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/jeranaias/rexidian/internal/config"
	"github.com/jeranaias/rexidian/internal/logging"
	"github.com/jeranaias/rexidian/internal/responder"
	"github.com/jeranaias/rexidian/internal/settings"
	"github.com/jeranaias/rexidian/internal/storage"
)

// App holds what every command shares: configuration, the logger and the
// settings store, opened on first use.
type App struct {
	Config *config.Config
	Log    *logging.Logger

	store  *settings.Store
	closer io.Closer
}

// Logger returns the application logger.
func (a *App) Logger() zerolog.Logger {
	if a.Log == nil {
		return zerolog.Nop()
	}
	return a.Log.Logger
}

// Settings opens the configured blob store and returns the settings store
// over it. Later calls return the same store.
func (a *App) Settings() (*settings.Store, error) {
	if a.store != nil {
		return a.store, nil
	}
	blobs, closer, err := OpenBlobStore(a.Config)
	if err != nil {
		return nil, err
	}
	a.closer = closer
	a.store = settings.NewStore(blobs, a.Logger())
	return a.store, nil
}

// Responder returns the reply picker, seeded from the configuration.
func (a *App) Responder() responder.Responder {
	return responder.NewCanned(a.Config.Seed)
}

// Rand returns a generator seeded like the responder.
func (a *App) Rand() *rand.Rand {
	seed := a.Config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Close releases the blob store and the log file.
func (a *App) Close() error {
	var firstErr error
	if a.closer != nil {
		firstErr = a.closer.Close()
		a.closer = nil
	}
	if a.Log != nil {
		if err := a.Log.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// OpenBlobStore opens the blob store named by cfg.Backend. The closer is nil
// for backends that hold no resources.
func OpenBlobStore(cfg *config.Config) (storage.BlobStore, io.Closer, error) {
	path, err := cfg.SettingsPath()
	if err != nil {
		return nil, nil, err
	}

	switch cfg.Backend {
	case config.BackendMemory:
		return storage.NewMemoryBlobStore(nil), nil, nil
	case config.BackendSQLite:
		db, err := storage.OpenSQLiteBlobStore(path)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "failed to open %s", path)
		}
		return db, db, nil
	case config.BackendFile:
		fs, err := storage.NewFileBlobStore(path)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "failed to open %s", path)
		}
		return fs, nil, nil
	default:
		return nil, nil, errors.Wrapf(config.ErrInvalidBackend, "backend %q", cfg.Backend)
	}
}
