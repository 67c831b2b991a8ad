// Package storage opens the slot backend selected in the config.
package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/hay-kot/tasklist/internal/core/config"
	"github.com/hay-kot/tasklist/internal/core/kv"
	"github.com/hay-kot/tasklist/internal/data/db"
	"github.com/hay-kot/tasklist/internal/data/jsonfile"
	"github.com/hay-kot/tasklist/internal/data/stores"
)

// Storage is an open slot backend plus the resources backing it.
type Storage struct {
	KV      kv.KV
	Backend string

	log       zerolog.Logger
	watchPath string

	mu       sync.Mutex
	watcher  *jsonfile.Watcher
	database *db.DB
}

// Open returns the backend named by cfg.Storage.Backend. For sqlite, keys
// present in the file slot but not yet in the database are copied over so
// switching backends keeps existing data.
func Open(ctx context.Context, cfg *config.Config, log zerolog.Logger, migrateKeys ...string) (*Storage, error) {
	s := &Storage{Backend: cfg.Storage.Backend, log: log}

	switch cfg.Storage.Backend {
	case config.BackendFile:
		s.KV = jsonfile.NewSlotFile(cfg.SlotFile())

		if cfg.Storage.WatchEnabled() {
			s.watchPath = cfg.SlotFile()
		}

	case config.BackendSQLite:
		database, err := openDatabase(cfg, log)
		if err != nil {
			return nil, err
		}
		s.database = database

		kvStore := stores.NewKVStore(database)
		s.KV = kvStore

		src := jsonfile.NewSlotFile(cfg.SlotFile())
		for _, key := range migrateKeys {
			copied, err := stores.CopyKey(ctx, kvStore, src, key)
			if err != nil {
				log.Warn().Err(err).Str("key", key).Msg("could not migrate key from slot file")
				continue
			}
			if copied {
				log.Info().Str("key", key).Msg("migrated key from slot file")
			}
		}

	case config.BackendMemory:
		s.KV = stores.NewMemoryKV()

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	log.Debug().Str("backend", s.Backend).Msg("storage opened")
	return s, nil
}

// Changes signals external writes to the slot. The watcher starts on the
// first call, so one-shot commands never start one. It is nil when the
// backend is not watched or the watcher could not start.
func (s *Storage) Changes() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.watcher == nil && s.watchPath != "" {
		w, err := jsonfile.NewWatcher(s.watchPath, s.log)
		if err != nil {
			// Live reload is optional; the list still works without it.
			s.log.Warn().Err(err).Str("path", s.watchPath).Msg("slot watcher unavailable")
			s.watchPath = ""
			return nil
		}
		s.watcher = w
	}

	if s.watcher == nil {
		return nil
	}
	return s.watcher.Changes()
}

// Close releases the watcher and database, if any.
func (s *Storage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	if s.watcher != nil {
		if err := s.watcher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close watcher: %w", err))
		}
	}
	if s.database != nil {
		if err := s.database.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close database: %w", err))
		}
	}
	return errors.Join(errs...)
}

func openDatabase(cfg *config.Config, log zerolog.Logger) (*db.DB, error) {
	opts := db.OpenOptions{
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
		BusyTimeout:  cfg.Database.BusyTimeout,
	}

	database, err := db.Open(cfg.DataDir, opts)
	if err == nil {
		return database, nil
	}
	if !stores.IsCorruptionError(err) {
		return nil, fmt.Errorf("open database: %w", err)
	}

	backup, rerr := stores.RecoverFromCorruption(cfg.DataDir)
	if rerr != nil {
		return nil, fmt.Errorf("recover corrupted database: %w", rerr)
	}
	log.Warn().Err(err).Str("backup", backup).Msg("database was corrupted, moved aside and starting fresh")

	database, err = db.Open(cfg.DataDir, opts)
	if err != nil {
		return nil, fmt.Errorf("open database after recovery: %w", err)
	}
	return database, nil
}
