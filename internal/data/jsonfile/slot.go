// Package jsonfile implements the file-backed persistence slot: a single JSON
// object file mapping keys to values, rewritten atomically on every change.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/gofrs/flock"

	"github.com/hay-kot/tasklist/internal/core/kv"
)

// ErrMalformed is wrapped by Get when the slot file exists but is not a JSON object.
var ErrMalformed = errors.New("slot file is malformed")

// SlotFile implements kv.KV on top of one JSON file.
//
// Writes hold an exclusive flock on "<path>.lock" and replace the file through a
// rename, so readers in other processes see either the old or the new contents.
type SlotFile struct {
	path string
	mu   sync.Mutex
	lock *flock.Flock
}

var _ kv.KV = (*SlotFile)(nil)

// NewSlotFile creates a slot backed by the file at path. The file and its
// directory are created on first write.
func NewSlotFile(path string) *SlotFile {
	return &SlotFile{
		path: path,
		lock: flock.New(path + ".lock"),
	}
}

// Path returns the slot file location.
func (s *SlotFile) Path() string {
	return s.path
}

// Get retrieves and deserializes a value by key.
func (s *SlotFile) Get(ctx context.Context, key string, dest any) error {
	entries, err := s.read()
	if err != nil {
		return fmt.Errorf("kv get %q: %w", key, err)
	}

	raw, ok := entries[key]
	if !ok {
		return fmt.Errorf("kv get %q: %w", key, kv.ErrNotFound)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("kv get %q unmarshal: %w", key, err)
	}

	return nil
}

// Set stores a value, overwriting unconditionally. A malformed file is replaced.
func (s *SlotFile) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("kv set %q marshal: %w", key, err)
	}

	return s.update(func(entries map[string]json.RawMessage) bool {
		entries[key] = data
		return true
	})
}

// Delete removes a key.
func (s *SlotFile) Delete(ctx context.Context, key string) error {
	return s.update(func(entries map[string]json.RawMessage) bool {
		if _, ok := entries[key]; !ok {
			return false
		}
		delete(entries, key)
		return true
	})
}

// Has returns whether a key exists. A malformed file has no keys.
func (s *SlotFile) Has(ctx context.Context, key string) (bool, error) {
	entries, err := s.read()
	if err != nil {
		if errors.Is(err, ErrMalformed) {
			return false, nil
		}
		return false, err
	}
	_, ok := entries[key]
	return ok, nil
}

// ListKeys returns all keys in sorted order. A malformed file has no keys.
func (s *SlotFile) ListKeys(ctx context.Context) ([]string, error) {
	entries, err := s.read()
	if err != nil {
		if errors.Is(err, ErrMalformed) {
			return []string{}, nil
		}
		return nil, err
	}

	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys, nil
}

func (s *SlotFile) read() (map[string]json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureDir(); err != nil {
		return nil, err
	}

	if err := s.lock.RLock(); err != nil {
		return nil, fmt.Errorf("lock slot file: %w", err)
	}
	defer func() { _ = s.lock.Unlock() }()

	return s.load()
}

// update applies fn to the current entries and writes them back when fn reports a change.
func (s *SlotFile) update(fn func(map[string]json.RawMessage) bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureDir(); err != nil {
		return err
	}

	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("lock slot file: %w", err)
	}
	defer func() { _ = s.lock.Unlock() }()

	entries, err := s.load()
	if err != nil {
		if !errors.Is(err, ErrMalformed) {
			return err
		}
		entries = map[string]json.RawMessage{}
	}

	if !fn(entries) {
		return nil
	}

	return s.save(entries)
}

// load reads the slot file from disk.
// Returns an empty map if the file doesn't exist or is empty.
func (s *SlotFile) load() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]json.RawMessage{}, nil
		}
		return nil, fmt.Errorf("read slot file: %w", err)
	}

	if len(data) == 0 {
		return map[string]json.RawMessage{}, nil
	}

	var entries map[string]json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if entries == nil {
		entries = map[string]json.RawMessage{}
	}

	return entries, nil
}

// save writes the slot file to disk atomically.
func (s *SlotFile) save(entries map[string]json.RawMessage) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode slot file: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write slot file: %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace slot file: %w", err)
	}

	return nil
}

func (s *SlotFile) ensureDir() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create slot dir: %w", err)
	}
	return nil
}
