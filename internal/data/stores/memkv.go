package stores

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hay-kot/tasklist/internal/core/kv"
	memkv "github.com/hay-kot/tasklist/pkg/kv"
)

// MemoryKV implements kv.KV in process memory. Values are stored as encoded
// JSON so callers observe the same copy semantics as the durable backends.
type MemoryKV struct {
	data *memkv.Store[string, json.RawMessage]
}

var _ kv.KV = (*MemoryKV)(nil)

// NewMemoryKV creates an empty in-memory KV store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: memkv.New[string, json.RawMessage]()}
}

// Get retrieves and deserializes a value by key.
func (s *MemoryKV) Get(_ context.Context, key string, dest any) error {
	raw, ok := s.data.Get(key)
	if !ok {
		return fmt.Errorf("kv get %q: %w", key, kv.ErrNotFound)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("kv get %q unmarshal: %w", key, err)
	}
	return nil
}

// Set stores a value.
func (s *MemoryKV) Set(_ context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("kv set %q marshal: %w", key, err)
	}
	s.data.Set(key, data)
	return nil
}

// Delete removes a key.
func (s *MemoryKV) Delete(_ context.Context, key string) error {
	s.data.Delete(key)
	return nil
}

// Has returns whether a key exists.
func (s *MemoryKV) Has(_ context.Context, key string) (bool, error) {
	return s.data.Has(key), nil
}

// ListKeys returns all keys in sorted order.
func (s *MemoryKV) ListKeys(_ context.Context) ([]string, error) {
	return s.data.Keys(), nil
}

// SetRaw stores raw bytes without encoding them. Used to seed malformed values in tests
// and by imports that already hold encoded JSON.
func (s *MemoryKV) SetRaw(key string, raw []byte) {
	s.data.Set(key, json.RawMessage(raw))
}
