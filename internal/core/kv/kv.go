// Package kv defines the key-value persistence contract used for the task slot.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is wrapped by Get when a key has never been written or was deleted.
var ErrNotFound = errors.New("kv: key not found")

// KV is the interface for a persistent key-value store.
// Keys are strings, values are JSON-serializable.
// Get on a missing key returns an error wrapping ErrNotFound.
// Set overwrites unconditionally; a successful Set is visible to the next Get.
type KV interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
	Has(ctx context.Context, key string) (bool, error)
	ListKeys(ctx context.Context) ([]string, error)
}
