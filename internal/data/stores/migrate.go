package stores

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hay-kot/tasklist/internal/core/kv"
)

// CopyKey copies a single key from src to dst when dst does not have it yet.
// It reports whether a copy happened. A key missing from src is not an error.
// Used when switching from the file backend to sqlite so existing tasks carry over.
func CopyKey(ctx context.Context, dst, src kv.KV, key string) (bool, error) {
	has, err := dst.Has(ctx, key)
	if err != nil {
		return false, fmt.Errorf("check destination: %w", err)
	}
	if has {
		return false, nil
	}

	var raw json.RawMessage
	if err := src.Get(ctx, key, &raw); err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("read source: %w", err)
	}

	if err := dst.Set(ctx, key, raw); err != nil {
		return false, fmt.Errorf("write destination: %w", err)
	}

	return true, nil
}
