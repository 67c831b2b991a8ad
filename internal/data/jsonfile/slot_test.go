package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hay-kot/tasklist/internal/core/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSlot(t *testing.T) *SlotFile {
	t.Helper()
	return NewSlotFile(filepath.Join(t.TempDir(), "data", "store.json"))
}

func TestSlotFile_SetAndGet(t *testing.T) {
	ctx := context.Background()
	slot := newTestSlot(t)

	require.NoError(t, slot.Set(ctx, "tasklist:tasks", []string{"a", "b"}))

	var got []string
	require.NoError(t, slot.Get(ctx, "tasklist:tasks", &got))
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestSlotFile_MissingFile(t *testing.T) {
	ctx := context.Background()
	slot := newTestSlot(t)

	var got []string
	err := slot.Get(ctx, "tasklist:tasks", &got)
	require.ErrorIs(t, err, kv.ErrNotFound)

	has, err := slot.Has(ctx, "tasklist:tasks")
	require.NoError(t, err)
	assert.False(t, has)

	keys, err := slot.ListKeys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestSlotFile_OverwriteKeepsOtherKeys(t *testing.T) {
	ctx := context.Background()
	slot := newTestSlot(t)

	require.NoError(t, slot.Set(ctx, "a", 1))
	require.NoError(t, slot.Set(ctx, "b", 2))
	require.NoError(t, slot.Set(ctx, "a", 3))

	var a, b int
	require.NoError(t, slot.Get(ctx, "a", &a))
	require.NoError(t, slot.Get(ctx, "b", &b))
	assert.Equal(t, 3, a)
	assert.Equal(t, 2, b)

	keys, err := slot.ListKeys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, keys)
}

func TestSlotFile_Delete(t *testing.T) {
	ctx := context.Background()
	slot := newTestSlot(t)

	require.NoError(t, slot.Set(ctx, "a", 1))
	require.NoError(t, slot.Delete(ctx, "a"))
	require.NoError(t, slot.Delete(ctx, "missing"))

	has, err := slot.Has(ctx, "a")
	require.NoError(t, err)
	assert.False(t, has)
}

func TestSlotFile_Malformed(t *testing.T) {
	ctx := context.Background()
	slot := newTestSlot(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(slot.Path()), 0o755))
	require.NoError(t, os.WriteFile(slot.Path(), []byte("not json at all"), 0o644))

	var got []string
	err := slot.Get(ctx, "tasklist:tasks", &got)
	require.ErrorIs(t, err, ErrMalformed)

	has, err := slot.Has(ctx, "tasklist:tasks")
	require.NoError(t, err)
	assert.False(t, has)

	// A write replaces the malformed contents.
	require.NoError(t, slot.Set(ctx, "tasklist:tasks", []string{"x"}))
	require.NoError(t, slot.Get(ctx, "tasklist:tasks", &got))
	assert.Equal(t, []string{"x"}, got)
}

func TestSlotFile_EmptyFile(t *testing.T) {
	ctx := context.Background()
	slot := newTestSlot(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(slot.Path()), 0o755))
	require.NoError(t, os.WriteFile(slot.Path(), nil, 0o644))

	var got []string
	err := slot.Get(ctx, "k", &got)
	require.ErrorIs(t, err, kv.ErrNotFound)
}

func TestSlotFile_NoTempFileLeft(t *testing.T) {
	ctx := context.Background()
	slot := newTestSlot(t)
	require.NoError(t, slot.Set(ctx, "a", 1))

	_, err := os.Stat(slot.Path() + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestSlotFile_SharedAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.json")
	first := NewSlotFile(path)
	second := NewSlotFile(path)

	require.NoError(t, first.Set(ctx, "a", "from-first"))

	var got string
	require.NoError(t, second.Get(ctx, "a", &got))
	assert.Equal(t, "from-first", got)
}
