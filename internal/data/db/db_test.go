package db

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_CreatesSchema(t *testing.T) {
	dir := t.TempDir()
	database, err := Open(dir, DefaultOpenOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	_, err = os.Stat(filepath.Join(dir, FileName))
	require.NoError(t, err)

	var name string
	err = database.Conn().QueryRowContext(context.Background(),
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'kv_store'").Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "kv_store", name)
}

func TestOpen_Reopen(t *testing.T) {
	dir := t.TempDir()

	first, err := Open(dir, OpenOptions{})
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := Open(dir, OpenOptions{})
	require.NoError(t, err)
	require.NoError(t, second.Close())
}


func TestOpen_UsesWAL(t *testing.T) {
	database, err := Open(t.TempDir(), DefaultOpenOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	var mode string
	require.NoError(t, database.Conn().QueryRowContext(context.Background(), "PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)
}
