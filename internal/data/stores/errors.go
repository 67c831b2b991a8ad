package stores

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/hay-kot/tasklist/internal/data/db"
)

// IsBusyError returns true if the error is a SQLITE_BUSY error.
func IsBusyError(err error) bool {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code() == sqlite3.SQLITE_BUSY
	}
	return false
}

// IsCorruptionError returns true if the error indicates database corruption.
func IsCorruptionError(err error) bool {
	if err == nil {
		return false
	}

	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		code := sqliteErr.Code()
		return code == sqlite3.SQLITE_CORRUPT || code == sqlite3.SQLITE_NOTADB
	}

	errStr := err.Error()
	return strings.Contains(errStr, "database disk image is malformed") ||
		strings.Contains(errStr, "file is not a database")
}

// IsNotFoundError returns true if the error is a "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// RecoverFromCorruption moves a corrupted database (and its WAL/SHM companions)
// aside so the next Open starts from an empty file. Returns the backup path.
func RecoverFromCorruption(dataDir string) (string, error) {
	dbPath := filepath.Join(dataDir, db.FileName)
	backupPath := filepath.Join(dataDir, fmt.Sprintf("%s.corrupt.%s", db.FileName, time.Now().Format("20060102-150405")))

	if err := os.Rename(dbPath, backupPath); err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to backup corrupted database: %w", err)
	}

	// Stale WAL/SHM files would be replayed against the fresh database.
	for _, suffix := range []string{"-wal", "-shm"} {
		side := dbPath + suffix
		if _, err := os.Stat(side); err != nil {
			continue
		}
		if err := os.Rename(side, backupPath+suffix); err != nil {
			if delErr := os.Remove(side); delErr != nil {
				return "", fmt.Errorf("failed to backup or remove %s file: %w", suffix, err)
			}
		}
	}

	return backupPath, nil
}
