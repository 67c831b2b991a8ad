// Package logutils builds the process-wide zerolog logger.
package logutils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/rs/zerolog"
)

// KeepDays is how many daily log files are retained.
const KeepDays = 7

// New returns a logger that writes JSON lines to a daily rotated file. The
// current day's file is reachable through a symlink at file. If file is
// empty, logs are written to stderr.
//
// The level parameter can be one of: debug, info, warn, error, fatal.
func New(level string, file string) (zerolog.Logger, func(), error) {
	closer := func() {}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Logger{}, closer, err
	}

	var writer io.Writer = os.Stderr
	if file != "" {
		if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
			return zerolog.Logger{}, closer, fmt.Errorf("create logs dir: %w", err)
		}

		rl, err := rotatelogs.New(
			file+".%Y%m%d",
			rotatelogs.WithLinkName(file),
			rotatelogs.WithRotationTime(24*time.Hour),
			rotatelogs.WithRotationCount(KeepDays),
		)
		if err != nil {
			return zerolog.Logger{}, closer, fmt.Errorf("open log file: %w", err)
		}
		closer = func() { _ = rl.Close() }
		writer = rl
	}

	l := zerolog.New(writer).
		With().
		Timestamp().
		Logger().
		Level(lvl)

	return l, closer, nil
}
