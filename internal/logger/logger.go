// Package logger sets up the process-wide slog logger.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// EnvLevel overrides the configured level when set.
const EnvLevel = "TABLELINES_LOG_LEVEL"

func levelFromString(s string) (l slog.Level, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug", "dbg":
		return slog.LevelDebug, true
	case "info", "inf":
		return slog.LevelInfo, true
	case "warn", "wrn":
		return slog.LevelWarn, true
	case "error", "err":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// ResolveLevel returns the level from EnvLevel if it is set and valid,
// otherwise from level. Unknown names fall back to info.
func ResolveLevel(level string) slog.Level {
	if env, ok := levelFromString(os.Getenv(EnvLevel)); ok {
		return env
	}
	l, _ := levelFromString(level)
	return l
}

// Init installs a text handler writing to w as the default logger and
// returns it.
func Init(w io.Writer, level string) *slog.Logger {
	// slog defaults to logging in the order of time, level, msg, and other attributes.
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: ResolveLevel(level)})

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// InitFile is Init on a file opened for appending, creating its directory.
// The caller closes the returned file.
func InitFile(path, level string) (*slog.Logger, *os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return Init(logFile, level), logFile, nil
}
