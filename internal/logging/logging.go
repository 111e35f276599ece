// Package logging builds the process logger from the -v/-vv/--log-file flags.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// Level picks the slog level: WARN by default, INFO with -v, DEBUG with -vv.
func Level(verbose, debug bool) slog.Level {
	switch {
	case debug:
		return slog.LevelDebug
	case verbose:
		return slog.LevelInfo
	default:
		return slog.LevelWarn
	}
}

// OpenFile opens path for appending, creating parent dirs, and writes a
// start banner. An empty path returns nil, nil.
func OpenFile(path, version string) (*os.File, error) {
	if path == "" {
		return nil, nil
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		_ = os.MkdirAll(dir, 0o755)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	_, _ = fmt.Fprintf(f, "=== calcpad %s started at %s ===\n", version, time.Now().Format(time.RFC3339))
	return f, nil
}

// New returns a text logger on w at level. A nil w discards everything.
func New(w io.Writer, level slog.Level) *slog.Logger {
	if w == nil {
		w = io.Discard
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
