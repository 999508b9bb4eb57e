// Package logger provides structured logging for vault sessions.
package logger

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

// Logger wraps charm/log for structured logging
type Logger struct {
	*log.Logger
}

// New creates a new logger with the given output
func New(w io.Writer) *Logger {
	return NewWithLevel(w, log.InfoLevel)
}

// NewWithLevel creates a logger with a specific level
func NewWithLevel(w io.Writer, level log.Level) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           level,
		Prefix:          "mdvault",
	})
	return &Logger{Logger: l}
}

// NewFileLogger creates a logger that appends to a file
func NewFileLogger(path string, level log.Level) (*Logger, func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		f.Close()
	}

	return NewWithLevel(f, level), cleanup, nil
}

// ParseLevel converts a config string into a level, defaulting to info
func ParseLevel(s string) log.Level {
	level, err := log.ParseLevel(s)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// Discard returns a logger that discards all output
func Discard() *Logger {
	return New(io.Discard)
}

// VaultOpened logs the selection of a vault root
func (l *Logger) VaultOpened(root string, entries int) {
	l.Info("vault opened",
		"root", root,
		"entries", entries)
}

// EchoConsumed logs a watcher event attributed to the app's own mutation
func (l *Logger) EchoConsumed(kind, path string, remaining int) {
	l.Debug("echo consumed",
		"kind", kind,
		"path", path,
		"remaining", remaining)
}

// ExternalChange logs a watcher event caused outside the app
func (l *Logger) ExternalChange(kind, path string) {
	l.Debug("external change",
		"kind", kind,
		"path", path)
}

// Rescan logs a completed full rescan after external changes
func (l *Logger) Rescan(root string, entries int, duration time.Duration) {
	l.Info("vault rescanned",
		"root", root,
		"entries", entries,
		"duration", duration.Round(time.Millisecond))
}

// OperationFailed logs a failed vault operation
func (l *Logger) OperationFailed(op, path string, err error) {
	l.Error("operation failed",
		"op", op,
		"path", path,
		"error", err)
}

// WatcherFailed logs a watcher that could not start or reported an error
func (l *Logger) WatcherFailed(root string, err error) {
	l.Warn("watcher failure",
		"root", root,
		"error", err)
}

// IndexSynced logs a rebuild of the entry index
func (l *Logger) IndexSynced(added, deleted int, duration time.Duration) {
	l.Debug("index synced",
		"added", added,
		"deleted", deleted,
		"duration", duration.Round(time.Millisecond))
}
