// Package logging provides structured file logging for issuedeck.
// The TUI owns the terminal, so log output always goes to a file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	clog "github.com/charmbracelet/log"
)

// Config controls where and how verbosely issuedeck logs.
type Config struct {
	Path    string // empty disables logging
	Level   string // debug, info, warn, error
	Command string // recorded on every line
}

// Logger is the charmbracelet logger plus the file it writes to.
type Logger struct {
	*clog.Logger
	file *os.File
	path string
}

// Init opens cfg.Path for appending and returns a JSON logger writing to it.
// An empty path yields a logger that discards everything.
func Init(cfg Config) (*Logger, error) {
	if strings.TrimSpace(cfg.Path) == "" {
		return Discard(), nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(cfg.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	l := newLogger(f, cfg.Level)
	if cmd := strings.TrimSpace(cfg.Command); cmd != "" {
		l = l.With("pid", os.Getpid(), "command", cmd)
	}
	return &Logger{Logger: l, file: f, path: cfg.Path}, nil
}

// New returns a JSON logger writing to w, mainly for tests.
func New(w io.Writer, level string) *Logger {
	return &Logger{Logger: newLogger(w, level)}
}

// Discard returns a logger that drops all output.
func Discard() *Logger {
	return &Logger{Logger: newLogger(io.Discard, "error")}
}

func newLogger(w io.Writer, level string) *clog.Logger {
	l := clog.NewWithOptions(w, clog.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339Nano,
		Level:           ParseLevel(level),
	})
	l.SetFormatter(clog.JSONFormatter)
	return l
}

// Path returns the log file path, or "" for non-file loggers.
func (l *Logger) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Close releases the log file.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

// ParseLevel converts a string level to clog.Level, defaulting to info.
func ParseLevel(level string) clog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return clog.DebugLevel
	case "info":
		return clog.InfoLevel
	case "warn", "warning":
		return clog.WarnLevel
	case "error":
		return clog.ErrorLevel
	default:
		return clog.InfoLevel
	}
}
