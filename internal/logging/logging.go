// Package logging points the global zerolog logger at a file. The TUI owns
// the terminal, so nothing is ever written to stdout or stderr.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Options controls where and how much is logged.
type Options struct {
	// File is the log file path. Empty means DefaultPath().
	File string

	// Level is a zerolog level name. Empty or invalid means info.
	Level string
}

// Setup configures the global logger and returns a closer for the log file.
func Setup(opts Options) (io.Closer, error) {
	path := opts.File
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	Configure(f, opts.Level)
	return f, nil
}

// Configure sends global log output to w at the named level.
func Configure(w io.Writer, level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.SetGlobalLevel(lvl)
	log.Logger = zerolog.New(w).With().Timestamp().Str("app", "quizly").Logger()
}

// Discard silences the global logger.
func Discard() {
	log.Logger = zerolog.Nop()
}

// DefaultPath returns $XDG_STATE_HOME/quizly/quizly.log, falling back to
// ~/.local/state/quizly/quizly.log.
func DefaultPath() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "quizly", "quizly.log")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "quizly.log"
	}
	return filepath.Join(home, ".local", "state", "quizly", "quizly.log")
}
