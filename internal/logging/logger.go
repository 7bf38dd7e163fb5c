// Package logging configures jiphy's charmbracelet/log loggers: plain
// stderr output, no timestamps, and a level raised to debug by --debug.
package logging

import (
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

// Level names accepted by New and SetLevel. Anything else means info.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

//nolint:gochecknoglobals // Process-wide default, swapped by SetDefault.
var defaultLogger atomic.Pointer[log.Logger]

// New returns a logger at level writing to stderr.
func New(level string) *log.Logger {
	return NewWithWriter(os.Stderr, level)
}

// NewWithWriter returns a logger at level writing to w.
func NewWithWriter(w io.Writer, level string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: false,
		ReportCaller:    false,
		Level:           ParseLevel(level),
	})
	return logger
}

// ParseLevel maps a level name to a log.Level, case-insensitively.
// "warning" is accepted as an alias; unknown names give info.
func ParseLevel(level string) log.Level {
	name := strings.ToLower(strings.TrimSpace(level))
	if name == "warning" {
		name = LevelWarn
	}
	switch name {
	case LevelDebug, LevelInfo, LevelWarn, LevelError:
		parsed, err := log.ParseLevel(name)
		if err == nil {
			return parsed
		}
	}
	return log.InfoLevel
}

// Default returns the process-wide logger, creating an info-level stderr
// logger on first use.
func Default() *log.Logger {
	if logger := defaultLogger.Load(); logger != nil {
		return logger
	}
	defaultLogger.CompareAndSwap(nil, New(LevelInfo))
	return defaultLogger.Load()
}

// SetDefault replaces the process-wide logger.
func SetDefault(logger *log.Logger) {
	defaultLogger.Store(logger)
}

// SetLevel changes the level of the process-wide logger.
func SetLevel(level string) {
	Default().SetLevel(ParseLevel(level))
}
