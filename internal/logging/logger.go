// Package logging configures the charmbracelet/log loggers mdcard writes
// its diagnostics with.
package logging

import (
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
)

//nolint:gochecknoglobals // process-wide default
var defaultLogger atomic.Pointer[log.Logger]

// levels maps accepted level names to log levels. Unknown names mean info.
//
//nolint:gochecknoglobals // lookup table
var levels = map[string]log.Level{
	"debug":   log.DebugLevel,
	"info":    log.InfoLevel,
	"warn":    log.WarnLevel,
	"warning": log.WarnLevel,
	"error":   log.ErrorLevel,
}

// New returns a stderr logger at level.
func New(level string) *log.Logger {
	return NewWithWriter(os.Stderr, level)
}

// NewWithWriter returns a logger at level that writes to w. Timestamps and
// caller info are off; the CLI output is meant for people.
func NewWithWriter(w io.Writer, level string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{})
	logger.SetLevel(parseLevel(level))
	return logger
}

func parseLevel(name string) log.Level {
	if level, ok := levels[strings.ToLower(strings.TrimSpace(name))]; ok {
		return level
	}
	return log.InfoLevel
}

// Default returns the process-wide logger, creating an info-level stderr
// logger on first use.
func Default() *log.Logger {
	if logger := defaultLogger.Load(); logger != nil {
		return logger
	}
	defaultLogger.CompareAndSwap(nil, New("info"))
	return defaultLogger.Load()
}

// SetDefault replaces the process-wide logger.
func SetDefault(logger *log.Logger) {
	defaultLogger.Store(logger)
}

// SetLevel changes the level of the process-wide logger.
func SetLevel(level string) {
	Default().SetLevel(parseLevel(level))
}

// Progress times one operation and logs its end at debug level.
type Progress struct {
	logger *log.Logger
	start  time.Time
}

func StartProgress(logger *log.Logger) *Progress {
	return &Progress{logger: logger, start: time.Now()}
}

// Done logs msg with keyvals and the elapsed time.
func (p *Progress) Done(msg string, keyvals ...any) {
	elapsed := time.Since(p.start).Round(time.Millisecond)
	p.logger.Debug(msg, append(keyvals, FieldElapsed, elapsed)...)
}
