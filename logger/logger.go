// Package logger provides structured logging for plantpipe.
// It wraps a process-wide zerolog logger; data diagnostics do not go
// through here, they are written to the diagnostics stream.
package logger

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	defaultLogger zerolog.Logger
	mu            sync.RWMutex
)

func init() {
	Init(Options{})
}

// Options configures the logger.
type Options struct {
	Verbose bool      // Info level: per-file progress
	Debug   bool      // Debug level: settings and skipped pages
	Quiet   bool      // Only show errors
	JSON    bool      // Output as JSON lines
	Output  io.Writer // Output destination (default: stderr)
}

// Init initializes the logger with the specified options.
func Init(opts Options) {
	level := zerolog.WarnLevel
	switch {
	case opts.Quiet:
		level = zerolog.ErrorLevel
	case opts.Debug:
		level = zerolog.DebugLevel
	case opts.Verbose:
		level = zerolog.InfoLevel
	}

	output := opts.Output
	if output == nil {
		output = os.Stderr
	}
	if !opts.JSON {
		output = zerolog.ConsoleWriter{Out: output, TimeFormat: time.RFC3339, NoColor: true}
	}

	l := zerolog.New(output).Level(level).With().Timestamp().Logger()

	mu.Lock()
	defaultLogger = l
	mu.Unlock()
}

func get() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := defaultLogger
	return &l
}

// Debug starts a debug level event.
func Debug() *zerolog.Event { return get().Debug() }

// Info starts an info level event.
func Info() *zerolog.Event { return get().Info() }

// Warn starts a warn level event.
func Warn() *zerolog.Event { return get().Warn() }

// With returns a child logger context carrying extra fields.
func With() zerolog.Context { return get().With() }
