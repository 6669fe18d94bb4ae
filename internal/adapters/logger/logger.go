// Package logger implements ports.Logger on log/slog.
package logger

import (
	"io"
	"log/slog"
	"os"
	"sync"

	"go.trai.ch/bundler/internal/core/ports"
)

// Format selects how log records are rendered.
type Format uint8

const (
	// FormatPretty renders colored single-line records for terminals.
	FormatPretty Format = iota
	// FormatJSON renders one JSON object per record.
	FormatJSON
)

var _ ports.Logger = (*Logger)(nil)

// Logger implements ports.Logger using log/slog.
type Logger struct {
	mu     sync.RWMutex
	logger *slog.Logger
	format Format
	output io.Writer
}

// New creates a pretty Logger writing to stderr.
func New() ports.Logger {
	return NewWithWriter(os.Stderr, FormatPretty)
}

// NewWithWriter creates a Logger writing to w in the given format.
func NewWithWriter(w io.Writer, format Format) *Logger {
	l := &Logger{}
	l.reset(w, format)
	return l
}

// SetOutput redirects the logger, keeping its format. A nil w selects stderr.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.reset(w, l.format)
}

// SetFormat switches the record format, keeping the output.
func (l *Logger) SetFormat(format Format) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.reset(l.output, format)
}

// reset rebuilds the slog handler. l.mu must be held or l unshared.
func (l *Logger) reset(w io.Writer, format Format) {
	if w == nil {
		w = os.Stderr
	}
	l.output = w
	l.format = format

	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	var handler slog.Handler
	if format == FormatJSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = NewPrettyHandler(w, opts)
	}
	l.logger = slog.New(handler)
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Error logs err. Pretty output lists the wrapped chain as causes.
func (l *Logger) Error(err error) {
	if err == nil {
		return
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.format == FormatJSON {
		l.logger.Error("operation failed", "error", err.Error())
		return
	}

	l.logger.Error(formatErrorEntries(collectErrorEntries(err)))
}
