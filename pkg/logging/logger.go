// Package logging provides structured logging for focuskit components.
package logging

import (
	"io"
	"log/slog"
	"os"

	"github.com/odvcencio/focuskit/pkg/dom"
)

// Logger is a structured logger scoped to a focuskit component
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new structured logger writing JSON to stderr
func NewLogger(component string, level slog.Level) *Logger {
	return NewLoggerTo(os.Stderr, component, level)
}

// NewLoggerTo creates a new structured logger writing JSON to w
func NewLoggerTo(w io.Writer, component string, level slog.Level) *Logger {
	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := slog.NewJSONHandler(w, opts)

	logger := slog.New(handler).With(
		slog.String("component", component),
		slog.String("system", "focuskit"),
	)

	return &Logger{Logger: logger}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{Logger: slog.New(slog.DiscardHandler)}
}

// WithInstance returns a logger with a manager-instance field
func (l *Logger) WithInstance(instanceID string) *Logger {
	return &Logger{
		Logger: l.Logger.With(
			slog.String("instance_id", instanceID),
		),
	}
}

// WithElement returns a logger carrying an element's identity
func (l *Logger) WithElement(el *dom.Element) *Logger {
	return &Logger{
		Logger: l.Logger.With(
			slog.String("element", ElementLabel(el)),
		),
	}
}

// ElementLabel renders an element as "tag#id" for log fields, or "none"
// for nil.
func ElementLabel(el *dom.Element) string {
	if el == nil {
		return "none"
	}
	if id := el.ID(); id != "" {
		return el.Tag() + "#" + id
	}
	return el.Tag()
}
