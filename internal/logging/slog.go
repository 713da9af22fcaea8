package logging

import (
	"context"
	"io"
	"log/slog"
)

// SlogLogger is the default backend. Every call goes through the
// *Context variants so handlers can pick values off ctx.
type SlogLogger struct {
	inner *slog.Logger
}

// NewSlogLogger wraps an existing *slog.Logger; the handler decides the
// output format.
func NewSlogLogger(inner *slog.Logger) *SlogLogger {
	return &SlogLogger{inner: inner}
}

// NewNop discards all output. Used by tests and wherever a Logger is
// required but nothing should be written.
func NewNop() *SlogLogger {
	return NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func (s *SlogLogger) Debug(ctx context.Context, msg string, args ...any) {
	s.inner.DebugContext(ctx, msg, args...)
}

func (s *SlogLogger) Info(ctx context.Context, msg string, args ...any) {
	s.inner.InfoContext(ctx, msg, args...)
}

func (s *SlogLogger) Warn(ctx context.Context, msg string, args ...any) {
	s.inner.WarnContext(ctx, msg, args...)
}

func (s *SlogLogger) Error(ctx context.Context, msg string, args ...any) {
	s.inner.ErrorContext(ctx, msg, args...)
}

// With binds args to every record of the returned logger, e.g. a module
// name set once in a constructor.
func (s *SlogLogger) With(args ...any) Logger {
	return NewSlogLogger(s.inner.With(args...))
}
