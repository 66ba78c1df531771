// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Amir Ossanloo

// Package logger provides a thin wrapper around zerolog.Logger that adds
// convenience constructors and context-aware helpers used throughout the
// node service runtime.
//
// The Logger type embeds zerolog.Logger so all standard zerolog methods
// (Debug, Info, Warn, Error, Fatal, etc.) are available directly on *Logger.
// Application code should pass *Logger by pointer and obtain request-scoped
// loggers via FromContext or FromRequest.
package logger

import (
	"context"
	"io"
	stdlog "log"
	"net/http"
	"os"
	"runtime"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Output formats accepted by [WithFormat].
const (
	FormatJSON   = "json"
	FormatPretty = "pretty"
)

// Logger is a thin wrapper around zerolog.Logger.
// Embedding zerolog.Logger exposes the full zerolog API while allowing the
// application to add helper methods without modifying the upstream type.
type Logger struct {
	zerolog.Logger
}

type options struct {
	level  zerolog.Level
	format string
	out    io.Writer
}

// Option customises [NewLogger].
type Option func(*options)

// WithLevel sets the minimum level by name ("debug", "info", "warn",
// "error"). Unknown names leave the default in place.
func WithLevel(level string) Option {
	return func(o *options) {
		if lvl, err := zerolog.ParseLevel(strings.ToLower(level)); err == nil && level != "" {
			o.level = lvl
		}
	}
}

// WithFormat selects JSON (default) or human readable console output.
func WithFormat(format string) Option {
	return func(o *options) {
		o.format = format
	}
}

// WithOutput redirects log output, os.Stdout by default.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.out = w
		}
	}
}

// NewLogger constructs a *Logger for the given role label (e.g. "server",
// "shutdown").
//
// The logger is configured with:
//   - a "role" field set to role, useful for filtering logs from different
//     components;
//   - a timestamp field added to every log entry;
//   - a "func" caller field that records the fully-qualified function name
//     (instead of the default file:line format) for easier log navigation.
//
// Output is written to os.Stdout in JSON format at Info level unless options
// say otherwise.
func NewLogger(role string, opts ...Option) *Logger {
	o := &options{level: zerolog.InfoLevel, format: FormatJSON, out: os.Stdout}
	for _, opt := range opts {
		opt(o)
	}

	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return runtime.FuncForPC(pc).Name()
	}
	zerolog.CallerFieldName = "func"

	out := o.out
	if o.format == FormatPretty {
		out = zerolog.ConsoleWriter{Out: o.out, TimeFormat: "15:04:05.000"}
	}

	logger := zerolog.New(out).Level(o.level).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()

	return &Logger{logger}
}

// Nop returns a *Logger that discards all log output.
// It is intended for use in tests and other contexts where logging is
// undesirable or would produce noise.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// GetChildLogger returns a new *Logger that inherits all fields of the
// receiver. The child logger can be enriched with additional context fields
// without affecting the parent logger.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{l.With().Logger()}
}

// StdLogger adapts l for APIs that want a *log.Logger, such as
// http.Server.ErrorLog. Every line is logged at Warn level.
func (l *Logger) StdLogger(source string) *stdlog.Logger {
	child := l.With().Str("source", source).Logger()
	return stdlog.New(lineWriter{&child}, "", 0)
}

type lineWriter struct {
	l *zerolog.Logger
}

func (w lineWriter) Write(p []byte) (int, error) {
	w.l.Warn().Msg(strings.TrimSpace(string(p)))
	return len(p), nil
}

// FromRequest extracts the zerolog.Logger stored in the request's context by
// zerolog's log.Ctx helper and returns it as a *Logger.
func FromRequest(r *http.Request) *Logger {
	return &Logger{*log.Ctx(r.Context())}
}

// FromContext extracts the zerolog.Logger stored in ctx by zerolog's log.Ctx
// helper and returns it as a *Logger.
//
// If no logger has been attached to ctx, zerolog returns a disabled logger,
// so this function never returns nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}

// Attached reports whether an enabled logger is stored in ctx.
func Attached(ctx context.Context) bool {
	return log.Ctx(ctx).GetLevel() != zerolog.Disabled
}
