// Package logging defines the structured-logging interface used across
// gophauth and its two backends: log/slog and zap.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key–value pairs, e.g.:
//
//	log.Info(ctx, "session restored", "user_id", u.ID)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)
	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}

// Backend names accepted by New.
const (
	BackendSlog = "slog"
	BackendZap  = "zap"
)

// New builds a Logger for the given backend writing to w (os.Stderr when nil).
// format is "text" or "json"; an empty format means "text".
func New(backend, format string, w io.Writer) (Logger, error) {
	if w == nil {
		w = os.Stderr
	}
	switch backend {
	case "", BackendSlog:
		return NewSlogLogger(SetupSlog(format, w)), nil
	case BackendZap:
		return NewZapLogger(SetupZap(format, w)), nil
	default:
		return nil, fmt.Errorf("unknown log backend %q", backend)
	}
}

// SetupSlog creates a debug-level slog.Logger with a text or JSON handler.
func SetupSlog(format string, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelDebug}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Redacted replaces the value of any key in secretKeys.
const Redacted = "[REDACTED]"

var secretKeys = map[string]struct{}{
	"password":         {},
	"new_password":     {},
	"current_password": {},
	"token":            {},
	"otp":              {},
	"code":             {},
}

// redact returns args with the values of secret keys masked. args is not
// modified; a copy is made only when something needs masking.
func redact(args []any) []any {
	var out []any
	for i := 0; i+1 < len(args); i += 2 {
		k, ok := args[i].(string)
		if !ok {
			continue
		}
		if _, secret := secretKeys[strings.ToLower(k)]; !secret {
			continue
		}
		if out == nil {
			out = append([]any(nil), args...)
		}
		out[i+1] = Redacted
	}
	if out == nil {
		return args
	}
	return out
}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return NewSlogLogger(SetupSlog("text", io.Discard))
}
