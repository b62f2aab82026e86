// Package logging defines a minimal structured-logging interface used across
// the project, with slog and zap implementations.
package logging

import (
	"context"
	"fmt"
	"log/slog"
	"os"
)

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key–value pairs, e.g.:
//
//	log.Info(ctx, "login", "account_id", id)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}

// Supported values for the server's log format setting.
const (
	FormatSlog = "slog"
	FormatZap  = "zap"
)

// New builds the process logger for the given format, writing JSON to stdout.
func New(format string) (Logger, error) {
	switch format {
	case "", FormatSlog:
		return NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil))), nil
	case FormatZap:
		return NewProductionZapLogger()
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}
