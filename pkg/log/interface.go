// Package log provides the structured logging layer used around the estimator.
//
// The estimator itself never logs. Binaries and examples log estimator calls
// through the Logger interface, backed either by log/slog (Cloud Logging JSON
// layout, see SetupLogger) or by zerolog (see NewZerologLogger).
//
//	logger := log.NewZerologLogger(os.Stderr, log.LevelInfo, false).With(
//	    log.ModelNameKey, "OLS",
//	)
//	logger.Info("fit completed",
//	    log.OperationKey, log.OperationFit,
//	    log.SamplesKey, 1000,
//	    log.FeaturesKey, 5,
//	)
package log

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
)

// Logger is a structured logger with slog-style alternating key/value fields.
type Logger interface {
	Debug(msg string, fields ...any)
	Info(msg string, fields ...any)
	Warn(msg string, fields ...any)

	// Error logs at error level. Pass the error itself as a field, usually
	// under ErrAttrKey, so that backends can attach its stack trace or
	// structured detail.
	Error(msg string, fields ...any)

	// With returns a logger that adds fields to every record.
	With(fields ...any) Logger

	Enabled(ctx context.Context, level Level) bool
}

// Level mirrors slog.Level values so it converts without a lookup table.
type Level int

const (
	LevelDebug Level = -4
	LevelInfo  Level = 0
	LevelWarn  Level = 4
	LevelError Level = 8
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts "debug", "info", "warn" or "error" (any case) to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, errors.Newf("invalid log level: %q", s)
	}
}
