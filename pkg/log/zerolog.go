package log

import (
	"context"
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// DetailSuffix is appended to the key of an error field when the error chain
// contains a zerolog.LogObjectMarshaler; the marshaled object is logged under
// the suffixed key next to the error string.
const DetailSuffix = "_detail"

type zerologLogger struct {
	l zerolog.Logger
}

// NewZerologLogger returns a Logger backed by zerolog. With console set the
// output is human readable (no color) instead of JSON lines.
func NewZerologLogger(w io.Writer, level Level, console bool) Logger {
	if console {
		w = zerolog.ConsoleWriter{Out: w, NoColor: true}
	}
	zl := zerolog.New(w).Level(zerologLevel(level)).With().Timestamp().Logger()
	return &zerologLogger{l: zl}
}

func zerologLevel(level Level) zerolog.Level {
	switch {
	case level <= LevelDebug:
		return zerolog.DebugLevel
	case level <= LevelInfo:
		return zerolog.InfoLevel
	case level <= LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}

func (z *zerologLogger) Debug(msg string, fields ...any) { emit(z.l.Debug(), msg, fields) }
func (z *zerologLogger) Info(msg string, fields ...any)  { emit(z.l.Info(), msg, fields) }
func (z *zerologLogger) Warn(msg string, fields ...any)  { emit(z.l.Warn(), msg, fields) }
func (z *zerologLogger) Error(msg string, fields ...any) { emit(z.l.Error(), msg, fields) }

func (z *zerologLogger) With(fields ...any) Logger {
	ctx := z.l.With()
	forEachField(fields, func(key string, value any) {
		if err, ok := value.(error); ok {
			ctx = ctx.AnErr(key, err)
			return
		}
		ctx = ctx.Interface(key, value)
	})
	return &zerologLogger{l: ctx.Logger()}
}

func (z *zerologLogger) Enabled(_ context.Context, level Level) bool {
	return zerologLevel(level) >= z.l.GetLevel()
}

// emit is a no-op for a nil event, which zerolog returns for disabled levels.
func emit(e *zerolog.Event, msg string, fields []any) {
	if e == nil {
		return
	}
	forEachField(fields, func(key string, value any) {
		switch v := value.(type) {
		case error:
			e = e.AnErr(key, v)
			var m zerolog.LogObjectMarshaler
			if errors.As(v, &m) {
				e = e.Object(key+DetailSuffix, m)
			}
		case string:
			e = e.Str(key, v)
		case int:
			e = e.Int(key, v)
		case float64:
			e = e.Float64(key, v)
		case bool:
			e = e.Bool(key, v)
		default:
			e = e.Interface(key, v)
		}
	})
	e.Msg(msg)
}

// forEachField walks slog-style alternating key/value pairs. A trailing key
// without a value is reported under "!BADKEY" as slog does.
func forEachField(fields []any, fn func(key string, value any)) {
	for i := 0; i < len(fields); i += 2 {
		if i+1 >= len(fields) {
			fn("!BADKEY", fields[i])
			return
		}
		fn(fmt.Sprint(fields[i]), fields[i+1])
	}
}
