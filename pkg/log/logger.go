package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"time"
)

// SetupLogger installs a Cloud Logging formatted JSON handler on stdout as the
// slog default. It panics on an unknown level.
func SetupLogger(loglevel string) {
	slog.SetDefault(slog.New(newCloudLoggingHandler(os.Stdout, ToLogLevel(loglevel))))
}

// NewSlogLogger returns a Logger writing Cloud Logging formatted JSON to w.
func NewSlogLogger(w io.Writer, level Level) Logger {
	return &slogLogger{l: slog.New(newCloudLoggingHandler(w, slog.Level(level)))}
}

// FromSlog adapts an existing *slog.Logger.
func FromSlog(l *slog.Logger) Logger {
	return &slogLogger{l: l}
}

func newCloudLoggingHandler(w io.Writer, level slog.Level) slog.Handler {
	ops := slog.HandlerOptions{
		AddSource: true,
		Level:     level,
		// Replace attributes to convert to CloudLogging format.
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			switch attr.Key {
			case slog.LevelKey:
				attr = slog.Attr{
					Key:   "severity",
					Value: attr.Value,
				}
			case slog.MessageKey:
				attr = slog.Attr{
					Key:   "message",
					Value: attr.Value,
				}
			case slog.SourceKey:
				attr = slog.Attr{
					Key:   "logging.googleapis.com/sourceLocation",
					Value: attr.Value,
				}
			}
			return attr
		},
	}
	return WrapByErrFmtHandler(slog.NewJSONHandler(w, &ops))
}

func ToLogLevel(level string) slog.Level {
	l, err := ParseLevel(level)
	if err != nil {
		panic(fmt.Sprintf("invalid log level :%s", level))
	}
	return slog.Level(l)
}

const (
	ErrAttrKey        = "error"
	StacktraceAttrKey = "stacktrace"
)

// ErrAttr is a wrapper to pass err to slog.
func ErrAttr(err error) slog.Attr {
	return slog.Any(ErrAttrKey, err)
}

type slogLogger struct {
	l *slog.Logger
}

func (s *slogLogger) Debug(msg string, fields ...any) { s.log(slog.LevelDebug, msg, fields) }
func (s *slogLogger) Info(msg string, fields ...any)  { s.log(slog.LevelInfo, msg, fields) }
func (s *slogLogger) Warn(msg string, fields ...any)  { s.log(slog.LevelWarn, msg, fields) }
func (s *slogLogger) Error(msg string, fields ...any) { s.log(slog.LevelError, msg, fields) }

// log builds the record itself so that the source attribute points at the
// caller of Debug/Info/Warn/Error rather than at this file.
func (s *slogLogger) log(level slog.Level, msg string, fields []any) {
	ctx := context.Background()
	if !s.l.Enabled(ctx, level) {
		return
	}
	var pcs [1]uintptr
	runtime.Callers(3, pcs[:])
	r := slog.NewRecord(time.Now(), level, msg, pcs[0])
	r.Add(fields...)
	_ = s.l.Handler().Handle(ctx, r)
}

func (s *slogLogger) With(fields ...any) Logger {
	return &slogLogger{l: s.l.With(fields...)}
}

func (s *slogLogger) Enabled(ctx context.Context, level Level) bool {
	return s.l.Enabled(ctx, slog.Level(level))
}
