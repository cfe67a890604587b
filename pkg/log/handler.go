package log

import (
	"context"
	"log/slog"

	olserrors "github.com/YuminosukeSato/olsgo/pkg/errors"
	"github.com/cockroachdb/errors"
)

// ErrFmtHandler enriches records that carry an error under ErrAttrKey.
// It adds StacktraceAttrKey from the first cockroachdb/errors stack found in
// the chain and, for the estimator error kinds, ErrorCodeKey and SuggestionKey
// unless the caller already set them.
type ErrFmtHandler struct {
	next slog.Handler
}

// WrapByErrFmtHandler wraps handler with an ErrFmtHandler.
func WrapByErrFmtHandler(handler slog.Handler) slog.Handler {
	return &ErrFmtHandler{next: handler}
}

func (h *ErrFmtHandler) Enabled(ctx context.Context, l slog.Level) bool {
	return h.next.Enabled(ctx, l)
}

func (h *ErrFmtHandler) Handle(ctx context.Context, r slog.Record) error {
	var (
		err           error
		hasCode       bool
		hasSuggestion bool
	)
	r.Attrs(func(attr slog.Attr) bool {
		switch attr.Key {
		case ErrAttrKey:
			if e, ok := attr.Value.Any().(error); ok {
				err = e
			}
		case ErrorCodeKey:
			hasCode = true
		case SuggestionKey:
			hasSuggestion = true
		}
		return true
	})
	if err == nil {
		return h.next.Handle(ctx, r)
	}

	extra := errorAttrs(err, hasCode, hasSuggestion)
	if len(extra) == 0 {
		return h.next.Handle(ctx, r)
	}
	r = r.Clone()
	r.AddAttrs(extra...)
	return h.next.Handle(ctx, r)
}

func (h *ErrFmtHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ErrFmtHandler{next: h.next.WithAttrs(attrs)}
}

func (h *ErrFmtHandler) WithGroup(g string) slog.Handler {
	return &ErrFmtHandler{next: h.next.WithGroup(g)}
}

func errorAttrs(err error, hasCode, hasSuggestion bool) []slog.Attr {
	attrs := make([]slog.Attr, 0, 3)
	if st := extractStacktrace(err); st != "" {
		attrs = append(attrs, slog.String(StacktraceAttrKey, st))
	}

	kind := olserrors.KindOf(err)
	if kind == olserrors.KindUnknown {
		return attrs
	}
	if !hasCode {
		attrs = append(attrs, slog.String(ErrorCodeKey, kind.Code()))
	}
	if !hasSuggestion {
		attrs = append(attrs, slog.String(SuggestionKey, olserrors.Suggestion(err)))
	}
	return attrs
}

// extractStacktrace returns the outermost stack recorded in err's chain.
// GetSafeDetails only reports the layer it is given.
func extractStacktrace(err error) string {
	for e := err; e != nil; e = errors.UnwrapOnce(e) {
		details := errors.GetSafeDetails(e).SafeDetails
		if len(details) > 0 && details[0] != "" {
			return details[0]
		}
	}
	return ""
}
