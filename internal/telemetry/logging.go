package telemetry

import (
	"context"
	"io"
	"log/slog"
)

// NewLogger returns a JSON slog logger that stamps every record produced
// inside a traced context with trace_id and span_id.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	base := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(&correlatedHandler{base: base})
}

// ParseLevel maps a config string onto a slog level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type correlatedHandler struct {
	base slog.Handler
}

func (h *correlatedHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.base.Enabled(ctx, level)
}

func (h *correlatedHandler) Handle(ctx context.Context, r slog.Record) error {
	if traceID := TraceID(ctx); traceID != "" {
		r.AddAttrs(slog.String("trace_id", traceID))
	}
	if spanID := SpanID(ctx); spanID != "" {
		r.AddAttrs(slog.String("span_id", spanID))
	}
	return h.base.Handle(ctx, r)
}

func (h *correlatedHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &correlatedHandler{base: h.base.WithAttrs(attrs)}
}

func (h *correlatedHandler) WithGroup(name string) slog.Handler {
	return &correlatedHandler{base: h.base.WithGroup(name)}
}
