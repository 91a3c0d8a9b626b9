package logging

import (
	"context"
	"log/slog"

	"serifu/internal/services"
)

// contextHandler lifts run annotations stored on the context into every
// record, so call sites only need to pass the context they already hold.
type contextHandler struct {
	inner slog.Handler
}

func newContextHandler(inner slog.Handler) slog.Handler {
	return &contextHandler{inner: inner}
}

func (h *contextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *contextHandler) Handle(ctx context.Context, record slog.Record) error {
	var attrs []slog.Attr
	if stage, ok := services.StageFromContext(ctx); ok {
		attrs = append(attrs, slog.String("stage", stage))
	}
	if index, ok := services.UnitIndexFromContext(ctx); ok {
		attrs = append(attrs, slog.Int("unit_index", index))
	}
	if id, ok := services.SessionIDFromContext(ctx); ok {
		attrs = append(attrs, slog.String("session_id", id))
	}
	if len(attrs) > 0 {
		record = record.Clone()
		record.AddAttrs(attrs...)
	}
	return h.inner.Handle(ctx, record)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{inner: h.inner.WithAttrs(attrs)}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{inner: h.inner.WithGroup(name)}
}
