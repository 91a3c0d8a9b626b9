package services

import "context"

type contextKey string

const (
	stageKey     contextKey = "stage"
	unitIndexKey contextKey = "unit_index"
	sessionIDKey contextKey = "session_id"
)

// WithStage annotates context with the pipeline stage name.
func WithStage(ctx context.Context, stage string) context.Context {
	if stage == "" {
		return ctx
	}
	return context.WithValue(ctx, stageKey, stage)
}

// StageFromContext returns the stage name if present.
func StageFromContext(ctx context.Context) (string, bool) {
	if str, ok := ctx.Value(stageKey).(string); ok && str != "" {
		return str, true
	}
	return "", false
}

// WithUnitIndex annotates context with the dialogue unit index.
func WithUnitIndex(ctx context.Context, index int) context.Context {
	return context.WithValue(ctx, unitIndexKey, index)
}

// UnitIndexFromContext extracts the dialogue unit index if present.
func UnitIndexFromContext(ctx context.Context) (int, bool) {
	if v, ok := ctx.Value(unitIndexKey).(int); ok {
		return v, true
	}
	return 0, false
}

// WithSessionID annotates context with a run correlation identifier.
func WithSessionID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, sessionIDKey, id)
}

// SessionIDFromContext extracts the run correlation identifier if present.
func SessionIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(sessionIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
