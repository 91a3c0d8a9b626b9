package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"serifu/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrExternalTool, "synthesize", "invoke", "failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"synthesize", "invoke", "failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapNilMarkerDefaultsToInternal(t *testing.T) {
	err := services.Wrap(nil, "serialize", "render", "missing style", nil)
	if !errors.Is(err, services.ErrInternal) {
		t.Fatalf("expected internal marker, got %v", err)
	}
}

func TestIsConfigError(t *testing.T) {
	cfgErr := services.Wrap(services.ErrConfiguration, "presets", "load", "bad template", nil)
	if !services.IsConfigError(cfgErr) {
		t.Fatalf("expected config error classification for %v", cfgErr)
	}
	toolErr := services.Wrap(services.ErrExternalTool, "synthesize", "invoke", "exit 1", nil)
	if services.IsConfigError(toolErr) {
		t.Fatalf("did not expect config classification for %v", toolErr)
	}
	if services.IsConfigError(nil) {
		t.Fatal("nil error should not classify as config error")
	}
}

func TestContextAnnotations(t *testing.T) {
	ctx := services.WithStage(context.Background(), "synthesize")
	ctx = services.WithUnitIndex(ctx, 4)
	ctx = services.WithSessionID(ctx, "abc123")

	if stage, ok := services.StageFromContext(ctx); !ok || stage != "synthesize" {
		t.Fatalf("unexpected stage: %q (%v)", stage, ok)
	}
	if idx, ok := services.UnitIndexFromContext(ctx); !ok || idx != 4 {
		t.Fatalf("unexpected unit index: %d (%v)", idx, ok)
	}
	if id, ok := services.SessionIDFromContext(ctx); !ok || id != "abc123" {
		t.Fatalf("unexpected session id: %q (%v)", id, ok)
	}
}
