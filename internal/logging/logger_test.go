package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"serifu/internal/services"
)

func TestNewConsoleLoggerWritesAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "debug", Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Info("synthesis complete", String("speaker", "霊夢"), Int("unit", 3))

	out := buf.String()
	for _, fragment := range []string{"INFO", "synthesis complete", "speaker=霊夢", "unit=3"} {
		if !strings.Contains(out, fragment) {
			t.Fatalf("expected %q in output %q", fragment, out)
		}
	}
}

func TestNewConsoleLoggerQuotesSpacedValues(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Info("msg", String("text", "hello world"))
	if !strings.Contains(buf.String(), `text="hello world"`) {
		t.Fatalf("expected quoted value in %q", buf.String())
	}
}

func TestNewLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "warn", Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Info("quiet")
	logger.Warn("loud")
	out := buf.String()
	if strings.Contains(out, "quiet") {
		t.Fatalf("info should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "loud") {
		t.Fatalf("warn should pass: %q", out)
	}
}

func TestNewJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Info("event", String("stage", "parse"))
	out := buf.String()
	if !strings.Contains(out, `"stage":"parse"`) {
		t.Fatalf("expected json attr in %q", out)
	}
}

func TestContextAnnotationsReachRecords(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}

	ctx := services.WithSessionID(context.Background(), "run-42")
	ctx = services.WithStage(ctx, "synthesis")
	ctx = services.WithUnitIndex(ctx, 2)
	logger.InfoContext(ctx, "synthesized unit")

	out := buf.String()
	for _, fragment := range []string{`"stage":"synthesis"`, `"unit_index":2`, `"session_id":"run-42"`} {
		if !strings.Contains(out, fragment) {
			t.Fatalf("expected %q in output %q", fragment, out)
		}
	}
}

func TestContextAnnotationsAbsentWithoutValues(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.InfoContext(context.Background(), "plain message")

	out := buf.String()
	for _, key := range []string{"stage=", "unit_index=", "session_id="} {
		if strings.Contains(out, key) {
			t.Fatalf("unexpected %q in output %q", key, out)
		}
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestComponentLoggerNilBase(t *testing.T) {
	logger := NewComponentLogger(nil, "timeline")
	// Must not panic and must accept writes.
	logger.Info("noop")
}
