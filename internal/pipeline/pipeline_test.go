package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofrs/flock"

	"serifu/internal/config"
	"serifu/internal/script"
	"serifu/internal/services"
	"serifu/internal/synth"
	"serifu/internal/testsupport"
)

func requireSh(t *testing.T) {
	t.Helper()
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("requires /bin/sh")
	}
}

func writePresets(t *testing.T, cfg *config.Config, template string) {
	t.Helper()
	body := `
[[preset]]
speaker = "霊夢"
command_template = "` + template + `"

[[preset]]
speaker = "魔理沙"
command_template = "` + template + `"
`
	if err := os.WriteFile(cfg.Paths.PresetFile, []byte(body), 0o644); err != nil {
		t.Fatalf("write presets: %v", err)
	}
}

func writeScript(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "script.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

func TestRunEndToEnd(t *testing.T) {
	requireSh(t)
	cfg := testsupport.NewConfig(t)
	stub := testsupport.StubSynthScript(t, t.TempDir(), 44100, 44100)
	writePresets(t, cfg, stub+" {output}")

	scriptPath := writeScript(t, t.TempDir(), "-挨拶\n霊夢　こんにちは\n魔理沙　やあ\n")

	result, err := New(cfg, nil).Run(context.Background(), scriptPath)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.SessionID == "" {
		t.Fatal("expected a session id")
	}
	if len(result.Units) != 2 || len(result.Artifacts) != 2 {
		t.Fatalf("expected 2 units and artifacts, got %d and %d", len(result.Units), len(result.Artifacts))
	}

	clips := result.Timeline.Clips
	if clips[0].StartOffset != 0 {
		t.Fatalf("first clip must start at zero, got %v", clips[0].StartOffset)
	}
	if clips[1].StartOffset != clips[0].Duration {
		t.Fatalf("second clip must start at first clip's end, got %v", clips[1].StartOffset)
	}

	data, err := os.ReadFile(result.DocumentPath)
	if err != nil {
		t.Fatalf("read document: %v", err)
	}
	if !strings.Contains(string(data), "リンクスタイル霊夢") {
		t.Fatal("expected speaker style in document")
	}
	for _, artifact := range result.Artifacts {
		if _, err := os.Stat(artifact.Path); err != nil {
			t.Fatalf("artifact missing: %v", err)
		}
	}
}

func TestParseMalformedLine(t *testing.T) {
	_, err := Parse("ふーん\n")
	if err == nil {
		t.Fatal("expected parse failure")
	}
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation sentinel, got %v", err)
	}
	var parseErr *script.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if parseErr.Line != 1 {
		t.Fatalf("expected line 1, got %d", parseErr.Line)
	}
	if !services.IsConfigError(err) {
		t.Fatal("parse failures need user remediation")
	}
}

func TestRunSynthesisUnknownSpeakerHaltsBeforeSpawn(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	writePresets(t, cfg, "synth {output} {text}")

	p := New(cfg, nil)
	presets, err := p.LoadPresets()
	if err != nil {
		t.Fatalf("load presets: %v", err)
	}

	units := []script.Unit{
		{Speaker: "霊夢", Text: "あ", Index: 0},
		{Speaker: "ナレーション", Text: "い", Index: 1},
	}
	_, err = p.RunSynthesis(context.Background(), units, presets)
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration sentinel, got %v", err)
	}

	entries, globErr := filepath.Glob(filepath.Join(cfg.Paths.AudioDir, "*.wav"))
	if globErr != nil {
		t.Fatalf("glob: %v", globErr)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no artifacts before spawn, found %v", entries)
	}
}

func TestRunSynthesisCommandFailure(t *testing.T) {
	requireSh(t)
	cfg := testsupport.NewConfig(t)
	stub := testsupport.FailingSynthScript(t, t.TempDir())
	writePresets(t, cfg, stub+" {output}")

	p := New(cfg, nil)
	presets, err := p.LoadPresets()
	if err != nil {
		t.Fatalf("load presets: %v", err)
	}

	units := []script.Unit{{Speaker: "霊夢", Text: "こんにちは", Index: 0}}
	_, err = p.RunSynthesis(context.Background(), units, presets)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool sentinel, got %v", err)
	}
	var cmdErr *synth.CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("expected CommandError, got %v", err)
	}
	if !strings.Contains(cmdErr.Stderr, "voice bank not found") {
		t.Fatalf("expected captured stderr, got %q", cmdErr.Stderr)
	}
}

func TestRunSynthesisLockExclusion(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	writePresets(t, cfg, "synth {output} {text}")
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}

	held := flock.New(filepath.Join(cfg.Paths.OutputDir, lockFileName))
	locked, err := held.TryLock()
	if err != nil || !locked {
		t.Fatalf("pre-acquire lock: locked=%v err=%v", locked, err)
	}
	defer held.Unlock()

	p := New(cfg, nil)
	presets, err := p.LoadPresets()
	if err != nil {
		t.Fatalf("load presets: %v", err)
	}
	units := []script.Unit{{Speaker: "霊夢", Text: "あ", Index: 0}}
	_, err = p.RunSynthesis(context.Background(), units, presets)
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected lock contention error, got %v", err)
	}
	if !strings.Contains(err.Error(), "another run") {
		t.Fatalf("expected lock message, got %q", err.Error())
	}
}

func TestLoadPresetsMissingFile(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	_, err := New(cfg, nil).LoadPresets()
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration sentinel, got %v", err)
	}
}

func TestBuildAndSerializeSectionGap(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithSectionGap(1.5))
	p := New(cfg, nil)

	units := []script.Unit{
		{Section: "intro", Speaker: "霊夢", Text: "あ", Index: 0},
		{Section: "main", Speaker: "魔理沙", Text: "い", Index: 1},
	}
	artifacts := []synth.Artifact{
		{Index: 0, Speaker: "霊夢", Path: filepath.Join(cfg.Paths.AudioDir, "0001_霊夢.wav"), Duration: time.Second},
		{Index: 1, Speaker: "魔理沙", Path: filepath.Join(cfg.Paths.AudioDir, "0002_魔理沙.wav"), Duration: time.Second},
	}

	tl, data, err := p.BuildAndSerialize(units, artifacts)
	if err != nil {
		t.Fatalf("build and serialize: %v", err)
	}
	if tl.Clips[1].StartOffset != 2500*time.Millisecond {
		t.Fatalf("expected section gap applied, got %v", tl.Clips[1].StartOffset)
	}
	if len(data) == 0 {
		t.Fatal("expected serialized document")
	}
}

func TestBuildAndSerializeMismatchIsInternal(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	p := New(cfg, nil)

	units := []script.Unit{{Speaker: "霊夢", Text: "あ", Index: 0}}
	_, _, err := p.BuildAndSerialize(units, nil)
	if !errors.Is(err, services.ErrInternal) {
		t.Fatalf("expected internal sentinel, got %v", err)
	}
}

func TestRunEndToEndWithCache(t *testing.T) {
	requireSh(t)
	cfg := testsupport.NewConfig(t, testsupport.WithCache())
	stub := testsupport.StubSynthScript(t, t.TempDir(), 44100, 22050)
	writePresets(t, cfg, stub+" {output}")

	scriptPath := writeScript(t, t.TempDir(), "霊夢　こんにちは\n")

	p := New(cfg, nil)
	first, err := p.Run(context.Background(), scriptPath)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := p.Run(context.Background(), scriptPath)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if first.Timeline.Duration() != second.Timeline.Duration() {
		t.Fatalf("cached run changed timing: %v vs %v", first.Timeline.Duration(), second.Timeline.Duration())
	}
}
