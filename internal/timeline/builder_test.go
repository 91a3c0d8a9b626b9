package timeline

import (
	"strings"
	"testing"
	"time"

	"serifu/internal/script"
	"serifu/internal/synth"
)

func makeUnits(entries ...[3]string) []script.Unit {
	units := make([]script.Unit, len(entries))
	for i, e := range entries {
		units[i] = script.Unit{Section: e[0], Speaker: e[1], Text: e[2], Index: i}
	}
	return units
}

func makeArtifacts(durations ...time.Duration) []synth.Artifact {
	artifacts := make([]synth.Artifact, len(durations))
	for i, d := range durations {
		artifacts[i] = synth.Artifact{
			Index:      i,
			Path:       "/tmp/audio/clip.wav",
			Samples:    int64(d / time.Second * 44100),
			SampleRate: 44100,
			Duration:   d,
		}
	}
	return artifacts
}

func defaultOptions() Options {
	return Options{
		ProjectName:  "test",
		SequenceName: "test",
		FrameRate:    30,
		SampleRate:   44100,
	}
}

func TestBuildCumulativeOffsets(t *testing.T) {
	units := makeUnits(
		[3]string{"untitled", "霊夢", "おはよう"},
		[3]string{"untitled", "魔理沙", "おう、おはよう"},
	)
	artifacts := makeArtifacts(1500*time.Millisecond, 2*time.Second)

	tl, err := Build(units, artifacts, defaultOptions())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(tl.Clips) != 2 {
		t.Fatalf("expected 2 clips, got %d", len(tl.Clips))
	}
	if tl.Clips[0].StartOffset != 0 {
		t.Fatalf("first clip must start at zero, got %v", tl.Clips[0].StartOffset)
	}
	if tl.Clips[1].StartOffset != 1500*time.Millisecond {
		t.Fatalf("second clip must start at first clip's duration, got %v", tl.Clips[1].StartOffset)
	}
	if tl.Duration() != 3500*time.Millisecond {
		t.Fatalf("unexpected total duration: %v", tl.Duration())
	}
}

func TestBuildOffsetInvariantHolds(t *testing.T) {
	units := makeUnits(
		[3]string{"a", "霊夢", "一"},
		[3]string{"a", "魔理沙", "二"},
		[3]string{"a", "霊夢", "三"},
		[3]string{"a", "ゆっくり", "四"},
		[3]string{"a", "魔理沙", "五"},
	)
	artifacts := makeArtifacts(
		731*time.Millisecond,
		1209*time.Millisecond,
		88*time.Millisecond,
		3*time.Second,
		457*time.Millisecond,
	)

	tl, err := Build(units, artifacts, defaultOptions())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	for i := 1; i < len(tl.Clips); i++ {
		prev := tl.Clips[i-1]
		if tl.Clips[i].StartOffset != prev.End() {
			t.Fatalf("clip %d starts at %v, previous ends at %v", i, tl.Clips[i].StartOffset, prev.End())
		}
	}
}

func TestBuildStyleMapping(t *testing.T) {
	units := makeUnits(
		[3]string{"untitled", "霊夢", "あ"},
		[3]string{"untitled", "魔理沙", "い"},
		[3]string{"untitled", "ゆっくり", "う"},
	)
	artifacts := makeArtifacts(time.Second, time.Second, time.Second)

	tl, err := Build(units, artifacts, defaultOptions())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	want := []Style{StyleReimu, StyleMarisa, StyleDefault}
	for i, clip := range tl.Clips {
		if clip.Style != want[i] {
			t.Fatalf("clip %d: expected style %v, got %v", i, want[i], clip.Style)
		}
	}
}

func TestBuildCaptionIsUnitTextVerbatim(t *testing.T) {
	units := makeUnits([3]string{"untitled", "霊夢", "こんにちは 世界"})
	artifacts := makeArtifacts(time.Second)

	tl, err := Build(units, artifacts, defaultOptions())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if tl.Clips[0].CaptionText != "こんにちは 世界" {
		t.Fatalf("caption must be unit text verbatim, got %q", tl.Clips[0].CaptionText)
	}
	if strings.Contains(tl.Clips[0].CaptionText, "霊夢") {
		t.Fatal("caption must not include speaker name")
	}
}

func TestBuildSectionGapOnLabelChange(t *testing.T) {
	units := makeUnits(
		[3]string{"intro", "霊夢", "あ"},
		[3]string{"intro", "魔理沙", "い"},
		[3]string{"main", "霊夢", "う"},
	)
	artifacts := makeArtifacts(time.Second, time.Second, time.Second)

	opts := defaultOptions()
	opts.SectionGap = 500 * time.Millisecond
	tl, err := Build(units, artifacts, opts)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if tl.Clips[1].StartOffset != time.Second {
		t.Fatalf("same-section clip must stay back-to-back, got %v", tl.Clips[1].StartOffset)
	}
	if tl.Clips[2].StartOffset != 2500*time.Millisecond {
		t.Fatalf("section change must insert gap, got %v", tl.Clips[2].StartOffset)
	}
}

func TestBuildNoGapWhenSectionNameRepeats(t *testing.T) {
	// A marker restating the current section's name does not change the
	// label, so no gap appears.
	units := makeUnits(
		[3]string{"intro", "霊夢", "あ"},
		[3]string{"intro", "魔理沙", "い"},
	)
	artifacts := makeArtifacts(time.Second, time.Second)

	opts := defaultOptions()
	opts.SectionGap = 2 * time.Second
	tl, err := Build(units, artifacts, opts)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if tl.Clips[1].StartOffset != time.Second {
		t.Fatalf("expected no gap between same-name sections, got %v", tl.Clips[1].StartOffset)
	}
}

func TestBuildNoGapBeforeFirstClip(t *testing.T) {
	units := makeUnits([3]string{"intro", "霊夢", "あ"})
	artifacts := makeArtifacts(time.Second)

	opts := defaultOptions()
	opts.SectionGap = 5 * time.Second
	tl, err := Build(units, artifacts, opts)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if tl.Clips[0].StartOffset != 0 {
		t.Fatalf("first clip must start at zero even with a gap configured, got %v", tl.Clips[0].StartOffset)
	}
}

func TestBuildCountMismatch(t *testing.T) {
	units := makeUnits(
		[3]string{"untitled", "霊夢", "あ"},
		[3]string{"untitled", "魔理沙", "い"},
	)
	artifacts := makeArtifacts(time.Second)

	if _, err := Build(units, artifacts, defaultOptions()); err == nil {
		t.Fatal("expected count mismatch error")
	}
}

func TestBuildIndexMismatch(t *testing.T) {
	units := makeUnits([3]string{"untitled", "霊夢", "あ"})
	artifacts := makeArtifacts(time.Second)
	artifacts[0].Index = 7

	if _, err := Build(units, artifacts, defaultOptions()); err == nil {
		t.Fatal("expected index mismatch error")
	}
}

func TestBuildEmpty(t *testing.T) {
	tl, err := Build(nil, nil, defaultOptions())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(tl.Clips) != 0 {
		t.Fatalf("expected empty timeline, got %d clips", len(tl.Clips))
	}
	if tl.Duration() != 0 {
		t.Fatalf("expected zero duration, got %v", tl.Duration())
	}
}

func TestBuildRejectsInvalidRates(t *testing.T) {
	units := makeUnits([3]string{"untitled", "霊夢", "あ"})
	artifacts := makeArtifacts(time.Second)

	opts := defaultOptions()
	opts.FrameRate = 0
	if _, err := Build(units, artifacts, opts); err == nil {
		t.Fatal("expected frame rate error")
	}

	opts = defaultOptions()
	opts.SampleRate = -1
	if _, err := Build(units, artifacts, opts); err == nil {
		t.Fatal("expected sample rate error")
	}
}
