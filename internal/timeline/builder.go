package timeline

import (
	"fmt"
	"time"

	"serifu/internal/script"
	"serifu/internal/synth"
)

// Style identifies the caption presentation applied to a clip.
type Style int

const (
	StyleDefault Style = iota
	StyleReimu
	StyleMarisa
)

func (s Style) String() string {
	switch s {
	case StyleReimu:
		return "reimu"
	case StyleMarisa:
		return "marisa"
	default:
		return "default"
	}
}

// speakerStyles maps speaker names to caption styles.
var speakerStyles = map[string]Style{
	"霊夢":  StyleReimu,
	"魔理沙": StyleMarisa,
}

// StyleForSpeaker returns the caption style for a speaker name.
func StyleForSpeaker(speaker string) Style {
	if style, ok := speakerStyles[speaker]; ok {
		return style
	}
	return StyleDefault
}

// Clip is one positioned entry on the dialogue track with its caption.
type Clip struct {
	StartOffset time.Duration
	Duration    time.Duration
	Artifact    synth.Artifact
	Section     string
	CaptionText string
	Style       Style
}

// End returns the clip's end offset.
func (c Clip) End() time.Duration {
	return c.StartOffset + c.Duration
}

// Timeline is the assembled sequence plus project metadata. It is built
// once, serialized once, and never mutated.
type Timeline struct {
	ProjectName  string
	SequenceName string
	FrameRate    int
	SampleRate   int
	Clips        []Clip
}

// Options controls timeline assembly.
type Options struct {
	ProjectName  string
	SequenceName string
	FrameRate    int
	SampleRate   int
	// SectionGap is inserted before a clip whose section label differs
	// from the previous clip's. Zero keeps everything back-to-back.
	SectionGap time.Duration
}

// Build assembles a timeline from ordered units and their artifacts. Both
// slices must be the same length and in the same unit order; a mismatch is
// an internal-consistency fault, not a recoverable condition.
func Build(units []script.Unit, artifacts []synth.Artifact, opts Options) (*Timeline, error) {
	if len(units) != len(artifacts) {
		return nil, fmt.Errorf("timeline build: %d units but %d artifacts", len(units), len(artifacts))
	}
	if opts.FrameRate <= 0 {
		return nil, fmt.Errorf("timeline build: frame rate must be positive, got %d", opts.FrameRate)
	}
	if opts.SampleRate <= 0 {
		return nil, fmt.Errorf("timeline build: sample rate must be positive, got %d", opts.SampleRate)
	}

	tl := &Timeline{
		ProjectName:  opts.ProjectName,
		SequenceName: opts.SequenceName,
		FrameRate:    opts.FrameRate,
		SampleRate:   opts.SampleRate,
		Clips:        make([]Clip, 0, len(units)),
	}

	offset := time.Duration(0)
	prevSection := ""
	for i, unit := range units {
		artifact := artifacts[i]
		if artifact.Index != unit.Index {
			return nil, fmt.Errorf("timeline build: artifact %d has index %d, expected %d", i, artifact.Index, unit.Index)
		}
		if opts.SectionGap > 0 && i > 0 && unit.Section != prevSection {
			offset += opts.SectionGap
		}
		tl.Clips = append(tl.Clips, Clip{
			StartOffset: offset,
			Duration:    artifact.Duration,
			Artifact:    artifact,
			Section:     unit.Section,
			CaptionText: unit.Text,
			Style:       StyleForSpeaker(unit.Speaker),
		})
		offset += artifact.Duration
		prevSection = unit.Section
	}

	return tl, nil
}

// Duration returns the total timeline length including section gaps.
func (t *Timeline) Duration() time.Duration {
	if len(t.Clips) == 0 {
		return 0
	}
	return t.Clips[len(t.Clips)-1].End()
}
