package premiere

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"serifu/internal/timeline"
)

const (
	frameWidth  = 1920
	frameHeight = 1080
)

// styleValues are the caption style names the editor resolves against its
// style library. Unknown speakers fall back to the plain subtitle style.
var styleValues = map[timeline.Style]string{
	timeline.StyleReimu:   "リンクスタイル霊夢",
	timeline.StyleMarisa:  "リンクスタイル魔理沙",
	timeline.StyleDefault: "デフォルト字幕",
}

// span is a clip's position on the frame-domain track.
type span struct {
	start  int64
	frames int64
}

// Serialize renders the timeline as an xmeml v5 document. Identical input
// yields byte-identical output.
func Serialize(tl *timeline.Timeline) ([]byte, error) {
	if tl.FrameRate <= 0 {
		return nil, fmt.Errorf("serialize timeline: frame rate must be positive, got %d", tl.FrameRate)
	}
	if tl.SampleRate <= 0 {
		return nil, fmt.Errorf("serialize timeline: sample rate must be positive, got %d", tl.SampleRate)
	}

	spans, total := placeClips(tl)

	seq := sequence{
		ID:       "sequence-1",
		Name:     tl.SequenceName,
		Duration: total,
		Rate:     rate{Timebase: tl.FrameRate, NTSC: "FALSE"},
		Media: media{
			Video: video{
				Format: videoFormat{
					SampleCharacteristics: sampleCharacteristics{
						Rate:             rate{Timebase: tl.FrameRate, NTSC: "FALSE"},
						Width:            frameWidth,
						Height:           frameHeight,
						Anamorphic:       "FALSE",
						PixelAspectRatio: "square",
					},
				},
			},
		},
	}

	for i, clip := range tl.Clips {
		startTC := timecode(spans[i].start, tl.FrameRate)
		endTC := timecode(spans[i].start+spans[i].frames, tl.FrameRate)

		seq.Media.Video.Track.Items = append(seq.Media.Video.Track.Items, generatorItem{
			ID:        fmt.Sprintf("title-%d", i+1),
			Name:      clip.Artifact.Speaker + " Subtitle",
			ItemType:  "text",
			Rate:      rate{Timebase: tl.FrameRate, NTSC: "FALSE"},
			Start:     startTC,
			End:       endTC,
			In:        startTC,
			Out:       endTC,
			AlphaType: "straight",
			Effect: effect{
				Name:       "Text",
				EffectID:   "text",
				Category:   "Text",
				EffectType: "text",
				MediaType:  "video",
				Parameters: []parameter{
					{
						AuthoringApp: "PremierePro",
						ParameterID:  "str",
						Name:         "テキスト",
						Value:        clip.CaptionText,
					},
					{
						AuthoringApp: "PremierePro",
						ParameterID:  "style",
						Name:         "スタイル",
						Value:        styleValues[clip.Style],
					},
				},
			},
		})

		audioPath, err := filepath.Abs(clip.Artifact.Path)
		if err != nil {
			return nil, fmt.Errorf("serialize timeline: resolve clip %d path: %w", i, err)
		}
		base := filepath.Base(audioPath)
		seq.Media.Audio.Track.Items = append(seq.Media.Audio.Track.Items, clipItem{
			ID:    fmt.Sprintf("audio-%d", i+1),
			Name:  strings.TrimSuffix(base, filepath.Ext(base)),
			Start: startTC,
			End:   endTC,
			In:    startTC,
			Out:   endTC,
			File: fileRef{
				Name:    base,
				PathURL: "file://" + filepath.ToSlash(audioPath),
				Rate:    rate{Timebase: tl.SampleRate, NTSC: "FALSE"},
			},
		})
	}

	doc := document{
		Version: "5",
		Project: project{
			Name:     tl.ProjectName,
			Children: children{Sequence: seq},
		},
	}

	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serialize timeline: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	buf.WriteString("<!DOCTYPE xmeml>\n")
	buf.Write(body)
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// FileName returns the document name derived from the sequence base name.
func FileName(tl *timeline.Timeline) string {
	return tl.SequenceName + ".xml"
}

// WriteFile serializes the timeline into dir and returns the written path.
func WriteFile(tl *timeline.Timeline, dir string) (string, error) {
	data, err := Serialize(tl)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, FileName(tl))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write timeline document: %w", err)
	}
	return path, nil
}

// placeClips converts time-domain clip positions to frame spans. Each
// clip's length is rounded once and never below one frame; offsets are the
// running sum of those lengths plus any rounded section gaps, keeping
// adjacent clips adjacent after rounding.
func placeClips(tl *timeline.Timeline) ([]span, int64) {
	spans := make([]span, len(tl.Clips))
	frame := int64(0)
	prevEnd := time.Duration(0)
	for i, clip := range tl.Clips {
		if gap := clip.StartOffset - prevEnd; gap > 0 {
			frame += roundFrames(gap, tl.FrameRate)
		}
		frames := roundFrames(clip.Duration, tl.FrameRate)
		if frames < 1 {
			frames = 1
		}
		spans[i] = span{start: frame, frames: frames}
		frame += frames
		prevEnd = clip.End()
	}
	return spans, frame
}

// roundFrames converts a duration to the nearest whole frame count using
// integer arithmetic only.
func roundFrames(d time.Duration, fps int) int64 {
	ticks := int64(d) * int64(fps)
	return (ticks + int64(time.Second)/2) / int64(time.Second)
}

// timecode renders a frame position as HH:MM:SS:FF.
func timecode(frame int64, fps int) string {
	ff := frame % int64(fps)
	totalSeconds := frame / int64(fps)
	hh := totalSeconds / 3600
	mm := totalSeconds % 3600 / 60
	ss := totalSeconds % 60
	return fmt.Sprintf("%02d:%02d:%02d:%02d", hh, mm, ss, ff)
}
