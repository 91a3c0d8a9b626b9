package preset

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

const (
	defaultTextFileEncoding = "utf-8"
	defaultTextFileSuffix   = ".txt"
)

// Preset describes how to invoke the external synthesis command for one
// speaker.
type Preset struct {
	Speaker          string  `toml:"speaker"`
	CommandTemplate  string  `toml:"command_template"`
	VoiceID          string  `toml:"voice_id"`
	Speed            float64 `toml:"speed"`
	Volume           float64 `toml:"volume"`
	UseTextFile      bool    `toml:"use_text_file"`
	TextFileEncoding string  `toml:"text_file_encoding"`
	TextFileSuffix   string  `toml:"text_file_suffix"`
}

// Encoder resolves the preset's text file encoding by IANA name. UTF-8
// yields a nil transformer, meaning text is written as-is.
func (p Preset) Encoder() (encoding.Encoding, error) {
	return resolveEncoding(p.TextFileEncoding)
}

// UnknownSpeakerError reports a speaker with no preset and no configured
// default.
type UnknownSpeakerError struct {
	Speaker string
}

func (e *UnknownSpeakerError) Error() string {
	return fmt.Sprintf("no synthesis preset for speaker %q and no default preset configured", e.Speaker)
}

type presetFile struct {
	DefaultPreset string   `toml:"default_preset"`
	Presets       []Preset `toml:"preset"`
}

// Set holds the loaded presets for one run, keyed by speaker.
type Set struct {
	presets    map[string]Preset
	defaultKey string
}

// Load parses and validates a preset file.
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read preset file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates preset file contents.
func Parse(data []byte) (*Set, error) {
	var file presetFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse preset file: %w", err)
	}
	if len(file.Presets) == 0 {
		return nil, fmt.Errorf("preset file defines no presets")
	}

	set := &Set{
		presets:    make(map[string]Preset, len(file.Presets)),
		defaultKey: strings.TrimSpace(file.DefaultPreset),
	}

	for i := range file.Presets {
		p := file.Presets[i]
		p.Speaker = strings.TrimSpace(p.Speaker)
		if p.TextFileEncoding == "" {
			p.TextFileEncoding = defaultTextFileEncoding
		}
		if p.TextFileSuffix == "" {
			p.TextFileSuffix = defaultTextFileSuffix
		}
		if err := validatePreset(p); err != nil {
			return nil, err
		}
		if _, exists := set.presets[p.Speaker]; exists {
			return nil, fmt.Errorf("preset %q: duplicate speaker", p.Speaker)
		}
		set.presets[p.Speaker] = p
	}

	if set.defaultKey != "" {
		if _, ok := set.presets[set.defaultKey]; !ok {
			return nil, fmt.Errorf("default_preset %q does not match any preset", set.defaultKey)
		}
	}

	return set, nil
}

// Resolve returns the preset for a speaker. An exact match wins; otherwise
// the designated default preset applies when one is configured.
func (s *Set) Resolve(speaker string) (Preset, error) {
	if p, ok := s.presets[speaker]; ok {
		return p, nil
	}
	if s.defaultKey != "" {
		return s.presets[s.defaultKey], nil
	}
	return Preset{}, &UnknownSpeakerError{Speaker: speaker}
}

// Speakers returns the configured speaker keys in sorted order.
func (s *Set) Speakers() []string {
	keys := make([]string, 0, len(s.presets))
	for key := range s.presets {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// DefaultSpeaker returns the designated default preset key, if any.
func (s *Set) DefaultSpeaker() string {
	return s.defaultKey
}

// Len returns the number of loaded presets.
func (s *Set) Len() int {
	return len(s.presets)
}

func validatePreset(p Preset) error {
	if p.Speaker == "" {
		return fmt.Errorf("preset with empty speaker key")
	}
	if strings.TrimSpace(p.CommandTemplate) == "" {
		return fmt.Errorf("preset %q: command_template must be set", p.Speaker)
	}
	if err := ValidateTemplate(p.CommandTemplate); err != nil {
		return fmt.Errorf("preset %q: %w", p.Speaker, err)
	}
	usesTextFile := strings.Contains(p.CommandTemplate, "{text_file}")
	if p.UseTextFile && !usesTextFile {
		return fmt.Errorf("preset %q: use_text_file is set but command_template lacks {text_file}", p.Speaker)
	}
	if !p.UseTextFile && usesTextFile {
		return fmt.Errorf("preset %q: command_template references {text_file} but use_text_file is false", p.Speaker)
	}
	if _, err := resolveEncoding(p.TextFileEncoding); err != nil {
		return fmt.Errorf("preset %q: %w", p.Speaker, err)
	}
	return nil
}

func resolveEncoding(name string) (encoding.Encoding, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, nil
	}
	enc, err := ianaindex.IANA.Encoding(trimmed)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("text_file_encoding %q is not a recognized encoding", name)
	}
	if enc == unicode.UTF8 {
		return nil, nil
	}
	return enc, nil
}
