package script

import (
	"fmt"
	"os"
	"strings"
)

// SpeakerSeparator divides speaker from dialogue text on a script line.
const SpeakerSeparator = "　" // full-width space

// DefaultSection labels dialogue that appears before any section marker.
const DefaultSection = "untitled"

// Unit is one parsed line of dialogue. Units are immutable once parsed;
// Index fixes their position in the script and is the sole ordering key
// for every downstream stage.
type Unit struct {
	Section string
	Speaker string
	Text    string
	Index   int
}

// ParseError reports a line that matched neither the section marker nor
// the dialogue pattern.
type ParseError struct {
	Line int
	Raw  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("script line %d: malformed line %q", e.Line, e.Raw)
}

// Parse converts raw script text into ordered dialogue units. It is a pure
// function: the same text always yields the same units.
func Parse(text string) ([]Unit, error) {
	section := ""
	units := make([]Unit, 0, 32)

	for number, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(strings.TrimSuffix(raw, "\r"))
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "-") {
			if label := strings.TrimSpace(strings.TrimLeft(line, "-")); label != "" {
				section = label
			}
			continue
		}

		speaker, content, ok := strings.Cut(line, SpeakerSeparator)
		if !ok {
			return nil, &ParseError{Line: number + 1, Raw: raw}
		}

		label := section
		if label == "" {
			label = DefaultSection
		}
		units = append(units, Unit{
			Section: label,
			Speaker: strings.TrimSpace(speaker),
			Text:    normalizeText(content),
			Index:   len(units),
		})
	}

	return units, nil
}

// ParseFile reads a UTF-8 script file and parses it.
func ParseFile(path string) ([]Unit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return Parse(string(data))
}

// normalizeText trims the text and collapses interior whitespace runs to a
// single space so synthesis input stays stable across editor quirks.
func normalizeText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
