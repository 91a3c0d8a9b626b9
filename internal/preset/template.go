package preset

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Placeholders recognized inside command templates. Substitution happens
// per token after shell-style splitting, so substituted values containing
// spaces remain single arguments.
var allowedPlaceholders = map[string]struct{}{
	"text":      {},
	"text_file": {},
	"output":    {},
	"speaker":   {},
	"voice_id":  {},
	"speed":     {},
	"volume":    {},
}

var placeholderPattern = regexp.MustCompile(`\{([^{}]*)\}`)

// InvalidTemplateError reports a command template containing a placeholder
// outside the recognized set.
type InvalidTemplateError struct {
	Placeholder string
}

func (e *InvalidTemplateError) Error() string {
	return fmt.Sprintf("command_template contains unrecognized placeholder {%s}", e.Placeholder)
}

// ValidateTemplate checks that every placeholder in the template is
// recognized.
func ValidateTemplate(template string) error {
	for _, match := range placeholderPattern.FindAllStringSubmatch(template, -1) {
		name := match[1]
		if _, ok := allowedPlaceholders[name]; !ok {
			return &InvalidTemplateError{Placeholder: name}
		}
	}
	return nil
}

// Vars carries the concrete values substituted into a command template.
type Vars struct {
	Text     string
	TextFile string
	Output   string
	Speaker  string
	VoiceID  string
	Speed    float64
	Volume   float64
}

// Expand tokenizes the preset's command template and substitutes
// placeholders per token. The first token is the binary, the rest are its
// arguments.
func (p Preset) Expand(vars Vars) ([]string, error) {
	tokens, err := splitCommand(p.CommandTemplate)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, fmt.Errorf("command_template produced no tokens")
	}

	replacer := strings.NewReplacer(
		"{text}", vars.Text,
		"{text_file}", vars.TextFile,
		"{output}", vars.Output,
		"{speaker}", vars.Speaker,
		"{voice_id}", vars.VoiceID,
		"{speed}", formatNumber(vars.Speed),
		"{volume}", formatNumber(vars.Volume),
	)
	expanded := make([]string, len(tokens))
	for i, token := range tokens {
		expanded[i] = replacer.Replace(token)
	}
	return expanded, nil
}

// Binary returns the first token of the command template, the executable
// the preset will invoke.
func (p Preset) Binary() (string, error) {
	tokens, err := splitCommand(p.CommandTemplate)
	if err != nil {
		return "", err
	}
	if len(tokens) == 0 {
		return "", fmt.Errorf("command_template produced no tokens")
	}
	return tokens[0], nil
}

// splitCommand splits a template into tokens, honoring single and double
// quotes so quoted placeholders survive as one argument.
func splitCommand(template string) ([]string, error) {
	var tokens []string
	var current strings.Builder
	inToken := false
	quote := rune(0)

	for _, r := range template {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quote = r
			inToken = true
		case r == ' ' || r == '\t' || r == '\n':
			if inToken {
				tokens = append(tokens, current.String())
				current.Reset()
				inToken = false
			}
		default:
			current.WriteRune(r)
			inToken = true
		}
	}
	if quote != 0 {
		return nil, fmt.Errorf("command_template has unterminated %c quote", quote)
	}
	if inToken {
		tokens = append(tokens, current.String())
	}
	return tokens, nil
}

// formatNumber renders numeric placeholder values without a trailing
// decimal when the value is integral, matching what legacy synthesis tools
// expect for speed/volume flags.
func formatNumber(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
