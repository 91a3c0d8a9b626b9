package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConfiguration marks failures detected before any external process
	// is spawned: bad config files, unknown speakers, invalid templates.
	ErrConfiguration = errors.New("configuration error")
	// ErrValidation marks malformed user input such as script parse errors.
	ErrValidation = errors.New("validation error")
	// ErrExternalTool marks failures of the synthesis command or of probing
	// the audio it produced.
	ErrExternalTool = errors.New("external tool error")
	// ErrInternal marks internal-consistency faults that upstream
	// invariants should have made impossible.
	ErrInternal = errors.New("internal error")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrInternal
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsConfigError reports whether err stems from configuration or input
// validation and therefore needs user remediation rather than a re-run.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrConfiguration) || errors.Is(err, ErrValidation)
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
