// Package deps verifies that the external synthesis binaries named by the
// loaded presets are actually invocable before a run spends time parsing
// and locking.
package deps

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"serifu/internal/preset"
)

// Requirement is one external binary a preset depends on.
type Requirement struct {
	Binary   string
	Speakers []string
}

// Status reports the availability of one requirement.
type Status struct {
	Binary    string
	Speakers  []string
	Available bool
	Detail    string
}

// FromPresets collects the distinct binaries the preset set invokes,
// with the speakers that rely on each.
func FromPresets(set *preset.Set) ([]Requirement, error) {
	bySpeaker := map[string][]string{}
	for _, speaker := range set.Speakers() {
		p, err := set.Resolve(speaker)
		if err != nil {
			return nil, err
		}
		binary, err := p.Binary()
		if err != nil {
			return nil, fmt.Errorf("preset for %q: %w", speaker, err)
		}
		bySpeaker[binary] = append(bySpeaker[binary], speaker)
	}

	requirements := make([]Requirement, 0, len(bySpeaker))
	for binary, speakers := range bySpeaker {
		sort.Strings(speakers)
		requirements = append(requirements, Requirement{Binary: binary, Speakers: speakers})
	}
	sort.Slice(requirements, func(i, j int) bool {
		return requirements[i].Binary < requirements[j].Binary
	})
	return requirements, nil
}

// Check evaluates each requirement against the filesystem and PATH.
func Check(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		binary := strings.TrimSpace(req.Binary)
		status := Status{Binary: binary, Speakers: req.Speakers}
		switch {
		case binary == "":
			status.Detail = "command not configured"
		case filepath.IsAbs(binary) || strings.ContainsRune(binary, filepath.Separator):
			if _, err := exec.LookPath(binary); err != nil {
				status.Detail = fmt.Sprintf("%s is not executable", binary)
			} else {
				status.Available = true
			}
		default:
			if _, err := exec.LookPath(binary); err != nil {
				status.Detail = fmt.Sprintf("binary %q not found in PATH", binary)
			} else {
				status.Available = true
			}
		}
		results = append(results, status)
	}
	return results
}

// Missing filters statuses down to the unavailable ones.
func Missing(statuses []Status) []Status {
	var missing []Status
	for _, status := range statuses {
		if !status.Available {
			missing = append(missing, status)
		}
	}
	return missing
}
