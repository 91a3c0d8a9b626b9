// Package pipeline orchestrates a full script-to-timeline run: parse the
// script, resolve presets, synthesize every unit, assemble the timeline,
// and write the interchange document.
//
// The three phase entry points (Parse, RunSynthesis, BuildAndSerialize)
// are exposed individually so a front end can drive them as separate
// user-triggered operations; Run chains them for the CLI. Every failure
// is classified through the services sentinels so callers can tell
// configuration mistakes from external tool failures without string
// matching.
package pipeline
