// Package logging wires log/slog handlers for console and JSON output and
// provides the attribute helpers the rest of the codebase logs with.
package logging
