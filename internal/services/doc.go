// Package services defines shared utilities consumed by the pipeline
// stages and external integrations.
//
// Key responsibilities:
//   - Structured error markers plus the Wrap helper that classify failures
//     as configuration, validation, external-tool, or internal faults.
//   - Context helpers that stamp stage names, unit indexes, and session
//     identifiers for logging.
//
// Use these helpers when wiring new stage logic so operational behaviour
// stays uniform across the pipeline.
package services
