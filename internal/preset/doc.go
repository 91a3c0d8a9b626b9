// Package preset maps speakers to synthesis command configurations.
//
// Presets live in a TOML file loaded once per run. Every command template
// is validated against the recognized placeholder set at load time so a
// misconfigured preset fails before any synthesis process is spawned.
package preset
