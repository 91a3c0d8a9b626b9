// Package config loads, validates, and defaults the serifu configuration.
//
// Configuration lives in a TOML file (default ~/.config/serifu/config.toml,
// with a project-local serifu.toml fallback). Load applies defaults, expands
// paths, and validates every section before any pipeline stage runs, so
// misconfiguration always fails ahead of synthesis cost.
package config
