// Package config loads, normalizes, and validates signaldedup configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, honours SIGNALDEDUP_* environment fallbacks
// and layers command-line overrides on top. Normalization refuses output
// paths that would aim the destructive clear step at the working directory
// or the filesystem root, recording a notice for the CLI to print.
//
// Always obtain settings through this package so the pipeline receives
// absolute paths, deduplicated extension lists, and clear validation errors.
package config
