// Package logging assembles structured slog loggers used across signaldedup.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, tags each invocation with a run id, and exposes attribute
// helpers plus standardized field keys so every component emits records of
// the same shape. A no-op logger is provided for tests and wiring code that
// cannot fail.
//
// Structured logs are diagnostics: the user-facing report and prompts are
// written by the report and prompt packages, not through slog.
package logging
