// Package pipeline wires discovery, hashing, grouping and consolidation into
// the two flows the CLI exposes: Scan, which only reads, and Run, which also
// consolidates.
package pipeline
