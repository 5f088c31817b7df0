package preflight

import (
	"os"

	"signaldedup/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes the path checks for cfg. The output directory is only
// checked when it already exists since a run creates it on demand.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{CheckReadableDir("Input directory", cfg.Paths.InputDir)}
	if _, err := os.Stat(cfg.Paths.OutputDir); err == nil {
		results = append(results, CheckDirectoryAccess("Output directory", cfg.Paths.OutputDir))
	}
	return results
}
