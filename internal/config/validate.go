package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateScan(); err != nil {
		return err
	}
	if c.Hash.ChunkSize <= 0 || c.Hash.ChunkSize > maxChunkSize {
		return fmt.Errorf("hash.chunk_size must be between 1 and %d bytes", maxChunkSize)
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if c.Paths.InputDir == "" {
		return errors.New("paths.input_dir must be set")
	}
	if c.Paths.OutputDir == "" {
		return errors.New("paths.output_dir must be set")
	}
	input, output := c.Paths.InputDir, c.Paths.OutputDir
	realInput, realOutput := resolveExisting(input), resolveExisting(output)
	if output == input || realOutput == realInput {
		return fmt.Errorf("paths.output_dir %s must differ from the input directory", output)
	}
	if isWithin(input, output) || isWithin(realInput, realOutput) {
		return fmt.Errorf("paths.output_dir %s contains the input directory %s; clearing it would delete inputs", output, input)
	}
	return nil
}

// resolveExisting evaluates symlinks in path, returning path unchanged when
// it cannot be resolved (typically because it does not exist yet).
func resolveExisting(path string) string {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return path
	}
	return resolved
}

func (c *Config) validateScan() error {
	if len(c.Scan.Extensions) == 0 {
		return errors.New("scan.extensions must list at least one extension")
	}
	for _, ext := range c.Scan.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("scan.extensions: %q must start with a dot, e.g. \".sub\"", ext)
		}
		if strings.ContainsAny(ext, `/\`) {
			return fmt.Errorf("scan.extensions: %q must not contain path separators", ext)
		}
	}
	for _, name := range c.Scan.ExcludeDirs {
		if name == "" || strings.ContainsAny(name, `/\`) {
			return fmt.Errorf("scan.exclude_dirs: %q must be a bare directory name", name)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (use console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q (use debug, info, warn or error)", c.Logging.Level)
	}
	return nil
}

// isWithin reports whether path lies at or beneath dir. Both must be absolute
// and cleaned.
func isWithin(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
