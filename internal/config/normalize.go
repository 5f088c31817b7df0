package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeScan()
	if c.Hash.ChunkSize == 0 {
		c.Hash.ChunkSize = defaultChunkSize
	}
	return c.normalizeLogging()
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.InputDir) == "" {
		c.Paths.InputDir = defaultInputDir
	}
	if c.Paths.InputDir, err = expandPath(strings.TrimSpace(c.Paths.InputDir)); err != nil {
		return fmt.Errorf("paths.input_dir: %w", err)
	}

	output := strings.TrimSpace(c.Paths.OutputDir)
	if output == "" {
		output = defaultOutputDir
	}
	if safe, coerced := SafeOutputPath(output); coerced {
		c.notices = append(c.notices, fmt.Sprintf("output path %q is unsafe; using %q instead", output, safe))
		output = safe
	}
	if c.Paths.OutputDir, err = expandPath(output); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	return nil
}

// SafeOutputPath replaces output paths that would point the destructive clear
// step at the working directory or the filesystem root.
func SafeOutputPath(raw string) (string, bool) {
	cleaned := filepath.Clean(strings.TrimSpace(raw))
	if cleaned == "." || cleaned == string(filepath.Separator) || cleaned == "/" {
		return defaultOutputDir, true
	}
	return raw, false
}

func (c *Config) normalizeScan() {
	c.Scan.Extensions = uniqueTrimmed(c.Scan.Extensions)
	names := make([]string, 0, len(c.Scan.ExcludeDirs))
	for _, name := range c.Scan.ExcludeDirs {
		names = append(names, strings.Trim(strings.TrimSpace(name), `/\`))
	}
	c.Scan.ExcludeDirs = uniqueTrimmed(names)
}

func (c *Config) applyEnv() {
	if value, ok := os.LookupEnv("SIGNALDEDUP_LOG_FORMAT"); ok && strings.TrimSpace(value) != "" {
		c.Logging.Format = value
	}
	if value, ok := os.LookupEnv("SIGNALDEDUP_LOG_LEVEL"); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = value
	}
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if file := strings.TrimSpace(c.Logging.File); file != "" {
		expanded, err := expandPath(file)
		if err != nil {
			return fmt.Errorf("logging.file: %w", err)
		}
		c.Logging.File = expanded
	}
	return nil
}

func uniqueTrimmed(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}
