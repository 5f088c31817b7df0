package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains the discovery root and consolidation target.
type Paths struct {
	InputDir  string `toml:"input_dir"`
	OutputDir string `toml:"output_dir"`
}

// Scan controls which files discovery yields.
type Scan struct {
	Extensions  []string `toml:"extensions"`
	ExcludeDirs []string `toml:"exclude_dirs"`
	SkipHidden  bool     `toml:"skip_hidden"`
}

// Hash contains content hashing settings.
type Hash struct {
	// ChunkSize is the read buffer size in bytes. Memory use per file is
	// bounded by this value regardless of file size.
	ChunkSize int `toml:"chunk_size"`
}

// Output contains consolidation settings.
type Output struct {
	VerifyCopies bool `toml:"verify_copies"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	// File, when set, receives a copy of every log record in append mode.
	File   string `toml:"file"`
}

// Config encapsulates every knob the pipeline and CLI read.
type Config struct {
	Paths   Paths   `toml:"paths"`
	Scan    Scan    `toml:"scan"`
	Hash    Hash    `toml:"hash"`
	Output  Output  `toml:"output"`
	Logging Logging `toml:"logging"`

	notices []string
}

// Overrides carries command-line values that take precedence over the file.
// Zero values leave the loaded setting untouched.
type Overrides struct {
	InputDir    string
	OutputDir   string
	Extensions  []string
	ExcludeDirs []string
	LogLevel    string
	LogFormat   string
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/signaldedup/config.toml")
}

// Load locates and parses a configuration file. The returned config has all
// path fields expanded and normalized but is not validated: command-line
// overrides may still replace unusable values, so callers finish with Apply
// or Validate.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config %s: %w", resolvedPath, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

// Apply layers command-line overrides on top of the loaded configuration and
// re-runs normalization and validation.
func (c *Config) Apply(o Overrides) error {
	if v := strings.TrimSpace(o.InputDir); v != "" {
		c.Paths.InputDir = v
	}
	if v := strings.TrimSpace(o.OutputDir); v != "" {
		c.Paths.OutputDir = v
	}
	if len(o.Extensions) > 0 {
		c.Scan.Extensions = append([]string(nil), o.Extensions...)
	}
	if len(o.ExcludeDirs) > 0 {
		c.Scan.ExcludeDirs = append([]string(nil), o.ExcludeDirs...)
	}
	if v := strings.TrimSpace(o.LogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := strings.TrimSpace(o.LogFormat); v != "" {
		c.Logging.Format = v
	}
	if err := c.normalize(); err != nil {
		return err
	}
	return c.Validate()
}

// Notices returns user-facing messages produced while normalizing, such as
// an unsafe output path being replaced.
func (c *Config) Notices() []string {
	if len(c.notices) == 0 {
		return nil
	}
	out := make([]string, len(c.notices))
	copy(out, c.notices)
	return out
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		info, err := os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return "", false, fmt.Errorf("config file %s does not exist", expanded)
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		if info.IsDir() {
			return "", false, fmt.Errorf("config path %s is a directory", expanded)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("signaldedup.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
