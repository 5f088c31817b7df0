package config_test

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"signaldedup/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Paths.InputDir != wd {
		t.Fatalf("unexpected input dir: got %q want %q", cfg.Paths.InputDir, wd)
	}
	if cfg.Paths.OutputDir != filepath.Join(wd, "output") {
		t.Fatalf("unexpected output dir: %q", cfg.Paths.OutputDir)
	}
	if len(cfg.Scan.Extensions) != 1 || cfg.Scan.Extensions[0] != ".sub" {
		t.Fatalf("unexpected extensions: %v", cfg.Scan.Extensions)
	}
	if len(cfg.Scan.ExcludeDirs) != 1 || cfg.Scan.ExcludeDirs[0] != "output" {
		t.Fatalf("unexpected exclude dirs: %v", cfg.Scan.ExcludeDirs)
	}
	if cfg.Hash.ChunkSize != 4096 {
		t.Fatalf("unexpected chunk size: %d", cfg.Hash.ChunkSize)
	}
	if cfg.Logging.Level != "warn" || cfg.Logging.Format != "console" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
	if len(cfg.Notices()) != 0 {
		t.Fatalf("expected no notices, got %v", cfg.Notices())
	}
}

func TestLoadConfigFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	base := t.TempDir()
	input := filepath.Join(base, "captures")
	configPath := filepath.Join(base, "config.toml")

	content := `
[paths]
input_dir = "` + input + `"
output_dir = "` + filepath.Join(base, "unique") + `"

[scan]
extensions = [".sub", " .ir ", ".sub"]
exclude_dirs = ["/backup/", "output"]
skip_hidden = true

[hash]
chunk_size = 8192

[output]
verify_copies = true

[logging]
level = "DEBUG"
format = "json"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("expected explicit config to be used, got %q exists=%v", resolved, exists)
	}
	if cfg.Paths.InputDir != input {
		t.Fatalf("unexpected input dir %q", cfg.Paths.InputDir)
	}
	if got := strings.Join(cfg.Scan.Extensions, ","); got != ".sub,.ir" {
		t.Fatalf("unexpected extensions %q", got)
	}
	if got := strings.Join(cfg.Scan.ExcludeDirs, ","); got != "backup,output" {
		t.Fatalf("unexpected exclude dirs %q", got)
	}
	if !cfg.Scan.SkipHidden || !cfg.Output.VerifyCopies {
		t.Fatalf("expected boolean flags to be decoded: %+v %+v", cfg.Scan, cfg.Output)
	}
	if cfg.Hash.ChunkSize != 8192 {
		t.Fatalf("unexpected chunk size %d", cfg.Hash.ChunkSize)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Fatalf("unexpected logging %+v", cfg.Logging)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, []byte("[scan]\nextension = [\".sub\"]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, _, err := config.Load(configPath); err == nil {
		t.Fatal("expected error for misspelled key")
	}
}

func TestLoadMissingExplicitConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	if _, _, _, err := config.Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("expected error for missing explicit config")
	}
}

func TestApplyCoercesUnsafeOutputPath(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}

	for _, raw := range []string{"/", ".", "./", "//"} {
		t.Run(raw, func(t *testing.T) {
			cfg := config.Default()
			if err := cfg.Apply(config.Overrides{OutputDir: raw}); err != nil {
				t.Fatalf("Apply returned error: %v", err)
			}
			if cfg.Paths.OutputDir != filepath.Join(wd, "output") {
				t.Fatalf("expected coercion to ./output, got %q", cfg.Paths.OutputDir)
			}
			notices := cfg.Notices()
			if len(notices) != 1 || !strings.Contains(notices[0], "unsafe") {
				t.Fatalf("expected one unsafe-path notice, got %v", notices)
			}
		})
	}
}

func TestApplyOverridesWinOverEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SIGNALDEDUP_LOG_LEVEL", "error")

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Logging.Level != "error" {
		t.Fatalf("expected env level, got %q", cfg.Logging.Level)
	}
	if err := cfg.Apply(config.Overrides{LogLevel: "info", Extensions: []string{".ir"}}); err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if cfg.Logging.Level != "info" {
		t.Fatalf("expected flag level to win, got %q", cfg.Logging.Level)
	}
	if len(cfg.Scan.Extensions) != 1 || cfg.Scan.Extensions[0] != ".ir" {
		t.Fatalf("unexpected extensions %v", cfg.Scan.Extensions)
	}
}

func TestValidateRejectsDangerousOutput(t *testing.T) {
	base := t.TempDir()
	input := filepath.Join(base, "a", "b")

	cases := map[string]string{
		"equal":    input,
		"ancestor": filepath.Join(base, "a"),
	}
	for name, output := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := config.Default()
			err := cfg.Apply(config.Overrides{InputDir: input, OutputDir: output})
			if err == nil {
				t.Fatalf("expected validation error for output %q", output)
			}
		})
	}

	cfg := config.Default()
	if err := cfg.Apply(config.Overrides{InputDir: input, OutputDir: filepath.Join(input, "output")}); err != nil {
		t.Fatalf("nested output should be accepted: %v", err)
	}
}

func TestValidateRejectsBadScanSettings(t *testing.T) {
	cases := map[string]func(*config.Config){
		"no extensions":  func(c *config.Config) { c.Scan.Extensions = nil },
		"missing dot":    func(c *config.Config) { c.Scan.Extensions = []string{"sub"} },
		"bare dot":       func(c *config.Config) { c.Scan.Extensions = []string{"."} },
		"nested exclude": func(c *config.Config) { c.Scan.ExcludeDirs = []string{"a/b"} },
		"huge chunk":     func(c *config.Config) { c.Hash.ChunkSize = 1 << 30 },
		"bad format":     func(c *config.Config) { c.Logging.Format = "xml" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Paths.InputDir = "/captures"
			cfg.Paths.OutputDir = "/captures/output"
			mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestCreateSampleLoads(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil || !exists {
		t.Fatalf("sample config should load cleanly: exists=%v err=%v", exists, err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("sample config should validate: %v", err)
	}
}

func TestLoadDefersValidationToOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	base := t.TempDir()
	input := filepath.Join(base, "captures")
	configPath := filepath.Join(base, "config.toml")
	content := fmt.Sprintf("[paths]\ninput_dir = %q\noutput_dir = %q\n", input, base)
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load should not validate paths: %v", err)
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected configured output containing the input to fail validation")
	}
	if err := cfg.Apply(config.Overrides{OutputDir: filepath.Join(base, "unique")}); err != nil {
		t.Fatalf("override should make the config valid: %v", err)
	}
}

func TestValidateResolvesSymlinkedInput(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks require privileges on windows")
	}
	base := t.TempDir()
	target := filepath.Join(base, "captures")
	if err := os.MkdirAll(target, 0o755); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(base, "sdcard")
	if err := os.Symlink(target, link); err != nil {
		t.Fatal(err)
	}

	for name, output := range map[string]string{"equal": target, "ancestor": base} {
		t.Run(name, func(t *testing.T) {
			cfg := config.Default()
			if err := cfg.Apply(config.Overrides{InputDir: link, OutputDir: output}); err == nil {
				t.Fatalf("output %s resolves over the input %s and must be rejected", output, link)
			}
		})
	}
}

func TestLoadExpandsLogFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, []byte("[logging]\nfile = \"~/logs/signaldedup.log\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if want := filepath.Join(home, "logs", "signaldedup.log"); cfg.Logging.File != want {
		t.Fatalf("expected log file %q, got %q", want, cfg.Logging.File)
	}
}
