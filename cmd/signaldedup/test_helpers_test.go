package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"signaldedup/internal/testsupport"
)

type cliTestEnv struct {
	baseDir   string
	inputDir  string
	outputDir string
}

// setupCLITestEnv isolates HOME and the working directory so no user or
// project config is picked up and relative outputs land in the temp tree.
func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	home := filepath.Join(base, "home")
	if err := os.MkdirAll(home, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", home)
	t.Setenv("SIGNALDEDUP_LOG_LEVEL", "")
	t.Setenv("SIGNALDEDUP_LOG_FORMAT", "")
	t.Chdir(base)

	env := &cliTestEnv{
		baseDir:   base,
		inputDir:  filepath.Join(base, "captures"),
		outputDir: filepath.Join(base, "unique"),
	}
	if err := os.MkdirAll(env.inputDir, 0o755); err != nil {
		t.Fatalf("mkdir input: %v", err)
	}
	return env
}

func (e *cliTestEnv) writeScenario(t *testing.T) {
	t.Helper()
	testsupport.WriteFile(t, filepath.Join(e.inputDir, "a", "1.sub"), "X")
	testsupport.WriteFile(t, filepath.Join(e.inputDir, "b", "1.sub"), "X")
	testsupport.WriteFile(t, filepath.Join(e.inputDir, "c", "2.sub"), "Y")
}

func runCLI(t *testing.T, args []string, stdin string) (string, string, int) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return stdout.String(), stderr.String(), code
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected output to contain %q, got:\n%s", substr, output)
	}
}
