package fileutil

import (
	"crypto/md5"
	"os"
	"path/filepath"
	"testing"
)

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.sub")
	dst := filepath.Join(dir, "dst.sub")

	content := []byte("Filetype: Flipper SubGhz RAW File")
	if err := os.WriteFile(src, content, 0o600); err != nil {
		t.Fatal(err)
	}

	if err := CopyFile(src, dst); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(content) {
		t.Fatalf("content mismatch: got %q, want %q", got, content)
	}
	info, err := os.Stat(dst)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("expected source permissions to carry over, got %o", info.Mode().Perm())
	}
}

func TestCopyFileOverwritesExisting(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.sub")
	dst := filepath.Join(dir, "dst.sub")
	if err := os.WriteFile(src, []byte("new"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dst, []byte("much longer old content"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := CopyFile(src, dst); err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "new" {
		t.Fatalf("expected truncating overwrite, got %q", got)
	}
}

func TestCopyFile_MissingSource(t *testing.T) {
	dir := t.TempDir()
	err := CopyFile(filepath.Join(dir, "nope"), filepath.Join(dir, "dst"))
	if err == nil {
		t.Fatal("expected error for missing source")
	}
}

func TestCopyFileVerified(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.sub")
	dst := filepath.Join(dir, "dst.sub")

	content := []byte("verified copy content")
	if err := os.WriteFile(src, content, 0o644); err != nil {
		t.Fatal(err)
	}

	if err := CopyFileVerified(src, dst, md5.New); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(content) {
		t.Fatalf("content mismatch: got %q, want %q", got, content)
	}
}

func TestCopyFileVerified_MissingSource(t *testing.T) {
	dir := t.TempDir()
	if err := CopyFileVerified(filepath.Join(dir, "nonexistent"), filepath.Join(dir, "dst"), md5.New); err == nil {
		t.Fatal("expected error for missing source")
	}
}

func TestClearDirRemovesOnlyTopLevelFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"stale.sub", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(name), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	nested := filepath.Join(dir, "keep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(nested, "inner.sub"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	result, err := ClearDir(dir)
	if err != nil {
		t.Fatalf("ClearDir returned error: %v", err)
	}
	if len(result.Removed) != 2 {
		t.Fatalf("expected two removals, got %v", result.Removed)
	}
	if len(result.Skipped) != 1 || result.Skipped[0] != nested {
		t.Fatalf("expected nested dir to be skipped, got %v", result.Skipped)
	}
	if _, err := os.Stat(filepath.Join(nested, "inner.sub")); err != nil {
		t.Fatalf("nested file should survive: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "stale.sub")); !os.IsNotExist(err) {
		t.Fatalf("stale file should be gone, stat err=%v", err)
	}
}

func TestIsEmptyDir(t *testing.T) {
	dir := t.TempDir()
	empty, err := IsEmptyDir(dir)
	if err != nil || !empty {
		t.Fatalf("expected empty dir, got empty=%v err=%v", empty, err)
	}
	if err := os.WriteFile(filepath.Join(dir, "a"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	empty, err = IsEmptyDir(dir)
	if err != nil || empty {
		t.Fatalf("expected non-empty dir, got empty=%v err=%v", empty, err)
	}
	if _, err := IsEmptyDir(filepath.Join(dir, "missing")); err == nil {
		t.Fatal("expected error for missing dir")
	}
}
