package report

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"

	"signaldedup/internal/discovery"
	"signaldedup/internal/grouping"
	"signaldedup/internal/hashing"
)

func mustDigest(t *testing.T, s string) hashing.Digest {
	t.Helper()
	var d hashing.Digest
	raw, err := hex.DecodeString(s)
	if err != nil || len(raw) != len(d) {
		t.Fatalf("bad digest %q: %v", s, err)
	}
	copy(d[:], raw)
	return d
}

func sampleGrouping(t *testing.T) *grouping.Grouping {
	t.Helper()
	d1 := mustDigest(t, "664b11e1cffa5af068e2cc0e22d2822c")
	d2 := mustDigest(t, "9a0e7420ec65fc64f057c27d12adfe68")
	g, err := grouping.Group([]grouping.Entry{
		{Record: discovery.FileRecord{Path: "/in/a/file1.sub", Rel: "a/file1.sub", Size: 2048}, Digest: d1},
		{Record: discovery.FileRecord{Path: "/in/b/file1.sub", Rel: "b/file1.sub", Size: 2048}, Digest: d1},
		{Record: discovery.FileRecord{Path: "/in/c/file3.sub", Rel: "c/file3.sub", Size: 2048}, Digest: d1},
		{Record: discovery.FileRecord{Path: "/in/file2.sub", Rel: "file2.sub", Size: 10}, Digest: d2},
	})
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestGroupsTree(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).Groups(sampleGrouping(t).Groups())

	want := strings.Join([]string{
		"[1] MD5: 664b11e1cffa5af068e2cc0e22d2822c [3 matches]",
		" ├─ a/file1.sub",
		" ├─ b/file1.sub",
		" └─ c/file3.sub",
		"",
		"[2] MD5: 9a0e7420ec65fc64f057c27d12adfe68 [1 matches]",
		" └─ file2.sub",
		"",
	}, "\n")
	if buf.String() != want {
		t.Fatalf("unexpected tree:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestCopiedLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	plan := sampleGrouping(t).Plan()
	for i, item := range plan {
		p.Copied(item, i == len(plan)-1)
	}
	want := "├─[1] MD5: 664b11e1cffa5af068e2cc0e22d2822c ─> Copied file1.sub\n" +
		"└─[2] MD5: 9a0e7420ec65fc64f057c27d12adfe68 ─> Copied file2.sub\n\n"
	if buf.String() != want {
		t.Fatalf("unexpected copy lines %q", buf.String())
	}
}

func TestDoneSummary(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).Done(Summary{TotalFiles: 4, Copied: 2, CopiedBytes: 2058, ReclaimableBytes: 4096})
	out := buf.String()
	if !strings.Contains(out, "Done! (Reduced 4 files to 2)") {
		t.Fatalf("missing summary line: %q", out)
	}
	if !strings.Contains(out, "Kept 2.1 kB, skipped 4.1 kB of duplicates.") {
		t.Fatalf("missing size line: %q", out)
	}
}

func TestSplashBox(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).Splash()
	out := buf.String()
	for _, want := range []string{"┏", "┛", "┃ " + Title + " ┃"} {
		if !strings.Contains(out, want) {
			t.Fatalf("splash missing %q:\n%s", want, out)
		}
	}
}

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).Table(sampleGrouping(t).Groups())
	out := buf.String()
	for _, want := range []string{"MD5", "Representative", "664b11e1cffa5af068e2cc0e22d2822c", "a/file1.sub", "file2.sub"} {
		if !strings.Contains(out, want) {
			t.Fatalf("table missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "b/file1.sub") {
		t.Fatalf("table should list representatives only:\n%s", out)
	}
}

func TestRenderTableNoHeaders(t *testing.T) {
	if got := renderTable(nil, nil, nil); got != "" {
		t.Fatalf("expected empty render, got %q", got)
	}
}

func TestOutputStatusAndClear(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	p.OutputExists("out", false)
	p.OutputEmpty("out", false)
	p.Cleared("out", []string{"out/stale.sub"}, []string{"out/keep"})
	p.Warn("low on space: %d", 3)
	p.Aborted()
	out := buf.String()
	for _, want := range []string{
		"Checking if 'out' exists...   no",
		"Creating 'out'...",
		"Checking if 'out' is empty... no",
		"[!] DESTROYED 'out/stale.sub'",
		"[-] kept directory 'out/keep'",
		"[!] WARNING: low on space: 3",
		"Aborting...",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestStats(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).Stats(sampleGrouping(t))
	if got := buf.String(); got != "4 files (6.2 kB), 2 unique, 2 duplicates (4.1 kB reclaimable)\n" {
		t.Fatalf("unexpected stats %q", got)
	}
}
