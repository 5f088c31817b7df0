package report

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"signaldedup/internal/grouping"
)

// Title is the splash banner text.
const Title = "signaldedup - a file deduplicator for Flipper Zero signal captures"

// Printer writes human-readable run output.
type Printer struct {
	out    io.Writer
	styles styles
}

// NewPrinter binds a Printer to out.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{
		out:    out,
		styles: newStyles(lipgloss.NewRenderer(out)),
	}
}

// Writer returns the underlying writer.
func (p *Printer) Writer() io.Writer {
	return p.out
}

// Splash prints the boxed program title surrounded by blank lines.
func (p *Printer) Splash() {
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, p.styles.banner.Render(Title))
	fmt.Fprintln(p.out)
}

// Groups prints every group as a tree in enumeration order, with a blank
// line between groups.
//
//	[1] MD5: 664b11e1cffa5af068e2cc0e22d2822c [3 matches]
//	 ├─ a/file1.sub
//	 └─ c/file3.sub
func (p *Printer) Groups(groups []grouping.DigestGroup) {
	for i, group := range groups {
		header := fmt.Sprintf("[%d] MD5: %s [%d matches]", group.Index, group.Digest, len(group.Members))
		fmt.Fprintln(p.out, p.styles.header.Render(header))
		for j, member := range group.Members {
			branch := " ├─ "
			if j == len(group.Members)-1 {
				branch = " └─ "
			}
			fmt.Fprintln(p.out, branch+filepath.ToSlash(member.Rel))
		}
		if i < len(groups)-1 {
			fmt.Fprintln(p.out)
		}
	}
}

// NoFiles reports an empty discovery.
func (p *Printer) NoFiles(root string, extensions []string) {
	fmt.Fprintf(p.out, "No files with extension %v found in '%s'. Nothing to do.\n", extensions, root)
}

// OutputExists reports the existence check for the output directory.
func (p *Printer) OutputExists(dir string, exists bool) {
	if exists {
		fmt.Fprintf(p.out, "Checking if '%s' exists...   yes\n", dir)
		return
	}
	fmt.Fprintf(p.out, "Checking if '%s' exists...   no\n", dir)
	fmt.Fprintf(p.out, "Creating '%s'...\n", dir)
}

// OutputEmpty reports the emptiness check for the output directory.
func (p *Printer) OutputEmpty(dir string, empty bool) {
	answer := "no"
	if empty {
		answer = "yes"
	}
	fmt.Fprintf(p.out, "Checking if '%s' is empty... %s\n", dir, answer)
}

// Cleared lists what the clear step removed and which subdirectories it left.
func (p *Printer) Cleared(dir string, removed, skipped []string) {
	fmt.Fprintf(p.out, "Deleting the contents of '%s'...\n", dir)
	for _, path := range removed {
		fmt.Fprintln(p.out, p.styles.danger.Render(fmt.Sprintf(" [!] DESTROYED '%s'", path)))
	}
	for _, path := range skipped {
		fmt.Fprintln(p.out, p.styles.muted.Render(fmt.Sprintf(" [-] kept directory '%s'", path)))
	}
}

// CopyStart announces the copy phase.
func (p *Printer) CopyStart() {
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, "Copying 1 file per unique signal...")
}

// Copied prints one copy line. The last line is followed by a blank line.
func (p *Printer) Copied(item grouping.PlanItem, last bool) {
	branch := "├─"
	if last {
		branch = "└─"
	}
	fmt.Fprintf(p.out, "%s[%d] MD5: %s ─> Copied %s\n", branch, item.Index, item.Digest, item.Name)
	if last {
		fmt.Fprintln(p.out)
	}
}

// Summary describes the result of a consolidation.
type Summary struct {
	TotalFiles       int
	Copied           int
	CopiedBytes      int64
	ReclaimableBytes int64
}

// Done prints the closing summary.
func (p *Printer) Done(s Summary) {
	line := fmt.Sprintf("Done! (Reduced %d files to %d)", s.TotalFiles, s.Copied)
	fmt.Fprintln(p.out, p.styles.success.Render(line))
	fmt.Fprintf(p.out, "Kept %s, skipped %s of duplicates.\n",
		humanize.Bytes(uint64(max(s.CopiedBytes, 0))),
		humanize.Bytes(uint64(max(s.ReclaimableBytes, 0))),
	)
}

// Stats prints a one line overview of a grouping.
func (p *Printer) Stats(g *grouping.Grouping) {
	fmt.Fprintf(p.out, "%d files (%s), %d unique, %d duplicates (%s reclaimable)\n",
		g.TotalFiles(), humanize.Bytes(uint64(max(g.TotalBytes(), 0))),
		g.Len(), g.DuplicateFiles(), humanize.Bytes(uint64(max(g.ReclaimableBytes(), 0))))
}

// Aborted prints the message shown when the user declines.
func (p *Printer) Aborted() {
	fmt.Fprintln(p.out, "Aborting...")
}

// Warn prints a highlighted warning line.
func (p *Printer) Warn(format string, args ...any) {
	fmt.Fprintln(p.out, p.styles.warning.Render(" [!] WARNING: "+fmt.Sprintf(format, args...)))
}

// Notice prints a plain informational line.
func (p *Printer) Notice(format string, args ...any) {
	fmt.Fprintln(p.out, fmt.Sprintf(format, args...))
}
