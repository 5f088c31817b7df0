package grouping

import (
	"fmt"
	"sort"

	"signaldedup/internal/discovery"
	"signaldedup/internal/hashing"
)

// Entry pairs a discovered file with its content digest.
type Entry struct {
	Record discovery.FileRecord
	Digest hashing.Digest
}

// Entries zips records with index-aligned digests.
func Entries(records []discovery.FileRecord, digests []hashing.Digest) ([]Entry, error) {
	if len(records) != len(digests) {
		return nil, fmt.Errorf("grouping: %d records but %d digests", len(records), len(digests))
	}
	entries := make([]Entry, len(records))
	for i := range records {
		entries[i] = Entry{Record: records[i], Digest: digests[i]}
	}
	return entries, nil
}

// DigestGroup is every discovered file sharing one digest.
type DigestGroup struct {
	// Index is the 1-based first-seen position of Digest.
	Index   int
	Digest  hashing.Digest
	Members []discovery.FileRecord
}

// Representative returns the first member in discovery order.
func (g DigestGroup) Representative() discovery.FileRecord {
	return g.Members[0]
}

// Duplicate reports whether the group holds more than one file.
func (g DigestGroup) Duplicate() bool {
	return len(g.Members) > 1
}

// Grouping is the digest to members mapping with fixed enumeration order.
type Grouping struct {
	order  []hashing.Digest
	groups map[hashing.Digest]*DigestGroup
	total  int
}

// Group builds a Grouping from entries in discovery order. The same path
// appearing twice is rejected since the result would no longer partition the
// discovered set.
func Group(entries []Entry) (*Grouping, error) {
	g := &Grouping{groups: make(map[hashing.Digest]*DigestGroup)}
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if _, dup := seen[e.Record.Path]; dup {
			return nil, fmt.Errorf("grouping: duplicate path %s", e.Record.Path)
		}
		seen[e.Record.Path] = struct{}{}

		group, ok := g.groups[e.Digest]
		if !ok {
			g.order = append(g.order, e.Digest)
			group = &DigestGroup{Index: len(g.order), Digest: e.Digest}
			g.groups[e.Digest] = group
		}
		group.Members = append(group.Members, e.Record)
		g.total++
	}
	return g, nil
}

// Groups returns the groups in first-seen order. The slice is a copy; member
// slices are shared and must not be modified.
func (g *Grouping) Groups() []DigestGroup {
	out := make([]DigestGroup, 0, len(g.order))
	for _, d := range g.order {
		out = append(out, *g.groups[d])
	}
	return out
}

// Len is the number of unique digests.
func (g *Grouping) Len() int {
	return len(g.order)
}

// TotalFiles is the number of files grouped.
func (g *Grouping) TotalFiles() int {
	return g.total
}

// DuplicateFiles is the number of files that are not representatives.
func (g *Grouping) DuplicateFiles() int {
	return g.total - len(g.order)
}

// TotalBytes sums the size of every grouped file.
func (g *Grouping) TotalBytes() int64 {
	var n int64
	for _, group := range g.groups {
		for _, m := range group.Members {
			n += m.Size
		}
	}
	return n
}

// ReclaimableBytes sums the size of every non-representative member.
func (g *Grouping) ReclaimableBytes() int64 {
	var n int64
	for _, group := range g.groups {
		for _, m := range group.Members[1:] {
			n += m.Size
		}
	}
	return n
}

// PlanItem is one representative to copy.
type PlanItem struct {
	Index  int
	Digest hashing.Digest
	Source discovery.FileRecord
	// Name is the destination base name.
	Name string
}

// ConsolidationPlan is the ordered list of copies to perform.
type ConsolidationPlan []PlanItem

// Plan derives the consolidation plan in first-seen order.
func (g *Grouping) Plan() ConsolidationPlan {
	plan := make(ConsolidationPlan, 0, len(g.order))
	for _, d := range g.order {
		group := g.groups[d]
		rep := group.Representative()
		plan = append(plan, PlanItem{
			Index:  group.Index,
			Digest: d,
			Source: rep,
			Name:   rep.Name(),
		})
	}
	return plan
}

// Bytes sums the size of every source in the plan.
func (p ConsolidationPlan) Bytes() int64 {
	var n int64
	for _, item := range p {
		n += item.Source.Size
	}
	return n
}

// Collisions returns, sorted, the destination names claimed by more than one
// item. Later copies overwrite earlier ones under these names.
func (p ConsolidationPlan) Collisions() []string {
	counts := make(map[string]int, len(p))
	for _, item := range p {
		counts[item.Name]++
	}
	var names []string
	for name, n := range counts {
		if n > 1 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
