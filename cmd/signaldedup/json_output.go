package main

import (
	"encoding/json"
	"path/filepath"

	"github.com/spf13/cobra"

	"signaldedup/internal/hashing"
	"signaldedup/internal/pipeline"
)

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type scanReport struct {
	InputDir    string      `json:"input_dir"`
	OutputDir   string      `json:"output_dir"`
	TotalFiles  int         `json:"total_files"`
	Unique      int         `json:"unique"`
	TotalBytes  int64       `json:"total_bytes"`
	Reclaimable int64       `json:"reclaimable_bytes"`
	Groups      []scanGroup `json:"groups"`
}

type scanGroup struct {
	Index          int            `json:"index"`
	Digest         hashing.Digest `json:"digest"`
	Duplicate      bool           `json:"duplicate"`
	Members        []string       `json:"members"`
	Representative string         `json:"representative"`
}

func newScanReport(scan *pipeline.ScanResult, outputDir string) scanReport {
	groups := scan.Grouping.Groups()
	out := scanReport{
		InputDir:    scan.Root,
		OutputDir:   outputDir,
		TotalFiles:  scan.Grouping.TotalFiles(),
		Unique:      scan.Grouping.Len(),
		TotalBytes:  scan.Grouping.TotalBytes(),
		Reclaimable: scan.Grouping.ReclaimableBytes(),
		Groups:      make([]scanGroup, 0, len(groups)),
	}
	for _, group := range groups {
		members := make([]string, 0, len(group.Members))
		for _, m := range group.Members {
			members = append(members, filepath.ToSlash(m.Rel))
		}
		out.Groups = append(out.Groups, scanGroup{
			Index:          group.Index,
			Digest:         group.Digest,
			Duplicate:      group.Duplicate(),
			Members:        members,
			Representative: members[0],
		})
	}
	return out
}
