package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"signaldedup/internal/config"
	"signaldedup/internal/consolidate"
	"signaldedup/internal/discovery"
	"signaldedup/internal/grouping"
	"signaldedup/internal/hashing"
	"signaldedup/internal/logging"
	"signaldedup/internal/report"
)

// Options is every parameter a run needs.
type Options struct {
	InputDir     string
	OutputDir    string
	Extensions   []string
	ExcludeDirs  []string
	SkipHidden   bool
	ChunkSize    int
	AssumeYes    bool
	VerifyCopies bool
}

// OptionsFromConfig copies the run parameters out of a normalized config.
// AssumeYes is a per-invocation flag and is left false.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		InputDir:     cfg.Paths.InputDir,
		OutputDir:    cfg.Paths.OutputDir,
		Extensions:   append([]string(nil), cfg.Scan.Extensions...),
		ExcludeDirs:  append([]string(nil), cfg.Scan.ExcludeDirs...),
		SkipHidden:   cfg.Scan.SkipHidden,
		ChunkSize:    cfg.Hash.ChunkSize,
		VerifyCopies: cfg.Output.VerifyCopies,
	}
}

// Outcome classifies how a Run ended.
type Outcome int

const (
	OutcomeDone Outcome = iota
	OutcomeNothingToDo
	OutcomeAborted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeDone:
		return "done"
	case OutcomeNothingToDo:
		return "nothing_to_do"
	case OutcomeAborted:
		return "aborted"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// ScanResult is the read-only part of a run.
type ScanResult struct {
	Root     string
	Records  []discovery.FileRecord
	Grouping *grouping.Grouping
}

// RunResult is the outcome of a full run.
type RunResult struct {
	Outcome       Outcome
	Scan          *ScanResult
	Consolidation consolidate.Result
}

// Runner executes pipeline flows.
type Runner struct {
	opts    Options
	confirm consolidate.Confirmer
	printer *report.Printer
	base    *slog.Logger
	logger  *slog.Logger
}

// NewRunner builds a Runner. A nil printer discards output.
func NewRunner(opts Options, confirm consolidate.Confirmer, printer *report.Printer, logger *slog.Logger) *Runner {
	if printer == nil {
		printer = report.NewPrinter(io.Discard)
	}
	return &Runner{
		opts:    opts,
		confirm: confirm,
		printer: printer,
		base:    logger,
		logger:  logging.NewComponentLogger(logger, "pipeline"),
	}
}

// Scan discovers, hashes and groups files without writing anything.
func (r *Runner) Scan(ctx context.Context) (*ScanResult, error) {
	start := time.Now()
	d, err := discovery.New(discovery.Options{
		Root:         r.opts.InputDir,
		Extensions:   r.opts.Extensions,
		ExcludeNames: r.opts.ExcludeDirs,
		ExcludePaths: []string{r.opts.OutputDir},
		SkipHidden:   r.opts.SkipHidden,
	}, r.base)
	if err != nil {
		return nil, err
	}
	records, err := d.Discover(ctx)
	if err != nil {
		return nil, err
	}

	digests, err := hashing.NewHasher(r.opts.ChunkSize, r.base).HashAll(ctx, records)
	if err != nil {
		return nil, err
	}
	entries, err := grouping.Entries(records, digests)
	if err != nil {
		return nil, err
	}
	g, err := grouping.Group(entries)
	if err != nil {
		return nil, err
	}

	r.logger.InfoContext(ctx, "scan complete",
		logging.Int("files", g.TotalFiles()),
		logging.Int("unique", g.Len()),
		logging.Duration("elapsed", time.Since(start)),
	)
	return &ScanResult{Root: d.Root(), Records: records, Grouping: g}, nil
}

// Run scans, prints the groups and consolidates. A declined confirmation
// yields OutcomeAborted together with an error matching
// consolidate.ErrUserAborted.
func (r *Runner) Run(ctx context.Context) (RunResult, error) {
	var result RunResult
	scan, err := r.Scan(ctx)
	if err != nil {
		return result, err
	}
	result.Scan = scan

	if len(scan.Records) == 0 {
		result.Outcome = OutcomeNothingToDo
		r.printer.NoFiles(scan.Root, r.opts.Extensions)
		return result, nil
	}

	r.printer.Groups(scan.Grouping.Groups())

	c, err := consolidate.New(consolidate.Options{
		OutputDir:    r.opts.OutputDir,
		AssumeYes:    r.opts.AssumeYes,
		VerifyCopies: r.opts.VerifyCopies,
	}, r.confirm, r.printer, r.base)
	if err != nil {
		return result, err
	}
	result.Consolidation, err = c.Consolidate(ctx, scan.Grouping)
	if errors.Is(err, consolidate.ErrUserAborted) {
		result.Outcome = OutcomeAborted
		r.printer.Aborted()
		r.logger.InfoContext(ctx, "run aborted by user")
		return result, err
	}
	if err != nil {
		return result, err
	}
	result.Outcome = OutcomeDone
	return result, nil
}
