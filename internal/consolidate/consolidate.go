package consolidate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"signaldedup/internal/fileutil"
	"signaldedup/internal/grouping"
	"signaldedup/internal/hashing"
	"signaldedup/internal/logging"
	"signaldedup/internal/preflight"
	"signaldedup/internal/report"
)

// Confirmer answers yes/no questions.
type Confirmer interface {
	Confirm(question string, defaultYes bool) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(question string, defaultYes bool) (bool, error)

// Confirm calls f.
func (f ConfirmFunc) Confirm(question string, defaultYes bool) (bool, error) {
	return f(question, defaultYes)
}

// Reporter receives progress for display. *report.Printer implements it.
type Reporter interface {
	Notice(format string, args ...any)
	Warn(format string, args ...any)
	OutputExists(dir string, exists bool)
	OutputEmpty(dir string, empty bool)
	Cleared(dir string, removed, skipped []string)
	CopyStart()
	Copied(item grouping.PlanItem, last bool)
	Done(s report.Summary)
}

// Options configures a consolidation.
type Options struct {
	OutputDir    string
	AssumeYes    bool
	VerifyCopies bool
}

// Result describes what a consolidation changed.
type Result struct {
	CreatedDir bool
	Removed    []string
	Skipped    []string
	Copied     []string
	Summary    report.Summary
}

// Consolidator performs the copy step.
type Consolidator struct {
	opts     Options
	confirm  Confirmer
	reporter Reporter
	logger   *slog.Logger
}

// New builds a Consolidator. confirm may be nil only when AssumeYes is set;
// a nil reporter discards progress output.
func New(opts Options, confirm Confirmer, reporter Reporter, logger *slog.Logger) (*Consolidator, error) {
	if strings.TrimSpace(opts.OutputDir) == "" {
		return nil, errors.New("consolidate: output directory is required")
	}
	if confirm == nil && !opts.AssumeYes {
		return nil, errors.New("consolidate: confirmer is required unless assume-yes is set")
	}
	if reporter == nil {
		reporter = report.NewPrinter(io.Discard)
	}
	return &Consolidator{
		opts:     opts,
		confirm:  confirm,
		reporter: reporter,
		logger:   logging.NewComponentLogger(logger, "consolidate"),
	}, nil
}

// Consolidate copies the representative of every group in g into the output
// directory. A declined confirmation returns ErrUserAborted.
func (c *Consolidator) Consolidate(ctx context.Context, g *grouping.Grouping) (Result, error) {
	var result Result
	dir := c.opts.OutputDir
	plan := g.Plan()

	c.reporter.Notice("")
	ok, err := c.ask(fmt.Sprintf("Copy %d unique signals to '%s'?", len(plan), dir))
	if err != nil {
		return result, err
	}
	if !ok {
		return result, ErrUserAborted
	}

	created, err := c.ensureDir(ctx, dir)
	if err != nil {
		return result, err
	}
	result.CreatedDir = created

	empty, err := fileutil.IsEmptyDir(dir)
	if err != nil {
		return result, &OutputDirUnavailableError{Dir: dir, Err: err}
	}
	c.reporter.OutputEmpty(dir, empty)
	if !empty {
		ok, err := c.ask(fmt.Sprintf(" [!] WARNING: OK to delete the contents of '%s'?", dir))
		if err != nil {
			return result, err
		}
		if !ok {
			return result, ErrUserAborted
		}
		cleared, err := fileutil.ClearDir(dir)
		result.Removed, result.Skipped = cleared.Removed, cleared.Skipped
		c.reporter.Cleared(dir, cleared.Removed, cleared.Skipped)
		if err != nil {
			return result, &OutputDirUnavailableError{Dir: dir, Err: err}
		}
		c.logger.InfoContext(ctx, "output directory cleared",
			logging.String(logging.FieldPath, dir),
			logging.Int("removed", len(cleared.Removed)),
			logging.Int("skipped_dirs", len(cleared.Skipped)),
		)
	}

	if space := preflight.CheckFreeSpace("Output directory", dir, plan.Bytes()); !space.Passed {
		c.reporter.Warn("%s", space.Detail)
		logging.WarnWithContext(ctx, c.logger, "insufficient free space", "free_space_low",
			"free space on the output volume before retrying", logging.String(logging.FieldPath, dir))
	}
	if collisions := plan.Collisions(); len(collisions) > 0 {
		logging.WarnWithContext(ctx, c.logger, "representatives share a file name; later copies overwrite earlier ones",
			"name_collision", "rename the captures to keep every unique signal", logging.Strings("names", collisions))
	}

	c.reporter.CopyStart()
	for i, item := range plan {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		dest := filepath.Join(dir, item.Name)
		if err := c.copy(item.Source.Path, dest); err != nil {
			c.logger.ErrorContext(ctx, "copy failed",
				logging.String(logging.FieldPath, item.Source.Path),
				logging.String("dest", dest),
				logging.String(logging.FieldEventType, "copy_failed"),
				logging.Error(err),
			)
			return result, &CopyFailedError{Source: item.Source.Path, Dest: dest, Err: err}
		}
		c.logger.DebugContext(ctx, "copied representative",
			logging.String(logging.FieldPath, item.Source.Path),
			logging.String(logging.FieldDigest, item.Digest.String()),
		)
		result.Copied = append(result.Copied, dest)
		c.reporter.Copied(item, i == len(plan)-1)
	}

	result.Summary = report.Summary{
		TotalFiles:       g.TotalFiles(),
		Copied:           len(plan),
		CopiedBytes:      plan.Bytes(),
		ReclaimableBytes: g.ReclaimableBytes(),
	}
	c.reporter.Done(result.Summary)
	return result, nil
}

func (c *Consolidator) ask(question string) (bool, error) {
	if c.opts.AssumeYes {
		return true, nil
	}
	ok, err := c.confirm.Confirm(question, true)
	if err != nil {
		return false, fmt.Errorf("confirm: %w", err)
	}
	return ok, nil
}

// ensureDir creates dir when missing and reports whether it did.
func (c *Consolidator) ensureDir(ctx context.Context, dir string) (bool, error) {
	info, err := os.Stat(dir)
	switch {
	case err == nil:
		if !info.IsDir() {
			return false, &OutputDirUnavailableError{Dir: dir, Err: errors.New("exists and is not a directory")}
		}
		c.reporter.OutputExists(dir, true)
		return false, nil
	case errors.Is(err, fs.ErrNotExist):
		c.reporter.OutputExists(dir, false)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return false, &OutputDirUnavailableError{Dir: dir, Err: err}
		}
		c.logger.InfoContext(ctx, "output directory created", logging.String(logging.FieldPath, dir))
		return true, nil
	default:
		return false, &OutputDirUnavailableError{Dir: dir, Err: err}
	}
}

func (c *Consolidator) copy(src, dst string) error {
	if c.opts.VerifyCopies {
		return fileutil.CopyFileVerified(src, dst, hashing.New)
	}
	return fileutil.CopyFile(src, dst)
}
