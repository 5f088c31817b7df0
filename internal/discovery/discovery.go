package discovery

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"signaldedup/internal/logging"
)

// FileRecord is one discovered capture file.
type FileRecord struct {
	// Path is the absolute path used for reading.
	Path string `json:"path"`
	// Rel is Path relative to the discovery root, used for display.
	Rel string `json:"rel"`
	// Ext includes the leading dot.
	Ext  string `json:"ext"`
	Size int64  `json:"size"`
}

// Name returns the base file name.
func (r FileRecord) Name() string {
	return filepath.Base(r.Path)
}

// Options scopes a discovery walk.
type Options struct {
	Root string
	// Extensions are matched case-sensitively against the final path
	// component's extension, dot included.
	Extensions []string
	// ExcludeNames prunes directories whose base name matches, at any depth.
	ExcludeNames []string
	// ExcludePaths prunes directories by absolute path. The output directory
	// belongs here so consolidated copies are never rescanned.
	ExcludePaths []string
	SkipHidden   bool
}

// Discoverer walks a directory tree collecting capture files.
type Discoverer struct {
	root         string
	// walkRoot is root with symlinks resolved. WalkDir does not descend a
	// symlinked root, so the walk starts here and records are rebased on root.
	walkRoot     string
	extensions   map[string]struct{}
	excludeNames map[string]struct{}
	excludePaths map[string]struct{}
	skipHidden   bool
	logger       *slog.Logger
}

// New validates opts and builds a Discoverer.
func New(opts Options, logger *slog.Logger) (*Discoverer, error) {
	root := strings.TrimSpace(opts.Root)
	if root == "" {
		return nil, errors.New("discovery: root is required")
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("discovery: resolve root: %w", err)
	}
	if len(opts.Extensions) == 0 {
		return nil, errors.New("discovery: at least one extension is required")
	}

	walkRoot, err := resolveSymlinks(absRoot)
	if err != nil {
		return nil, fmt.Errorf("discovery: resolve root: %w", err)
	}

	d := &Discoverer{
		root:         absRoot,
		walkRoot:     walkRoot,
		extensions:   toSet(opts.Extensions),
		excludeNames: toSet(opts.ExcludeNames),
		excludePaths: make(map[string]struct{}, len(opts.ExcludePaths)),
		skipHidden:   opts.SkipHidden,
		logger:       logging.NewComponentLogger(logger, "discovery"),
	}
	for _, p := range opts.ExcludePaths {
		if strings.TrimSpace(p) == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("discovery: resolve excluded path %q: %w", p, err)
		}
		resolved, err := resolveSymlinks(abs)
		if err != nil {
			return nil, fmt.Errorf("discovery: resolve excluded path %q: %w", p, err)
		}
		d.excludePaths[resolved] = struct{}{}
	}
	return d, nil
}

// resolveSymlinks evaluates symlinks in an absolute path. Paths that do not
// exist yet are returned unchanged; Discover reports a missing root.
func resolveSymlinks(abs string) (string, error) {
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return abs, nil
		}
		return "", err
	}
	return resolved, nil
}

// Root returns the absolute discovery root as given, symlinks unresolved.
func (d *Discoverer) Root() string {
	return d.root
}

// Discover walks the root in lexical order and returns every matching file.
// Any unreadable directory aborts the walk: a partial scan would misclassify
// duplicates.
func (d *Discoverer) Discover(ctx context.Context) ([]FileRecord, error) {
	info, err := os.Stat(d.walkRoot)
	if err != nil {
		return nil, fmt.Errorf("discover %s: %w", d.root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("discover %s: not a directory", d.root)
	}

	var records []FileRecord
	err = filepath.WalkDir(d.walkRoot, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return fmt.Errorf("discover %s: %w", d.rebase(path), walkErr)
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if entry.IsDir() {
			if path == d.walkRoot {
				return nil
			}
			if d.prune(path, entry.Name()) {
				d.logger.DebugContext(ctx, "pruned directory", logging.String(logging.FieldPath, d.rebase(path)))
				return filepath.SkipDir
			}
			return nil
		}

		name := entry.Name()
		if d.skipHidden && isHidden(name) {
			return nil
		}
		ext := Extension(name)
		if _, ok := d.extensions[ext]; !ok {
			return nil
		}
		// Directory symlinks are reported as non-dirs by WalkDir and never
		// descended; stat resolves file symlinks to their target.
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("discover %s: %w", d.rebase(path), err)
		}
		if info.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(d.walkRoot, path)
		if err != nil {
			return fmt.Errorf("discover %s: %w", path, err)
		}
		records = append(records, FileRecord{Path: filepath.Join(d.root, rel), Rel: rel, Ext: ext, Size: info.Size()})
		return nil
	})
	if err != nil {
		return nil, err
	}

	d.logger.InfoContext(ctx, "discovery complete",
		logging.String("root", d.root),
		logging.Int("files", len(records)),
	)
	return records, nil
}

// rebase maps a path under walkRoot back under root.
func (d *Discoverer) rebase(path string) string {
	rel, err := filepath.Rel(d.walkRoot, path)
	if err != nil {
		return path
	}
	return filepath.Join(d.root, rel)
}

func (d *Discoverer) prune(path, name string) bool {
	if _, ok := d.excludeNames[name]; ok {
		return true
	}
	if _, ok := d.excludePaths[path]; ok {
		return true
	}
	return d.skipHidden && isHidden(name)
}

// Extension returns the extension of a base name, dot included. Leading dots
// are not extension separators, so ".sub" has no extension while "a.sub"
// and ".hidden.sub" both yield ".sub".
func Extension(name string) string {
	trimmed := strings.TrimLeft(name, ".")
	if trimmed == "" {
		return ""
	}
	return filepath.Ext(trimmed)
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
