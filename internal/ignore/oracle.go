package ignore

import (
	"fmt"
	"path/filepath"

	"github.com/bmt-toolkit/bmt/internal/vfs"
)

// Result is the outcome of asking the oracle about one path.
type Result struct {
	Ignored bool
	Pattern *Pattern // the pattern that decided the outcome, nil if none matched
	Level   *Level   // the level the decision was made against
}

// Oracle answers "is path P ignored?" against a Store, honoring the rule
// that a path whose parent directory is ignored stays ignored regardless of
// its own patterns (spec.md §4.3). Only the immediate parent is checked;
// ancestors further up are not consulted.
type Oracle struct {
	fs    vfs.FS
	root  string
	store *Store
}

// NewOracle builds the hierarchical pattern Store rooted at root and wraps
// it in an Oracle.
func NewOracle(fsys vfs.FS, root string, additional []string, ignoreGitignore bool) (*Oracle, error) {
	store, err := NewStore(fsys, root, additional, ignoreGitignore)
	if err != nil {
		return nil, fmt.Errorf("build ignore store: %w", err)
	}
	return &Oracle{fs: fsys, root: root, store: store}, nil
}

// IsIgnored decides whether absPath is ignored. isDir should reflect the
// path's own metadata (missing metadata is treated as "not a directory" by
// the caller, per spec.md §7).
func (o *Oracle) IsIgnored(absPath string, isDir bool) (Result, error) {
	rel, err := filepath.Rel(o.root, absPath)
	if err != nil {
		return Result{}, fmt.Errorf("relativize %s: %w", absPath, err)
	}
	rel = filepath.ToSlash(rel)

	parent := filepath.Dir(absPath)
	if parent == absPath {
		parent = o.root
	}

	if parent != o.root {
		grand := filepath.Dir(parent)
		if grand == parent {
			grand = o.root
		}
		grandLevel, err := o.store.LevelFor(grand)
		if err != nil {
			return Result{}, err
		}
		parentRel, err := filepath.Rel(o.root, parent)
		if err != nil {
			return Result{}, fmt.Errorf("relativize %s: %w", parent, err)
		}
		parentRel = filepath.ToSlash(parentRel)

		if parentIgnored, parentPattern := grandLevel.IsIgnored(parentRel, true); parentIgnored {
			return Result{Ignored: true, Pattern: parentPattern, Level: grandLevel}, nil
		}
	}

	level, err := o.store.LevelFor(parent)
	if err != nil {
		return Result{}, err
	}
	ignored, pattern := level.IsIgnored(rel, isDir)
	return Result{Ignored: ignored, Pattern: pattern, Level: level}, nil
}

// ClearCache drops every memoized Level.
func (o *Oracle) ClearCache() {
	o.store.ClearCache()
}
