// Package walker implements the streaming, depth-first traversal described
// in spec.md §4.4: it prunes ignored directories as it descends and hands
// back one annotated FilesystemEntry at a time.
//
// Reframed from the teacher's channel-fed goroutine walker
// (internal/walker/walker.go in the teacher) into a pull-based iterator per
// spec.md's design note §9 ("Lazy streams"): the consumer advances the walk,
// there is no cross-thread shared state, and closing early (breaking out of
// the range loop) stops the walk with no partial side effects.
package walker

import (
	"fmt"
	"path/filepath"

	"github.com/bmt-toolkit/bmt/internal/ignore"
	"github.com/bmt-toolkit/bmt/internal/vfs"
)

// Entry is one annotated filesystem node discovered during traversal.
type Entry struct {
	AbsPath string
	RelPath string
	IsDir   bool
	Ignore  ignore.Result
}

// Warning records a non-fatal problem encountered while walking (a
// directory that could not be listed, metadata that could not be read).
// Spec.md §7: these never abort the traversal.
type Warning struct {
	Path string
	Err  error
}

type dirFrame struct {
	children []string
	idx      int
}

// Traverser is a single depth-first walk rooted at one directory.
type Traverser struct {
	fs       vfs.FS
	root     string
	oracle   *ignore.Oracle
	stack    []*dirFrame
	warnings []Warning
	visited  map[string]bool
}

// New starts a traverser rooted at root, deciding ignore status for each
// entry via oracle.
func New(fsys vfs.FS, root string, oracle *ignore.Oracle) (*Traverser, error) {
	canonRoot, err := fsys.Canonicalize(root)
	if err != nil {
		return nil, fmt.Errorf("canonicalize root %s: %w", root, err)
	}

	t := &Traverser{
		fs:      fsys,
		root:    canonRoot,
		oracle:  oracle,
		visited: map[string]bool{canonRoot: true},
	}

	children, err := fsys.List(canonRoot)
	if err != nil {
		t.warnings = append(t.warnings, Warning{Path: canonRoot, Err: err})
		return t, nil
	}
	t.stack = append(t.stack, &dirFrame{children: children})
	return t, nil
}

// Next pulls the next entry from the walk. It returns (nil, nil) once the
// walk is exhausted.
func (t *Traverser) Next() (*Entry, error) {
	for len(t.stack) > 0 {
		top := t.stack[len(t.stack)-1]
		if top.idx >= len(top.children) {
			t.stack = t.stack[:len(t.stack)-1]
			continue
		}

		childPath := top.children[top.idx]
		top.idx++

		info, err := t.fs.Metadata(childPath)
		if err != nil {
			t.warnings = append(t.warnings, Warning{Path: childPath, Err: err})
		}
		isDir := info != nil && info.IsDir

		relPath, relErr := filepath.Rel(t.root, childPath)
		if relErr != nil {
			relPath = childPath
		}
		relPath = filepath.ToSlash(relPath)

		result, err := t.oracle.IsIgnored(childPath, isDir)
		if err != nil {
			return nil, fmt.Errorf("ignore check %s: %w", childPath, err)
		}

		entry := &Entry{AbsPath: childPath, RelPath: relPath, IsDir: isDir, Ignore: result}

		if isDir && !result.Ignored {
			t.descendInto(childPath)
		}

		return entry, nil
	}
	return nil, nil
}

// descendInto pushes a child directory's listing onto the walk stack,
// refusing to recurse into an absolute path already visited (the only
// symlink-cycle protection spec.md calls for; see Non-goals in §1).
func (t *Traverser) descendInto(dirPath string) {
	canon, err := t.fs.Canonicalize(dirPath)
	if err != nil {
		t.warnings = append(t.warnings, Warning{Path: dirPath, Err: err})
		return
	}
	if t.visited[canon] {
		return
	}
	t.visited[canon] = true

	children, err := t.fs.List(dirPath)
	if err != nil {
		t.warnings = append(t.warnings, Warning{Path: dirPath, Err: err})
		return
	}
	t.stack = append(t.stack, &dirFrame{children: children})
}

// Warnings returns every non-fatal problem accumulated so far.
func (t *Traverser) Warnings() []Warning {
	return t.warnings
}

// All returns a range-over-func iterator yielding every entry in the walk.
// Breaking out of the consuming range loop stops the walk immediately.
func (t *Traverser) All() func(yield func(*Entry, error) bool) {
	return func(yield func(*Entry, error) bool) {
		for {
			entry, err := t.Next()
			if err != nil {
				yield(nil, err)
				return
			}
			if entry == nil {
				return
			}
			if !yield(entry, nil) {
				return
			}
		}
	}
}

// TrackedFiles drains the traverser, returning non-directory entries that
// are not ignored.
func TrackedFiles(t *Traverser) ([]*Entry, error) {
	var out []*Entry
	for entry, err := range t.All() {
		if err != nil {
			return nil, err
		}
		if !entry.IsDir && !entry.Ignore.Ignored {
			out = append(out, entry)
		}
	}
	return out, nil
}

// IgnoredFiles drains the traverser, returning every ignored entry.
func IgnoredFiles(t *Traverser) ([]*Entry, error) {
	var out []*Entry
	for entry, err := range t.All() {
		if err != nil {
			return nil, err
		}
		if entry.Ignore.Ignored {
			out = append(out, entry)
		}
	}
	return out, nil
}
