package ignore

import (
	"path/filepath"

	"github.com/bmt-toolkit/bmt/internal/vfs"
)

// Level is the cumulative, ordered set of patterns effective inside one
// directory: its parent's patterns followed by whatever that directory's own
// .gitignore contributes.
type Level struct {
	Patterns []*Pattern
	Dir      string // absolute directory this level was computed for
	RelDir   string // Dir relative to the repo root; "" for the root itself
}

// IsIgnored walks the level's patterns in order and lets the last matching
// pattern win (spec.md §4.2).
func (l *Level) IsIgnored(relPath string, isDir bool) (bool, *Pattern) {
	var ignored bool
	var last *Pattern
	for _, p := range l.Patterns {
		if p.Matches(relPath, isDir) {
			ignored = !p.IsNegation
			last = p
		}
	}
	return ignored, last
}

// Store memoizes Level computation per directory, the way the teacher's
// IgnoreManager caches parsed rule sets (internal/walker/ignore.go), but
// keyed hierarchically rather than flattened into one global list so a
// nested .gitignore's patterns stay scoped to their BaseDirectory.
type Store struct {
	fs    vfs.FS
	root  string
	base  []*Pattern // root pattern stack: exclude file + root .gitignore + additional
	parse bool        // whether nested .gitignore files are read at all
	cache map[string]*Level
}

// NewStore builds the root pattern stack (.git/info/exclude, then the root
// .gitignore unless ignoreGitignore, then the caller's additional patterns)
// and returns a Store ready to compute per-directory levels.
func NewStore(fsys vfs.FS, root string, additional []string, ignoreGitignore bool) (*Store, error) {
	var patterns []*Pattern

	excludePath := filepath.Join(root, ".git", "info", "exclude")
	if fsys.Exists(excludePath) {
		data, err := fsys.ReadBytes(excludePath)
		if err == nil {
			patterns = append(patterns, ParseFile(data, excludePath, "")...)
		}
	}

	if !ignoreGitignore {
		rootGitignore := filepath.Join(root, ".gitignore")
		if fsys.Exists(rootGitignore) {
			data, err := fsys.ReadBytes(rootGitignore)
			if err == nil {
				patterns = append(patterns, ParseFile(data, rootGitignore, "")...)
			}
		}
	}

	for i, raw := range additional {
		p, err := CompilePattern(raw, "<additional>", i+1, "")
		if err != nil {
			continue
		}
		if p != nil {
			patterns = append(patterns, p)
		}
	}

	return &Store{
		fs:    fsys,
		root:  root,
		base:  patterns,
		parse: !ignoreGitignore,
		cache: make(map[string]*Level),
	}, nil
}

// LevelFor returns the memoized Level for dir, computing (and recursively
// computing ancestors) on first access.
func (s *Store) LevelFor(dir string) (*Level, error) {
	if cached, ok := s.cache[dir]; ok {
		return cached, nil
	}

	var inherited []*Pattern
	if dir == s.root {
		inherited = s.base
	} else {
		parentDir := filepath.Dir(dir)
		if parentDir == dir {
			parentDir = s.root
		}
		parentLevel, err := s.LevelFor(parentDir)
		if err != nil {
			return nil, err
		}
		inherited = parentLevel.Patterns
	}

	patterns := inherited
	relDir, err := filepath.Rel(s.root, dir)
	if err != nil {
		relDir = ""
	}
	relDir = filepath.ToSlash(relDir)
	if relDir == "." {
		relDir = ""
	}

	if s.parse {
		gitignorePath := filepath.Join(dir, ".gitignore")
		if s.fs.Exists(gitignorePath) {
			data, err := s.fs.ReadBytes(gitignorePath)
			if err == nil {
				local := ParseFile(data, gitignorePath, relDir)
				if len(local) > 0 {
					combined := make([]*Pattern, 0, len(inherited)+len(local))
					combined = append(combined, inherited...)
					combined = append(combined, local...)
					patterns = combined
				}
			}
		}
	}

	level := &Level{Patterns: patterns, Dir: dir, RelDir: relDir}
	s.cache[dir] = level
	return level, nil
}

// ClearCache discards every memoized Level. Patterns that were already
// compiled are simply dropped, not invalidated in place; the next LevelFor
// call recomputes and reparses from disk.
func (s *Store) ClearCache() {
	s.cache = make(map[string]*Level)
}
