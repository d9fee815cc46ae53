package manifest

import (
	"path"
	"strings"

	"github.com/gobwas/glob"

	"github.com/bmt-toolkit/bmt/internal/ignore"
	"github.com/bmt-toolkit/bmt/internal/vfs"
	"github.com/bmt-toolkit/bmt/internal/walker"
)

// StateFileName is the project state file's name; it is always excluded
// from discovery (spec.md §4.5).
const StateFileName = ".bmt.json"

var baseIgnores = []string{".git/", StateFileName}

// DiscoveredManifest pairs a discovered manifest's absolute path with its
// parsed, validated metadata.
type DiscoveredManifest struct {
	AbsPath  string
	Metadata Metadata
}

// DiscoverOptions configures one discovery run.
type DiscoverOptions struct {
	RespectGitignore  bool
	AdditionalIgnores []string
	// Strict selects the parse_and_validate mode (spec.md §9): strict drops
	// semantically invalid manifests, lenient keeps them.
	Strict bool
}

// DiscoverManifests walks root and returns every JSON file (other than
// StateFileName) that parses as a manifest and, when opts.Strict is set,
// also validates, per spec.md §4.5.
func DiscoverManifests(fsys vfs.FS, root string, opts DiscoverOptions) ([]DiscoveredManifest, []walker.Warning, error) {
	if opts.RespectGitignore || len(opts.AdditionalIgnores) > 0 {
		return discoverHierarchical(fsys, root, opts)
	}
	return discoverLegacy(fsys, root, opts)
}

func discoverHierarchical(fsys vfs.FS, root string, opts DiscoverOptions) ([]DiscoveredManifest, []walker.Warning, error) {
	additional := make([]string, 0, len(baseIgnores)+len(opts.AdditionalIgnores))
	additional = append(additional, baseIgnores...)
	additional = append(additional, opts.AdditionalIgnores...)

	oracle, err := ignore.NewOracle(fsys, root, additional, !opts.RespectGitignore)
	if err != nil {
		return nil, nil, err
	}
	trav, err := walker.New(fsys, root, oracle)
	if err != nil {
		return nil, nil, err
	}

	var results []DiscoveredManifest
	for entry, terr := range trav.All() {
		if terr != nil {
			return results, trav.Warnings(), terr
		}
		if entry.IsDir || entry.Ignore.Ignored {
			continue
		}
		if !isManifestCandidate(entry.RelPath) {
			continue
		}
		if md := readAndValidate(fsys, entry.AbsPath, opts.Strict); md != nil {
			results = append(results, DiscoveredManifest{AbsPath: entry.AbsPath, Metadata: *md})
		}
	}
	return results, trav.Warnings(), nil
}

// discoverLegacy is the "no gitignore respect and no additional patterns"
// fallback: a crude path.contains(pattern) || simple_glob(pattern) test,
// retained only for that one case per spec.md design note §9 ("Legacy
// substring ignore path"). The simple_glob half is backed by gobwas/glob,
// grounded on vbhat161/go-path-ignore's match/glob wrapper.
func discoverLegacy(fsys vfs.FS, root string, opts DiscoverOptions) ([]DiscoveredManifest, []walker.Warning, error) {
	var results []DiscoveredManifest
	var warnings []walker.Warning

	globs := make([]glob.Glob, 0, len(baseIgnores))
	for _, pattern := range baseIgnores {
		if g, err := glob.Compile(strings.TrimSuffix(pattern, "/")); err == nil {
			globs = append(globs, g)
		}
	}

	var walk func(dir string) error
	walk = func(dir string) error {
		children, err := fsys.List(dir)
		if err != nil {
			warnings = append(warnings, walker.Warning{Path: dir, Err: err})
			return nil
		}
		for _, child := range children {
			info, err := fsys.Metadata(child)
			if err != nil {
				warnings = append(warnings, walker.Warning{Path: child, Err: err})
				continue
			}
			if legacyIgnored(child, globs) {
				continue
			}
			if info != nil && info.IsDir {
				if err := walk(child); err != nil {
					return err
				}
				continue
			}
			if !isManifestCandidate(child) {
				continue
			}
			if md := readAndValidate(fsys, child, opts.Strict); md != nil {
				results = append(results, DiscoveredManifest{AbsPath: child, Metadata: *md})
			}
		}
		return nil
	}

	if err := walk(root); err != nil {
		return results, warnings, err
	}
	return results, warnings, nil
}

func legacyIgnored(p string, globs []glob.Glob) bool {
	base := path.Base(p)
	for _, pattern := range baseIgnores {
		trimmed := strings.TrimSuffix(pattern, "/")
		if strings.Contains(p, trimmed) {
			return true
		}
	}
	for _, g := range globs {
		if g.Match(base) {
			return true
		}
	}
	return false
}

func isManifestCandidate(relPath string) bool {
	name := path.Base(relPath)
	return strings.HasSuffix(name, ".json") && name != StateFileName
}

func readAndValidate(fsys vfs.FS, absPath string, strict bool) *Metadata {
	data, err := fsys.ReadBytes(absPath)
	if err != nil {
		return nil
	}
	return ParseAndValidate(data, strict)
}
