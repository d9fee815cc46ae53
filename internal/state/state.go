// Package state persists the project state file (.bmt.json) described in
// spec.md §6. Persistence of this file is explicitly out of the core's
// scope (spec.md §1, "Out of scope: Persistence of the project state file")
// — it is the CLI's external collaborator, so unlike internal/ignore,
// internal/walker, and internal/manifest it talks to vfs.FS only for reads
// and to os directly for writes; the read-only C6 interface never needed a
// write method because nothing in the core persists anything.
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmt-toolkit/bmt/internal/manifest"
	"github.com/bmt-toolkit/bmt/internal/vfs"
)

// ErrNotAProject means no .bmt.json exists under the given root: "absence
// of the file ⇒ no project" (spec.md §6).
var ErrNotAProject = errors.New("not a bmt project: no .bmt.json found")

// ErrCorrupt means .bmt.json exists but could not be read or parsed,
// distinct from ErrNotAProject per spec.md §6/§7.
var ErrCorrupt = errors.New(".bmt.json is malformed")

// DiscoveredMod is one persisted discovery result.
type DiscoveredMod struct {
	Name         string `json:"name"`
	ManifestPath string `json:"manifestPath"`
	Included     bool   `json:"included"`
	DiscoveredAt int64  `json:"discoveredAt"`
}

// ProjectState is the .bmt.json document (spec.md §6).
type ProjectState struct {
	RootPath             string          `json:"rootPath"`
	DiscoveredMods       []DiscoveredMod `json:"discoveredMods"`
	LastScanMilliseconds int64           `json:"lastScanMilliseconds"`
}

func statePath(root string) string {
	return filepath.Join(root, manifest.StateFileName)
}

// Exists reports whether root has a project state file, without attempting
// to parse it.
func Exists(fsys vfs.FS, root string) bool {
	return fsys.Exists(statePath(root))
}

// Load reads and parses the project state file, distinguishing "absent"
// (ErrNotAProject) from "present but unreadable/malformed" (ErrCorrupt).
func Load(fsys vfs.FS, root string) (*ProjectState, error) {
	path := statePath(root)
	if !fsys.Exists(path) {
		return nil, ErrNotAProject
	}

	data, err := fsys.ReadBytes(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	var st ProjectState
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return &st, nil
}

// Save writes the project state file, creating root if necessary.
func Save(root string, st *ProjectState) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal project state: %w", err)
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return fmt.Errorf("create project root %s: %w", root, err)
	}
	if err := os.WriteFile(statePath(root), data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", statePath(root), err)
	}
	return nil
}
