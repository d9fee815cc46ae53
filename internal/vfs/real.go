package vfs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// RealFS implements FS against the host filesystem.
type RealFS struct{}

// NewRealFS returns the host filesystem implementation.
func NewRealFS() *RealFS {
	return &RealFS{}
}

func (RealFS) Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

func (RealFS) Metadata(path string) (*Info, error) {
	info, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	mode := info.Mode()
	return &Info{
		IsFile:    mode.IsRegular(),
		IsDir:     mode.IsDir(),
		IsSymlink: mode&os.ModeSymlink != 0,
	}, nil
}

func (RealFS) ReadBytes(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

func (RealFS) List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, filepath.Join(dir, e.Name()))
	}
	// Host directory order is not part of the contract (spec.md §4.4), but a
	// stable order makes traversal reproducible across platforms and test runs.
	sort.Strings(names)
	return names, nil
}

func (RealFS) Canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("abs %s: %w", path, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		// Path may not exist yet (e.g. a not-yet-created state file); fall
		// back to the absolute, unresolved form rather than failing.
		return abs, nil
	}
	return resolved, nil
}

func (RealFS) WorkingDirectory() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("working directory: %w", err)
	}
	return wd, nil
}
