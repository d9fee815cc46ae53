package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/bmt-toolkit/bmt/internal/manifest"
	"github.com/bmt-toolkit/bmt/internal/report"
	"github.com/bmt-toolkit/bmt/internal/state"
	"github.com/bmt-toolkit/bmt/internal/vfs"
)

var findModsCmd = &cobra.Command{
	Use:   "find-mods",
	Short: "Discover mod manifests inside an existing bmt project",
	RunE:  runFindMods,
}

func runFindMods(cmd *cobra.Command, args []string) error {
	fsys := vfs.NewRealFS()
	root, err := fsys.WorkingDirectory()
	if err != nil {
		return err
	}

	// state.Load distinguishes ErrNotAProject from ErrCorrupt (spec.md §6);
	// both are recoverable CLI errors that exit non-zero, per spec.md §6/§7.
	st, err := state.Load(fsys, root)
	if err != nil {
		return err
	}

	return runDiscovery(fsys, root, st)
}

// runDiscovery is shared by init and find-mods: both run the same
// discovery pipeline and persist the resulting mod list, differing only in
// whether a fresh state file was just created.
func runDiscovery(fsys vfs.FS, root string, st *state.ProjectState) error {
	start := time.Now()
	found, warnings, err := manifest.DiscoverManifests(fsys, root, manifest.DiscoverOptions{
		RespectGitignore:  !settings.NoGitignore,
		AdditionalIgnores: settings.Ignore,
		Strict:            true,
	})
	if err != nil {
		return fmt.Errorf("discovery failed: %w", err)
	}
	for _, w := range warnings {
		logger.Warn("traversal warning", "path", w.Path, "error", w.Err)
	}

	now := time.Now()
	mods := make([]state.DiscoveredMod, 0, len(found))
	for _, d := range found {
		mods = append(mods, state.DiscoveredMod{
			Name:         d.Metadata.Name,
			ManifestPath: d.AbsPath,
			Included:     true,
			DiscoveredAt: now.UnixMilli(),
		})
	}
	st.DiscoveredMods = mods
	st.LastScanMilliseconds = now.UnixMilli()
	if err := state.Save(root, st); err != nil {
		return fmt.Errorf("persist project state: %w", err)
	}

	summary := report.Summary{Root: root, Found: found, Warnings: warnings, Elapsed: time.Since(start)}
	if settings.JSON {
		return report.PrintJSON(os.Stdout, summary)
	}
	return report.PrintTable(os.Stdout, summary)
}
