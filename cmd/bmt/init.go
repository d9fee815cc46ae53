package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bmt-toolkit/bmt/internal/state"
	"github.com/bmt-toolkit/bmt/internal/vfs"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .bmt.json in the current directory and run discovery",
	RunE:  runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	fsys := vfs.NewRealFS()
	root, err := fsys.WorkingDirectory()
	if err != nil {
		return err
	}

	if state.Exists(fsys, root) {
		return fmt.Errorf("bmt project already initialized at %s", root)
	}

	st := &state.ProjectState{RootPath: root}
	if err := state.Save(root, st); err != nil {
		return fmt.Errorf("initialize project: %w", err)
	}
	logger.Info("initialized project", "root", root)

	return runDiscovery(fsys, root, st)
}
