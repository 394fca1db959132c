package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/wasabeef/git-workers/internal/git"
	"github.com/wasabeef/git-workers/internal/validate"
)

// runRename prompts for a worktree, its new name, and whether to carry
// the branch rename along, then runs Engine.Rename under the lock.
func runRename(ctx context.Context, eng *git.Engine, w io.Writer) error {
	worktrees, err := eng.List(ctx)
	if err != nil {
		return err
	}

	options := make([]huh.Option[string], 0, len(worktrees))
	for _, wt := range worktrees {
		if wt.Bare || wt.IsCurrent || wt.IsMain || wt.Branch == git.DetachedMarker {
			continue
		}
		options = append(options, huh.NewOption(fmt.Sprintf("%s (%s)", filepath.Base(wt.Path), wt.Branch), filepath.Base(wt.Path)))
	}
	if len(options) == 0 {
		fmt.Fprintln(w, "no worktrees eligible for rename")
		return nil
	}

	var oldName, newName string
	var renameBranch bool
	if err := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().Title("Rename which worktree?").Options(options...).Value(&oldName),
	)).Run(); err != nil {
		return err
	}
	if err := huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("New name").Value(&newName).Validate(func(s string) error {
			_, err := validate.Name(s)
			return err
		}),
		huh.NewConfirm().Title("Rename the branch too?").Value(&renameBranch),
	)).Run(); err != nil {
		return err
	}

	return withLock(ctx, eng, func() error {
		if err := eng.Rename(ctx, oldName, newName, renameBranch); err != nil {
			return err
		}
		fmt.Fprintf(w, "renamed worktree %q to %q\n", oldName, newName)
		return nil
	})
}
