package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/Songmu/prompter"
	"github.com/charmbracelet/huh"
	"github.com/wasabeef/git-workers/internal/git"
)

// runCleanup prompts for an age threshold, lists the worktrees whose
// last commit predates it, confirms, then deletes each one through
// the same pipeline doDelete uses for a manual delete.
func runCleanup(ctx context.Context, eng *git.Engine, w io.Writer) error {
	daysInput := "30"
	if err := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Delete worktrees with no commits in the last N days").
			Value(&daysInput).
			Validate(func(s string) error {
				n, err := strconv.Atoi(s)
				if err != nil {
					return fmt.Errorf("must be a whole number of days")
				}
				if n <= 0 {
					return fmt.Errorf("must be positive")
				}
				return nil
			}),
	)).Run(); err != nil {
		return err
	}
	days, err := strconv.Atoi(daysInput)
	if err != nil {
		return err
	}

	stale, err := eng.CleanupOlderThan(ctx, days)
	if err != nil {
		return err
	}
	if len(stale) == 0 {
		fmt.Fprintln(w, "no stale worktrees found")
		return nil
	}

	fmt.Fprintf(w, "found %d stale worktree(s):\n", len(stale))
	for _, wt := range stale {
		fmt.Fprintf(w, "  %s (%s)\n", filepath.Base(wt.Path), wt.Branch)
	}

	if !prompter.YN("Delete all of these?", false) {
		return nil
	}

	return withLock(ctx, eng, func() error {
		cfg, hooksEnabled, err := loadRepoConfig(ctx, eng)
		if err != nil {
			return err
		}
		opts := git.RemoveOptions{Force: true}
		for _, wt := range stale {
			if err := doDelete(ctx, eng, cfg, hooksEnabled, wt, opts, w); err != nil {
				fmt.Fprintf(w, "failed to delete %q: %v\n", filepath.Base(wt.Path), err)
				continue
			}
			fmt.Fprintf(w, "deleted worktree %q\n", filepath.Base(wt.Path))
		}
		return nil
	})
}
