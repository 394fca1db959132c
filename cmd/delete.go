package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/Songmu/prompter"
	"github.com/charmbracelet/huh"
	"github.com/wasabeef/git-workers/internal/git"
	"github.com/wasabeef/git-workers/internal/hooks"
	"github.com/wasabeef/git-workers/internal/wtconfig"
)

// doDelete implements the single-worktree "delete" pipeline of spec
// §4.9: pre-remove runs first (a failing pre-remove hook aborts the
// whole operation), then the worktree itself is removed, along with
// its branch when requested.
func doDelete(ctx context.Context, eng *git.Engine, cfg wtconfig.Config, hooksEnabled bool, wt git.Worktree, opts git.RemoveOptions, w io.Writer) error {
	if hooksEnabled {
		if err := hooks.Run(ctx, hooks.Event(wtconfig.PreRemove), cfg.HooksFor(wtconfig.PreRemove), filepath.Base(wt.Path), wt.Path, w); err != nil {
			return err
		}
	}
	return eng.Remove(ctx, filepath.Base(wt.Path), opts)
}

// runDelete prompts for one or more worktrees and a force/delete-branch
// pair of toggles, then removes each selection in turn, reporting
// failures per-item instead of aborting the batch.
func runDelete(ctx context.Context, eng *git.Engine, w io.Writer) error {
	worktrees, err := eng.List(ctx)
	if err != nil {
		return err
	}

	candidates := make([]git.Worktree, 0, len(worktrees))
	options := make([]huh.Option[string], 0, len(worktrees))
	for _, wt := range worktrees {
		if wt.Bare || wt.IsCurrent || wt.IsMain {
			continue
		}
		candidates = append(candidates, wt)
		label := fmt.Sprintf("%s (%s)", filepath.Base(wt.Path), wt.Branch)
		options = append(options, huh.NewOption(label, wt.Path))
	}
	if len(options) == 0 {
		fmt.Fprintln(w, "no worktrees eligible for deletion")
		return nil
	}

	var selected []string
	var force, deleteBranch, pruneOrphans bool
	if err := huh.NewForm(huh.NewGroup(
		huh.NewMultiSelect[string]().Title("Delete worktrees").Options(options...).Value(&selected),
		huh.NewConfirm().Title("Force delete dirty worktrees?").Value(&force),
		huh.NewConfirm().Title("Also delete their branches?").Value(&deleteBranch),
		huh.NewConfirm().Title("Also delete orphan branches (no worktree references them)?").Value(&pruneOrphans),
	)).Run(); err != nil {
		return err
	}
	if len(selected) == 0 {
		return nil
	}

	if !prompter.YN(fmt.Sprintf("Delete %d worktree(s)? This cannot be undone.", len(selected)), false) {
		return nil
	}

	return withLock(ctx, eng, func() error {
		cfg, hooksEnabled, err := loadRepoConfig(ctx, eng)
		if err != nil {
			return err
		}
		opts := git.RemoveOptions{Force: force, DeleteBranch: deleteBranch}
		for _, path := range selected {
			var wt git.Worktree
			for _, c := range candidates {
				if c.Path == path {
					wt = c
					break
				}
			}
			if err := doDelete(ctx, eng, cfg, hooksEnabled, wt, opts, w); err != nil {
				fmt.Fprintf(w, "failed to delete %q: %v\n", filepath.Base(wt.Path), err)
				continue
			}
			fmt.Fprintf(w, "deleted worktree %q\n", filepath.Base(wt.Path))
		}

		if pruneOrphans {
			pruneOrphanBranches(ctx, eng, force, w)
		}
		return nil
	})
}

// pruneOrphanBranches deletes every local branch no worktree
// references, confirmed once up front (per spec's "optional confirmed
// flag on batch delete" design) rather than per branch.
func pruneOrphanBranches(ctx context.Context, eng *git.Engine, force bool, w io.Writer) {
	orphans, err := eng.OrphanBranches(ctx)
	if err != nil {
		fmt.Fprintf(w, "failed to list orphan branches: %v\n", err)
		return
	}
	if len(orphans) == 0 {
		return
	}

	fmt.Fprintf(w, "found %d orphan branch(es):\n", len(orphans))
	for _, name := range orphans {
		fmt.Fprintf(w, "  %s\n", name)
	}
	if !prompter.YN(fmt.Sprintf("Delete %d orphan branch(es)? This cannot be undone.", len(orphans)), false) {
		return
	}

	for _, name := range orphans {
		if err := eng.DeleteBranch(ctx, name, force); err != nil {
			fmt.Fprintf(w, "failed to delete branch %q: %v\n", name, err)
			continue
		}
		fmt.Fprintf(w, "deleted branch %q\n", name)
	}
}
