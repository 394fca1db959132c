package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/wasabeef/git-workers/internal/git"
	"github.com/wasabeef/git-workers/internal/hooks"
	"github.com/wasabeef/git-workers/internal/shellhook"
	"github.com/wasabeef/git-workers/internal/wtconfig"
)

// doSwitch implements the "switch" action of spec §4.9: no lock is
// held (switching never mutates the repository), the target path is
// handed to the calling shell through shellhook, and post-switch runs
// last.
func doSwitch(ctx context.Context, wt git.Worktree, cfg wtconfig.Config, hooksEnabled bool, w io.Writer) error {
	if err := shellhook.Switch(wt.Path); err != nil {
		return fmt.Errorf("failed to signal shell switch: %w", err)
	}
	if !hooksEnabled {
		return nil
	}
	return hooks.Run(ctx, hooks.Event(wtconfig.PostSwitch), cfg.HooksFor(wtconfig.PostSwitch), filepath.Base(wt.Path), wt.Path, w)
}

// runSwitch prompts for a destination worktree among eng's current
// list and runs doSwitch.
func runSwitch(ctx context.Context, eng *git.Engine, w io.Writer) error {
	worktrees, err := eng.List(ctx)
	if err != nil {
		return err
	}

	options := make([]huh.Option[string], 0, len(worktrees))
	for _, wt := range worktrees {
		if wt.Bare || wt.IsCurrent {
			continue
		}
		options = append(options, huh.NewOption(fmt.Sprintf("%s (%s)", filepath.Base(wt.Path), wt.Branch), wt.Path))
	}
	if len(options) == 0 {
		fmt.Fprintln(w, "no other worktrees to switch to")
		return nil
	}

	var target string
	if err := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().Title("Switch to").Options(options...).Value(&target),
	)).Run(); err != nil {
		return err
	}

	var chosen git.Worktree
	for _, wt := range worktrees {
		if wt.Path == target {
			chosen = wt
			break
		}
	}

	cfg, hooksEnabled, err := loadRepoConfig(ctx, eng)
	if err != nil {
		return err
	}
	return doSwitch(ctx, chosen, cfg, hooksEnabled, w)
}
