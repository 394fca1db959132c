package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/wasabeef/git-workers/internal/git"
)

var banner = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("212")).
	Render("git-workers")

const (
	actionSwitch = "switch"
	actionCreate = "create"
	actionRename = "rename"
	actionDelete = "delete"
	actionClean  = "cleanup"
	actionQuit   = "quit"
)

// runMenu is the zero-argument entry point: it opens the repository
// once, then loops listing worktrees and dispatching to an action
// until the user quits. A single Engine is reused across iterations
// so repeated menu actions don't repeatedly run repository discovery.
func runMenu(ctx context.Context) error {
	ci := os.Getenv("CI") == "true"

	if !ci && !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return errors.New("git-workers needs an interactive terminal; stdin is not a tty (set CI=true to list non-interactively)")
	}

	eng, err := git.Open(ctx)
	if err != nil {
		return err
	}

	w := os.Stdout
	for {
		fmt.Fprintln(w, banner)

		worktrees, err := eng.List(ctx)
		if err != nil {
			return err
		}
		if err := renderWorktreeTable(w, worktrees); err != nil {
			return err
		}

		if ci {
			// spec's CI=true mode skips every interactive prompt: the
			// menu's only non-interactive action is listing, so it
			// renders once and exits instead of looping for a selection.
			return nil
		}

		var action string
		if err := huh.NewForm(huh.NewGroup(
			huh.NewSelect[string]().
				Title("What would you like to do?").
				Options(
					huh.NewOption("Switch worktree", actionSwitch),
					huh.NewOption("Create worktree", actionCreate),
					huh.NewOption("Rename worktree", actionRename),
					huh.NewOption("Delete worktree(s)", actionDelete),
					huh.NewOption("Clean up old worktrees", actionClean),
					huh.NewOption("Quit", actionQuit),
				).
				Value(&action),
		)).Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}

		if err := dispatch(ctx, eng, action, w); err != nil {
			fmt.Fprintf(w, "error: %v\n", err)
		}
		if action == actionQuit {
			return nil
		}
	}
}

func dispatch(ctx context.Context, eng *git.Engine, action string, w io.Writer) error {
	switch action {
	case actionSwitch:
		return runSwitch(ctx, eng, w)
	case actionCreate:
		return runCreate(ctx, eng, w)
	case actionRename:
		return runRename(ctx, eng, w)
	case actionDelete:
		return runDelete(ctx, eng, w)
	case actionClean:
		return runCleanup(ctx, eng, w)
	case actionQuit:
		return nil
	default:
		return fmt.Errorf("unknown action %q", action)
	}
}
