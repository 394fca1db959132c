package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/wasabeef/git-workers/internal/filesync"
	"github.com/wasabeef/git-workers/internal/git"
	"github.com/wasabeef/git-workers/internal/hooks"
	"github.com/wasabeef/git-workers/internal/validate"
	"github.com/wasabeef/git-workers/internal/wtconfig"
)

// doCreate implements the "create" pipeline of spec §4.9: validate
// path, materialize the worktree, apply the configured file copies,
// then run post-create. It has no interactive dependency so it can be
// exercised directly by tests.
func doCreate(ctx context.Context, eng *git.Engine, cfg wtconfig.Config, hooksEnabled bool, name, rawPath string, source git.CreateSource, w io.Writer) (*git.Worktree, error) {
	if err := validate.CustomPath(rawPath); err != nil {
		return nil, fmt.Errorf("invalid path %q: %w", rawPath, err)
	}

	wt, err := eng.Create(ctx, name, rawPath, source)
	if err != nil {
		return nil, err
	}

	var resolver filesync.SourceResolver
	if eng.Bare() {
		resolver = eng
	}
	if err := filesync.Apply(ctx, cfg, eng.Root(), resolver, wt.Path, w); err != nil {
		return wt, err
	}

	if hooksEnabled {
		if err := hooks.Run(ctx, hooks.Event(wtconfig.PostCreate), cfg.HooksFor(wtconfig.PostCreate), name, wt.Path, w); err != nil {
			return wt, err
		}
	}

	return wt, nil
}

// runCreate drives the interactive "create worktree" action: prompts
// for the new worktree's name, its source, and an optional custom
// path, then runs doCreate under the single-writer lock.
func runCreate(ctx context.Context, eng *git.Engine, w io.Writer) error {
	var name string
	var kind string
	var branchName string
	var tagName string
	var baseRef string

	nameField := huh.NewInput().
		Title("Worktree name").
		Value(&name).
		Validate(func(s string) error {
			_, err := validate.Name(s)
			return err
		})

	kindField := huh.NewSelect[string]().
		Title("Create from").
		Options(
			huh.NewOption("Current HEAD (new branch)", "head"),
			huh.NewOption("Existing branch", "branch"),
			huh.NewOption("Tag (new branch at the tag)", "tag"),
			huh.NewOption("New branch from base", "base"),
		).
		Value(&kind)

	if err := huh.NewForm(huh.NewGroup(nameField, kindField)).Run(); err != nil {
		return err
	}

	var source git.CreateSource
	switch kind {
	case "head":
		source = git.FromHead{}
	case "branch":
		branches, err := eng.Branches(ctx)
		if err != nil {
			return err
		}
		options := make([]huh.Option[string], 0, len(branches))
		for _, b := range branches {
			options = append(options, huh.NewOption(b.Name, b.Name))
		}
		if err := huh.NewForm(huh.NewGroup(
			huh.NewSelect[string]().Title("Branch").Options(options...).Value(&branchName),
		)).Run(); err != nil {
			return err
		}
		source = git.ExistingBranch{Name: branchName}
	case "tag":
		tags, err := eng.Tags(ctx)
		if err != nil {
			return err
		}
		options := make([]huh.Option[string], 0, len(tags))
		for _, t := range tags {
			options = append(options, huh.NewOption(t.Name, t.Name))
		}
		if err := huh.NewForm(huh.NewGroup(
			huh.NewSelect[string]().Title("Tag").Options(options...).Value(&tagName),
		)).Run(); err != nil {
			return err
		}
		source = git.TagSource{Name: tagName}
	case "base":
		if err := huh.NewForm(huh.NewGroup(
			huh.NewInput().Title("Base (branch, tag, or commit)").Value(&baseRef),
		)).Run(); err != nil {
			return err
		}
		source = git.NewBranchFromBase{NewName: name, Base: baseRef}
	default:
		return fmt.Errorf("unknown create source %q", kind)
	}

	defaultPath := filepath.Join("..", name)
	path := defaultPath
	if err := huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Path").Description("Where to create the worktree").Value(&path),
	)).Run(); err != nil {
		return err
	}

	return withLock(ctx, eng, func() error {
		cfg, hooksEnabled, err := loadRepoConfig(ctx, eng)
		if err != nil {
			return err
		}
		wt, err := doCreate(ctx, eng, cfg, hooksEnabled, name, path, source, w)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "created worktree %q at %s\n", name, wt.Path)
		return nil
	})
}
