package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/wasabeef/git-workers/internal/git"
	"github.com/wasabeef/git-workers/internal/worklock"
	"github.com/wasabeef/git-workers/internal/wtconfig"
)

// loadRepoConfig runs the config discovery chain of spec §4.4 for
// eng's repository and returns the parsed config alongside whether
// hooks are enabled (false when repository.url does not match the
// origin URL).
func loadRepoConfig(ctx context.Context, eng *git.Engine) (cfg wtconfig.Config, hooksEnabled bool, err error) {
	cwd, err := os.Getwd()
	if err != nil {
		return cfg, false, err
	}

	opts := wtconfig.DiscoverOptions{
		CWD:  cwd,
		Bare: eng.Bare(),
	}
	if !eng.Bare() {
		opts.RepoName = filepath.Base(eng.Root())
		opts.MainWorktree = eng.Root()
	} else {
		if def, derr := eng.DefaultBranch(ctx); derr == nil {
			opts.DefaultBranch = def
		}
		if worktrees, lerr := eng.List(ctx); lerr == nil {
			for _, wt := range worktrees {
				if !wt.Bare {
					opts.WorktreeRoots = append(opts.WorktreeRoots, wt.Path)
				}
			}
		}
	}

	path, ok := wtconfig.Discover(opts)
	if !ok {
		return wtconfig.Config{}, true, nil
	}
	cfg, err = wtconfig.Load(path)
	if err != nil {
		return cfg, false, fmt.Errorf("failed to load %q: %w", path, err)
	}

	origin, _ := git.OriginURL(ctx)
	return cfg, wtconfig.GateHooks(cfg, origin), nil
}

// withLock acquires the single-writer advisory lock for the
// repository's admin area, runs fn, and releases the lock on every
// return path (spec §4.3).
func withLock(ctx context.Context, eng *git.Engine, fn func() error) error {
	adminDir, err := git.AdminDir(ctx)
	if err != nil {
		return err
	}
	lock, err := worklock.Acquire(adminDir)
	if err != nil {
		return err
	}
	defer lock.Release()
	return fn()
}
