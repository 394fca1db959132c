package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wasabeef/git-workers/internal/fsutil"
	"github.com/wasabeef/git-workers/internal/validate"
)

// Create materializes a new worktree at path, populated per source,
// and returns the resulting record. path is resolved against the true
// process CWD before git ever sees it (spec §9's path-resolution
// quirk: Git's own relative-path handling differs for bare
// repositories, so resolution happens here instead).
func (e *Engine) Create(ctx context.Context, name, path string, source CreateSource) (*Worktree, error) {
	if _, err := validate.Name(name); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidName, err)
	}

	resolved := path
	if !filepath.IsAbs(resolved) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		resolved = filepath.Join(cwd, resolved)
	}
	resolved = filepath.Clean(resolved)

	if _, err := os.Stat(resolved); err == nil {
		return nil, ErrPathExists
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return nil, fmt.Errorf("create parent directory: %w", err)
	}

	args, branch, err := e.createArgs(ctx, name, resolved, source)
	if err != nil {
		return nil, err
	}

	cmd, err := gitCommand(ctx, args...)
	if err != nil {
		return nil, err
	}
	out, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("git worktree add failed: %s: %w", strings.TrimSpace(string(out)), err)
	}

	canon, err := fsutil.Canonicalize(resolved)
	if err != nil {
		canon = resolved
	}
	return &Worktree{Path: canon, Branch: branch}, nil
}

func (e *Engine) createArgs(ctx context.Context, name, path string, source CreateSource) (args []string, branch string, err error) {
	switch src := source.(type) {
	case FromHead:
		return []string{"worktree", "add", "-b", name, path}, name, nil
	case ExistingBranch:
		inUse, err := e.branchInUse(ctx, src.Name)
		if err != nil {
			return nil, "", err
		}
		if inUse {
			return nil, "", ErrBranchInUse
		}
		return []string{"worktree", "add", path, src.Name}, src.Name, nil
	case TagSource:
		return []string{"worktree", "add", "-b", name, path, src.Name}, name, nil
	case NewBranchFromBase:
		return []string{"worktree", "add", "-b", src.NewName, path, src.Base}, src.NewName, nil
	default:
		return nil, "", fmt.Errorf("unknown create source %T", source)
	}
}

func (e *Engine) branchInUse(ctx context.Context, branch string) (bool, error) {
	m, err := e.BranchWorktreeMap(ctx)
	if err != nil {
		return false, err
	}
	_, ok := m[branch]
	return ok, nil
}
