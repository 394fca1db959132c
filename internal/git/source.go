package git

import "context"

// DefaultBranchWorktreePath locates the worktree checked out to the
// repository's default branch, for bare repositories where there is
// no single "main worktree" to fall back to (spec §4.7). ok is false
// when no worktree currently has the default branch checked out, in
// which case the caller should skip file-copy with a notice rather
// than treat it as an error.
func (e *Engine) DefaultBranchWorktreePath(ctx context.Context) (string, bool, error) {
	def, err := e.DefaultBranch(ctx)
	if err != nil {
		return "", false, err
	}
	if def == "" {
		return "", false, nil
	}

	worktrees, err := e.List(ctx)
	if err != nil {
		return "", false, err
	}
	for _, wt := range worktrees {
		if wt.Branch == def {
			return wt.Path, true, nil
		}
	}
	return "", false, nil
}
