package git

import (
	"context"
	"fmt"
	"path/filepath"
	"time"
)

// Remove deletes one worktree by name (the directory's leaf path
// component). The current worktree can never be removed; a dirty one
// requires opts.Force; opts.DeleteBranch additionally deletes the
// worktree's branch once the worktree is gone, subject to the same
// merged/unmerged rule DeleteBranch enforces.
func (e *Engine) Remove(ctx context.Context, name string, opts RemoveOptions) error {
	wt, err := e.findByName(ctx, name)
	if err != nil {
		return err
	}
	if wt == nil {
		return fmt.Errorf("no such worktree: %q", name)
	}
	if wt.IsCurrent {
		return ErrCurrentWorktree
	}
	if !opts.Force && wt.HasChanges {
		return ErrDirtyWorktree
	}

	args := []string{"worktree", "remove"}
	if opts.Force {
		args = append(args, "--force")
	}
	args = append(args, wt.Path)
	cmd, err := gitCommand(ctx, args...)
	if err != nil {
		return err
	}
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("git worktree remove failed: %s: %w", out, err)
	}

	if !opts.DeleteBranch || wt.Branch == "" || wt.Branch == DetachedMarker {
		return nil
	}

	merged, err := e.IsBranchMerged(ctx, wt.Branch)
	if err != nil {
		return err
	}
	if !merged && !opts.Force {
		return ErrUnmergedBranch
	}
	return e.DeleteBranch(ctx, wt.Branch, opts.Force || !merged)
}

// findByName locates a worktree record by the leaf component of its
// path, which is the "name" users select by.
func (e *Engine) findByName(ctx context.Context, name string) (*Worktree, error) {
	worktrees, err := e.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range worktrees {
		if filepath.Base(worktrees[i].Path) == name {
			return &worktrees[i], nil
		}
	}
	return nil, nil
}

// CleanupOlderThan is a pure query: it returns worktrees (excluding
// the main worktree, which is never a cleanup candidate) whose last
// commit predates now-days. It does not delete anything — the
// orchestrator drives batch removal over the result.
func (e *Engine) CleanupOlderThan(ctx context.Context, days int) ([]Worktree, error) {
	worktrees, err := e.List(ctx)
	if err != nil {
		return nil, err
	}
	cutoff := time.Now().AddDate(0, 0, -days)

	var stale []Worktree
	for _, wt := range worktrees {
		if wt.IsMain || wt.Bare {
			continue
		}
		if wt.LastModified == "" {
			continue
		}
		ts, perr := time.Parse(time.RFC3339, wt.LastModified)
		if perr != nil {
			continue
		}
		if ts.Before(cutoff) {
			stale = append(stale, wt)
		}
	}
	return stale, nil
}

// BranchWorktreeMap maps every branch currently checked out to the
// name (leaf path component) of the worktree it's checked out in,
// used by Create (to detect BranchInUse) and by OrphanBranches.
func (e *Engine) BranchWorktreeMap(ctx context.Context) (map[string]string, error) {
	worktrees, err := e.listPorcelain(ctx)
	if err != nil {
		return nil, err
	}
	m := make(map[string]string, len(worktrees))
	for _, wt := range worktrees {
		if wt.Branch == "" || wt.Branch == DetachedMarker {
			continue
		}
		m[wt.Branch] = filepath.Base(wt.Path)
	}
	return m, nil
}

// OrphanBranches returns local branches that no worktree currently
// references.
func (e *Engine) OrphanBranches(ctx context.Context) ([]string, error) {
	branches, err := e.Branches(ctx)
	if err != nil {
		return nil, err
	}
	inUse, err := e.BranchWorktreeMap(ctx)
	if err != nil {
		return nil, err
	}

	var orphans []string
	for _, b := range branches {
		if b.Remote {
			continue
		}
		if _, ok := inUse[b.Name]; !ok {
			orphans = append(orphans, b.Name)
		}
	}
	return orphans, nil
}
