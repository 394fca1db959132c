package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/wasabeef/git-workers/internal/fsutil"
	"github.com/wasabeef/git-workers/internal/validate"
)

// Rename implements spec §4.5.1's seven-step protocol. Git has no
// native rename primitive for a worktree: the directory is moved, the
// admin area's bookkeeping directory is renamed alongside it, and the
// gitdir pointer files on both sides are rewritten so each side still
// finds the other. A failure before the directory move leaves nothing
// mutated; a failure afterward is reported as ErrPartialRename with a
// `git worktree repair` remediation — no rollback is attempted, since
// reversing these steps can itself fail on a degraded filesystem.
func (e *Engine) Rename(ctx context.Context, oldName, newName string, renameBranch bool) error {
	wt, err := e.findByName(ctx, oldName)
	if err != nil {
		return err
	}
	if wt == nil {
		return fmt.Errorf("no such worktree: %q", oldName)
	}
	if wt.IsCurrent {
		return ErrCurrentWorktree
	}
	if wt.Branch == DetachedMarker {
		return fmt.Errorf("%w: a detached-HEAD worktree cannot be renamed", ErrInvalidName)
	}
	if wt.IsMain {
		return ErrMainWorktree
	}
	if _, err := validate.Name(newName); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidName, err)
	}

	oldPath := wt.Path
	newPath := filepath.Join(filepath.Dir(oldPath), newName)
	if _, err := os.Stat(newPath); err == nil {
		return ErrPathExists
	}

	adminDir, err := AdminDir(ctx)
	if err != nil {
		return err
	}

	// Step 3: move the directory. A failure here has mutated nothing.
	if err := fsutil.RenameDir(oldPath, newPath); err != nil {
		return err
	}

	// Steps 4-5: rename the admin bookkeeping directory and repair the
	// gitdir pointers in both directions. Anything that fails from here
	// on is reported as a partial rename, not rolled back.
	if err := repairAdminArea(adminDir, oldName, newName, newPath); err != nil {
		return fmt.Errorf("%w: %v", ErrPartialRename, err)
	}

	// Step 6: optionally follow with a branch rename.
	if renameBranch && wt.Branch == oldName {
		if err := e.RenameBranch(ctx, oldName, newName); err != nil {
			return fmt.Errorf("%w: branch rename failed: %v", ErrPartialRename, err)
		}
	}

	// Step 7: `git worktree repair` as a safety net. Its warnings are
	// informational only and never turn a successful rename into an
	// error.
	if cmd, err := gitCommand(ctx, "worktree", "repair"); err == nil {
		_, _ = cmd.CombinedOutput()
	}

	return nil
}

// repairAdminArea renames <adminDir>/worktrees/<oldName> to
// .../<newName> and rewrites the gitdir pointer file there plus the
// worktree's own .git file to reference each other at their new
// locations.
func repairAdminArea(adminDir, oldName, newName, newPath string) error {
	oldAdmin := filepath.Join(adminDir, "worktrees", oldName)
	newAdmin := filepath.Join(adminDir, "worktrees", newName)
	if err := os.Rename(oldAdmin, newAdmin); err != nil {
		return fmt.Errorf("rename admin bookkeeping directory: %w", err)
	}

	gitdirValue := filepath.Join(newPath, ".git") + "\n"
	if err := os.WriteFile(filepath.Join(newAdmin, "gitdir"), []byte(gitdirValue), 0o644); err != nil {
		return fmt.Errorf("rewrite gitdir pointer: %w", err)
	}

	dotGitContent := fmt.Sprintf("gitdir: %s\n", newAdmin)
	if err := os.WriteFile(filepath.Join(newPath, ".git"), []byte(dotGitContent), 0o644); err != nil {
		return fmt.Errorf("rewrite worktree .git file: %w", err)
	}
	return nil
}
