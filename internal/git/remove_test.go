package git

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/wasabeef/git-workers/testutil"
)

func TestEngine_Remove(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	repo.CreateFile("README.md", "# Test")
	repo.Commit("initial commit")

	wtPath := filepath.Join(repo.ParentDir(), "to-remove")
	repo.Git("worktree", "add", "-b", "to-remove", wtPath)

	e := openEngine(t, repo)

	if err := e.Remove(t.Context(), "to-remove", RemoveOptions{}); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, err := os.Stat(wtPath); !os.IsNotExist(err) {
		t.Error("worktree directory should be gone after Remove")
	}
}

func TestEngine_Remove_DirtyRequiresForce(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	repo.CreateFile("README.md", "# Test")
	repo.Commit("initial commit")

	wtPath := filepath.Join(repo.ParentDir(), "dirty")
	repo.Git("worktree", "add", "-b", "dirty", wtPath)
	if err := os.WriteFile(filepath.Join(wtPath, "scratch.txt"), []byte("wip"), 0o600); err != nil {
		t.Fatalf("failed to create fixture: %v", err)
	}

	e := openEngine(t, repo)

	if err := e.Remove(t.Context(), "dirty", RemoveOptions{}); !errors.Is(err, ErrDirtyWorktree) {
		t.Errorf("Remove() error = %v, want ErrDirtyWorktree", err)
	}

	if err := e.Remove(t.Context(), "dirty", RemoveOptions{Force: true}); err != nil {
		t.Fatalf("forced Remove failed: %v", err)
	}
}

func TestEngine_Remove_CurrentWorktree(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	repo.CreateFile("README.md", "# Test")
	repo.Commit("initial commit")

	e := openEngine(t, repo)

	if err := e.Remove(t.Context(), filepath.Base(repo.Root), RemoveOptions{}); !errors.Is(err, ErrCurrentWorktree) {
		t.Errorf("Remove() error = %v, want ErrCurrentWorktree", err)
	}
}

func TestEngine_Remove_DeleteBranch(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	repo.CreateFile("README.md", "# Test")
	repo.Commit("initial commit")

	wtPath := filepath.Join(repo.ParentDir(), "feature-done")
	repo.Git("worktree", "add", "-b", "feature-done", wtPath)
	repo.Git("merge", "feature-done") // merge so a non-force delete succeeds

	e := openEngine(t, repo)

	if err := e.Remove(t.Context(), "feature-done", RemoveOptions{DeleteBranch: true}); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	exists, err := e.LocalBranchExists(t.Context(), "feature-done")
	if err != nil {
		t.Fatalf("LocalBranchExists failed: %v", err)
	}
	if exists {
		t.Error("branch should have been deleted along with the worktree")
	}
}

func TestEngine_CleanupOlderThan(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	repo.CreateFile("README.md", "# Test")
	repo.Commit("initial commit")

	wtPath := filepath.Join(repo.ParentDir(), "fresh")
	repo.Git("worktree", "add", "-b", "fresh", wtPath)
	t.Cleanup(func() { os.RemoveAll(wtPath) })

	e := openEngine(t, repo)

	// Everything here was just committed, so a 9999-day cutoff should
	// report nothing (a fresh commit is far newer than the cutoff).
	stale, err := e.CleanupOlderThan(t.Context(), 9999)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stale) != 0 {
		t.Errorf("expected no stale worktrees with a 9999-day cutoff, got %d", len(stale))
	}
}
