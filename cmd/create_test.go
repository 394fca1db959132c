package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/wasabeef/git-workers/internal/git"
	"github.com/wasabeef/git-workers/internal/wtconfig"
	"github.com/wasabeef/git-workers/testutil"
)

func TestDoCreate_FromHeadAppliesCopyAndHook(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	repo.CreateFile("README.md", "hello")
	repo.Commit("initial")
	repo.CreateFile(".env", "SECRET=1")
	repo.Git("add", "-A")
	repo.Commit("add env")
	defer repo.Chdir()()

	ctx := t.Context()
	eng, err := git.Open(ctx)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	cfg := wtconfig.Config{}
	cfg.Files.Copy = []string{".env"}
	cfg.Hooks.PostCreate = []string{"touch marker.txt"}

	var out bytes.Buffer
	wt, err := doCreate(ctx, eng, cfg, true, "feature-x", filepath.Join("..", "feature-x"), git.FromHead{}, &out)
	if err != nil {
		t.Fatalf("doCreate() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(wt.Path, ".env")); err != nil {
		t.Errorf(".env not copied into new worktree: %v", err)
	}
	if _, err := os.Stat(filepath.Join(wt.Path, "marker.txt")); err != nil {
		t.Errorf("post-create hook did not run: %v", err)
	}
}

func TestDoCreate_RejectsPathTraversal(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	repo.CreateFile("README.md", "hello")
	repo.Commit("initial")
	defer repo.Chdir()()

	ctx := t.Context()
	eng, err := git.Open(ctx)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	var out bytes.Buffer
	if _, err := doCreate(ctx, eng, wtconfig.Config{}, false, "feature-y", "../../etc/feature-y", git.FromHead{}, &out); err == nil {
		t.Error("doCreate() with a traversal path succeeded, want error")
	}
}
