package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wasabeef/git-workers/internal/git"
	"github.com/wasabeef/git-workers/internal/wtconfig"
	"github.com/wasabeef/git-workers/testutil"
)

func TestDoSwitch_WritesHandshakeFileAndRunsHook(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	repo.CreateFile("README.md", "hello")
	repo.Commit("initial")
	defer repo.Chdir()()

	handshake := filepath.Join(repo.ParentDir(), "switch-handshake")
	t.Setenv("GW_SWITCH_FILE", handshake)

	hookMarker := filepath.Join(repo.ParentDir(), "post-switch-ran")
	cfg := wtconfig.Config{}
	cfg.Hooks.PostSwitch = []string{"touch " + hookMarker}

	var out bytes.Buffer
	wt := git.Worktree{Path: repo.Root}
	if err := doSwitch(t.Context(), wt, cfg, true, &out); err != nil {
		t.Fatalf("doSwitch() error = %v", err)
	}

	data, err := os.ReadFile(handshake)
	if err != nil {
		t.Fatalf("handshake file not written: %v", err)
	}
	if strings.TrimSpace(string(data)) != repo.Root {
		t.Errorf("handshake contents = %q, want %q", data, repo.Root)
	}
	if _, err := os.Stat(hookMarker); err != nil {
		t.Errorf("post-switch hook did not run: %v", err)
	}
}
