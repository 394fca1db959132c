package wtconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileYieldsZeroValue(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load of missing file should not error: %v", err)
	}
	if len(cfg.Hooks.PostCreate) != 0 || cfg.Repository.URL != "" {
		t.Errorf("expected zero-value Config, got %+v", cfg)
	}
}

func TestLoad_ParsesSchema(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	content := `
[repository]
url = "https://example.com/repo.git"

[hooks]
post-create = ["npm install", "echo {{worktree_name}}"]
pre-remove = ["echo bye"]

[files]
copy = [".env", "config/local.yaml"]
source = "../main"

[unknown]
ignored = true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Repository.URL != "https://example.com/repo.git" {
		t.Errorf("Repository.URL = %q", cfg.Repository.URL)
	}
	if len(cfg.Hooks.PostCreate) != 2 {
		t.Errorf("Hooks.PostCreate = %v", cfg.Hooks.PostCreate)
	}
	if len(cfg.Files.Copy) != 2 || cfg.Files.Source != "../main" {
		t.Errorf("Files = %+v", cfg.Files)
	}
}

func TestHooksFor(t *testing.T) {
	cfg := Config{}
	cfg.Hooks.PostSwitch = []string{"direnv allow"}
	got := cfg.HooksFor(PostSwitch)
	if len(got) != 1 || got[0] != "direnv allow" {
		t.Errorf("HooksFor(PostSwitch) = %v", got)
	}
	if got := cfg.HooksFor(HookEvent("bogus")); got != nil {
		t.Errorf("HooksFor(bogus) = %v, want nil", got)
	}
}

func TestGateHooks(t *testing.T) {
	tests := []struct {
		name   string
		cfgURL string
		origin string
		want   bool
	}{
		{"no url configured", "", "https://example.com/a.git", true},
		{"matching url", "https://example.com/a.git", "https://example.com/a.git", true},
		{"mismatched url", "https://example.com/a.git", "https://example.com/b.git", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{}
			cfg.Repository.URL = tt.cfgURL
			if got := GateHooks(cfg, tt.origin); got != tt.want {
				t.Errorf("GateHooks() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDiscover_NonBarePrefersCWD(t *testing.T) {
	cwd := t.TempDir()
	if err := os.WriteFile(filepath.Join(cwd, FileName), []byte(""), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	path, ok := Discover(DiscoverOptions{CWD: cwd})
	if !ok {
		t.Fatal("expected config to be discovered")
	}
	if path != filepath.Join(cwd, FileName) {
		t.Errorf("Discover() = %q, want cwd candidate", path)
	}
}

func TestDiscover_NonBareFallsBackToMainWorktree(t *testing.T) {
	cwd := t.TempDir()
	main := t.TempDir()
	if err := os.WriteFile(filepath.Join(main, FileName), []byte(""), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	path, ok := Discover(DiscoverOptions{CWD: cwd, MainWorktree: main})
	if !ok {
		t.Fatal("expected config to be discovered via main worktree fallback")
	}
	if path != filepath.Join(main, FileName) {
		t.Errorf("Discover() = %q, want main worktree candidate", path)
	}
}

func TestDiscover_NotFound(t *testing.T) {
	_, ok := Discover(DiscoverOptions{CWD: t.TempDir()})
	if ok {
		t.Error("expected no config to be discovered")
	}
}
