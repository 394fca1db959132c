package filesync

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/wasabeef/git-workers/internal/wtconfig"
)

type stubResolver struct {
	path string
	ok   bool
	err  error
}

func (s stubResolver) DefaultBranchWorktreePath(ctx context.Context) (string, bool, error) {
	return s.path, s.ok, s.err
}

func TestApply_DirectoryCopy(t *testing.T) {
	repoRoot := t.TempDir()
	if err := os.MkdirAll(filepath.Join(repoRoot, ".vscode"), 0o755); err != nil {
		t.Fatalf("failed to create fixture: %v", err)
	}
	if err := os.WriteFile(filepath.Join(repoRoot, ".vscode", "settings.json"), []byte("{}"), 0o644); err != nil {
		t.Fatalf("failed to create fixture: %v", err)
	}

	cfg := wtconfig.Config{}
	cfg.Files.Copy = []string{".vscode"}

	dst := t.TempDir()
	var w bytes.Buffer
	if err := Apply(t.Context(), cfg, repoRoot, nil, dst, &w); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dst, ".vscode", "settings.json")); err != nil {
		t.Errorf("expected copied file, got error: %v", err)
	}
}

func TestApply_SingleFileCopy(t *testing.T) {
	repoRoot := t.TempDir()
	if err := os.WriteFile(filepath.Join(repoRoot, ".env"), []byte("KEY=value"), 0o644); err != nil {
		t.Fatalf("failed to create fixture: %v", err)
	}

	cfg := wtconfig.Config{}
	cfg.Files.Copy = []string{".env"}

	dst := t.TempDir()
	var w bytes.Buffer
	if err := Apply(t.Context(), cfg, repoRoot, nil, dst, &w); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dst, ".env"))
	if err != nil {
		t.Fatalf("expected copied file, got error: %v", err)
	}
	if string(data) != "KEY=value" {
		t.Errorf("copied content = %q, want %q", data, "KEY=value")
	}
}

func TestApply_MissingEntryIsWarningNotAbort(t *testing.T) {
	repoRoot := t.TempDir()
	if err := os.WriteFile(filepath.Join(repoRoot, "present.txt"), []byte("here"), 0o644); err != nil {
		t.Fatalf("failed to create fixture: %v", err)
	}

	cfg := wtconfig.Config{}
	cfg.Files.Copy = []string{"missing.txt", "present.txt"}

	dst := t.TempDir()
	var w bytes.Buffer
	if err := Apply(t.Context(), cfg, repoRoot, nil, dst, &w); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dst, "present.txt")); err != nil {
		t.Error("entries after a missing one should still be copied")
	}
	if w.Len() == 0 {
		t.Error("expected a warning to be written for the missing entry")
	}
}

func TestApply_BadEntryIsWarningNotAbort(t *testing.T) {
	repoRoot := t.TempDir()
	if err := os.WriteFile(filepath.Join(repoRoot, "present.txt"), []byte("here"), 0o644); err != nil {
		t.Fatalf("failed to create fixture: %v", err)
	}

	cfg := wtconfig.Config{}
	cfg.Files.Copy = []string{"../escape.txt", "present.txt"}

	dst := t.TempDir()
	var w bytes.Buffer
	if err := Apply(t.Context(), cfg, repoRoot, nil, dst, &w); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dst, "present.txt")); err != nil {
		t.Error("entries after a rejected one should still be copied")
	}
}

func TestApply_ExplicitSourceOverride(t *testing.T) {
	repoRoot := t.TempDir()
	altSource := t.TempDir()
	if err := os.WriteFile(filepath.Join(altSource, "shared.txt"), []byte("alt"), 0o644); err != nil {
		t.Fatalf("failed to create fixture: %v", err)
	}

	cfg := wtconfig.Config{}
	cfg.Files.Copy = []string{"shared.txt"}
	cfg.Files.Source = altSource

	dst := t.TempDir()
	var w bytes.Buffer
	if err := Apply(t.Context(), cfg, repoRoot, nil, dst, &w); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dst, "shared.txt")); err != nil {
		t.Errorf("expected file copied from explicit source, got error: %v", err)
	}
}

func TestApply_BareResolverFallback(t *testing.T) {
	defaultWT := t.TempDir()
	if err := os.WriteFile(filepath.Join(defaultWT, "shared.txt"), []byte("from-default-branch"), 0o644); err != nil {
		t.Fatalf("failed to create fixture: %v", err)
	}

	cfg := wtconfig.Config{}
	cfg.Files.Copy = []string{"shared.txt"}

	dst := t.TempDir()
	var w bytes.Buffer
	resolver := stubResolver{path: defaultWT, ok: true}
	if err := Apply(t.Context(), cfg, "", resolver, dst, &w); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dst, "shared.txt")); err != nil {
		t.Errorf("expected file copied via resolver, got error: %v", err)
	}
}

func TestApply_UnresolvableSourceIsNoticeNotError(t *testing.T) {
	cfg := wtconfig.Config{}
	cfg.Files.Copy = []string{"shared.txt"}

	dst := t.TempDir()
	var w bytes.Buffer
	resolver := stubResolver{ok: false}
	if err := Apply(t.Context(), cfg, "", resolver, dst, &w); err != nil {
		t.Fatalf("Apply should not error when no source resolves: %v", err)
	}
	if w.Len() == 0 {
		t.Error("expected a notice to be written")
	}
}

func TestApply_NoCopyEntriesIsNoOp(t *testing.T) {
	cfg := wtconfig.Config{}
	dst := t.TempDir()
	var w bytes.Buffer
	if err := Apply(t.Context(), cfg, t.TempDir(), nil, dst, &w); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if w.Len() != 0 {
		t.Errorf("expected no output for an empty copy list, got %q", w.String())
	}
}
