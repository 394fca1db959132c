package hooks

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRun_TemplateExpansion(t *testing.T) {
	dir := t.TempDir()
	marker := filepath.Join(dir, "out.txt")

	var w bytes.Buffer
	err := Run(t.Context(), PostCreate,
		[]string{`echo "{{worktree_name}} at {{worktree_path}}" > ` + marker},
		"feat-x", dir, &w)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	data, err := os.ReadFile(marker)
	if err != nil {
		t.Fatalf("failed to read marker file: %v", err)
	}
	if !strings.Contains(string(data), "feat-x at "+dir) {
		t.Errorf("marker contents = %q, want it to contain expanded template", data)
	}
}

func TestRun_PostCreateFailureIsWarningNotAbort(t *testing.T) {
	dir := t.TempDir()
	marker := filepath.Join(dir, "ran-second.txt")

	var w bytes.Buffer
	err := Run(t.Context(), PostCreate,
		[]string{"exit 1", "touch " + marker},
		"x", dir, &w)
	if err != nil {
		t.Fatalf("Run should not return an error for a post-create failure: %v", err)
	}
	if _, err := os.Stat(marker); err != nil {
		t.Error("the second command should still have run after the first failed")
	}
	if !strings.Contains(w.String(), "warning") {
		t.Errorf("expected a warning to be written, got %q", w.String())
	}
}

func TestRun_PreRemoveFailureAborts(t *testing.T) {
	dir := t.TempDir()
	marker := filepath.Join(dir, "should-not-exist.txt")

	var w bytes.Buffer
	err := Run(t.Context(), PreRemove,
		[]string{"exit 1", "touch " + marker},
		"x", dir, &w)
	if err == nil {
		t.Fatal("expected pre-remove failure to return an error")
	}
	if _, statErr := os.Stat(marker); !errors.Is(statErr, os.ErrNotExist) {
		t.Error("no further commands should run once pre-remove fails")
	}
}

func TestRun_EnvironmentExported(t *testing.T) {
	dir := t.TempDir()
	marker := filepath.Join(dir, "env.txt")

	var w bytes.Buffer
	err := Run(t.Context(), PostSwitch,
		[]string{"echo $GW_WORKTREE_NAME:$GW_WORKTREE_PATH > " + marker},
		"demo", dir, &w)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	data, err := os.ReadFile(marker)
	if err != nil {
		t.Fatalf("failed to read marker file: %v", err)
	}
	if strings.TrimSpace(string(data)) != "demo:"+dir {
		t.Errorf("env marker = %q, want %q", strings.TrimSpace(string(data)), "demo:"+dir)
	}
}
