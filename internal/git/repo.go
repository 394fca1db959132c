package git

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// RepoContext describes the type and location within a git repository.
//
// The four possible states are:
//
//	{Bare: false, Worktree: false} — main working tree of a normal repository
//	{Bare: false, Worktree: true}  — linked worktree of a normal repository
//	{Bare: true,  Worktree: false} — bare repository root (no working tree)
//	{Bare: true,  Worktree: true}  — linked worktree created from a bare repository
//
// Every operation in this package branches on Bare rather than
// rejecting it; bare repositories are a first-class case, not an
// error path.
type RepoContext struct {
	Bare     bool
	Worktree bool
}

// DetectRepoContext runs `git rev-parse --git-dir --git-common-dir`
// once and classifies the result:
//
//   - Bare: filepath.Base(gitCommonDir) != ".git" — in a normal repo,
//     git-common-dir ends with ".git"; in a bare repo, git-common-dir
//     IS the repository directory (e.g. "repo.git" or any name).
//   - Worktree: gitDir != gitCommonDir — equal in the main working
//     tree (or the bare root); gitDir points at a worktrees/X
//     subdirectory in a linked worktree.
func DetectRepoContext(ctx context.Context) (RepoContext, error) {
	gitDir, gitCommonDir, err := gitDirs(ctx)
	if err != nil {
		return RepoContext{}, err
	}
	return RepoContext{
		Bare:     filepath.Base(gitCommonDir) != ".git",
		Worktree: gitDir != gitCommonDir,
	}, nil
}

// gitDirs returns the absolute git-dir and git-common-dir for the
// current repository.
func gitDirs(ctx context.Context) (gitDir, gitCommonDir string, err error) {
	cmd, err := gitCommand(ctx, "rev-parse", "--path-format=absolute", "--git-dir", "--git-common-dir")
	if err != nil {
		return "", "", err
	}
	out, err := cmd.Output()
	if err != nil {
		return "", "", err
	}
	lines := strings.SplitN(strings.TrimSpace(string(out)), "\n", 2)
	if len(lines) != 2 {
		return "", "", fmt.Errorf("unexpected output from git rev-parse: %q", string(out))
	}
	return lines[0], lines[1], nil
}

// RepoRoot returns the root of the current working tree (or the bare
// directory itself, when standing inside a bare root).
func RepoRoot(ctx context.Context) (string, error) {
	cmd, err := gitCommand(ctx, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	out, err := cmd.Output()
	if err != nil {
		// `rev-parse --show-toplevel` fails inside a bare root (there is
		// no working tree); fall back to the common-dir itself.
		_, common, derr := gitDirs(ctx)
		if derr != nil {
			return "", err
		}
		return common, nil
	}
	return strings.TrimSpace(string(out)), nil
}

// MainRepoRoot returns the main repository's root directory, even
// when called from inside a linked worktree. For normal repositories
// this is the parent of the shared ".git" directory; for bare
// repositories the common-dir IS the repository directory.
func MainRepoRoot(ctx context.Context) (string, error) {
	_, gitCommonDir, err := gitDirs(ctx)
	if err != nil {
		return "", err
	}
	if filepath.Base(gitCommonDir) == ".git" {
		return filepath.Dir(gitCommonDir), nil
	}
	return gitCommonDir, nil
}

// AdminDir returns the repository's common git directory — the
// location the worklock file lives in. This is the ".git" directory
// for a normal repository, or the bare directory itself.
func AdminDir(ctx context.Context) (string, error) {
	_, gitCommonDir, err := gitDirs(ctx)
	return gitCommonDir, err
}

// RepoName returns the main repository's directory name.
func RepoName(ctx context.Context) (string, error) {
	root, err := MainRepoRoot(ctx)
	if err != nil {
		return "", err
	}
	return filepath.Base(root), nil
}

// CurrentWorktree returns the path of the worktree the caller is
// standing in. Inside a bare root (no working tree) this returns an
// error; callers that must also handle the bare-root case should use
// CurrentLocation.
func CurrentWorktree(ctx context.Context) (string, error) {
	cmd, err := gitCommand(ctx, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	out, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// CurrentLocation returns the path identifying the caller's current
// position for display/matching purposes: the working tree root in
// every non-bare-root case, or the bare directory itself when the
// caller is standing at a bare repository's root with no checkout.
func CurrentLocation(ctx context.Context) (string, error) {
	rc, err := DetectRepoContext(ctx)
	if err != nil {
		return "", err
	}
	if rc.Bare && !rc.Worktree {
		return MainRepoRoot(ctx)
	}
	return CurrentWorktree(ctx)
}

// OriginURL returns the `origin` remote's fetch URL, or "" if no such
// remote is configured. Used by wtconfig.GateHooks.
func OriginURL(ctx context.Context) (string, error) {
	cmd, err := gitCommand(ctx, "remote", "get-url", "origin")
	if err != nil {
		return "", err
	}
	out, err := cmd.Output()
	if err != nil {
		return "", nil
	}
	return strings.TrimSpace(string(out)), nil
}

// Engine is the worktree engine: the entry point for every read and
// write operation in this package that needs repository-wide state
// (branches, tags, ahead/behind, worktree creation/removal/rename).
// It holds no long-lived handles — Branches/Tags/etc. reopen the
// repository on each call via go-git, matching the "no caching"
// requirement on the read path.
type Engine struct {
	root    string // MainRepoRoot: working-tree root or bare directory
	bare    bool
	context RepoContext
}

// Open detects the current repository's context and returns an Engine
// bound to it.
func Open(ctx context.Context) (*Engine, error) {
	rc, err := DetectRepoContext(ctx)
	if err != nil {
		return nil, err
	}
	root, err := MainRepoRoot(ctx)
	if err != nil {
		return nil, err
	}
	return &Engine{root: root, bare: rc.Bare, context: rc}, nil
}

// Root returns the engine's main repository root.
func (e *Engine) Root() string { return e.root }

// Bare reports whether the engine's repository is bare.
func (e *Engine) Bare() bool { return e.bare }
