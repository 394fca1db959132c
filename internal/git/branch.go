package git

import (
	"context"
	"fmt"
	"os"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Branches enumerates local and remote-tracking refs, deduplicating
// remote names by stripping the remote prefix and dropping the
// remote's own HEAD alias (spec §4.5 — "filtering out the remote's
// HEAD alias").
func (e *Engine) Branches(ctx context.Context) ([]Branch, error) {
	repo, err := gogit.PlainOpen(e.root)
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}

	defaultBranch, _ := e.DefaultBranch(ctx)

	var out []Branch
	iter, err := repo.Branches()
	if err != nil {
		return nil, err
	}
	if err := iter.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().Short()
		out = append(out, Branch{
			Name:      name,
			Hash:      ref.Hash().String(),
			IsDefault: name == defaultBranch,
		})
		return nil
	}); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(out))
	for _, b := range out {
		seen[b.Name] = true
	}

	refs, err := repo.References()
	if err != nil {
		return nil, err
	}
	if err := refs.ForEach(func(ref *plumbing.Reference) error {
		if !ref.Name().IsRemote() {
			return nil
		}
		short := ref.Name().Short() // "origin/main"
		idx := strings.IndexByte(short, '/')
		if idx < 0 {
			return nil
		}
		branchName := short[idx+1:]
		if branchName == "HEAD" || seen[branchName] {
			return nil
		}
		seen[branchName] = true
		out = append(out, Branch{
			Name:      branchName,
			Hash:      ref.Hash().String(),
			Remote:    true,
			IsDefault: branchName == defaultBranch,
		})
		return nil
	}); err != nil {
		return nil, err
	}

	return out, nil
}

// Tags enumerates tags, attaching the annotation message where the
// tag is annotated (a lightweight tag carries none).
func (e *Engine) Tags(ctx context.Context) ([]Tag, error) {
	repo, err := gogit.PlainOpen(e.root)
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}

	var out []Tag
	iter, err := repo.Tags()
	if err != nil {
		return nil, err
	}
	if err := iter.ForEach(func(ref *plumbing.Reference) error {
		tag := Tag{Name: ref.Name().Short(), Hash: ref.Hash().String()}
		if obj, terr := repo.TagObject(ref.Hash()); terr == nil {
			tag.Message = strings.TrimSpace(obj.Message)
			tag.Hash = obj.Target.String()
		}
		out = append(out, tag)
		return nil
	}); err != nil {
		return nil, err
	}
	return out, nil
}

// BranchExists checks both local and origin-remote refs.
func (e *Engine) BranchExists(ctx context.Context, name string) (bool, error) {
	local, err := e.LocalBranchExists(ctx, name)
	if err != nil || local {
		return local, err
	}
	cmd, err := gitCommand(ctx, "show-ref", "--verify", "--quiet", "refs/remotes/origin/"+name)
	if err != nil {
		return false, err
	}
	return cmd.Run() == nil, nil
}

// LocalBranchExists checks refs/heads/<name> only.
func (e *Engine) LocalBranchExists(ctx context.Context, name string) (bool, error) {
	cmd, err := gitCommand(ctx, "show-ref", "--verify", "--quiet", "refs/heads/"+name)
	if err != nil {
		return false, err
	}
	return cmd.Run() == nil, nil
}

// CreateBranch creates name at the current HEAD.
func (e *Engine) CreateBranch(ctx context.Context, name string) error {
	cmd, err := gitCommand(ctx, "branch", name)
	if err != nil {
		return err
	}
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// DeleteBranch deletes name; force selects `-D` over `-d`.
func (e *Engine) DeleteBranch(ctx context.Context, name string, force bool) error {
	flag := "-d"
	if force {
		flag = "-D"
	}
	cmd, err := gitCommand(ctx, "branch", flag, name)
	if err != nil {
		return err
	}
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// RenameBranch renames a local branch in place (`git branch -m`).
func (e *Engine) RenameBranch(ctx context.Context, oldName, newName string) error {
	cmd, err := gitCommand(ctx, "branch", "-m", oldName, newName)
	if err != nil {
		return err
	}
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// IsBranchMerged reports whether name is reachable from the current
// HEAD (`git branch --merged`).
func (e *Engine) IsBranchMerged(ctx context.Context, name string) (bool, error) {
	cmd, err := gitCommand(ctx, "branch", "--merged")
	if err != nil {
		return false, err
	}
	out, err := cmd.Output()
	if err != nil {
		return false, err
	}
	for _, line := range strings.Split(string(out), "\n") {
		if strings.TrimSpace(strings.TrimPrefix(line, "*")) == name {
			return true, nil
		}
	}
	return false, nil
}

// DefaultBranch reports the repository's default branch: the remote
// HEAD symref if origin is configured, falling back to whichever of
// "main"/"master" exists locally.
func (e *Engine) DefaultBranch(ctx context.Context) (string, error) {
	cmd, err := gitCommand(ctx, "symbolic-ref", "refs/remotes/origin/HEAD", "--short")
	if err != nil {
		return "", err
	}
	if out, err := cmd.Output(); err == nil {
		return strings.TrimPrefix(strings.TrimSpace(string(out)), "origin/"), nil
	}

	for _, name := range []string{"main", "master"} {
		exists, err := e.LocalBranchExists(ctx, name)
		if err == nil && exists {
			return name, nil
		}
	}
	return "", nil
}

// IsDefaultBranch reports whether name is the repository's default
// branch.
func (e *Engine) IsDefaultBranch(ctx context.Context, name string) (bool, error) {
	def, err := e.DefaultBranch(ctx)
	if err != nil {
		return false, err
	}
	return def != "" && def == name, nil
}
