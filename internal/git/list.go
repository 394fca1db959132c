package git

import (
	"bufio"
	"context"
	"strings"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// List enumerates worktrees from Git's admin area (`git worktree list
// --porcelain`, the only CLI-neutral machine format Git exposes) and
// enriches each entry via go-git: dirty state, ahead/behind against
// upstream, and the HEAD commit's timestamp. Nothing here is cached —
// every call recomputes from scratch, per spec §4.5.2.
func (e *Engine) List(ctx context.Context) ([]Worktree, error) {
	worktrees, err := e.listPorcelain(ctx)
	if err != nil {
		return nil, err
	}

	current, err := CurrentLocation(ctx)
	if err != nil {
		current = ""
	}

	for i := range worktrees {
		wt := &worktrees[i]
		wt.IsCurrent = samePath(wt.Path, current)
		wt.IsBareParent = e.bare
		wt.IsMain = !e.bare && samePath(wt.Path, e.root)

		if wt.Bare || wt.Missing() {
			continue
		}

		if wt.Branch != "" && wt.Branch != DetachedMarker {
			ahead, behind, aerr := e.aheadBehind(wt.Branch)
			if aerr == nil {
				wt.Ahead, wt.Behind = ahead, behind
			}
		}

		if dirty, derr := e.hasChanges(wt.Path); derr == nil {
			wt.HasChanges = dirty
		}

		if ts, terr := e.lastCommitTime(wt.Path); terr == nil {
			wt.LastModified = ts.Format(time.RFC3339)
		}
	}

	return worktrees, nil
}

func samePath(a, b string) bool {
	return a != "" && b != "" && a == b
}

// listPorcelain parses `git worktree list --porcelain`, the same
// format the teacher's ListWorktrees parsed, into bare Worktree
// records (no enrichment beyond what the porcelain output itself
// carries).
func (e *Engine) listPorcelain(ctx context.Context) ([]Worktree, error) {
	cmd, err := gitCommand(ctx, "worktree", "list", "--porcelain")
	if err != nil {
		return nil, err
	}
	out, err := cmd.Output()
	if err != nil {
		return nil, err
	}

	var worktrees []Worktree
	var cur Worktree
	flush := func() {
		if cur.Path != "" {
			worktrees = append(worktrees, cur)
		}
		cur = Worktree{}
	}

	scanner := bufio.NewScanner(strings.NewReader(string(out)))
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			flush()
			continue
		}
		switch {
		case strings.HasPrefix(line, "worktree "):
			cur.Path = strings.TrimPrefix(line, "worktree ")
		case strings.HasPrefix(line, "HEAD "):
			head := strings.TrimPrefix(line, "HEAD ")
			if len(head) >= 7 {
				cur.Head = head[:7]
			} else {
				cur.Head = head
			}
		case strings.HasPrefix(line, "branch "):
			cur.Branch = strings.TrimPrefix(strings.TrimPrefix(line, "branch "), "refs/heads/")
		case line == "bare":
			cur.Bare = true
		case line == "detached":
			cur.Branch = DetachedMarker
		}
	}
	flush()

	return worktrees, nil
}

// aheadBehind counts commits reachable from the local branch but not
// its origin-tracking counterpart, and vice versa, via their merge
// base. Returns (0, 0, nil) when there is no such upstream — matching
// spec §3's "0 if no upstream".
func (e *Engine) aheadBehind(branch string) (ahead, behind int, err error) {
	repo, err := gogit.PlainOpen(e.root)
	if err != nil {
		return 0, 0, err
	}

	localRef, err := repo.Reference(plumbing.NewBranchReferenceName(branch), true)
	if err != nil {
		return 0, 0, nil
	}
	upstreamRef, err := repo.Reference(plumbing.NewRemoteReferenceName("origin", branch), true)
	if err != nil {
		return 0, 0, nil
	}
	if localRef.Hash() == upstreamRef.Hash() {
		return 0, 0, nil
	}

	localCommit, err := repo.CommitObject(localRef.Hash())
	if err != nil {
		return 0, 0, err
	}
	upstreamCommit, err := repo.CommitObject(upstreamRef.Hash())
	if err != nil {
		return 0, 0, err
	}

	bases, err := localCommit.MergeBase(upstreamCommit)
	if err != nil || len(bases) == 0 {
		return 0, 0, nil
	}
	base := bases[0].Hash

	ahead, err = countCommitsUntil(localCommit, base)
	if err != nil {
		return 0, 0, err
	}
	behind, err = countCommitsUntil(upstreamCommit, base)
	if err != nil {
		return 0, 0, err
	}
	return ahead, behind, nil
}

func countCommitsUntil(start *object.Commit, stop plumbing.Hash) (int, error) {
	if start.Hash == stop {
		return 0, nil
	}
	count := 0
	iter := object.NewCommitPreorderIter(start, nil, nil)
	err := iter.ForEach(func(c *object.Commit) error {
		if c.Hash == stop {
			return storer.ErrStop
		}
		count++
		return nil
	})
	if err != nil && err != storer.ErrStop {
		return 0, err
	}
	return count, nil
}

// hasChanges opens the repository rooted at worktreePath and reports
// whether its working tree has uncommitted changes.
func (e *Engine) hasChanges(worktreePath string) (bool, error) {
	repo, err := gogit.PlainOpenWithOptions(worktreePath, &gogit.PlainOpenOptions{EnableDotGitCommonDir: true})
	if err != nil {
		return false, err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return false, err
	}
	status, err := wt.Status()
	if err != nil {
		return false, err
	}
	return !status.IsClean(), nil
}

// lastCommitTime returns the HEAD commit's author timestamp for the
// repository rooted at worktreePath.
func (e *Engine) lastCommitTime(worktreePath string) (time.Time, error) {
	repo, err := gogit.PlainOpenWithOptions(worktreePath, &gogit.PlainOpenOptions{EnableDotGitCommonDir: true})
	if err != nil {
		return time.Time{}, err
	}
	head, err := repo.Head()
	if err != nil {
		return time.Time{}, err
	}
	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return time.Time{}, err
	}
	return commit.Author.When, nil
}
