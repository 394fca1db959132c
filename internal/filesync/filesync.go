// Package filesync applies a .git-workers.toml files.copy list into a
// freshly created worktree. It is thin orchestration over
// fsutil.CopyTree: resolving the copy source, validating each entry,
// and reporting per-entry problems without aborting the rest of the
// list.
package filesync

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/wasabeef/git-workers/internal/fsutil"
	"github.com/wasabeef/git-workers/internal/validate"
	"github.com/wasabeef/git-workers/internal/wtconfig"
)

// SourceResolver is the minimal surface Apply needs from the worktree
// engine to find the bare-repository default-branch worktree — kept
// as an interface so this package never imports internal/git (config
// and filesync sit below the engine, not above it).
type SourceResolver interface {
	DefaultBranchWorktreePath(ctx context.Context) (string, bool, error)
}

// Apply resolves the copy source per spec §4.7 and copies every entry
// in cfg.Files.Copy into newWorktreePath. A missing or invalid entry
// is reported through w as a warning and does not stop the remaining
// entries; a source that cannot be resolved (no source at all for a
// bare repo with no default-branch worktree, or an error while looking
// it up) is reported as a notice, never as an error — the overall
// worktree creation always succeeds
// regardless of what this function encounters.
func Apply(ctx context.Context, cfg wtconfig.Config, repoRoot string, resolver SourceResolver, newWorktreePath string, w io.Writer) error {
	if len(cfg.Files.Copy) == 0 {
		return nil
	}

	source, ok, err := resolveSource(ctx, cfg, repoRoot, resolver)
	if err != nil {
		fmt.Fprintf(w, "notice: failed to resolve the file-copy source (%v); skipping files.copy\n", err)
		return nil
	}
	if !ok {
		fmt.Fprintln(w, "notice: no file-copy source could be resolved; skipping files.copy")
		return nil
	}

	for _, entry := range cfg.Files.Copy {
		if err := validate.CopyEntry(entry); err != nil {
			fmt.Fprintf(w, "warning: skipping files.copy entry %q: %v\n", entry, err)
			continue
		}

		src := filepath.Join(source, entry)
		info, statErr := os.Lstat(src)
		if statErr != nil {
			fmt.Fprintf(w, "warning: files.copy entry %q not found under %q\n", entry, source)
			continue
		}

		dst := filepath.Join(newWorktreePath, entry)
		if info.IsDir() {
			if err := fsutil.CopyTree(src, dst, fsutil.CopyOptions{}, w); err != nil {
				fmt.Fprintf(w, "warning: failed to copy %q: %v\n", entry, err)
			}
			continue
		}

		if err := fsutil.CopyFile(src, dst); err != nil {
			fmt.Fprintf(w, "warning: failed to copy %q: %v\n", entry, err)
		}
	}
	return nil
}

// resolveSource implements the two-step source resolution of spec
// §4.7: an explicit files.source wins outright; otherwise the main
// worktree root for non-bare repositories, or the default branch's
// worktree for bare ones.
func resolveSource(ctx context.Context, cfg wtconfig.Config, repoRoot string, resolver SourceResolver) (string, bool, error) {
	if cfg.Files.Source != "" {
		if filepath.IsAbs(cfg.Files.Source) {
			return cfg.Files.Source, true, nil
		}
		return filepath.Join(repoRoot, cfg.Files.Source), true, nil
	}

	if resolver == nil {
		return repoRoot, true, nil
	}
	return resolver.DefaultBranchWorktreePath(ctx)
}

