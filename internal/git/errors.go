package git

import "errors"

// Sentinel errors returned by the worktree engine. Callers are
// expected to match them with errors.Is/errors.As rather than parse
// message text.
var (
	// ErrBranchInUse is returned by Create (ExistingBranch source) when
	// the named branch is already checked out in another worktree.
	ErrBranchInUse = errors.New("branch is checked out in another worktree")

	// ErrPathExists is returned by Create when the destination path
	// already exists on disk.
	ErrPathExists = errors.New("destination path already exists")

	// ErrInvalidName is returned when a caller-supplied name fails
	// validation; wrapped around the underlying validate error.
	ErrInvalidName = errors.New("invalid worktree name")

	// ErrDirtyWorktree is returned by Remove when the worktree has
	// uncommitted changes and Force was not set.
	ErrDirtyWorktree = errors.New("worktree has uncommitted changes")

	// ErrUnmergedBranch is returned by Remove (DeleteBranch set, Force
	// not set) when the branch has commits not reachable from the
	// current HEAD.
	ErrUnmergedBranch = errors.New("branch is not fully merged")

	// ErrCurrentWorktree is returned by Rename/Remove when the target
	// is the worktree the caller is currently standing in.
	ErrCurrentWorktree = errors.New("cannot operate on the current worktree")

	// ErrMainWorktree is returned by Rename when the target is the
	// repository's main (non-deletable, non-renamable) worktree.
	ErrMainWorktree = errors.New("cannot rename the main worktree")

	// ErrPartialRename is returned by Rename when the directory move
	// succeeded but a later bookkeeping step failed. The worktree is
	// left in a state `git worktree repair` can recover; no rollback
	// is attempted.
	ErrPartialRename = errors.New("rename partially applied; run `git worktree repair` to recover")
)
