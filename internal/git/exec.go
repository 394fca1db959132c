package git

import (
	"context"

	"github.com/k1LoW/exec"
)

// gitCommand builds an exec.Cmd for git with the given context and
// arguments. PATH resolution of the git binary is left to exec.Cmd
// itself, matching the teacher's own CommandContext("sh", ...) usage
// in RunRemover.
func gitCommand(ctx context.Context, args ...string) (*exec.Cmd, error) {
	return exec.CommandContext(ctx, "git", args...), nil
}
