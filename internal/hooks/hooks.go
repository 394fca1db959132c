// Package hooks expands and runs the shell commands configured for
// the post-create, pre-remove, and post-switch lifecycle events. It
// has no Git dependency: the origin-URL gate is the caller's
// responsibility (wtconfig.GateHooks), not this package's.
package hooks

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/k1LoW/exec"
)

// Event identifies one of the three lifecycle points hooks run at.
type Event string

const (
	PostCreate Event = "post-create"
	PreRemove  Event = "pre-remove"
	PostSwitch Event = "post-switch"
)

// Run expands {{worktree_name}}/{{worktree_path}} in each command via
// plain substring replacement (no shell-style interpolation is
// performed here — the expanded string is handed to the system shell
// as-is) and runs commands strictly sequentially through `sh -c`,
// inheriting the parent environment plus GW_WORKTREE_NAME/
// GW_WORKTREE_PATH, with Cmd.Dir set to worktreePath.
//
// post-create and post-switch failures are collected as warnings
// written to w; the remaining commands still run and Run itself
// returns nil. A pre-remove failure aborts immediately and its error
// is returned to the caller.
func Run(ctx context.Context, event Event, commands []string, worktreeName, worktreePath string, w io.Writer) error {
	for _, raw := range commands {
		cmd := expand(raw, worktreeName, worktreePath)

		c := exec.CommandContext(ctx, "sh", "-c", cmd)
		c.Dir = worktreePath
		c.Env = append(os.Environ(),
			"GW_WORKTREE_NAME="+worktreeName,
			"GW_WORKTREE_PATH="+worktreePath,
		)
		c.Stdout = w
		c.Stderr = w

		if err := c.Run(); err != nil {
			if event == PreRemove {
				return fmt.Errorf("pre-remove hook %q failed: %w", cmd, err)
			}
			fmt.Fprintf(w, "warning: %s hook %q failed: %v\n", event, cmd, err)
		}
	}
	return nil
}

func expand(cmd, worktreeName, worktreePath string) string {
	cmd = strings.ReplaceAll(cmd, "{{worktree_name}}", worktreeName)
	cmd = strings.ReplaceAll(cmd, "{{worktree_path}}", worktreePath)
	return cmd
}
