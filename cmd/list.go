package cmd

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/wasabeef/git-workers/internal/git"
)

// renderWorktreeTable prints one row per worktree, extended beyond
// the teacher's PATH/BRANCH/HEAD columns with the STATE and
// AHEAD/BEHIND facts spec §3's data model adds.
func renderWorktreeTable(w io.Writer, worktrees []git.Worktree) error {
	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"", "PATH", "BRANCH", "HEAD", "STATE"}),
		tablewriter.WithHeaderAlignment(tw.AlignLeft),
		tablewriter.WithHeaderPaddingPerColumn([]tw.Padding{tw.PaddingNone}),
		tablewriter.WithRowPaddingPerColumn([]tw.Padding{tw.PaddingNone}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.Border{
				Left:   tw.Off,
				Right:  tw.Off,
				Top:    tw.Off,
				Bottom: tw.Off,
			},
			Settings: tw.Settings{
				Separators: tw.Separators{
					ShowHeader:     tw.Off,
					ShowFooter:     tw.Off,
					BetweenRows:    tw.Off,
					BetweenColumns: tw.Off,
				},
				Lines: tw.Lines{
					ShowTop:        tw.Off,
					ShowBottom:     tw.Off,
					ShowHeaderLine: tw.Off,
					ShowFooterLine: tw.Off,
				},
			},
		}))

	for _, wt := range worktrees {
		marker := ""
		if wt.IsCurrent {
			marker = "*"
		}
		if err := table.Append([]string{marker, wt.Path, wt.Branch, wt.Head, stateLabel(wt)}); err != nil {
			return fmt.Errorf("failed to append row: %w", err)
		}
	}

	return table.Render()
}

// stateLabel renders a worktree's state column, folding the
// ahead/behind counts into the diverged/ahead/behind labels.
func stateLabel(wt git.Worktree) string {
	state := git.WorktreeState(wt)
	switch state {
	case git.StateAhead:
		return fmt.Sprintf("ahead %d", wt.Ahead)
	case git.StateBehind:
		return fmt.Sprintf("behind %d", wt.Behind)
	case git.StateDiverged:
		return fmt.Sprintf("diverged +%d/-%d", wt.Ahead, wt.Behind)
	default:
		return state.String()
	}
}
