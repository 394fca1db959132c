package git

import "fmt"

// State classifies a worktree for display purposes. It is derived
// fresh from a Worktree record on every call — nothing here is
// persisted or cached.
type State int

const (
	StateClean State = iota
	StateDirty
	StateAhead
	StateBehind
	StateDiverged
	StateDetached
	StateMissing
)

// WorktreeState computes wt's display state. Detached takes priority
// over ahead/behind/dirty (a detached HEAD has no upstream to compare
// against); Missing takes priority over everything (the path Git still
// lists no longer exists on disk).
func WorktreeState(wt Worktree) State {
	if wt.Missing() {
		return StateMissing
	}
	if wt.Branch == DetachedMarker {
		return StateDetached
	}
	if wt.HasChanges {
		return StateDirty
	}
	switch {
	case wt.Ahead > 0 && wt.Behind > 0:
		return StateDiverged
	case wt.Ahead > 0:
		return StateAhead
	case wt.Behind > 0:
		return StateBehind
	default:
		return StateClean
	}
}

// String renders a State as a bare lowercase label ("ahead",
// "diverged", ...). It carries no ahead/behind counts; the list
// command's stateLabel adds those.
func (s State) String() string {
	switch s {
	case StateClean:
		return "clean"
	case StateDirty:
		return "dirty"
	case StateAhead:
		return "ahead"
	case StateBehind:
		return "behind"
	case StateDiverged:
		return "diverged"
	case StateDetached:
		return "detached"
	case StateMissing:
		return "missing"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}
