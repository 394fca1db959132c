// Package worklock implements the single-writer advisory lock that
// guards mutating worktree operations (spec §4.3). Read operations
// (list, search, switch, cleanup scan) never acquire it.
package worklock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrBusy is returned by Acquire when another process holds a
// non-stale lock.
var ErrBusy = errors.New("another git-workers operation is in progress")

// staleAfter is the age at which a held lock is assumed abandoned
// (e.g. the holder crashed) and reclaimed, per spec §4.3.
const staleAfter = 5 * time.Minute

const lockFileName = "git-workers-worktree.lock"

// Lock represents an acquired advisory lock file.
type Lock struct {
	path string
	id   uuid.UUID
}

// Path returns the admin-area path a Lock would use. Exported so
// callers can check lock state without acquiring it (e.g. for
// diagnostics).
func Path(adminDir string) string {
	return filepath.Join(adminDir, lockFileName)
}

// Acquire creates the lock file exclusively. If it already exists and
// the holder's recorded timestamp is older than five minutes, the
// stale lock is removed and creation is retried exactly once;
// otherwise Acquire returns ErrBusy.
func Acquire(adminDir string) (*Lock, error) {
	path := Path(adminDir)
	lock, err := tryCreate(path)
	if err == nil {
		return lock, nil
	}
	if !errors.Is(err, os.ErrExist) {
		return nil, err
	}

	stale, staleErr := isStale(path)
	if staleErr != nil {
		// The holder file vanished between the failed create and our
		// read of it (the other process released concurrently); a
		// retry will either succeed or report a fresh Busy.
		if errors.Is(staleErr, os.ErrNotExist) {
			return tryCreate(path)
		}
		return nil, staleErr
	}
	if !stale {
		return nil, ErrBusy
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to remove stale lock %q: %w", path, err)
	}
	return tryCreate(path)
}

func tryCreate(path string) (*Lock, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create lock %q: %w", path, err)
	}
	defer f.Close()

	id := uuid.New()
	contents := fmt.Sprintf("%s:%d:%d\n", id, os.Getpid(), time.Now().Unix())
	if _, err := f.WriteString(contents); err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("failed to write lock %q: %w", path, err)
	}
	return &Lock{path: path, id: id}, nil
}

// isStale reports whether the lock file at path was acquired more
// than five minutes ago.
func isStale(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	_, acquiredAt, err := parse(string(data))
	if err != nil {
		// An unparseable lock file is treated as foreign/corrupt, not
		// ours to reclaim automatically.
		return false, nil
	}
	return time.Since(acquiredAt) > staleAfter, nil
}

func parse(contents string) (pid int, acquiredAt time.Time, err error) {
	fields := strings.Split(strings.TrimSpace(contents), ":")
	if len(fields) != 3 {
		return 0, time.Time{}, fmt.Errorf("malformed lock contents %q", contents)
	}
	pid, err = strconv.Atoi(fields[1])
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("malformed lock pid %q: %w", fields[1], err)
	}
	ts, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("malformed lock timestamp %q: %w", fields[2], err)
	}
	return pid, time.Unix(ts, 0), nil
}

// Release removes the lock file. It is safe to call multiple times
// and safe to call from a deferred context, including on a panicking
// goroutine's unwind.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	if err := os.Remove(l.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to release lock %q: %w", l.path, err)
	}
	return nil
}

// String reports the lock's human-readable identity: the holder's PID
// alongside the UUID written into the lock file. Staleness is judged
// from the file's timestamp, not from either of these.
func (l *Lock) String() string {
	return fmt.Sprintf("pid %d (lock %s)", os.Getpid(), l.id)
}
