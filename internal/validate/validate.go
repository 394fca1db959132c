// Package validate implements the pure name/path validation rules
// worktree creation and rename rely on. Nothing in this package
// touches the filesystem or runs git.
package validate

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Sentinel errors for the worktree-name and custom-path rule sets.
// Callers compare with errors.Is; InvalidCharacter additionally
// carries the offending rune and is compared with errors.As.
var (
	ErrEmptyName         = errors.New("name is empty")
	ErrTooLong           = errors.New("name exceeds 255 bytes")
	ErrReservedName      = errors.New("name is a git-reserved token")
	ErrHiddenName        = errors.New("name starts with a dot")
	ErrAbsolutePath      = errors.New("path is absolute")
	ErrPathTraversal     = errors.New("path escapes more than one level")
	ErrTrailingSeparator = errors.New("path has a trailing separator")
)

// InvalidCharacterError reports a forbidden character found in a name
// or path component.
type InvalidCharacterError struct {
	Char rune
}

func (e *InvalidCharacterError) Error() string {
	return fmt.Sprintf("invalid character %q", e.Char)
}

const maxNameBytes = 255

// forbiddenChars are characters never allowed in a worktree name or
// a custom path component, on top of '/' which separates path
// components and is handled separately by CustomPath.
const forbiddenChars = `\:*?"<>|` + "\x00"

// windowsReservedChars is checked even on POSIX hosts so a config
// authored on Windows still round-trips: spec.md requires custom
// paths to "contain no Windows-reserved characters (checked
// cross-platform)".
const windowsReservedChars = `<>:"|?*`

// ReservedNames are the tokens Git itself uses inside a repository's
// administrative area. A worktree name, or any single path component
// of a custom path, must not collide with one of these.
var ReservedNames = map[string]struct{}{
	".git":      {},
	"HEAD":      {},
	"refs":      {},
	"objects":   {},
	"hooks":     {},
	"info":      {},
	"logs":      {},
	"worktrees": {},
	"index":     {},
	"config":    {},
}

// Name validates a worktree name per spec §4.1. The returned bool is
// an advisory warning (non-ASCII content present) and is not an
// error: the caller should surface it to the user but proceed.
func Name(raw string) (warn bool, err error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return false, ErrEmptyName
	}
	if raw != trimmed {
		// Leading/trailing whitespace on the untrimmed value is itself
		// a rejection, not silently normalized away.
		return false, ErrEmptyName
	}
	if len(raw) > maxNameBytes {
		return false, ErrTooLong
	}
	for _, r := range raw {
		if r == '/' || strings.ContainsRune(forbiddenChars, r) {
			return false, &InvalidCharacterError{Char: r}
		}
	}
	if _, reserved := ReservedNames[raw]; reserved {
		return false, ErrReservedName
	}
	if strings.HasPrefix(raw, ".") {
		return false, ErrHiddenName
	}
	for _, r := range raw {
		if r > unicode.MaxASCII {
			warn = true
			break
		}
	}
	return warn, nil
}

// CustomPath validates a user-supplied relative path per spec §4.1.
func CustomPath(raw string) error {
	if raw == "" {
		return ErrEmptyName
	}
	if strings.HasPrefix(raw, "/") || isDriveLetterPath(raw) {
		return ErrAbsolutePath
	}
	if strings.HasSuffix(raw, "/") {
		return ErrTrailingSeparator
	}
	for _, r := range raw {
		if strings.ContainsRune(windowsReservedChars, r) && r != '/' {
			return &InvalidCharacterError{Char: r}
		}
	}

	parts := strings.Split(raw, "/")
	dotDotCount := 0
	seenRealComponent := false
	for _, part := range parts {
		if part == ".." {
			if seenRealComponent {
				// A ".." after a real component is an escape attempt,
				// not part of the unbroken leading run.
				return ErrPathTraversal
			}
			dotDotCount++
			if dotDotCount > 1 {
				return ErrPathTraversal
			}
			continue
		}
		seenRealComponent = true
		if part == "" {
			// Only the very first ("" from a leading "/", already
			// rejected above) or an internal "//" can produce this;
			// an internal empty component is simply malformed.
			return ErrTrailingSeparator
		}
		if _, reserved := ReservedNames[part]; reserved {
			return ErrReservedName
		}
		if strings.HasPrefix(part, ".") && part != "." {
			return ErrHiddenName
		}
		for _, r := range part {
			if strings.ContainsRune(forbiddenChars, r) {
				return &InvalidCharacterError{Char: r}
			}
		}
	}
	return nil
}

// CopyEntry validates a files.copy entry from the config (spec §4.7).
// Unlike CustomPath, a copy entry is allowed to name a hidden file
// (".env" is the canonical example) or a path component that happens
// to match a reserved name deeper in a source tree we don't control;
// only escaping the repository (absolute path, or a ".." anywhere)
// disqualifies it.
func CopyEntry(raw string) error {
	if raw == "" {
		return ErrEmptyName
	}
	if strings.HasPrefix(raw, "/") || isDriveLetterPath(raw) {
		return ErrAbsolutePath
	}
	for _, part := range strings.Split(raw, "/") {
		if part == ".." {
			return ErrPathTraversal
		}
	}
	return nil
}

// isDriveLetterPath reports whether raw looks like a Windows absolute
// path ("C:\..." or "C:/..."), checked even on POSIX hosts per
// spec §4.1.
func isDriveLetterPath(raw string) bool {
	if len(raw) < 2 {
		return false
	}
	c := raw[0]
	isLetter := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
	return isLetter && raw[1] == ':'
}
