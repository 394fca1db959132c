// Package shellhook implements the directory-change handshake between
// the process and the wrapper shell function that invokes it: the
// process itself can never change its parent shell's working
// directory, so it communicates the target path out-of-band per
// spec §4.8.
package shellhook

import (
	"fmt"
	"io"
	"os"
)

// switchFileEnv is the variable the wrapper function sets to a
// per-invocation temporary path before running the binary.
const switchFileEnv = "GW_SWITCH_FILE"

// legacyMarkerPrefix is written to stdout when no handshake file is in
// play, for wrapper functions that only know to scrape the last line
// of output.
const legacyMarkerPrefix = "SWITCH_TO:"

// Switch signals that the parent shell should cd to path. When
// GW_SWITCH_FILE is set, path is written there verbatim (no trailing
// newline) and the wrapper is expected to read, remove, and cd to it.
// Otherwise the legacy SWITCH_TO:<path> marker is written to stdout.
func Switch(path string) error {
	return switchTo(path, os.Stdout)
}

func switchTo(path string, stdout io.Writer) error {
	if file := os.Getenv(switchFileEnv); file != "" {
		if err := os.WriteFile(file, []byte(path), 0o600); err != nil {
			return fmt.Errorf("failed to write switch handshake file %q: %w", file, err)
		}
		return nil
	}
	_, err := fmt.Fprintln(stdout, legacyMarkerPrefix+path)
	return err
}
