//go:build darwin

// macOS implementation using clonefile(2) for APFS Copy-on-Write.
// clonefile creates a lightweight clone that shares data blocks until
// modified, making copies nearly instantaneous regardless of file
// size. Falls back to a traditional io.Copy when clonefile fails
// (non-APFS, cross-device, etc.).

package fsutil

import (
	"io"
	"os"

	"golang.org/x/sys/unix"
)

func copyFile(src, dst string, info os.FileInfo) error {
	if err := unix.Clonefile(src, dst, unix.CLONE_NOFOLLOW); err == nil {
		return os.Chmod(dst, info.Mode())
	}
	return copyFileTraditional(src, dst, info)
}

func copyFileTraditional(src, dst string, info os.FileInfo) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode())
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return os.Chmod(dst, info.Mode())
}
