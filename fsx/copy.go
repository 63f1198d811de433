package fsx

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Sentinel errors for copy precondition failures.
var (
	// ErrNotADirectory is returned when the copy source is not a directory.
	ErrNotADirectory = errors.New("source is not a directory")
	// ErrDestinationConflict is returned when the copy destination exists
	// but is not a directory.
	ErrDestinationConflict = errors.New("destination exists and is not a directory")
	// ErrNotRegular is returned when a file copy source is not a regular file.
	ErrNotRegular = errors.New("source is not a regular file")
)

// CopyError wraps a failure on a specific path during a tree copy.
// Op is "copy file", "copy dir", "chmod", or "copy" when the entry's
// kind could not be determined.
type CopyError struct {
	Op   string
	Path string
	Err  error
}

func (e *CopyError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *CopyError) Unwrap() error { return e.Err }

// symlinkSkipPrefix is the fixed prefix of the diagnostic emitted for each
// symlink skipped during a tree copy.
const symlinkSkipPrefix = "warning: skipping symlink "

// copyBufSize bounds memory per file copy regardless of file size.
const copyBufSize = 32 * 1024

// CopyOptions controls CopyTree behavior.
type CopyOptions struct {
	// QuietSymlinks suppresses the per-symlink skip diagnostic.
	QuietSymlinks bool
	// Warnings receives one line per skipped symlink. Defaults to os.Stdout.
	Warnings io.Writer
}

// CopyTree recursively copies the directory tree rooted at src to dst,
// preserving permission bits on every copied file and directory.
//
// Symbolic links are never followed and never copied: a link can escape the
// destination root or introduce a cycle, so each one is skipped and reported
// on opts.Warnings unless opts.QuietSymlinks is set.
//
// dst is created (like mkdir -p) if missing; if it exists it must be a
// directory. The first failure aborts the whole copy and the destination is
// left partially populated — callers that need atomicity should copy into a
// staging directory and rename it into place themselves.
func CopyTree(src, dst string, opts CopyOptions) error {
	if opts.Warnings == nil {
		opts.Warnings = os.Stdout
	}

	if Classify(src) != KindDir {
		return fmt.Errorf("%w: %s", ErrNotADirectory, src)
	}
	if inside, err := isSameOrBelow(dst, src); err != nil {
		return &CopyError{Op: "copy dir", Path: dst, Err: err}
	} else if inside {
		// Copying a tree into itself would recurse into its own output
		// until the path length limit.
		return fmt.Errorf("%w: %s is inside source %s", ErrDestinationConflict, dst, src)
	}
	srcInfo, err := os.Lstat(src)
	if err != nil {
		return &CopyError{Op: "copy dir", Path: src, Err: err}
	}

	switch Classify(dst) {
	case KindMissing:
		if err := EnsureDir(dst); err != nil {
			return &CopyError{Op: "copy dir", Path: dst, Err: err}
		}
	case KindDir:
		// Already usable.
	default:
		return fmt.Errorf("%w: %s", ErrDestinationConflict, dst)
	}

	// chmod after creation: MkdirAll applies the process umask, so the
	// destination may briefly carry narrower bits than the source. That
	// window is accepted; what matters is the final state.
	if err := os.Chmod(dst, srcInfo.Mode().Perm()); err != nil {
		return &CopyError{Op: "chmod", Path: dst, Err: err}
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return &CopyError{Op: "copy dir", Path: src, Err: err}
	}

	for _, entry := range entries {
		srcEntry := filepath.Join(src, entry.Name())
		dstEntry := filepath.Join(dst, entry.Name())
		if err := copyEntry(srcEntry, dstEntry, Classify(srcEntry), opts); err != nil {
			return err
		}
	}

	return nil
}

// isSameOrBelow reports whether path is root or lives underneath it,
// compared on absolute paths.
func isSameOrBelow(path, root string) (bool, error) {
	pathAbs, err := filepath.Abs(path)
	if err != nil {
		return false, err
	}
	rootAbs, err := filepath.Abs(root)
	if err != nil {
		return false, err
	}
	if pathAbs == rootAbs {
		return true, nil
	}
	return strings.HasPrefix(pathAbs, rootAbs+string(filepath.Separator)), nil
}

// copyEntry copies one classified directory entry.
func copyEntry(srcEntry, dstEntry string, kind FileKind, opts CopyOptions) error {
	switch kind {
	case KindSymlink:
		if !opts.QuietSymlinks {
			fmt.Fprintf(opts.Warnings, "%s%s\n", symlinkSkipPrefix, srcEntry)
		}
		return nil

	case KindRegular:
		if err := CopyFile(srcEntry, dstEntry); err != nil {
			return &CopyError{Op: "copy file", Path: srcEntry, Err: err}
		}
		return nil

	case KindDir:
		return CopyTree(srcEntry, dstEntry, opts)

	case KindMissing:
		// The entry was listed but vanished before we classified it, so its
		// kind is unknowable. Hiding the race would make the copy silently
		// incomplete.
		return &CopyError{Op: "copy", Path: srcEntry, Err: os.ErrNotExist}

	default:
		// Devices, sockets and fifos have no meaningful copy semantics
		// for a script utility; treat like symlinks but always report.
		fmt.Fprintf(opts.Warnings, "warning: skipping special file %s\n", srcEntry)
		return nil
	}
}

// CopyFile copies a single regular file from src to dst, replacing dst if it
// exists. Content is streamed through a fixed-size buffer, and the source's
// permission bits are applied to dst after the content copy completes.
func CopyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return err
	}
	if !srcInfo.Mode().IsRegular() {
		return fmt.Errorf("%w: %s", ErrNotRegular, src)
	}

	dstFile, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, srcInfo.Mode().Perm())
	if err != nil {
		return err
	}

	buf := make([]byte, copyBufSize)
	if _, err := io.CopyBuffer(dstFile, srcFile, buf); err != nil {
		dstFile.Close()
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}
	if err := dstFile.Close(); err != nil {
		return err
	}

	// The open above passes the mode through the umask; re-apply the exact
	// source bits once the file is complete.
	if err := os.Chmod(dst, srcInfo.Mode().Perm()); err != nil {
		return &CopyError{Op: "chmod", Path: dst, Err: err}
	}
	return nil
}
