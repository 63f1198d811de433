package fsx

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// EnsureDir creates the directory at path, including any missing ancestors.
// It is idempotent: an existing directory is success. If MkdirAll fails but
// a directory exists at path afterwards, another process won the creation
// race and that also counts as success.
func EnsureDir(path string) error {
	err := os.MkdirAll(path, 0755)
	if err == nil {
		return nil
	}
	if info, statErr := os.Stat(path); statErr == nil && info.IsDir() {
		return nil
	}
	return fmt.Errorf("failed to create directory %s: %w", path, err)
}

// RemoveTree removes path and everything under it. A missing path is not an
// error.
func RemoveTree(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}
	return nil
}

// Rename moves oldpath to newpath. When the rename fails because the two
// paths are on different filesystems, a regular file is copied and the
// original removed instead; directories are not moved across devices.
func Rename(oldpath, newpath string) error {
	err := os.Rename(oldpath, newpath)
	if err == nil {
		return nil
	}

	var linkErr *os.LinkError
	if !errors.As(err, &linkErr) || !isCrossDevice(linkErr.Err) {
		return err
	}
	if Classify(oldpath) != KindRegular {
		return err
	}

	if err := CopyFile(oldpath, newpath); err != nil {
		return fmt.Errorf("failed to move %s across devices: %w", oldpath, err)
	}
	if err := os.Remove(oldpath); err != nil {
		return fmt.Errorf("failed to remove %s after cross-device move: %w", oldpath, err)
	}
	return nil
}

// ReadDirNames returns the names of the immediate entries of dir, in the
// order the OS provides them.
func ReadDirNames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	return names, nil
}

// IsDirEmpty reports whether dir exists and contains no entries.
func IsDirEmpty(dir string) (bool, error) {
	f, err := os.Open(dir)
	if err != nil {
		return false, err
	}
	defer f.Close()

	_, err = f.ReadDir(1)
	if err == io.EOF {
		return true, nil
	}
	return false, err
}

// WriteFileAtomic writes data to path via a temporary sibling file and
// rename, so readers never observe a partially written file.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("failed to create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
