package fsx

import (
	"fmt"
	"os"
	"path/filepath"
)

// IsSymlinkOrJunction checks whether path is a symlink or Windows junction.
func IsSymlinkOrJunction(path string) bool {
	info, err := os.Lstat(path)
	if err != nil {
		return false
	}

	if info.Mode()&os.ModeSymlink != 0 {
		return true
	}

	return isWindowsReparsePoint(path)
}

// CreateSymlink creates a symlink at linkPath pointing to target. The
// parent directory of linkPath is created if missing.
func CreateSymlink(linkPath, target string) error {
	if err := EnsureDir(filepath.Dir(linkPath)); err != nil {
		return err
	}
	if err := os.Symlink(target, linkPath); err != nil {
		return fmt.Errorf("failed to create symlink %s -> %s: %w", linkPath, target, err)
	}
	return nil
}

// ResolveLinkTarget resolves the target path of a symlink or junction.
func ResolveLinkTarget(path string) (string, error) {
	link, err := os.Readlink(path)
	if err == nil {
		if !filepath.IsAbs(link) {
			link = filepath.Join(filepath.Dir(path), link)
		}
		return filepath.Abs(link)
	}

	// On Windows, Readlink may fail for junctions. EvalSymlinks still resolves.
	resolved, evalErr := filepath.EvalSymlinks(path)
	if evalErr != nil {
		return "", err
	}
	return filepath.Abs(resolved)
}

// ResolveSymlink resolves symlinks on a path so callers can walk into
// symlinked directories. Falls back to the original path on error.
func ResolveSymlink(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved
	}
	return path
}
