package fsx

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
)

// Common permission values.
const (
	FileModeDefault = 0o644 // -rw-r--r--
	FileModeSecure  = 0o600 // -rw-------
	FileModeExec    = 0o755 // -rwxr-xr-x
	DirModeDefault  = 0o755 // drwxr-xr-x
	DirModePrivate  = 0o700 // drwx------
)

// Perm holds the nine read/write/execute bits for owner, group and other.
// Setuid, setgid and sticky bits are outside its range: parsing rejects
// them and conversions mask them off, so symbolic and octal forms round-trip
// without loss.
type Perm uint16

// permChars holds the letter each symbolic position may carry, owner first.
var permChars = [9]byte{'r', 'w', 'x', 'r', 'w', 'x', 'r', 'w', 'x'}

// PermOf extracts the permission bits of a file mode.
func PermOf(mode fs.FileMode) Perm {
	return Perm(mode.Perm())
}

// FileMode converts back to an fs.FileMode carrying only permission bits.
func (p Perm) FileMode() fs.FileMode {
	return fs.FileMode(p & 0o777)
}

// Symbolic renders the nine-character form, e.g. 0o644 -> "rw-r--r--".
func (p Perm) Symbolic() string {
	var b [9]byte
	for i := 0; i < 9; i++ {
		if p&(1<<(8-i)) != 0 {
			b[i] = permChars[i]
		} else {
			b[i] = '-'
		}
	}
	return string(b[:])
}

// Octal renders the three-digit octal form, e.g. "644".
func (p Perm) Octal() string {
	return fmt.Sprintf("%03o", uint16(p&0o777))
}

// ParseSymbolic parses a nine-character symbolic permission string such as
// "rwxr-xr-x". Each position must be either '-' or the letter that belongs
// there; setuid/setgid/sticky letters (s, S, t, T) are rejected.
func ParseSymbolic(s string) (Perm, error) {
	if len(s) != 9 {
		return 0, fmt.Errorf("invalid symbolic permissions %q: want 9 characters, got %d", s, len(s))
	}
	var p Perm
	for i := 0; i < 9; i++ {
		switch s[i] {
		case permChars[i]:
			p |= 1 << (8 - i)
		case '-':
		default:
			return 0, fmt.Errorf("invalid symbolic permissions %q: unexpected %q at position %d", s, s[i], i)
		}
	}
	return p, nil
}

// ParseOctal parses a three-digit octal permission string such as "644".
func ParseOctal(s string) (Perm, error) {
	if len(s) != 3 {
		return 0, fmt.Errorf("invalid octal permissions %q: want 3 digits", s)
	}
	n, err := strconv.ParseUint(s, 8, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid octal permissions %q: %w", s, err)
	}
	return Perm(n), nil
}

// Chmod sets the permission bits of path.
func Chmod(path string, p Perm) error {
	if err := os.Chmod(path, p.FileMode()); err != nil {
		return fmt.Errorf("failed to chmod %s: %w", path, err)
	}
	return nil
}

// Chown changes the owner and group of path. Not supported on Windows.
func Chown(path string, uid, gid int) error {
	if err := os.Chown(path, uid, gid); err != nil {
		return fmt.Errorf("failed to chown %s: %w", path, err)
	}
	return nil
}

// ChownRecursive changes ownership of path and everything under it.
// Symlinks themselves are changed (Lchown), never their targets.
func ChownRecursive(path string, uid, gid int) error {
	return filepath.WalkDir(path, func(p string, _ fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := os.Lchown(p, uid, gid); err != nil {
			return fmt.Errorf("failed to chown %s: %w", p, err)
		}
		return nil
	})
}
