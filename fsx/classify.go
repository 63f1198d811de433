package fsx

import "os"

// FileKind classifies a single filesystem entry.
type FileKind int

const (
	// KindMissing means the path does not exist (or cannot be stat'd).
	KindMissing FileKind = iota
	// KindRegular is a regular file.
	KindRegular
	// KindDir is a directory.
	KindDir
	// KindSymlink is a symbolic link, regardless of what it points at.
	KindSymlink
	// KindOther covers devices, sockets, fifos and anything else.
	KindOther
)

// String returns a human-readable kind name.
func (k FileKind) String() string {
	switch k {
	case KindMissing:
		return "missing"
	case KindRegular:
		return "regular"
	case KindDir:
		return "directory"
	case KindSymlink:
		return "symlink"
	default:
		return "other"
	}
}

// Classify reports what kind of entry exists at path. It uses Lstat so a
// symlink is reported as a symlink, never as its target's kind. Classify
// never fails: any stat error, including permission errors, classifies the
// path as missing. The result reflects a single point in time — the
// filesystem may change between the call and any action taken on it.
func Classify(path string) FileKind {
	info, err := os.Lstat(path)
	if err != nil {
		return KindMissing
	}
	mode := info.Mode()
	switch {
	case mode&os.ModeSymlink != 0:
		return KindSymlink
	case mode.IsDir():
		return KindDir
	case mode.IsRegular():
		return KindRegular
	default:
		return KindOther
	}
}
