package fsx

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// TreeDiff describes one difference between two directory trees.
type TreeDiff struct {
	// Path is relative to the compared roots, slash-separated.
	Path string
	// Reason is a short machine-comparable tag: "only in left",
	// "only in right", "kind mismatch", "permissions differ",
	// "content differs".
	Reason string
	// Detail is human-readable context: the differing kinds or modes, or a
	// unified diff of the contents.
	Detail string
}

// maxContentDiffSize is the largest file for which a unified diff is
// generated; bigger files are still compared but only reported as differing.
const maxContentDiffSize = 1_000_000

// DiffTrees compares the trees rooted at left and right and returns one
// entry per difference, sorted by path. An empty result means the trees are
// equivalent: same entries, same kinds, same permission bits, same regular
// file contents. Symlinks are compared by their targets, not followed.
//
// This is the re-verification counterpart to CopyTree's fail-fast contract:
// after a failed copy the destination is untrustworthy, and DiffTrees tells
// the caller exactly how far it diverged.
func DiffTrees(left, right string) ([]TreeDiff, error) {
	leftEntries, err := collectTree(left)
	if err != nil {
		return nil, err
	}
	rightEntries, err := collectTree(right)
	if err != nil {
		return nil, err
	}

	paths := make(map[string]bool, len(leftEntries)+len(rightEntries))
	for p := range leftEntries {
		paths[p] = true
	}
	for p := range rightEntries {
		paths[p] = true
	}

	var diffs []TreeDiff
	for p := range paths {
		l, inLeft := leftEntries[p]
		r, inRight := rightEntries[p]

		switch {
		case !inRight:
			diffs = append(diffs, TreeDiff{Path: p, Reason: "only in left", Detail: l.kind.String()})
		case !inLeft:
			diffs = append(diffs, TreeDiff{Path: p, Reason: "only in right", Detail: r.kind.String()})
		case l.kind != r.kind:
			diffs = append(diffs, TreeDiff{
				Path:   p,
				Reason: "kind mismatch",
				Detail: fmt.Sprintf("%s vs %s", l.kind, r.kind),
			})
		case l.kind == KindSymlink:
			if l.linkTarget != r.linkTarget {
				diffs = append(diffs, TreeDiff{
					Path:   p,
					Reason: "content differs",
					Detail: fmt.Sprintf("link target %s vs %s", l.linkTarget, r.linkTarget),
				})
			}
		default:
			if l.perm != r.perm {
				diffs = append(diffs, TreeDiff{
					Path:   p,
					Reason: "permissions differ",
					Detail: fmt.Sprintf("%s vs %s", l.perm.Symbolic(), r.perm.Symbolic()),
				})
			}
			if l.kind == KindRegular {
				if d, differ := diffFileContents(filepath.Join(left, p), filepath.Join(right, p), l.size, r.size); differ {
					diffs = append(diffs, TreeDiff{Path: p, Reason: "content differs", Detail: d})
				}
			}
		}
	}

	sort.Slice(diffs, func(i, j int) bool {
		if diffs[i].Path != diffs[j].Path {
			return diffs[i].Path < diffs[j].Path
		}
		return diffs[i].Reason < diffs[j].Reason
	})
	return diffs, nil
}

type treeEntry struct {
	kind       FileKind
	perm       Perm
	size       int64
	linkTarget string
}

// collectTree walks root and records every entry below it keyed by
// slash-separated relative path. The root itself is not recorded.
func collectTree(root string) (map[string]treeEntry, error) {
	entries := make(map[string]treeEntry)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		info, err := d.Info()
		if err != nil {
			return err
		}

		e := treeEntry{kind: Classify(path), perm: PermOf(info.Mode()), size: info.Size()}
		if e.kind == KindSymlink {
			// WalkDir does not follow links, so recording the target is all
			// the content comparison a symlink needs.
			e.linkTarget, _ = os.Readlink(path)
		}
		entries[rel] = e
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}
	return entries, nil
}

// diffFileContents compares two regular files and, when they differ, returns
// a unified diff (or a placeholder for binary/oversized files).
func diffFileContents(leftPath, rightPath string, leftSize, rightSize int64) (string, bool) {
	if leftSize > maxContentDiffSize || rightSize > maxContentDiffSize {
		if leftSize != rightSize {
			return "(file too large for diff)", true
		}
		equal, err := filesEqual(leftPath, rightPath)
		if err != nil || equal {
			return "", false
		}
		return "(file too large for diff)", true
	}

	leftData, err := os.ReadFile(leftPath)
	if err != nil {
		return "", false
	}
	rightData, err := os.ReadFile(rightPath)
	if err != nil {
		return "", false
	}
	if string(leftData) == string(rightData) {
		return "", false
	}
	if isBinary(string(leftData)) || isBinary(string(rightData)) {
		return "(binary file differs)", true
	}

	dmp := diffmatchpatch.New()
	a, b, lineArray := dmp.DiffLinesToChars(string(leftData), string(rightData))
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)
	diffs = dmp.DiffCleanupSemantic(diffs)
	return formatUnifiedDiff(diffs), true
}

// filesEqual streams both files through fixed buffers and compares chunks.
func filesEqual(a, b string) (bool, error) {
	fa, err := os.Open(a)
	if err != nil {
		return false, err
	}
	defer fa.Close()
	fb, err := os.Open(b)
	if err != nil {
		return false, err
	}
	defer fb.Close()

	bufA := make([]byte, copyBufSize)
	bufB := make([]byte, copyBufSize)
	for {
		na, errA := io.ReadFull(fa, bufA)
		nb, errB := io.ReadFull(fb, bufB)
		if na != nb || string(bufA[:na]) != string(bufB[:nb]) {
			return false, nil
		}
		if errA == io.EOF || errA == io.ErrUnexpectedEOF {
			return errB == io.EOF || errB == io.ErrUnexpectedEOF, nil
		}
		if errA != nil {
			return false, errA
		}
		if errB != nil {
			return false, errB
		}
	}
}

// isBinary checks whether a string contains null bytes in the first 8000 characters.
func isBinary(content string) bool {
	limit := len(content)
	if limit > 8000 {
		limit = 8000
	}
	for i := 0; i < limit; i++ {
		if content[i] == 0 {
			return true
		}
	}
	return false
}

// formatUnifiedDiff formats diffmatchpatch.Diff slices as a unified diff string.
// Insert lines are prefixed with "+ ", Delete lines with "- ", Equal lines with "  ".
func formatUnifiedDiff(diffs []diffmatchpatch.Diff) string {
	var b strings.Builder

	for _, d := range diffs {
		lines := strings.Split(d.Text, "\n")
		// If the text ends with \n, Split produces a trailing empty string.
		// Don't emit a line for that trailing empty element.
		if len(lines) > 0 && lines[len(lines)-1] == "" {
			lines = lines[:len(lines)-1]
		}

		var prefix string
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		case diffmatchpatch.DiffEqual:
			prefix = "  "
		}

		for _, line := range lines {
			b.WriteString(prefix)
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	return b.String()
}
