//go:build !windows

package fsx

// Junctions are a Windows concept; on other systems only os.ModeSymlink
// counts as a link.
func isWindowsReparsePoint(string) bool { return false }
