//go:build windows

package fsx

import "golang.org/x/sys/windows"

func isWindowsReparsePoint(path string) bool {
	ptr, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return false
	}

	attrs, err := windows.GetFileAttributes(ptr)
	if err != nil {
		return false
	}

	return attrs&windows.FILE_ATTRIBUTE_REPARSE_POINT != 0
}
