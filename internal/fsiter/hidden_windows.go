//go:build windows

package fsiter

import (
	"strings"
	"syscall"

	"golang.org/x/sys/windows"
)

// isHiddenEntry treats a leading dot as hidden (for parity with the unix
// convention, since many hidden dotfiles are copied onto Windows trees too)
// and additionally consults the FILE_ATTRIBUTE_HIDDEN bit Win32 stores in the
// directory entry itself.
func isHiddenEntry(e Entry) bool {
	if strings.HasPrefix(e.Name, ".") {
		return true
	}

	attrs, ok := e.info.Sys().(*syscall.Win32FileAttributeData)
	if !ok {
		return false
	}

	return attrs.FileAttributes&windows.FILE_ATTRIBUTE_HIDDEN != 0
}
