//go:build !windows

package fsiter

import "strings"

// isHiddenEntry treats a leading dot in the base name as hidden, the
// convention every unix-like filesystem and shell uses.
func isHiddenEntry(e Entry) bool {
	return strings.HasPrefix(e.Name, ".")
}
