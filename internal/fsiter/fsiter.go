// Package fsiter is the platform-neutral Directory Iterator: it enumerates one
// directory's entries through an afero.Fs, filtering the "." and ".."
// pseudo-entries and exposing hidden-file detection that is resolved
// per-platform in hidden_unix.go / hidden_windows.go.
//
// Building this on afero.Fs rather than bare os calls means the traversal
// engine (and its tests) can run against afero.NewMemMapFs() without touching
// disk, while production wiring uses afero.NewOsFs().
package fsiter

import (
	"os"
	"time"

	"github.com/spf13/afero"
)

// Entry is one directory entry yielded by an Iterator.
type Entry struct {
	Name    string
	Size    uint64
	ModTime time.Time
	IsDir   bool
	Mode    os.FileMode

	info os.FileInfo // platform hidden-attribute lookups consult this
}

// Hidden reports whether this entry should be treated as hidden, per the
// platform's convention (see isHiddenEntry).
func (e Entry) Hidden() bool {
	return isHiddenEntry(e)
}

// Iterator enumerates the entries of one directory, opened via Open.
type Iterator struct {
	entries []os.FileInfo
	pos     int
}

// Open enumerates the entries of path on fs. The returned Iterator owns no
// file handle beyond the lifetime of this call — afero.ReadDir reads the whole
// directory up front, which keeps Next/Close allocation-free and matches the
// batch-then-iterate style of Win32's FindFirstFile/FindNextFile that the
// original implementation used.
func Open(fs afero.Fs, path string) (*Iterator, error) {
	infos, err := afero.ReadDir(fs, path)
	if err != nil {
		return nil, err
	}

	return &Iterator{entries: infos}, nil
}

// Next returns the next entry, or ok=false when the directory is exhausted.
// "." and ".." never appear in afero's ReadDir output, but the guard is kept
// explicit here since the spec calls it out as an iterator responsibility.
func (it *Iterator) Next() (Entry, bool) {
	for it.pos < len(it.entries) {
		info := it.entries[it.pos]
		it.pos++

		name := info.Name()
		if name == "." || name == ".." {
			continue
		}

		return Entry{
			Name:    name,
			Size:    uint64(info.Size()),
			ModTime: info.ModTime(),
			IsDir:   info.IsDir(),
			Mode:    info.Mode(),
			info:    info,
		}, true
	}

	return Entry{}, false
}

// Close releases the iterator's resources. Present for symmetry with the
// spec's open/next/close contract even though afero's batch ReadDir leaves
// nothing open between calls.
func (it *Iterator) Close() error {
	it.entries = nil
	return nil
}
