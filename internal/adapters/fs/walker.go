// Package fs provides file system adapters for walking and fingerprinting trees.
package fs

import (
	"io/fs"
	"iter"
	"os"
	"path/filepath"

	"go.trai.ch/mirror/internal/core/domain"
	"go.trai.ch/mirror/internal/core/ports"
)

var _ ports.Scanner = (*Walker)(nil)

// Walker provides file walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// Scan yields every directory and regular file below root.
// Entries that cannot be read are skipped and the walk continues with their siblings.
// Symlinks are yielded as files when they resolve to a regular file.
func (w *Walker) Scan(root string) iter.Seq[domain.FileEntry] {
	return func(yield func(domain.FileEntry) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if d != nil && d.IsDir() && path != root {
					return filepath.SkipDir
				}
				return nil //nolint:nilerr // unreadable entries are skipped
			}

			if path == root {
				return nil
			}

			entry, ok := w.classify(root, path, d)
			if !ok {
				return nil
			}

			if !yield(entry) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

// classify converts a DirEntry, dropping sockets, devices and dangling links.
func (w *Walker) classify(root, path string, d fs.DirEntry) (domain.FileEntry, bool) {
	switch {
	case d.IsDir():
		return domain.NewFileEntry(root, path, true), true
	case d.Type().IsRegular():
		return domain.NewFileEntry(root, path, false), true
	case d.Type()&fs.ModeSymlink != 0:
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			return domain.FileEntry{}, false
		}
		return domain.NewFileEntry(root, path, false), true
	default:
		return domain.FileEntry{}, false
	}
}
