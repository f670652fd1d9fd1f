package domain

import (
	"path/filepath"
	"strings"
)

// FileEntry is a filesystem entry produced by a tree scan.
type FileEntry struct {
	// Path is the absolute path of the entry.
	Path string
	// Rel is the path relative to the scanned root.
	Rel string
	// IsDir is true for directories.
	IsDir bool
	// Ext is the lowercased extension without the leading dot, empty if the name has none.
	Ext string
}

// NewFileEntry builds an entry for path found under root.
func NewFileEntry(root, path string, isDir bool) FileEntry {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	e := FileEntry{Path: path, Rel: rel, IsDir: isDir}
	if !isDir {
		e.Ext = strings.ToLower(Extension(path))
	}
	return e
}

// RawExt returns the extension exactly as it appears on disk.
func (e FileEntry) RawExt() string {
	if e.IsDir {
		return ""
	}
	return Extension(e.Path)
}

// Extension returns the extension of the base name of path without the dot.
// A name without a dot has no extension.
func Extension(path string) string {
	ext := filepath.Ext(filepath.Base(path))
	return strings.TrimPrefix(ext, ".")
}

// ReplaceExtension swaps the extension of path for ext.
func ReplaceExtension(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(filepath.Base(path))) + "." + ext
}
