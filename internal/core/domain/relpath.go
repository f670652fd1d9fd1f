package domain

import (
	"iter"
	"path/filepath"
	"unique"
)

// RelPath is an interned path relative to a tree root.
// Large trees repeat directory prefixes heavily, so sets of RelPath stay small.
type RelPath struct {
	h unique.Handle[string]
}

// NewRelPath cleans rel and interns it. The tree root is ".".
func NewRelPath(rel string) RelPath {
	return RelPath{h: unique.Make(filepath.Clean(rel))}
}

// String returns the cleaned relative path.
func (p RelPath) String() string {
	var zero unique.Handle[string]
	if p.h == zero {
		return "."
	}
	return p.h.Value()
}

// IsRoot reports whether p names the tree root itself.
func (p RelPath) IsRoot() bool {
	return p.String() == "."
}

// Parent returns the directory containing p. The parent of the root is the root.
func (p RelPath) Parent() RelPath {
	return NewRelPath(filepath.Dir(p.String()))
}

// Ancestors yields the directories containing p, nearest first, excluding the root.
func (p RelPath) Ancestors() iter.Seq[RelPath] {
	return func(yield func(RelPath) bool) {
		for cur := p.Parent(); !cur.IsRoot(); cur = cur.Parent() {
			if !yield(cur) {
				return
			}
		}
	}
}
