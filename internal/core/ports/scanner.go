package ports

import (
	"iter"

	"go.trai.ch/mirror/internal/core/domain"
)

// Scanner walks a directory tree.
//
//go:generate go run go.uber.org/mock/mockgen -source=scanner.go -destination=mocks/mock_scanner.go -package=mocks
type Scanner interface {
	// Scan lazily yields every entry below root, excluding root itself.
	// Unreadable entries are skipped. The order is unspecified.
	// Each call starts a fresh walk.
	Scan(root string) iter.Seq[domain.FileEntry]
}

// TreeDigester fingerprints the state of a directory tree.
type TreeDigester interface {
	// TreeDigest returns a value that changes whenever a regular file below root
	// is added, removed, resized or touched.
	TreeDigest(root string) (uint64, error)
}
