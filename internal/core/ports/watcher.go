package ports

import (
	"context"
	"iter"
)

// ChangeKind classifies a change observed in the input tree.
type ChangeKind uint8

const (
	// ChangeAdded marks a new file or directory.
	ChangeAdded ChangeKind = iota
	// ChangeModified marks rewritten file contents.
	ChangeModified
	// ChangeRemoved marks a deletion. A rename is reported as the removal of its old name.
	ChangeRemoved
)

// String returns the lowercase name of the kind.
func (k ChangeKind) String() string {
	switch k {
	case ChangeAdded:
		return "added"
	case ChangeModified:
		return "modified"
	case ChangeRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Change is a single path that changed below the watched root.
type Change struct {
	Path string
	Kind ChangeKind
}

// TreeWatcher reports changes below an input tree until closed.
//
//go:generate go run go.uber.org/mock/mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks
type TreeWatcher interface {
	// Watch subscribes to root and every directory below it, including ones created later.
	Watch(ctx context.Context, root string) error
	// Changes yields observed changes. It ends after Close or once ctx is done.
	Changes() iter.Seq[Change]
	// Close releases the subscriptions.
	Close() error
}

// WatcherFactory opens a TreeWatcher for one watch session.
type WatcherFactory func() (TreeWatcher, error)
