package watcher

import (
	"context"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/mirror/internal/core/domain"
	"go.trai.ch/mirror/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.TreeWatcher = (*Notifier)(nil)

// DefaultDebounceWindow is how long the input tree must stay quiet before a rerun.
const DefaultDebounceWindow = 2 * time.Second

const changeBuffer = 128

// ignoredDirs hold tool state rather than music and are never subscribed.
var ignoredDirs = map[string]bool{
	".git":               true,
	domain.MirrorDirName: true,
}

// Notifier implements ports.TreeWatcher on top of fsnotify.
type Notifier struct {
	logger  ports.Logger
	fsw     *fsnotify.Watcher
	changes chan ports.Change
}

// NewNotifier opens an fsnotify instance. Nothing is subscribed until Watch.
func NewNotifier(logger ports.Logger) (*Notifier, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrWatchFailed.Error())
	}
	return &Notifier{
		logger:  logger,
		fsw:     fsw,
		changes: make(chan ports.Change, changeBuffer),
	}, nil
}

// Watch subscribes every directory under root and starts translating events.
func (n *Notifier) Watch(ctx context.Context, root string) error {
	for dir := range subdirs(root) {
		if err := n.fsw.Add(dir); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrWatchFailed.Error()), "dir", dir)
		}
	}

	go n.loop(ctx)
	return nil
}

// Close drops all subscriptions. Changes ends once the loop observes it.
func (n *Notifier) Close() error {
	return n.fsw.Close()
}

// Changes yields translated events in arrival order.
func (n *Notifier) Changes() iter.Seq[ports.Change] {
	return func(yield func(ports.Change) bool) {
		for c := range n.changes {
			if !yield(c) {
				return
			}
		}
	}
}

func (n *Notifier) loop(ctx context.Context) {
	defer close(n.changes)

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-n.fsw.Events:
			if !ok {
				return
			}
			kind, ok := classify(ev.Op)
			if !ok {
				continue
			}
			if kind == ports.ChangeAdded {
				n.subscribeNew(ev.Name)
			}
			select {
			case n.changes <- ports.Change{Path: ev.Name, Kind: kind}:
			case <-ctx.Done():
				return
			}
		case err, ok := <-n.fsw.Errors:
			if !ok {
				return
			}
			n.logger.Warn("watch: " + err.Error())
		}
	}
}

// subscribeNew follows a directory that appeared after Watch, along with anything
// already copied into it.
func (n *Notifier) subscribeNew(path string) {
	info, err := os.Lstat(path)
	if err != nil || !info.IsDir() || ignoredDirs[info.Name()] {
		return
	}
	for dir := range subdirs(path) {
		if err := n.fsw.Add(dir); err != nil {
			n.logger.Warn("watch: " + dir + ": " + err.Error())
		}
	}
}

// subdirs yields root and every readable directory below it, skipping ignoredDirs.
func subdirs(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			switch {
			case err != nil:
				return nil //nolint:nilerr // unreadable directories stay unwatched
			case !d.IsDir():
				return nil
			case path != root && ignoredDirs[d.Name()]:
				return fs.SkipDir
			case !yield(path):
				return filepath.SkipAll
			}
			return nil
		})
	}
}

// classify maps an fsnotify op to a change. Attribute-only events carry no content change.
func classify(op fsnotify.Op) (ports.ChangeKind, bool) {
	switch {
	case op.Has(fsnotify.Create):
		return ports.ChangeAdded, true
	case op.Has(fsnotify.Write):
		return ports.ChangeModified, true
	case op.Has(fsnotify.Remove), op.Has(fsnotify.Rename):
		return ports.ChangeRemoved, true
	default:
		return 0, false
	}
}
