// Package watcher follows the input tree and settles bursts of changes.
package watcher

import (
	"slices"
	"sync"
	"time"
	"unique"
)

// Debouncer signals Ready once no change has been added for the quiet window.
// Copying an album produces hundreds of events, and one rerun should cover them all.
type Debouncer struct {
	mu      sync.Mutex
	window  time.Duration
	timer   *time.Timer
	pending map[unique.Handle[string]]struct{}
	ready   chan struct{}
}

// NewDebouncer creates a Debouncer with the given quiet window.
func NewDebouncer(window time.Duration) *Debouncer {
	return &Debouncer{
		window:  window,
		pending: make(map[unique.Handle[string]]struct{}),
		ready:   make(chan struct{}, 1),
	}
}

// Add records a changed path and restarts the quiet window.
func (d *Debouncer) Add(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending[unique.Make(path)] = struct{}{}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.settle)
}

// Ready receives a value each time pending changes settle.
// Signals that arrive before the previous one was consumed are merged.
func (d *Debouncer) Ready() <-chan struct{} {
	return d.ready
}

// Take returns the settled paths sorted and starts a new batch.
func (d *Debouncer) Take() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.pending) == 0 {
		return nil
	}
	paths := make([]string, 0, len(d.pending))
	for h := range d.pending {
		paths = append(paths, h.Value())
	}
	clear(d.pending)
	slices.Sort(paths)
	return paths
}

// Stop cancels a pending signal and forgets pending paths.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	clear(d.pending)
}

func (d *Debouncer) settle() {
	d.mu.Lock()
	d.timer = nil
	d.mu.Unlock()

	select {
	case d.ready <- struct{}{}:
	default:
	}
}
