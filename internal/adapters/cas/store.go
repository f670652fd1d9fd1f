// Package cas implements the fingerprint cache: results of expensive checks
// addressed by the signature of their inputs.
package cas

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"
	"go.trai.ch/mirror/internal/core/domain"
	"go.trai.ch/mirror/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

var _ ports.FingerprintCache = (*Store)(nil)

// Store implements ports.FingerprintCache using a single JSON document
// mapping function name to signature key to result.
type Store struct {
	logger ports.Logger

	mu     sync.RWMutex
	path   string
	lock   *flock.Flock
	tables map[string]map[string]any
	dirty  int

	group singleflight.Group
}

// NewStore creates an empty, unloaded Store.
func NewStore(logger ports.Logger) *Store {
	return &Store{
		logger: logger,
		tables: make(map[string]map[string]any),
	}
}

// Load locks the document at path and reads it into memory.
// A missing document yields an empty cache. An unreadable or corrupt document
// is reported as a warning and also yields an empty cache.
func (s *Store) Load(path string) error {
	path = filepath.Clean(path)

	if err := s.acquire(path); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.path = path
	s.tables = make(map[string]map[string]any)
	s.dirty = 0

	//nolint:gosec // Path comes from validated configuration
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("cache unreadable, starting empty: " + err.Error())
		}
		return nil
	}

	if len(data) == 0 {
		return nil
	}

	var tables map[string]map[string]any
	if err := json.Unmarshal(data, &tables); err != nil {
		s.logger.Warn("cache corrupt, starting empty: " + err.Error())
		return nil
	}
	for function, table := range tables {
		if table != nil {
			s.tables[function] = table
		}
	}

	return nil
}

// acquire takes the advisory lock next to path, releasing any lock held for another path.
func (s *Store) acquire(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lockPath := domain.LockPath(path)
	if s.lock != nil {
		if s.lock.Path() == lockPath {
			return nil
		}
		_ = s.lock.Unlock()
		s.lock = nil
	}

	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheLockFailed.Error()), "path", path)
	}

	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheLockFailed.Error()), "path", lockPath)
	}
	if !ok {
		return zerr.With(domain.ErrCacheLocked, "path", lockPath)
	}

	s.lock = lock
	return nil
}

// GetOrCompute returns the cached result for (function, sig) or computes and stores it.
// Concurrent misses for the same key share a single compute call.
// Errors returned by compute are not cached.
func (s *Store) GetOrCompute(function string, sig domain.Signature, compute func() (any, error)) (any, error) {
	key := sig.Key()
	if v, ok := s.lookup(function, key); ok {
		return v, nil
	}

	v, err, _ := s.group.Do(function+"\x00"+key, func() (any, error) {
		if v, ok := s.lookup(function, key); ok {
			return v, nil
		}

		raw, err := compute()
		if err != nil {
			return nil, err
		}

		v, err := normalize(raw)
		if err != nil {
			return nil, zerr.With(err, "function", function)
		}

		s.insert(function, key, v)
		return v, nil
	})
	return v, err
}

func (s *Store) lookup(function, key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	table, ok := s.tables[function]
	if !ok {
		return nil, false
	}
	v, ok := table[key]
	return v, ok
}

func (s *Store) insert(function, key string, v any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	table, ok := s.tables[function]
	if !ok {
		table = make(map[string]any)
		s.tables[function] = table
	}
	table[key] = v
	s.dirty++
}

// normalize round-trips v through JSON so in-memory values have the same
// types as values read back from disk.
func normalize(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrCacheValueInvalid.Error())
	}

	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, zerr.Wrap(err, domain.ErrCacheValueInvalid.Error())
	}

	switch out.(type) {
	case bool, float64, string:
		return out, nil
	default:
		return nil, domain.ErrCacheValueInvalid
	}
}

// Persist writes the whole document when entries were added since the last
// load or persist. The write goes to a temporary file that replaces the document.
func (s *Store) Persist() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dirty == 0 {
		return nil
	}
	if s.path == "" {
		return domain.ErrCacheNotLoaded
	}

	data, err := json.MarshalIndent(s.tables, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrCachePersistFailed.Error())
	}

	if err := writeFileAtomic(s.path, data); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCachePersistFailed.Error()), "path", s.path)
	}

	s.dirty = 0
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Chmod(domain.FilePerm); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}

// Dirty returns the number of entries added since the last load or persist.
func (s *Store) Dirty() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dirty
}

// Clear drops every entry and removes the document from disk.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tables = make(map[string]map[string]any)
	s.dirty = 0

	if s.path == "" {
		return domain.ErrCacheNotLoaded
	}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheRemoveFailed.Error()), "path", s.path)
	}
	return nil
}

// Len returns the number of entries stored for function.
func (s *Store) Len(function string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tables[function])
}

// Close releases the document lock.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lock == nil {
		return nil
	}
	err := s.lock.Unlock()
	s.lock = nil
	if err != nil {
		return zerr.Wrap(err, "failed to release cache lock")
	}
	return nil
}
