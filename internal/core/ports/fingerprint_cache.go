package ports

import (
	"go.trai.ch/mirror/internal/core/domain"
	"go.trai.ch/zerr"
)

// FingerprintCache memoizes results of expensive checks keyed by a signature.
//
//go:generate go run go.uber.org/mock/mockgen -source=fingerprint_cache.go -destination=mocks/mock_fingerprint_cache.go -package=mocks
type FingerprintCache interface {
	// Load reads the cache document at path and locks it for this process.
	// A missing document yields an empty cache.
	Load(path string) error
	// GetOrCompute returns the stored result for (function, sig), calling compute
	// only when no entry exists. Values are bool, float64 or string.
	GetOrCompute(function string, sig domain.Signature, compute func() (any, error)) (any, error)
	// Persist writes the document if entries were added since the last load or persist.
	Persist() error
	// Dirty returns the number of entries added since the last load or persist.
	Dirty() int
	// Clear drops every entry and removes the document.
	Clear() error
	// Close releases the lock taken by Load.
	Close() error
}

// CachedBool is a typed wrapper around GetOrCompute for boolean results.
func CachedBool(
	c FingerprintCache,
	function string,
	sig domain.Signature,
	compute func() (bool, error),
) (bool, error) {
	v, err := c.GetOrCompute(function, sig, func() (any, error) {
		return compute()
	})
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, zerr.With(domain.ErrCacheValueInvalid, "function", function)
	}
	return b, nil
}
