package domain

import "path/filepath"

const (
	// MirrorDirName is the name of the metadata directory next to the config file.
	MirrorDirName = ".mirror"

	// CacheFileName is the name of the fingerprint cache document.
	CacheFileName = "cache.json"

	// LockSuffix is appended to the cache file path to name its lock file.
	LockSuffix = ".lock"

	// ConfigFileName is the default configuration file.
	ConfigFileName = "mirror.yaml"

	// DirPerm is the default permission for created directories (rwxr-xr-x).
	DirPerm = 0o755

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultCachePath returns the cache location relative to the config directory.
// It joins .mirror and cache.json.
func DefaultCachePath() string {
	return filepath.Join(MirrorDirName, CacheFileName)
}

// LockPath returns the lock file guarding cacheFile.
func LockPath(cacheFile string) string {
	return cacheFile + LockSuffix
}
