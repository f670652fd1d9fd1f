package domain

import (
	"path/filepath"
	"strings"
)

// Config is the validated run configuration. The engine treats it as read-only.
type Config struct {
	InputDir       string
	OutputDir      string
	Threads        int
	Overwrite      bool
	Sync           bool
	CopyOtherFiles bool
	Bitrate        string
	// FromExtensions holds the source extensions without leading dots.
	FromExtensions []string
	// ToExtension is the target extension without a leading dot.
	ToExtension string
	CacheFile   string
	// CaseInsensitiveExtensions folds case for source matching and target comparison.
	CaseInsensitiveExtensions bool
	Tool                      Tool
}

// IsSource reports whether e should be transcoded.
func (c *Config) IsSource(e FileEntry) bool {
	if e.IsDir {
		return false
	}
	ext := c.entryExt(e)
	if ext == "" {
		return false
	}
	for _, from := range c.FromExtensions {
		if c.extEqual(ext, from) {
			return true
		}
	}
	return false
}

// IsTarget reports whether e carries the target extension.
func (c *Config) IsTarget(e FileEntry) bool {
	if e.IsDir {
		return false
	}
	ext := c.entryExt(e)
	return ext != "" && c.extEqual(ext, c.ToExtension)
}

// ConvertTarget maps a source entry to its transcoded destination path.
func (c *Config) ConvertTarget(e FileEntry) string {
	return ReplaceExtension(filepath.Join(c.OutputDir, e.Rel), c.ToExtension)
}

// CopyTarget maps a source entry to its verbatim destination path.
func (c *Config) CopyTarget(e FileEntry) string {
	return filepath.Join(c.OutputDir, e.Rel)
}

func (c *Config) entryExt(e FileEntry) string {
	if c.CaseInsensitiveExtensions {
		return e.Ext
	}
	return e.RawExt()
}

func (c *Config) extEqual(a, b string) bool {
	if c.CaseInsensitiveExtensions {
		return strings.EqualFold(a, b)
	}
	return a == b
}
