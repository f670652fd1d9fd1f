package domain

import (
	"sort"
	"strconv"
	"strings"
)

// KeySeparator joins the name=value pairs of a signature key.
const KeySeparator = "|"

// Signature identifies the inputs of a cached operation.
// Two calls with equal keys are guaranteed to produce the same result.
type Signature interface {
	Key() string
}

// FileSignature identifies a file by path and modification time.
type FileSignature struct {
	Path string
	// ModTime is the modification time in Unix nanoseconds.
	ModTime int64
}

// Key serializes the signature deterministically.
func (s FileSignature) Key() string {
	return JoinKey(map[string]string{
		"path":  s.Path,
		"mtime": strconv.FormatInt(s.ModTime, 10),
	})
}

// JoinKey concatenates name=value pairs sorted by name.
func JoinKey(parts map[string]string) string {
	names := make([]string, 0, len(parts))
	for name := range parts {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for i, name := range names {
		if i > 0 {
			b.WriteString(KeySeparator)
		}
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(parts[name])
	}
	return b.String()
}
