package fs

import (
	"encoding/binary"
	"io/fs"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/mirror/internal/core/domain"
	"go.trai.ch/mirror/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.TreeDigester = (*Digester)(nil)

// Digester fingerprints directory trees from file metadata.
type Digester struct{}

// NewDigester creates a new Digester.
func NewDigester() *Digester {
	return &Digester{}
}

// TreeDigest hashes the relative path, size and modification time of every
// regular file below root. filepath.WalkDir visits entries in lexical order,
// so the digest is deterministic. File contents are not read.
func (g *Digester) TreeDigest(root string) (uint64, error) {
	hasher := xxhash.New()
	var buf [16]byte

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil //nolint:nilerr // unreadable entries are skipped
		}
		if !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil //nolint:nilerr // file vanished during the walk
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		_, _ = hasher.WriteString(rel)
		_, _ = hasher.Write([]byte{0}) // Separator

		//nolint:gosec // only the bit pattern matters
		binary.LittleEndian.PutUint64(buf[:8], uint64(info.Size()))
		//nolint:gosec // only the bit pattern matters
		binary.LittleEndian.PutUint64(buf[8:], uint64(info.ModTime().UnixNano()))
		_, _ = hasher.Write(buf[:])
		return nil
	})
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, domain.ErrDigestFailed.Error()), "root", root)
	}

	return hasher.Sum64(), nil
}
