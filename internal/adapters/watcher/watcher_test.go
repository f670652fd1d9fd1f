package watcher_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/mirror/internal/adapters/watcher"
	"go.trai.ch/mirror/internal/core/domain"
	"go.trai.ch/mirror/internal/core/ports"
	"go.trai.ch/mirror/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func watch(t *testing.T, root string) <-chan ports.Change {
	t.Helper()

	mockLogger := mocks.NewMockLogger(gomock.NewController(t))
	mockLogger.EXPECT().Warn(gomock.Any()).AnyTimes()

	n, err := watcher.NewNotifier(mockLogger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = n.Close() })

	require.NoError(t, n.Watch(t.Context(), root))

	ch := make(chan ports.Change, 64)
	go func() {
		defer close(ch)
		for c := range n.Changes() {
			ch <- c
		}
	}()
	return ch
}

// await returns the first change for path, failing after a few seconds.
func await(t *testing.T, changes <-chan ports.Change, path string) ports.Change {
	t.Helper()

	timeout := time.After(5 * time.Second)
	for {
		select {
		case c, ok := <-changes:
			require.True(t, ok, "change stream closed before %s was seen", path)
			if c.Path == path {
				return c
			}
		case <-timeout:
			t.Fatalf("no change for %s", path)
		}
	}
}

func TestNotifier_NestedFile(t *testing.T) {
	root := t.TempDir()
	album := filepath.Join(root, "artist", "album")
	require.NoError(t, os.MkdirAll(album, domain.DirPerm))

	changes := watch(t, root)

	track := filepath.Join(album, "01.flac")
	require.NoError(t, os.WriteFile(track, []byte("pcm"), domain.FilePerm))

	assert.Equal(t, ports.ChangeAdded, await(t, changes, track).Kind)
}

func TestNotifier_DirectoryCreatedLater(t *testing.T) {
	root := t.TempDir()
	changes := watch(t, root)

	album := filepath.Join(root, "new album")
	require.NoError(t, os.Mkdir(album, domain.DirPerm))
	await(t, changes, album)

	track := filepath.Join(album, "01.flac")
	require.NoError(t, os.WriteFile(track, []byte("pcm"), domain.FilePerm))
	await(t, changes, track)
}

func TestNotifier_Removal(t *testing.T) {
	root := t.TempDir()
	track := filepath.Join(root, "01.flac")
	require.NoError(t, os.WriteFile(track, []byte("pcm"), domain.FilePerm))

	changes := watch(t, root)
	require.NoError(t, os.Remove(track))

	assert.Equal(t, ports.ChangeRemoved, await(t, changes, track).Kind)
}

func TestNotifier_IgnoresMetadataDirectory(t *testing.T) {
	root := t.TempDir()
	meta := filepath.Join(root, domain.MirrorDirName)
	require.NoError(t, os.Mkdir(meta, domain.DirPerm))

	changes := watch(t, root)

	require.NoError(t, os.WriteFile(filepath.Join(meta, domain.CacheFileName), []byte("{}"), domain.FilePerm))
	marker := filepath.Join(root, "marker")
	require.NoError(t, os.WriteFile(marker, nil, domain.FilePerm))

	timeout := time.After(5 * time.Second)
	for {
		select {
		case c := <-changes:
			require.NotEqual(t, meta, filepath.Dir(c.Path), "metadata directory must not be watched")
			if c.Path == marker {
				return
			}
		case <-timeout:
			t.Fatal("marker change not seen")
		}
	}
}

func TestChangeKind_String(t *testing.T) {
	assert.Equal(t, "added", ports.ChangeAdded.String())
	assert.Equal(t, "modified", ports.ChangeModified.String())
	assert.Equal(t, "removed", ports.ChangeRemoved.String())
	assert.Equal(t, "unknown", ports.ChangeKind(9).String())
}
