package cas_test

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/mirror/internal/adapters/cas"
	"go.trai.ch/mirror/internal/core/domain"
	"go.trai.ch/mirror/internal/core/ports"
	"go.trai.ch/mirror/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newStore(t *testing.T) (*cas.Store, string) {
	t.Helper()
	ctrl := gomock.NewController(t)
	store := cas.NewStore(mocks.NewMockLogger(ctrl))
	path := filepath.Join(t.TempDir(), ".mirror", "cache.json")
	require.NoError(t, store.Load(path))
	t.Cleanup(func() { _ = store.Close() })
	return store, path
}

func counting(calls *int, v any) func() (any, error) {
	return func() (any, error) {
		*calls++
		return v, nil
	}
}

func TestStore_Load_MissingFile(t *testing.T) {
	store, path := newStore(t)

	assert.Equal(t, 0, store.Dirty())
	require.NoError(t, store.Persist())

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "persist without new entries must not write")
}

func TestStore_GetOrCompute_Hit(t *testing.T) {
	store, _ := newStore(t)
	sig := domain.FileSignature{Path: "/out/a.mp3", ModTime: 1}

	calls := 0
	v, err := store.GetOrCompute("validate", sig, counting(&calls, true))
	require.NoError(t, err)
	assert.Equal(t, true, v)

	v, err = store.GetOrCompute("validate", sig, counting(&calls, false))
	require.NoError(t, err)
	assert.Equal(t, true, v, "cached result must be returned")

	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, store.Dirty())
}

func TestStore_GetOrCompute_SignatureChange(t *testing.T) {
	store, _ := newStore(t)

	calls := 0
	_, err := store.GetOrCompute("validate", domain.FileSignature{Path: "/out/a.mp3", ModTime: 1}, counting(&calls, true))
	require.NoError(t, err)

	v, err := store.GetOrCompute("validate", domain.FileSignature{Path: "/out/a.mp3", ModTime: 2}, counting(&calls, false))
	require.NoError(t, err)

	assert.Equal(t, false, v)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 2, store.Len("validate"), "a changed signature adds a new entry")
}

func TestStore_GetOrCompute_ScopedByFunction(t *testing.T) {
	store, _ := newStore(t)
	sig := domain.FileSignature{Path: "/out/a.mp3", ModTime: 1}

	calls := 0
	_, err := store.GetOrCompute("validate", sig, counting(&calls, true))
	require.NoError(t, err)
	v, err := store.GetOrCompute("duration", sig, counting(&calls, "3:12"))
	require.NoError(t, err)

	assert.Equal(t, "3:12", v)
	assert.Equal(t, 2, calls)
}

func TestStore_GetOrCompute_ErrorNotCached(t *testing.T) {
	store, _ := newStore(t)
	sig := domain.FileSignature{Path: "/out/a.mp3", ModTime: 1}
	boom := errors.New("boom")

	_, err := store.GetOrCompute("validate", sig, func() (any, error) { return nil, boom })
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 0, store.Dirty())

	calls := 0
	_, err = store.GetOrCompute("validate", sig, counting(&calls, true))
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestStore_GetOrCompute_NormalizesNumbers(t *testing.T) {
	store, _ := newStore(t)

	v, err := store.GetOrCompute("size", domain.FileSignature{Path: "/a"}, func() (any, error) { return 42, nil })
	require.NoError(t, err)
	assert.Equal(t, float64(42), v)
}

func TestStore_GetOrCompute_RejectsNonScalar(t *testing.T) {
	store, _ := newStore(t)

	_, err := store.GetOrCompute("bad", domain.FileSignature{Path: "/a"}, func() (any, error) {
		return []string{"x"}, nil
	})
	require.ErrorContains(t, err, domain.ErrCacheValueInvalid.Error())
	assert.Equal(t, 0, store.Dirty())
}

func TestStore_GetOrCompute_ConcurrentMissComputesOnce(t *testing.T) {
	store, _ := newStore(t)
	sig := domain.FileSignature{Path: "/out/a.mp3", ModTime: 7}

	var calls atomic.Int32
	release := make(chan struct{})

	var wg sync.WaitGroup
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := store.GetOrCompute("validate", sig, func() (any, error) {
				calls.Add(1)
				<-release
				return true, nil
			})
			assert.NoError(t, err)
			assert.Equal(t, true, v)
		}()
	}
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, 1, store.Dirty())
}

func TestStore_PersistAndReload(t *testing.T) {
	store, path := newStore(t)
	sig := domain.FileSignature{Path: "/out/a.mp3", ModTime: 1}

	calls := 0
	_, err := store.GetOrCompute("validate", sig, counting(&calls, true))
	require.NoError(t, err)

	require.NoError(t, store.Persist())
	assert.Equal(t, 0, store.Dirty())
	require.NoError(t, store.Close())

	ctrl := gomock.NewController(t)
	reloaded := cas.NewStore(mocks.NewMockLogger(ctrl))
	require.NoError(t, reloaded.Load(path))
	defer func() { _ = reloaded.Close() }()

	got, err := ports.CachedBool(reloaded, "validate", sig, func() (bool, error) {
		calls++
		return false, nil
	})
	require.NoError(t, err)
	assert.True(t, got)
	assert.Equal(t, 1, calls, "result must survive across runs")
}

func TestStore_Persist_SkipsCleanCache(t *testing.T) {
	store, path := newStore(t)

	_, err := store.GetOrCompute("validate", domain.FileSignature{Path: "/a"}, func() (any, error) { return true, nil })
	require.NoError(t, err)
	require.NoError(t, store.Persist())

	// Overwrite on disk; a clean cache must not write again.
	require.NoError(t, os.WriteFile(path, []byte("{}"), domain.FilePerm))
	require.NoError(t, store.Persist())

	//nolint:gosec // Test file with controlled path
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}

func TestStore_Load_CorruptFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn(gomock.Any()).Times(1)

	path := filepath.Join(t.TempDir(), "cache.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), domain.FilePerm))

	store := cas.NewStore(mockLogger)
	require.NoError(t, store.Load(path))
	defer func() { _ = store.Close() }()

	assert.Equal(t, 0, store.Len("validate"))
}

func TestStore_Load_Locked(t *testing.T) {
	_, path := newStore(t)

	ctrl := gomock.NewController(t)
	other := cas.NewStore(mocks.NewMockLogger(ctrl))
	err := other.Load(path)

	require.ErrorContains(t, err, domain.ErrCacheLocked.Error())
}

func TestStore_Clear(t *testing.T) {
	store, path := newStore(t)

	_, err := store.GetOrCompute("validate", domain.FileSignature{Path: "/a"}, func() (any, error) { return true, nil })
	require.NoError(t, err)
	require.NoError(t, store.Persist())

	require.NoError(t, store.Clear())

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	assert.Equal(t, 0, store.Len("validate"))
	assert.Equal(t, 0, store.Dirty())
}

func TestStore_Persist_NotLoaded(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := cas.NewStore(mocks.NewMockLogger(ctrl))

	_, err := store.GetOrCompute("validate", domain.FileSignature{Path: "/a"}, func() (any, error) { return true, nil })
	require.NoError(t, err)

	require.ErrorContains(t, store.Persist(), domain.ErrCacheNotLoaded.Error())
}

// TestStore_DocumentFormat pins the on-disk layout. If this changes, existing
// caches stop being reused; update the golden file deliberately.
func TestStore_DocumentFormat(t *testing.T) {
	store, path := newStore(t)

	for sig, valid := range map[domain.FileSignature]bool{
		{Path: "/out/a.mp3", ModTime: 1700000000000000000}: true,
		{Path: "/out/b.mp3", ModTime: 1700000000000000001}: false,
	} {
		_, err := store.GetOrCompute("validate", sig, func() (any, error) { return valid, nil })
		require.NoError(t, err)
	}
	require.NoError(t, store.Persist())

	//nolint:gosec // Test file with controlled path
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "cache_document", data)
}
