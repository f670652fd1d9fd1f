package planner_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/mirror/internal/adapters/cas"
	"go.trai.ch/mirror/internal/adapters/fs"
	"go.trai.ch/mirror/internal/core/domain"
	"go.trai.ch/mirror/internal/core/ports/mocks"
	"go.trai.ch/mirror/internal/engine/planner"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	cfg     *domain.Config
	runner  *mocks.MockToolRunner
	cache   *cas.Store
	planner *planner.Planner
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	root := t.TempDir()
	in := filepath.Join(root, "in")
	out := filepath.Join(root, "out")
	require.NoError(t, os.Mkdir(in, domain.DirPerm))

	cfg := &domain.Config{
		InputDir:       in,
		OutputDir:      out,
		Threads:        2,
		CopyOtherFiles: true,
		Bitrate:        "192k",
		FromExtensions: []string{"flac"},
		ToExtension:    "mp3",
		CacheFile:      filepath.Join(root, domain.DefaultCachePath()),
		Tool: domain.Tool{
			Name:         "check",
			ConvertArgs:  []string{domain.PlaceholderInput, domain.PlaceholderOutput},
			ValidateArgs: []string{domain.PlaceholderInput},
		},
	}

	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info(gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Warn(gomock.Any()).AnyTimes()
	runner := mocks.NewMockToolRunner(ctrl)

	store := cas.NewStore(mockLogger)
	require.NoError(t, store.Load(cfg.CacheFile))
	t.Cleanup(func() { _ = store.Close() })

	return &fixture{
		cfg:     cfg,
		runner:  runner,
		cache:   store,
		planner: planner.New(fs.NewWalker(), runner, store, mockLogger),
	}
}

func (f *fixture) in(elem ...string) string {
	return filepath.Join(append([]string{f.cfg.InputDir}, elem...)...)
}

func (f *fixture) out(elem ...string) string {
	return filepath.Join(append([]string{f.cfg.OutputDir}, elem...)...)
}

// expectValidate makes the validity check of path exit with code.
func (f *fixture) expectValidate(path string, code int) *gomock.Call {
	return f.runner.EXPECT().Run(gomock.Any(), []string{"check", path}).Return(code, nil)
}

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(t, os.WriteFile(path, []byte(filepath.Base(path)), domain.FilePerm))
}

func TestPlanner_Plan_FreshMirror(t *testing.T) {
	f := newFixture(t)
	writeFile(t, f.in("a.flac"))
	writeFile(t, f.in("cover.jpg"))

	plan, err := f.planner.Plan(t.Context(), f.cfg)
	require.NoError(t, err)

	assert.Empty(t, plan.Delete)
	assert.Empty(t, plan.Invalid)
	assert.Equal(t, []domain.Task{domain.NewConvert(f.in("a.flac"), f.out("a.mp3"))}, plan.Convert)
	assert.Equal(t, []domain.Task{domain.NewCopy(f.in("cover.jpg"), f.out("cover.jpg"))}, plan.Copy)
}

func TestPlanner_Plan_ExistingTargetIsSkipped(t *testing.T) {
	f := newFixture(t)
	writeFile(t, f.in("a.flac"))
	writeFile(t, f.in("cover.jpg"))
	writeFile(t, f.out("a.mp3"))
	f.expectValidate(f.out("a.mp3"), 0)

	plan, err := f.planner.Plan(t.Context(), f.cfg)
	require.NoError(t, err)

	assert.Empty(t, plan.Convert)
	assert.Len(t, plan.Copy, 1)
}

func TestPlanner_Plan_SyncDeletesTopMostOrphan(t *testing.T) {
	f := newFixture(t)
	f.cfg.Sync = true
	writeFile(t, f.in("a.flac"))
	writeFile(t, f.out("old", "stale.mp3"))

	// old/stale.mp3 is covered by the delete of old and is not validated.
	plan, err := f.planner.Plan(t.Context(), f.cfg)
	require.NoError(t, err)

	assert.Equal(t, []domain.Task{domain.NewDelete(f.out("old"))}, plan.Delete)
	assert.Empty(t, plan.Invalid)
	assert.Equal(t, []domain.Task{domain.NewConvert(f.in("a.flac"), f.out("a.mp3"))}, plan.Convert)
}

func TestPlanner_Plan_InvalidOutputIsRegenerated(t *testing.T) {
	f := newFixture(t)
	writeFile(t, f.in("a.flac"))
	writeFile(t, f.out("a.mp3"))
	f.expectValidate(f.out("a.mp3"), 1)

	plan, err := f.planner.Plan(t.Context(), f.cfg)
	require.NoError(t, err)

	assert.Equal(t, []domain.Task{domain.NewDelete(f.out("a.mp3"))}, plan.Invalid)
	assert.Equal(t, []domain.Task{domain.NewConvert(f.in("a.flac"), f.out("a.mp3"))}, plan.Convert)
}

func TestPlanner_Plan_Idempotent(t *testing.T) {
	f := newFixture(t)
	f.cfg.Sync = true
	writeFile(t, f.in("disc1", "a.flac"))
	writeFile(t, f.in("disc1", "cover.jpg"))
	writeFile(t, f.out("disc1", "a.mp3"))
	writeFile(t, f.out("disc1", "cover.jpg"))
	f.expectValidate(f.out("disc1", "a.mp3"), 0).Times(1)

	for range 2 {
		plan, err := f.planner.Plan(t.Context(), f.cfg)
		require.NoError(t, err)
		assert.Zero(t, plan.Len())
	}
}

func TestPlanner_Plan_Overwrite(t *testing.T) {
	f := newFixture(t)
	f.cfg.Overwrite = true
	writeFile(t, f.in("a.flac"))
	writeFile(t, f.in("cover.jpg"))
	writeFile(t, f.out("a.mp3"))

	plan, err := f.planner.Plan(t.Context(), f.cfg)
	require.NoError(t, err)

	assert.Equal(t, []domain.Task{domain.NewDelete(f.cfg.OutputDir)}, plan.Delete)
	assert.Equal(t, []domain.Task{domain.NewConvert(f.in("a.flac"), f.out("a.mp3"))}, plan.Convert)
	assert.Equal(t, []domain.Task{domain.NewCopy(f.in("cover.jpg"), f.out("cover.jpg"))}, plan.Copy)
}

func TestPlanner_Plan_CopyOtherFilesDisabled(t *testing.T) {
	f := newFixture(t)
	f.cfg.CopyOtherFiles = false
	writeFile(t, f.in("cover.jpg"))

	plan, err := f.planner.Plan(t.Context(), f.cfg)
	require.NoError(t, err)
	assert.Empty(t, plan.Copy)
}

func TestPlanner_Conversions_ExtensionCase(t *testing.T) {
	tests := []struct {
		name            string
		caseInsensitive bool
		wantConvert     []string
		wantCopy        []string
	}{
		{
			name:        "exact match",
			wantConvert: []string{"a.mp3"},
			wantCopy:    []string{"b.FLAC", "noext"},
		},
		{
			name:            "folded case",
			caseInsensitive: true,
			wantConvert:     []string{"a.mp3", "b.mp3"},
			wantCopy:        []string{"noext"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.cfg.CaseInsensitiveExtensions = tt.caseInsensitive
			writeFile(t, f.in("a.flac"))
			writeFile(t, f.in("b.FLAC"))
			writeFile(t, f.in("noext"))

			var gotConvert, gotCopy []string
			for _, task := range f.planner.Conversions(f.cfg) {
				gotConvert = append(gotConvert, filepath.Base(task.Target))
			}
			for _, task := range f.planner.Copies(f.cfg) {
				gotCopy = append(gotCopy, filepath.Base(task.Target))
			}

			assert.Equal(t, tt.wantConvert, gotConvert)
			assert.Equal(t, tt.wantCopy, gotCopy)
		})
	}
}

func TestPlanner_Conversions_OverwriteIgnoresExisting(t *testing.T) {
	f := newFixture(t)
	writeFile(t, f.in("a.flac"))
	writeFile(t, f.out("a.mp3"))

	assert.Empty(t, f.planner.Conversions(f.cfg))

	f.cfg.Overwrite = true
	assert.Len(t, f.planner.Conversions(f.cfg), 1)
}

func TestPlanner_Mismatches_Counterparts(t *testing.T) {
	f := newFixture(t)
	writeFile(t, f.in("a.flac"))
	writeFile(t, f.in("cover.jpg"))
	require.NoError(t, os.MkdirAll(f.in("empty"), domain.DirPerm))

	writeFile(t, f.out("a.mp3"))
	writeFile(t, f.out("a.flac"))
	writeFile(t, f.out("cover.jpg"))
	writeFile(t, f.out("extra.txt"))
	require.NoError(t, os.MkdirAll(f.out("empty"), domain.DirPerm))
	writeFile(t, f.out("gone", "deep", "x.mp3"))

	tasks := f.planner.Mismatches(f.cfg)

	assert.Equal(t, []domain.Task{
		domain.NewDelete(f.out("extra.txt")),
		domain.NewDelete(f.out("gone")),
	}, tasks)
}

func TestPlanner_Mismatches_FoldedTargetExtension(t *testing.T) {
	f := newFixture(t)
	f.cfg.CaseInsensitiveExtensions = true
	writeFile(t, f.in("a.FLAC"))
	writeFile(t, f.out("a.MP3"))

	assert.Empty(t, f.planner.Mismatches(f.cfg))
}

func TestPlanner_Mismatches_ProtectsCacheFile(t *testing.T) {
	f := newFixture(t)
	f.cfg.CacheFile = f.out(domain.DefaultCachePath())
	writeFile(t, f.cfg.CacheFile)
	writeFile(t, domain.LockPath(f.cfg.CacheFile))
	writeFile(t, f.out(domain.MirrorDirName, "stray"))

	tasks := f.planner.Mismatches(f.cfg)

	assert.Equal(t, []domain.Task{
		domain.NewDelete(f.out(domain.MirrorDirName, "stray")),
	}, tasks)
}

func TestPlanner_Mismatches_MissingOutputDir(t *testing.T) {
	f := newFixture(t)
	writeFile(t, f.in("a.flac"))

	assert.Empty(t, f.planner.Mismatches(f.cfg))
}

func TestPlanner_InvalidOutputs_CachedVerdict(t *testing.T) {
	f := newFixture(t)
	writeFile(t, f.out("a.mp3"))
	writeFile(t, f.out("b.mp3"))
	writeFile(t, f.out("cover.jpg"))
	f.expectValidate(f.out("a.mp3"), 0).Times(1)
	f.expectValidate(f.out("b.mp3"), 1).Times(1)

	for range 2 {
		tasks, err := f.planner.InvalidOutputs(t.Context(), f.cfg)
		require.NoError(t, err)
		assert.Equal(t, []domain.Task{domain.NewDelete(f.out("b.mp3"))}, tasks)
	}
	assert.Equal(t, 2, f.cache.Len(planner.ValidateFunction))
}

func TestPlanner_InvalidOutputs_ModifiedFileIsRevalidated(t *testing.T) {
	f := newFixture(t)
	path := f.out("a.mp3")
	writeFile(t, path)
	f.expectValidate(path, 0).Times(2)

	_, err := f.planner.InvalidOutputs(t.Context(), f.cfg)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	later := info.ModTime().Add(time.Second)
	require.NoError(t, os.Chtimes(path, later, later))

	_, err = f.planner.InvalidOutputs(t.Context(), f.cfg)
	require.NoError(t, err)
}

func TestPlanner_InvalidOutputs_ToolStartFailure(t *testing.T) {
	f := newFixture(t)
	path := f.out("a.mp3")
	writeFile(t, path)

	boom := errors.New("executable not found")
	f.runner.EXPECT().Run(gomock.Any(), []string{"check", path}).Return(-1, boom).Times(2)

	for range 2 {
		_, err := f.planner.InvalidOutputs(t.Context(), f.cfg)
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrValidationFailed.Error())
		assert.ErrorIs(t, err, boom)
	}
	assert.Zero(t, f.cache.Len(planner.ValidateFunction), "failed checks are not cached")
}

func TestPlanner_InvalidOutputs_Cancelled(t *testing.T) {
	f := newFixture(t)
	writeFile(t, f.out("a.mp3"))

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := f.planner.InvalidOutputs(ctx, f.cfg)
	require.ErrorIs(t, err, context.Canceled)
}

func TestPlanner_Conversions_CollidingStems(t *testing.T) {
	tests := []struct {
		name            string
		from            []string
		caseInsensitive bool
		files           []string
		wantSource      string
	}{
		{
			name:       "different extensions",
			from:       []string{"flac", "wav"},
			files:      []string{"a.wav", "a.flac"},
			wantSource: "a.flac",
		},
		{
			name:            "folded case",
			from:            []string{"flac"},
			caseInsensitive: true,
			files:           []string{"a.flac", "a.FLAC"},
			wantSource:      "a.FLAC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.cfg.FromExtensions = tt.from
			f.cfg.CaseInsensitiveExtensions = tt.caseInsensitive
			for _, name := range tt.files {
				writeFile(t, f.in(name))
			}

			ctrl := gomock.NewController(t)
			mockLogger := mocks.NewMockLogger(ctrl)
			mockLogger.EXPECT().Warn(gomock.Any()).Times(1)
			p := planner.New(fs.NewWalker(), f.runner, f.cache, mockLogger)

			assert.Equal(t, []domain.Task{
				domain.NewConvert(f.in(tt.wantSource), f.out("a.mp3")),
			}, p.Conversions(f.cfg))
		})
	}
}

func TestPlanner_Copies_SkipConversionTargets(t *testing.T) {
	f := newFixture(t)
	writeFile(t, f.in("a.flac"))
	writeFile(t, f.in("a.mp3"))
	writeFile(t, f.in("b.mp3"))

	assert.Equal(t, []domain.Task{
		domain.NewCopy(f.in("b.mp3"), f.out("b.mp3")),
	}, f.planner.Copies(f.cfg))
}

func TestPlanner_Plan_CacheInsideInputIsNotMirrored(t *testing.T) {
	f := newFixture(t)
	f.cfg.Sync = true
	f.cfg.CacheFile = f.in("state.json")
	writeFile(t, f.in("a.flac"))
	writeFile(t, f.cfg.CacheFile)
	writeFile(t, domain.LockPath(f.cfg.CacheFile))
	writeFile(t, f.in(".state.json.42.tmp"))
	writeFile(t, f.in(domain.MirrorDirName, domain.CacheFileName))
	writeFile(t, f.out("state.json"))
	writeFile(t, f.out(domain.MirrorDirName, domain.CacheFileName))

	plan, err := f.planner.Plan(t.Context(), f.cfg)
	require.NoError(t, err)

	assert.Equal(t, []domain.Task{
		domain.NewDelete(f.out(domain.MirrorDirName)),
		domain.NewDelete(f.out("state.json")),
	}, plan.Delete)
	assert.Equal(t, []domain.Task{domain.NewConvert(f.in("a.flac"), f.out("a.mp3"))}, plan.Convert)
	assert.Empty(t, plan.Copy)
}
