// Package planner computes the tasks that bring the destination tree in line with the source tree.
package planner

import (
	"cmp"
	"context"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/mirror/internal/core/domain"
	"go.trai.ch/mirror/internal/core/ports"
	"go.trai.ch/mirror/internal/engine/pool"
	"go.trai.ch/zerr"
)

// ValidateFunction names the cached validity check of destination outputs.
const ValidateFunction = "validate"

// Planner derives task lists from scans of the source and destination trees.
// It never mutates either tree.
type Planner struct {
	scanner ports.Scanner
	runner  ports.ToolRunner
	cache   ports.FingerprintCache
	logger  ports.Logger
}

// New creates a new Planner.
func New(
	scanner ports.Scanner,
	runner ports.ToolRunner,
	cache ports.FingerprintCache,
	logger ports.Logger,
) *Planner {
	return &Planner{
		scanner: scanner,
		runner:  runner,
		cache:   cache,
		logger:  logger,
	}
}

// Plan computes every task a reconcile run would perform, in step order.
// Tasks planned by an earlier step are taken into account by later ones,
// so the result matches what a run does against the current trees.
func (p *Planner) Plan(ctx context.Context, cfg *domain.Config) (domain.Plan, error) {
	var plan domain.Plan

	if cfg.Overwrite {
		if pathExists(cfg.OutputDir) {
			plan.Delete = []domain.Task{domain.NewDelete(cfg.OutputDir)}
		}
		absent := func(string) bool { return false }
		plan.Convert = p.conversions(cfg, absent)
		if cfg.CopyOtherFiles {
			plan.Copy = p.copies(cfg, absent)
		}
		return plan, nil
	}

	gone := make(prunedSet)
	if cfg.Sync {
		plan.Delete = p.Mismatches(cfg)
		gone.add(plan.Delete)
	}

	invalid, err := p.invalidOutputs(ctx, cfg, gone.covers)
	if err != nil {
		return domain.Plan{}, err
	}
	plan.Invalid = invalid
	gone.add(invalid)

	exists := func(path string) bool {
		return !gone.covers(path) && pathExists(path)
	}
	plan.Convert = p.conversions(cfg, exists)
	if cfg.CopyOtherFiles {
		plan.Copy = p.copies(cfg, exists)
	}
	return plan, nil
}

// Conversions returns a Convert task for every source file with a configured extension.
// Unless Overwrite is set, files whose target already exists are skipped.
func (p *Planner) Conversions(cfg *domain.Config) []domain.Task {
	return p.conversions(cfg, pathExists)
}

func (p *Planner) conversions(cfg *domain.Config, exists func(string) bool) []domain.Task {
	var tasks []domain.Task
	for entry := range p.sources(cfg) {
		if !cfg.IsSource(entry) {
			continue
		}
		target := cfg.ConvertTarget(entry)
		if !cfg.Overwrite && exists(target) {
			continue
		}
		tasks = append(tasks, domain.NewConvert(entry.Path, target))
	}
	sortTasks(tasks)
	return p.dropCollisions(tasks)
}

// dropCollisions keeps one conversion per target. Sources sharing a stem, like
// a.flac and a.wav, would otherwise race on the same output. tasks must be sorted.
func (p *Planner) dropCollisions(tasks []domain.Task) []domain.Task {
	kept := tasks[:0]
	for _, task := range tasks {
		if n := len(kept); n > 0 && kept[n-1].Target == task.Target {
			p.logger.Warn(fmt.Sprintf("skipping %s: %s is converted from %s", task.Source, task.Target, kept[n-1].Source))
			continue
		}
		kept = append(kept, task)
	}
	return kept
}

// Copies returns a Copy task for every other source file whose target is missing.
func (p *Planner) Copies(cfg *domain.Config) []domain.Task {
	return p.copies(cfg, pathExists)
}

// copies never targets a path a conversion writes to.
func (p *Planner) copies(cfg *domain.Config, exists func(string) bool) []domain.Task {
	converted := make(map[string]struct{})
	var others []domain.FileEntry
	for entry := range p.sources(cfg) {
		switch {
		case entry.IsDir:
		case cfg.IsSource(entry):
			converted[cfg.ConvertTarget(entry)] = struct{}{}
		default:
			others = append(others, entry)
		}
	}

	var tasks []domain.Task
	for _, entry := range others {
		target := cfg.CopyTarget(entry)
		if _, ok := converted[target]; ok {
			continue
		}
		if exists(target) {
			continue
		}
		tasks = append(tasks, domain.NewCopy(entry.Path, target))
	}
	sortTasks(tasks)
	return tasks
}

// sources scans InputDir without the tool's own state: the cache document, its
// lock and temporaries, and anything inside a metadata directory.
func (p *Planner) sources(cfg *domain.Config) iter.Seq[domain.FileEntry] {
	state := make(map[domain.RelPath]struct{})
	for _, rel := range cacheRels(cfg, cfg.InputDir) {
		state[rel] = struct{}{}
	}
	cacheDir := filepath.Dir(cfg.CacheFile)
	tmpPrefix := "." + filepath.Base(cfg.CacheFile) + "."

	return func(yield func(domain.FileEntry) bool) {
		for entry := range p.scanner.Scan(cfg.InputDir) {
			if _, ok := state[domain.NewRelPath(entry.Rel)]; ok {
				continue
			}
			if inMetadataDir(entry.Rel) {
				continue
			}
			base := filepath.Base(entry.Path)
			if filepath.Dir(entry.Path) == cacheDir && strings.HasPrefix(base, tmpPrefix) && strings.HasSuffix(base, ".tmp") {
				continue
			}
			if !yield(entry) {
				return
			}
		}
	}
}

func inMetadataDir(rel string) bool {
	return slices.Contains(strings.Split(rel, string(filepath.Separator)), domain.MirrorDirName)
}

// Mismatches returns a Delete task for every top-most destination entry that
// has no counterpart in the source tree. Entries below an orphaned directory
// are covered by its task. The cache file and its lock are never orphans.
func (p *Planner) Mismatches(cfg *domain.Config) []domain.Task {
	desired := p.desired(cfg)
	protected := protectedPaths(cfg)

	orphans := make(map[domain.RelPath]string)
	for entry := range p.scanner.Scan(cfg.OutputDir) {
		rel := domain.NewRelPath(entry.Rel)
		if _, ok := protected[rel]; ok {
			continue
		}
		if _, ok := desired[matchKey(cfg, rel)]; ok {
			continue
		}
		orphans[rel] = entry.Path
	}

	var tasks []domain.Task
	for rel, path := range orphans {
		if hasOrphanAncestor(rel, orphans) {
			continue
		}
		tasks = append(tasks, domain.NewDelete(path))
	}
	sortTasks(tasks)
	return tasks
}

// desired collects the destination paths the source tree accounts for.
func (p *Planner) desired(cfg *domain.Config) map[domain.RelPath]struct{} {
	set := make(map[domain.RelPath]struct{})
	for entry := range p.sources(cfg) {
		rel := domain.NewRelPath(entry.Rel)
		set[matchKey(cfg, rel)] = struct{}{}
		if cfg.IsSource(entry) {
			converted := domain.NewRelPath(domain.ReplaceExtension(entry.Rel, cfg.ToExtension))
			set[matchKey(cfg, converted)] = struct{}{}
		}
	}
	return set
}

// InvalidOutputs validates every destination file carrying the target extension
// and returns a Delete task for each one the tool rejects.
// Verdicts are cached per path and modification time.
func (p *Planner) InvalidOutputs(ctx context.Context, cfg *domain.Config) ([]domain.Task, error) {
	return p.invalidOutputs(ctx, cfg, func(string) bool { return false })
}

type verdict struct {
	path    string
	invalid bool
	err     error
}

func (p *Planner) invalidOutputs(
	ctx context.Context,
	cfg *domain.Config,
	skip func(string) bool,
) ([]domain.Task, error) {
	var outputs []string
	for entry := range p.scanner.Scan(cfg.OutputDir) {
		if cfg.IsTarget(entry) && !skip(entry.Path) {
			outputs = append(outputs, entry.Path)
		}
	}

	var tasks []domain.Task
	for v := range pool.Run(ctx, outputs, cfg.Threads, func(ctx context.Context, path string) verdict {
		return p.validate(ctx, cfg, path)
	}) {
		if v.err != nil {
			return nil, zerr.With(zerr.Wrap(v.err, domain.ErrValidationFailed.Error()), "path", v.path)
		}
		if v.invalid {
			p.logger.Info("invalid output " + v.path)
			tasks = append(tasks, domain.NewDelete(v.path))
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sortTasks(tasks)
	return tasks, nil
}

func (p *Planner) validate(ctx context.Context, cfg *domain.Config, path string) verdict {
	info, err := os.Stat(path)
	if err != nil {
		// Removed since the scan.
		return verdict{path: path}
	}

	sig := domain.FileSignature{Path: path, ModTime: info.ModTime().UnixNano()}
	valid, err := ports.CachedBool(p.cache, ValidateFunction, sig, func() (bool, error) {
		code, err := p.runner.Run(ctx, cfg.Tool.ValidateCommand(path))
		if err != nil {
			return false, err
		}
		return code == 0, nil
	})
	if err != nil {
		return verdict{path: path, err: err}
	}
	return verdict{path: path, invalid: !valid}
}

// protectedPaths returns the cache file, its lock and their ancestors,
// relative to OutputDir. It is empty when the cache lives elsewhere.
func protectedPaths(cfg *domain.Config) map[domain.RelPath]struct{} {
	set := make(map[domain.RelPath]struct{})
	for _, rp := range cacheRels(cfg, cfg.OutputDir) {
		set[rp] = struct{}{}
		for anc := range rp.Ancestors() {
			set[anc] = struct{}{}
		}
	}
	return set
}

// cacheRels returns the cache file and its lock relative to root, when they lie below it.
func cacheRels(cfg *domain.Config, root string) []domain.RelPath {
	var rels []domain.RelPath
	for _, path := range []string{cfg.CacheFile, domain.LockPath(cfg.CacheFile)} {
		rel, err := filepath.Rel(root, path)
		if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		rels = append(rels, domain.NewRelPath(rel))
	}
	return rels
}

// matchKey folds the extension of rel when extensions are compared case-insensitively.
func matchKey(cfg *domain.Config, rel domain.RelPath) domain.RelPath {
	if !cfg.CaseInsensitiveExtensions {
		return rel
	}
	s := rel.String()
	ext := domain.Extension(s)
	if ext == "" {
		return rel
	}
	return domain.NewRelPath(domain.ReplaceExtension(s, strings.ToLower(ext)))
}

func hasOrphanAncestor(rel domain.RelPath, orphans map[domain.RelPath]string) bool {
	for anc := range rel.Ancestors() {
		if _, ok := orphans[anc]; ok {
			return true
		}
	}
	return false
}

// prunedSet holds absolute paths scheduled for removal.
type prunedSet map[string]struct{}

func (s prunedSet) add(tasks []domain.Task) {
	for _, t := range tasks {
		s[t.Target] = struct{}{}
	}
}

// covers reports whether path is a scheduled removal or lies below one.
func (s prunedSet) covers(path string) bool {
	if len(s) == 0 {
		return false
	}
	for cur := path; ; {
		if _, ok := s[cur]; ok {
			return true
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return false
		}
		cur = parent
	}
}

func pathExists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

func sortTasks(tasks []domain.Task) {
	slices.SortFunc(tasks, func(a, b domain.Task) int {
		return cmp.Or(cmp.Compare(a.Target, b.Target), cmp.Compare(a.Source, b.Source))
	})
}
