// Package reconciler drives a full mirror run: prune, validate, convert, copy.
package reconciler

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"go.trai.ch/mirror/internal/core/domain"
	"go.trai.ch/mirror/internal/core/ports"
	"go.trai.ch/mirror/internal/engine/executor"
	"go.trai.ch/mirror/internal/engine/planner"
	"go.trai.ch/zerr"
)

// Reconciler runs the planning passes and their task batches in a fixed order.
// Each batch completes before the next pass is planned, so later passes observe
// the effects of earlier ones.
type Reconciler struct {
	planner  *planner.Planner
	executor *executor.Executor
	cache    ports.FingerprintCache
	logger   ports.Logger
}

// New creates a new Reconciler.
func New(
	p *planner.Planner,
	e *executor.Executor,
	cache ports.FingerprintCache,
	logger ports.Logger,
) *Reconciler {
	return &Reconciler{
		planner:  p,
		executor: e,
		cache:    cache,
		logger:   logger,
	}
}

// Run mirrors cfg.InputDir into cfg.OutputDir. The cache must already be loaded.
// Task failures are counted in the report. Run only returns an error when the
// output cannot be wiped, validation cannot run, the cache cannot be persisted
// or ctx is cancelled.
func (r *Reconciler) Run(ctx context.Context, cfg *domain.Config) (domain.Report, error) {
	var report domain.Report

	if cfg.Overwrite {
		if err := r.wipe(ctx, cfg, &report); err != nil {
			return report, err
		}
	}

	if cfg.Sync && !cfg.Overwrite {
		ok, failed := r.execute(ctx, cfg, "removing", r.planner.Mismatches(cfg))
		report.Removed += ok
		report.RemoveFailed += failed
		if err := ctx.Err(); err != nil {
			return report, err
		}
	}

	invalid, err := r.planner.InvalidOutputs(ctx, cfg)
	if err != nil {
		return report, err
	}
	report.Invalid = len(invalid)
	// Validation verdicts are the expensive part of a run.
	if err := r.cache.Persist(); err != nil {
		return report, err
	}
	ok, failed := r.execute(ctx, cfg, "removing invalid", invalid)
	report.Removed += ok
	report.RemoveFailed += failed
	if err := ctx.Err(); err != nil {
		return report, err
	}

	report.Converted, report.ConvertFailed = r.execute(ctx, cfg, "converting", r.planner.Conversions(cfg))
	if err := ctx.Err(); err != nil {
		return report, err
	}

	if cfg.CopyOtherFiles {
		report.Copied, report.CopyFailed = r.execute(ctx, cfg, "copying", r.planner.Copies(cfg))
		if err := ctx.Err(); err != nil {
			return report, err
		}
	}

	if err := r.cache.Persist(); err != nil {
		return report, err
	}
	return report, nil
}

func (r *Reconciler) wipe(ctx context.Context, cfg *domain.Config, report *domain.Report) error {
	if _, err := os.Lstat(cfg.OutputDir); errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	r.logger.Info("wiping " + cfg.OutputDir)
	for res := range r.executor.Run(ctx, cfg, []domain.Task{domain.NewDelete(cfg.OutputDir)}) {
		if !res.OK() {
			return zerr.With(zerr.Wrap(res.Err, domain.ErrWipeFailed.Error()), "path", cfg.OutputDir)
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	report.Wiped = true
	return nil
}

func (r *Reconciler) execute(ctx context.Context, cfg *domain.Config, verb string, tasks []domain.Task) (ok, failed int) {
	if len(tasks) == 0 {
		return 0, 0
	}
	r.logger.Info(fmt.Sprintf("%s %d paths", verb, len(tasks)))
	return r.executor.Drain(r.executor.Run(ctx, cfg, tasks))
}
