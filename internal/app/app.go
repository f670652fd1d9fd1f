// Package app implements the application layer for mirror.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.trai.ch/mirror/internal/adapters/logger"
	"go.trai.ch/mirror/internal/adapters/watcher"
	"go.trai.ch/mirror/internal/core/domain"
	"go.trai.ch/mirror/internal/core/ports"
	"go.trai.ch/mirror/internal/engine/planner"
	"go.trai.ch/mirror/internal/engine/reconciler"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	cache        ports.FingerprintCache
	reconciler   *reconciler.Reconciler
	planner      *planner.Planner
	digester     ports.TreeDigester
	watchers     ports.WatcherFactory
	logger       ports.Logger
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	cache ports.FingerprintCache,
	rec *reconciler.Reconciler,
	plan *planner.Planner,
	digester ports.TreeDigester,
	watchers ports.WatcherFactory,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		cache:        cache,
		reconciler:   rec,
		planner:      plan,
		digester:     digester,
		watchers:     watchers,
		logger:       log,
	}
}

// formatter is implemented by loggers whose rendering can be switched at runtime.
type formatter interface {
	SetFormat(f logger.Format)
}

// SetLogFormat switches the log rendering when the logger supports it.
func (a *App) SetLogFormat(f logger.Format) {
	if fl, ok := a.logger.(formatter); ok {
		fl.SetFormat(f)
	}
}

// Run mirrors the configured input tree once.
func (a *App) Run(ctx context.Context, configPath string) error {
	cfg, err := a.load(configPath)
	if err != nil {
		return err
	}

	return a.withCache(cfg, func() error {
		return a.reconcile(ctx, cfg)
	})
}

// Plan prints the tasks a run would perform to w without touching the destination.
func (a *App) Plan(ctx context.Context, configPath string, w io.Writer) error {
	cfg, err := a.load(configPath)
	if err != nil {
		return err
	}

	return a.withCache(cfg, func() error {
		plan, err := a.planner.Plan(ctx, cfg)
		if err != nil {
			return zerr.Wrap(err, domain.ErrPlanFailed.Error())
		}
		return printPlan(w, plan)
	})
}

// Watch mirrors once, then mirrors again whenever the input tree changes.
// Bursts of events are coalesced over window. It returns when ctx is done.
func (a *App) Watch(ctx context.Context, configPath string, window time.Duration) error {
	cfg, err := a.load(configPath)
	if err != nil {
		return err
	}

	return a.withCache(cfg, func() error {
		if err := a.reconcile(ctx, cfg); err != nil {
			return err
		}
		return a.watch(ctx, cfg, window)
	})
}

func (a *App) watch(ctx context.Context, cfg *domain.Config, window time.Duration) error {
	last, err := a.digester.TreeDigest(cfg.InputDir)
	if err != nil {
		return zerr.Wrap(err, domain.ErrDigestFailed.Error())
	}

	w, err := a.watchers()
	if err != nil {
		return zerr.Wrap(err, domain.ErrWatchFailed.Error())
	}
	defer func() { _ = w.Close() }()

	if err := w.Watch(ctx, cfg.InputDir); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrWatchFailed.Error()), "path", cfg.InputDir)
	}

	debouncer := watcher.NewDebouncer(window)
	defer debouncer.Stop()

	go func() {
		for c := range w.Changes() {
			debouncer.Add(c.Path)
		}
	}()

	a.logger.Info("watching " + cfg.InputDir)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-debouncer.Ready():
		}

		paths := debouncer.Take()
		if len(paths) == 0 {
			continue
		}

		digest, err := a.digester.TreeDigest(cfg.InputDir)
		if err != nil {
			a.logger.Error(zerr.Wrap(err, domain.ErrDigestFailed.Error()))
			continue
		}
		if digest == last {
			continue
		}
		last = digest
		a.logger.Info(fmt.Sprintf("%d paths changed", len(paths)))

		if err := a.reconcile(ctx, cfg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
	}
}

// Clean removes the fingerprint cache. It waits for no run: a held lock fails it.
func (a *App) Clean(_ context.Context, configPath string) error {
	cfg, err := a.load(configPath)
	if err != nil {
		return err
	}

	if err := a.cache.Load(cfg.CacheFile); err != nil {
		return err
	}
	defer func() { _ = a.cache.Close() }()

	if err := a.cache.Clear(); err != nil {
		return err
	}
	a.logger.Info("removed " + cfg.CacheFile)
	return nil
}

func (a *App) load(configPath string) (*domain.Config, error) {
	cfg, err := a.configLoader.Load(configPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	return cfg, nil
}

// withCache loads the cache for the duration of fn, then persists and releases it
// whatever fn returned.
func (a *App) withCache(cfg *domain.Config, fn func() error) (err error) {
	if err := a.cache.Load(cfg.CacheFile); err != nil {
		return err
	}
	defer func() {
		if perr := a.cache.Persist(); perr != nil {
			err = errors.Join(err, perr)
		}
		if cerr := a.cache.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}()

	return fn()
}

func (a *App) reconcile(ctx context.Context, cfg *domain.Config) error {
	report, err := a.reconciler.Run(ctx, cfg)
	if err != nil {
		return zerr.Wrap(err, domain.ErrReconcileFailed.Error())
	}

	a.logger.Info(report.String())
	if n := report.Failed(); n > 0 {
		a.logger.Warn(fmt.Sprintf("%d tasks failed, re-run to retry", n))
	}
	return nil
}
