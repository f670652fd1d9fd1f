// Package executor performs the filesystem side effects of planned tasks.
package executor

import (
	"context"
	"io"
	"iter"
	"os"
	"path/filepath"

	"go.trai.ch/mirror/internal/core/domain"
	"go.trai.ch/mirror/internal/core/ports"
	"go.trai.ch/mirror/internal/engine/pool"
	"go.trai.ch/zerr"
)

// Executor runs batches of tasks on the worker pool.
type Executor struct {
	runner ports.ToolRunner
	logger ports.Logger
}

// New creates a new Executor.
func New(runner ports.ToolRunner, logger ports.Logger) *Executor {
	return &Executor{
		runner: runner,
		logger: logger,
	}
}

// Run executes tasks with cfg.Threads workers and yields one result per started task
// in completion order. A failing task never stops its siblings.
// Once ctx is done no further task is started.
func (e *Executor) Run(ctx context.Context, cfg *domain.Config, tasks []domain.Task) iter.Seq[domain.TaskResult] {
	return pool.Run(ctx, tasks, cfg.Threads, func(ctx context.Context, task domain.Task) domain.TaskResult {
		return domain.TaskResult{Task: task, Err: e.execute(ctx, cfg, task)}
	})
}

// Drain consumes results, logging each failure as a warning.
func (e *Executor) Drain(results iter.Seq[domain.TaskResult]) (ok, failed int) {
	for res := range results {
		if res.OK() {
			ok++
			continue
		}
		failed++
		e.logger.Warn(res.Task.String() + ": " + res.Err.Error())
	}
	return ok, failed
}

func (e *Executor) execute(ctx context.Context, cfg *domain.Config, task domain.Task) error {
	switch task.Kind {
	case domain.KindConvert:
		return e.convert(ctx, cfg, task)
	case domain.KindCopy:
		return copyFile(task.Source, task.Target)
	case domain.KindDelete:
		return remove(task.Target)
	default:
		return zerr.With(domain.ErrUnknownTaskKind, "kind", task.Kind.String())
	}
}

func (e *Executor) convert(ctx context.Context, cfg *domain.Config, task domain.Task) error {
	if err := ensureParent(task.Target); err != nil {
		return err
	}

	code, err := e.runner.Run(ctx, cfg.Tool.ConvertCommand(task.Source, task.Target, cfg.Bitrate))
	if err == nil && code == 0 {
		return nil
	}

	// A partial output would satisfy the existence check of the next run.
	_ = os.Remove(task.Target)

	if err != nil {
		return zerr.With(err, "source", task.Source)
	}
	err = zerr.With(domain.ErrToolFailed, "exit_code", code)
	return zerr.With(err, "source", task.Source)
}

func copyFile(src, dst string) error {
	if err := ensureParent(dst); err != nil {
		return err
	}
	if err := copyContents(src, dst); err != nil {
		_ = os.Remove(dst)
		return zerr.With(zerr.Wrap(err, domain.ErrCopyFailed.Error()), "target", dst)
	}
	return nil
}

// copyContents copies the bytes of src into dst, keeping its mode and modification time.
func copyContents(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return err
	}
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}

func remove(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrRemoveFailed.Error()), "path", path)
	}
	return nil
}

func ensureParent(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCreateDirFailed.Error()), "path", dir)
	}
	return nil
}
