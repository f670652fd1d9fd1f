// Package shell runs the external conversion tool as a child process.
package shell

import (
	"context"
	"errors"
	"os/exec"
	"time"

	"go.trai.ch/mirror/internal/core/domain"
	"go.trai.ch/mirror/internal/core/ports"
	"go.trai.ch/zerr"
)

// waitDelay bounds how long Wait blocks on a killed process that left its pipes open.
const waitDelay = 5 * time.Second

var _ ports.ToolRunner = (*Runner)(nil)

// Runner implements ports.ToolRunner using os/exec.
type Runner struct{}

// NewRunner creates a new Runner.
func NewRunner() *Runner {
	return &Runner{}
}

// Run executes args[0] with args[1:], discarding stdout and stderr,
// and returns the exit status. Cancelling ctx kills the process.
func (r *Runner) Run(ctx context.Context, args []string) (int, error) {
	if len(args) == 0 || args[0] == "" {
		return -1, domain.ErrEmptyCommand
	}

	cmd := exec.CommandContext(ctx, args[0], args[1:]...) //nolint:gosec // tool comes from operator config
	cmd.WaitDelay = waitDelay

	if err := cmd.Start(); err != nil {
		return -1, zerr.With(zerr.Wrap(err, domain.ErrToolStartFailed.Error()), "tool", args[0])
	}

	err := cmd.Wait()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return -1, zerr.With(zerr.Wrap(ctxErr, domain.ErrToolInterrupted.Error()), "tool", args[0])
	}
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return -1, zerr.With(zerr.Wrap(err, domain.ErrToolStartFailed.Error()), "tool", args[0])
}
