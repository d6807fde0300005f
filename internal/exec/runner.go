package exec

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// ExecRunner implements CommandRunner using os/exec.
type ExecRunner struct{}

// NewRunner creates a new ExecRunner.
func NewRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes a command and returns combined stdout/stderr output.
func (r *ExecRunner) Run(ctx context.Context, workDir string, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if workDir != "" {
		cmd.Dir = workDir
	}
	return cmd.CombinedOutput()
}

// RunTimeout executes a command under a wall-clock budget.
func (r *ExecRunner) RunTimeout(ctx context.Context, timeout time.Duration, workDir string, name string, args ...string) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	out, err := r.Run(timeoutCtx, workDir, name, args...)
	if err != nil && errors.Is(timeoutCtx.Err(), context.DeadlineExceeded) {
		return out, fmt.Errorf("%s timed out after %s: %w", name, timeout, context.DeadlineExceeded)
	}
	return out, err
}

// LookPath returns an error if the named tool is not on PATH.
func (r *ExecRunner) LookPath(name string) error {
	_, err := exec.LookPath(name)
	return err
}

// Verify ExecRunner implements both interfaces at compile time.
var (
	_ CommandRunner = (*ExecRunner)(nil)
	_ LookPather    = (*ExecRunner)(nil)
)
