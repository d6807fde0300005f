package git

import (
	"context"
	"fmt"
	"strings"

	"reposcout/internal/exec"
)

// ExecRunner implements Runner by shelling out to the git binary.
type ExecRunner struct {
	runner exec.CommandRunner
}

// NewRunner creates a git runner backed by the given command runner.
func NewRunner(runner exec.CommandRunner) *ExecRunner {
	return &ExecRunner{runner: runner}
}

// Run executes a git command in dir and returns its output.
func (r *ExecRunner) Run(ctx context.Context, dir string, args ...string) (string, error) {
	out, err := r.runner.Run(ctx, dir, "git", args...)
	if err != nil {
		return string(out), fmt.Errorf("git %s: %w\n%s", strings.Join(args, " "), err, strings.TrimSpace(string(out)))
	}
	return string(out), nil
}

// CloneShallow fetches a single-revision copy of url into dest.
func (r *ExecRunner) CloneShallow(ctx context.Context, url, dest string) error {
	_, err := r.Run(ctx, "", "clone", "--depth", "1", url, dest)
	return err
}

// RemoteExists reports whether the remote at url is reachable.
func (r *ExecRunner) RemoteExists(ctx context.Context, url string) bool {
	_, err := r.Run(ctx, "", "ls-remote", "--exit-code", url, "HEAD")
	return err == nil
}

// Verify ExecRunner implements Runner at compile time.
var _ Runner = (*ExecRunner)(nil)
