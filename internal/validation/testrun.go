package validation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"reposcout/internal/exec"
	"reposcout/internal/logging"
)

// testArgs executes the full test suite.
var testArgs = []string{"test", "-q", "-B"}

// DefaultTestTimeout bounds the test suite when no timeout is configured.
const DefaultTestTimeout = 300 * time.Second

// TestError reports a failed or timed-out test run. Timeout expiry is
// treated identically to a test failure; TimedOut only refines the logged
// reason where the distinction is observable locally.
type TestError struct {
	Err      error
	Output   string
	TimedOut bool
}

func (e *TestError) Error() string {
	if e.TimedOut {
		return fmt.Sprintf("tests timed out: %v", e.Err)
	}
	return fmt.Sprintf("tests failed: %v", e.Err)
}

func (e *TestError) Unwrap() error {
	return e.Err
}

// Tester runs the test-suite gate under a wall-clock budget.
type Tester struct {
	runner  exec.CommandRunner
	timeout time.Duration
	log     *logging.Logger
}

// NewTester creates a Tester. A non-positive timeout falls back to
// DefaultTestTimeout; the test stage is always bounded.
func NewTester(runner exec.CommandRunner, timeout time.Duration, log *logging.Logger) *Tester {
	if timeout <= 0 {
		timeout = DefaultTestTimeout
	}
	return &Tester{runner: runner, timeout: timeout, log: log}
}

// Test executes the repository's test suite. Exactly one attempt is made;
// any non-zero exit or timeout returns a *TestError.
func (t *Tester) Test(ctx context.Context, repoPath string) error {
	out, err := t.runner.RunTimeout(ctx, t.timeout, repoPath, buildTool, testArgs...)
	if err != nil {
		timedOut := errors.Is(err, context.DeadlineExceeded)
		if timedOut {
			t.log.Errorf("test: %s timed out after %s", repoPath, t.timeout)
		} else {
			t.log.Errorf("test: %s failed: %v", repoPath, err)
		}
		return &TestError{Err: err, Output: string(out), TimedOut: timedOut}
	}

	t.log.Infof("test: %s passed", repoPath)
	return nil
}
