// Package validation runs the build and test gates against a local copy.
// Both gates shell out to the project's declared build tool; success is the
// tool's exit status, with no output parsing and no retries.
package validation

import (
	"context"
	"fmt"
	"time"

	"reposcout/internal/exec"
	"reposcout/internal/logging"
)

// buildTool is the build tool invoked for both gates.
const buildTool = "mvn"

// buildArgs compiles main sources only, suppressing test execution.
var buildArgs = []string{"clean", "compile", "-DskipTests", "-q", "-B"}

// BuildError reports a failed compilation.
type BuildError struct {
	Err    error
	Output string
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("build failed: %v", e.Err)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

// Builder runs the compile-only gate.
type Builder struct {
	runner exec.CommandRunner
	// timeout bounds the build when non-zero; zero blocks indefinitely.
	timeout time.Duration
	log     *logging.Logger
}

// NewBuilder creates a Builder. A zero timeout leaves the build unbounded.
func NewBuilder(runner exec.CommandRunner, timeout time.Duration, log *logging.Logger) *Builder {
	return &Builder{runner: runner, timeout: timeout, log: log}
}

// Build compiles the main source set of the repository at repoPath.
// Returns a *BuildError on non-zero exit, tool crash, or timeout.
func (b *Builder) Build(ctx context.Context, repoPath string) error {
	var out []byte
	var err error
	if b.timeout > 0 {
		out, err = b.runner.RunTimeout(ctx, b.timeout, repoPath, buildTool, buildArgs...)
	} else {
		out, err = b.runner.Run(ctx, repoPath, buildTool, buildArgs...)
	}
	if err != nil {
		b.log.Errorf("build: %s failed: %v", repoPath, err)
		return &BuildError{Err: err, Output: string(out)}
	}

	b.log.Infof("build: %s compiled", repoPath)
	return nil
}
