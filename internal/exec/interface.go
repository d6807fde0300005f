// Package exec provides an interface for running external tools.
package exec

import (
	"context"
	"time"
)

// CommandRunner defines the interface for running external commands.
// This abstraction allows stubbing tool invocation in tests.
type CommandRunner interface {
	// Run executes a command and returns combined stdout/stderr output.
	// The working directory is set to workDir if non-empty. The command
	// blocks until completion or ctx cancellation.
	Run(ctx context.Context, workDir string, name string, args ...string) (output []byte, err error)

	// RunTimeout executes a command under a wall-clock budget. A timeout
	// surfaces as a context.DeadlineExceeded-wrapped error alongside any
	// output produced before the deadline.
	RunTimeout(ctx context.Context, timeout time.Duration, workDir string, name string, args ...string) (output []byte, err error)
}

// LookPather reports whether a tool is installed. Split from CommandRunner
// so prerequisite checks can be faked independently.
type LookPather interface {
	// LookPath returns an error if the named tool is not on PATH.
	LookPath(name string) error
}
