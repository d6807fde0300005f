// Package git provides an interface for the git operations the pipeline uses.
package git

import "context"

// CloneOperations defines the interface for fetching remote repositories.
type CloneOperations interface {
	// CloneShallow fetches a single-revision copy of the repository at
	// url into dest (git clone --depth 1). dest must not exist.
	CloneShallow(ctx context.Context, url, dest string) error
}

// RemoteOperations defines the interface for querying remote repositories.
type RemoteOperations interface {
	// RemoteExists reports whether the remote at url is reachable
	// (git ls-remote against the default ref).
	RemoteExists(ctx context.Context, url string) bool
}

// Runner defines the complete interface for git operations.
// Consumers should prefer the focused interfaces when possible.
type Runner interface {
	CloneOperations
	RemoteOperations
	// Run executes an arbitrary git command in dir and returns its output.
	Run(ctx context.Context, dir string, args ...string) (string, error)
}
