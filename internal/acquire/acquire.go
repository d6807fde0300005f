// Package acquire fetches candidate repositories into the destination root.
package acquire

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"reposcout/internal/git"
	"reposcout/internal/logging"
)

// Error reports a failed acquisition. Callers must not run later stages
// against the (non-existent) path when they receive one.
type Error struct {
	CloneURL string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("acquire %s: %v", e.CloneURL, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Acquirer produces local copies of remote repositories.
type Acquirer struct {
	git git.CloneOperations
	log *logging.Logger
}

// New creates an Acquirer backed by the given git runner.
func New(g git.CloneOperations, log *logging.Logger) *Acquirer {
	return &Acquirer{git: g, log: log}
}

// LocalPath computes the deterministic on-disk location for a clone URL:
// the URL's base name with any ".git" suffix stripped, under destRoot.
func LocalPath(cloneURL, destRoot string) string {
	base := path.Base(strings.TrimSuffix(strings.TrimRight(cloneURL, "/"), ".git"))
	base = strings.TrimSuffix(base, ".git")
	return filepath.Join(destRoot, base)
}

// Acquire fetches a shallow copy of cloneURL under destRoot and returns
// its path. If the path already exists the acquisition is treated as
// already satisfied: no re-fetch, no verification of contents.
// The returned bool is true when a fresh clone was created.
func (a *Acquirer) Acquire(ctx context.Context, cloneURL, destRoot string) (string, bool, error) {
	dest := LocalPath(cloneURL, destRoot)

	if _, err := os.Stat(dest); err == nil {
		a.log.Infof("acquire: %s already present at %s, skipping fetch", cloneURL, dest)
		return dest, false, nil
	}

	if err := os.MkdirAll(destRoot, 0755); err != nil {
		return "", false, &Error{CloneURL: cloneURL, Err: err}
	}

	if err := a.git.CloneShallow(ctx, cloneURL, dest); err != nil {
		// A failed clone can leave a partial directory behind.
		os.RemoveAll(dest)
		return "", false, &Error{CloneURL: cloneURL, Err: err}
	}

	a.log.Infof("acquire: cloned %s into %s", cloneURL, dest)
	return dest, true, nil
}
