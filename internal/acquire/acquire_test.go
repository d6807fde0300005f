package acquire

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"reposcout/internal/logging"
)

// fakeCloner records clone calls and can simulate failure.
type fakeCloner struct {
	calls int
	fail  error
}

func (f *fakeCloner) CloneShallow(ctx context.Context, url, dest string) error {
	f.calls++
	if f.fail != nil {
		return f.fail
	}
	return os.MkdirAll(dest, 0755)
}

// TestLocalPath tests destination path derivation from clone URLs.
func TestLocalPath(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://github.com/owner/widget.git", "widget"},
		{"https://github.com/owner/widget", "widget"},
		{"https://github.com/owner/widget.git/", "widget"},
		{"git@github.com:owner/widget.git", "widget"},
	}
	for _, tc := range cases {
		got := LocalPath(tc.url, "/dest")
		if got != filepath.Join("/dest", tc.want) {
			t.Errorf("LocalPath(%q) = %q, want %q", tc.url, got, filepath.Join("/dest", tc.want))
		}
	}
}

// TestAcquireClones tests a fresh acquisition.
func TestAcquireClones(t *testing.T) {
	destRoot := t.TempDir()
	cloner := &fakeCloner{}
	a := New(cloner, logging.Nop())

	path, created, err := a.Acquire(context.Background(), "https://example.com/owner/thing.git", destRoot)
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	if !created {
		t.Error("Expected created=true for fresh clone")
	}
	if path != filepath.Join(destRoot, "thing") {
		t.Errorf("Unexpected path %q", path)
	}
	if cloner.calls != 1 {
		t.Errorf("Expected 1 clone call, got %d", cloner.calls)
	}
}

// TestAcquireIdempotent tests that an existing path skips the fetch and
// still reports success.
func TestAcquireIdempotent(t *testing.T) {
	destRoot := t.TempDir()
	existing := filepath.Join(destRoot, "thing")
	if err := os.MkdirAll(existing, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	cloner := &fakeCloner{}
	a := New(cloner, logging.Nop())

	path, created, err := a.Acquire(context.Background(), "https://example.com/owner/thing.git", destRoot)
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	if created {
		t.Error("Expected created=false for existing copy")
	}
	if path != existing {
		t.Errorf("Expected existing path %q, got %q", existing, path)
	}
	if cloner.calls != 0 {
		t.Errorf("Expected no clone call, got %d", cloner.calls)
	}
}

// TestAcquireFailure tests that clone errors surface as *Error and leave
// no partial directory.
func TestAcquireFailure(t *testing.T) {
	destRoot := t.TempDir()
	cloner := &fakeCloner{fail: errors.New("remote not found")}
	a := New(cloner, logging.Nop())

	_, _, err := a.Acquire(context.Background(), "https://example.com/owner/gone.git", destRoot)
	if err == nil {
		t.Fatal("Expected error")
	}
	var acqErr *Error
	if !errors.As(err, &acqErr) {
		t.Fatalf("Expected *acquire.Error, got %T", err)
	}
	if acqErr.CloneURL != "https://example.com/owner/gone.git" {
		t.Errorf("Unexpected CloneURL %q", acqErr.CloneURL)
	}
	if _, statErr := os.Stat(filepath.Join(destRoot, "gone")); !os.IsNotExist(statErr) {
		t.Error("Expected no partial directory after failed clone")
	}
}
