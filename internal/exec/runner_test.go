package exec

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

// TestRunCapturesCombinedOutput tests that Run returns stdout and stderr.
func TestRunCapturesCombinedOutput(t *testing.T) {
	r := NewRunner()

	out, err := r.Run(context.Background(), "", "sh", "-c", "echo out; echo err 1>&2")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !strings.Contains(string(out), "out") || !strings.Contains(string(out), "err") {
		t.Errorf("Expected combined output, got: %q", out)
	}
}

// TestRunWorkDir tests that the working directory is honored.
func TestRunWorkDir(t *testing.T) {
	r := NewRunner()
	tmpDir := t.TempDir()

	out, err := r.Run(context.Background(), tmpDir, "pwd")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !strings.Contains(string(out), tmpDir) {
		t.Errorf("Expected output to contain %q, got: %q", tmpDir, out)
	}
}

// TestRunNonZeroExit tests that a failing command surfaces an error.
func TestRunNonZeroExit(t *testing.T) {
	r := NewRunner()

	if _, err := r.Run(context.Background(), "", "sh", "-c", "exit 3"); err == nil {
		t.Error("Expected error for non-zero exit")
	}
}

// TestRunTimeoutExpires tests that a slow command is killed and the error
// wraps context.DeadlineExceeded so callers can classify timeouts.
func TestRunTimeoutExpires(t *testing.T) {
	r := NewRunner()

	start := time.Now()
	_, err := r.RunTimeout(context.Background(), 100*time.Millisecond, "", "sleep", "5")
	if err == nil {
		t.Fatal("Expected timeout error")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected DeadlineExceeded in chain, got: %v", err)
	}
	if time.Since(start) > 3*time.Second {
		t.Error("Command was not killed at the deadline")
	}
}

// TestRunTimeoutFastCommand tests that a fast command is unaffected.
func TestRunTimeoutFastCommand(t *testing.T) {
	r := NewRunner()

	out, err := r.RunTimeout(context.Background(), 5*time.Second, "", "echo", "ok")
	if err != nil {
		t.Fatalf("RunTimeout failed: %v", err)
	}
	if !strings.Contains(string(out), "ok") {
		t.Errorf("Unexpected output: %q", out)
	}
}

// TestLookPath tests tool presence detection.
func TestLookPath(t *testing.T) {
	r := NewRunner()

	if err := r.LookPath("sh"); err != nil {
		t.Errorf("Expected sh on PATH: %v", err)
	}
	if err := r.LookPath("definitely-not-a-real-tool-xyz"); err == nil {
		t.Error("Expected error for missing tool")
	}
}
