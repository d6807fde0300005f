package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Search.MaxResults != 50 {
		t.Errorf("expected default max_results 50, got %d", cfg.Search.MaxResults)
	}

	if cfg.Search.MaxPages != 10 {
		t.Errorf("expected default max_pages 10, got %d", cfg.Search.MaxPages)
	}

	if cfg.Search.PageDelay != 2*time.Second {
		t.Errorf("expected page delay 2s, got %v", cfg.Search.PageDelay)
	}

	if cfg.Dest.Root != "harvested-repos" {
		t.Errorf("expected dest root 'harvested-repos', got %q", cfg.Dest.Root)
	}

	if cfg.Timeouts.Test != 5*time.Minute {
		t.Errorf("expected test timeout 5m, got %v", cfg.Timeouts.Test)
	}

	if cfg.Timeouts.Build != 0 {
		t.Errorf("expected unbounded build timeout, got %v", cfg.Timeouts.Build)
	}
}

func TestLoadFromPath(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
github:
  token: ghp_testtoken
search:
  max_results: 10
  max_pages: 3
  page_delay: 500ms
dest:
  root: /tmp/repos
timeouts:
  test: 10m
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	if cfg.GitHub.Token != "ghp_testtoken" {
		t.Errorf("expected token from file, got %q", cfg.GitHub.Token)
	}
	if cfg.Search.MaxResults != 10 {
		t.Errorf("expected max_results 10, got %d", cfg.Search.MaxResults)
	}
	if cfg.Search.PageDelay != 500*time.Millisecond {
		t.Errorf("expected page delay 500ms, got %v", cfg.Search.PageDelay)
	}
	if cfg.Timeouts.Test != 10*time.Minute {
		t.Errorf("expected test timeout 10m, got %v", cfg.Timeouts.Test)
	}

	// Unspecified keys fall back to defaults.
	if cfg.Timeouts.Build != 0 {
		t.Errorf("expected default build timeout, got %v", cfg.Timeouts.Build)
	}
}

func TestLoadEnvTokenWins(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "ghp_fromenv")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.GitHub.Token != "ghp_fromenv" {
		t.Errorf("expected env token to win, got %q", cfg.GitHub.Token)
	}
}
