package main

import (
	"os"
	"strings"
	"testing"
	"time"

	"reposcout/internal/config"
)

// TestGetConfigValue tests dot-notation lookup including token masking.
func TestGetConfigValue(t *testing.T) {
	cfg := config.Default()
	cfg.GitHub.Token = "ghp_1234567890abcd"

	got, err := getConfigValue(cfg, "search.max_results")
	if err != nil || got != "50" {
		t.Errorf("search.max_results = %q, err=%v", got, err)
	}

	got, err = getConfigValue(cfg, "github.token")
	if err != nil {
		t.Fatalf("github.token lookup failed: %v", err)
	}
	if strings.Contains(got, "1234567890") {
		t.Errorf("Expected masked token, got %q", got)
	}

	if _, err := getConfigValue(cfg, "nope.nope"); err == nil {
		t.Error("Expected error for unknown key")
	}
}

// TestSetConfigValue tests typed parsing of values.
func TestSetConfigValue(t *testing.T) {
	cfg := config.Default()

	if err := setConfigValue(cfg, "search.max_pages", "7"); err != nil {
		t.Fatalf("set max_pages failed: %v", err)
	}
	if cfg.Search.MaxPages != 7 {
		t.Errorf("Expected max_pages 7, got %d", cfg.Search.MaxPages)
	}

	if err := setConfigValue(cfg, "timeouts.test", "90s"); err != nil {
		t.Fatalf("set timeouts.test failed: %v", err)
	}
	if cfg.Timeouts.Test != 90*time.Second {
		t.Errorf("Expected 90s test timeout, got %v", cfg.Timeouts.Test)
	}

	if err := setConfigValue(cfg, "search.max_results", "many"); err == nil {
		t.Error("Expected error for non-numeric max_results")
	}
	if err := setConfigValue(cfg, "bogus", "1"); err == nil {
		t.Error("Expected error for unknown key")
	}
}

// TestWriteExampleConfig tests that the rendered template parses back
// with default values.
func TestWriteExampleConfig(t *testing.T) {
	path := t.TempDir() + "/config.yaml"

	if err := writeExampleConfig(path); err != nil {
		t.Fatalf("writeExampleConfig failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !strings.HasPrefix(string(data), "#") {
		t.Error("Expected leading comment in example config")
	}

	cfg, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.Search.MaxResults != config.Default().Search.MaxResults {
		t.Errorf("Round-trip changed max_results: %d", cfg.Search.MaxResults)
	}
	if cfg.Timeouts.Test != config.Default().Timeouts.Test {
		t.Errorf("Round-trip changed test timeout: %v", cfg.Timeouts.Test)
	}
}
