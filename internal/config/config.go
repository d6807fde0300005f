// Package config handles configuration loading and management for reposcout.
// It supports XDG config paths, project-level overrides, and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for reposcout. An explicit *Config is
// handed to the search client and pipeline coordinator at construction;
// deep components never read ambient environment themselves.
type Config struct {
	GitHub   GitHubConfig   `mapstructure:"github"`
	Search   SearchConfig   `mapstructure:"search"`
	Dest     DestConfig     `mapstructure:"dest"`
	Timeouts TimeoutsConfig `mapstructure:"timeouts"`
}

// GitHubConfig holds GitHub API settings.
type GitHubConfig struct {
	// Token is the optional bearer token for the search API.
	Token string `mapstructure:"token"`
}

// SearchConfig holds search pagination settings.
type SearchConfig struct {
	// MaxResults caps the total number of candidates collected.
	MaxResults int `mapstructure:"max_results"`
	// MaxPages caps how many result pages are requested.
	MaxPages int `mapstructure:"max_pages"`
	// PageDelay is the pause between page requests to respect rate limits.
	PageDelay time.Duration `mapstructure:"page_delay"`
}

// DestConfig holds filesystem layout settings.
type DestConfig struct {
	// Root is the directory retained repositories are cloned under.
	Root string `mapstructure:"root"`
}

// TimeoutsConfig holds per-stage timeout settings.
type TimeoutsConfig struct {
	// Build bounds the compile-only invocation; zero means unbounded.
	Build time.Duration `mapstructure:"build"`
	// Test bounds the test-suite invocation.
	Test time.Duration `mapstructure:"test"`
}

// Load loads configuration from XDG paths, project overrides, and environment variables.
// Precedence (highest to lowest):
// 1. Environment variables (GITHUB_TOKEN)
// 2. Project config (.reposcout.yaml in current directory or parent)
// 3. User config (~/.config/reposcout/config.yaml)
// 4. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	// Load user config from XDG path
	userConfigDir := getUserConfigDir()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(userConfigDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading user config: %w", err)
		}
	}

	// Load project config if present
	projectConfig := findProjectConfig()
	if projectConfig != "" {
		projectViper := viper.New()
		projectViper.SetConfigFile(projectConfig)
		if err := projectViper.ReadInConfig(); err == nil {
			if err := v.MergeConfigMap(projectViper.AllSettings()); err != nil {
				return nil, fmt.Errorf("merging project config: %w", err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// Environment variable wins over any file value.
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		cfg.GitHub.Token = token
	} else {
		cfg.GitHub.Token = os.ExpandEnv(cfg.GitHub.Token)
	}

	return cfg, nil
}

// LoadFrom loads configuration from an explicit file path plus defaults.
// Used by tests and the --config flag.
func LoadFrom(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the current configuration to the user config file.
func Save(cfg *Config) error {
	userConfigDir := getUserConfigDir()
	if err := os.MkdirAll(userConfigDir, 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	configPath := filepath.Join(userConfigDir, "config.yaml")

	v := viper.New()
	v.SetConfigFile(configPath)

	v.Set("github.token", cfg.GitHub.Token)
	v.Set("search.max_results", cfg.Search.MaxResults)
	v.Set("search.max_pages", cfg.Search.MaxPages)
	v.Set("search.page_delay", cfg.Search.PageDelay.String())
	v.Set("dest.root", cfg.Dest.Root)
	v.Set("timeouts.build", cfg.Timeouts.Build.String())
	v.Set("timeouts.test", cfg.Timeouts.Test.String())

	return v.WriteConfig()
}

// GetUserConfigPath returns the path to the user config file.
func GetUserConfigPath() string {
	return filepath.Join(getUserConfigDir(), "config.yaml")
}

// setDefaults configures default values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("github.token", "")

	v.SetDefault("search.max_results", 50)
	v.SetDefault("search.max_pages", 10)
	v.SetDefault("search.page_delay", "2s")

	v.SetDefault("dest.root", "harvested-repos")

	v.SetDefault("timeouts.build", "0s")
	v.SetDefault("timeouts.test", "5m")
}

// getUserConfigDir returns the XDG config directory for reposcout.
func getUserConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "reposcout")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "reposcout")
	}
	return filepath.Join(home, ".config", "reposcout")
}

// findProjectConfig searches for .reposcout.yaml in the current directory and parents.
func findProjectConfig() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		configPath := filepath.Join(cwd, ".reposcout.yaml")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(cwd)
		if parent == cwd {
			break
		}
		cwd = parent
	}

	return ""
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		GitHub: GitHubConfig{
			Token: "",
		},
		Search: SearchConfig{
			MaxResults: 50,
			MaxPages:   10,
			PageDelay:  2 * time.Second,
		},
		Dest: DestConfig{
			Root: "harvested-repos",
		},
		Timeouts: TimeoutsConfig{
			Build: 0,
			Test:  5 * time.Minute,
		},
	}
}
