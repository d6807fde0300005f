package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"reposcout/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Manage configuration",
	Long: `View or modify reposcout configuration.

Without arguments, displays current configuration.
With one argument (key), displays the value for that key.
With two arguments (key value), sets the configuration value.

Configuration is stored at ~/.config/reposcout/config.yaml
Project-specific overrides can be placed in .reposcout.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		switch len(args) {
		case 0:
			displayAllConfig(cfg)
		case 1:
			displayConfigKey(cfg, args[0])
		default:
			setConfigKey(cfg, args[0], args[1])
		}
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write an example config file",
	Long: `Write a commented example configuration with default values to
~/.config/reposcout/config.yaml, unless one already exists.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.GetUserConfigPath()
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists at %s", path)
		}
		if err := writeExampleConfig(path); err != nil {
			return err
		}
		fmt.Printf("Wrote example config to %s\n", path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
}

// displayAllConfig prints all configuration values.
func displayAllConfig(cfg *config.Config) {
	fmt.Printf("github.token: %s\n", config.MaskToken(cfg.GitHub.Token))
	fmt.Printf("search.max_results: %d\n", cfg.Search.MaxResults)
	fmt.Printf("search.max_pages: %d\n", cfg.Search.MaxPages)
	fmt.Printf("search.page_delay: %s\n", cfg.Search.PageDelay)
	fmt.Printf("dest.root: %s\n", cfg.Dest.Root)
	fmt.Printf("timeouts.build: %s\n", cfg.Timeouts.Build)
	fmt.Printf("timeouts.test: %s\n", cfg.Timeouts.Test)
}

// displayConfigKey prints a single configuration value.
func displayConfigKey(cfg *config.Config, key string) {
	value, err := getConfigValue(cfg, key)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(value)
}

// setConfigKey sets a configuration value and saves the config.
func setConfigKey(cfg *config.Config, key, value string) {
	if err := setConfigValue(cfg, key, value); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := config.Save(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving config: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Set %s\n", key)
}

// getConfigValue retrieves a configuration value by dot-notation key.
func getConfigValue(cfg *config.Config, key string) (string, error) {
	switch strings.ToLower(key) {
	case "github.token":
		return config.MaskToken(cfg.GitHub.Token), nil
	case "search.max_results":
		return strconv.Itoa(cfg.Search.MaxResults), nil
	case "search.max_pages":
		return strconv.Itoa(cfg.Search.MaxPages), nil
	case "search.page_delay":
		return cfg.Search.PageDelay.String(), nil
	case "dest.root":
		return cfg.Dest.Root, nil
	case "timeouts.build":
		return cfg.Timeouts.Build.String(), nil
	case "timeouts.test":
		return cfg.Timeouts.Test.String(), nil
	default:
		return "", fmt.Errorf("unknown configuration key: %s", key)
	}
}

// setConfigValue sets a configuration value by dot-notation key.
func setConfigValue(cfg *config.Config, key, value string) error {
	switch strings.ToLower(key) {
	case "github.token":
		cfg.GitHub.Token = value
	case "search.max_results":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value for max_results: %w", err)
		}
		cfg.Search.MaxResults = n
	case "search.max_pages":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value for max_pages: %w", err)
		}
		cfg.Search.MaxPages = n
	case "search.page_delay":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration for page_delay: %w", err)
		}
		cfg.Search.PageDelay = d
	case "dest.root":
		cfg.Dest.Root = value
	case "timeouts.build":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration for timeouts.build: %w", err)
		}
		cfg.Timeouts.Build = d
	case "timeouts.test":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration for timeouts.test: %w", err)
		}
		cfg.Timeouts.Test = d
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	return nil
}

// exampleConfig mirrors the Config shape for the commented template.
type exampleConfig struct {
	GitHub struct {
		Token string `yaml:"token"`
	} `yaml:"github"`
	Search struct {
		MaxResults int    `yaml:"max_results"`
		MaxPages   int    `yaml:"max_pages"`
		PageDelay  string `yaml:"page_delay"`
	} `yaml:"search"`
	Dest struct {
		Root string `yaml:"root"`
	} `yaml:"dest"`
	Timeouts struct {
		Build string `yaml:"build"`
		Test  string `yaml:"test"`
	} `yaml:"timeouts"`
}

// writeExampleConfig renders the defaults as YAML with a leading comment.
func writeExampleConfig(path string) error {
	defaults := config.Default()

	var ex exampleConfig
	ex.GitHub.Token = defaults.GitHub.Token
	ex.Search.MaxResults = defaults.Search.MaxResults
	ex.Search.MaxPages = defaults.Search.MaxPages
	ex.Search.PageDelay = defaults.Search.PageDelay.String()
	ex.Dest.Root = defaults.Dest.Root
	ex.Timeouts.Build = defaults.Timeouts.Build.String()
	ex.Timeouts.Test = defaults.Timeouts.Test.String()

	data, err := yaml.Marshal(&ex)
	if err != nil {
		return fmt.Errorf("marshal example config: %w", err)
	}

	header := "# reposcout configuration. GITHUB_TOKEN overrides github.token.\n"
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, append([]byte(header), data...), 0600); err != nil {
		return fmt.Errorf("write example config: %w", err)
	}
	return nil
}
