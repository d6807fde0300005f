package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"reposcout/internal/exec"
)

// CheckPrerequisites verifies that every external tool the pipeline shells
// out to is available in PATH. A missing tool aborts before any work.
func CheckPrerequisites(look exec.LookPather) error {
	if err := look.LookPath("git"); err != nil {
		return fmt.Errorf("git not found in PATH\n\n" +
			"reposcout needs git to fetch candidate repositories.\n" +
			"Install it from https://git-scm.com/downloads")
	}
	if err := look.LookPath("mvn"); err != nil {
		return fmt.Errorf("mvn not found in PATH\n\n" +
			"reposcout needs Maven to build and test candidate repositories.\n" +
			"Install it from https://maven.apache.org/install.html")
	}
	return nil
}

var rootCmd = &cobra.Command{
	Use:   "reposcout",
	Short: "Repository harvester & validation pipeline",
	Long: `reposcout discovers Java 8 Maven repositories using JUnit 5 via the
GitHub search API, clones each candidate, and keeps only those that
survive the full validation pipeline:

  acquire -> structural checks -> build -> tests

Rejected repositories are deleted; validated ones are retained under the
destination root and recorded in validated_repos.txt.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// printStatus prints a status line with color
func printStatus(symbol, message string, colorAttr color.Attribute) {
	c := color.New(colorAttr)
	fmt.Printf("%s %s\n", c.Sprint(symbol), message)
}

func init() {
	rootCmd.AddCommand(huntCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(cleanupCmd)
	rootCmd.AddCommand(versionCmd)
}
