package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"reposcout/internal/config"
	"reposcout/internal/state"
)

var (
	cleanupForce   bool
	cleanupDryRun  bool
	cleanupVerbose bool
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove clones not on the validated list",
	Long: `Remove stale artifacts from the destination root.

This command:
  - Removes the transient pending list left by an interrupted run
  - Lists clone directories that are not on the validated list
  - Removes those directories after confirmation

Directories recorded in validated_repos.txt are never touched.

Use this after a crash or interrupted run to clean up.

Examples:
  reposcout cleanup              # Interactive cleanup with confirmation
  reposcout cleanup --force      # Skip confirmation prompt
  reposcout cleanup --dry-run    # Show what would be removed
  reposcout cleanup -v           # Verbose output showing each removal`,
	RunE: runCleanup,
}

func init() {
	cleanupCmd.Flags().BoolVarP(&cleanupForce, "force", "f", false, "Skip confirmation prompt")
	cleanupCmd.Flags().BoolVar(&cleanupDryRun, "dry-run", false, "Show what would be removed without removing")
	cleanupCmd.Flags().BoolVarP(&cleanupVerbose, "verbose", "v", false, "Show each directory as it's removed")
}

func runCleanup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	destRoot, err := filepath.Abs(cfg.Dest.Root)
	if err != nil {
		return fmt.Errorf("resolving destination root: %w", err)
	}
	if _, err := os.Stat(destRoot); os.IsNotExist(err) {
		fmt.Println("Destination root does not exist; nothing to clean.")
		return nil
	}

	pending := state.NewPendingList(destRoot)
	if _, err := os.Stat(pending.Path()); err == nil {
		if cleanupDryRun {
			fmt.Printf("Would remove pending list %s\n", pending.Path())
		} else {
			if err := pending.Remove(); err != nil {
				return err
			}
			fmt.Println("Removed stale pending list.")
		}
	}

	stale, err := findStaleClones(destRoot)
	if err != nil {
		return err
	}
	if len(stale) == 0 {
		fmt.Println("No stale clone directories found.")
		return nil
	}

	fmt.Printf("Found %d stale clone directories:\n", len(stale))
	for _, dir := range stale {
		fmt.Printf("  %s\n", dir)
	}

	if cleanupDryRun {
		return nil
	}
	if !cleanupForce && !confirm("Remove these directories?") {
		fmt.Println("Aborted.")
		return nil
	}

	for _, dir := range stale {
		if err := os.RemoveAll(dir); err != nil {
			fmt.Fprintf(os.Stderr, "could not remove %s: %v\n", dir, err)
			continue
		}
		if cleanupVerbose {
			fmt.Printf("removed %s\n", dir)
		}
	}
	fmt.Printf("Removed %d directories.\n", len(stale))
	return nil
}

// findStaleClones lists clone directories under destRoot whose names do
// not correspond to any validated entry.
func findStaleClones(destRoot string) ([]string, error) {
	entries, err := state.NewValidatedList(destRoot).Load()
	if err != nil {
		return nil, err
	}
	keep := make(map[string]bool)
	for _, c := range entries {
		keep[filepath.Base(strings.TrimSuffix(c.CloneURL, ".git"))] = true
	}

	dirEntries, err := os.ReadDir(destRoot)
	if err != nil {
		return nil, fmt.Errorf("reading destination root: %w", err)
	}

	var stale []string
	for _, e := range dirEntries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if !keep[e.Name()] {
			stale = append(stale, filepath.Join(destRoot, e.Name()))
		}
	}
	return stale, nil
}

// confirm prompts for a yes/no answer on stdin.
func confirm(prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
