package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"reposcout/internal/config"
	"reposcout/internal/state"
	"reposcout/pkg/models"
)

var (
	historyLimit int
	historyRunID string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past harvest runs",
	Long: `Show past harvest runs recorded in the state database.

Without flags, lists recent runs with their counters.
With --run <id>, shows the per-repository outcomes of one run.

Examples:
  reposcout history             # Recent runs
  reposcout history -n 5        # Last five runs
  reposcout history --run ab12cd34`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "Number of runs to list")
	historyCmd.Flags().StringVar(&historyRunID, "run", "", "Show outcomes for a specific run ID")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	destRoot, err := filepath.Abs(cfg.Dest.Root)
	if err != nil {
		return fmt.Errorf("resolving destination root: %w", err)
	}

	db, err := state.OpenAt(destRoot)
	if err != nil {
		return fmt.Errorf("opening state database: %w", err)
	}
	defer db.Close()
	if err := db.Migrate(); err != nil {
		return fmt.Errorf("migrating state database: %w", err)
	}

	if historyRunID != "" {
		return showRunOutcomes(db, historyRunID)
	}
	return listRuns(db, historyLimit)
}

func listRuns(db *state.DB, limit int) error {
	runs, err := db.ListRuns(limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	for _, r := range runs {
		status := "in progress"
		if r.FinishedAt != nil {
			status = r.FinishedAt.Sub(r.StartedAt).Round(time.Second).String()
		}
		fmt.Printf("%s  %s  total=%d kept=%d rejected=%d  (%s)\n",
			r.ID, r.StartedAt.Format("2006-01-02 15:04"), r.Total, r.Succeeded, r.Failed, status)
	}
	return nil
}

func showRunOutcomes(db *state.DB, runID string) error {
	run, err := db.GetRun(runID)
	if err != nil {
		return err
	}
	if run == nil {
		return fmt.Errorf("no run with ID %s", runID)
	}

	outcomes, err := db.ListOutcomes(runID)
	if err != nil {
		return err
	}

	fmt.Printf("Run %s (%s): total=%d kept=%d rejected=%d\n\n",
		run.ID, run.StartedAt.Format("2006-01-02 15:04"), run.Total, run.Succeeded, run.Failed)
	for _, o := range outcomes {
		if o.Stage == models.StageValidated {
			printStatus("✓", fmt.Sprintf("%s (%s)", o.Name, o.Duration.Round(time.Second)), color.FgGreen)
		} else {
			printStatus("✗", fmt.Sprintf("%s rejected at %s: %s", o.Name, o.FailedAt, o.Reason), color.FgRed)
		}
	}
	return nil
}
