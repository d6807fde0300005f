package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"reposcout/internal/acquire"
	"reposcout/internal/config"
	"reposcout/internal/exec"
	"reposcout/internal/git"
	"reposcout/internal/logging"
	"reposcout/internal/pipeline"
	"reposcout/internal/search"
	"reposcout/internal/state"
	"reposcout/internal/structure"
	"reposcout/internal/validation"
)

var (
	huntToken      string
	huntDest       string
	huntMaxResults int
	huntMaxPages   int
	huntSearchOnly bool
)

var huntCmd = &cobra.Command{
	Use:   "hunt",
	Short: "Search for candidate repositories and validate them",
	Long: `Search GitHub for Java 8 Maven repositories using JUnit 5, then run
each candidate through the validation pipeline.

Each candidate is processed in search order, one at a time:
  1. Shallow clone into the destination root (skipped if already present)
  2. Structural checks on pom.xml and the test source tree
  3. mvn clean compile -DskipTests
  4. mvn test under the configured time budget

A candidate failing any stage is rejected and its clone is deleted.
Survivors stay on disk and are appended to validated_repos.txt.

Examples:
  reposcout hunt                           # Defaults from config
  reposcout hunt --max-results 20          # Cap the haul
  reposcout hunt --dest /data/repos        # Explicit destination root
  reposcout hunt --search-only             # List candidates, validate nothing
  GITHUB_TOKEN=ghp_xxx reposcout hunt      # Authenticated search`,
	RunE: runHunt,
}

func init() {
	huntCmd.Flags().StringVar(&huntToken, "token", "", "GitHub token (defaults to GITHUB_TOKEN or config)")
	huntCmd.Flags().StringVar(&huntDest, "dest", "", "Destination root for retained repositories")
	huntCmd.Flags().IntVar(&huntMaxResults, "max-results", 0, "Maximum candidates to collect")
	huntCmd.Flags().IntVar(&huntMaxPages, "max-pages", 0, "Maximum search pages to request")
	huntCmd.Flags().BoolVar(&huntSearchOnly, "search-only", false, "Print candidates without running the pipeline")
}

func runHunt(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	applyHuntFlags(cfg)

	runner := exec.NewRunner()
	if err := CheckPrerequisites(runner); err != nil {
		printStatus("✗", "Missing prerequisites", color.FgRed)
		return err
	}

	destRoot, err := filepath.Abs(cfg.Dest.Root)
	if err != nil {
		return fmt.Errorf("resolving destination root: %w", err)
	}
	if err := os.MkdirAll(destRoot, 0755); err != nil {
		return fmt.Errorf("creating destination root %s: %w", destRoot, err)
	}

	log, err := logging.New(filepath.Join(destRoot, "reposcout.log"))
	if err != nil {
		return fmt.Errorf("opening run log: %w", err)
	}
	defer log.Close()

	fmt.Printf("Searching for candidates (max %d over %d pages)...\n",
		cfg.Search.MaxResults, cfg.Search.MaxPages)

	client := search.NewClient(cfg, log)
	candidates, err := client.Search(context.Background(), cfg.Search.MaxResults, cfg.Search.MaxPages)
	if err != nil {
		log.Errorf("search failed: %v", err)
		return fmt.Errorf("search failed: %w", err)
	}

	if len(candidates) == 0 {
		log.Infof("search returned no candidates")
		fmt.Println("No candidates found.")
		return nil
	}
	printStatus("✓", fmt.Sprintf("Found %d candidates", len(candidates)), color.FgGreen)

	if huntSearchOnly {
		for _, c := range candidates {
			fmt.Println(c.String())
		}
		return nil
	}

	// History DB is bookkeeping; a broken DB degrades to no history.
	var db *state.DB
	if opened, dbErr := state.OpenAt(destRoot); dbErr != nil {
		log.Warnf("history database unavailable: %v", dbErr)
	} else if migErr := opened.Migrate(); migErr != nil {
		log.Warnf("history migration failed: %v", migErr)
		opened.Close()
	} else {
		db = opened
		defer db.Close()
	}

	runID := uuid.New().String()[:8]
	run := &state.Run{ID: runID, StartedAt: time.Now(), Total: len(candidates)}
	if db != nil {
		if err := db.CreateRun(run); err != nil {
			log.Warnf("could not create run record: %v", err)
		}
	}

	pending := state.NewPendingList(destRoot)
	installExitCleanup(pending, log)

	coordinator := pipeline.New(
		acquire.New(git.NewRunner(runner), log),
		structure.Validate,
		validation.NewBuilder(runner, cfg.Timeouts.Build, log),
		validation.NewTester(runner, cfg.Timeouts.Test, log),
		state.NewValidatedList(destRoot),
		pending,
		outcomeStore(db),
		destRoot,
		log,
	)

	fmt.Printf("Running pipeline over %d candidates...\n\n", len(candidates))
	report, err := coordinator.Run(context.Background(), runID, candidates)
	if err != nil {
		return fmt.Errorf("pipeline aborted: %w", err)
	}

	run.Succeeded = report.Succeeded
	run.Failed = report.Failed
	if db != nil {
		if err := db.FinishRun(run); err != nil {
			log.Warnf("could not finish run record: %v", err)
		}
	}

	log.Infof("run %s: %s", runID, report.Summary())
	fmt.Println()
	if report.Succeeded > 0 {
		printStatus("✓", report.Summary(), color.FgGreen)
	} else {
		printStatus("✗", report.Summary(), color.FgYellow)
	}
	fmt.Printf("Retained repositories: %s\n", destRoot)
	fmt.Printf("Validated list:        %s\n", state.NewValidatedList(destRoot).Path())
	return nil
}

// applyHuntFlags overlays explicit flags onto the loaded config.
func applyHuntFlags(cfg *config.Config) {
	if huntToken != "" {
		cfg.GitHub.Token = huntToken
	}
	if huntDest != "" {
		cfg.Dest.Root = huntDest
	}
	if huntMaxResults > 0 {
		cfg.Search.MaxResults = huntMaxResults
	}
	if huntMaxPages > 0 {
		cfg.Search.MaxPages = huntMaxPages
	}
}

// outcomeStore adapts a possibly-nil *state.DB to the coordinator's
// OutcomeStore; a typed nil inside a non-nil interface would defeat the
// coordinator's nil check.
func outcomeStore(db *state.DB) pipeline.OutcomeStore {
	if db == nil {
		return nil
	}
	return db
}

// installExitCleanup removes transient artifacts when the process is
// terminated externally. Local copies already written to the retention
// directory are left alone.
func installExitCleanup(pending *state.PendingList, log *logging.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Warnf("terminated by %s, cleaning up transient artifacts", sig)
		pending.Remove()
		log.Close()
		os.Exit(1)
	}()
}
