package state

import (
	"path/filepath"
	"testing"
	"time"

	"reposcout/pkg/models"
)

// openTestDB opens a migrated database in a temp dir.
func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.Migrate(); err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}
	return db
}

// TestMigrateIdempotent tests that migrations can be applied twice.
func TestMigrateIdempotent(t *testing.T) {
	db := openTestDB(t)
	if err := db.Migrate(); err != nil {
		t.Fatalf("second Migrate failed: %v", err)
	}
}

// TestRunLifecycle tests create, finish and get for a run.
func TestRunLifecycle(t *testing.T) {
	db := openTestDB(t)

	r := &Run{ID: "run1", StartedAt: time.Now()}
	if err := db.CreateRun(r); err != nil {
		t.Fatalf("CreateRun failed: %v", err)
	}

	r.Total = 3
	r.Succeeded = 1
	r.Failed = 2
	if err := db.FinishRun(r); err != nil {
		t.Fatalf("FinishRun failed: %v", err)
	}

	got, err := db.GetRun("run1")
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if got == nil {
		t.Fatal("Expected run, got nil")
	}
	if got.Total != 3 || got.Succeeded != 1 || got.Failed != 2 {
		t.Errorf("Unexpected counters: %+v", got)
	}
	if got.FinishedAt == nil {
		t.Error("Expected FinishedAt to be set")
	}
}

// TestGetRunMissing tests that an unknown ID returns nil without error.
func TestGetRunMissing(t *testing.T) {
	db := openTestDB(t)

	got, err := db.GetRun("nope")
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if got != nil {
		t.Errorf("Expected nil for missing run, got %+v", got)
	}
}

// TestListRunsOrder tests most-recent-first ordering and the limit.
func TestListRunsOrder(t *testing.T) {
	db := openTestDB(t)

	base := time.Now().Add(-time.Hour)
	for i, id := range []string{"a", "b", "c"} {
		r := &Run{ID: id, StartedAt: base.Add(time.Duration(i) * time.Minute)}
		if err := db.CreateRun(r); err != nil {
			t.Fatalf("CreateRun %s failed: %v", id, err)
		}
	}

	runs, err := db.ListRuns(2)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("Expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != "c" || runs[1].ID != "b" {
		t.Errorf("Expected most recent first, got %s, %s", runs[0].ID, runs[1].ID)
	}
}

// TestOutcomeRecording tests that one row is stored per processed
// candidate and round-trips its fields.
func TestOutcomeRecording(t *testing.T) {
	db := openTestDB(t)

	if err := db.CreateRun(&Run{ID: "run1", StartedAt: time.Now()}); err != nil {
		t.Fatalf("CreateRun failed: %v", err)
	}

	outcomes := []models.Outcome{
		{
			Candidate: models.Candidate{Name: "a/ok", CloneURL: "https://example.com/ok.git"},
			Stage:     models.StageValidated,
			Duration:  1500 * time.Millisecond,
		},
		{
			Candidate: models.Candidate{Name: "a/bad", CloneURL: "https://example.com/bad.git"},
			Stage:     models.StageRejected,
			FailedAt:  models.StageBuilt,
			Reason:    "build failed: exit status 1",
			Duration:  500 * time.Millisecond,
		},
	}
	for _, o := range outcomes {
		if err := db.RecordOutcome("run1", o); err != nil {
			t.Fatalf("RecordOutcome failed: %v", err)
		}
	}

	got, err := db.ListOutcomes("run1")
	if err != nil {
		t.Fatalf("ListOutcomes failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 outcomes, got %d", len(got))
	}
	if got[0].Stage != models.StageValidated || got[0].Name != "a/ok" {
		t.Errorf("Unexpected first outcome: %+v", got[0])
	}
	if got[1].FailedAt != models.StageBuilt || got[1].Reason == "" {
		t.Errorf("Expected failure detail preserved: %+v", got[1])
	}
	if got[1].Duration != 500*time.Millisecond {
		t.Errorf("Expected duration round-trip, got %v", got[1].Duration)
	}
}
