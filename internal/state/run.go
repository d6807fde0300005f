package state

import (
	"database/sql"
	"fmt"
	"time"

	"reposcout/pkg/models"
)

// Run represents one invocation of the harvest pipeline.
type Run struct {
	ID         string     `json:"id"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	Total      int        `json:"total"`
	Succeeded  int        `json:"succeeded"`
	Failed     int        `json:"failed"`
}

// OutcomeRecord is a stored per-candidate outcome tied to a run.
type OutcomeRecord struct {
	RunID      string        `json:"run_id"`
	Name       string        `json:"name"`
	CloneURL   string        `json:"clone_url"`
	Stage      models.Stage  `json:"stage"`
	FailedAt   models.Stage  `json:"failed_at,omitempty"`
	Reason     string        `json:"reason,omitempty"`
	Duration   time.Duration `json:"duration"`
	RecordedAt time.Time     `json:"recorded_at"`
}

// CreateRun inserts a new run row.
func (db *DB) CreateRun(r *Run) error {
	_, err := db.Exec(`
		INSERT INTO runs (id, started_at, total, succeeded, failed)
		VALUES (?, ?, ?, ?, ?)
	`, r.ID, formatTime(r.StartedAt), r.Total, r.Succeeded, r.Failed)
	if err != nil {
		return fmt.Errorf("create run: %w", err)
	}
	return nil
}

// FinishRun stores the final counters and completion time for a run.
func (db *DB) FinishRun(r *Run) error {
	now := time.Now()
	r.FinishedAt = &now
	_, err := db.Exec(`
		UPDATE runs SET finished_at = ?, total = ?, succeeded = ?, failed = ?
		WHERE id = ?
	`, formatTime(now), r.Total, r.Succeeded, r.Failed, r.ID)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}

// GetRun retrieves a run by ID. Returns nil when not found.
func (db *DB) GetRun(id string) (*Run, error) {
	row := db.QueryRow(`
		SELECT id, started_at, finished_at, total, succeeded, failed
		FROM runs WHERE id = ?
	`, id)

	var r Run
	var startedAt string
	var finishedAt sql.NullString
	err := row.Scan(&r.ID, &startedAt, &finishedAt, &r.Total, &r.Succeeded, &r.Failed)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	r.StartedAt, _ = parseTime(startedAt)
	if finishedAt.Valid {
		t, _ := parseTime(finishedAt.String)
		r.FinishedAt = &t
	}
	return &r, nil
}

// ListRuns returns runs most recent first, up to limit (0 for all).
func (db *DB) ListRuns(limit int) ([]Run, error) {
	query := `
		SELECT id, started_at, finished_at, total, succeeded, failed
		FROM runs ORDER BY started_at DESC
	`
	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = db.Query(query+" LIMIT ?", limit)
	} else {
		rows, err = db.Query(query)
	}
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var startedAt string
		var finishedAt sql.NullString
		if err := rows.Scan(&r.ID, &startedAt, &finishedAt, &r.Total, &r.Succeeded, &r.Failed); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.StartedAt, _ = parseTime(startedAt)
		if finishedAt.Valid {
			t, _ := parseTime(finishedAt.String)
			r.FinishedAt = &t
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// RecordOutcome appends a per-candidate outcome for a run.
func (db *DB) RecordOutcome(runID string, o models.Outcome) error {
	_, err := db.Exec(`
		INSERT INTO outcomes (run_id, name, clone_url, stage, failed_at, reason, duration_ms, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, runID, o.Candidate.Name, o.Candidate.CloneURL, string(o.Stage), string(o.FailedAt),
		o.Reason, o.Duration.Milliseconds(), formatTime(time.Now()))
	if err != nil {
		return fmt.Errorf("record outcome: %w", err)
	}
	return nil
}

// ListOutcomes returns the outcomes recorded for a run, in insertion order.
func (db *DB) ListOutcomes(runID string) ([]OutcomeRecord, error) {
	rows, err := db.Query(`
		SELECT run_id, name, clone_url, stage, failed_at, reason, duration_ms, recorded_at
		FROM outcomes WHERE run_id = ? ORDER BY rowid
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("list outcomes: %w", err)
	}
	defer rows.Close()

	var outcomes []OutcomeRecord
	for rows.Next() {
		var o OutcomeRecord
		var stage, failedAt string
		var durationMS int64
		var recordedAt string
		if err := rows.Scan(&o.RunID, &o.Name, &o.CloneURL, &stage, &failedAt, &o.Reason, &durationMS, &recordedAt); err != nil {
			return nil, fmt.Errorf("scan outcome: %w", err)
		}
		o.Stage = models.Stage(stage)
		o.FailedAt = models.Stage(failedAt)
		o.Duration = time.Duration(durationMS) * time.Millisecond
		o.RecordedAt, _ = parseTime(recordedAt)
		outcomes = append(outcomes, o)
	}
	return outcomes, rows.Err()
}
