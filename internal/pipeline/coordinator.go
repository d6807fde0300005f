// Package pipeline sequences the validation stages for each candidate and
// keeps the on-disk bookkeeping consistent: a local copy exists if and only
// if its candidate is mid-pipeline or passed every stage.
package pipeline

import (
	"context"
	"errors"
	"os"
	"time"

	"reposcout/internal/logging"
	"reposcout/internal/state"
	"reposcout/pkg/models"
)

// Acquirer fetches a candidate's working tree.
type Acquirer interface {
	Acquire(ctx context.Context, cloneURL, destRoot string) (path string, created bool, err error)
}

// StructureValidator statically checks the acquired copy.
type StructureValidator func(repoPath string) error

// Builder runs the compile-only gate.
type Builder interface {
	Build(ctx context.Context, repoPath string) error
}

// Tester runs the test-suite gate.
type Tester interface {
	Test(ctx context.Context, repoPath string) error
}

// OutcomeStore persists one record per processed candidate. Implemented by
// *state.DB; nil-able so the pipeline works without the history database.
type OutcomeStore interface {
	RecordOutcome(runID string, o models.Outcome) error
}

// Coordinator drives candidates through the stages strictly one at a time,
// in search order, short-circuiting on the first failed stage.
type Coordinator struct {
	acquirer  Acquirer
	validate  StructureValidator
	builder   Builder
	tester    Tester
	validated *state.ValidatedList
	pending   *state.PendingList
	outcomes  OutcomeStore
	destRoot  string
	log       *logging.Logger
}

// New creates a Coordinator. outcomes may be nil to skip history recording.
func New(
	acquirer Acquirer,
	validate StructureValidator,
	builder Builder,
	tester Tester,
	validated *state.ValidatedList,
	pending *state.PendingList,
	outcomes OutcomeStore,
	destRoot string,
	log *logging.Logger,
) *Coordinator {
	return &Coordinator{
		acquirer:  acquirer,
		validate:  validate,
		builder:   builder,
		tester:    tester,
		validated: validated,
		pending:   pending,
		outcomes:  outcomes,
		destRoot:  destRoot,
		log:       log,
	}
}

// Run processes the candidates in order and returns the run report.
// Per-candidate failures never abort the run; they reject that candidate,
// trigger cleanup of its local copy, and are logged with their stage.
func (co *Coordinator) Run(ctx context.Context, runID string, candidates []models.Candidate) (*Report, error) {
	report := &Report{Total: len(candidates)}

	if err := co.pending.Write(candidates); err != nil {
		co.log.Warnf("pipeline: could not write pending list: %v", err)
	}

	for i, c := range candidates {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		outcome := co.processOne(ctx, c)

		if outcome.Validated() {
			report.Succeeded++
			co.log.Infof("pipeline: %s validated", c.Name)
		} else {
			report.Failed++
			co.log.Errorf("pipeline: %s rejected at %s: %s", c.Name, outcome.FailedAt, outcome.Reason)
		}

		if co.outcomes != nil {
			if err := co.outcomes.RecordOutcome(runID, outcome); err != nil {
				co.log.Warnf("pipeline: could not record outcome for %s: %v", c.Name, err)
			}
		}

		if err := co.pending.Write(candidates[i+1:]); err != nil {
			co.log.Warnf("pipeline: could not rewrite pending list: %v", err)
		}
	}

	if err := co.pending.Remove(); err != nil {
		co.log.Warnf("pipeline: could not remove pending list: %v", err)
	}
	return report, nil
}

// processOne walks a single candidate through the stage machine.
func (co *Coordinator) processOne(ctx context.Context, c models.Candidate) models.Outcome {
	start := time.Now()
	stage := models.StageDiscovered
	localPath := ""

	fail := func(failedAt models.Stage, err error) models.Outcome {
		co.cleanup(localPath)
		return models.Outcome{
			Candidate: c,
			Stage:     models.StageRejected,
			FailedAt:  failedAt,
			Reason:    err.Error(),
			Duration:  time.Since(start),
		}
	}

	for !stage.Terminal() {
		target, ok := stage.Advance()
		if !ok {
			return fail(stage, errors.New("no transition from stage "+string(stage)))
		}

		var err error
		switch target {
		case models.StageAcquired:
			localPath, _, err = co.acquirer.Acquire(ctx, c.CloneURL, co.destRoot)
		case models.StageStructurallyValid:
			err = co.validate(localPath)
		case models.StageBuilt:
			err = co.builder.Build(ctx, localPath)
		case models.StageTested:
			err = co.tester.Test(ctx, localPath)
		case models.StageValidated:
			err = co.validated.Append(c)
		}
		if err != nil {
			return fail(target, err)
		}
		stage = target
	}

	return models.Outcome{
		Candidate: c,
		Stage:     stage,
		Duration:  time.Since(start),
	}
}

// cleanup removes a rejected candidate's local copy. No partial or failed
// copies may persist before the next candidate starts.
func (co *Coordinator) cleanup(localPath string) {
	if localPath == "" {
		return
	}
	if err := os.RemoveAll(localPath); err != nil {
		co.log.Warnf("pipeline: could not remove %s: %v", localPath, err)
	}
}
