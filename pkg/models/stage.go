package models

// Stage represents a candidate's position in the validation pipeline.
// Stages advance in strict order; any failure moves directly to
// StageRejected and no later stage is attempted.
type Stage string

const (
	// StageDiscovered indicates the candidate was produced by search.
	StageDiscovered Stage = "discovered"
	// StageAcquired indicates a local copy exists on disk.
	StageAcquired Stage = "acquired"
	// StageStructurallyValid indicates the descriptor and layout checks passed.
	StageStructurallyValid Stage = "structurally_valid"
	// StageBuilt indicates the main sources compiled.
	StageBuilt Stage = "built"
	// StageTested indicates the test suite passed within its time budget.
	StageTested Stage = "tested"
	// StageValidated indicates the candidate passed every stage and is retained.
	StageValidated Stage = "validated"
	// StageRejected indicates the candidate failed some stage and was discarded.
	StageRejected Stage = "rejected"
)

// Valid returns true if the stage is a known value.
func (s Stage) Valid() bool {
	switch s {
	case StageDiscovered, StageAcquired, StageStructurallyValid,
		StageBuilt, StageTested, StageValidated, StageRejected:
		return true
	default:
		return false
	}
}

// Terminal returns true if no further transitions are possible.
func (s Stage) Terminal() bool {
	return s == StageValidated || s == StageRejected
}

// next maps each non-terminal stage to its successor.
var next = map[Stage]Stage{
	StageDiscovered:        StageAcquired,
	StageAcquired:          StageStructurallyValid,
	StageStructurallyValid: StageBuilt,
	StageBuilt:             StageTested,
	StageTested:            StageValidated,
}

// Advance returns the stage that follows s on success.
// Returns false if s is terminal or unknown.
func (s Stage) Advance() (Stage, bool) {
	n, ok := next[s]
	return n, ok
}
