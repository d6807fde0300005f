package pipeline

import "fmt"

// Report summarizes one run. It is computed from the coordinator's
// counters and lives only for console output.
type Report struct {
	// Total is the number of candidates processed.
	Total int
	// Succeeded is the number of candidates that reached validation.
	Succeeded int
	// Failed is the number of rejected candidates.
	Failed int
}

// SuccessRate returns the fraction of candidates validated, 0 for an
// empty run.
func (r *Report) SuccessRate() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Succeeded) / float64(r.Total)
}

// Summary renders the report as a single console line.
func (r *Report) Summary() string {
	return fmt.Sprintf("processed %d, kept %d, rejected %d (%.0f%% success)",
		r.Total, r.Succeeded, r.Failed, r.SuccessRate()*100)
}
