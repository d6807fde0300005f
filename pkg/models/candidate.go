// Package models defines the shared data structures for the harvesting pipeline.
package models

import (
	"fmt"
	"strings"
	"time"
)

// Candidate is a repository identified by search but not yet validated.
// Candidates are immutable once produced and unique by CloneURL.
type Candidate struct {
	// Name is the repository's full name (e.g. "owner/repo").
	Name string `json:"name"`
	// CloneURL is the URI used to fetch the repository.
	CloneURL string `json:"clone_url"`
}

// String returns the candidate in the "<name> | <clone_url>" list format.
func (c Candidate) String() string {
	return fmt.Sprintf("%s | %s", c.Name, c.CloneURL)
}

// ParseCandidate parses a "<name>|<clone_url>" or "<name> | <clone_url>" line.
// Returns false if the line is blank, a comment, or malformed.
func ParseCandidate(line string) (Candidate, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return Candidate{}, false
	}
	parts := strings.SplitN(line, "|", 2)
	if len(parts) != 2 {
		return Candidate{}, false
	}
	c := Candidate{
		Name:     strings.TrimSpace(parts[0]),
		CloneURL: strings.TrimSpace(parts[1]),
	}
	if c.Name == "" || c.CloneURL == "" {
		return Candidate{}, false
	}
	return c, true
}

// Outcome records how a single candidate fared in the pipeline.
type Outcome struct {
	// Candidate is the repository that was processed.
	Candidate Candidate `json:"candidate"`
	// Stage is the terminal stage the candidate reached.
	Stage Stage `json:"stage"`
	// FailedAt is the stage at which processing failed, if any.
	FailedAt Stage `json:"failed_at,omitempty"`
	// Reason explains a rejection; empty for validated candidates.
	Reason string `json:"reason,omitempty"`
	// Duration is the total processing time for this candidate.
	Duration time.Duration `json:"duration"`
}

// Validated reports whether the candidate passed every stage.
func (o Outcome) Validated() bool {
	return o.Stage == StageValidated
}
