package models

import "testing"

// TestParseCandidate tests round-tripping through the list line format.
func TestParseCandidate(t *testing.T) {
	c := Candidate{Name: "octocat/spoon-knife", CloneURL: "https://example.com/octocat/spoon-knife.git"}

	got, ok := ParseCandidate(c.String())
	if !ok {
		t.Fatalf("ParseCandidate(%q) failed", c.String())
	}
	if got != c {
		t.Errorf("ParseCandidate = %+v, want %+v", got, c)
	}

	// Tight variant without surrounding spaces.
	got, ok = ParseCandidate("a/b|https://example.com/a/b.git")
	if !ok || got.Name != "a/b" {
		t.Errorf("ParseCandidate tight variant = %+v, ok=%v", got, ok)
	}
}

// TestParseCandidateRejectsJunk tests that comments, blanks and malformed
// lines are skipped rather than producing partial candidates.
func TestParseCandidateRejectsJunk(t *testing.T) {
	for _, line := range []string{"", "   ", "# header", "no-separator", " | "} {
		if _, ok := ParseCandidate(line); ok {
			t.Errorf("Expected ParseCandidate(%q) to fail", line)
		}
	}
}
