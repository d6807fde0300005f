package state

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"reposcout/pkg/models"
)

// ValidatedListName is the file retained repositories are recorded in,
// relative to the destination root.
const ValidatedListName = "validated_repos.txt"

// PendingListName is the transient per-run working list, relative to the
// destination root.
const PendingListName = ".reposcout/pending.txt"

var validatedHeader = []string{
	"# Repositories that passed every pipeline stage.",
	"# <name> | <clone_url>",
}

// ValidatedList is the durable append-only record of validated repositories.
// Entries are never mutated or removed once written.
type ValidatedList struct {
	path string
}

// NewValidatedList returns the validated list for the destination root.
func NewValidatedList(destRoot string) *ValidatedList {
	return &ValidatedList{path: filepath.Join(destRoot, ValidatedListName)}
}

// Path returns the list file path.
func (l *ValidatedList) Path() string {
	return l.path
}

// Load reads the current entries. A missing file is an empty list.
func (l *ValidatedList) Load() ([]models.Candidate, error) {
	f, err := os.Open(l.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open validated list: %w", err)
	}
	defer f.Close()

	var entries []models.Candidate
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if c, ok := models.ParseCandidate(scanner.Text()); ok {
			entries = append(entries, c)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read validated list: %w", err)
	}
	return entries, nil
}

// Contains reports whether a candidate with the same clone URL is already
// recorded.
func (l *ValidatedList) Contains(c models.Candidate) (bool, error) {
	entries, err := l.Load()
	if err != nil {
		return false, err
	}
	for _, e := range entries {
		if e.CloneURL == c.CloneURL {
			return true, nil
		}
	}
	return false, nil
}

// Append records a validated candidate. The file is created with its
// header on first use; appending an already-recorded clone URL is a no-op
// so re-runs don't duplicate entries.
func (l *ValidatedList) Append(c models.Candidate) error {
	exists, err := l.Contains(c)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return fmt.Errorf("create list directory: %w", err)
	}

	_, statErr := os.Stat(l.path)
	fresh := os.IsNotExist(statErr)

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open validated list: %w", err)
	}
	defer f.Close()

	if fresh {
		for _, line := range validatedHeader {
			fmt.Fprintln(f, line)
		}
		fmt.Fprintf(f, "# Created %s\n", time.Now().Format("2006-01-02"))
	}
	fmt.Fprintln(f, c.String())
	return nil
}

// PendingList is the ordered working list of not-yet-processed candidates.
// It is rewritten as candidates finish and removed at run end, leaving an
// inspectable artifact only while a run is in flight.
type PendingList struct {
	path string
}

// NewPendingList returns the pending list for the destination root.
func NewPendingList(destRoot string) *PendingList {
	return &PendingList{path: filepath.Join(destRoot, filepath.FromSlash(PendingListName))}
}

// Path returns the list file path.
func (p *PendingList) Path() string {
	return p.path
}

// Write replaces the pending list with the given candidates.
func (p *PendingList) Write(candidates []models.Candidate) error {
	if err := os.MkdirAll(filepath.Dir(p.path), 0755); err != nil {
		return fmt.Errorf("create pending directory: %w", err)
	}

	f, err := os.Create(p.path)
	if err != nil {
		return fmt.Errorf("write pending list: %w", err)
	}
	defer f.Close()

	for _, c := range candidates {
		fmt.Fprintf(f, "%s|%s\n", c.Name, c.CloneURL)
	}
	return nil
}

// Load reads the remaining candidates in order. A missing file is empty.
func (p *PendingList) Load() ([]models.Candidate, error) {
	f, err := os.Open(p.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open pending list: %w", err)
	}
	defer f.Close()

	var entries []models.Candidate
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if c, ok := models.ParseCandidate(scanner.Text()); ok {
			entries = append(entries, c)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read pending list: %w", err)
	}
	return entries, nil
}

// Remove deletes the pending list. Safe to call when it does not exist.
func (p *PendingList) Remove() error {
	err := os.Remove(p.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove pending list: %w", err)
	}
	return nil
}
