package main

import (
	"errors"
	"strings"
	"testing"
)

// fakeLook simulates tool availability.
type fakeLook struct {
	missing map[string]bool
}

func (f *fakeLook) LookPath(name string) error {
	if f.missing[name] {
		return errors.New("not found")
	}
	return nil
}

// TestCheckPrerequisitesAllPresent tests the happy path.
func TestCheckPrerequisitesAllPresent(t *testing.T) {
	if err := CheckPrerequisites(&fakeLook{missing: map[string]bool{}}); err != nil {
		t.Errorf("Expected no error, got: %v", err)
	}
}

// TestCheckPrerequisitesMissingGit tests that a missing git aborts with
// install guidance.
func TestCheckPrerequisitesMissingGit(t *testing.T) {
	err := CheckPrerequisites(&fakeLook{missing: map[string]bool{"git": true}})
	if err == nil {
		t.Fatal("Expected error for missing git")
	}
	if !strings.Contains(err.Error(), "git not found") {
		t.Errorf("Unexpected message: %v", err)
	}
}

// TestCheckPrerequisitesMissingMaven tests the mvn check.
func TestCheckPrerequisitesMissingMaven(t *testing.T) {
	err := CheckPrerequisites(&fakeLook{missing: map[string]bool{"mvn": true}})
	if err == nil {
		t.Fatal("Expected error for missing mvn")
	}
	if !strings.Contains(err.Error(), "mvn not found") {
		t.Errorf("Unexpected message: %v", err)
	}
}
