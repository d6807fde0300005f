package models

import "testing"

// TestStageValid tests recognition of known and unknown stage values.
func TestStageValid(t *testing.T) {
	valid := []Stage{
		StageDiscovered, StageAcquired, StageStructurallyValid,
		StageBuilt, StageTested, StageValidated, StageRejected,
	}
	for _, s := range valid {
		if !s.Valid() {
			t.Errorf("Expected %q to be valid", s)
		}
	}

	if Stage("compiling").Valid() {
		t.Error("Expected unknown stage to be invalid")
	}
}

// TestStageAdvanceOrder tests that stages advance in the documented order
// and that terminal stages do not advance.
func TestStageAdvanceOrder(t *testing.T) {
	order := []Stage{
		StageDiscovered, StageAcquired, StageStructurallyValid,
		StageBuilt, StageTested, StageValidated,
	}
	for i := 0; i < len(order)-1; i++ {
		got, ok := order[i].Advance()
		if !ok {
			t.Fatalf("Advance from %q failed", order[i])
		}
		if got != order[i+1] {
			t.Errorf("Advance(%q) = %q, want %q", order[i], got, order[i+1])
		}
	}

	if _, ok := StageValidated.Advance(); ok {
		t.Error("Expected no advance from validated")
	}
	if _, ok := StageRejected.Advance(); ok {
		t.Error("Expected no advance from rejected")
	}
}

// TestStageTerminal tests terminal detection.
func TestStageTerminal(t *testing.T) {
	if !StageValidated.Terminal() || !StageRejected.Terminal() {
		t.Error("Expected validated and rejected to be terminal")
	}
	if StageBuilt.Terminal() {
		t.Error("Expected built to be non-terminal")
	}
}
