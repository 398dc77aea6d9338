package vault

import "testing"

func TestSpinnerLifecycle(t *testing.T) {
	var s SyncState

	if s.Syncing() {
		t.Fatal("Syncing() = true on zero state")
	}
	if s.Spinner() != "" {
		t.Errorf("Spinner() = %q while idle, want empty", s.Spinner())
	}

	s.Start()
	if !s.Syncing() {
		t.Error("Syncing() = false after Start")
	}
	first := s.Spinner()
	if first == "" {
		t.Fatal("Spinner() empty while syncing")
	}

	s.Advance()
	if s.Spinner() == first {
		t.Error("Advance() did not move the spinner frame")
	}

	// Frames cycle back to the start.
	for i := 0; i < len(spinnerFrames)-1; i++ {
		s.Advance()
	}
	if s.Spinner() != first {
		t.Errorf("spinner did not wrap: %q vs %q", s.Spinner(), first)
	}

	s.Stop()
	if s.Syncing() {
		t.Error("Syncing() = true after Stop")
	}
}

func TestAdvanceWhileIdleIsNoop(t *testing.T) {
	var s SyncState
	s.Advance()
	if s.Spinner() != "" {
		t.Errorf("Spinner() = %q after idle Advance", s.Spinner())
	}
}
