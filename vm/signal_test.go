package vm

import "testing"

func TestSignalEmptyRead(t *testing.T) {
	var s Signal

	if key, state := s.Read(); key != 0 || state != 0 {
		t.Fatalf("expected (0, 0), have (%d, %d)", key, state)
	}
}

func TestSignalSendRead(t *testing.T) {
	var s Signal
	s.Send(5, 1)

	if key, state := s.Read(); key != 5 || state != 1 {
		t.Fatalf("expected (5, 1), have (%d, %d)", key, state)
	}

	// A read drains the slot.
	if key, state := s.Read(); key != 0 || state != 0 {
		t.Fatalf("expected (0, 0), have (%d, %d)", key, state)
	}
}

func TestSignalOverwrite(t *testing.T) {
	var s Signal
	s.Send(5, 1)
	s.Send(5, 0)
	s.Send(7, 1)

	// Only the last transition survives.
	if key, state := s.Read(); key != 7 || state != 1 {
		t.Fatalf("expected (7, 1), have (%d, %d)", key, state)
	}
}
