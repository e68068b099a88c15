package vm

import (
	"testing"
	"time"
)

func TestTimerHoldsBelowThreshold(t *testing.T) {
	var tm Timer
	tm.Reset()
	tm.Set(10)

	// Rapid updates inside one period must not change the value.
	for i := 0; i < 100; i++ {
		tm.Update()
	}

	if tm.Value() != 10 {
		t.Fatalf("expected value 10, have %d", tm.Value())
	}
}

func TestTimerDecrementsOncePerPeriod(t *testing.T) {
	var tm Timer
	tm.Reset()
	tm.Set(10)

	tm.stamp = time.Now().Add(-TimerPeriod)

	// One threshold crossing, one decrement, regardless of how often
	// the timer is polled.
	for i := 0; i < 100; i++ {
		tm.Update()
	}

	if tm.Value() != 9 {
		t.Fatalf("expected value 9, have %d", tm.Value())
	}
}

func TestTimerSaturatesAtZero(t *testing.T) {
	var tm Timer
	tm.Reset()
	tm.Set(1)

	for i := 0; i < 3; i++ {
		tm.stamp = time.Now().Add(-TimerPeriod)
		tm.Update()
	}

	if tm.Value() != 0 {
		t.Fatalf("expected value 0, have %d", tm.Value())
	}
}

func TestTimerPeriod(t *testing.T) {
	if TimerPeriod != 16*time.Millisecond {
		t.Fatalf("expected a 16ms period, have %v", TimerPeriod)
	}
}
