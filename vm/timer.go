package vm

import "time"

// ClockFrequency is the nominal instruction rate of the machine in Hz.
const ClockFrequency = 500

// TimerPeriod is the interval between timer decrements: the base
// instruction frequency scaled by a 0.12 ratio, approximating 60 Hz.
// Integer math reproduces the reference interpreter's 16ms period.
const TimerPeriod = time.Millisecond * (1000 * 100 / (ClockFrequency * 12))

// Timer is an 8-bit countdown timer decremented at a fixed wall-clock
// rate. It stores the timestamp of its last decrement, so the decay
// rate is independent of how often Update is called.
type Timer struct {
	value byte
	stamp time.Time
}

// Reset clears the timer and restarts its decrement interval.
func (t *Timer) Reset() {
	t.value = 0
	t.stamp = time.Now()
}

// Set loads a new countdown value.
func (t *Timer) Set(v byte) {
	t.value = v
}

// Value returns the current countdown value.
func (t *Timer) Value() byte {
	return t.value
}

// Update decrements the timer once if a full period elapsed since the
// last decrement. The value saturates at zero.
func (t *Timer) Update() {
	if time.Since(t.stamp) < TimerPeriod {
		return
	}
	t.stamp = time.Now()
	if t.value > 0 {
		t.value--
	}
}
