package buzzer

import "testing"

func TestReadSilence(t *testing.T) {
	d := New()

	p := make([]byte, 64)
	n, err := d.Read(p)

	if err != nil || n != len(p) {
		t.Fatalf("expected a full read, have %d, %v", n, err)
	}
	for i, b := range p {
		if b != 0 {
			t.Fatalf("expected silence, byte %d is %02x", i, b)
		}
	}
}

func TestReadTone(t *testing.T) {
	d := New()
	d.Update(true)

	const period = sampleRate / toneHz

	p := make([]byte, period*4)
	if _, err := d.Read(p); err != nil {
		t.Fatalf("Read failure: %v", err)
	}

	var flips int
	var prev int16

	for i := 0; i < len(p); i += 2 {
		s := int16(uint16(p[i]) | uint16(p[i+1])<<8)
		if s != amplitude && s != -amplitude {
			t.Fatalf("sample %d: expected +-%d, have %d", i/2, amplitude, s)
		}
		if i > 0 && s != prev {
			flips++
		}
		prev = s
	}

	// Two polarity flips per wave period.
	if flips < 3 {
		t.Fatalf("expected a square wave, have %d flips", flips)
	}
}

func TestReadOddLength(t *testing.T) {
	d := New()

	n, err := d.Read(make([]byte, 7))
	if err != nil || n != 6 {
		t.Fatalf("expected a 6 byte read, have %d, %v", n, err)
	}
}
