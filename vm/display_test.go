package vm

import "testing"

func TestDisplayToggle(t *testing.T) {
	var d Display

	if d.Toggle(3, 4) {
		t.Fatal("expected the cell to be clear before the first toggle")
	}
	if d.Pixel(3, 4) != 1 {
		t.Fatal("expected the cell to be set after the first toggle")
	}

	if !d.Toggle(3, 4) {
		t.Fatal("expected the cell to be set before the second toggle")
	}
	if d.Pixel(3, 4) != 0 {
		t.Fatal("expected the cell to be clear after the second toggle")
	}
}

func TestDisplayWrap(t *testing.T) {
	var d Display

	d.Toggle(DisplayWidth, 1)
	d.Toggle(2, DisplayHeight)
	d.Toggle(-1, -1)

	if d.Pixel(0, 1) != 1 {
		t.Fatal("expected (64, 1) to wrap to (0, 1)")
	}
	if d.Pixel(2, 0) != 1 {
		t.Fatal("expected (2, 32) to wrap to (2, 0)")
	}
	if d.Pixel(DisplayWidth-1, DisplayHeight-1) != 1 {
		t.Fatal("expected (-1, -1) to wrap to (63, 31)")
	}
}

func TestDisplayClear(t *testing.T) {
	var d Display

	for y := 0; y < DisplayHeight; y++ {
		for x := 0; x < DisplayWidth; x++ {
			d.Toggle(x, y)
		}
	}

	d.Clear()

	for i, v := range d.Pixels() {
		if v != 0 {
			t.Fatalf("expected cell %d to be clear", i)
		}
	}
}
