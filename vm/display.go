package vm

// Display dimensions in cells.
const (
	DisplayWidth  = 64
	DisplayHeight = 32
)

// Display is the monochrome framebuffer: a 64x32 plane of single-bit
// cells, addressed with wraparound in both dimensions. Cells are only
// ever toggled, except for Clear which zeroes the whole plane.
type Display struct {
	cells [DisplayWidth * DisplayHeight]byte
}

// Clear zeroes the whole plane.
func (d *Display) Clear() {
	for i := range d.cells {
		d.cells[i] = 0
	}
}

// Toggle flips the cell at (x, y) and reports whether it was set before
// the flip. Coordinates wrap modulo the plane dimensions, so sprites
// drawn near an edge continue on the opposite edge.
func (d *Display) Toggle(x, y int) bool {
	i := d.index(x, y)
	set := d.cells[i] != 0
	d.cells[i] ^= 1
	return set
}

// Pixel returns the state of the cell at (x, y).
func (d *Display) Pixel(x, y int) int {
	return int(d.cells[d.index(x, y)])
}

// Pixels returns the plane contents, row-major, one byte per cell.
// The returned slice is a view into the framebuffer and must be treated
// as read-only by presentation code.
func (d *Display) Pixels() []byte {
	return d.cells[:]
}

func (d *Display) index(x, y int) int {
	x = ((x % DisplayWidth) + DisplayWidth) % DisplayWidth
	y = ((y % DisplayHeight) + DisplayHeight) % DisplayHeight
	return y*DisplayWidth + x
}
