package vm

const (
	// MemoryCapacity is the size of the addressable memory bank in bytes.
	MemoryCapacity = 0x1000

	// ProgramStart is the address at which program images are loaded.
	// The space below it is reserved for interpreter and font data.
	ProgramStart = 0x200
)

// Memory defines the system's memory bank.
//
// All accessors wrap addresses modulo the bank size, which keeps bulk
// copies, sprite reads and BCD writes total over their input domain.
type Memory []byte

// U8 returns the 8-bit value at the given address.
func (m Memory) U8(addr int) int {
	return int(m[addr&(MemoryCapacity-1)])
}

// SetU8 sets the 8-bit value at the given address.
func (m Memory) SetU8(addr, value int) {
	m[addr&(MemoryCapacity-1)] = byte(value)
}

// U16 returns the big-endian 16-bit value at the given address.
func (m Memory) U16(addr int) int {
	return m.U8(addr)<<8 | m.U8(addr+1)
}

// SetU16 sets the big-endian 16-bit value at the given address.
func (m Memory) SetU16(addr, value int) {
	m.SetU8(addr, value>>8)
	m.SetU8(addr+1, value)
}

// Write writes len(p) bytes from p into memory, starting at the given address.
func (m Memory) Write(address int, p []byte) {
	for i, b := range p {
		m.SetU8(address+i, int(b))
	}
}

// Read reads len(p) bytes from memory into p, starting at the given address.
func (m Memory) Read(address int, p []byte) {
	for i := range p {
		p[i] = byte(m.U8(address + i))
	}
}
