package vm

import (
	"github.com/hexaflex/chip8/arch"
)

// Instruction defines decoded instruction data.
type Instruction struct {
	IP     int    // Address the instruction was fetched from.
	Word   uint16 // Raw instruction word.
	Opcode int    // Opcode identifier from the arch table.
	N      [4]int // The word's nibbles, most significant first.
}

// Decode fetches and decodes the instruction at the given address.
// Words matching no form in the dispatch table yield an
// unknown-instruction error.
func (i *Instruction) Decode(m Memory, pc int) error {
	i.IP = pc
	i.Word = uint16(m.U16(pc))
	i.N = arch.Nibbles(i.Word)

	instr, ok := arch.Lookup(i.N)
	if !ok {
		i.Opcode = -1
		return NewError(i, "unknown instruction %04x", i.Word)
	}

	i.Opcode = instr.Opcode
	return nil
}

// X returns the register index in the second nibble.
func (i *Instruction) X() int { return i.N[1] }

// Y returns the register index in the third nibble.
func (i *Instruction) Y() int { return i.N[2] }

// Nib returns the 4-bit immediate in the last nibble.
func (i *Instruction) Nib() int { return i.N[3] }

// KK returns the byte immediate in the lower two nibbles.
func (i *Instruction) KK() int { return i.N[2]<<4 | i.N[3] }

// NNN returns the 12-bit address in the lower three nibbles.
func (i *Instruction) NNN() int { return i.N[1]<<8 | i.N[2]<<4 | i.N[3] }
