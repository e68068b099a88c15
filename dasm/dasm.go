// Package dasm implements a disassembler for raw program images.
package dasm

import (
	"fmt"

	"github.com/hexaflex/chip8/arch"
	"github.com/hexaflex/chip8/vm"
)

// Line is one disassembled statement.
type Line struct {
	Addr int    // Memory address of the word.
	Word uint16 // Raw instruction word.
	Code string // Formatted assembly code.
}

func (l Line) String() string {
	return fmt.Sprintf("%04x  %04x  %s", l.Addr, l.Word, l.Code)
}

// Disassemble decodes a raw program image, origined at the machine's
// load offset, into listing lines. Words matching no instruction form
// are rendered as data directives, since program images freely mix
// code and sprite data.
func Disassemble(rom []byte) []Line {
	lines := make([]Line, 0, (len(rom)+1)/2)

	for i := 0; i+1 < len(rom); i += 2 {
		word := uint16(rom[i])<<8 | uint16(rom[i+1])
		lines = append(lines, Line{
			Addr: vm.ProgramStart + i,
			Word: word,
			Code: Format(word),
		})
	}

	if len(rom)%2 != 0 {
		b := rom[len(rom)-1]
		lines = append(lines, Line{
			Addr: vm.ProgramStart + len(rom) - 1,
			Word: uint16(b),
			Code: fmt.Sprintf("db $%02x", b),
		})
	}

	return lines
}

// Format renders a single instruction word as assembly code.
// Unknown words render as a dw directive.
func Format(word uint16) string {
	n := arch.Nibbles(word)

	instr, ok := arch.Lookup(n)
	if !ok {
		return fmt.Sprintf("dw $%04x", word)
	}

	x := arch.RegisterName(n[1])
	y := arch.RegisterName(n[2])

	switch instr.Format {
	case arch.FormatAddr:
		return fmt.Sprintf("%s $%03x", instr.Name, word&0xfff)
	case arch.FormatRegByte:
		return fmt.Sprintf("%s %s, $%02x", instr.Name, x, word&0xff)
	case arch.FormatRegReg:
		return fmt.Sprintf("%s %s, %s", instr.Name, x, y)
	case arch.FormatRegRegNib:
		return fmt.Sprintf("%s %s, %s, %d", instr.Name, x, y, n[3])
	case arch.FormatReg:
		return fmt.Sprintf("%s %s", instr.Name, x)
	}

	return instr.Name
}
