// Package arch defines the machine's instruction set along with
// some related helper functions.
package arch

import "strings"

// Known opcodes. One identifier per instruction form.
const (
	HALT  = iota // 0000 end of program.
	CLS          // 00E0 clear the display.
	RET          // 00EE return from subroutine.
	JMP          // 1nnn jump to address.
	CALL         // 2nnn call subroutine.
	SEQ          // 3xkk skip next if vx == kk.
	SNE          // 4xkk skip next if vx != kk.
	SEQR         // 5xy0 skip next if vx == vy.
	MOV          // 6xkk vx = kk.
	ADD          // 7xkk vx += kk, no flag.
	MOVR         // 8xy0 vx = vy.
	OR           // 8xy1 vx |= vy.
	AND          // 8xy2 vx &= vy.
	XOR          // 8xy3 vx ^= vy.
	ADDC         // 8xy4 vx += vy, carry into vf.
	SUBB         // 8xy5 vx -= vy, borrow into vf.
	SHR          // 8xy6 vx >>= 1, lsb into vf.
	SUBR         // 8xy7 vx = vy - vx, no flag.
	SHL          // 8xyE vx <<= 1, msb into vf.
	SNER         // 9xy0 skip next if vx != vy.
	MOVI         // Annn i = nnn.
	JMPV         // Bnnn jump to nnn + v0.
	RND          // Cxkk vx = random byte & kk.
	DRW          // Dxyn draw n-row sprite from i at (vx, vy).
	SKP          // Ex9E skip next if key vx is pressed.
	SKNP         // ExA1 skip next if key vx is not pressed.
	MOVD         // Fx07 vx = delay timer.
	WKEY         // Fx0A wait for a key press, store key in vx.
	DELAY        // Fx15 delay timer = vx.
	SOUND        // Fx18 sound timer = vx.
	ADDI         // Fx1E i += vx.
	FONT         // Fx29 i = glyph address for digit vx.
	BCD          // Fx33 memory[i..i+3] = bcd(vx).
	STM          // Fx55 memory[i..] = v0..vx.
	LDM          // Fx65 v0..vx = memory[i..].
)

// Any matches any nibble in an instruction pattern.
const Any = -1

// Format describes the operand encoding of an instruction form.
type Format int

// Known operand formats.
const (
	FormatNone      Format = iota // No operands.
	FormatAddr                    // 12-bit address in the lower three nibbles.
	FormatRegByte                 // Register in nibble 1, byte in the lower two.
	FormatRegReg                  // Registers in nibbles 1 and 2.
	FormatRegRegNib               // Registers in nibbles 1 and 2, 4-bit value in nibble 3.
	FormatReg                     // Register in nibble 1.
)

// Argc returns the number of operands encoded by the format.
func (f Format) Argc() int {
	switch f {
	case FormatAddr, FormatReg:
		return 1
	case FormatRegByte, FormatRegReg:
		return 2
	case FormatRegRegNib:
		return 3
	}
	return 0
}

// Instruction describes a single instruction form.
type Instruction struct {
	Opcode  int     // Opcode identifier.
	Name    string  // Mnemonic.
	Pattern [4]int8 // Nibble match pattern, most significant first.
	Format  Format  // Operand encoding.
}

// Instructions holds every known instruction form.
//
// Lookup scans the table front to back, so forms with literal nibbles
// must precede forms that wildcard the same prefix. This is what keeps
// 00E0/00EE/0000 and the 8xy_/Ex__/Fx__ families unambiguous.
var Instructions = []Instruction{
	{CLS, "cls", [4]int8{0x0, 0x0, 0xe, 0x0}, FormatNone},
	{RET, "ret", [4]int8{0x0, 0x0, 0xe, 0xe}, FormatNone},
	{HALT, "halt", [4]int8{0x0, 0x0, 0x0, 0x0}, FormatNone},
	{JMP, "jmp", [4]int8{0x1, Any, Any, Any}, FormatAddr},
	{CALL, "call", [4]int8{0x2, Any, Any, Any}, FormatAddr},
	{SEQ, "seq", [4]int8{0x3, Any, Any, Any}, FormatRegByte},
	{SNE, "sne", [4]int8{0x4, Any, Any, Any}, FormatRegByte},
	{SEQR, "seqr", [4]int8{0x5, Any, Any, 0x0}, FormatRegReg},
	{MOV, "mov", [4]int8{0x6, Any, Any, Any}, FormatRegByte},
	{ADD, "add", [4]int8{0x7, Any, Any, Any}, FormatRegByte},
	{MOVR, "movr", [4]int8{0x8, Any, Any, 0x0}, FormatRegReg},
	{OR, "or", [4]int8{0x8, Any, Any, 0x1}, FormatRegReg},
	{AND, "and", [4]int8{0x8, Any, Any, 0x2}, FormatRegReg},
	{XOR, "xor", [4]int8{0x8, Any, Any, 0x3}, FormatRegReg},
	{ADDC, "addc", [4]int8{0x8, Any, Any, 0x4}, FormatRegReg},
	{SUBB, "subb", [4]int8{0x8, Any, Any, 0x5}, FormatRegReg},
	{SHR, "shr", [4]int8{0x8, Any, Any, 0x6}, FormatReg},
	{SUBR, "subr", [4]int8{0x8, Any, Any, 0x7}, FormatRegReg},
	{SHL, "shl", [4]int8{0x8, Any, Any, 0xe}, FormatReg},
	{SNER, "sner", [4]int8{0x9, Any, Any, 0x0}, FormatRegReg},
	{MOVI, "movi", [4]int8{0xa, Any, Any, Any}, FormatAddr},
	{JMPV, "jmpv", [4]int8{0xb, Any, Any, Any}, FormatAddr},
	{RND, "rnd", [4]int8{0xc, Any, Any, Any}, FormatRegByte},
	{DRW, "drw", [4]int8{0xd, Any, Any, Any}, FormatRegRegNib},
	{SKP, "skp", [4]int8{0xe, Any, 0x9, 0xe}, FormatReg},
	{SKNP, "sknp", [4]int8{0xe, Any, 0xa, 0x1}, FormatReg},
	{MOVD, "movd", [4]int8{0xf, Any, 0x0, 0x7}, FormatReg},
	{WKEY, "wkey", [4]int8{0xf, Any, 0x0, 0xa}, FormatReg},
	{DELAY, "delay", [4]int8{0xf, Any, 0x1, 0x5}, FormatReg},
	{SOUND, "sound", [4]int8{0xf, Any, 0x1, 0x8}, FormatReg},
	{ADDI, "addi", [4]int8{0xf, Any, 0x1, 0xe}, FormatReg},
	{FONT, "font", [4]int8{0xf, Any, 0x2, 0x9}, FormatReg},
	{BCD, "bcd", [4]int8{0xf, Any, 0x3, 0x3}, FormatReg},
	{STM, "stm", [4]int8{0xf, Any, 0x5, 0x5}, FormatReg},
	{LDM, "ldm", [4]int8{0xf, Any, 0x6, 0x5}, FormatReg},
}

// Nibbles decomposes an instruction word into its four 4-bit fields,
// most significant first.
func Nibbles(word uint16) [4]int {
	return [4]int{
		int(word >> 12),
		int(word>>8) & 0xf,
		int(word>>4) & 0xf,
		int(word) & 0xf,
	}
}

// Lookup returns the instruction form matching the given nibbles.
// Returns false if no form matches.
func Lookup(n [4]int) (*Instruction, bool) {
	for i := range Instructions {
		if Instructions[i].match(n) {
			return &Instructions[i], true
		}
	}
	return nil, false
}

// ByOpcode returns the instruction form for the given opcode identifier.
// Returns false if the opcode is not recognized.
func ByOpcode(opcode int) (*Instruction, bool) {
	for i := range Instructions {
		if Instructions[i].Opcode == opcode {
			return &Instructions[i], true
		}
	}
	return nil, false
}

// ByName returns the instruction form with the given mnemonic.
// Returns false if the name is not recognized.
func ByName(name string) (*Instruction, bool) {
	name = strings.ToLower(name)
	for i := range Instructions {
		if Instructions[i].Name == name {
			return &Instructions[i], true
		}
	}
	return nil, false
}

// Name returns the mnemonic for the given opcode identifier.
// Returns false if the opcode is not recognized.
func Name(opcode int) (string, bool) {
	instr, ok := ByOpcode(opcode)
	if !ok {
		return "", false
	}
	return instr.Name, true
}

// Encode builds the instruction word for the form using the given operands.
// Operand order and count follow the form's Format: an address, a register
// index and byte, two register indices, two registers and a nibble, or a
// single register. Surplus operands are ignored, missing ones read as zero.
func (i *Instruction) Encode(argv ...int) uint16 {
	arg := func(n int) int {
		if n < len(argv) {
			return argv[n]
		}
		return 0
	}

	word := i.base()

	switch i.Format {
	case FormatAddr:
		word |= uint16(arg(0) & 0xfff)
	case FormatRegByte:
		word |= uint16(arg(0)&0xf)<<8 | uint16(arg(1)&0xff)
	case FormatRegReg:
		word |= uint16(arg(0)&0xf)<<8 | uint16(arg(1)&0xf)<<4
	case FormatRegRegNib:
		word |= uint16(arg(0)&0xf)<<8 | uint16(arg(1)&0xf)<<4 | uint16(arg(2)&0xf)
	case FormatReg:
		word |= uint16(arg(0)&0xf) << 8
	}

	return word
}

// base returns the instruction word with all wildcard nibbles zeroed.
func (i *Instruction) base() uint16 {
	var word uint16
	for _, p := range i.Pattern {
		word <<= 4
		if p != Any {
			word |= uint16(p)
		}
	}
	return word
}

func (i *Instruction) match(n [4]int) bool {
	for j, p := range i.Pattern {
		if p != Any && int(p) != n[j] {
			return false
		}
	}
	return true
}
