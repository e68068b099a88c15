// Package asm implements a small two-pass assembler for the machine's
// instruction set.
//
// Source is line based. A line holds an optional label, followed by
// either an instruction or a db data directive. Comments run from a
// semicolon to the end of the line. Every instruction form has its own
// mnemonic, so operand shapes never have to disambiguate anything.
//
//	start:
//	    mov  v0, 5
//	    movi sprite
//	    drw  v0, v1, 3
//	    jmp  start
//	sprite:
//	    db $80, $c0, $80
package asm

import (
	"strconv"
	"strings"

	"github.com/hexaflex/chip8/arch"
	"github.com/hexaflex/chip8/vm"
)

// statement is one parsed source line with its running address.
type statement struct {
	line int
	addr int
	name string
	args []string
}

// Assembler turns source text into a raw program image, origined at
// the machine's load offset.
type Assembler struct {
	symbols map[string]int
}

// New creates a new assembler.
func New() *Assembler {
	return &Assembler{}
}

// Assemble translates the given source into a program image.
func (a *Assembler) Assemble(source string) ([]byte, error) {
	a.symbols = make(map[string]int)

	stmts, err := a.parse(source)
	if err != nil {
		return nil, err
	}

	return a.encode(stmts)
}

// parse splits the source into statements and performs the first pass:
// assigning addresses and collecting label definitions.
func (a *Assembler) parse(source string) ([]statement, error) {
	var stmts []statement
	addr := vm.ProgramStart

	for num, text := range strings.Split(source, "\n") {
		line := num + 1

		if i := strings.IndexByte(text, ';'); i >= 0 {
			text = text[:i]
		}
		text = strings.TrimSpace(text)

		// Leading labels, possibly followed by code on the same line.
		for {
			i := strings.IndexByte(text, ':')
			if i < 0 {
				break
			}

			label := strings.TrimSpace(text[:i])
			if !isIdent(label) {
				return nil, NewError(line, "invalid label name %q", label)
			}
			if _, ok := a.symbols[label]; ok {
				return nil, NewError(line, "duplicate label %q", label)
			}

			a.symbols[label] = addr
			text = strings.TrimSpace(text[i+1:])
		}

		if len(text) == 0 {
			continue
		}

		st := statement{line: line, addr: addr}
		if i := strings.IndexAny(text, " \t"); i < 0 {
			st.name = strings.ToLower(text)
		} else {
			st.name = strings.ToLower(text[:i])
			for _, arg := range strings.Split(text[i+1:], ",") {
				st.args = append(st.args, strings.TrimSpace(arg))
			}
		}

		switch {
		case st.name == "db":
			addr += len(st.args)
		default:
			addr += 2
		}

		if addr > vm.MemoryCapacity {
			return nil, NewError(line, "program exceeds memory capacity")
		}

		stmts = append(stmts, st)
	}

	return stmts, nil
}

// encode performs the second pass: resolving operands and emitting code.
func (a *Assembler) encode(stmts []statement) ([]byte, error) {
	var out []byte

	for _, st := range stmts {
		if st.name == "db" {
			for _, arg := range st.args {
				v, err := a.value(st.line, arg, 0xff)
				if err != nil {
					return nil, err
				}
				out = append(out, byte(v))
			}
			continue
		}

		instr, ok := arch.ByName(st.name)
		if !ok {
			return nil, NewError(st.line, "unknown instruction %q", st.name)
		}
		if len(st.args) != instr.Format.Argc() {
			return nil, NewError(st.line, "%s expects %d operand(s), have %d",
				instr.Name, instr.Format.Argc(), len(st.args))
		}

		argv, err := a.operands(st.line, instr.Format, st.args)
		if err != nil {
			return nil, err
		}

		word := instr.Encode(argv...)
		out = append(out, byte(word>>8), byte(word))
	}

	return out, nil
}

// operands resolves the statement's operand strings per the form's format.
func (a *Assembler) operands(line int, format arch.Format, args []string) ([]int, error) {
	var argv []int

	add := func(v int, err error) error {
		if err != nil {
			return err
		}
		argv = append(argv, v)
		return nil
	}

	var err error
	switch format {
	case arch.FormatAddr:
		err = add(a.value(line, args[0], 0xfff))
	case arch.FormatRegByte:
		if err = add(a.register(line, args[0])); err == nil {
			err = add(a.value(line, args[1], 0xff))
		}
	case arch.FormatRegReg:
		if err = add(a.register(line, args[0])); err == nil {
			err = add(a.register(line, args[1]))
		}
	case arch.FormatRegRegNib:
		if err = add(a.register(line, args[0])); err == nil {
			if err = add(a.register(line, args[1])); err == nil {
				err = add(a.value(line, args[2], 0xf))
			}
		}
	case arch.FormatReg:
		err = add(a.register(line, args[0]))
	}

	if err != nil {
		return nil, err
	}
	return argv, nil
}

// register resolves a register operand.
func (a *Assembler) register(line int, name string) (int, error) {
	index, ok := arch.RegisterIndex(name)
	if !ok {
		return 0, NewError(line, "expected a register, have %q", name)
	}
	return index, nil
}

// value resolves a numeric operand: a $-prefixed hex literal, a decimal
// literal or a label reference. The result must fit the given limit.
func (a *Assembler) value(line int, text string, max int) (int, error) {
	var v int64
	var err error

	switch {
	case strings.HasPrefix(text, "$"):
		v, err = strconv.ParseInt(text[1:], 16, 32)
	case isIdent(text):
		addr, ok := a.symbols[text]
		if !ok {
			return 0, NewError(line, "undefined label %q", text)
		}
		v = int64(addr)
	default:
		v, err = strconv.ParseInt(text, 10, 32)
	}

	if err != nil {
		return 0, NewError(line, "invalid value %q", text)
	}
	if v < 0 || v > int64(max) {
		return 0, NewError(line, "value %s out of range 0..%d", text, max)
	}

	return int(v), nil
}

// isIdent reports whether s is a valid label name: letters, digits and
// underscores, not starting with a digit.
func isIdent(s string) bool {
	if len(s) == 0 || (s[0] >= '0' && s[0] <= '9') {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_':
		default:
			return false
		}
	}
	return true
}
