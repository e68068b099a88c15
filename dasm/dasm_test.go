package dasm

import (
	"testing"

	"github.com/hexaflex/chip8/vm"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		word uint16
		want string
	}{
		{0x0000, "halt"},
		{0x00e0, "cls"},
		{0x00ee, "ret"},
		{0x1234, "jmp $234"},
		{0x2345, "call $345"},
		{0x3a12, "seq va, $12"},
		{0x6a12, "mov va, $12"},
		{0x8ab0, "movr va, vb"},
		{0x8ab7, "subr va, vb"},
		{0x8ab6, "shr va"},
		{0xa123, "movi $123"},
		{0xca12, "rnd va, $12"},
		{0xdab5, "drw va, vb, 5"},
		{0xea9e, "skp va"},
		{0xfa33, "bcd va"},
		{0xffff, "dw $ffff"},
		{0x0123, "dw $0123"},
	}

	for _, tc := range tests {
		if have := Format(tc.word); have != tc.want {
			t.Fatalf("%04x: expected %q, have %q", tc.word, tc.want, have)
		}
	}
}

func TestDisassemble(t *testing.T) {
	rom := []byte{0x60, 0x05, 0x61, 0x03, 0x80, 0x14, 0x00, 0x00}
	want := []string{
		"0200  6005  mov v0, $05",
		"0202  6103  mov v1, $03",
		"0204  8014  addc v0, v1",
		"0206  0000  halt",
	}

	lines := Disassemble(rom)
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, have %d", len(want), len(lines))
	}

	for i, w := range want {
		if have := lines[i].String(); have != w {
			t.Fatalf("line %d: expected %q, have %q", i, w, have)
		}
	}

	if lines[0].Addr != vm.ProgramStart {
		t.Fatalf("expected origin %04x, have %04x", vm.ProgramStart, lines[0].Addr)
	}
}

func TestDisassembleOddSize(t *testing.T) {
	lines := Disassemble([]byte{0x00, 0xe0, 0x80})

	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, have %d", len(lines))
	}
	if lines[1].Code != "db $80" {
		t.Fatalf("expected a data directive, have %q", lines[1].Code)
	}
}
