package arch

import "testing"

func TestLookup(t *testing.T) {
	// One word per instruction form, including the literal forms that
	// share a prefix with wildcarded ones.
	tests := []struct {
		word   uint16
		opcode int
	}{
		{0x0000, HALT},
		{0x00e0, CLS},
		{0x00ee, RET},
		{0x1234, JMP},
		{0x2345, CALL},
		{0x3a12, SEQ},
		{0x4a12, SNE},
		{0x5ab0, SEQR},
		{0x6a12, MOV},
		{0x7a12, ADD},
		{0x8ab0, MOVR},
		{0x8ab1, OR},
		{0x8ab2, AND},
		{0x8ab3, XOR},
		{0x8ab4, ADDC},
		{0x8ab5, SUBB},
		{0x8ab6, SHR},
		{0x8ab7, SUBR},
		{0x8abe, SHL},
		{0x9ab0, SNER},
		{0xa123, MOVI},
		{0xb123, JMPV},
		{0xca12, RND},
		{0xdab5, DRW},
		{0xea9e, SKP},
		{0xeaa1, SKNP},
		{0xfa07, MOVD},
		{0xfa0a, WKEY},
		{0xfa15, DELAY},
		{0xfa18, SOUND},
		{0xfa1e, ADDI},
		{0xfa29, FONT},
		{0xfa33, BCD},
		{0xfa55, STM},
		{0xfa65, LDM},
	}

	for _, tc := range tests {
		instr, ok := Lookup(Nibbles(tc.word))
		if !ok {
			t.Fatalf("%04x: expected a match, have none", tc.word)
		}
		if instr.Opcode != tc.opcode {
			t.Fatalf("%04x: expected %s, have %s",
				tc.word, Instructions[tc.opcode].Name, instr.Name)
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	for _, word := range []uint16{0x0123, 0x00e1, 0x5ab1, 0x8ab8, 0x9ab1, 0xea00, 0xfaff} {
		if instr, ok := Lookup(Nibbles(word)); ok {
			t.Fatalf("%04x: expected no match, have %s", word, instr.Name)
		}
	}
}

func TestNibbles(t *testing.T) {
	n := Nibbles(0x1234)
	if n != [4]int{1, 2, 3, 4} {
		t.Fatalf("expected [1 2 3 4], have %v", n)
	}
}

func TestEncode(t *testing.T) {
	tests := []struct {
		opcode int
		argv   []int
		word   uint16
	}{
		{HALT, nil, 0x0000},
		{CLS, nil, 0x00e0},
		{JMP, []int{0x345}, 0x1345},
		{SEQ, []int{0xa, 0x12}, 0x3a12},
		{MOVR, []int{0xa, 0xb}, 0x8ab0},
		{SUBR, []int{0xa, 0xb}, 0x8ab7},
		{DRW, []int{0xa, 0xb, 0x5}, 0xdab5},
		{BCD, []int{0xa}, 0xfa33},
	}

	for _, tc := range tests {
		instr, ok := ByOpcode(tc.opcode)
		if !ok {
			t.Fatalf("unknown opcode %d", tc.opcode)
		}
		if word := instr.Encode(tc.argv...); word != tc.word {
			t.Fatalf("%s: expected %04x, have %04x", instr.Name, tc.word, word)
		}
	}
}

func TestEncodeLookupRoundtrip(t *testing.T) {
	// Every form must decode back to itself when encoded with benign
	// operands.
	for i := range Instructions {
		instr := &Instructions[i]
		word := instr.Encode(1, 2, 3)

		have, ok := Lookup(Nibbles(word))
		if !ok {
			t.Fatalf("%s: %04x matches no form", instr.Name, word)
		}
		if have.Opcode != instr.Opcode {
			t.Fatalf("%s: %04x decodes to %s", instr.Name, word, have.Name)
		}
	}
}

func TestByName(t *testing.T) {
	instr, ok := ByName("MOVI")
	if !ok || instr.Opcode != MOVI {
		t.Fatal("expected names to resolve case-insensitively")
	}

	if _, ok = ByName("nope"); ok {
		t.Fatal("expected an unknown name to resolve to nothing")
	}
}

func TestRegisterNames(t *testing.T) {
	for i := 0; i < RegisterCount; i++ {
		name := RegisterName(i)

		index, ok := RegisterIndex(name)
		if !ok || index != i {
			t.Fatalf("%s: expected index %d, have %d", name, i, index)
		}
	}

	if _, ok := RegisterIndex("vg"); ok {
		t.Fatal("expected an unknown register to resolve to nothing")
	}
}
