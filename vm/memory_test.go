package vm

import "testing"

func TestMemoryU16(t *testing.T) {
	m := make(Memory, MemoryCapacity)
	m.SetU16(0x300, 0x1234)

	if m.U8(0x300) != 0x12 || m.U8(0x301) != 0x34 {
		t.Fatal("expected big-endian byte order")
	}
	if m.U16(0x300) != 0x1234 {
		t.Fatalf("expected 0x1234, have %04x", m.U16(0x300))
	}
}

func TestMemoryWrap(t *testing.T) {
	m := make(Memory, MemoryCapacity)
	m.SetU8(MemoryCapacity, 0x42)

	if m.U8(0) != 0x42 {
		t.Fatal("expected addresses to wrap modulo the bank size")
	}
}

func TestMemoryReadWrite(t *testing.T) {
	m := make(Memory, MemoryCapacity)
	m.Write(0x300, []byte{1, 2, 3})

	p := make([]byte, 3)
	m.Read(0x300, p)

	if p[0] != 1 || p[1] != 2 || p[2] != 3 {
		t.Fatalf("expected 1 2 3, have %v", p)
	}
}
