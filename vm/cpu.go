// Package vm implements the interpreter core: all machine state plus
// the fetch-decode-execute engine driving it.
package vm

import (
	"io"
	"math/rand"
	"time"

	"github.com/pkg/errors"

	"github.com/hexaflex/chip8/arch"
)

// KeyCount is the number of logical keys tracked by the key state table.
const KeyCount = 9

// TraceFunc represents a callback handler for debug trace output.
type TraceFunc func(*Instruction)

// CPU implements the interpreter. It owns all mutable machine state
// exclusively; input reaches it only through the signal channel and
// output leaves it only through the display and sound timer accessors.
// It is driven by repeated calls to Cycle and never blocks.
type CPU struct {
	memory  Memory
	display Display
	signals Signal
	delay   Timer
	sound   Timer
	stack   []int
	rng     *rand.Rand
	trace   TraceFunc
	instr   Instruction
	regs    [arch.RegisterCount]byte
	keys    [KeyCount + 1]bool // Indexed by key id, slot 0 unused.
	pc      int
	pointer int
}

// New creates a new CPU in power-on state.
// Optionally with the given debug trace handler.
func New(trace TraceFunc) *CPU {
	if trace == nil {
		trace = func(*Instruction) { /* nop */ }
	}

	c := &CPU{
		memory: make(Memory, MemoryCapacity),
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		trace:  trace,
	}

	c.Reset()
	return c
}

// Reset restores power-on state: zeroed memory, registers, stack,
// display and key table, the built-in font seeded below the load
// offset and the program counter at the load offset.
func (c *CPU) Reset() {
	for i := range c.memory {
		c.memory[i] = 0
	}

	c.memory.Write(0, glyphs[:])
	c.regs = [arch.RegisterCount]byte{}
	c.keys = [KeyCount + 1]bool{}
	c.stack = c.stack[:0]
	c.pc = ProgramStart
	c.pointer = 0
	c.display.Clear()
	c.delay.Reset()
	c.sound.Reset()
}

// Load copies a raw program image into memory at the load offset.
// Returns an error if the image does not fit.
func (c *CPU) Load(rom []byte) error {
	if len(rom) > MemoryCapacity-ProgramStart {
		return errors.Errorf("program is %d bytes, only %d fit", len(rom), MemoryCapacity-ProgramStart)
	}

	c.memory.Write(ProgramStart, rom)
	return nil
}

// Seed re-seeds the random number generator.
func (c *CPU) Seed(seed int64) {
	c.rng = rand.New(rand.NewSource(seed))
}

// Memory returns the cpu's internal memory bank.
func (c *CPU) Memory() Memory {
	return c.memory
}

// Display returns the framebuffer for presentation adapters.
func (c *CPU) Display() *Display {
	return &c.display
}

// Signals returns the signal channel input adapters send key
// transitions to.
func (c *CPU) Signals() *Signal {
	return &c.signals
}

// DelayTimer returns the current delay timer value.
func (c *CPU) DelayTimer() byte {
	return c.delay.Value()
}

// SoundTimer returns the current sound timer value. A tone should play
// while it is non-zero.
func (c *CPU) SoundTimer() byte {
	return c.sound.Value()
}

// Register returns the value of general purpose register v0..vf.
func (c *CPU) Register(index int) byte {
	return c.regs[index&0xf]
}

// PC returns the current program counter.
func (c *CPU) PC() int {
	return c.pc
}

// Pointer returns the current index pointer.
func (c *CPU) Pointer() int {
	return c.pointer
}

// Cycle performs exactly one fetch-decode-execute-timer-update step.
//
// It returns io.EOF when the program reaches its end, and a *Error for
// an unknown instruction word or a return with an empty call stack.
// These conditions are fatal; the interpreter is not expected to resume
// after one of them.
func (c *CPU) Cycle() error {
	instr := &c.instr

	if err := instr.Decode(c.memory, c.pc); err != nil {
		return err
	}

	// The program counter is advanced before dispatch, so jump and
	// skip handlers operate on the next-instruction baseline.
	c.pc += 2
	c.trace(instr)

	switch instr.Opcode {
	case arch.HALT:
		return io.EOF

	case arch.CLS:
		c.display.Clear()
	case arch.RET:
		if len(c.stack) == 0 {
			return NewError(instr, "return with empty call stack")
		}
		c.pc = c.stack[len(c.stack)-1]
		c.stack = c.stack[:len(c.stack)-1]
	case arch.JMP:
		c.pc = instr.NNN()
	case arch.CALL:
		c.stack = append(c.stack, c.pc)
		c.pc = instr.NNN()
	case arch.JMPV:
		c.pc = (instr.NNN() + int(c.regs[0])) & 0xffff

	case arch.SEQ:
		c.skipIf(c.regs[instr.X()] == byte(instr.KK()))
	case arch.SNE:
		c.skipIf(c.regs[instr.X()] != byte(instr.KK()))
	case arch.SEQR:
		c.skipIf(c.regs[instr.X()] == c.regs[instr.Y()])
	case arch.SNER:
		c.skipIf(c.regs[instr.X()] != c.regs[instr.Y()])

	case arch.MOV:
		c.regs[instr.X()] = byte(instr.KK())
	case arch.ADD:
		c.regs[instr.X()] += byte(instr.KK())
	case arch.MOVR:
		c.regs[instr.X()] = c.regs[instr.Y()]
	case arch.OR:
		c.regs[instr.X()] |= c.regs[instr.Y()]
	case arch.AND:
		c.regs[instr.X()] &= c.regs[instr.Y()]
	case arch.XOR:
		c.regs[instr.X()] ^= c.regs[instr.Y()]
	case arch.ADDC:
		x, y := c.regs[instr.X()], c.regs[instr.Y()]
		c.regs[instr.X()] = x + y
		c.setFlag(int(x)+int(y) > 0xff)
	case arch.SUBB:
		x, y := c.regs[instr.X()], c.regs[instr.Y()]
		c.regs[instr.X()] = x - y
		c.setFlag(x < y)
	case arch.SUBR:
		// Wrapping vy - vx. Unlike subb, this form leaves the flag
		// register alone.
		c.regs[instr.X()] = c.regs[instr.Y()] - c.regs[instr.X()]
	case arch.SHR:
		x := c.regs[instr.X()]
		c.regs[arch.Flags] = x & 1
		c.regs[instr.X()] = x >> 1
	case arch.SHL:
		x := c.regs[instr.X()]
		c.regs[arch.Flags] = x >> 7
		c.regs[instr.X()] = x << 1

	case arch.MOVI:
		c.pointer = instr.NNN()
	case arch.ADDI:
		c.pointer = (c.pointer + int(c.regs[instr.X()])) & 0xffff
	case arch.FONT:
		c.pointer = int(c.regs[instr.X()]) * GlyphSize

	case arch.RND:
		c.regs[instr.X()] = byte(c.rng.Intn(0x100)) & byte(instr.KK())
	case arch.DRW:
		c.draw(instr.X(), instr.Y(), instr.Nib())

	case arch.SKP:
		c.skipIf(c.pressed(c.regs[instr.X()]))
	case arch.SKNP:
		c.skipIf(!c.pressed(c.regs[instr.X()]))
	case arch.WKEY:
		c.waitKey(instr.X())

	case arch.MOVD:
		c.regs[instr.X()] = c.delay.Value()
	case arch.DELAY:
		c.delay.Set(c.regs[instr.X()])
	case arch.SOUND:
		c.sound.Set(c.regs[instr.X()])

	case arch.BCD:
		v := int(c.regs[instr.X()])
		c.memory.SetU8(c.pointer, v/100)
		c.memory.SetU8(c.pointer+1, v/10%10)
		c.memory.SetU8(c.pointer+2, v%10)
	case arch.STM:
		for i := 0; i <= instr.X(); i++ {
			c.memory.SetU8(c.pointer+i, int(c.regs[i]))
		}
	case arch.LDM:
		for i := 0; i <= instr.X(); i++ {
			c.regs[i] = byte(c.memory.U8(c.pointer + i))
		}
	}

	c.delay.Update()
	c.sound.Update()
	c.drainSignals()
	return nil
}

// draw XORs an n-row sprite read from memory at the index pointer onto
// the display at (vx, vy). The flag register is cleared on entry and
// set to 1 if any toggle turned a set cell off.
func (c *CPU) draw(x, y, n int) {
	px := int(c.regs[x])
	py := int(c.regs[y])

	c.regs[arch.Flags] = 0

	for row := 0; row < n; row++ {
		bits := c.memory.U8(c.pointer + row)

		for col := 0; col < 8; col++ {
			if bits&(0x80>>col) == 0 {
				continue
			}
			if c.display.Toggle(px+col, py+row) {
				c.regs[arch.Flags] = 1
			}
		}
	}
}

// waitKey re-executes itself by rewinding the program counter until a
// key is down, then stores that key's id. The rewind keeps the engine
// non-blocking: control returns to the caller after every attempt.
func (c *CPU) waitKey(x int) {
	for key := 1; key <= KeyCount; key++ {
		if c.keys[key] {
			c.regs[x] = byte(key)
			return
		}
	}
	c.pc -= 2
}

// drainSignals empties the signal channel into the key state table.
// A (0, 0) read means no transition is pending.
func (c *CPU) drainSignals() {
	key, state := c.signals.Read()
	if key == 0 && state == 0 {
		return
	}
	if int(key) <= KeyCount {
		c.keys[key] = state == 1
	}
}

// pressed reports whether the given key id is currently down.
// Ids outside the key table read as released.
func (c *CPU) pressed(key byte) bool {
	return key >= 1 && key <= KeyCount && c.keys[key]
}

func (c *CPU) skipIf(cond bool) {
	if cond {
		c.pc += 2
	}
}

func (c *CPU) setFlag(v bool) {
	if v {
		c.regs[arch.Flags] = 1
	} else {
		c.regs[arch.Flags] = 0
	}
}
