package main

import (
	"io"
	"os"
	"time"

	"github.com/hexaflex/chip8/vm"
)

// CPUController controls the execution of a CPU.
type CPUController struct {
	cpu        *vm.CPU
	start      time.Time
	cycleCount uint64
	running    bool
}

// NewCPUController creates a new CPU controller.
func NewCPUController(trace vm.TraceFunc) *CPUController {
	return &CPUController{
		cpu: vm.New(trace),
	}
}

// CPU returns the controlled machine.
func (c *CPUController) CPU() *vm.CPU {
	return c.cpu
}

// Running returns true if the CPU is currently running.
func (c *CPUController) Running() bool {
	return c.running
}

// Frequency returns the current clock frequency in herz.
func (c *CPUController) Frequency() float64 {
	if c.running {
		return float64(c.cycleCount) / time.Since(c.start).Seconds()
	}
	return 0
}

// ToggleRun starts or stops program execution.
func (c *CPUController) ToggleRun() {
	c.setRunning(!c.running)
}

// Start begins execution of the program.
func (c *CPUController) Start() {
	c.setRunning(true)
}

// Stop pauses execution of the program.
func (c *CPUController) Stop() {
	c.setRunning(false)
}

// Step performs a single execution step. A clean program exit stops
// the machine without reporting an error.
func (c *CPUController) Step() error {
	c.cycleCount++

	err := c.cpu.Cycle()
	if err != nil {
		c.setRunning(false)
		if err != io.EOF {
			return err
		}
	}

	return nil
}

// Load reads the given program image from disk and resets the cpu.
func (c *CPUController) Load(path string) error {
	rom, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	c.cpu.Reset()
	return c.cpu.Load(rom)
}

// setRunning determines if the CPU is running or is paused.
func (c *CPUController) setRunning(v bool) {
	c.running = v
	c.start = time.Now()
	c.cycleCount = 0
}
