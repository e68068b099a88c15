package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jroimartin/gocui"

	"github.com/hexaflex/chip8/arch"
	"github.com/hexaflex/chip8/dasm"
	"github.com/hexaflex/chip8/vm"
)

// keyHold is how long a terminal key press keeps a logical key down.
// Terminals deliver no release events, so one is synthesized.
const keyHold = 150 * time.Millisecond

// monitor runs the machine headless and mirrors its state in the
// terminal. The run goroutine owns the machine; key handlers reach it
// by enqueueing closures on the events channel.
type monitor struct {
	g       *gocui.Gui
	cpu     *vm.CPU
	config  *Config
	events  chan func()
	running bool
}

func newMonitor(g *gocui.Gui, config *Config, rom []byte) (*monitor, error) {
	m := &monitor{
		g:      g,
		cpu:    vm.New(nil),
		config: config,
		events: make(chan func(), 64),
	}

	if err := m.cpu.Load(rom); err != nil {
		return nil, err
	}

	return m, nil
}

// run is the machine's main loop: it paces execution at the configured
// clock rate, refreshes the views and applies queued key events.
func (m *monitor) run() {
	step := time.NewTicker(time.Second / time.Duration(m.config.Clock))
	refresh := time.NewTicker(time.Second / 30)
	defer step.Stop()
	defer refresh.Stop()

	m.status("%s", Version())
	m.status("loaded %s, press r to run, s to step, q to quit", m.config.Image)

	for {
		select {
		case fn := <-m.events:
			fn()
		case <-step.C:
			if m.running {
				m.step()
			}
		case <-refresh.C:
			m.redraw()
		}
	}
}

// step performs a single machine cycle. Errors stop execution.
func (m *monitor) step() {
	err := m.cpu.Cycle()
	switch {
	case err == io.EOF:
		m.running = false
		m.status("program finished")
	case err != nil:
		m.running = false
		m.status("%v", err)
	}
}

// do queues fn for the run goroutine.
func (m *monitor) do(fn func()) {
	select {
	case m.events <- fn:
	default:
	}
}

func (m *monitor) bindKeys() error {
	quit := func(*gocui.Gui, *gocui.View) error {
		return gocui.ErrQuit
	}

	if err := m.g.SetKeybinding("", gocui.KeyCtrlC, gocui.ModNone, quit); err != nil {
		return err
	}
	if err := m.g.SetKeybinding("", 'q', gocui.ModNone, quit); err != nil {
		return err
	}

	if err := m.g.SetKeybinding("", 'r', gocui.ModNone, func(*gocui.Gui, *gocui.View) error {
		m.do(m.toggleRun)
		return nil
	}); err != nil {
		return err
	}

	if err := m.g.SetKeybinding("", 's', gocui.ModNone, func(*gocui.Gui, *gocui.View) error {
		m.do(m.step)
		return nil
	}); err != nil {
		return err
	}

	for r := '1'; r <= '9'; r++ {
		id := byte(r - '0')
		if err := m.g.SetKeybinding("", r, gocui.ModNone, func(*gocui.Gui, *gocui.View) error {
			m.pressKey(id)
			return nil
		}); err != nil {
			return err
		}
	}

	return nil
}

func (m *monitor) toggleRun() {
	m.running = !m.running
	if m.running {
		m.status("running")
	} else {
		m.status("paused at %04x", m.cpu.PC())
	}
}

// pressKey sends a key-down transition and schedules the matching
// key-up after the hold time.
func (m *monitor) pressKey(id byte) {
	m.do(func() { m.cpu.Signals().Send(id, 1) })
	time.AfterFunc(keyHold, func() {
		m.do(func() { m.cpu.Signals().Send(id, 0) })
	})
}

// redraw snapshots the machine state and pushes it to the views.
// Snapshotting happens on the run goroutine, painting on gocui's.
func (m *monitor) redraw() {
	screen := m.renderDisplay()
	regs := m.renderRegisters()

	m.g.Update(func(g *gocui.Gui) error {
		if v, err := g.View("display"); err == nil {
			v.Clear()
			fmt.Fprint(v, screen)
		}
		if v, err := g.View("registers"); err == nil {
			v.Clear()
			fmt.Fprint(v, regs)
		}
		return nil
	})
}

func (m *monitor) renderDisplay() string {
	var sb strings.Builder
	sb.Grow((vm.DisplayWidth + 1) * vm.DisplayHeight)

	for y := 0; y < vm.DisplayHeight; y++ {
		for x := 0; x < vm.DisplayWidth; x++ {
			if m.cpu.Display().Pixel(x, y) != 0 {
				sb.WriteRune('█')
			} else {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}

func (m *monitor) renderRegisters() string {
	var sb strings.Builder

	for i := 0; i < arch.RegisterCount; i++ {
		fmt.Fprintf(&sb, "%-3s %02x\n", arch.RegisterName(i), m.cpu.Register(i))
	}

	word := uint16(m.cpu.Memory().U16(m.cpu.PC()))
	fmt.Fprintf(&sb, "\npc  %04x\n", m.cpu.PC())
	fmt.Fprintf(&sb, "dt  %02x\n", m.cpu.DelayTimer())
	fmt.Fprintf(&sb, "st  %02x\n", m.cpu.SoundTimer())
	fmt.Fprintf(&sb, "\n%s\n", dasm.Format(word))

	return sb.String()
}

// status appends a formatted line to the status view.
func (m *monitor) status(f string, argv ...interface{}) {
	msg := fmt.Sprintf(f, argv...)
	m.g.Update(func(g *gocui.Gui) error {
		v, err := g.View("status")
		if err != nil {
			return nil
		}
		fmt.Fprintln(v, msg)
		return nil
	})
}

func (m *monitor) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()

	if v, err := g.SetView("display", 0, 0, vm.DisplayWidth+1, vm.DisplayHeight+1); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "display"
	}

	if v, err := g.SetView("registers", vm.DisplayWidth+2, 0, vm.DisplayWidth+22, vm.DisplayHeight+1); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "registers"
	}

	if v, err := g.SetView("status", 0, vm.DisplayHeight+2, maxX-1, maxY-1); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "status"
		v.Autoscroll = true
	}

	return nil
}
