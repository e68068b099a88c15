// Package keypad implements the host's input adapter: it translates
// keyboard events into logical key transitions on the signal channel.
package keypad

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/hexaflex/chip8/devices"
	"github.com/hexaflex/chip8/vm"
)

// mapping pairs physical keys with the logical key ids 1..9.
var mapping = map[glfw.Key]byte{
	glfw.Key1: 1,
	glfw.Key2: 2,
	glfw.Key3: 3,
	glfw.Key4: 4,
	glfw.Key5: 5,
	glfw.Key6: 6,
	glfw.Key7: 7,
	glfw.Key8: 8,
	glfw.Key9: 9,
}

// Device defines all internal doodads for the keypad.
type Device struct {
	signals *vm.Signal
}

var _ devices.Device = &Device{}

// New creates a new keypad feeding the given signal channel.
func New(signals *vm.Signal) *Device {
	return &Device{signals: signals}
}

// ID returns the device identifier.
func (d *Device) ID() devices.ID {
	return devices.NewID(0x00c8, 0x0002)
}

// Startup initializes device resources.
func (d *Device) Startup() error {
	return nil
}

// Shutdown cleans up device resources.
func (d *Device) Shutdown() error {
	return nil
}

// HandleKey translates a key event into a signal channel send: one
// send per press or release transition. Key repeats and unmapped keys
// are ignored.
func (d *Device) HandleKey(key glfw.Key, action glfw.Action) {
	id, ok := mapping[key]
	if !ok {
		return
	}

	switch action {
	case glfw.Press:
		d.signals.Send(id, 1)
	case glfw.Release:
		d.signals.Send(id, 0)
	}
}
