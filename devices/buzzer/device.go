// Package buzzer implements the host's audio adapter: a fixed 440 Hz
// square wave that plays while the machine's sound timer is running.
package buzzer

import (
	"sync/atomic"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/pkg/errors"

	"github.com/hexaflex/chip8/devices"
)

const (
	sampleRate = 44100
	toneHz     = 440
	amplitude  = 1 << 13

	// minBurst is the minimum duration of a tone burst, so very short
	// sound timer values still produce an audible blip.
	minBurst = 250 * time.Millisecond
)

// Device defines all internal doodads for the buzzer. It doubles as
// the sample source handed to the audio player.
type Device struct {
	ctx     *oto.Context
	player  *oto.Player
	active  atomic.Bool
	started time.Time
	phase   int
}

var _ devices.Device = &Device{}

// New creates a new buzzer.
func New() *Device {
	return &Device{}
}

// ID returns the device identifier.
func (d *Device) ID() devices.ID {
	return devices.NewID(0x00c8, 0x0003)
}

// Startup opens the audio context and starts the, initially silent,
// player.
func (d *Device) Startup() error {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return errors.Wrapf(err, "failed to open audio context")
	}
	<-ready

	d.ctx = ctx
	d.player = ctx.NewPlayer(d)
	d.player.Play()
	return nil
}

// Shutdown cleans up device resources.
func (d *Device) Shutdown() error {
	if d.player == nil {
		return nil
	}

	err := d.player.Close()
	d.player = nil
	return err
}

// Update drives the tone from the sound timer state. Once a burst has
// started it keeps playing for the minimum duration even if the timer
// already ran out.
func (d *Device) Update(buzzing bool) {
	if buzzing && !d.active.Load() {
		d.started = time.Now()
		d.active.Store(true)
		return
	}

	if !buzzing && d.active.Load() && time.Since(d.started) >= minBurst {
		d.active.Store(false)
	}
}

// Read produces the next chunk of samples: a square wave while the
// buzzer is active, silence otherwise. It is called from the audio
// player's own goroutine, hence the atomic flag.
func (d *Device) Read(p []byte) (int, error) {
	const period = sampleRate / toneHz
	active := d.active.Load()

	n := len(p) &^ 1
	for i := 0; i < n; i += 2 {
		var s int16
		if active {
			s = amplitude
			if d.phase >= period/2 {
				s = -amplitude
			}
		}
		p[i] = byte(s)
		p[i+1] = byte(uint16(s) >> 8)
		d.phase = (d.phase + 1) % period
	}

	return n, nil
}
