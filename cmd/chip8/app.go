package main

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-gl/gl/v4.2-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/errors"

	"github.com/hexaflex/chip8/dasm"
	"github.com/hexaflex/chip8/devices"
	"github.com/hexaflex/chip8/devices/buzzer"
	"github.com/hexaflex/chip8/devices/display"
	"github.com/hexaflex/chip8/devices/keypad"
	"github.com/hexaflex/chip8/vm"
)

// App defines application context.
type App struct {
	config       *Config         // Application configuration.
	window       *glfw.Window    // OpenGL/GLFW context.
	cpu          *CPUController  // VM with program to be run.
	display      *display.Device // Virtual display peripheral.
	keypad       *keypad.Device  // Virtual keypad peripheral.
	buzzer       *buzzer.Device  // Virtual buzzer peripheral.
	peripherals  devices.Map     // All connected peripherals.
	titleUpdated time.Time       // Value used to periodically update window title.
	lastRendered time.Time       // Last time a frame was rendered.
	lastStepped  time.Time       // Last time the cpu performed a cycle.
}

// NewApp creates a new application instance using the given configuration.
func NewApp(config *Config) *App {
	var a App
	a.config = config
	a.cpu = NewCPUController(a.printTrace)
	a.display = display.New(a.cpu.CPU().Display())
	a.keypad = keypad.New(a.cpu.CPU().Signals())
	a.buzzer = buzzer.New()

	a.peripherals.Connect(a.display)
	a.peripherals.Connect(a.keypad)
	if !config.Mute {
		a.peripherals.Connect(a.buzzer)
	}

	return &a
}

// Run runs the application and does not return until it is finished
// or an error occured during initialization.
func (a *App) Run() error {
	if err := a.initGL(); err != nil {
		return err
	}

	defer a.dispose()

	log.Println(Version())
	printHelp()

	if err := a.peripherals.Startup(); err != nil {
		return err
	}

	if err := a.loadProgram(); err != nil {
		return err
	}

	a.cpu.Start()
	a.lastStepped = time.Now()

	for !a.window.ShouldClose() {
		a.mainLoop()
	}

	return nil
}

// mainLoop performs all main loop operations.
func (a *App) mainLoop() {
	// Pace instruction execution at the configured clock rate.
	if a.cpu.Running() {
		interval := time.Second / time.Duration(a.config.Clock)
		if time.Since(a.lastStepped) >= interval {
			a.lastStepped = time.Now()
			if err := a.cpu.Step(); err != nil {
				log.Println(err)
			}
		}
	} else {
		a.lastStepped = time.Now()
	}

	if !a.config.Mute {
		a.buzzer.Update(a.cpu.CPU().SoundTimer() > 0)
	}

	// Periodically render display contents.
	if time.Since(a.lastRendered) >= time.Second/60 {
		a.lastRendered = time.Now()
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
		a.display.Swap()
		a.display.Draw()
		a.window.SwapBuffers()
	}

	// Periodically update the window title to show the current cpu clock frequency.
	if time.Since(a.titleUpdated) >= time.Second*2 {
		a.titleUpdated = time.Now()
		freq := prettyFrequency(a.cpu.Frequency())
		a.window.SetTitle(fmt.Sprintf("%s %s - %s", AppName, AppVersion, freq))
	}

	glfw.PollEvents()
}

// dispose ensures openGL/GLFW and other resources are cleaned up.
func (a *App) dispose() {
	a.cpu.Stop()

	if err := a.peripherals.Shutdown(); err != nil {
		log.Println(err)
	}

	if a.window != nil {
		a.window.Destroy()
		a.window = nil
	}

	glfw.Terminate()
}

func (a *App) keyCallback(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	a.keypad.HandleKey(key, action)

	if action != glfw.Press {
		return
	}

	var err error

	switch key {
	case glfw.KeyEscape:
		a.window.SetShouldClose(true)
	case glfw.KeyF1:
		printHelp()
	case glfw.KeyF5:
		err = a.loadProgram()
	case glfw.KeyQ:
		a.cpu.ToggleRun()
	case glfw.KeyE:
		err = a.cpu.Step()
	case glfw.KeyD:
		a.config.PrintTrace = !a.config.PrintTrace
	}

	if err != nil {
		log.Println(err)
	}
}

// initGL initializes GLFW and openGL.
func (a *App) initGL() error {
	err := glfw.Init()
	if err != nil {
		return errors.Wrapf(err, "glfw.Init failed")
	}

	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.Visible, glfw.True)
	glfw.WindowHint(glfw.Focused, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 2)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	var monitor *glfw.Monitor

	width := vm.DisplayWidth * a.config.ScaleFactor
	height := vm.DisplayHeight * a.config.ScaleFactor

	if a.config.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
		mode := monitor.GetVideoMode()

		width = mode.Width
		height = mode.Height

		glfw.WindowHint(glfw.Decorated, glfw.False)
		glfw.WindowHint(glfw.Maximized, glfw.True)
	} else {
		glfw.WindowHint(glfw.Decorated, glfw.True)
		glfw.WindowHint(glfw.Maximized, glfw.False)
	}

	a.window, err = glfw.CreateWindow(width, height, "", monitor, nil)
	if err != nil {
		a.dispose()
		return errors.Wrapf(err, "glfw.CreateWindow failed")
	}

	a.window.MakeContextCurrent()
	a.window.SetKeyCallback(a.keyCallback)

	glfw.SwapInterval(0)

	err = gl.Init()
	if err != nil {
		a.dispose()
		return errors.Wrapf(err, "gl.Init failed")
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(0, 0, 0, 1.0)
	return nil
}

// loadProgram loads the current program from disk and restarts the cpu.
func (a *App) loadProgram() error {
	log.Println("loading", a.config.Image)
	return a.cpu.Load(a.config.Image)
}

// printTrace prints instruction trace data. This can be toggled
// on and off through a.config.PrintTrace.
func (a *App) printTrace(i *vm.Instruction) {
	if !a.config.PrintTrace {
		return
	}
	fmt.Printf("%04x  %04x  %s\n", i.IP, i.Word, dasm.Format(i.Word))
}

// printHelp writes a short overview of supported shortcut keys to stdout.
func printHelp() {
	var sb strings.Builder
	sb.WriteString("shortcut keys:\n")
	sb.WriteString(" ESC      Exit the emulator.\n")
	sb.WriteString(" F1       Display this help.\n")
	sb.WriteString(" F5       (re)load the program from disk and reset the cpu.\n")
	sb.WriteString(" Q        Start/Stop program execution.\n")
	sb.WriteString(" E        Perform a single execution step.\n")
	sb.WriteString(" D        Enable/Disable debug trace output.\n")
	sb.WriteString(" 1-9      Keypad input.")
	log.Println(sb.String())
}

// prettyFrequency returns a human-readable version of the given clock frequency in herz.
func prettyFrequency(v float64) string {
	switch {
	case v >= 1e6:
		return fmt.Sprintf("%.2f MHz", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%.2f KHz", v/1e3)
	default:
		return fmt.Sprintf("%.2f Hz", v)
	}
}
