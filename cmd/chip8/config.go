package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hexaflex/chip8/vm"
)

// Config defines program configuration.
type Config struct {
	Image       string // Path to the program image to load.
	ScaleFactor int    // Amount by which each display cell is scaled.
	Clock       int    // Instruction rate in hz.
	Fullscreen  bool   // Run in fullscreen?
	Mute        bool   // Disable the buzzer?
	PrintTrace  bool   // Print instruction trace data?
}

// parseArgs parses command line arguments as applicable.
//
// If an error occurred, this exits the program with an appropriate message.
// When version information is requested, it is printed to stdout and the program ends cleanly.
func parseArgs() *Config {
	var c Config
	c.ScaleFactor = 10
	c.Clock = vm.ClockFrequency

	flag.Usage = func() {
		fmt.Printf("%s [options] <image file>\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.IntVar(&c.ScaleFactor, "scale-factor", c.ScaleFactor, "Cell scale factor for the display.")
	flag.IntVar(&c.Clock, "clock", c.Clock, "Instruction rate in hz.")
	flag.BoolVar(&c.Fullscreen, "fullscreen", c.Fullscreen, "Run the display in fullscreen or windowed mode.")
	flag.BoolVar(&c.Mute, "mute", c.Mute, "Disable the buzzer.")
	flag.BoolVar(&c.PrintTrace, "trace", c.PrintTrace, "Print instruction trace data.")

	version := flag.Bool("version", false, "Display version information.")
	flag.Parse()

	if *version {
		fmt.Println(Version())
		os.Exit(0)
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}

	if c.Clock < 1 {
		fmt.Fprintln(os.Stderr, "clock rate must be at least 1 hz")
		os.Exit(1)
	}

	c.Image = flag.Arg(0)
	return &c
}
