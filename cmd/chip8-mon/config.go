package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hexaflex/chip8/vm"
)

// Config defines program configuration.
type Config struct {
	Image string // Path to the program image to load.
	Clock int    // Instruction rate in hz.
}

// parseArgs parses command line arguments as applicable.
//
// If an error occurred, this exits the program with an appropriate message.
// When version information is requested, it is printed to stdout and the program ends cleanly.
func parseArgs() *Config {
	var c Config
	c.Clock = vm.ClockFrequency

	flag.Usage = func() {
		fmt.Printf("%s [options] <image file>\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.IntVar(&c.Clock, "clock", c.Clock, "Instruction rate in hz.")
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
