package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

// Config defines program configuration.
type Config struct {
	Input  string // Input source file to build.
	Output string // Path to store output in.
}

// parseArgs parses command line arguments as applicable.
//
// If an error occurred, this exits the program with an appropriate message.
// When version information is requested, it is printed to stdout and the program ends cleanly.
func parseArgs() *Config {
	var c Config

	flag.Usage = func() {
		fmt.Printf("%s [options] <input source file>\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.StringVar(&c.Output, "out", c.Output, "Output file. Defaults to the input name with a .ch8 extension.")
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

	c.Input = flag.Arg(0)
	if c.Output == "" {
		c.Output = strings.TrimSuffix(c.Input, ".asm") + ".ch8"
	}

	return &c
}
