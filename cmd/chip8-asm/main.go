package main

import (
	"fmt"
	"os"

	"github.com/hexaflex/chip8/asm"
)

func main() {
	config := parseArgs()

	source, err := os.ReadFile(config.Input)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	code, err := asm.New().Assemble(string(source))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s:%s\n", config.Input, err)
		os.Exit(1)
	}

	if err = os.WriteFile(config.Output, code, 0644); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
