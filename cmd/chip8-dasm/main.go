package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hexaflex/chip8/dasm"
)

func main() {
	flag.Usage = func() {
		fmt.Printf("%s <image file>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}

	rom, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	for _, line := range dasm.Disassemble(rom) {
		fmt.Println(line)
	}
}
