package main

import (
	"log"
	"os"

	"github.com/jroimartin/gocui"
)

func main() {
	config := parseArgs()

	rom, err := os.ReadFile(config.Image)
	if err != nil {
		log.Fatal(err)
	}

	g, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		log.Fatal(err)
	}
	defer g.Close()

	mon, err := newMonitor(g, config, rom)
	if err != nil {
		log.Fatal(err)
	}

	g.SetManagerFunc(mon.layout)

	if err := mon.bindKeys(); err != nil {
		log.Fatal(err)
	}

	go mon.run()

	if err := g.MainLoop(); err != nil && err != gocui.ErrQuit {
		log.Fatal(err)
	}
}
