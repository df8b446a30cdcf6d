// Command dynreplan-gui shows the replanning agent live in a window.
//
// Space pauses, N steps once while paused, R restarts, Escape quits.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/pdrpinto/dynastar/replan"
	"github.com/pdrpinto/dynastar/scenario"
)

func main() {
	flag.Parse()
	if !*debugFlag {
		log.SetOutput(io.Discard)
	}

	sc, err := loadScenario()
	if err != nil {
		fmt.Fprintf(os.Stderr, "dynreplan-gui: %v\n", err)
		os.Exit(1)
	}
	m, err := sc.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "dynreplan-gui: %v\n", err)
		os.Exit(1)
	}

	opts := []replan.Option{replan.WithMaxOuterSteps(*maxStepsFlag)}
	if *debugFlag {
		opts = append(opts, replan.WithLogger(log.Default()))
	}
	g := newGame(m, opts...)

	shape := m.Shape()
	scale := max(1, *scaleFlag)
	ebiten.SetWindowSize(shape.Width*scale, shape.Height*scale)
	ebiten.SetWindowTitle("dynreplan")
	if err := ebiten.RunGame(g); err != nil && err != ebiten.Termination {
		fmt.Fprintf(os.Stderr, "dynreplan-gui: %v\n", err)
		os.Exit(1)
	}
}

func loadScenario() (*scenario.Scenario, error) {
	if *mapFlag != "" {
		return scenario.Load(*mapFlag)
	}
	return scenario.Demo(*demoFlag, *demoFlag)
}
