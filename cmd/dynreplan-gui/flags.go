package main

import "flag"

// Command-line flags for the live replanning window.
var (
	// mapFlag names a scenario file. Empty runs the built-in demo.
	mapFlag = flag.String("map", "", "scenario file to run (default: built-in demo)")

	demoFlag = flag.Int("demo", 60, "side length of the built-in square demo map")

	// scaleFlag sets how many screen pixels one cell takes per side.
	scaleFlag = flag.Int("scale", 10, "window pixels per grid cell")

	// ticksPerStepFlag slows the run down: one replanning iteration every N
	// frames.
	ticksPerStepFlag = flag.Int("ticks-per-step", 6, "frames between replanning iterations")

	maxStepsFlag = flag.Int("max-steps", 500, "outer iteration budget")

	// showPathFlag overlays the planned path of the last iteration.
	showPathFlag = flag.Bool("show-path", true, "draw the path planned on the last iteration")

	// debugFlag enables the status overlay and per-tick logging to stderr.
	debugFlag = flag.Bool("debug", false, "show status overlay and log every tick")
)
