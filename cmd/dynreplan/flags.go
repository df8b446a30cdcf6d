package main

import (
	"flag"

	"github.com/pdrpinto/dynastar/replan"
	"github.com/pdrpinto/dynastar/termview"
)

var (
	// mapFlag names a scenario file. Empty runs the built-in demo.
	mapFlag = flag.String("map", "", "scenario file to run (default: built-in demo)")

	// demoFlag sizes the built-in demo as HEIGHTxWIDTH.
	demoFlag = flag.String("demo", "50x50", "size of the built-in demo map, HEIGHTxWIDTH")

	// saveFlag writes the scenario that was run, which turns the demo into
	// an editable file.
	saveFlag = flag.String("save", "", "write the loaded scenario to this file")

	maxStepsFlag = flag.Int("max-steps", replan.DefaultMaxOuterSteps, "outer iteration budget")

	// workersFlag sets expansion workers per search. 1 keeps runs reproducible.
	workersFlag = flag.Int("workers", 1, "expansion workers per A* search")

	maxExpansionsFlag = flag.Int("max-expansions", 0, "cap on nodes expanded per search (0 = unbounded)")

	// branchesFlag runs that many phase-shifted copies of the scenario in
	// parallel and prints a summary instead of a single result.
	branchesFlag = flag.Int("branches", 0, "run N phase-shifted copies in parallel")

	phaseStepFlag = flag.Int("phase-step", 1, "ticks between consecutive branch start phases")

	parallelFlag = flag.Int("parallel", 0, "branch runs in flight at once (0 = unbounded)")

	jsonFlag = flag.Bool("json", false, "print the result as JSON")

	// viewFlag plays the run back in the terminal after it finishes.
	viewFlag = flag.Bool("view", false, "play the run back in the terminal")

	delayFlag = flag.Duration("delay", termview.DefaultDelay, "time per frame during playback")

	// debugFlag logs every iteration to logs/dynreplan.log.
	debugFlag = flag.Bool("debug", false, "write per-tick logs to "+logDir+"/"+logFileName)
)

