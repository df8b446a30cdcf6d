// Command dynreplan runs the replanning agent on a scenario and reports how
// it ended.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"

	astar "github.com/pdrpinto/dynastar"
	"github.com/pdrpinto/dynastar/batch"
	"github.com/pdrpinto/dynastar/playback"
	"github.com/pdrpinto/dynastar/replan"
	"github.com/pdrpinto/dynastar/report"
	"github.com/pdrpinto/dynastar/scenario"
	"github.com/pdrpinto/dynastar/termview"
)

var errBadDims = errors.New("want HEIGHTxWIDTH")

func main() {
	flag.Parse()

	if logFile := setupLogging(*debugFlag); logFile != nil {
		defer logFile.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Stdout); err != nil {
		log.Printf("fatal: %v", err)
		fmt.Fprintf(os.Stderr, "dynreplan: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, w io.Writer) error {
	sc, err := loadScenario()
	if err != nil {
		return err
	}
	if *saveFlag != "" {
		if err := scenario.Save(*saveFlag, sc); err != nil {
			return err
		}
	}
	m, err := sc.Build()
	if err != nil {
		return err
	}

	opts := []replan.Option{replan.WithMaxOuterSteps(*maxStepsFlag)}
	if *debugFlag {
		opts = append(opts, replan.WithLogger(log.Default()))
	}
	newSearcher := func() replan.Searcher {
		return replan.NewAStarSearcher(
			astar.WithWorkers(*workersFlag),
			astar.WithMaxExpansions(*maxExpansionsFlag),
		)
	}

	if *branchesFlag > 0 {
		maps := batch.Branch(m, batch.Offsets(*branchesFlag, *phaseStepFlag))
		outcomes, err := batch.Run(ctx, maps, newSearcher, *parallelFlag, opts...)
		if err != nil {
			return err
		}
		return report.PrintSummary(w, batch.Summarize(outcomes))
	}

	initial := m.Clone()
	out, err := replan.New(m, newSearcher(), opts...).Run(ctx)
	if err != nil {
		return err
	}
	if *viewFlag {
		if err := view(ctx, playback.Frames(initial, out.Trace), out); err != nil {
			return err
		}
	}
	if *jsonFlag {
		return report.WriteJSON(w, out)
	}
	return report.Print(w, out)
}

func loadScenario() (*scenario.Scenario, error) {
	if *mapFlag != "" {
		return scenario.Load(*mapFlag)
	}
	h, w, err := parseDims(*demoFlag)
	if err != nil {
		return nil, fmt.Errorf("-demo %q: %w", *demoFlag, err)
	}
	return scenario.Demo(h, w)
}

// parseDims reads "HEIGHTxWIDTH".
func parseDims(s string) (int, int, error) {
	hs, ws, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, errBadDims
	}
	h, err := strconv.Atoi(strings.TrimSpace(hs))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", errBadDims, err)
	}
	w, err := strconv.Atoi(strings.TrimSpace(ws))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", errBadDims, err)
	}
	return h, w, nil
}

func view(ctx context.Context, frames []playback.Frame, out replan.Outcome) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	termview.New(screen, frames, out, *delayFlag).Run(ctx)
	return nil
}
