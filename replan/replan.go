// Package replan drives an agent across a dynamic map by planning a full
// path on every tick and committing only to its first step.
//
// Each iteration: check arrival, check the step budget, search the frozen
// snapshot, move the agent one cell, advance the world one tick. The agent
// always moves before the map advances, because the rebuild draws the
// agent's current cell.
package replan

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/pdrpinto/dynastar/dynmap"
	"github.com/pdrpinto/dynastar/grid"
)

// DefaultMaxOuterSteps bounds a run when no WithMaxOuterSteps is given.
const DefaultMaxOuterSteps = 500

var (
	// ErrBadPath is returned when a searcher's path does not start at the agent.
	ErrBadPath     = errors.New("replan: path does not start at the agent")
	ErrNilMap      = errors.New("replan: nil map")
	ErrNilSearcher = errors.New("replan: nil searcher")
)

// State of the control loop. Every state but Running is terminal.
type State int

const (
	Running State = iota
	Succeeded
	StuckNoPath
	StepLimitExceeded
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Succeeded:
		return "succeeded"
	case StuckNoPath:
		return "stuck_no_path"
	case StepLimitExceeded:
		return "step_limit_exceeded"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Terminal reports whether the loop has stopped.
func (s State) Terminal() bool { return s != Running }

type options struct {
	maxOuterSteps int
	logger        *log.Logger
}

// Option configures a Replanner.
type Option func(*options)

// WithMaxOuterSteps sets the iteration budget. Negative values mean zero.
func WithMaxOuterSteps(n int) Option {
	return func(o *options) { o.maxOuterSteps = max(0, n) }
}

// WithLogger logs one line per iteration to l.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Iteration is the explicit result of one pass through the loop. Stats is
// nil when the iteration ended before searching.
type Iteration struct {
	Tick  int
	State State
	Path  []grid.Point
	Stats *SearchStats
}

// Outcome summarizes a finished run for reporting.
type Outcome struct {
	State       State
	Ticks       int
	Searches    int
	Trace       []grid.Point
	Diagnostics Diagnostics
}

// Replanner owns the control loop for one map. It mutates the map it was
// given; Clone the map first to keep the original.
type Replanner struct {
	m        *dynmap.Map
	searcher Searcher
	opts     options

	state    State
	ticks    int
	searches int
	trace    []grid.Point
	last     *SearchStats
}

// New returns a Replanner in the Running state at tick count 0. m and
// searcher must not be nil; Step reports ErrNilMap or ErrNilSearcher if
// they are.
func New(m *dynmap.Map, searcher Searcher, opts ...Option) *Replanner {
	o := options{maxOuterSteps: DefaultMaxOuterSteps}
	for _, opt := range opts {
		opt(&o)
	}
	return &Replanner{m: m, searcher: searcher, opts: o, state: Running}
}

// Step runs one iteration. Once terminal it returns the terminal state
// without searching again.
func (r *Replanner) Step(ctx context.Context) (Iteration, error) {
	if r.state.Terminal() {
		return Iteration{Tick: r.ticks, State: r.state}, nil
	}
	if r.m == nil {
		return Iteration{State: r.state}, ErrNilMap
	}
	if r.searcher == nil {
		return Iteration{State: r.state}, ErrNilSearcher
	}
	if r.m.AgentInGoalRadius() {
		return r.finish(Succeeded, nil, nil), nil
	}
	if r.ticks >= r.opts.maxOuterSteps {
		return r.finish(StepLimitExceeded, nil, nil), nil
	}

	snap := r.m.Snapshot()
	res, err := r.searcher.Search(ctx, snap, snap.Agent(), snap.Goal())
	if err != nil {
		return Iteration{Tick: r.ticks, State: r.state}, fmt.Errorf("search at tick %d: %w", r.ticks, err)
	}
	stats := res.SearchStats
	r.searches++
	r.last = &stats

	if len(res.Path) < 2 {
		return r.finish(StuckNoPath, res.Path, &stats), nil
	}
	if res.Path[0] != snap.Agent() {
		return Iteration{Tick: r.ticks, State: r.state}, fmt.Errorf("tick %d: path starts at %v, agent at %v: %w",
			r.ticks, res.Path[0], snap.Agent(), ErrBadPath)
	}

	next := res.Path[1]
	r.m.SetAgent(next)
	r.trace = append(r.trace, next)
	r.m.Advance(1)
	r.ticks++

	if r.opts.logger != nil {
		r.opts.logger.Printf("tick %d: agent %v, path %d cells, frontier %d, visited %d",
			r.ticks, next, len(res.Path), stats.Frontier, stats.Visited)
	}
	return Iteration{Tick: r.ticks, State: Running, Path: res.Path, Stats: &stats}, nil
}

func (r *Replanner) finish(s State, path []grid.Point, stats *SearchStats) Iteration {
	r.state = s
	if r.opts.logger != nil {
		r.opts.logger.Printf("tick %d: %s (agent %v, goal %v)", r.ticks, s, r.m.Agent(), r.m.Goal())
	}
	return Iteration{Tick: r.ticks, State: s, Path: path, Stats: stats}
}

// Run iterates until a terminal state. Only searcher failures are errors;
// every terminal state is an ordinary Outcome.
func (r *Replanner) Run(ctx context.Context) (Outcome, error) {
	for !r.state.Terminal() {
		if _, err := r.Step(ctx); err != nil {
			return r.Outcome(), err
		}
	}
	return r.Outcome(), nil
}

// Outcome reports the current state of the run.
func (r *Replanner) Outcome() Outcome {
	return Outcome{
		State:       r.state,
		Ticks:       r.ticks,
		Searches:    r.searches,
		Trace:       r.Trace(),
		Diagnostics: r.Diagnostics(),
	}
}

func (r *Replanner) State() State { return r.state }

// Ticks is the number of steps taken so far.
func (r *Replanner) Ticks() int { return r.ticks }

// Trace returns a copy of the agent positions, one per step.
func (r *Replanner) Trace() []grid.Point { return append([]grid.Point{}, r.trace...) }

// Map is the map being driven.
func (r *Replanner) Map() *dynmap.Map { return r.m }

// LastStats returns the most recently completed search, if any.
func (r *Replanner) LastStats() (SearchStats, bool) {
	if r.last == nil {
		return SearchStats{}, false
	}
	return *r.last, true
}

// Diagnostics reports the latest search as map percentages.
func (r *Replanner) Diagnostics() Diagnostics {
	if r.m == nil {
		return NewDiagnostics(0, r.last, r.trace)
	}
	return NewDiagnostics(r.m.CellCount(), r.last, r.trace)
}
