package astar

import (
	"context"
)

// StepSnapshot exposes the per-iteration state of the search
type StepSnapshot[NodeType comparable] struct {
	Current      NodeType
	Open         map[NodeType]bool
	Closed       map[NodeType]bool
	CameFrom     map[NodeType]NodeType
	FrontierSize int
	VisitedSize  int
	Done         bool
	Found        bool
	Path         []NodeType
	StepIndex    int
}

// Stepper provides a step-by-step orchestrator over the concurrent workers
type Stepper[NodeType comparable] struct {
	ctx    context.Context
	cancel context.CancelFunc
	state  *frontier[NodeType]

	stepCount int
	done      bool
	found     bool
	path      []NodeType
}

// NewStepper creates a new stepper using the same worker-based expansion logic as Search
func NewStepper[NodeType comparable](
	parent context.Context,
	graph Graph[NodeType],
	startNode NodeType,
	goalNode NodeType,
	heuristic Heuristic[NodeType],
	options ...Option,
) *Stepper[NodeType] {
	opts := applyOptions(options)
	ctx, cancel := context.WithCancel(parent)
	return &Stepper[NodeType]{
		ctx:    ctx,
		cancel: cancel,
		state:  newFrontier(ctx, graph, startNode, goalNode, heuristic, opts.NumberOfWorkers),
	}
}

// Close stops the workers
func (s *Stepper[NodeType]) Close() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// Run steps until the search is done and returns the final snapshot.
func (s *Stepper[NodeType]) Run() (StepSnapshot[NodeType], error) {
	for {
		snap, err := s.Step()
		if err != nil || snap.Done {
			return snap, err
		}
	}
}

// Step advances the search by one node expansion and returns a snapshot
func (s *Stepper[NodeType]) Step() (StepSnapshot[NodeType], error) {
	if s.done {
		return s.snapshot(s.state.goalNode), nil
	}

	currentItem, ok := s.state.pop()
	if !ok {
		s.done = true
		s.Close()
		return s.snapshot(s.state.startNode), nil
	}
	s.stepCount++

	if currentItem.Node == s.state.goalNode {
		s.done = true
		s.found = true
		s.path = s.state.path(currentItem.Node)
		s.Close()
		return s.snapshot(currentItem.Node), nil
	}

	if err := s.state.expand(s.ctx, currentItem); err != nil {
		s.done = true
		s.Close()
		return StepSnapshot[NodeType]{Done: true, Found: false, StepIndex: s.stepCount}, err
	}
	return s.snapshot(currentItem.Node), nil
}

func (s *Stepper[NodeType]) snapshot(current NodeType) StepSnapshot[NodeType] {
	snap := StepSnapshot[NodeType]{
		Current:      current,
		Open:         s.openSetToBoolMap(),
		Closed:       copyBoolMap(s.state.closedSet),
		CameFrom:     copyCameFrom(s.state.cameFrom),
		FrontierSize: s.state.frontierSize(),
		VisitedSize:  s.state.visitedSize(),
		Done:         s.done,
		Found:        s.found,
		StepIndex:    s.stepCount,
	}
	if s.found {
		snap.Path = append([]NodeType(nil), s.path...)
	}
	return snap
}

func (s *Stepper[NodeType]) openSetToBoolMap() map[NodeType]bool {
	m := make(map[NodeType]bool, len(s.state.openSetMap))
	for k := range s.state.openSetMap {
		m[k] = true
	}
	return m
}

func copyBoolMap[T comparable](m map[T]bool) map[T]bool {
	if m == nil {
		return nil
	}
	c := make(map[T]bool, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

func copyCameFrom[T comparable](m map[T]T) map[T]T {
	if m == nil {
		return nil
	}
	c := make(map[T]T, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}
