package astar

import (
	"context"
	"errors"
	"runtime"
)

// ErrNoPath is returned when the open set empties before the goal is closed.
var ErrNoPath = errors.New("no path found")

// Graph is generic over node type N.
// N must be comparable so it can be used in maps.
type Graph[NodeType comparable] interface {
	Neighbors(node NodeType) []Neighbor[NodeType]
}

// Neighbor represents a reachable node with a cost.
type Neighbor[NodeType comparable] struct {
	ID   NodeType
	Cost float64
}

// Heuristic returns the estimated cost from node a to node b
type Heuristic[NodeType comparable] func(from NodeType, to NodeType) float64

// Result contains the outcome of a search. FrontierSize and VisitedSize
// describe the open and closed sets when the search stopped, whether or
// not a path was found.
type Result[NodeType comparable] struct {
	Path          []NodeType
	TotalCost     float64
	ExpandedNodes int
	FrontierSize  int
	VisitedSize   int
	Found         bool
}

// Options defines parameters for the search.
type Options struct {
	NumberOfWorkers int
	// MaxExpansions bounds the closed set; zero means unbounded.
	MaxExpansions int
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithWorkers specifies how many worker goroutines should expand neighbors.
// One or fewer expands inline on the calling goroutine, which also makes
// tie-breaking fully deterministic.
func WithWorkers(numberOfWorkers int) Option {
	return func(options *Options) { options.NumberOfWorkers = numberOfWorkers }
}

// WithMaxExpansions stops the search with ErrNoPath after n expansions.
func WithMaxExpansions(n int) Option {
	return func(options *Options) { options.MaxExpansions = n }
}

func applyOptions(options []Option) Options {
	searchOptions := Options{
		NumberOfWorkers: runtime.NumCPU(),
	}
	for _, option := range options {
		option(&searchOptions)
	}
	return searchOptions
}

// Search executes the concurrent A* search algorithm. It always runs to
// completion (goal closed, open set empty or expansion bound hit) before
// returning, and stops its workers on the way out.
func Search[NodeType comparable](
	contextObject context.Context,
	graph Graph[NodeType],
	startNode NodeType,
	goalNode NodeType,
	heuristic Heuristic[NodeType],
	options ...Option,
) (Result[NodeType], error) {
	searchOptions := applyOptions(options)

	contextObject, cancel := context.WithCancel(contextObject)
	defer cancel()

	state := newFrontier(contextObject, graph, startNode, goalNode, heuristic, searchOptions.NumberOfWorkers)

	expandedNodes := 0
	for {
		if searchOptions.MaxExpansions > 0 && expandedNodes >= searchOptions.MaxExpansions {
			return state.failed(expandedNodes), ErrNoPath
		}
		currentItem, ok := state.pop()
		if !ok {
			return state.failed(expandedNodes), ErrNoPath
		}
		expandedNodes++

		if currentItem.Node == goalNode {
			return Result[NodeType]{
				Path:          state.path(currentItem.Node),
				TotalCost:     currentItem.GScore,
				ExpandedNodes: expandedNodes,
				FrontierSize:  state.frontierSize(),
				VisitedSize:   state.visitedSize(),
				Found:         true,
			}, nil
		}

		if err := state.expand(contextObject, currentItem); err != nil {
			return state.failed(expandedNodes), err
		}
	}
}
