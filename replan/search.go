package replan

import (
	"context"
	"errors"

	astar "github.com/pdrpinto/dynastar"
	"github.com/pdrpinto/dynastar/grid"
)

// SearchStats are the open and closed set sizes of one search invocation.
type SearchStats struct {
	Frontier int
	Visited  int
}

// SearchResult is one search on one snapshot. Path starts at the agent and
// is shorter than 2 when no step can be made.
type SearchResult struct {
	Path []grid.Point
	SearchStats
}

// Searcher plans on a single frozen snapshot. It must run to completion
// (or its own internal bound) before returning.
type Searcher interface {
	Search(ctx context.Context, snap grid.View, start, goal grid.Point) (SearchResult, error)
}

// SearcherFunc adapts a function to Searcher.
type SearcherFunc func(ctx context.Context, snap grid.View, start, goal grid.Point) (SearchResult, error)

func (f SearcherFunc) Search(ctx context.Context, snap grid.View, start, goal grid.Point) (SearchResult, error) {
	return f(ctx, snap, start, goal)
}

// GridGraph exposes a snapshot as a 4-connected astar.Graph. Wall cells and
// cells outside the grid are not traversable.
type GridGraph struct {
	View grid.View
}

var gridDirections = [4]grid.Point{{Row: -1}, {Col: 1}, {Row: 1}, {Col: -1}}

func (g GridGraph) Neighbors(p grid.Point) []astar.Neighbor[grid.Point] {
	out := make([]astar.Neighbor[grid.Point], 0, len(gridDirections))
	for _, d := range gridDirections {
		np := grid.Point{Row: p.Row + d.Row, Col: p.Col + d.Col}
		if !g.View.InBounds(np) || g.View.At(np) == grid.Wall {
			continue
		}
		out = append(out, astar.Neighbor[grid.Point]{ID: np, Cost: 1})
	}
	return out
}

// Manhattan is the admissible heuristic for GridGraph.
func Manhattan(from, to grid.Point) float64 {
	return float64(from.Manhattan(to))
}

// AStarSearcher runs astar.Search on each snapshot. With no options it
// expands inline on one goroutine, which keeps runs reproducible.
type AStarSearcher struct {
	Options []astar.Option
}

// NewAStarSearcher returns a deterministic single-worker searcher; extra
// options are applied after the default.
func NewAStarSearcher(options ...astar.Option) *AStarSearcher {
	return &AStarSearcher{Options: append([]astar.Option{astar.WithWorkers(1)}, options...)}
}

func (s *AStarSearcher) Search(ctx context.Context, snap grid.View, start, goal grid.Point) (SearchResult, error) {
	options := s.Options
	if len(options) == 0 {
		options = []astar.Option{astar.WithWorkers(1)}
	}
	res, err := astar.Search(ctx, GridGraph{View: snap}, start, goal, Manhattan, options...)
	out := SearchResult{
		Path:        res.Path,
		SearchStats: SearchStats{Frontier: res.FrontierSize, Visited: res.VisitedSize},
	}
	if errors.Is(err, astar.ErrNoPath) {
		out.Path = nil
		return out, nil
	}
	return out, err
}
