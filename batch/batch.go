// Package batch evaluates many replanning runs side by side. Every run gets
// its own cloned map and its own searcher, so runs share no mutable state.
package batch

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/pdrpinto/dynastar/dynmap"
	"github.com/pdrpinto/dynastar/replan"
)

// Branch clones base once per offset and advances each clone by that many
// ticks, so the same layout can be evaluated against every obstacle phase.
func Branch(base *dynmap.Map, offsets []int) []*dynmap.Map {
	maps := make([]*dynmap.Map, len(offsets))
	for i, off := range offsets {
		maps[i] = base.Clone()
		maps[i].Advance(off)
	}
	return maps
}

// Offsets returns 0, step, 2*step, ... n values.
func Offsets(n, step int) []int {
	out := make([]int, max(0, n))
	for i := range out {
		out[i] = i * step
	}
	return out
}

// Run drives every map to a terminal state with at most limit runs in
// flight (limit <= 0 means unbounded). Outcomes are in map order. The
// first searcher error cancels the remaining runs.
func Run(
	ctx context.Context,
	maps []*dynmap.Map,
	newSearcher func() replan.Searcher,
	limit int,
	opts ...replan.Option,
) ([]replan.Outcome, error) {
	outcomes := make([]replan.Outcome, len(maps))
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, m := range maps {
		g.Go(func() error {
			out, err := replan.New(m, newSearcher(), opts...).Run(ctx)
			outcomes[i] = out
			if err != nil {
				return fmt.Errorf("run %d: %w", i, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return outcomes, err
	}
	return outcomes, nil
}

// Summary aggregates outcomes.
type Summary struct {
	Runs      int
	ByState   map[replan.State]int
	MeanTicks float64 // over successful runs only
	MinTicks  int     // over successful runs only, -1 when none succeeded
	MaxTicks  int
}

// Summarize counts terminal states and success tick statistics.
func Summarize(outcomes []replan.Outcome) Summary {
	s := Summary{Runs: len(outcomes), ByState: make(map[replan.State]int), MinTicks: -1}
	total, n := 0, 0
	for _, o := range outcomes {
		s.ByState[o.State]++
		if o.State != replan.Succeeded {
			continue
		}
		total += o.Ticks
		n++
		if s.MinTicks < 0 || o.Ticks < s.MinTicks {
			s.MinTicks = o.Ticks
		}
		if o.Ticks > s.MaxTicks {
			s.MaxTicks = o.Ticks
		}
	}
	if n > 0 {
		s.MeanTicks = float64(total) / float64(n)
	}
	return s
}

// SuccessRate is the fraction of runs that reached the goal.
func (s Summary) SuccessRate() float64 {
	if s.Runs == 0 {
		return 0
	}
	return float64(s.ByState[replan.Succeeded]) / float64(s.Runs)
}
