// Package report prints run results for people and scripts.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/pdrpinto/dynastar/batch"
	"github.com/pdrpinto/dynastar/replan"
)

// Print writes the outcome of one run.
func Print(w io.Writer, out replan.Outcome) error {
	d := out.Diagnostics
	_, err := fmt.Fprintf(w,
		"Result: %s after %d ticks (%d searches)\n"+
			"Search space percentage (no fringe): %.2f%%\n"+
			"Fringe percentage: %.2f%%\n"+
			"Total search space percentage: %.2f%%\n",
		out.State, out.Ticks, out.Searches, d.Visited, d.Frontier, d.Total)
	return err
}

// PrintSummary writes one line per terminal state plus success statistics.
func PrintSummary(w io.Writer, s batch.Summary) error {
	states := make([]replan.State, 0, len(s.ByState))
	for st := range s.ByState {
		states = append(states, st)
	}
	sort.Slice(states, func(i, j int) bool { return states[i] < states[j] })

	if _, err := fmt.Fprintf(w, "Runs: %d, success rate %.1f%%\n", s.Runs, 100*s.SuccessRate()); err != nil {
		return err
	}
	for _, st := range states {
		if _, err := fmt.Fprintf(w, "  %-20s %d\n", st, s.ByState[st]); err != nil {
			return err
		}
	}
	if s.MinTicks >= 0 {
		_, err := fmt.Fprintf(w, "Ticks to goal: mean %.1f, min %d, max %d\n", s.MeanTicks, s.MinTicks, s.MaxTicks)
		return err
	}
	return nil
}

type jsonOutcome struct {
	State    string   `json:"state"`
	Ticks    int      `json:"ticks"`
	Searches int      `json:"searches"`
	Fringe   float64  `json:"fringe"`
	Search   float64  `json:"search_space"`
	Total    float64  `json:"total_search_space"`
	Trace    [][2]int `json:"trace"`
}

// WriteJSON encodes the outcome with the trace as [row, col] pairs.
func WriteJSON(w io.Writer, out replan.Outcome) error {
	j := jsonOutcome{
		State:    out.State.String(),
		Ticks:    out.Ticks,
		Searches: out.Searches,
		Fringe:   out.Diagnostics.Frontier,
		Search:   out.Diagnostics.Visited,
		Total:    out.Diagnostics.Total,
		Trace:    make([][2]int, len(out.Trace)),
	}
	for i, p := range out.Trace {
		j.Trace[i] = [2]int{p.Row, p.Col}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(j)
}
