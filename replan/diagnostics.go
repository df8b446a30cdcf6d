package replan

import "github.com/pdrpinto/dynastar/grid"

// Diagnostics reports the most recently completed inner search as
// percentages of the map's cell count, plus the agent trace.
type Diagnostics struct {
	Frontier float64
	Visited  float64
	Total    float64
	Trace    []grid.Point
}

// NewDiagnostics converts raw counts. A nil stats means no search has
// completed yet and every percentage is zero.
func NewDiagnostics(cells int, stats *SearchStats, trace []grid.Point) Diagnostics {
	d := Diagnostics{Trace: append([]grid.Point{}, trace...)}
	if stats == nil {
		return d
	}
	d.Frontier = Percent(cells, stats.Frontier)
	d.Visited = Percent(cells, stats.Visited)
	d.Total = Percent(cells, stats.Frontier+stats.Visited)
	return d
}

// Percent is 100*count/cells, or 0 for an empty map.
func Percent(cells, count int) float64 {
	if cells <= 0 {
		return 0
	}
	return 100 * float64(count) / float64(cells)
}
