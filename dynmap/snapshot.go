package dynmap

import "github.com/pdrpinto/dynastar/grid"

// Snapshot is an immutable copy of a map at one tick. It implements
// grid.View.
type Snapshot struct {
	grid        *grid.Grid
	agent, goal grid.Point
	tick        int
}

var _ grid.View = (*Snapshot)(nil)

func (s *Snapshot) Shape() grid.Shape { return s.grid.Shape() }

func (s *Snapshot) At(p grid.Point) grid.State { return s.grid.At(p) }

func (s *Snapshot) InBounds(p grid.Point) bool { return s.grid.InBounds(p) }

func (s *Snapshot) Agent() grid.Point { return s.agent }

func (s *Snapshot) Goal() grid.Point { return s.goal }

func (s *Snapshot) Tick() int { return s.tick }

// Dump renders the frozen grid.
func (s *Snapshot) Dump() string { return s.grid.Dump() }
