// Package dynmap owns a grid whose moving obstacles are redrawn every tick.
//
// A Map never patches its grid incrementally: every Rebuild repaints the
// whole raster from the static wall mask, the obstacle footprints at the
// current tick, the agent and the goal, in that order.
package dynmap

import (
	"errors"
	"fmt"

	"github.com/pdrpinto/dynastar/grid"
	"github.com/pdrpinto/dynastar/obstacle"
)

var (
	ErrEmptyGrid      = errors.New("dynmap: grid has no cells")
	ErrShapeMismatch  = errors.New("dynmap: grid and wall mask shapes differ")
	ErrNegativeRadius = errors.New("dynmap: goal radius must be >= 0")
	ErrNilObstacle    = errors.New("dynmap: nil obstacle")
)

// Config places the agent and goal on a new map.
type Config struct {
	Agent      grid.Point
	Goal       grid.Point
	GoalRadius float64
}

// Map is a dynamic grid map. It is not safe for concurrent use; branch with
// Clone instead of sharing.
type Map struct {
	grid      *grid.Grid
	walls     *grid.Mask
	obstacles []obstacle.Obstacle

	t          int
	agent      grid.Point
	goal       grid.Point
	goalRadius float64
}

// New extracts the static walls from base and draws the map at tick 0.
// Neither base nor the obstacles are retained; the map owns copies.
func New(base *grid.Grid, cfg Config, obstacles ...obstacle.Obstacle) (*Map, error) {
	if base == nil {
		return nil, ErrEmptyGrid
	}
	return NewWithMask(grid.WallsOf(base), cfg, obstacles...)
}

// NewWithMask builds a map from an existing static wall mask. The mask and
// obstacles are copied.
func NewWithMask(walls *grid.Mask, cfg Config, obstacles ...obstacle.Obstacle) (*Map, error) {
	if walls == nil || walls.Shape().Empty() {
		return nil, ErrEmptyGrid
	}
	if cfg.GoalRadius < 0 {
		return nil, fmt.Errorf("radius %g: %w", cfg.GoalRadius, ErrNegativeRadius)
	}
	m := &Map{
		grid:       grid.New(walls.Shape()),
		walls:      walls.Clone(),
		obstacles:  make([]obstacle.Obstacle, 0, len(obstacles)),
		agent:      cfg.Agent,
		goal:       cfg.Goal,
		goalRadius: cfg.GoalRadius,
	}
	for i, o := range obstacles {
		if o == nil {
			return nil, fmt.Errorf("obstacle %d: %w", i, ErrNilObstacle)
		}
		o = o.Clone()
		o.Update(0)
		m.obstacles = append(m.obstacles, o)
	}
	m.Rebuild()
	return m, nil
}

// NewWithShape builds a map whose static walls must match shape.
func NewWithShape(shape grid.Shape, walls *grid.Mask, cfg Config, obstacles ...obstacle.Obstacle) (*Map, error) {
	if walls != nil && walls.Shape() != shape {
		return nil, fmt.Errorf("grid %dx%d, mask %dx%d: %w",
			shape.Height, shape.Width, walls.Shape().Height, walls.Shape().Width, ErrShapeMismatch)
	}
	if walls == nil {
		walls = grid.NewMask(shape)
	}
	return NewWithMask(walls, cfg, obstacles...)
}

// AddObstacle appends a copy of o, moves it to the current tick and
// redraws. o itself is left untouched.
func (m *Map) AddObstacle(o obstacle.Obstacle) error {
	if o == nil {
		return ErrNilObstacle
	}
	o = o.Clone()
	o.Update(m.t)
	m.obstacles = append(m.obstacles, o)
	m.Rebuild()
	return nil
}

// Rebuild repaints the whole grid for the current tick.
func (m *Map) Rebuild() {
	shape := m.grid.Shape()
	m.grid.Fill(grid.Clear)
	m.walls.Paint(m.grid, grid.Wall)
	for _, o := range m.obstacles {
		for _, p := range o.Rasterize(shape) {
			m.grid.Set(p, grid.Wall)
		}
	}
	if shape.Contains(m.agent) {
		m.grid.Set(m.agent, grid.Agent)
	}
	// Goal is drawn last so a shared cell reads as Goal.
	if shape.Contains(m.goal) {
		m.grid.Set(m.goal, grid.Goal)
	}
}

// Advance moves the clock by dt ticks, updates every obstacle to the new
// absolute tick and rebuilds. A dt of zero, or a negative dt, only redraws.
func (m *Map) Advance(dt int) {
	if dt > 0 {
		m.t += dt
	}
	for _, o := range m.obstacles {
		o.Update(m.t)
	}
	m.Rebuild()
}

// SetAgent moves the agent. The grid shows the new position after the
// next Advance or Rebuild.
func (m *Map) SetAgent(p grid.Point) { m.agent = p }

// SetGoal moves the goal, with the same redraw rule as SetAgent.
func (m *Map) SetGoal(p grid.Point) { m.goal = p }

func (m *Map) Agent() grid.Point { return m.agent }

func (m *Map) Goal() grid.Point { return m.goal }

func (m *Map) GoalRadius() float64 { return m.goalRadius }

// AgentInGoalRadius reports whether the agent is within the goal acceptance
// radius, measured as Euclidean cell distance.
func (m *Map) AgentInGoalRadius() bool {
	return m.agent.Distance(m.goal) <= m.goalRadius
}

func (m *Map) Tick() int { return m.t }

func (m *Map) Shape() grid.Shape { return m.grid.Shape() }

// CellCount is H*W.
func (m *Map) CellCount() int { return m.grid.Shape().Cells() }

// At returns the current state of p.
func (m *Map) At(p grid.Point) grid.State { return m.grid.At(p) }

func (m *Map) InBounds(p grid.Point) bool { return m.grid.InBounds(p) }

// Grid returns a copy of the current raster.
func (m *Map) Grid() *grid.Grid { return m.grid.Clone() }

// StaticWalls returns a copy of the static wall mask.
func (m *Map) StaticWalls() *grid.Mask { return m.walls.Clone() }

// Obstacles returns independent copies of the obstacles in draw order.
func (m *Map) Obstacles() []obstacle.Obstacle {
	out := make([]obstacle.Obstacle, len(m.obstacles))
	for i, o := range m.obstacles {
		out[i] = o.Clone()
	}
	return out
}

// Clone returns a map sharing no mutable state with m.
func (m *Map) Clone() *Map {
	c := &Map{
		grid:       m.grid.Clone(),
		walls:      m.walls.Clone(),
		obstacles:  make([]obstacle.Obstacle, len(m.obstacles)),
		t:          m.t,
		agent:      m.agent,
		goal:       m.goal,
		goalRadius: m.goalRadius,
	}
	for i, o := range m.obstacles {
		c.obstacles[i] = o.Clone()
	}
	return c
}

// Snapshot freezes the current tick for one search.
func (m *Map) Snapshot() *Snapshot {
	return &Snapshot{grid: m.grid.Clone(), agent: m.agent, goal: m.goal, tick: m.t}
}
