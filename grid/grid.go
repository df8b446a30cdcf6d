// Package grid holds the cell-state raster shared by the dynamic map, the
// obstacles that paint onto it and the searches that read it.
package grid

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// State is the content of one grid cell.
type State uint8

const (
	Clear State = iota
	Wall
	Agent
	Goal
)

var stateRunes = [...]rune{Clear: '.', Wall: '#', Agent: 'A', Goal: 'G'}

func (s State) String() string {
	switch s {
	case Clear:
		return "clear"
	case Wall:
		return "wall"
	case Agent:
		return "agent"
	case Goal:
		return "goal"
	}
	return fmt.Sprintf("state(%d)", uint8(s))
}

// Rune returns the character Dump uses for s.
func (s State) Rune() rune {
	if int(s) < len(stateRunes) {
		return stateRunes[s]
	}
	return '?'
}

// ErrBadCell is returned by Parse for characters outside ".#AG".
var ErrBadCell = errors.New("grid: unknown cell character")

// ErrRagged is returned by Parse when rows differ in width.
var ErrRagged = errors.New("grid: rows have different widths")

// Point addresses a cell by row and column.
type Point struct {
	Row, Col int
}

// Distance is the Euclidean distance between two cell centers.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(float64(p.Row-q.Row), float64(p.Col-q.Col))
}

// Manhattan is the 4-connected step distance between p and q.
func (p Point) Manhattan(q Point) int {
	dr := p.Row - q.Row
	if dr < 0 {
		dr = -dr
	}
	dc := p.Col - q.Col
	if dc < 0 {
		dc = -dc
	}
	return dr + dc
}

func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.Row, p.Col) }

// Shape is the fixed size of a grid.
type Shape struct {
	Height, Width int
}

// Contains reports whether p lies inside the shape.
func (s Shape) Contains(p Point) bool {
	return p.Row >= 0 && p.Row < s.Height && p.Col >= 0 && p.Col < s.Width
}

// Cells is H*W.
func (s Shape) Cells() int { return s.Height * s.Width }

// Empty reports a shape with no cells.
func (s Shape) Empty() bool { return s.Height <= 0 || s.Width <= 0 }

// View is the read-only capability a search gets for one snapshot.
type View interface {
	Shape() Shape
	At(p Point) State
	InBounds(p Point) bool
	Agent() Point
	Goal() Point
}

// Grid is a fixed-size row-major raster of cell states. It implements View,
// locating the agent and goal by their markers.
type Grid struct {
	shape Shape
	cells []State
}

// New returns an all-Clear grid. Negative dimensions are treated as zero.
func New(shape Shape) *Grid {
	if shape.Height < 0 {
		shape.Height = 0
	}
	if shape.Width < 0 {
		shape.Width = 0
	}
	return &Grid{shape: shape, cells: make([]State, shape.Cells())}
}

// Parse builds a grid from rows of '.', '#', 'A' and 'G'.
func Parse(rows []string) (*Grid, error) {
	if len(rows) == 0 {
		return New(Shape{}), nil
	}
	width := len([]rune(rows[0]))
	g := New(Shape{Height: len(rows), Width: width})
	for r, line := range rows {
		runes := []rune(line)
		if len(runes) != width {
			return nil, fmt.Errorf("row %d has width %d, want %d: %w", r, len(runes), width, ErrRagged)
		}
		for c, ch := range runes {
			var s State
			switch ch {
			case '.', '_', ' ':
				s = Clear
			case '#':
				s = Wall
			case 'A':
				s = Agent
			case 'G':
				s = Goal
			default:
				return nil, fmt.Errorf("row %d col %d %q: %w", r, c, ch, ErrBadCell)
			}
			g.cells[r*width+c] = s
		}
	}
	return g, nil
}

func (g *Grid) Shape() Shape { return g.shape }

func (g *Grid) InBounds(p Point) bool { return g.shape.Contains(p) }

// At returns the state at p, or Wall when p is outside the grid.
func (g *Grid) At(p Point) State {
	if !g.shape.Contains(p) {
		return Wall
	}
	return g.cells[p.Row*g.shape.Width+p.Col]
}

// Set writes s at p. Out-of-bounds writes are ignored.
func (g *Grid) Set(p Point, s State) {
	if !g.shape.Contains(p) {
		return
	}
	g.cells[p.Row*g.shape.Width+p.Col] = s
}

// Fill sets every cell to s.
func (g *Grid) Fill(s State) {
	for i := range g.cells {
		g.cells[i] = s
	}
}

// Cells exposes the row-major backing slice. Callers must not keep it
// across a rebuild.
func (g *Grid) Cells() []State { return g.cells }

// Clone returns a grid with its own backing storage.
func (g *Grid) Clone() *Grid {
	cells := make([]State, len(g.cells))
	copy(cells, g.cells)
	return &Grid{shape: g.shape, cells: cells}
}

// Equal reports whether both grids have the same shape and contents.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.shape != other.shape {
		return false
	}
	for i, s := range g.cells {
		if other.cells[i] != s {
			return false
		}
	}
	return true
}

// Find returns the first cell in row-major order holding s.
func (g *Grid) Find(s State) (Point, bool) {
	for i, c := range g.cells {
		if c == s {
			return Point{Row: i / g.shape.Width, Col: i % g.shape.Width}, true
		}
	}
	return Point{}, false
}

// Agent returns the first Agent cell, or (-1,-1) when there is none.
func (g *Grid) Agent() Point { return g.findOr(Agent) }

// Goal returns the first Goal cell, or (-1,-1) when there is none.
func (g *Grid) Goal() Point { return g.findOr(Goal) }

func (g *Grid) findOr(s State) Point {
	if p, ok := g.Find(s); ok {
		return p
	}
	return Point{Row: -1, Col: -1}
}

// Count returns the number of cells holding s.
func (g *Grid) Count(s State) int {
	n := 0
	for _, c := range g.cells {
		if c == s {
			n++
		}
	}
	return n
}

// Rows renders each row as a string of state runes.
func (g *Grid) Rows() []string {
	rows := make([]string, g.shape.Height)
	var b strings.Builder
	for r := 0; r < g.shape.Height; r++ {
		b.Reset()
		for c := 0; c < g.shape.Width; c++ {
			b.WriteRune(g.cells[r*g.shape.Width+c].Rune())
		}
		rows[r] = b.String()
	}
	return rows
}

// Dump renders the grid top row first, one line per row.
func (g *Grid) Dump() string {
	return strings.Join(g.Rows(), "\n") + "\n"
}
