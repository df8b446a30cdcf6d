// Package obstacle models hazards that move across a grid over discrete
// ticks. Every variant computes its position from the absolute tick alone,
// so evaluating the same tick twice always yields the same footprint.
//
// Coordinates follow image convention: x is the column axis, y the row
// axis. Footprints are returned as grid points clipped to the grid shape.
package obstacle

import (
	"errors"
	"math"

	"github.com/pdrpinto/dynastar/grid"
)

var (
	ErrInvalidRadius = errors.New("obstacle: radius must be >= 0")
	ErrInvalidPeriod = errors.New("obstacle: period must be >= 1")
	ErrInvalidWidth  = errors.New("obstacle: width must be >= 1")
	ErrNonFinite     = errors.New("obstacle: coordinates must be finite")
)

// Kind names an obstacle variant.
type Kind string

const (
	KindCircle   Kind = "circle"
	KindPingPong Kind = "pingpong"
)

// Obstacle is the closed set of moving hazards. The unexported method keeps
// the set of variants inside this package.
type Obstacle interface {
	// Update moves the obstacle to absolute tick t.
	Update(t int)
	// Rasterize returns the cells covered at the current tick in row-major
	// order, clipped to shape.
	Rasterize(shape grid.Shape) []grid.Point
	Position() (x, y float64)
	Tick() int
	Kind() Kind
	// Clone returns an independent copy carrying the same tick.
	Clone() Obstacle

	obstacle()
}

// Footprint evaluates o at tick t without touching the caller's instance.
func Footprint(o Obstacle, t int, shape grid.Shape) []grid.Point {
	c := o.Clone()
	c.Update(t)
	return c.Rasterize(shape)
}

// box returns the clipped inclusive cell range covering [x-r, x+r] x [y-r, y+r].
func box(x, y, r float64, shape grid.Shape) (r0, r1, c0, c1 int) {
	c0 = max(0, int(math.Floor(x-r)))
	c1 = min(shape.Width-1, int(math.Ceil(x+r)))
	r0 = max(0, int(math.Floor(y-r)))
	r1 = min(shape.Height-1, int(math.Ceil(y+r)))
	return r0, r1, c0, c1
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
