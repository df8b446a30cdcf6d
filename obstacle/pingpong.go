package obstacle

import (
	"fmt"

	"github.com/pdrpinto/dynastar/grid"
)

// PingPongSegment shuttles a square block between two endpoints, reaching
// End at tick Period/2 and returning to Start at tick Period.
//
// The footprint is the square of half-width Width around the current point,
// not the swept segment.
type PingPongSegment struct {
	StartX, StartY float64
	EndX, EndY     float64
	Period         int
	Width          int

	x, y float64
	t    int
}

// NewPingPongSegment validates its inputs and returns a segment at Start.
func NewPingPongSegment(sx, sy, ex, ey float64, period, width int) (*PingPongSegment, error) {
	if !finite(sx, sy, ex, ey) {
		return nil, fmt.Errorf("pingpong (%g,%g)->(%g,%g): %w", sx, sy, ex, ey, ErrNonFinite)
	}
	if period < 1 {
		return nil, fmt.Errorf("pingpong period %d: %w", period, ErrInvalidPeriod)
	}
	if width < 1 {
		return nil, fmt.Errorf("pingpong width %d: %w", width, ErrInvalidWidth)
	}
	p := &PingPongSegment{StartX: sx, StartY: sy, EndX: ex, EndY: ey, Period: period, Width: width}
	p.Update(0)
	return p, nil
}

// Phase is the interpolation factor in [0, 1] at tick t.
func (p *PingPongSegment) Phase(t int) float64 {
	period := max(1, p.Period)
	half := period / 2
	m := t % period
	if m < 0 {
		m += period
	}
	denom := float64(max(1, half))
	if m <= half {
		return float64(m) / denom
	}
	return float64(period-m) / denom
}

func (p *PingPongSegment) Update(t int) {
	p.t = t
	alpha := p.Phase(t)
	p.x = p.StartX + (p.EndX-p.StartX)*alpha
	p.y = p.StartY + (p.EndY-p.StartY)*alpha
}

func (p *PingPongSegment) Rasterize(shape grid.Shape) []grid.Point {
	if shape.Empty() {
		return nil
	}
	r0, r1, c0, c1 := box(p.x, p.y, float64(max(1, p.Width)), shape)
	if r1 < r0 || c1 < c0 {
		return nil
	}
	cells := make([]grid.Point, 0, (r1-r0+1)*(c1-c0+1))
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			cells = append(cells, grid.Point{Row: row, Col: col})
		}
	}
	return cells
}

func (p *PingPongSegment) Position() (float64, float64) { return p.x, p.y }

func (p *PingPongSegment) Tick() int { return p.t }

func (p *PingPongSegment) Kind() Kind { return KindPingPong }

func (p *PingPongSegment) Clone() Obstacle {
	cp := *p
	return &cp
}

func (p *PingPongSegment) String() string {
	return fmt.Sprintf("pingpong (%g,%g)->(%g,%g) period=%d width=%d t=%d",
		p.StartX, p.StartY, p.EndX, p.EndY, p.Period, p.Width, p.t)
}

func (*PingPongSegment) obstacle() {}
