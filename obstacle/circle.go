package obstacle

import (
	"fmt"

	"github.com/pdrpinto/dynastar/grid"
)

// Circle is a disc moving at constant velocity from its center at tick 0.
type Circle struct {
	CenterX, CenterY float64
	Radius           float64
	VelX, VelY       float64

	x, y float64
	t    int
}

// NewCircle validates its inputs and returns a circle positioned at tick 0.
func NewCircle(cx, cy, radius, vx, vy float64) (*Circle, error) {
	if !finite(cx, cy, radius, vx, vy) {
		return nil, fmt.Errorf("circle at (%g, %g): %w", cx, cy, ErrNonFinite)
	}
	if radius < 0 {
		return nil, fmt.Errorf("circle radius %g: %w", radius, ErrInvalidRadius)
	}
	c := &Circle{CenterX: cx, CenterY: cy, Radius: radius, VelX: vx, VelY: vy}
	c.Update(0)
	return c, nil
}

func (c *Circle) Update(t int) {
	c.t = t
	c.x = c.CenterX + c.VelX*float64(t)
	c.y = c.CenterY + c.VelY*float64(t)
}

func (c *Circle) Rasterize(shape grid.Shape) []grid.Point {
	if shape.Empty() {
		return nil
	}
	r0, r1, c0, c1 := box(c.x, c.y, c.Radius, shape)
	r2 := c.Radius * c.Radius
	var cells []grid.Point
	for row := r0; row <= r1; row++ {
		dy := float64(row) - c.y
		for col := c0; col <= c1; col++ {
			dx := float64(col) - c.x
			if dx*dx+dy*dy <= r2 {
				cells = append(cells, grid.Point{Row: row, Col: col})
			}
		}
	}
	return cells
}

func (c *Circle) Position() (float64, float64) { return c.x, c.y }

func (c *Circle) Tick() int { return c.t }

func (c *Circle) Kind() Kind { return KindCircle }

func (c *Circle) Clone() Obstacle {
	cp := *c
	return &cp
}

func (c *Circle) String() string {
	return fmt.Sprintf("circle c=(%g,%g) r=%g v=(%g,%g) t=%d", c.CenterX, c.CenterY, c.Radius, c.VelX, c.VelY, c.t)
}

func (*Circle) obstacle() {}
