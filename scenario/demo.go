package scenario

import (
	"fmt"

	"github.com/pdrpinto/dynastar/dynmap"
	"github.com/pdrpinto/dynastar/grid"
	"github.com/pdrpinto/dynastar/obstacle"
)

// Demo builds a walled room with a shuttling bar across the middle row and
// a slow circle drifting right from the left third. The agent starts in
// the top-left corner and the goal sits in the bottom-right one.
func Demo(height, width int) (*Scenario, error) {
	if height < 5 || width < 5 {
		return nil, fmt.Errorf("demo needs at least 5x5, got %dx%d: %w", height, width, ErrSyntax)
	}
	shape := grid.Shape{Height: height, Width: width}
	walls := grid.NewMask(shape)
	for c := 0; c < width; c++ {
		walls.Set(grid.Point{Row: 0, Col: c}, true)
		walls.Set(grid.Point{Row: height - 1, Col: c}, true)
	}
	for r := 0; r < height; r++ {
		walls.Set(grid.Point{Row: r, Col: 0}, true)
		walls.Set(grid.Point{Row: r, Col: width - 1}, true)
	}

	w, h := float64(width), float64(height)
	bar, err := obstacle.NewPingPongSegment(float64(int(w*0.2)), float64(int(h*0.5)), float64(int(w*0.8)), float64(int(h*0.5)), 60, 2)
	if err != nil {
		return nil, err
	}
	circle, err := obstacle.NewCircle(w*0.3, h*0.5, 2.5, 0.2, 0)
	if err != nil {
		return nil, err
	}
	return &Scenario{
		Walls: walls,
		Config: dynmap.Config{
			Agent:      grid.Point{Row: 1, Col: 1},
			Goal:       grid.Point{Row: height - 2, Col: width - 2},
			GoalRadius: 1,
		},
		Obstacles: []obstacle.Obstacle{bar, circle},
	}, nil
}
