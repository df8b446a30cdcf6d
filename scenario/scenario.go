// Package scenario reads and writes dynamic maps as plain text.
//
// A scenario file looks like:
//
//	map 6 10
//	agent 1 1
//	goal 4 8 1
//	circle 3.0 2.0 1.5 0.2 0
//	pingpong 2 4 8 4 12 1
//	grid
//	##########
//	#........#
//	...
//
// Directives before "grid" may come in any order; "map" must be first.
// Obstacle coordinates are x (column) then y (row). In the grid rows '#'
// is a static wall and 'A'/'G' mark the agent and goal when the agent or
// goal directive is missing. Lines starting with ';' are comments.
package scenario

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pdrpinto/dynastar/dynmap"
	"github.com/pdrpinto/dynastar/grid"
	"github.com/pdrpinto/dynastar/obstacle"
)

var (
	ErrSyntax     = errors.New("scenario: syntax error")
	ErrNoAgent    = errors.New("scenario: no agent position")
	ErrNoGoal     = errors.New("scenario: no goal position")
	ErrGridHeight = errors.New("scenario: wrong number of grid rows")
)

// Scenario is everything needed to build a dynamic map.
type Scenario struct {
	Walls     *grid.Mask
	Config    dynmap.Config
	Obstacles []obstacle.Obstacle
}

// Shape is the size of the scenario grid.
func (s *Scenario) Shape() grid.Shape { return s.Walls.Shape() }

// Build returns a fresh map at tick 0. Obstacles are cloned so one
// scenario can build any number of independent maps.
func (s *Scenario) Build() (*dynmap.Map, error) {
	obs := make([]obstacle.Obstacle, len(s.Obstacles))
	for i, o := range s.Obstacles {
		obs[i] = o.Clone()
	}
	return dynmap.NewWithShape(s.Walls.Shape(), s.Walls, s.Config, obs...)
}

// FromMap captures a map's static walls, agent, goal and obstacles. The
// obstacles keep their current tick; Build rewinds them to 0.
func FromMap(m *dynmap.Map) *Scenario {
	return &Scenario{
		Walls: m.StaticWalls(),
		Config: dynmap.Config{
			Agent:      m.Agent(),
			Goal:       m.Goal(),
			GoalRadius: m.GoalRadius(),
		},
		Obstacles: m.Obstacles(),
	}
}

// Load parses the scenario file at path.
func Load(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	s, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse reads a scenario from r.
func Parse(r io.Reader) (*Scenario, error) {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	next := func() (string, bool) {
		for scanner.Scan() {
			lineNo++
			line := strings.TrimRight(scanner.Text(), "\r")
			if strings.HasPrefix(strings.TrimSpace(line), ";") {
				continue
			}
			return line, true
		}
		return "", false
	}
	syntax := func(format string, args ...any) error {
		return fmt.Errorf("line %d: %s: %w", lineNo, fmt.Sprintf(format, args...), ErrSyntax)
	}

	var header string
	for {
		line, ok := next()
		if !ok {
			return nil, syntax("missing map header")
		}
		if strings.TrimSpace(line) != "" {
			header = line
			break
		}
	}
	var shape grid.Shape
	if len(strings.Fields(header)) != 3 {
		return nil, syntax("bad header %q", header)
	}
	if _, err := fmt.Sscanf(header, "map %d %d", &shape.Height, &shape.Width); err != nil {
		return nil, syntax("bad header %q", header)
	}
	if shape.Empty() {
		return nil, syntax("map %dx%d has no cells", shape.Height, shape.Width)
	}

	s := &Scenario{}
	var haveAgent, haveGoal bool
	for {
		line, ok := next()
		if !ok {
			return nil, syntax("missing grid section")
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "grid" {
			break
		}
		switch fields[0] {
		case "agent":
			if len(fields) != 3 {
				return nil, syntax("bad agent %q", line)
			}
			if _, err := fmt.Sscanf(line, "agent %d %d", &s.Config.Agent.Row, &s.Config.Agent.Col); err != nil {
				return nil, syntax("bad agent %q", line)
			}
			haveAgent = true
		case "goal":
			n, _ := fmt.Sscanf(line, "goal %d %d %g", &s.Config.Goal.Row, &s.Config.Goal.Col, &s.Config.GoalRadius)
			if n < 2 || n != len(fields)-1 {
				return nil, syntax("bad goal %q", line)
			}
			haveGoal = true
		case "circle":
			var cx, cy, r, vx, vy float64
			if len(fields) != 6 {
				return nil, syntax("bad circle %q", line)
			}
			if _, err := fmt.Sscanf(line, "circle %g %g %g %g %g", &cx, &cy, &r, &vx, &vy); err != nil {
				return nil, syntax("bad circle %q", line)
			}
			c, err := obstacle.NewCircle(cx, cy, r, vx, vy)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			s.Obstacles = append(s.Obstacles, c)
		case "pingpong":
			var sx, sy, ex, ey float64
			var period, width int
			if len(fields) != 7 {
				return nil, syntax("bad pingpong %q", line)
			}
			if _, err := fmt.Sscanf(line, "pingpong %g %g %g %g %d %d", &sx, &sy, &ex, &ey, &period, &width); err != nil {
				return nil, syntax("bad pingpong %q", line)
			}
			p, err := obstacle.NewPingPongSegment(sx, sy, ex, ey, period, width)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			s.Obstacles = append(s.Obstacles, p)
		default:
			return nil, syntax("unknown directive %q", fields[0])
		}
	}

	rows := make([]string, 0, shape.Height)
	for len(rows) < shape.Height {
		line, ok := next()
		if !ok {
			break
		}
		rows = append(rows, line)
	}
	if len(rows) != shape.Height {
		return nil, fmt.Errorf("got %d rows, want %d: %w", len(rows), shape.Height, ErrGridHeight)
	}
	g, err := grid.Parse(rows)
	if err != nil {
		return nil, fmt.Errorf("grid: %w", err)
	}
	if g.Shape() != shape {
		return nil, fmt.Errorf("grid is %dx%d, header says %dx%d: %w",
			g.Shape().Height, g.Shape().Width, shape.Height, shape.Width, ErrSyntax)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if !haveAgent {
		p, ok := g.Find(grid.Agent)
		if !ok {
			return nil, ErrNoAgent
		}
		s.Config.Agent = p
	}
	if !haveGoal {
		p, ok := g.Find(grid.Goal)
		if !ok {
			return nil, ErrNoGoal
		}
		s.Config.Goal = p
	}
	s.Walls = grid.WallsOf(g)
	return s, nil
}

// Write renders s in the format Parse reads.
func Write(w io.Writer, s *Scenario) error {
	bw := bufio.NewWriter(w)
	shape := s.Walls.Shape()
	fmt.Fprintf(bw, "map %d %d\n", shape.Height, shape.Width)
	fmt.Fprintf(bw, "agent %d %d\n", s.Config.Agent.Row, s.Config.Agent.Col)
	fmt.Fprintf(bw, "goal %d %d %g\n", s.Config.Goal.Row, s.Config.Goal.Col, s.Config.GoalRadius)
	for _, o := range s.Obstacles {
		switch o := o.(type) {
		case *obstacle.Circle:
			fmt.Fprintf(bw, "circle %g %g %g %g %g\n", o.CenterX, o.CenterY, o.Radius, o.VelX, o.VelY)
		case *obstacle.PingPongSegment:
			fmt.Fprintf(bw, "pingpong %g %g %g %g %d %d\n", o.StartX, o.StartY, o.EndX, o.EndY, o.Period, o.Width)
		}
	}
	fmt.Fprintln(bw, "grid")
	g := grid.New(shape)
	s.Walls.Paint(g, grid.Wall)
	for _, row := range g.Rows() {
		fmt.Fprintln(bw, row)
	}
	return bw.Flush()
}

// Save writes s to path.
func Save(path string, s *Scenario) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, s); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
