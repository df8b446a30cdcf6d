package dynmap

import (
	"errors"
	"testing"

	"github.com/pdrpinto/dynastar/grid"
	"github.com/pdrpinto/dynastar/obstacle"
)

func room(t *testing.T) *grid.Grid {
	t.Helper()
	g, err := grid.Parse([]string{
		"##########",
		"#........#",
		"#........#",
		"#...##...#",
		"#........#",
		"##########",
	})
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func newTestMap(t *testing.T, obs ...obstacle.Obstacle) *Map {
	t.Helper()
	m, err := New(room(t), Config{Agent: grid.Point{Row: 1, Col: 1}, Goal: grid.Point{Row: 4, Col: 8}, GoalRadius: 1}, obs...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return m
}

func TestNewDrawsAgentAndGoal(t *testing.T) {
	m := newTestMap(t)
	want := "" +
		"##########\n" +
		"#A.......#\n" +
		"#........#\n" +
		"#...##...#\n" +
		"#.......G#\n" +
		"##########\n"
	if got := m.Grid().Dump(); got != want {
		t.Errorf("initial grid:\n%s\nwant:\n%s", got, want)
	}
	if m.Tick() != 0 {
		t.Errorf("Tick = %d", m.Tick())
	}
}

func TestConstructionErrors(t *testing.T) {
	if _, err := New(grid.New(grid.Shape{}), Config{}); !errors.Is(err, ErrEmptyGrid) {
		t.Errorf("empty grid: %v", err)
	}
	if _, err := New(room(t), Config{GoalRadius: -1}); !errors.Is(err, ErrNegativeRadius) {
		t.Errorf("negative radius: %v", err)
	}
	if _, err := New(room(t), Config{}, nil); !errors.Is(err, ErrNilObstacle) {
		t.Errorf("nil obstacle: %v", err)
	}
	mask := grid.NewMask(grid.Shape{Height: 3, Width: 3})
	if _, err := NewWithShape(grid.Shape{Height: 3, Width: 4}, mask, Config{}); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("shape mismatch: %v", err)
	}
}

func TestRebuildIdempotent(t *testing.T) {
	circle, _ := obstacle.NewCircle(4, 2, 1.5, 0.5, 0)
	seg, _ := obstacle.NewPingPongSegment(1, 4, 8, 4, 6, 1)
	m := newTestMap(t, circle, seg)
	for i := 0; i < 7; i++ {
		m.Rebuild()
		first := m.Grid()
		m.Rebuild()
		if !first.Equal(m.Grid()) {
			t.Fatalf("rebuild not idempotent at t=%d", m.Tick())
		}
		m.Advance(1)
	}
}

func TestStaticWallsPermanent(t *testing.T) {
	circle, _ := obstacle.NewCircle(0, 0, 3, 0.7, 0.4)
	seg, _ := obstacle.NewPingPongSegment(0, 3, 9, 3, 8, 2)
	m := newTestMap(t, circle, seg)
	walls := m.StaticWalls()
	shape := m.Shape()
	for tick := 0; tick < 20; tick++ {
		for r := 0; r < shape.Height; r++ {
			for c := 0; c < shape.Width; c++ {
				p := grid.Point{Row: r, Col: c}
				if walls.Has(p) && m.At(p) != grid.Wall {
					t.Fatalf("static wall %v missing at t=%d", p, m.Tick())
				}
			}
		}
		m.Advance(1)
	}
	if !walls.Equal(m.StaticWalls()) {
		t.Error("static wall mask changed")
	}
}

func TestAdvanceMovesObstacles(t *testing.T) {
	seg, _ := obstacle.NewPingPongSegment(2, 2, 7, 2, 10, 1)
	m := newTestMap(t, seg)
	if m.At(grid.Point{Row: 2, Col: 7}) == grid.Wall {
		t.Fatal("segment should start near column 2")
	}
	m.Advance(5)
	if m.Tick() != 5 {
		t.Fatalf("Tick = %d", m.Tick())
	}
	if m.At(grid.Point{Row: 2, Col: 7}) != grid.Wall {
		t.Errorf("segment should be at column 7 at t=5:\n%s", m.Grid().Dump())
	}
	if m.At(grid.Point{Row: 2, Col: 2}) == grid.Wall {
		t.Errorf("old footprint left behind:\n%s", m.Grid().Dump())
	}
	m.Advance(0)
	m.Advance(-3)
	if m.Tick() != 5 {
		t.Errorf("non-positive dt changed tick to %d", m.Tick())
	}
}

func TestAgentDrawnAfterSetAgentOnlyOnRebuild(t *testing.T) {
	m := newTestMap(t)
	m.SetAgent(grid.Point{Row: 2, Col: 2})
	if m.At(grid.Point{Row: 2, Col: 2}) == grid.Agent {
		t.Fatal("SetAgent must not redraw by itself")
	}
	m.Advance(1)
	if m.At(grid.Point{Row: 2, Col: 2}) != grid.Agent || m.At(grid.Point{Row: 1, Col: 1}) != grid.Clear {
		t.Errorf("agent not moved:\n%s", m.Grid().Dump())
	}
}

func TestAgentAndGoalOverlapDrawsGoal(t *testing.T) {
	m, err := New(room(t), Config{Agent: grid.Point{Row: 2, Col: 2}, Goal: grid.Point{Row: 2, Col: 2}})
	if err != nil {
		t.Fatal(err)
	}
	if s := m.At(grid.Point{Row: 2, Col: 2}); s != grid.Goal {
		t.Errorf("overlap drew %s", s)
	}
	if !m.AgentInGoalRadius() {
		t.Error("agent on goal must be within radius 0")
	}
}

func TestAgentOverObstacleDrawsAgent(t *testing.T) {
	circle, _ := obstacle.NewCircle(1, 1, 1, 0, 0)
	m := newTestMap(t, circle)
	if s := m.At(grid.Point{Row: 1, Col: 1}); s != grid.Agent {
		t.Errorf("agent cell drew %s", s)
	}
	if m.At(grid.Point{Row: 1, Col: 2}) != grid.Wall {
		t.Error("circle footprint missing")
	}
}

func TestOutOfBoundsAgentNotDrawn(t *testing.T) {
	m, err := New(room(t), Config{Agent: grid.Point{Row: -1, Col: 3}, Goal: grid.Point{Row: 40, Col: 40}})
	if err != nil {
		t.Fatal(err)
	}
	g := m.Grid()
	if g.Count(grid.Agent) != 0 || g.Count(grid.Goal) != 0 {
		t.Errorf("out-of-bounds entities drawn:\n%s", g.Dump())
	}
}

func TestCloneIndependence(t *testing.T) {
	seg, _ := obstacle.NewPingPongSegment(2, 2, 7, 2, 10, 1)
	m := newTestMap(t, seg)
	m.Advance(2)
	c := m.Clone()
	if c.Tick() != 2 || !c.Grid().Equal(m.Grid()) {
		t.Fatal("clone does not match the original")
	}

	c.SetAgent(grid.Point{Row: 4, Col: 1})
	c.Advance(3)
	if m.Tick() != 2 || m.Agent() != (grid.Point{Row: 1, Col: 1}) {
		t.Error("advancing the clone changed the original")
	}
	if m.Obstacles()[0].Tick() != 2 {
		t.Errorf("original obstacle moved to t=%d", m.Obstacles()[0].Tick())
	}
	before := m.Grid()
	m.Rebuild()
	if !before.Equal(m.Grid()) {
		t.Error("original grid aliased by clone")
	}
}

func TestObstaclesReturnsCopies(t *testing.T) {
	seg, _ := obstacle.NewPingPongSegment(2, 2, 7, 2, 10, 1)
	m := newTestMap(t, seg)
	m.Obstacles()[0].Update(99)
	if m.Obstacles()[0].Tick() != 0 {
		t.Error("Obstacles leaked an internal pointer")
	}
}

func TestAddObstacleJoinsAtCurrentTick(t *testing.T) {
	m := newTestMap(t)
	m.Advance(4)
	seg, _ := obstacle.NewPingPongSegment(2, 2, 6, 2, 8, 1)
	if err := m.AddObstacle(seg); err != nil {
		t.Fatal(err)
	}
	if got := m.Obstacles()[0].Tick(); got != 4 {
		t.Errorf("added obstacle at t=%d, want 4", got)
	}
	if seg.Tick() != 0 {
		t.Errorf("caller's obstacle moved to t=%d", seg.Tick())
	}
	if m.At(grid.Point{Row: 2, Col: 6}) != grid.Wall {
		t.Errorf("added obstacle not drawn:\n%s", m.Grid().Dump())
	}
	if err := m.AddObstacle(nil); !errors.Is(err, ErrNilObstacle) {
		t.Errorf("AddObstacle(nil) = %v", err)
	}
}

func TestSnapshotFrozen(t *testing.T) {
	seg, _ := obstacle.NewPingPongSegment(2, 2, 7, 2, 10, 1)
	m := newTestMap(t, seg)
	snap := m.Snapshot()
	before := snap.Dump()
	m.SetAgent(grid.Point{Row: 4, Col: 4})
	m.Advance(5)
	if snap.Dump() != before || snap.Tick() != 0 || snap.Agent() != (grid.Point{Row: 1, Col: 1}) {
		t.Error("snapshot changed after Advance")
	}
}

func TestMapsDoNotShareObstacles(t *testing.T) {
	seg, _ := obstacle.NewPingPongSegment(2, 2, 7, 2, 10, 1)
	m1 := newTestMap(t, seg)
	m2 := newTestMap(t, seg)
	before := m2.Grid()

	m1.Advance(5)
	m2.Rebuild()
	if !m2.Grid().Equal(before) {
		t.Errorf("advancing one map redrew the other:\n%s", m2.Grid().Dump())
	}
	if m2.Obstacles()[0].Tick() != 0 || seg.Tick() != 0 {
		t.Errorf("obstacle ticks: m2 %d, caller %d", m2.Obstacles()[0].Tick(), seg.Tick())
	}
	if m1.At(grid.Point{Row: 2, Col: 7}) != grid.Wall {
		t.Errorf("m1 did not advance its own obstacle:\n%s", m1.Grid().Dump())
	}
}
