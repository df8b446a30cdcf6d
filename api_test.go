package astar

import (
	"context"
	"errors"
	"runtime"
	"testing"
	"time"
)

type point = [2]int

// testGrid is a 4-connected grid; '#' blocks.
type testGrid struct {
	rows []string
}

func (g testGrid) Neighbors(p point) []Neighbor[point] {
	out := make([]Neighbor[point], 0, 4)
	for _, d := range []point{{0, 1}, {1, 0}, {0, -1}, {-1, 0}} {
		np := point{p[0] + d[0], p[1] + d[1]}
		if np[0] < 0 || np[0] >= len(g.rows) || np[1] < 0 || np[1] >= len(g.rows[0]) {
			continue
		}
		if g.rows[np[0]][np[1]] == '#' {
			continue
		}
		out = append(out, Neighbor[point]{ID: np, Cost: 1})
	}
	return out
}

func manhattan(a, b point) float64 {
	dx := a[0] - b[0]
	if dx < 0 {
		dx = -dx
	}
	dy := a[1] - b[1]
	if dy < 0 {
		dy = -dy
	}
	return float64(dx + dy)
}

var maze = testGrid{rows: []string{
	".....",
	".###.",
	"...#.",
	"##.#.",
	".....",
}}

func TestSearchFindsShortestPath(t *testing.T) {
	for _, workers := range []int{1, 4} {
		res, err := Search(context.Background(), maze, point{0, 0}, point{4, 0}, manhattan, WithWorkers(workers))
		if err != nil {
			t.Fatalf("workers=%d: %v", workers, err)
		}
		if !res.Found || res.TotalCost != 8 || len(res.Path) != 9 {
			t.Errorf("workers=%d: found=%v cost=%g len=%d", workers, res.Found, res.TotalCost, len(res.Path))
		}
		if res.Path[0] != (point{0, 0}) || res.Path[len(res.Path)-1] != (point{4, 0}) {
			t.Errorf("workers=%d: path endpoints %v .. %v", workers, res.Path[0], res.Path[len(res.Path)-1])
		}
		for i := 1; i < len(res.Path); i++ {
			if manhattan(res.Path[i-1], res.Path[i]) != 1 {
				t.Fatalf("workers=%d: path jumps between %v and %v", workers, res.Path[i-1], res.Path[i])
			}
		}
		if res.VisitedSize != res.ExpandedNodes || res.VisitedSize == 0 {
			t.Errorf("workers=%d: visited=%d expanded=%d", workers, res.VisitedSize, res.ExpandedNodes)
		}
	}
}

func TestSearchNoPathReportsStats(t *testing.T) {
	walled := testGrid{rows: []string{
		"..#..",
		"..#..",
		"..#..",
	}}
	res, err := Search(context.Background(), walled, point{0, 0}, point{0, 4}, manhattan, WithWorkers(1))
	if !errors.Is(err, ErrNoPath) {
		t.Fatalf("err = %v, want ErrNoPath", err)
	}
	if res.Found || res.Path != nil {
		t.Errorf("unexpected path %v", res.Path)
	}
	if res.VisitedSize != 6 || res.FrontierSize != 0 {
		t.Errorf("visited=%d frontier=%d, want 6 and 0", res.VisitedSize, res.FrontierSize)
	}
}

func TestSearchStartIsGoal(t *testing.T) {
	res, err := Search(context.Background(), maze, point{2, 2}, point{2, 2}, manhattan, WithWorkers(1))
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Path) != 1 || res.TotalCost != 0 {
		t.Errorf("path %v cost %g", res.Path, res.TotalCost)
	}
}

func TestSearchMaxExpansions(t *testing.T) {
	_, err := Search(context.Background(), maze, point{0, 0}, point{4, 0}, manhattan, WithWorkers(1), WithMaxExpansions(3))
	if !errors.Is(err, ErrNoPath) {
		t.Errorf("bounded search err = %v", err)
	}
}

func TestSearchDeterministicInline(t *testing.T) {
	open := testGrid{rows: []string{
		"........",
		"........",
		"........",
		"........",
	}}
	first, err := Search(context.Background(), open, point{0, 0}, point{3, 7}, manhattan, WithWorkers(1))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		again, _ := Search(context.Background(), open, point{0, 0}, point{3, 7}, manhattan, WithWorkers(0))
		if len(again.Path) != len(first.Path) || again.VisitedSize != first.VisitedSize || again.FrontierSize != first.FrontierSize {
			t.Fatal("inline search is not repeatable")
		}
		for j := range first.Path {
			if again.Path[j] != first.Path[j] {
				t.Fatalf("paths diverge at %d", j)
			}
		}
	}
}

func TestSearchStopsWorkers(t *testing.T) {
	before := runtime.NumGoroutine()
	for i := 0; i < 20; i++ {
		if _, err := Search(context.Background(), maze, point{0, 0}, point{4, 0}, manhattan, WithWorkers(8)); err != nil {
			t.Fatal(err)
		}
	}
	deadline := time.Now().Add(2 * time.Second)
	for runtime.NumGoroutine() > before+2 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if n := runtime.NumGoroutine(); n > before+2 {
		t.Errorf("goroutines leaked: before=%d after=%d", before, n)
	}
}

func TestStepperMatchesSearch(t *testing.T) {
	want, err := Search(context.Background(), maze, point{0, 0}, point{4, 0}, manhattan, WithWorkers(1))
	if err != nil {
		t.Fatal(err)
	}
	s := NewStepper(context.Background(), maze, point{0, 0}, point{4, 0}, manhattan, WithWorkers(1))
	defer s.Close()

	steps := 0
	var last StepSnapshot[point]
	for !last.Done {
		last, err = s.Step()
		if err != nil {
			t.Fatal(err)
		}
		steps++
		if steps > 100 {
			t.Fatal("stepper did not terminate")
		}
		if last.FrontierSize != len(last.Open) || last.VisitedSize != len(last.Closed) {
			t.Fatalf("step %d: sizes disagree with sets", steps)
		}
	}
	if !last.Found || len(last.Path) != len(want.Path) {
		t.Errorf("stepper path %v, search path %v", last.Path, want.Path)
	}
	if last.StepIndex != want.ExpandedNodes {
		t.Errorf("stepper expanded %d, search %d", last.StepIndex, want.ExpandedNodes)
	}
	if again, _ := s.Step(); !again.Done || !again.Found {
		t.Error("stepping a finished search must keep reporting done")
	}
}

func TestStepperRunWithWorkers(t *testing.T) {
	s := NewStepper(context.Background(), maze, point{0, 0}, point{4, 0}, manhattan, WithWorkers(3))
	defer s.Close()
	snap, err := s.Run()
	if err != nil {
		t.Fatal(err)
	}
	if !snap.Found || snap.Path[len(snap.Path)-1] != (point{4, 0}) {
		t.Errorf("Run = %+v", snap)
	}
}

func TestStepperClosesWorkersOnError(t *testing.T) {
	start, goal := point{0, 0}, point{4, 0}
	release := make(chan struct{})
	defer close(release)
	// Workers block in the heuristic, so only cancellation can end the expansion.
	blocking := func(from, to point) float64 {
		if from != start {
			<-release
		}
		return manhattan(from, to)
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := NewStepper(ctx, maze, start, goal, blocking, WithWorkers(4))
	cancel()

	snap, err := s.Step()
	if !errors.Is(err, context.Canceled) || !snap.Done {
		t.Fatalf("Step = %+v, %v", snap, err)
	}
	if s.cancel != nil {
		t.Error("failed step left the worker pool open")
	}
	if again, err := s.Step(); err != nil || !again.Done {
		t.Errorf("step after failure = %+v, %v", again, err)
	}
}
