package main

import (
	"context"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/pdrpinto/dynastar/dynmap"
	"github.com/pdrpinto/dynastar/grid"
	"github.com/pdrpinto/dynastar/replan"
)

// Game runs one replanning iteration every few frames and draws the map.
type Game struct {
	initial *dynmap.Map
	opts    []replan.Option

	r      *replan.Replanner
	path   []grid.Point
	frames int
	paused bool
	pixels []byte
}

func newGame(m *dynmap.Map, opts ...replan.Option) *Game {
	g := &Game{initial: m.Clone(), opts: opts}
	g.restart()
	return g
}

func (g *Game) restart() {
	g.r = replan.New(g.initial.Clone(), replan.NewAStarSearcher(), g.opts...)
	g.path = nil
	g.frames = 0
	g.updateTitle()
}

func (g *Game) step() error {
	if g.r.State().Terminal() {
		return nil
	}
	it, err := g.r.Step(context.Background())
	if err != nil {
		return err
	}
	g.path = it.Path
	g.updateTitle()
	return nil
}

func (g *Game) updateTitle() {
	status := g.r.State().String()
	if g.paused {
		status += ", paused"
	}
	ebiten.SetWindowTitle(fmt.Sprintf("dynreplan t=%d (%s)", g.r.Ticks(), status))
}

// Update handles input and advances the run.
func (g *Game) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.restart()
		return nil
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.paused = !g.paused
		g.updateTitle()
		return nil
	case g.paused && inpututil.IsKeyJustPressed(ebiten.KeyN):
		return g.step()
	}
	if g.paused {
		return nil
	}
	g.frames++
	if g.frames%max(1, *ticksPerStepFlag) != 0 {
		return nil
	}
	return g.step()
}

// Layout makes one logical pixel per grid cell; the window scales it.
func (g *Game) Layout(_, _ int) (int, int) {
	shape := g.initial.Shape()
	return shape.Width, shape.Height
}
