package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/pdrpinto/dynastar/grid"
)

var (
	colorClear = color.RGBA{12, 12, 16, 255}
	colorWall  = color.RGBA{30, 40, 80, 255}
	colorAgent = color.RGBA{255, 200, 0, 255}
	colorGoal  = color.RGBA{0, 220, 90, 255}
	colorPath  = color.RGBA{90, 60, 60, 255}
	colorTrail = color.RGBA{60, 50, 20, 255}
)

func stateColor(s grid.State) color.RGBA {
	switch s {
	case grid.Wall:
		return colorWall
	case grid.Agent:
		return colorAgent
	case grid.Goal:
		return colorGoal
	}
	return colorClear
}

func setPixel(pix []byte, width int, p grid.Point, c color.RGBA) {
	base := (p.Row*width + p.Col) * 4
	pix[base] = c.R
	pix[base+1] = c.G
	pix[base+2] = c.B
	pix[base+3] = c.A
}

// Draw paints every cell, then the trail and planned path on clear cells.
func (g *Game) Draw(screen *ebiten.Image) {
	m := g.r.Map()
	shape := m.Shape()
	if len(g.pixels) != shape.Cells()*4 {
		g.pixels = make([]byte, shape.Cells()*4)
	}
	for row := 0; row < shape.Height; row++ {
		for col := 0; col < shape.Width; col++ {
			p := grid.Point{Row: row, Col: col}
			setPixel(g.pixels, shape.Width, p, stateColor(m.At(p)))
		}
	}
	overlay := func(points []grid.Point, c color.RGBA) {
		for _, p := range points {
			if m.InBounds(p) && m.At(p) == grid.Clear {
				setPixel(g.pixels, shape.Width, p, c)
			}
		}
	}
	overlay(g.r.Trace(), colorTrail)
	if *showPathFlag {
		overlay(g.path, colorPath)
	}
	screen.WritePixels(g.pixels)
}
