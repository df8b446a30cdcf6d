// Package playback rebuilds the grid of every tick of a finished run.
// Runs are deterministic, so replaying the trace on a clone of the
// starting map reproduces exactly what the planner saw.
package playback

import (
	"github.com/pdrpinto/dynastar/dynmap"
	"github.com/pdrpinto/dynastar/grid"
)

// Frame is the map at one tick.
type Frame struct {
	Tick  int
	Agent grid.Point
	Grid  *grid.Grid
}

// Frames returns len(trace)+1 frames, starting with the initial map.
// initial is not modified.
func Frames(initial *dynmap.Map, trace []grid.Point) []Frame {
	m := initial.Clone()
	frames := make([]Frame, 0, len(trace)+1)
	frames = append(frames, Frame{Tick: m.Tick(), Agent: m.Agent(), Grid: m.Grid()})
	for _, p := range trace {
		m.SetAgent(p)
		m.Advance(1)
		frames = append(frames, Frame{Tick: m.Tick(), Agent: m.Agent(), Grid: m.Grid()})
	}
	return frames
}

// Player walks a frame list. The zero index is the first frame.
type Player struct {
	frames []Frame
	index  int
	loop   bool
}

// NewPlayer returns a player over frames. With loop set, Next wraps to
// the first frame instead of stopping on the last.
func NewPlayer(frames []Frame, loop bool) *Player {
	return &Player{frames: frames, loop: loop}
}

func (p *Player) Len() int { return len(p.frames) }

func (p *Player) Index() int { return p.index }

// Current returns the frame under the cursor.
func (p *Player) Current() Frame {
	if len(p.frames) == 0 {
		return Frame{Grid: grid.New(grid.Shape{})}
	}
	return p.frames[p.index]
}

// Next advances one frame and reports whether the cursor moved.
func (p *Player) Next() bool {
	if p.index+1 < len(p.frames) {
		p.index++
		return true
	}
	if p.loop && len(p.frames) > 1 {
		p.index = 0
		return true
	}
	return false
}

// Prev steps back one frame and reports whether the cursor moved.
func (p *Player) Prev() bool {
	if p.index > 0 {
		p.index--
		return true
	}
	return false
}

// Seek moves to frame i, clamped to the valid range.
func (p *Player) Seek(i int) {
	if len(p.frames) == 0 {
		p.index = 0
		return
	}
	p.index = min(max(i, 0), len(p.frames)-1)
}
