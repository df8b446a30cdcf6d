// Package termview plays back a finished run in the terminal.
package termview

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pdrpinto/dynastar/grid"
	"github.com/pdrpinto/dynastar/internal"
	"github.com/pdrpinto/dynastar/playback"
	"github.com/pdrpinto/dynastar/replan"
)

// DefaultDelay is the time each frame stays on screen while playing.
const DefaultDelay = 150 * time.Millisecond

var (
	styleClear  = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	styleWall   = tcell.StyleDefault.Foreground(tcell.ColorSteelBlue)
	styleAgent  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleGoal   = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleStatus = tcell.StyleDefault.Foreground(tcell.ColorWhite).Reverse(true)
)

// StyleOf returns the glyph and style used for a cell state.
func StyleOf(s grid.State) (rune, tcell.Style) {
	switch s {
	case grid.Wall:
		return '█', styleWall
	case grid.Agent:
		return 'A', styleAgent
	case grid.Goal:
		return 'G', styleGoal
	}
	return '·', styleClear
}

// Viewer draws frames onto a tcell screen. Space pauses, arrows step
// while paused, Home and End jump, q or Esc quits.
type Viewer struct {
	screen  tcell.Screen
	player  *playback.Player
	outcome replan.Outcome
	delay   time.Duration
	paused  bool
}

// New returns a viewer over frames. The screen must already be initialized.
func New(screen tcell.Screen, frames []playback.Frame, outcome replan.Outcome, delay time.Duration) *Viewer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Viewer{
		screen:  screen,
		player:  playback.NewPlayer(frames, false),
		outcome: outcome,
		delay:   delay,
	}
}

// Player exposes the playback cursor.
func (v *Viewer) Player() *playback.Player { return v.player }

func (v *Viewer) Paused() bool { return v.paused }

// origin picks the top-left cell so the agent stays on screen when the
// grid is larger than the terminal.
func (v *Viewer) origin(f playback.Frame, viewW, viewH int) (row, col int) {
	shape := f.Grid.Shape()
	row = internal.Clamp(f.Agent.Row-viewH/2, 0, max(0, shape.Height-viewH))
	col = internal.Clamp(f.Agent.Col-viewW/2, 0, max(0, shape.Width-viewW))
	return row, col
}

// Draw renders the current frame and a status line on the last row.
func (v *Viewer) Draw() {
	v.screen.Clear()
	w, h := v.screen.Size()
	if w <= 0 || h <= 1 {
		v.screen.Show()
		return
	}
	f := v.player.Current()
	viewH := h - 1
	r0, c0 := v.origin(f, w, viewH)
	for y := 0; y < viewH; y++ {
		for x := 0; x < w; x++ {
			p := grid.Point{Row: r0 + y, Col: c0 + x}
			if !f.Grid.InBounds(p) {
				continue
			}
			ch, style := StyleOf(f.Grid.At(p))
			v.screen.SetContent(x, y, ch, nil, style)
		}
	}

	status := fmt.Sprintf(" t=%d/%d  %s  %s ", f.Tick, v.player.Len()-1, v.outcome.State, v.mode())
	for x := 0; x < w; x++ {
		ch := ' '
		if x < len(status) {
			ch = rune(status[x])
		}
		v.screen.SetContent(x, h-1, ch, nil, styleStatus)
	}
	v.screen.Show()
}

func (v *Viewer) mode() string {
	switch {
	case v.paused:
		return "paused [space] play [<-/->] step [q] quit"
	case v.player.Index() == v.player.Len()-1:
		return "done [q] quit"
	}
	return "playing [space] pause [q] quit"
}

// HandleEvent applies one input event and reports whether to keep running.
func (v *Viewer) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRight:
			v.paused = true
			v.player.Next()
		case tcell.KeyLeft:
			v.paused = true
			v.player.Prev()
		case tcell.KeyHome:
			v.player.Seek(0)
		case tcell.KeyEnd:
			v.player.Seek(v.player.Len() - 1)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				v.paused = !v.paused
			}
		}
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

// pollEvents forwards screen events until the screen is finalized or done
// is closed.
func (v *Viewer) pollEvents(events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := v.screen.PollEvent()
		if ev == nil {
			close(events)
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// Run plays frames until the user quits or ctx is cancelled.
func (v *Viewer) Run(ctx context.Context) {
	ticker := time.NewTicker(v.delay)
	defer ticker.Stop()

	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)
	go v.pollEvents(events, done)

	v.Draw()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok || !v.HandleEvent(ev) {
				return
			}
			v.Draw()
		case <-ticker.C:
			if !v.paused && v.player.Next() {
				v.Draw()
			}
		}
	}
}
