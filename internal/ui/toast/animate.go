package toast

import (
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
)

const (
	fps = 60
	// countdownInterval refreshes the countdown bar when nothing animates
	countdownInterval = 100 * time.Millisecond
	settleEpsilon     = 0.01
)

// frameMsg advances the transition of the toast with the given id
type frameMsg struct {
	id int
}

// transition animates presentation progress between 0 (gone) and 1 (shown)
type transition struct {
	spring harmonica.Spring
	pos    float64
	vel    float64
	target float64
}

func newTransition(visible bool) transition {
	t := transition{
		spring: harmonica.NewSpring(harmonica.FPS(fps), 8.0, 1.0),
	}
	if visible {
		t.pos, t.target = 1, 1
	}
	return t
}

func (t *transition) show(visible bool) {
	if visible {
		t.target = 1
	} else {
		t.target = 0
	}
}

func (t *transition) step() {
	t.pos, t.vel = t.spring.Update(t.pos, t.vel, t.target)
	if t.settled() {
		t.pos, t.vel = t.target, 0
	}
}

func (t transition) settled() bool {
	return math.Abs(t.pos-t.target) < settleEpsilon && math.Abs(t.vel) < settleEpsilon
}

// progress is the clamped position
func (t transition) progress() float64 {
	return math.Max(0, math.Min(1, t.pos))
}

func frameCmd(id int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return frameMsg{id: id}
	})
}
