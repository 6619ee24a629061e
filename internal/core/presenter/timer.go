package presenter

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TimeoutMsg is delivered to the program when an auto-dismiss timer fires.
// Route it to the owning controller's HandleTimeout.
type TimeoutMsg struct {
	ControllerID int
	Generation   uint64
}

// TickFunc schedules fn to produce a message after d. tea.Tick satisfies it.
type TickFunc func(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd

// timerHandle identifies the single live auto-dismiss timer of a controller.
// A tick whose generation does not match the live handle is stale.
type timerHandle struct {
	generation uint64
	deadline   time.Time
}

// arm cancels any live handle and schedules a new one
func (c *Controller) arm() tea.Cmd {
	c.cancelTimer()
	if c.closed || !c.lastVisible || !c.options.AutoHides() {
		return nil
	}

	c.generation++
	c.timer = &timerHandle{
		generation: c.generation,
		deadline:   c.now().Add(c.options.HideAfter),
	}

	id, gen := c.id, c.generation
	c.logger.Debug("auto-dismiss armed", "toast_id", id, "generation", gen, "after", c.options.HideAfter)

	return c.tick(c.options.HideAfter, func(time.Time) tea.Msg {
		return TimeoutMsg{ControllerID: id, Generation: gen}
	})
}

// cancelTimer drops the live handle; its pending tick becomes stale
func (c *Controller) cancelTimer() {
	if c.timer == nil {
		return
	}
	c.logger.Debug("auto-dismiss cancelled", "toast_id", c.id, "generation", c.timer.generation)
	c.timer = nil
}

// HandleTimeout dismisses the toast if msg belongs to the live timer.
// Returns true when the toast was dismissed.
func (c *Controller) HandleTimeout(msg TimeoutMsg) bool {
	if msg.ControllerID != c.id || c.timer == nil || msg.Generation != c.timer.generation {
		return false
	}
	c.timer = nil
	return c.dismiss(CauseTimeout)
}

// TimerArmed reports whether an auto-dismiss timer is live
func (c *Controller) TimerArmed() bool {
	return c.timer != nil
}

// Remaining returns the time left before auto-dismiss, and false when no
// timer is live
func (c *Controller) Remaining() (time.Duration, bool) {
	if c.timer == nil {
		return 0, false
	}
	left := c.timer.deadline.Sub(c.now())
	if left < 0 {
		left = 0
	}
	return left, true
}
