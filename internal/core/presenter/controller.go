// Package presenter owns toast presentation state.
//
// A Controller is the single source of truth for whether one toast is
// visible and the only code that hides it. It is driven from a Bubble Tea
// Update loop: every method must be called from that loop, and the
// auto-dismiss timer reports back through a TimeoutMsg delivered by the
// program, so no state is touched from another goroutine.
//
// Visibility episodes follow this machine:
//
//	HIDDEN --(external show)--> SHOWN_ARMED (HideAfter > 0) | SHOWN_IDLE
//	SHOWN_ARMED --(timer)--> HIDDEN              onDismiss
//	SHOWN_* --(tap, if enabled)--> HIDDEN        onDismiss
//	SHOWN_* --(drag >= threshold)--> HIDDEN      onDismiss
//	SHOWN_* --(external hide)--> HIDDEN          no onDismiss
package presenter

import (
	"log/slog"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/toastkit/internal/domain"
)

var lastID atomic.Int64

func nextID() int {
	return int(lastID.Add(1))
}

// Controller drives one toast. It is not safe for concurrent use.
type Controller struct {
	id      int
	kind    domain.Kind
	state   domain.PresentationState
	options domain.Options

	// lastVisible is the visibility seen on the previous observation and
	// is what edge detection compares against
	lastVisible bool
	// initialized is set once the current appearance has been armed
	initialized bool
	closed      bool

	timer      *timerHandle
	generation uint64
	drag       DragAccumulator
	shownAt    time.Time

	onDismiss func()
	onVisible func(bool)
	binding   domain.Binding
	observer  Observer
	logger    *slog.Logger
	tick      TickFunc
	now       func() time.Time
}

// Option configures a Controller
type Option func(*Controller)

// WithBinding connects the controller to caller-owned state. Sync reads it
// and internal dismissals write the hidden state back.
func WithBinding(b domain.Binding) Option {
	return func(c *Controller) { c.binding = b }
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithObserver registers a lifecycle observer
func WithObserver(o Observer) Option {
	return func(c *Controller) {
		if o != nil {
			c.observer = o
		}
	}
}

// WithVisibilityHandler sets the callback the rendering layer uses to follow
// visibility transitions
func WithVisibilityHandler(fn func(visible bool)) Option {
	return func(c *Controller) { c.onVisible = fn }
}

// WithTickFunc replaces tea.Tick for scheduling the auto-dismiss timer
func WithTickFunc(fn TickFunc) Option {
	return func(c *Controller) {
		if fn != nil {
			c.tick = fn
		}
	}
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// New creates a controller for a toast whose state starts as initial. The
// controller keeps initial's kind for its whole life.
func New(initial domain.PresentationState, options domain.Options, onDismiss func(), opts ...Option) *Controller {
	c := &Controller{
		id:          nextID(),
		kind:        initial.Kind(),
		state:       initial,
		options:     options,
		lastVisible: initial.IsVisible(),
		onDismiss:   onDismiss,
		observer:    nopObserver{},
		logger:      slog.Default(),
		tick:        tea.Tick,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.lastVisible {
		c.shownAt = c.now()
		c.observer.Presented(c.id)
	}
	return c
}

// ID returns the process-unique controller id
func (c *Controller) ID() int {
	return c.id
}

// State returns the current presentation state
func (c *Controller) State() domain.PresentationState {
	return c.state
}

// IsVisible reports whether the toast is shown
func (c *Controller) IsVisible() bool {
	return c.lastVisible
}

// Payload returns the item to render, or nil when hidden
func (c *Controller) Payload() domain.Identifiable {
	return c.state.Payload()
}

// Options returns the presentation options
func (c *Controller) Options() domain.Options {
	return c.options
}

// Offset returns the drag offset to apply when rendering
func (c *Controller) Offset() Vector {
	return c.drag.Offset()
}

// ObserveExternalChange records a change the caller made to its state.
// The timer is armed only on the hidden to visible edge; a repeated visible
// state never re-arms. An external hide cancels the timer without calling
// onDismiss.
func (c *Controller) ObserveExternalChange(s domain.PresentationState) tea.Cmd {
	c.checkKind("observe", s)

	was := c.lastVisible
	c.state = s
	c.lastVisible = s.IsVisible()

	switch {
	case !was && c.lastVisible:
		c.shownAt = c.now()
		c.observer.Presented(c.id)
		c.logger.Debug("toast shown", "toast_id", c.id, "kind", c.kind)
		c.notifyVisible(true)
		c.initialized = true
		return c.arm()

	case was && !c.lastVisible:
		c.cancelTimer()
		c.drag.Reset()
		c.initialized = false
		c.observer.Dismissed(c.id, CauseExternal, c.now().Sub(c.shownAt))
		c.logger.Debug("toast hidden", "toast_id", c.id, "cause", CauseExternal)
		c.notifyVisible(false)
	}

	return nil
}

// Sync observes the bound state. It does nothing without a binding.
func (c *Controller) Sync() tea.Cmd {
	if c.binding == nil {
		return nil
	}
	s := c.binding.Get()
	c.checkKind("sync", s)
	return c.ObserveExternalChange(s)
}

// OnAppear is called when the toast content enters the view tree. It arms
// the timer once per appearance.
func (c *Controller) OnAppear() tea.Cmd {
	if c.initialized || !c.lastVisible {
		return nil
	}
	c.initialized = true
	return c.arm()
}

// OnDisappear is called when the toast content leaves the view tree. The
// next OnAppear starts a fresh timer.
func (c *Controller) OnDisappear() {
	c.initialized = false
	c.cancelTimer()
}

// OnTapDismissRequested dismisses the toast when tap-to-dismiss is enabled
func (c *Controller) OnTapDismissRequested() bool {
	if !c.options.DismissOnTap {
		return false
	}
	return c.dismiss(CauseTap)
}

// OnDragStarted resets the accumulator for a new gesture
func (c *Controller) OnDragStarted() {
	c.drag.Reset()
}

// OnDragChanged folds the cumulative gesture translation into the drag
// offset. alignment decides the axis and which direction counts.
func (c *Controller) OnDragChanged(translation Vector, alignment domain.Alignment) (Vector, float64) {
	if !c.options.DragToDismiss || !c.lastVisible {
		return Vector{}, 0
	}
	return c.drag.Change(translation, alignment)
}

// OnDragEnded dismisses when the gesture travelled at least
// DismissThreshold, otherwise snaps the toast back
func (c *Controller) OnDragEnded() bool {
	if !c.options.DragToDismiss {
		return false
	}
	dismissed := false
	if c.drag.Distance() >= DismissThreshold {
		dismissed = c.dismiss(CauseDrag)
	}
	c.drag.Reset()
	return dismissed
}

// Dismiss hides the toast. Calling it again while hidden does nothing.
func (c *Controller) Dismiss() {
	c.dismiss(CauseProgrammatic)
}

// Close tears the controller down when its attachment point goes away
func (c *Controller) Close() {
	c.cancelTimer()
	c.closed = true
	c.initialized = false
	c.binding = nil
}

func (c *Controller) dismiss(cause Cause) bool {
	c.cancelTimer()
	if !c.lastVisible {
		return false
	}

	c.state = c.state.Hidden()
	c.lastVisible = false
	c.initialized = false
	c.drag.Reset()
	if c.binding != nil {
		c.binding.Set(c.state)
	}

	c.logger.Debug("toast dismissed", "toast_id", c.id, "cause", cause)
	c.observer.Dismissed(c.id, cause, c.now().Sub(c.shownAt))
	c.notifyVisible(false)

	if c.onDismiss != nil {
		c.onDismiss()
	}
	return true
}

func (c *Controller) notifyVisible(visible bool) {
	if c.onVisible != nil {
		c.onVisible(visible)
	}
}

func (c *Controller) checkKind(op string, s domain.PresentationState) {
	if s.Kind() != c.kind {
		panic(domain.NewMismatch(op, c.kind, s.Kind()))
	}
}
