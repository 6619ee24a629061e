// Package toast renders one presentation controller as a Bubble Tea
// component. It turns mouse and key input into controller events and draws
// the toast over (or next to) the host view.
package toast

import (
	"math"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/toastkit/internal/core/presenter"
	"github.com/riordanpawley/toastkit/internal/domain"
	"github.com/riordanpawley/toastkit/internal/ui/styles"
)

// ContentFunc renders the toast body for a payload
type ContentFunc func(payload domain.Identifiable) string

// StyleFunc picks the container style for a payload
type StyleFunc func(payload domain.Identifiable) lipgloss.Style

// Units converts terminal cells into gesture units. A cell is about twice as
// tall as it is wide.
type Units struct {
	X float64
	Y float64
}

// DefaultUnits makes a 20 unit drag roughly five columns or three rows
var DefaultUnits = Units{X: 4, Y: 8}

// Config assembles a toast component
type Config struct {
	Initial   domain.PresentationState
	Options   domain.Options
	OnDismiss func()
	Content   ContentFunc
	Style     StyleFunc
	Styles    *styles.Styles
	KeyMap    *KeyMap
	Units     Units
	// Controller options are passed through to presenter.New
	Controller []presenter.Option
}

// rect is the screen area the toast occupied in the last render
type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return r.w > 0 && x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

// Model is the rendering layer of one toast
type Model struct {
	ctrl    *presenter.Controller
	content ContentFunc
	style   StyleFunc
	styles  *styles.Styles
	keys    KeyMap
	units   Units

	width  int
	height int

	anim      transition
	ticking   bool
	appeared  bool
	payload   domain.Identifiable
	countdown progress.Model

	dragging bool
	moved    bool
	pressX   int
	pressY   int
	bounds   rect

	unsubscribe func()
}

// New creates the component and its controller
func New(cfg Config) *Model {
	st := cfg.Styles
	if st == nil {
		st = styles.New()
	}
	keys := DefaultKeyMap()
	if cfg.KeyMap != nil {
		keys = *cfg.KeyMap
	}
	units := cfg.Units
	if units.X <= 0 || units.Y <= 0 {
		units = DefaultUnits
	}

	m := &Model{
		content: cfg.Content,
		style:   cfg.Style,
		styles:  st,
		keys:    keys,
		units:   units,
		anim:    newTransition(cfg.Initial.IsVisible()),
		payload: cfg.Initial.Payload(),
		countdown: progress.New(
			progress.WithSolidFill(string(styles.Blue)),
			progress.WithoutPercentage(),
		),
	}

	opts := append([]presenter.Option{presenter.WithVisibilityHandler(m.setVisible)}, cfg.Controller...)
	m.ctrl = presenter.New(cfg.Initial, cfg.Options, cfg.OnDismiss, opts...)
	return m
}

// Controller exposes the presentation controller
func (m *Model) Controller() *presenter.Controller {
	return m.ctrl
}

// KeyMap returns the key bindings, for help views
func (m *Model) KeyMap() KeyMap {
	return m.keys
}

// SetSize sets the area the toast is placed in
func (m *Model) SetSize(width, height int) {
	m.width, m.height = width, height
}

// BindSubscription ties a notification subscription to this toast; Close
// releases it
func (m *Model) BindSubscription(unsubscribe func()) {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
	m.unsubscribe = unsubscribe
}

// Init marks the content as appeared and arms the timer when shown
func (m *Model) Init() tea.Cmd {
	m.appeared = true
	return m.after(m.ctrl.OnAppear())
}

// Show forwards a caller state change to the controller
func (m *Model) Show(s domain.PresentationState) tea.Cmd {
	return m.after(m.ctrl.ObserveExternalChange(s))
}

// Sync re-reads the controller's binding
func (m *Model) Sync() tea.Cmd {
	return m.after(m.ctrl.Sync())
}

// Dismiss hides the toast programmatically
func (m *Model) Dismiss() tea.Cmd {
	m.ctrl.Dismiss()
	return m.after(nil)
}

// Close tears the toast down
func (m *Model) Close() {
	m.ctrl.OnDisappear()
	m.ctrl.Close()
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
	m.appeared = false
}

// Update handles messages addressed to the toast
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case presenter.TimeoutMsg:
		m.ctrl.HandleTimeout(msg)
		return m, m.after(nil)

	case frameMsg:
		if msg.id != m.ctrl.ID() {
			return m, nil
		}
		m.ticking = false
		m.anim.step()
		if m.anim.settled() && m.anim.target == 0 && m.appeared {
			// exit transition finished: content left the view tree
			m.payload = nil
			m.ctrl.OnDisappear()
		}
		return m, m.after(nil)

	case tea.KeyMsg:
		if m.ctrl.IsVisible() && key.Matches(msg, m.keys.Dismiss) {
			m.ctrl.OnTapDismissRequested()
			return m, m.after(nil)
		}

	case tea.MouseMsg:
		return m, m.handleMouse(msg)
	}

	return m, nil
}

// Captures reports whether msg belongs to this toast: a press on the toast
// or any event of a drag it started. Hosts stacking toasts use it to route
// mouse input to the top one.
func (m *Model) Captures(msg tea.MouseMsg) bool {
	if m.dragging {
		return true
	}
	return msg.Action == tea.MouseActionPress && m.ctrl.IsVisible() && m.bounds.contains(msg.X, msg.Y)
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !m.ctrl.IsVisible() {
			return nil
		}
		if m.bounds.contains(msg.X, msg.Y) {
			m.dragging = true
			m.moved = false
			m.pressX, m.pressY = msg.X, msg.Y
			m.ctrl.OnDragStarted()
			return nil
		}
		if m.ctrl.Options().Backdrop {
			// a tap on the backdrop behaves like a tap on the toast
			m.ctrl.OnTapDismissRequested()
			return m.after(nil)
		}

	case tea.MouseActionMotion:
		// without drag-to-dismiss the press stays a tap however the pointer moves
		if !m.dragging || !m.ctrl.Options().DragToDismiss {
			return nil
		}
		translation := presenter.Vector{
			X: float64(msg.X-m.pressX) * m.units.X,
			Y: float64(msg.Y-m.pressY) * m.units.Y,
		}
		if !translation.IsZero() {
			m.moved = true
		}
		m.ctrl.OnDragChanged(translation, m.ctrl.Options().Alignment)

	case tea.MouseActionRelease:
		if !m.dragging {
			return nil
		}
		m.dragging = false
		if !m.moved {
			m.ctrl.OnTapDismissRequested()
		} else {
			m.ctrl.OnDragEnded()
		}
		return m.after(nil)
	}

	return nil
}

// setVisible is the controller's visibility handler
func (m *Model) setVisible(visible bool) {
	m.anim.show(visible)
	if visible {
		m.payload = m.ctrl.Payload()
	}
}

// after batches cmd with the frame loop when something needs redrawing
func (m *Model) after(cmd tea.Cmd) tea.Cmd {
	if m.ctrl.IsVisible() {
		// payload may change while shown
		m.payload = m.ctrl.Payload()
	}
	if m.ticking {
		return cmd
	}

	var interval time.Duration
	switch {
	case !m.anim.settled():
		interval = time.Second / fps
	case m.countingDown():
		interval = countdownInterval
	default:
		return cmd
	}

	m.ticking = true
	return tea.Batch(cmd, frameCmd(m.ctrl.ID(), interval))
}

func (m *Model) countingDown() bool {
	return m.ctrl.Options().ShowCountdown && m.ctrl.TimerArmed()
}

// remainingFraction is the share of HideAfter still left
func (m *Model) remainingFraction() float64 {
	left, ok := m.ctrl.Remaining()
	total := m.ctrl.Options().HideAfter
	if !ok || total <= 0 {
		return 0
	}
	return math.Max(0, math.Min(1, float64(left)/float64(total)))
}
