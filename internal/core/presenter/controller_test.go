package presenter

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/toastkit/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTicker records scheduled timers instead of sleeping
type fakeTicker struct {
	durations []time.Duration
	fns       []func(time.Time) tea.Msg
}

func (f *fakeTicker) Tick(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
	f.durations = append(f.durations, d)
	f.fns = append(f.fns, fn)
	return func() tea.Msg { return fn(time.Time{}) }
}

// fire returns the message the i-th scheduled timer would deliver
func (f *fakeTicker) fire(t *testing.T, i int) TimeoutMsg {
	t.Helper()
	require.Greater(t, len(f.fns), i, "timer %d was never scheduled", i)
	msg, ok := f.fns[i](time.Time{}).(TimeoutMsg)
	require.True(t, ok, "timer produced %T", msg)
	return msg
}

// recordingObserver captures lifecycle events
type recordingObserver struct {
	presented int
	causes    []Cause
}

func (r *recordingObserver) Presented(int) { r.presented++ }

func (r *recordingObserver) Dismissed(_ int, cause Cause, _ time.Duration) {
	r.causes = append(r.causes, cause)
}

type notice string

func (n notice) ID() string { return string(n) }

type harness struct {
	ctrl      *Controller
	ticker    *fakeTicker
	observer  *recordingObserver
	dismissed int
	clock     time.Time
}

func newHarness(initial domain.PresentationState, opts domain.Options, extra ...Option) *harness {
	h := &harness{
		ticker:   &fakeTicker{},
		observer: &recordingObserver{},
		clock:    time.Date(2024, 9, 25, 12, 0, 0, 0, time.UTC),
	}
	all := append([]Option{
		WithTickFunc(h.ticker.Tick),
		WithObserver(h.observer),
		WithClock(func() time.Time { return h.clock }),
	}, extra...)
	h.ctrl = New(initial, opts, func() { h.dismissed++ }, all...)
	return h
}

func TestObserveExternalChange_ArmsOnlyOnRisingEdge(t *testing.T) {
	h := newHarness(domain.Flag(false), domain.NewOptions(domain.WithHideAfter(3*time.Second)))

	sequence := []bool{true, true, true, false, false, true, true}
	for _, visible := range sequence {
		h.ctrl.ObserveExternalChange(domain.Flag(visible))
	}

	assert.Len(t, h.ticker.durations, 2, "only false->true edges should arm")
	for _, d := range h.ticker.durations {
		assert.Equal(t, 3*time.Second, d)
	}
	assert.True(t, h.ctrl.IsVisible())
	assert.True(t, h.ctrl.TimerArmed())
}

func TestObserveExternalChange_RepeatedShowReturnsNoCmd(t *testing.T) {
	h := newHarness(domain.Flag(false), domain.NewOptions(domain.WithHideAfter(time.Second)))

	require.NotNil(t, h.ctrl.ObserveExternalChange(domain.Flag(true)))
	assert.Nil(t, h.ctrl.ObserveExternalChange(domain.Flag(true)))
}

func TestDismiss_Idempotent(t *testing.T) {
	h := newHarness(domain.Flag(true), domain.NewOptions(domain.WithHideAfter(time.Second)))
	h.ctrl.OnAppear()

	for i := 0; i < 5; i++ {
		h.ctrl.Dismiss()
	}

	assert.Equal(t, 1, h.dismissed, "onDismiss must run exactly once")
	assert.False(t, h.ctrl.IsVisible())
	assert.False(t, h.ctrl.State().IsVisible())
	assert.False(t, h.ctrl.TimerArmed())
	assert.Equal(t, []Cause{CauseProgrammatic}, h.observer.causes)
}

func TestNoHideAfter_NeverArms(t *testing.T) {
	h := newHarness(domain.Flag(false), domain.DefaultOptions())

	assert.Nil(t, h.ctrl.ObserveExternalChange(domain.Flag(true)))
	assert.Nil(t, h.ctrl.OnAppear())
	h.ctrl.OnDisappear()
	assert.Nil(t, h.ctrl.OnAppear())

	h.clock = h.clock.Add(24 * time.Hour)

	assert.Empty(t, h.ticker.durations)
	assert.False(t, h.ctrl.TimerArmed())
	assert.True(t, h.ctrl.IsVisible(), "toast stays until explicitly dismissed")
	_, armed := h.ctrl.Remaining()
	assert.False(t, armed)
}

func TestHideAfter_TimeoutDismissesOnce(t *testing.T) {
	h := newHarness(domain.Flag(false), domain.NewOptions(domain.WithHideAfter(2*time.Second)))

	cmd := h.ctrl.ObserveExternalChange(domain.Flag(true))
	require.NotNil(t, cmd)

	left, armed := h.ctrl.Remaining()
	require.True(t, armed)
	assert.Equal(t, 2*time.Second, left)

	h.clock = h.clock.Add(2 * time.Second)
	left, _ = h.ctrl.Remaining()
	assert.Equal(t, time.Duration(0), left)

	msg, ok := cmd().(TimeoutMsg)
	require.True(t, ok)
	assert.Equal(t, h.ctrl.ID(), msg.ControllerID)

	assert.True(t, h.ctrl.HandleTimeout(msg))
	assert.False(t, h.ctrl.HandleTimeout(msg), "a fired timer cannot fire twice")

	assert.False(t, h.ctrl.IsVisible())
	assert.Equal(t, 1, h.dismissed)
	assert.Equal(t, []Cause{CauseTimeout}, h.observer.causes)
}

func TestHandleTimeout_IgnoresStaleAndForeign(t *testing.T) {
	h := newHarness(domain.Flag(false), domain.NewOptions(domain.WithHideAfter(time.Second)))

	h.ctrl.ObserveExternalChange(domain.Flag(true))
	first := h.ticker.fire(t, 0)

	// Hide and show again: the first timer is now stale
	h.ctrl.ObserveExternalChange(domain.Flag(false))
	h.ctrl.ObserveExternalChange(domain.Flag(true))
	second := h.ticker.fire(t, 1)

	assert.False(t, h.ctrl.HandleTimeout(first))
	assert.True(t, h.ctrl.IsVisible())

	foreign := TimeoutMsg{ControllerID: h.ctrl.ID() + 1000, Generation: second.Generation}
	assert.False(t, h.ctrl.HandleTimeout(foreign))
	assert.True(t, h.ctrl.IsVisible())

	assert.True(t, h.ctrl.HandleTimeout(second))
	assert.Equal(t, 1, h.dismissed)
}

func TestOnAppear_IdempotentWithExternalArm(t *testing.T) {
	h := newHarness(domain.Flag(false), domain.NewOptions(domain.WithHideAfter(time.Second)))

	h.ctrl.ObserveExternalChange(domain.Flag(true))
	assert.Nil(t, h.ctrl.OnAppear(), "already armed for this appearance")
	assert.Len(t, h.ticker.durations, 1)
}

func TestOnAppear_ArmsInitiallyVisible(t *testing.T) {
	h := newHarness(domain.Flag(true), domain.NewOptions(domain.WithHideAfter(time.Second)))

	assert.False(t, h.ctrl.TimerArmed(), "construction does not arm")
	require.NotNil(t, h.ctrl.OnAppear())
	assert.True(t, h.ctrl.TimerArmed())
	assert.Nil(t, h.ctrl.OnAppear())
	assert.Len(t, h.ticker.durations, 1)
}

func TestOnDisappearThenAppear_RearmsFreshTimer(t *testing.T) {
	h := newHarness(domain.Flag(true), domain.NewOptions(domain.WithHideAfter(time.Second)))

	h.ctrl.OnAppear()
	first := h.ticker.fire(t, 0)

	h.ctrl.OnDisappear()
	assert.False(t, h.ctrl.TimerArmed(), "disappearing cancels the timer")

	require.NotNil(t, h.ctrl.OnAppear())
	second := h.ticker.fire(t, 1)

	assert.NotEqual(t, first.Generation, second.Generation)
	assert.False(t, h.ctrl.HandleTimeout(first))
	assert.True(t, h.ctrl.HandleTimeout(second))
}

func TestTapDismiss(t *testing.T) {
	t.Run("enabled by default", func(t *testing.T) {
		h := newHarness(domain.Flag(true), domain.DefaultOptions())

		assert.True(t, h.ctrl.OnTapDismissRequested())
		assert.False(t, h.ctrl.IsVisible())
		assert.Equal(t, 1, h.dismissed)
		assert.Equal(t, []Cause{CauseTap}, h.observer.causes)
	})

	t.Run("disabled", func(t *testing.T) {
		h := newHarness(domain.Flag(true), domain.NewOptions(domain.WithDismissOnTap(false)))

		assert.False(t, h.ctrl.OnTapDismissRequested())
		assert.True(t, h.ctrl.IsVisible())
		assert.Equal(t, 0, h.dismissed)
	})
}

func TestDrag_TopAlignment(t *testing.T) {
	t.Run("downward drag is ignored", func(t *testing.T) {
		h := newHarness(domain.Flag(true), domain.DefaultOptions())

		h.ctrl.OnDragStarted()
		offset, distance := h.ctrl.OnDragChanged(Vector{Y: 40}, domain.AlignTop)

		assert.True(t, offset.IsZero())
		assert.Zero(t, distance)
		assert.False(t, h.ctrl.OnDragEnded())
		assert.True(t, h.ctrl.IsVisible())
	})

	t.Run("upward drag past threshold dismisses", func(t *testing.T) {
		h := newHarness(domain.Flag(true), domain.DefaultOptions())

		h.ctrl.OnDragStarted()
		h.ctrl.OnDragChanged(Vector{Y: -5}, domain.AlignTop)
		offset, distance := h.ctrl.OnDragChanged(Vector{Y: -20}, domain.AlignTop)

		assert.Equal(t, Vector{Y: -20}, offset)
		assert.Equal(t, 20.0, distance)
		assert.True(t, h.ctrl.OnDragEnded())
		assert.False(t, h.ctrl.IsVisible())
		assert.True(t, h.ctrl.Offset().IsZero())
		assert.Equal(t, 1, h.dismissed)
		assert.Equal(t, []Cause{CauseDrag}, h.observer.causes)
	})

	t.Run("short drag snaps back", func(t *testing.T) {
		h := newHarness(domain.Flag(true), domain.DefaultOptions())

		h.ctrl.OnDragStarted()
		offset, _ := h.ctrl.OnDragChanged(Vector{Y: -19}, domain.AlignTop)
		assert.Equal(t, Vector{Y: -19}, offset)

		assert.False(t, h.ctrl.OnDragEnded())
		assert.True(t, h.ctrl.IsVisible())
		assert.True(t, h.ctrl.Offset().IsZero(), "offset snaps back to zero")
		assert.Equal(t, 0, h.dismissed)
	})

	t.Run("offset does not reverse past zero", func(t *testing.T) {
		h := newHarness(domain.Flag(true), domain.DefaultOptions())

		h.ctrl.OnDragChanged(Vector{Y: -10}, domain.AlignTop)
		offset, distance := h.ctrl.OnDragChanged(Vector{Y: 15}, domain.AlignTop)

		assert.Equal(t, Vector{Y: -10}, offset)
		assert.Equal(t, 10.0, distance)
	})
}

func TestDrag_Axes(t *testing.T) {
	tests := []struct {
		name        string
		align       domain.Alignment
		translation Vector
		wantOffset  Vector
	}{
		{"bottom follows downward", domain.AlignBottom, Vector{X: 30, Y: 25}, Vector{Y: 25}},
		{"bottom ignores upward", domain.AlignBottomTrailing, Vector{Y: -25}, Vector{}},
		{"leading follows left", domain.AlignLeading, Vector{X: -22, Y: -50}, Vector{X: -22}},
		{"leading ignores right", domain.AlignLeading, Vector{X: 22}, Vector{}},
		{"trailing follows right", domain.AlignTrailing, Vector{X: 21, Y: 3}, Vector{X: 21}},
		{"center follows upward", domain.AlignCenter, Vector{Y: -21}, Vector{Y: -21}},
		{"top corner ignores horizontal", domain.AlignTopLeading, Vector{X: -40}, Vector{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(domain.Flag(true), domain.NewOptions(domain.WithAlignment(tt.align)))

			offset, _ := h.ctrl.OnDragChanged(tt.translation, tt.align)
			assert.Equal(t, tt.wantOffset, offset)
		})
	}
}

func TestDrag_Disabled(t *testing.T) {
	h := newHarness(domain.Flag(true), domain.NewOptions(domain.WithDragToDismiss(false)))

	offset, distance := h.ctrl.OnDragChanged(Vector{Y: -100}, domain.AlignTop)
	assert.True(t, offset.IsZero())
	assert.Zero(t, distance)
	assert.False(t, h.ctrl.OnDragEnded())
	assert.True(t, h.ctrl.IsVisible())
}

func TestExternalHide_DoesNotInvokeOnDismiss(t *testing.T) {
	h := newHarness(domain.Flag(false), domain.NewOptions(domain.WithHideAfter(time.Second)))

	h.ctrl.ObserveExternalChange(domain.Flag(true))
	h.ctrl.OnDragChanged(Vector{Y: -5}, domain.AlignTop)
	h.ctrl.ObserveExternalChange(domain.Flag(false))

	assert.Equal(t, 0, h.dismissed)
	assert.False(t, h.ctrl.TimerArmed())
	assert.True(t, h.ctrl.Offset().IsZero())
	assert.Equal(t, []Cause{CauseExternal}, h.observer.causes)
	assert.Equal(t, 1, h.observer.presented)
}

func TestItemForm_WithBinding(t *testing.T) {
	binding := domain.NewVar(domain.Item(nil))
	h := newHarness(binding.Get(), domain.NewOptions(domain.WithHideAfter(time.Second)), WithBinding(binding))

	binding.Set(domain.Item(notice("build finished")))
	require.NotNil(t, h.ctrl.Sync())

	assert.True(t, h.ctrl.IsVisible())
	assert.Equal(t, notice("build finished"), h.ctrl.Payload())

	// Replacing the payload while shown keeps the same timer
	binding.Set(domain.Item(notice("tests passed")))
	assert.Nil(t, h.ctrl.Sync())
	assert.Equal(t, notice("tests passed"), h.ctrl.Payload())
	assert.Len(t, h.ticker.durations, 1)

	h.ctrl.Dismiss()

	assert.Nil(t, binding.Get().Payload(), "dismiss clears the bound item")
	assert.Equal(t, domain.KindItem, binding.Get().Kind())
	assert.Nil(t, h.ctrl.Payload())
	assert.Nil(t, h.ctrl.Sync(), "hidden binding is not an edge")
}

func TestSync_WithoutBinding(t *testing.T) {
	h := newHarness(domain.Flag(false), domain.DefaultOptions())
	assert.Nil(t, h.ctrl.Sync())
}

func TestKindMismatch_Panics(t *testing.T) {
	h := newHarness(domain.Item(nil), domain.DefaultOptions())

	defer func() {
		r := recover()
		require.NotNil(t, r, "expected panic")
		err, ok := r.(error)
		require.True(t, ok, "panic value %T is not an error", r)
		assert.True(t, errors.Is(err, domain.ErrRepresentationMismatch))

		var misuse *domain.MisuseError
		require.True(t, errors.As(err, &misuse))
		assert.Equal(t, domain.KindItem, misuse.Want)
		assert.Equal(t, domain.KindFlag, misuse.Got)
	}()

	h.ctrl.ObserveExternalChange(domain.Flag(true))
}

func TestKindMismatch_ThroughBinding(t *testing.T) {
	binding := domain.NewVar(domain.Flag(false))
	h := newHarness(domain.Flag(false), domain.DefaultOptions(), WithBinding(binding))

	binding.Set(domain.Item(notice("x")))
	assert.Panics(t, func() { h.ctrl.Sync() })
}

func TestVisibilityHandler(t *testing.T) {
	var seen []bool
	h := newHarness(domain.Flag(false), domain.DefaultOptions(),
		WithVisibilityHandler(func(v bool) { seen = append(seen, v) }))

	h.ctrl.ObserveExternalChange(domain.Flag(true))
	h.ctrl.ObserveExternalChange(domain.Flag(true))
	h.ctrl.Dismiss()
	h.ctrl.Dismiss()

	assert.Equal(t, []bool{true, false}, seen)
}

func TestClose_CancelsTimerAndStopsArming(t *testing.T) {
	binding := domain.NewVar(domain.Flag(false))
	h := newHarness(domain.Flag(false), domain.NewOptions(domain.WithHideAfter(time.Second)), WithBinding(binding))

	h.ctrl.ObserveExternalChange(domain.Flag(true))
	msg := h.ticker.fire(t, 0)

	h.ctrl.Close()
	assert.False(t, h.ctrl.TimerArmed())
	assert.False(t, h.ctrl.HandleTimeout(msg))
	assert.Nil(t, h.ctrl.OnAppear())
	assert.Nil(t, h.ctrl.Sync(), "closed controller drops its binding")
}

func TestNew_UniqueIDs(t *testing.T) {
	a := New(domain.Flag(false), domain.DefaultOptions(), nil)
	b := New(domain.Flag(false), domain.DefaultOptions(), nil)
	assert.NotEqual(t, a.ID(), b.ID())

	// nil onDismiss is allowed
	a.ObserveExternalChange(domain.Flag(true))
	a.Dismiss()
	assert.False(t, a.IsVisible())
}
