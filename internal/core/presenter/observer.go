package presenter

import "time"

// Cause records why a toast was hidden
type Cause int

const (
	CauseTimeout Cause = iota
	CauseTap
	CauseDrag
	CauseProgrammatic
	// CauseExternal is a hide made by the caller through its binding.
	// It does not invoke onDismiss.
	CauseExternal
)

// String returns the cause name used in logs and metric labels
func (c Cause) String() string {
	switch c {
	case CauseTimeout:
		return "timeout"
	case CauseTap:
		return "tap"
	case CauseDrag:
		return "drag"
	case CauseProgrammatic:
		return "programmatic"
	case CauseExternal:
		return "external"
	default:
		return "unknown"
	}
}

// Observer receives presentation lifecycle events
type Observer interface {
	Presented(id int)
	Dismissed(id int, cause Cause, shown time.Duration)
}

type nopObserver struct{}

func (nopObserver) Presented(int)                       {}
func (nopObserver) Dismissed(int, Cause, time.Duration) {}

// Observers fans events out to several observers
type Observers []Observer

// Presented implements Observer
func (o Observers) Presented(id int) {
	for _, obs := range o {
		obs.Presented(id)
	}
}

// Dismissed implements Observer
func (o Observers) Dismissed(id int, cause Cause, shown time.Duration) {
	for _, obs := range o {
		obs.Dismissed(id, cause, shown)
	}
}
