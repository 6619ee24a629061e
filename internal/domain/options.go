package domain

import (
	"fmt"
	"strings"
	"time"
)

// Alignment anchors the toast to an edge or corner of its parent
type Alignment int

const (
	AlignTop Alignment = iota
	AlignTopLeading
	AlignTopTrailing
	AlignBottom
	AlignBottomLeading
	AlignBottomTrailing
	AlignLeading
	AlignTrailing
	AlignCenter
)

var alignmentNames = map[Alignment]string{
	AlignTop:            "top",
	AlignTopLeading:     "topLeading",
	AlignTopTrailing:    "topTrailing",
	AlignBottom:         "bottom",
	AlignBottomLeading:  "bottomLeading",
	AlignBottomTrailing: "bottomTrailing",
	AlignLeading:        "leading",
	AlignTrailing:       "trailing",
	AlignCenter:         "center",
}

// String returns the config name of the alignment
func (a Alignment) String() string {
	if name, ok := alignmentNames[a]; ok {
		return name
	}
	return "unknown"
}

// ParseAlignment parses a config name, case-insensitively
func ParseAlignment(s string) (Alignment, error) {
	for a, name := range alignmentNames {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return a, nil
		}
	}
	return AlignTop, fmt.Errorf("alignment %q: %w", s, ErrInvalidOption)
}

// Axis is a drag axis
type Axis int

const (
	AxisVertical Axis = iota
	AxisHorizontal
)

// DismissAxis returns the axis a drag must follow to push the toast off screen
func (a Alignment) DismissAxis() Axis {
	switch a {
	case AlignLeading, AlignTrailing:
		return AxisHorizontal
	default:
		return AxisVertical
	}
}

// DismissDirection returns -1 when the toast leaves up or left and +1 when it
// leaves down or right
func (a Alignment) DismissDirection() float64 {
	switch a {
	case AlignBottom, AlignBottomLeading, AlignBottomTrailing, AlignTrailing:
		return 1
	default:
		return -1
	}
}

// IsTop reports whether the toast sits on the top row
func (a Alignment) IsTop() bool {
	return a == AlignTop || a == AlignTopLeading || a == AlignTopTrailing
}

// IsBottom reports whether the toast sits on the bottom row
func (a Alignment) IsBottom() bool {
	return a == AlignBottom || a == AlignBottomLeading || a == AlignBottomTrailing
}

// Edge is the side a slide transition enters from
type Edge int

const (
	EdgeTop Edge = iota
	EdgeBottom
)

// TransitionEdge returns the edge slide transitions use
func (a Alignment) TransitionEdge() Edge {
	if a.IsBottom() {
		return EdgeBottom
	}
	return EdgeTop
}

// Transition selects the appear/disappear effect
type Transition int

const (
	TransitionFade Transition = iota
	TransitionSlide
	TransitionScale
	TransitionSkew
)

var transitionNames = map[Transition]string{
	TransitionFade:  "fade",
	TransitionSlide: "slide",
	TransitionScale: "scale",
	TransitionSkew:  "skew",
}

func (t Transition) String() string {
	if name, ok := transitionNames[t]; ok {
		return name
	}
	return "unknown"
}

// ParseTransition parses a transition name
func ParseTransition(s string) (Transition, error) {
	for t, name := range transitionNames {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return t, nil
		}
	}
	return TransitionFade, fmt.Errorf("transition %q: %w", s, ErrInvalidOption)
}

// DisplayMode defines how much space the toast reserves in its parent
type DisplayMode int

const (
	// DisplayFull overlays the toast on the whole parent
	DisplayFull DisplayMode = iota
	// DisplayInline reserves only the rows the toast occupies
	DisplayInline
)

func (m DisplayMode) String() string {
	if m == DisplayInline {
		return "inline"
	}
	return "full"
}

// ParseDisplayMode parses "full" or "inline"
func ParseDisplayMode(s string) (DisplayMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "full", "":
		return DisplayFull, nil
	case "inline":
		return DisplayInline, nil
	default:
		return DisplayFull, fmt.Errorf("display mode %q: %w", s, ErrInvalidOption)
	}
}

// DefaultBackdropColor is a near-white wash, the terminal stand-in for a
// translucent white backdrop
const DefaultBackdropColor = "#e6e6e6"

// Options configures one toast presentation. Treat it as a value.
type Options struct {
	Alignment Alignment
	// HideAfter is the auto-hide delay; zero or negative never hides
	HideAfter     time.Duration
	Backdrop      bool
	BackdropColor string
	DismissOnTap  bool
	DragToDismiss bool
	Transition    Transition
	DisplayMode   DisplayMode
	ShowCountdown bool
}

// Option mutates Options while building them
type Option func(*Options)

// DefaultOptions returns the options used when nothing is configured
func DefaultOptions() Options {
	return Options{
		Alignment:     AlignTop,
		Backdrop:      true,
		BackdropColor: DefaultBackdropColor,
		DismissOnTap:  true,
		DragToDismiss: true,
		Transition:    TransitionFade,
		DisplayMode:   DisplayFull,
	}
}

// NewOptions applies opts on top of DefaultOptions
func NewOptions(opts ...Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// AutoHides reports whether a timer should be armed
func (o Options) AutoHides() bool {
	return o.HideAfter > 0
}

// WithAlignment sets the anchor
func WithAlignment(a Alignment) Option {
	return func(o *Options) { o.Alignment = a }
}

// WithHideAfter sets the auto-hide delay
func WithHideAfter(d time.Duration) Option {
	return func(o *Options) { o.HideAfter = d }
}

// WithBackdrop toggles the backdrop and sets its colour when non-empty
func WithBackdrop(enabled bool, color string) Option {
	return func(o *Options) {
		o.Backdrop = enabled
		if color != "" {
			o.BackdropColor = color
		}
	}
}

// WithDismissOnTap toggles tap-to-dismiss
func WithDismissOnTap(enabled bool) Option {
	return func(o *Options) { o.DismissOnTap = enabled }
}

// WithDragToDismiss toggles the drag gesture
func WithDragToDismiss(enabled bool) Option {
	return func(o *Options) { o.DragToDismiss = enabled }
}

// WithTransition sets the transition style
func WithTransition(t Transition) Option {
	return func(o *Options) { o.Transition = t }
}

// WithDisplayMode sets the display mode
func WithDisplayMode(m DisplayMode) Option {
	return func(o *Options) { o.DisplayMode = m }
}

// WithCountdown toggles the remaining-time bar
func WithCountdown(enabled bool) Option {
	return func(o *Options) { o.ShowCountdown = enabled }
}
