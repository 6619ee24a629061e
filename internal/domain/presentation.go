package domain

// Identifiable is a payload that can be shown by an item-driven toast
type Identifiable interface {
	ID() string
}

// EmptyItem is the payload handed to content renderers of a visible
// flag-driven toast
type EmptyItem struct{}

// ID implements Identifiable
func (EmptyItem) ID() string { return "" }

// Kind is the representation a PresentationState uses
type Kind int

const (
	KindFlag Kind = iota
	KindItem
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindFlag:
		return "flag"
	case KindItem:
		return "item"
	default:
		return "unknown"
	}
}

// PresentationState unifies boolean-driven and item-driven visibility.
//
// The zero value is a hidden flag.
type PresentationState struct {
	kind    Kind
	visible bool
	item    Identifiable
}

// Flag returns a boolean presentation state
func Flag(visible bool) PresentationState {
	return PresentationState{kind: KindFlag, visible: visible}
}

// Item returns an item presentation state; a nil item means hidden
func Item(item Identifiable) PresentationState {
	return PresentationState{kind: KindItem, item: item}
}

// Kind returns the representation of the state
func (s PresentationState) Kind() Kind {
	return s.kind
}

// IsVisible reports whether the toast should be shown
func (s PresentationState) IsVisible() bool {
	if s.kind == KindItem {
		return s.item != nil
	}
	return s.visible
}

// Payload returns the item to render, EmptyItem for a visible flag, or nil
// when hidden
func (s PresentationState) Payload() Identifiable {
	switch {
	case s.kind == KindItem:
		return s.item
	case s.visible:
		return EmptyItem{}
	default:
		return nil
	}
}

// Hidden returns the hidden state of the same kind
func (s PresentationState) Hidden() PresentationState {
	if s.kind == KindItem {
		return Item(nil)
	}
	return Flag(false)
}

// Binding is a two-way view of presentation state owned by the caller
type Binding interface {
	Get() PresentationState
	Set(PresentationState)
}

// Var is a Binding backed by a plain field
type Var struct {
	state PresentationState
}

// NewVar creates a Var holding the initial state
func NewVar(initial PresentationState) *Var {
	return &Var{state: initial}
}

// Get returns the current state
func (v *Var) Get() PresentationState {
	return v.state
}

// Set replaces the current state
func (v *Var) Set(s PresentationState) {
	v.state = s
}
