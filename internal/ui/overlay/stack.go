package overlay

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Stack keeps open overlays; only the top one receives input and is drawn
type Stack struct {
	overlays []Overlay
	styles   *Styles
}

// NewStack creates an empty stack
func NewStack() *Stack {
	return &Stack{styles: New()}
}

// Push opens o above the current overlay
func (s *Stack) Push(o Overlay) tea.Cmd {
	s.overlays = append(s.overlays, o)
	return o.Init()
}

// Pop closes the top overlay and returns it, or nil when empty
func (s *Stack) Pop() Overlay {
	top := s.Current()
	if top != nil {
		s.overlays = s.overlays[:len(s.overlays)-1]
	}
	return top
}

// Current returns the top overlay, or nil when empty
func (s *Stack) Current() Overlay {
	if len(s.overlays) == 0 {
		return nil
	}
	return s.overlays[len(s.overlays)-1]
}

// IsEmpty reports whether no overlay is open
func (s *Stack) IsEmpty() bool {
	return len(s.overlays) == 0
}

// Len returns the number of open overlays
func (s *Stack) Len() int {
	return len(s.overlays)
}

// Clear closes every overlay
func (s *Stack) Clear() {
	s.overlays = nil
}

// Update routes msg to the top overlay. CloseOverlayMsg pops instead.
func (s *Stack) Update(msg tea.Msg) tea.Cmd {
	top := s.Current()
	if top == nil {
		return nil
	}

	if _, ok := msg.(CloseOverlayMsg); ok {
		s.Pop()
		return nil
	}

	next, cmd := top.Update(msg)
	if o, ok := next.(Overlay); ok {
		s.overlays[len(s.overlays)-1] = o
	}
	return cmd
}

// Render draws the top overlay framed and centred in a width x height area,
// covering base. It returns base when the stack is empty.
func (s *Stack) Render(base string, width, height int) string {
	top := s.Current()
	if top == nil {
		return base
	}

	body := top.View()
	if title := top.Title(); title != "" {
		body = lipgloss.JoinVertical(lipgloss.Left, s.styles.Title.Render(title), body)
	}

	// Size is the outer size; the border is drawn outside Width/Height
	frame := s.styles.Overlay
	bw, bh := frame.GetHorizontalBorderSize(), frame.GetVerticalBorderSize()
	w, h := top.Size()
	w, h = max(min(w, width)-bw, 1), max(min(h, height)-bh, 1)

	body = lipgloss.NewStyle().MaxHeight(max(h-frame.GetVerticalPadding(), 1)).Render(body)
	panel := frame.Width(w).Height(h).Render(body)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, panel)
}
