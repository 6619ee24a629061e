// Package overlay holds modal panels drawn above the host view and the
// toast layer.
package overlay

import tea "github.com/charmbracelet/bubbletea"

// Overlay is a modal panel. Title is drawn in the frame; Size is the
// preferred outer size, clamped to the screen when placed.
type Overlay interface {
	tea.Model
	Title() string
	Size() (width, height int)
}

// CloseOverlayMsg asks the stack to pop the top overlay
type CloseOverlayMsg struct{}

// Close is a command producing CloseOverlayMsg
func Close() tea.Msg {
	return CloseOverlayMsg{}
}
