// Package types contains shared types used across the application.
package types

// Mode is what the demo host is currently routing keys to
type Mode int

const (
	// ModeNormal routes keys to the host and the toasts
	ModeNormal Mode = iota
	// ModeHelp routes keys to the help overlay
	ModeHelp
)

// String returns the status bar badge for the mode
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeHelp:
		return "HELP"
	default:
		return "UNKNOWN"
	}
}
