package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/toastkit/internal/types"
)

// Styles holds all the UI styles
type Styles struct {
	// Host content
	Content      lipgloss.Style
	ContentTitle lipgloss.Style
	ContentMuted lipgloss.Style

	// Status bar
	StatusBar  lipgloss.Style
	StatusMode lipgloss.Style
	StatusHint lipgloss.Style
	StatusInfo lipgloss.Style

	// Key hints inside host content
	Key lipgloss.Style

	// Toasts
	Toast        lipgloss.Style
	ToastTitle   lipgloss.Style
	ToastInfo    lipgloss.Style
	ToastSuccess lipgloss.Style
	ToastWarning lipgloss.Style
	ToastError   lipgloss.Style
	ToastFaint   lipgloss.Style
	Countdown    lipgloss.Style
}

// New creates a new Styles instance with Catppuccin Macchiato theme
func New() *Styles {
	return &Styles{
		Content: lipgloss.NewStyle().
			Foreground(Text).
			Padding(1, 2),

		ContentTitle: lipgloss.NewStyle().
			Foreground(Lavender).
			Bold(true).
			MarginBottom(1),

		ContentMuted: lipgloss.NewStyle().
			Foreground(Overlay1),

		StatusBar: lipgloss.NewStyle().
			Background(Surface0).
			Foreground(Subtext0).
			Padding(0, 1),

		StatusMode: lipgloss.NewStyle().
			Background(Blue).
			Foreground(Base).
			Bold(true).
			Padding(0, 1),

		StatusHint: lipgloss.NewStyle().
			Foreground(Overlay1),

		StatusInfo: lipgloss.NewStyle().
			Foreground(Subtext0),

		Key: lipgloss.NewStyle().
			Foreground(Yellow).
			Bold(true),

		Toast: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Surface2).
			Foreground(Text).
			Background(Mantle).
			Padding(0, 1),

		ToastTitle: lipgloss.NewStyle().
			Bold(true),

		ToastInfo:    toastLevel(types.LevelInfo),
		ToastSuccess: toastLevel(types.LevelSuccess),
		ToastWarning: toastLevel(types.LevelWarning),
		ToastError:   toastLevel(types.LevelError),

		ToastFaint: lipgloss.NewStyle().
			Faint(true),

		Countdown: lipgloss.NewStyle().
			Foreground(Overlay1),
	}
}

func toastLevel(level types.Level) lipgloss.Style {
	color := LevelColor(level)
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Foreground(color).
		Background(Mantle).
		Padding(0, 1)
}

// ToastLevel returns the toast style for a notice level
func (s *Styles) ToastLevel(level types.Level) lipgloss.Style {
	switch level {
	case types.LevelSuccess:
		return s.ToastSuccess
	case types.LevelWarning:
		return s.ToastWarning
	case types.LevelError:
		return s.ToastError
	default:
		return s.ToastInfo
	}
}
