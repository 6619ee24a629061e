package overlay

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/toastkit/internal/ui/styles"
)

// Styles holds overlay styles
type Styles struct {
	// Overlay is the modal frame
	Overlay lipgloss.Style
	Title   lipgloss.Style
	// Section heads a group of key bindings
	Section lipgloss.Style
	Key     lipgloss.Style
	Desc    lipgloss.Style
	// Disabled renders bindings that are currently switched off
	Disabled lipgloss.Style
	Footer   lipgloss.Style
}

// New creates overlay styles from the Catppuccin Macchiato palette
func New() *Styles {
	return &Styles{
		Overlay: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(styles.Surface2).
			Background(styles.Base).
			Padding(1, 2),

		Title: lipgloss.NewStyle().
			Foreground(styles.Text).
			Bold(true).
			MarginBottom(1),

		Section: lipgloss.NewStyle().
			Foreground(styles.Blue).
			Bold(true),

		Key: lipgloss.NewStyle().
			Foreground(styles.Yellow).
			Bold(true),

		Desc: lipgloss.NewStyle().
			Foreground(styles.Text),

		Disabled: lipgloss.NewStyle().
			Foreground(styles.Overlay0),

		Footer: lipgloss.NewStyle().
			Foreground(styles.Subtext0).
			MarginTop(1),
	}
}
