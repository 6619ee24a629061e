package statusbar

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/toastkit/internal/types"
	"github.com/riordanpawley/toastkit/internal/ui/styles"
)

// StatusBar represents the status bar at the bottom of the TUI
type StatusBar struct {
	mode    types.Mode
	width   int
	styles  *styles.Styles
	keys    help.KeyMap
	status  string
	spinner string
}

// New creates a new StatusBar with the given mode, width, and styles
func New(mode types.Mode, width int, styles *styles.Styles) StatusBar {
	return StatusBar{
		mode:   mode,
		width:  width,
		styles: styles,
	}
}

// WithKeys renders hints from a key map instead of the fallback text
func (sb StatusBar) WithKeys(keys help.KeyMap) StatusBar {
	sb.keys = keys
	return sb
}

// WithStatus shows text on the right, such as the last dismissal
func (sb StatusBar) WithStatus(status string) StatusBar {
	sb.status = status
	return sb
}

// WithSpinner shows an activity indicator next to the status
func (sb StatusBar) WithSpinner(view string) StatusBar {
	sb.spinner = view
	return sb
}

// Render renders the status bar as a string
func (sb StatusBar) Render() string {
	modeBadge := sb.styles.StatusMode.Render(" " + sb.mode.String() + " ")

	var hints string
	if sb.keys != nil {
		h := help.New()
		h.ShortSeparator = "  "
		h.Styles.ShortKey = sb.styles.StatusHint
		h.Styles.ShortDesc = sb.styles.StatusHint
		h.Styles.ShortSeparator = sb.styles.StatusHint
		hints = h.ShortHelpView(sb.keys.ShortHelp())
	} else if text := GetHints(sb.mode); text != "" {
		hints = sb.styles.StatusHint.Render(text)
	}

	content := modeBadge
	if hints != "" {
		separator := sb.styles.StatusHint.Render(" │ ")
		content = lipgloss.JoinHorizontal(lipgloss.Left, modeBadge, separator, hints)
	}

	right := sb.status
	if sb.spinner != "" {
		right = sb.spinner + " " + right
	}
	if right != "" {
		right = sb.styles.StatusInfo.Render(right)
		gap := sb.width - lipgloss.Width(content) - lipgloss.Width(right) - sb.styles.StatusBar.GetHorizontalFrameSize()
		if gap > 0 {
			content = lipgloss.JoinHorizontal(lipgloss.Left, content, lipgloss.NewStyle().Width(gap).Render(""), right)
		}
	}

	// Truncate rather than wrap, then fill width
	if inner := sb.width - sb.styles.StatusBar.GetHorizontalFrameSize(); inner > 0 {
		content = lipgloss.NewStyle().MaxWidth(inner).Render(content)
	}
	return sb.styles.StatusBar.Width(sb.width).Render(content)
}
