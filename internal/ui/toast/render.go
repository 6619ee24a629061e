package toast

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/riordanpawley/toastkit/internal/domain"
	"github.com/riordanpawley/toastkit/internal/ui/styles"
)

// hiddenBelow is the progress under which nothing is drawn
const hiddenBelow = 0.05

// Visible reports whether anything is drawn, including exit transitions
func (m *Model) Visible() bool {
	return m.payload != nil && m.anim.progress() > hiddenBelow
}

// View renders the toast box alone with its transition applied. It returns
// "" when nothing is drawn.
func (m *Model) View() string {
	if !m.Visible() {
		return ""
	}

	box := m.box()
	p := m.anim.progress()
	w, h := lipgloss.Width(box), lipgloss.Height(box)

	switch m.ctrl.Options().Transition {
	case domain.TransitionFade:
		if p < 0.5 {
			box = m.styles.ToastFaint.Render(ansi.Strip(box))
		}
	case domain.TransitionScale:
		box = lipgloss.NewStyle().
			MaxWidth(scaled(w, p)).
			MaxHeight(scaled(h, p)).
			Render(box)
	case domain.TransitionSkew:
		// rotates about the top edge, so rows appear from the top
		box = lipgloss.NewStyle().MaxHeight(scaled(h, p)).Render(box)
	}

	return box
}

// box renders content, container and countdown at full size
func (m *Model) box() string {
	var body string
	if m.content != nil {
		body = m.content(m.payload)
	}

	if m.countingDown() {
		m.countdown.Width = max(lipgloss.Width(body), 10)
		bar := m.styles.Countdown.Render(m.countdown.ViewAs(m.remainingFraction()))
		body = lipgloss.JoinVertical(lipgloss.Left, body, bar)
	}

	style := m.styles.Toast
	if m.style != nil {
		style = m.style(m.payload)
	}
	if m.width > 0 {
		style = style.MaxWidth(m.width)
	}
	return style.Render(body)
}

// Render draws the toast onto base, the host view
func (m *Model) Render(base string) string {
	box := m.View()
	if box == "" {
		m.bounds = rect{}
		return base
	}

	width, height := m.width, m.height
	if width <= 0 {
		width = lipgloss.Width(base)
	}
	if height <= 0 {
		height = lipgloss.Height(base)
	}

	opts := m.ctrl.Options()
	if opts.DisplayMode == domain.DisplayInline {
		return m.renderInline(base, box, width, height)
	}
	return m.renderFull(base, box, width, height)
}

// renderInline reserves rows for the toast above or below base. The result
// keeps the parent height: base rows that no longer fit drop off the bottom.
func (m *Model) renderInline(base, box string, width, height int) string {
	opts := m.ctrl.Options()
	boxLines := strings.Split(box, "\n")
	if len(boxLines) > height {
		boxLines = boxLines[:height]
	}
	x := m.column(lipgloss.Width(box), width)

	rows := make([]string, len(boxLines))
	visibleX, visibleW := 0, 0
	for i, line := range boxLines {
		left, segment := clip(line, x, width)
		if segment != "" {
			visibleX, visibleW = left, max(visibleW, lipgloss.Width(segment))
		}
		rows[i] = strings.Repeat(" ", left) + segment
	}

	kept := make([]string, height-len(rows))
	copy(kept, strings.Split(base, "\n"))

	if opts.Alignment.IsBottom() {
		m.bounds = rect{x: visibleX, y: len(kept), w: visibleW, h: len(rows)}
		return strings.Join(append(kept, rows...), "\n")
	}
	m.bounds = rect{x: visibleX, y: 0, w: visibleW, h: len(rows)}
	return strings.Join(append(rows, kept...), "\n")
}

// renderFull overlays whole rows of base with the toast
func (m *Model) renderFull(base, box string, width, height int) string {
	opts := m.ctrl.Options()
	baseLines := strings.Split(base, "\n")
	boxLines := strings.Split(box, "\n")
	boxH := len(boxLines)

	x := m.column(lipgloss.Width(box), width)
	y := m.row(boxH, height)

	backdrop := opts.Backdrop && m.ctrl.IsVisible()
	fill := lipgloss.NewStyle()
	if backdrop {
		fill = fill.Background(lipgloss.Color(opts.BackdropColor)).Foreground(styles.Overlay0)
	}

	visibleX, visibleW := 0, 0
	out := make([]string, 0, height)
	for r := 0; r < height; r++ {
		var line string
		if r < len(baseLines) {
			line = baseLines[r]
		}

		if r >= y && r < y+boxH {
			left, segment := clip(boxLines[r-y], x, width)
			segW := lipgloss.Width(segment)
			if segW > 0 {
				visibleX, visibleW = left, max(visibleW, segW)
			}
			right := max(width-left-segW, 0)
			out = append(out, fill.Render(strings.Repeat(" ", left))+segment+fill.Render(strings.Repeat(" ", right)))
			continue
		}

		if backdrop {
			line = fill.Width(width).MaxWidth(width).Render(ansi.Strip(line))
		}
		out = append(out, line)
	}

	visibleTop, visibleBottom := max(y, 0), min(y+boxH, height)
	m.bounds = rect{x: visibleX, y: visibleTop, w: visibleW, h: max(visibleBottom-visibleTop, 0)}
	if visibleW == 0 {
		m.bounds = rect{}
	}
	return strings.Join(out, "\n")
}

// column returns the left edge of the toast including the drag offset. It
// may lie outside the parent; clip cuts what does not fit.
func (m *Model) column(boxW, width int) int {
	opts := m.ctrl.Options()

	var x int
	switch opts.Alignment {
	case domain.AlignTopLeading, domain.AlignBottomLeading, domain.AlignLeading:
		x = 0
	case domain.AlignTopTrailing, domain.AlignBottomTrailing, domain.AlignTrailing:
		x = width - boxW
	default:
		x = (width - boxW) / 2
	}
	x = max(0, min(x, width-boxW))

	return x + int(math.Round(m.ctrl.Offset().X/m.units.X))
}

// clip returns the part of line drawn at column x that falls inside
// [0, width) and the column it starts at
func clip(line string, x, width int) (int, string) {
	w := ansi.StringWidth(line)
	from, to := max(0, -x), min(w, width-x)
	if from >= to {
		return 0, ""
	}
	if from == 0 && to == w {
		return x, line
	}
	return x + from, ansi.Cut(line, from, to)
}

// row returns the top edge of the toast. Rows outside the parent are clipped
// by the caller.
func (m *Model) row(boxH, height int) int {
	opts := m.ctrl.Options()

	var y int
	switch {
	case opts.Alignment.IsTop():
		y = 0
	case opts.Alignment.IsBottom():
		y = height - boxH
	default:
		y = (height - boxH) / 2
	}

	y += int(math.Round(m.ctrl.Offset().Y / m.units.Y))

	if opts.Transition == domain.TransitionSlide {
		shift := int(math.Round((1 - m.anim.progress()) * float64(boxH)))
		if opts.Alignment.TransitionEdge() == domain.EdgeBottom {
			y += shift
		} else {
			y -= shift
		}
	}
	return y
}

func scaled(n int, p float64) int {
	return max(1, int(math.Ceil(float64(n)*p)))
}
