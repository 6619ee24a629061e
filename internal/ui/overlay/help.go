package overlay

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Section is a named group of key bindings
type Section struct {
	Name     string
	Bindings []key.Binding
}

// SectionFrom flattens a help.KeyMap into one section
func SectionFrom(name string, km help.KeyMap) Section {
	s := Section{Name: name}
	for _, column := range km.FullHelp() {
		s.Bindings = append(s.Bindings, column...)
	}
	return s
}

// helpKeys scroll and close the help overlay
type helpKeys struct {
	Close  key.Binding
	Down   key.Binding
	Up     key.Binding
	Top    key.Binding
	Bottom key.Binding
}

var defaultHelpKeys = helpKeys{
	Close:  key.NewBinding(key.WithKeys("esc", "q", "?"), key.WithHelp("esc", "close")),
	Down:   key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/k", "scroll")),
	Up:     key.NewBinding(key.WithKeys("k", "up")),
	Top:    key.NewBinding(key.WithKeys("g"), key.WithHelp("g/G", "jump")),
	Bottom: key.NewBinding(key.WithKeys("G")),
}

const (
	helpWidth  = 50
	helpHeight = 24
	// helpRows is the scrollable area inside the frame
	helpRows = 14
)

// HelpOverlay lists key bindings by section
type HelpOverlay struct {
	styles    *Styles
	keys      helpKeys
	sections  []Section
	scroll    int
	maxScroll int
}

// NewHelpOverlay creates a help overlay for the given sections
func NewHelpOverlay(sections ...Section) *HelpOverlay {
	return &HelpOverlay{
		styles:   New(),
		keys:     defaultHelpKeys,
		sections: sections,
	}
}

// Init implements tea.Model
func (h *HelpOverlay) Init() tea.Cmd {
	return nil
}

// Update handles scrolling and closing
func (h *HelpOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return h, nil
	}

	switch {
	case key.Matches(km, h.keys.Close):
		return h, Close
	case key.Matches(km, h.keys.Down):
		h.scroll = min(h.scroll+1, h.maxScroll)
	case key.Matches(km, h.keys.Up):
		h.scroll = max(h.scroll-1, 0)
	case key.Matches(km, h.keys.Top):
		h.scroll = 0
	case key.Matches(km, h.keys.Bottom):
		h.scroll = h.maxScroll
	}
	return h, nil
}

// lines renders every section, one binding per line
func (h *HelpOverlay) lines() []string {
	var out []string
	for i, sec := range h.sections {
		if i > 0 {
			out = append(out, "")
		}
		out = append(out, h.styles.Section.Render(sec.Name+":"))
		for _, b := range sec.Bindings {
			hb := b.Help()
			if hb.Key == "" {
				continue
			}
			keyStyle, descStyle := h.styles.Key, h.styles.Desc
			if !b.Enabled() {
				keyStyle, descStyle = h.styles.Disabled, h.styles.Disabled
			}
			out = append(out, "  "+keyStyle.Render(hb.Key)+"  "+descStyle.Render(hb.Desc))
		}
	}
	return out
}

// View renders the visible window of bindings
func (h *HelpOverlay) View() string {
	lines := h.lines()
	h.maxScroll = max(0, len(lines)-helpRows)
	h.scroll = min(h.scroll, h.maxScroll)

	end := min(h.scroll+helpRows, len(lines))
	view := strings.Join(lines[h.scroll:end], "\n")

	if h.maxScroll > 0 {
		hint := h.styles.Key.Render("j/k") + " to scroll, " + h.styles.Key.Render("g/G") + " to jump"
		view += "\n" + h.styles.Footer.Render("["+hint+"]")
	}
	return view
}

// Title implements Overlay
func (h *HelpOverlay) Title() string {
	return "Help"
}

// Size implements Overlay
func (h *HelpOverlay) Size() (width, height int) {
	return helpWidth, helpHeight
}
