// Package app contains the demo host: a Bubble Tea model presenting a
// flag-bound toast and a notice toast fed by the notification hub.
package app

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/toastkit/internal/core/presenter"
	"github.com/riordanpawley/toastkit/internal/domain"
	"github.com/riordanpawley/toastkit/internal/services/notify"
	"github.com/riordanpawley/toastkit/internal/types"
	"github.com/riordanpawley/toastkit/internal/ui/overlay"
	"github.com/riordanpawley/toastkit/internal/ui/statusbar"
	"github.com/riordanpawley/toastkit/internal/ui/styles"
	"github.com/riordanpawley/toastkit/internal/ui/toast"
)

// defaultNoticeDelay stands in for background work before a notice is
// published
const defaultNoticeDelay = 400 * time.Millisecond

// sampleNotices are cycled through by the notify key
var sampleNotices = []struct {
	level   types.Level
	title   string
	message string
}{
	{types.LevelInfo, "Heads up", "A background job started"},
	{types.LevelSuccess, "Done", "Export finished"},
	{types.LevelWarning, "Careful", "Disk usage above 80%"},
	{types.LevelError, "Failed", "Could not reach the server"},
}

// Deps are the collaborators of the demo host
type Deps struct {
	Hub *notify.Hub
	// Observer receives lifecycle events of both toasts, e.g. the metrics
	// recorder
	Observer presenter.Observer
	Logger   *slog.Logger
	// NoticeDelay defaults to defaultNoticeDelay; a negative value publishes
	// immediately
	NoticeDelay time.Duration
	// Tick overrides the auto-dismiss scheduler
	Tick presenter.TickFunc
}

// noticePublishedMsg reports that a background publish finished
type noticePublishedMsg struct {
	receivers int
}

// lastDismissal keeps the most recent dismissal for the status bar
type lastDismissal struct {
	cause presenter.Cause
	shown time.Duration
	seen  bool
}

func (l *lastDismissal) Presented(int) {}

func (l *lastDismissal) Dismissed(_ int, cause presenter.Cause, shown time.Duration) {
	l.cause, l.shown, l.seen = cause, shown, true
}

func (l *lastDismissal) String() string {
	if !l.seen {
		return "ready"
	}
	return fmt.Sprintf("dismissed by %s after %s", l.cause, l.shown.Round(100*time.Millisecond))
}

// Model is the demo application state
type Model struct {
	// Caller-owned presentation state
	flag   *domain.Var
	notice *domain.Var

	flagToast   *toast.Model
	noticeToast *toast.Model

	overlayStack *overlay.Stack
	keys         KeyMap

	// Background publishing
	hub       *notify.Hub
	delay     time.Duration
	requested int
	pending   int
	spinner   spinner.Model

	last *lastDismissal

	width  int
	height int

	styles *styles.Styles
	logger *slog.Logger
}

// New creates the demo model. opts configure the flag toast; the notice
// toast uses the opposite vertical edge and no backdrop.
func New(opts domain.Options, deps Deps) Model {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	hub := deps.Hub
	if hub == nil {
		hub = notify.Default
	}
	delay := deps.NoticeDelay
	switch {
	case delay == 0:
		delay = defaultNoticeDelay
	case delay < 0:
		delay = 0
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Blue)

	st := styles.New()
	last := &lastDismissal{}

	controllerOpts := func(binding domain.Binding) []presenter.Option {
		observers := presenter.Observers{last}
		if deps.Observer != nil {
			observers = append(observers, deps.Observer)
		}
		out := []presenter.Option{
			presenter.WithBinding(binding),
			presenter.WithLogger(logger),
			presenter.WithObserver(observers),
		}
		if deps.Tick != nil {
			out = append(out, presenter.WithTickFunc(deps.Tick))
		}
		return out
	}

	flag := domain.NewVar(domain.Flag(false))
	flagToast := toast.New(toast.Config{
		Initial: flag.Get(),
		Options: opts,
		OnDismiss: func() {
			logger.Info("flag toast dismissed by user")
		},
		Content: func(domain.Identifiable) string {
			return st.ToastTitle.Render("Changes saved") + "\n" + "tap, drag or wait to dismiss"
		},
		Styles:     st,
		Controller: controllerOpts(flag),
	})

	noticeOpts := opts
	noticeOpts.Backdrop = false
	noticeOpts.DisplayMode = domain.DisplayFull
	if opts.Alignment.IsBottom() {
		noticeOpts.Alignment = domain.AlignTopTrailing
	} else {
		noticeOpts.Alignment = domain.AlignBottomTrailing
	}

	notice := domain.NewVar(domain.Item(nil))
	noticeToast := toast.New(toast.Config{
		Initial: notice.Get(),
		Options: noticeOpts,
		OnDismiss: func() {
			logger.Info("notice dismissed by user")
		},
		Content: func(p domain.Identifiable) string {
			n, ok := p.(types.Notice)
			if !ok {
				return ""
			}
			title := n.Title
			if title == "" {
				title = n.Level.String()
			}
			return st.ToastTitle.Render(title) + "\n" + n.Message
		},
		Style: func(p domain.Identifiable) lipgloss.Style {
			if n, ok := p.(types.Notice); ok {
				return st.ToastLevel(n.Level)
			}
			return st.Toast
		},
		Styles:     st,
		Controller: controllerOpts(notice),
	})

	return Model{
		flag:         flag,
		notice:       notice,
		flagToast:    flagToast,
		noticeToast:  noticeToast,
		overlayStack: overlay.NewStack(),
		keys:         DefaultKeyMap(),
		hub:          hub,
		delay:        delay,
		spinner:      s,
		last:         last,
		styles:       st,
		logger:       logger,
	}
}

// Attach forwards published notices into the running program. Call it
// once the program exists; Close releases the subscription.
func (m Model) Attach(s notify.Sender) {
	m.noticeToast.BindSubscription(notify.Forward[types.Notice](m.hub, s))
}

// Close tears both toasts down
func (m Model) Close() {
	m.flagToast.Close()
	m.noticeToast.Close()
}

// Init returns the initial command for the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.flagToast.Init(),
		m.noticeToast.Init(),
	)
}

// Update handles incoming messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.flagToast.SetSize(m.width, m.bodyHeight())
		m.noticeToast.SetSize(m.width, m.bodyHeight())
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		// If overlay is open, route to overlay stack
		if !m.overlayStack.IsEmpty() {
			return m, m.overlayStack.Update(msg)
		}
		return m.handleKey(msg)

	case overlay.CloseOverlayMsg:
		m.overlayStack.Pop()
		return m, nil

	case tea.MouseMsg:
		if !m.overlayStack.IsEmpty() {
			return m, nil
		}
		// the notice is drawn above the flag toast
		if m.noticeToast.Captures(msg) {
			_, cmd := m.noticeToast.Update(msg)
			return m, cmd
		}
		_, cmd := m.flagToast.Update(msg)
		return m, cmd

	case noticePublishedMsg:
		m.pending = max(m.pending-1, 0)
		if msg.receivers == 0 {
			m.logger.Warn("notice published without subscribers")
		}
		return m, nil

	case notify.Received[types.Notice]:
		return m, m.showNotice(msg.Value)
	}

	// timers and animation frames carry their toast's id
	_, flagCmd := m.flagToast.Update(msg)
	_, noticeCmd := m.noticeToast.Update(msg)
	return m, tea.Batch(flagCmd, noticeCmd)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		return m, m.overlayStack.Push(overlay.NewHelpOverlay(
			overlay.SectionFrom("Demo", m.keys),
			overlay.SectionFrom("Toast", m.flagToast.KeyMap()),
		))

	case key.Matches(msg, m.keys.Toggle):
		next := domain.Flag(!m.flag.Get().IsVisible())
		m.flag.Set(next)
		m.logger.Info("flag toggled", "visible", next.IsVisible())
		return m, m.flagToast.Sync()

	case key.Matches(msg, m.keys.Notify):
		cmd := m.requestNotice()
		return m, cmd

	case key.Matches(msg, m.keys.Dismiss):
		return m, tea.Batch(m.flagToast.Dismiss(), m.noticeToast.Dismiss())
	}

	// toast keys go to the top-most visible toast
	target := m.flagToast
	if m.noticeToast.Controller().IsVisible() {
		target = m.noticeToast
	}
	_, cmd := target.Update(msg)
	return m, cmd
}

// requestNotice publishes the next sample notice from a command goroutine,
// the way any producer outside the UI would
func (m *Model) requestNotice() tea.Cmd {
	sample := sampleNotices[m.requested%len(sampleNotices)]
	m.requested++
	m.pending++

	n := types.NewNotice(sample.level, sample.message).WithTitle(sample.title)
	hub, delay, logger := m.hub, m.delay, m.logger

	return func() tea.Msg {
		if delay > 0 {
			time.Sleep(delay)
		}
		receivers := notify.Publish(hub, n)
		logger.Debug("notice published", "notice", n.ID(), "receivers", receivers)
		return noticePublishedMsg{receivers: receivers}
	}
}

// showNotice presents n. A newer notice replaces the current one and
// restarts its timer.
func (m Model) showNotice(n types.Notice) tea.Cmd {
	m.logger.Info("notice received", "notice", n.ID(), "level", n.Level.String())

	var cmds []tea.Cmd
	if m.notice.Get().IsVisible() {
		m.notice.Set(domain.Item(nil))
		cmds = append(cmds, m.noticeToast.Sync())
	}
	m.notice.Set(domain.Item(n))
	cmds = append(cmds, m.noticeToast.Sync())
	return tea.Batch(cmds...)
}

// bodyHeight is the screen minus the status bar
func (m Model) bodyHeight() int {
	return max(m.height-1, 1)
}

// View renders the application
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	bodyH := m.bodyHeight()

	body := lipgloss.Place(m.width, bodyH, lipgloss.Left, lipgloss.Top, m.renderContent())
	body = m.flagToast.Render(body)
	body = m.noticeToast.Render(body)
	body = m.overlayStack.Render(body, m.width, bodyH)
	// inline toasts add rows; keep the status bar on screen
	body = lipgloss.NewStyle().MaxHeight(bodyH).Render(body)

	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderStatusBar())
}

func (m Model) renderContent() string {
	opts := m.flagToast.Controller().Options()

	flagState := "hidden"
	if m.flag.Get().IsVisible() {
		flagState = "visible"
	}
	noticeState := "none"
	if p := m.notice.Get().Payload(); p != nil {
		noticeState = p.ID()
	}
	hideAfter := "never"
	if opts.AutoHides() {
		hideAfter = opts.HideAfter.String()
	}

	k := m.styles.Key.Render
	lines := []string{
		m.styles.ContentTitle.Render("toastkit demo"),
		"flag binding:    " + flagState,
		"notice binding:  " + noticeState,
		"",
		m.styles.ContentMuted.Render(fmt.Sprintf("align %s · %s · %s · hide after %s",
			opts.Alignment, opts.Transition, opts.DisplayMode, hideAfter)),
		"",
		k("t") + "  show or hide the flag toast",
		k("n") + "  publish a notice from the background",
		k("d") + "  dismiss programmatically",
		k("esc") + "  dismiss like a tap",
	}
	return m.styles.Content.Render(strings.Join(lines, "\n"))
}

func (m Model) renderStatusBar() string {
	mode := types.ModeNormal
	if !m.overlayStack.IsEmpty() {
		mode = types.ModeHelp
	}

	sb := statusbar.New(mode, m.width, m.styles)
	if mode == types.ModeNormal {
		sb = sb.WithKeys(m.keys)
	}

	status := m.last.String()
	if m.pending > 0 {
		sb = sb.WithSpinner(m.spinner.View())
		status = fmt.Sprintf("publishing %d", m.pending)
	}
	return sb.WithStatus(status).Render()
}
