// Package tui provides the interactive Bubble Tea tracker: a login prompt,
// the status screen with its action keys, and the advisory modal.
package tui

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/aymanbagabas/go-osc52/v2"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fakeyudi/worktrack/internal/advisory"
	"github.com/fakeyudi/worktrack/internal/clock"
	"github.com/fakeyudi/worktrack/internal/identity"
	"github.com/fakeyudi/worktrack/internal/tracker"
)

const (
	eventMessageTTL = 3 * time.Second
	copyMessageTTL  = 2 * time.Second
)

// ── Messages ─────────────────────────────────────────────────────────────────

type clockTickMsg time.Time

type refreshTickMsg struct{}

type clearMessageMsg struct{ id int }

type copyResultMsg struct{ err error }

type identityMsg identity.Identity

// ── Model ────────────────────────────────────────────────────────────────────

// Options configures a Model.
type Options struct {
	Dispatcher      *tracker.Dispatcher
	Identity        identity.Identity
	DiscardStale    bool
	RequestTimeout  time.Duration
	RefreshInterval time.Duration // <= 0 disables polling
	Clock           clock.Clock
	// Identities delivers logins/logouts made by other processes. May be nil.
	Identities <-chan identity.Identity
}

// Model is the root Bubble Tea model.
type Model struct {
	opts    Options
	state   tracker.State
	input   textinput.Model
	spinner spinner.Model
	modal   viewport.Model
	help    help.Model
	now     time.Time
	width   int
	height  int
}

// New creates the tracker model. It opens on the tracker when opts.Identity
// is set and on the login prompt otherwise.
func New(opts Options) Model {
	if opts.Clock == nil {
		opts.Clock = clock.System
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 10 * time.Second
	}

	in := textinput.New()
	in.Placeholder = "your name"
	in.CharLimit = 64
	in.Width = 32
	in.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	return Model{
		opts:    opts,
		state:   tracker.NewState(opts.Identity, opts.DiscardStale),
		input:   in,
		spinner: sp,
		modal:   viewport.New(56, 10),
		help:    help.New(),
		now:     opts.Clock(),
		width:   80,
		height:  24,
	}
}

// State exposes the tracker state for inspection.
func (m Model) State() tracker.State { return m.state }

// ── Bubble Tea interface ─────────────────────────────────────────────────────

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{clockTick(), textinput.Blink}
	if m.state.Screen == tracker.ScreenTracker {
		cmds = append(cmds, m.dispatch(tracker.Refresh{}))
	}
	if m.opts.RefreshInterval > 0 {
		cmds = append(cmds, refreshTick(m.opts.RefreshInterval))
	}
	if m.opts.Identities != nil {
		cmds = append(cmds, waitForIdentity(m.opts.Identities))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.modal.Width = min(msg.Width-8, 72)
		m.modal.Height = max(msg.Height/2, 5)
		return m, nil

	case clockTickMsg:
		m.now = time.Time(msg)
		return m, clockTick()

	case refreshTickMsg:
		cmds := []tea.Cmd{refreshTick(m.opts.RefreshInterval)}
		if m.state.Screen == tracker.ScreenTracker {
			cmds = append(cmds, m.dispatch(tracker.Refresh{}))
		}
		return m, tea.Batch(cmds...)

	case identityMsg:
		m.state = m.state.Apply(tracker.IdentityChanged{Identity: identity.Identity(msg)})
		cmds := []tea.Cmd{waitForIdentity(m.opts.Identities)}
		if m.state.Screen == tracker.ScreenTracker && !m.state.View.Known {
			cmds = append(cmds, m.dispatch(tracker.Refresh{}))
		}
		if m.state.Screen == tracker.ScreenLogin {
			m.input.Reset()
			m.input.Focus()
		}
		return m, tea.Batch(cmds...)

	case tracker.Outcome:
		return m.applyOutcome(msg)

	case clearMessageMsg:
		m.state = m.state.ClearMessage(msg.id)
		return m, nil

	case copyResultMsg:
		text := "Copied to clipboard!"
		if msg.err != nil {
			text = "Failed to copy."
		}
		m.state = m.state.Notify(text)
		return m, clearMessageAfter(m.state.MessageID, copyMessageTTL)

	case spinner.TickMsg:
		if m.state.Advice == nil || !m.state.Advice.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) applyOutcome(o tracker.Outcome) (tea.Model, tea.Cmd) {
	m.state = m.state.Apply(o)
	switch o := o.(type) {
	case tracker.EventResult:
		if o.Err == nil {
			return m, clearMessageAfter(m.state.MessageID, eventMessageTTL)
		}
	case tracker.LoginResult:
		if o.Err == nil {
			m.input.Reset()
		}
	case tracker.AdviceResult:
		if m.state.Advice != nil {
			m.modal.SetContent(lipgloss.NewStyle().Width(m.modal.Width).Render(m.state.Advice.Text))
			m.modal.GotoTop()
		}
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.state.Advice != nil {
		keys := modalKeys(m.state)
		switch {
		case matches(msg, keys.Close):
			m.state = m.state.CloseAdvice()
			return m, nil
		case matches(msg, keys.Copy):
			return m, copyToClipboard(m.state.Advice.Text)
		}
		var cmd tea.Cmd
		m.modal, cmd = m.modal.Update(msg)
		return m, cmd
	}

	if m.state.Screen == tracker.ScreenLogin {
		keys := loginKeys()
		switch {
		case matches(msg, keys.Submit):
			in := tracker.Login{Username: m.input.Value()}
			m.state = m.state.Begin(in)
			return m, m.dispatch(in)
		case matches(msg, keys.Quit):
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	keys := trackerKeys(m.state)
	for _, b := range keys.actions() {
		if matches(msg, b.binding) {
			ev, _ := b.action.Event()
			in := tracker.Post{Event: ev}
			m.state = m.state.Begin(in)
			return m, m.dispatch(in)
		}
	}
	switch {
	case matches(msg, keys.Quote):
		return m.advise(advisory.Quote)
	case matches(msg, keys.Plan):
		return m.advise(advisory.PlanHour)
	case matches(msg, keys.Refresh):
		return m, m.dispatch(tracker.Refresh{})
	case matches(msg, keys.Logout):
		m.state = m.state.Begin(tracker.Logout{})
		m.input.Reset()
		m.input.Focus()
		return m, m.dispatch(tracker.Logout{})
	case matches(msg, keys.Quit):
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) advise(kind advisory.Kind) (tea.Model, tea.Cmd) {
	in := tracker.Advise{Kind: kind, Seq: m.opts.Dispatcher.Ticket()}
	m.state = m.state.Begin(in)
	m.modal.SetContent("")
	return m, tea.Batch(m.dispatch(in), m.spinner.Tick)
}

// dispatch runs an intent off the update loop. The identity is captured now
// so a response always reports which user it belongs to.
func (m Model) dispatch(in tracker.Intent) tea.Cmd {
	d, id, timeout := m.opts.Dispatcher, m.state.Identity, m.opts.RequestTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return d.Dispatch(ctx, id, in)
	}
}

func clockTick() tea.Cmd {
	return tea.Every(time.Second, func(t time.Time) tea.Msg { return clockTickMsg(t) })
}

func refreshTick(every time.Duration) tea.Cmd {
	return tea.Tick(every, func(time.Time) tea.Msg { return refreshTickMsg{} })
}

func clearMessageAfter(id int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg { return clearMessageMsg{id: id} })
}

func waitForIdentity(ch <-chan identity.Identity) tea.Cmd {
	return func() tea.Msg {
		id, ok := <-ch
		if !ok {
			return nil
		}
		return identityMsg(id)
	}
}

// copyToClipboard writes an OSC 52 sequence, which most terminals turn into
// a clipboard write, including over SSH.
func copyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		_, err := osc52.New(text).WriteTo(os.Stderr)
		return copyResultMsg{err: err}
	}
}

// ── View ─────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	var body string
	if m.state.Screen == tracker.ScreenLogin {
		body = m.loginView()
	} else {
		body = m.trackerView()
	}
	if m.state.Advice != nil {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.modalView())
	}
	return body
}

func (m Model) titleBar(who string) string {
	left := "  worktrack"
	if who != "" {
		left += "  " + who
	}
	right := clock.Format(m.now) + "  "
	pad := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if pad < 1 {
		pad = 1
	}
	return titleStyle.Width(m.width).Render(left + strings.Repeat(" ", pad) + right)
}

func (m Model) loginView() string {
	var sb strings.Builder
	sb.WriteString(m.titleBar(""))
	sb.WriteString("\n")
	sb.WriteString(heading("Log in"))
	sb.WriteString(labelStyle.Render("  Username:") + "  " + m.input.View() + "\n")
	if m.state.LoginError != "" {
		sb.WriteString("\n  " + errorStyle.Render(m.state.LoginError) + "\n")
	}
	sb.WriteString("\n")
	sb.WriteString(statusBarStyle.Width(m.width).Render(m.help.ShortHelpView(loginKeys().bindings())))
	return sb.String()
}

func (m Model) trackerView() string {
	v := m.state.View
	var sb strings.Builder
	sb.WriteString(m.titleBar(m.state.Identity.Username))
	sb.WriteString("\n")
	sb.WriteString(heading("Today"))

	row := func(label, value string) {
		sb.WriteString(labelStyle.Render(label) + "  " + value + "\n")
	}
	statusLabel := statusStyle(v).Render(v.Label)
	row(rowLabel("Status:"), statusLabel)
	row(rowLabel("Worked:"), workedStyle.Render(v.Worked))
	row(rowLabel("Time:"), timeStyle.Render(clock.Format(m.now)))
	sb.WriteString("\n")

	if buttons := actionButtons(v); buttons != "" {
		sb.WriteString("  " + buttons + "\n\n")
	}
	if m.state.Message != "" {
		style := messageStyle
		if strings.HasPrefix(m.state.Message, "Error") {
			style = errorStyle
		}
		sb.WriteString("  " + style.Render(m.state.Message) + "\n\n")
	}
	sb.WriteString(statusBarStyle.Width(m.width).Render(m.help.ShortHelpView(trackerKeys(m.state).bindings())))
	return sb.String()
}

func (m Model) modalView() string {
	a := m.state.Advice
	var sb strings.Builder
	sb.WriteString(modalTitleStyle.Render(a.Title))
	sb.WriteString("\n\n")
	if a.Loading {
		sb.WriteString(m.spinner.View() + " " + dimStyle.Render("Thinking…"))
	} else {
		sb.WriteString(m.modal.View())
	}
	sb.WriteString("\n\n")
	sb.WriteString(hintStyle.Render(m.help.ShortHelpView(modalKeys(m.state).bindings())))
	return modalStyle.Render(sb.String())
}

// actionButtons renders the visible session actions as "[key] Label" chips.
func actionButtons(v tracker.View) string {
	var parts []string
	for _, a := range v.Actions {
		meta, ok := actionMeta[a]
		if !ok {
			continue
		}
		parts = append(parts, buttonStyle.Render("["+meta.key+"] "+meta.label))
	}
	return strings.Join(parts, " ")
}

func heading(s string) string {
	return "\n" + sectionHeader.Render("  "+s) + "\n\n"
}

func rowLabel(s string) string {
	return "  " + s + strings.Repeat(" ", max(10-len(s), 0))
}

// Run starts the TUI and blocks until the user quits.
func Run(opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
