package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fakeyudi/worktrack/internal/tracker"
)

// actionMeta is the key and button label for each session action.
var actionMeta = map[tracker.Action]struct{ key, label string }{
	tracker.ActionStart:    {"s", "Start Work"},
	tracker.ActionPause:    {"p", "Pause"},
	tracker.ActionResume:   {"r", "Resume"},
	tracker.ActionEnd:      {"e", "End Day"},
	tracker.ActionPlanHour: {"h", "Plan My Hour"},
}

type actionBinding struct {
	action  tracker.Action
	binding key.Binding
}

type trackerKeyMap struct {
	Start, Pause, Resume, End key.Binding
	Plan, Quote, Refresh      key.Binding
	Logout, Quit              key.Binding
}

// trackerKeys builds the tracker bindings for s. A binding for an action the
// current view hides is disabled, so it neither matches nor shows in help.
func trackerKeys(s tracker.State) trackerKeyMap {
	v := s.View
	actionKey := func(a tracker.Action) key.Binding {
		meta := actionMeta[a]
		b := key.NewBinding(key.WithKeys(meta.key), key.WithHelp(meta.key, meta.label))
		b.SetEnabled(v.Has(a))
		return b
	}
	return trackerKeyMap{
		Start:   actionKey(tracker.ActionStart),
		Pause:   actionKey(tracker.ActionPause),
		Resume:  actionKey(tracker.ActionResume),
		End:     actionKey(tracker.ActionEnd),
		Plan:    actionKey(tracker.ActionPlanHour),
		Quote:   key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "quote")),
		Refresh: key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "refresh")),
		Logout:  key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "logout")),
		Quit:    key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q", "quit")),
	}
}

// actions returns the session-event bindings in display order.
func (k trackerKeyMap) actions() []actionBinding {
	return []actionBinding{
		{tracker.ActionStart, k.Start},
		{tracker.ActionPause, k.Pause},
		{tracker.ActionResume, k.Resume},
		{tracker.ActionEnd, k.End},
	}
}

func (k trackerKeyMap) bindings() []key.Binding {
	return []key.Binding{k.Start, k.Pause, k.Resume, k.End, k.Plan, k.Quote, k.Refresh, k.Logout, k.Quit}
}

type loginKeyMap struct {
	Submit, Quit key.Binding
}

func loginKeys() loginKeyMap {
	return loginKeyMap{
		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "log in")),
		Quit:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "quit")),
	}
}

func (k loginKeyMap) bindings() []key.Binding {
	return []key.Binding{k.Submit, k.Quit}
}

type modalKeyMap struct {
	Copy, Close, Scroll key.Binding
}

func modalKeys(s tracker.State) modalKeyMap {
	copyKey := key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy"))
	copyKey.SetEnabled(s.Advice != nil && s.Advice.Copyable)
	return modalKeyMap{
		Copy:   copyKey,
		Close:  key.NewBinding(key.WithKeys("esc", "enter", "q"), key.WithHelp("esc", "close")),
		Scroll: key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "scroll")),
	}
}

func (k modalKeyMap) bindings() []key.Binding {
	return []key.Binding{k.Copy, k.Scroll, k.Close}
}

func matches(msg tea.KeyMsg, b key.Binding) bool {
	return key.Matches(msg, b)
}
