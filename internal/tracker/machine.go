// Package tracker holds the client-side session state machine: a pure
// mapping from the last snapshot to the actions the user may take, the
// intents those actions produce, and the reducer that folds outcomes back
// into displayed state.
package tracker

import (
	"strings"

	"github.com/fakeyudi/worktrack/internal/session"
)

// Action is a user-triggerable affordance.
type Action string

const (
	ActionStart    Action = "start"
	ActionPause    Action = "pause"
	ActionResume   Action = "resume"
	ActionEnd      Action = "end"
	ActionPlanHour Action = "plan"
)

// Event maps a session action to the event it posts. ActionPlanHour has none.
func (a Action) Event() (session.EventType, bool) {
	switch a {
	case ActionStart:
		return session.EventStart, true
	case ActionPause:
		return session.EventPause, true
	case ActionResume:
		return session.EventResume, true
	case ActionEnd:
		return session.EventEnd, true
	}
	return "", false
}

// ActionFor is the inverse of Event.
func ActionFor(ev session.EventType) Action {
	return Action(ev)
}

const (
	endedLabel   = "Workday Ended. Ready to start again?"
	errorLabel   = "Error fetching status"
	pendingLabel = "Loading…"
)

var actionTable = map[session.Status][]Action{
	session.StatusNotStarted: {ActionStart},
	session.StatusWorking:    {ActionPause, ActionEnd, ActionPlanHour},
	session.StatusPaused:     {ActionResume, ActionEnd},
	session.StatusEnded:      {ActionStart},
}

// View is what the tracker screen shows for one snapshot. Known is false
// for the error and loading states, which carry no status and no actions.
type View struct {
	Known   bool
	Status  session.Status
	Label   string
	Worked  string
	Actions []Action
}

// Has reports whether a is currently visible.
func (v View) Has(a Action) bool {
	for _, x := range v.Actions {
		if x == a {
			return true
		}
	}
	return false
}

// Derive maps a snapshot to its view. It never looks at any earlier state.
func Derive(s session.Snapshot) View {
	actions, ok := actionTable[s.Status]
	if !ok {
		return Unknown()
	}
	label := strings.ReplaceAll(string(s.Status), "_", " ")
	if s.Status == session.StatusEnded {
		label = endedLabel
	}
	return View{
		Known:   true,
		Status:  s.Status,
		Label:   label,
		Worked:  session.FormatWorked(s.WorkedTodaySeconds),
		Actions: append([]Action(nil), actions...),
	}
}

// Unknown is the view after a failed status fetch: every action hidden.
func Unknown() View {
	return View{Label: errorLabel, Worked: session.FormatWorked(0)}
}

// Pending is the view while the first fetch for an identity is in flight.
func Pending() View {
	return View{Label: pendingLabel, Worked: session.FormatWorked(0)}
}
