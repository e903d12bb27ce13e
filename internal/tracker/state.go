package tracker

import (
	"fmt"
	"log"

	"github.com/fakeyudi/worktrack/internal/advisory"
	"github.com/fakeyudi/worktrack/internal/clock"
	"github.com/fakeyudi/worktrack/internal/identity"
)

// Screen is the top-level screen being shown.
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenTracker
)

// Advice is the advisory modal. Loading is true while the request is out.
type Advice struct {
	Seq      uint64
	Kind     advisory.Kind
	Title    string
	Text     string
	Loading  bool
	Copyable bool
}

// State is everything the UI renders. It is a value: Begin and Apply return
// a new State and never mutate the receiver's shared data.
type State struct {
	Identity   identity.Identity
	Screen     Screen
	View       View
	Message    string
	MessageID  int // bumped on every Message change, for timed clears
	LoginError string
	Advice     *Advice

	// DiscardStale drops snapshots whose dispatch sequence is older than the
	// one on screen. Off by default: the last response received wins.
	DiscardStale bool
	shownSeq     uint64
}

// NewState starts at the tracker when id is set, at the login prompt otherwise.
func NewState(id identity.Identity, discardStale bool) State {
	s := State{DiscardStale: discardStale, View: Pending()}
	if !id.IsZero() {
		s.Identity = id
		s.Screen = ScreenTracker
	}
	return s
}

// Notify replaces the message line.
func (s State) Notify(msg string) State {
	s.Message = msg
	s.MessageID++
	return s
}

// ClearMessage empties the message line if it is still the one tagged id.
func (s State) ClearMessage(id int) State {
	if s.MessageID != id {
		return s
	}
	s.Message = ""
	return s
}

// CloseAdvice dismisses the advisory modal.
func (s State) CloseAdvice() State {
	s.Advice = nil
	return s
}

// Begin records the immediate UI reaction to an intent, before any network
// answer arrives.
func (s State) Begin(in Intent) State {
	switch in := in.(type) {
	case Login:
		s.LoginError = ""
	case Post:
		s = s.Notify(fmt.Sprintf("Sending %s...", in.Event.Label()))
	case Logout:
		s = logout(s)
	case Advise:
		s.Advice = &Advice{Seq: in.Seq, Kind: in.Kind, Title: in.Kind.Title(), Loading: true}
	}
	return s
}

// Apply folds an outcome into the state.
func (s State) Apply(o Outcome) State {
	switch o := o.(type) {
	case LoginResult:
		if o.Err != nil {
			s.LoginError = loginMessage(o.Err)
			return s
		}
		s.Identity = o.Identity
		s.Screen = ScreenTracker
		s.LoginError = ""
		s.Message = ""
		s.View = Derive(o.Snapshot)
		s.shownSeq = o.Seq

	case StatusResult:
		if o.Username != s.Identity.Username || s.stale(o.Seq) {
			return s
		}
		if o.Err != nil {
			s.View = Unknown()
			return s.Notify(msgFetchFailed)
		}
		s.View = Derive(o.Snapshot)
		s.shownSeq = o.Seq

	case EventResult:
		if o.Username != s.Identity.Username {
			return s
		}
		if o.Err != nil {
			// Only the message line changes; the rendered actions stay
			// until the next successful fetch.
			return s.Notify(eventMessage(o.Err))
		}
		if s.stale(o.Seq) {
			log.Printf("tracker: dropping stale %s response (seq %d < %d)", o.Event, o.Seq, s.shownSeq)
			return s
		}
		s.View = Derive(o.Snapshot)
		s.shownSeq = o.Seq
		s = s.Notify(fmt.Sprintf("%s recorded successfully at %s.", o.Event.Label(), clock.Format(o.At)))

	case LogoutResult:
		if o.Err != nil {
			log.Printf("tracker: logout: %v", o.Err)
		}
		s = logout(s)

	case AdviceResult:
		if s.Advice == nil || s.Advice.Kind != o.Kind || s.Advice.Seq != o.Seq {
			return s
		}
		a := *s.Advice
		a.Loading = false
		if o.Err != nil {
			a.Text = adviceMessage(o.Err)
			a.Copyable = false
		} else {
			a.Text = o.Text
			a.Copyable = o.Text != ""
		}
		s.Advice = &a

	case IdentityChanged:
		switch {
		case o.Identity.IsZero():
			if !s.Identity.IsZero() {
				s = logout(s)
			}
		case o.Identity != s.Identity:
			s.Identity = o.Identity
			s.Screen = ScreenTracker
			s.View = Pending()
			s.LoginError = ""
			s.Message = ""
			s.shownSeq = 0
		}
	}
	return s
}

func (s State) stale(seq uint64) bool {
	return s.DiscardStale && seq < s.shownSeq
}

func logout(s State) State {
	s.Identity = identity.Identity{}
	s.Screen = ScreenLogin
	s.View = Pending()
	s.Message = ""
	s.LoginError = ""
	s.Advice = nil
	s.shownSeq = 0
	return s
}
