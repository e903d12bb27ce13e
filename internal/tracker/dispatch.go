package tracker

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/fakeyudi/worktrack/internal/advisory"
	"github.com/fakeyudi/worktrack/internal/clock"
	"github.com/fakeyudi/worktrack/internal/identity"
	"github.com/fakeyudi/worktrack/internal/session"
)

// Backend is the remote source of truth for session status.
type Backend interface {
	Status(ctx context.Context, username string) (session.Snapshot, error)
	PostEvent(ctx context.Context, username string, ev session.EventType) (session.Snapshot, error)
}

// Advisor produces generative text for a prompt.
type Advisor interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Intent is a user action waiting to be handled.
type Intent interface{ isIntent() }

// Login asks to log in as Username.
type Login struct{ Username string }

// Refresh re-fetches the current identity's status.
type Refresh struct{}

// Post sends a session event.
type Post struct{ Event session.EventType }

// Logout clears the stored identity.
type Logout struct{}

// Advise requests advisory text. Seq comes from Dispatcher.Ticket and is
// echoed in the result so a late answer cannot fill a newer modal.
type Advise struct {
	Kind advisory.Kind
	Seq  uint64
}

func (Login) isIntent()   {}
func (Refresh) isIntent() {}
func (Post) isIntent()    {}
func (Logout) isIntent()  {}
func (Advise) isIntent()  {}

// Outcome is the result of handling an intent. Outcomes are plain values so
// they can travel as Bubble Tea messages.
type Outcome interface{ isOutcome() }

// LoginResult carries the first snapshot for a new identity.
type LoginResult struct {
	Seq      uint64
	Identity identity.Identity
	Snapshot session.Snapshot
	Err      error
}

// StatusResult is the answer to a Refresh.
type StatusResult struct {
	Seq      uint64
	Username string
	Snapshot session.Snapshot
	Err      error
}

// EventResult is the answer to a Post.
type EventResult struct {
	Seq      uint64
	Username string
	Event    session.EventType
	Snapshot session.Snapshot
	At       time.Time
	Err      error
}

// LogoutResult reports whether the identity could be removed from disk.
type LogoutResult struct{ Err error }

// AdviceResult carries advisory text.
type AdviceResult struct {
	Seq  uint64
	Kind advisory.Kind
	Text string
	Err  error
}

// IdentityChanged is emitted when another process logs in or out.
type IdentityChanged struct{ Identity identity.Identity }

func (LoginResult) isOutcome()     {}
func (StatusResult) isOutcome()    {}
func (EventResult) isOutcome()     {}
func (LogoutResult) isOutcome()    {}
func (AdviceResult) isOutcome()    {}
func (IdentityChanged) isOutcome() {}

// Dispatcher runs intents against the backend, the advisory endpoint and the
// identity store. It is safe for concurrent use; each call is independent.
type Dispatcher struct {
	backend    Backend
	advisor    Advisor
	identities identity.Store
	clock      clock.Clock
	seq        atomic.Uint64
}

// NewDispatcher wires a Dispatcher. A nil clock uses clock.System.
func NewDispatcher(backend Backend, advisor Advisor, identities identity.Store, c clock.Clock) *Dispatcher {
	if c == nil {
		c = clock.System
	}
	return &Dispatcher{backend: backend, advisor: advisor, identities: identities, clock: c}
}

// Ticket reserves the next sequence number for an intent that is tagged
// before it is dispatched.
func (d *Dispatcher) Ticket() uint64 {
	return d.seq.Add(1)
}

// Dispatch handles in on behalf of id and returns its outcome. It returns
// nil for intents that need an identity when id is the zero value.
func (d *Dispatcher) Dispatch(ctx context.Context, id identity.Identity, in Intent) Outcome {
	switch in := in.(type) {
	case Login:
		return d.login(ctx, in.Username)
	case Refresh:
		if id.IsZero() {
			return nil
		}
		seq := d.seq.Add(1)
		snap, err := d.backend.Status(ctx, id.Username)
		if err != nil {
			log.Printf("tracker: status for %s: %v", id.Username, err)
		}
		return StatusResult{Seq: seq, Username: id.Username, Snapshot: snap, Err: err}
	case Post:
		if id.IsZero() {
			return nil
		}
		seq := d.seq.Add(1)
		snap, err := d.backend.PostEvent(ctx, id.Username, in.Event)
		if err != nil {
			log.Printf("tracker: %s for %s: %v", in.Event, id.Username, err)
		}
		return EventResult{Seq: seq, Username: id.Username, Event: in.Event, Snapshot: snap, At: d.clock(), Err: err}
	case Logout:
		return LogoutResult{Err: d.identities.Clear()}
	case Advise:
		if d.advisor == nil {
			return AdviceResult{Seq: in.Seq, Kind: in.Kind, Err: fmt.Errorf("advisory endpoint not configured")}
		}
		text, err := d.advisor.Generate(ctx, in.Kind.Prompt(id.Username))
		return AdviceResult{Seq: in.Seq, Kind: in.Kind, Text: text, Err: err}
	}
	return nil
}

func (d *Dispatcher) login(ctx context.Context, username string) Outcome {
	id, err := identity.New(username)
	if err != nil {
		return LoginResult{Err: err}
	}
	seq := d.seq.Add(1)
	snap, err := d.backend.Status(ctx, id.Username)
	if err != nil {
		log.Printf("tracker: login %s: %v", id.Username, err)
		return LoginResult{Seq: seq, Err: err}
	}
	if err := d.identities.Save(id); err != nil {
		// The login still stands for this run; only persistence is lost.
		log.Printf("tracker: saving identity: %v", err)
	}
	return LoginResult{Seq: seq, Identity: id, Snapshot: snap}
}
