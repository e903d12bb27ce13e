package tracker

import (
	"testing"
	"time"

	"pgregory.net/rapid"

	"github.com/fakeyudi/worktrack/internal/identity"
	"github.com/fakeyudi/worktrack/internal/session"
)

func eventResult(seq uint64, st session.Status) EventResult {
	return EventResult{
		Seq:      seq,
		Username: "ana",
		Event:    session.EventStart,
		Snapshot: session.Snapshot{Status: st},
		At:       time.Now(),
	}
}

// Two posts whose responses arrive out of order: the one received last wins.
func TestLastReceivedWins(t *testing.T) {
	st := NewState(identity.Identity{Username: "ana"}, false)
	first := eventResult(1, session.StatusWorking)
	second := eventResult(2, session.StatusPaused)

	st = st.Apply(second).Apply(first)
	if st.View.Status != session.StatusWorking {
		t.Errorf("Status = %s, want WORKING (first response, received last)", st.View.Status)
	}
}

func TestDiscardStaleKeepsNewest(t *testing.T) {
	st := NewState(identity.Identity{Username: "ana"}, true)
	st = st.Apply(eventResult(2, session.StatusPaused)).Apply(eventResult(1, session.StatusWorking))
	if st.View.Status != session.StatusPaused {
		t.Errorf("Status = %s, want PAUSED", st.View.Status)
	}
}

// Feature: worktrack, Property: displayed view follows received order
func TestDisplayedViewFollowsReceiveOrder(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 10).Draw(t, "n")
		results := make([]EventResult, n)
		for i := range results {
			results[i] = eventResult(uint64(i+1), rapid.SampledFrom(session.Statuses).Draw(t, "status"))
		}
		order := rapid.Permutation(results).Draw(t, "order")

		st := NewState(identity.Identity{Username: "ana"}, false)
		for _, r := range order {
			st = st.Apply(r)
		}
		if want := Derive(order[len(order)-1].Snapshot); st.View.Status != want.Status {
			t.Fatalf("Status = %s, want %s", st.View.Status, want.Status)
		}

		guarded := NewState(identity.Identity{Username: "ana"}, true)
		var newest EventResult
		for _, r := range order {
			guarded = guarded.Apply(r)
			if r.Seq > newest.Seq {
				newest = r
			}
		}
		if guarded.View.Status != newest.Snapshot.Status {
			t.Fatalf("guarded Status = %s, want %s", guarded.View.Status, newest.Snapshot.Status)
		}
	})
}

func TestResultsForOtherUserIgnored(t *testing.T) {
	st := NewState(identity.Identity{Username: "ana"}, false)
	st = st.Apply(StatusResult{Seq: 1, Username: "bo", Snapshot: session.Snapshot{Status: session.StatusWorking}})
	if st.View.Known {
		t.Errorf("applied result for another user: %+v", st.View)
	}
}

func TestClearMessageOnlyClearsMatchingID(t *testing.T) {
	st := NewState(identity.Identity{Username: "ana"}, false)
	st = st.Apply(eventResult(1, session.StatusWorking))
	first := st.MessageID
	st = st.Begin(Post{Event: session.EventPause})

	if got := st.ClearMessage(first); got.Message == "" {
		t.Error("stale clear removed newer message")
	}
	if got := st.ClearMessage(st.MessageID); got.Message != "" {
		t.Errorf("Message = %q after matching clear", got.Message)
	}
}

func TestIdentityChanged(t *testing.T) {
	st := NewState(identity.Identity{Username: "ana"}, false)
	st = st.Apply(IdentityChanged{})
	if st.Screen != ScreenLogin || !st.Identity.IsZero() {
		t.Errorf("external logout not applied: %+v", st)
	}
	st = st.Apply(IdentityChanged{Identity: identity.Identity{Username: "bo"}})
	if st.Screen != ScreenTracker || st.Identity.Username != "bo" || st.View.Known {
		t.Errorf("external login not applied: %+v", st)
	}
}
