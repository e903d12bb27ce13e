package tracker

import (
	"reflect"
	"testing"

	"pgregory.net/rapid"

	"github.com/fakeyudi/worktrack/internal/session"
)

func TestDeriveActionTable(t *testing.T) {
	cases := []struct {
		status session.Status
		want   []Action
		label  string
	}{
		{session.StatusNotStarted, []Action{ActionStart}, "NOT STARTED TODAY"},
		{session.StatusWorking, []Action{ActionPause, ActionEnd, ActionPlanHour}, "WORKING"},
		{session.StatusPaused, []Action{ActionResume, ActionEnd}, "PAUSED"},
		{session.StatusEnded, []Action{ActionStart}, "Workday Ended. Ready to start again?"},
	}
	for _, tc := range cases {
		v := Derive(session.Snapshot{Status: tc.status})
		if !v.Known {
			t.Errorf("%s: Known = false", tc.status)
		}
		if !reflect.DeepEqual(v.Actions, tc.want) {
			t.Errorf("%s: actions = %v, want %v", tc.status, v.Actions, tc.want)
		}
		if v.Label != tc.label {
			t.Errorf("%s: label = %q, want %q", tc.status, v.Label, tc.label)
		}
	}
}

func TestDeriveWorkingHidesStartAndResume(t *testing.T) {
	v := Derive(session.Snapshot{Status: session.StatusWorking})
	for _, a := range []Action{ActionPause, ActionEnd} {
		if !v.Has(a) {
			t.Errorf("WORKING should show %s", a)
		}
	}
	for _, a := range []Action{ActionStart, ActionResume} {
		if v.Has(a) {
			t.Errorf("WORKING should hide %s", a)
		}
	}
}

func TestDeriveWorkedTime(t *testing.T) {
	v := Derive(session.Snapshot{Status: session.StatusNotStarted, WorkedTodaySeconds: 5425})
	if v.Worked != "01:30:25" {
		t.Errorf("Worked = %q, want 01:30:25", v.Worked)
	}
}

func TestUnknownHidesEverything(t *testing.T) {
	v := Unknown()
	if v.Known || len(v.Actions) != 0 {
		t.Errorf("Unknown() = %+v, want no actions", v)
	}
	for _, st := range session.Statuses {
		if v.Label == string(st) || v.Label == Derive(session.Snapshot{Status: st}).Label {
			t.Errorf("error label %q looks like a status label", v.Label)
		}
	}
	if got := Derive(session.Snapshot{Status: "BOGUS"}); got.Known || len(got.Actions) != 0 {
		t.Errorf("Derive(BOGUS) = %+v, want unknown view", got)
	}
}

// Feature: worktrack, Property: actions are a pure function of status
func TestDeriveDependsOnlyOnStatus(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		st := rapid.SampledFrom(session.Statuses).Draw(t, "status")
		a := Derive(session.Snapshot{
			Status:             st,
			WorkedTodaySeconds: rapid.Int64Range(0, 1_000_000).Draw(t, "worked_a"),
			LastEventType:      rapid.StringN(0, 10, -1).Draw(t, "last_a"),
		})
		b := Derive(session.Snapshot{
			Status:             st,
			WorkedTodaySeconds: rapid.Int64Range(0, 1_000_000).Draw(t, "worked_b"),
			Day:                rapid.StringN(0, 10, -1).Draw(t, "day_b"),
		})
		if !reflect.DeepEqual(a.Actions, b.Actions) || a.Label != b.Label {
			t.Fatalf("views differ for same status %s: %+v vs %+v", st, a, b)
		}
	})
}

func TestActionEventMapping(t *testing.T) {
	for _, ev := range session.EventTypes {
		got, ok := ActionFor(ev).Event()
		if !ok || got != ev {
			t.Errorf("ActionFor(%s).Event() = %s, %v", ev, got, ok)
		}
	}
	if _, ok := ActionPlanHour.Event(); ok {
		t.Error("plan action should not map to an event")
	}
}
