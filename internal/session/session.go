// Package session models the backend's view of a user's work day: the
// status value, the snapshot returned on every fetch or event, and the
// events that move a session between states.
package session

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Status is the backend's work-session state for today.
type Status string

const (
	StatusNotStarted Status = "NOT_STARTED_TODAY"
	StatusWorking    Status = "WORKING"
	StatusPaused     Status = "PAUSED"
	StatusEnded      Status = "ENDED"
)

// Statuses lists every known status in display order.
var Statuses = []Status{StatusNotStarted, StatusWorking, StatusPaused, StatusEnded}

// ParseStatus returns the Status named by s or an error for unknown values.
func ParseStatus(s string) (Status, error) {
	for _, st := range Statuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown session status %q", s)
}

// UnmarshalJSON rejects values outside the known set so a snapshot with a
// garbled status never reaches the state machine.
func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	st, err := ParseStatus(raw)
	if err != nil {
		return err
	}
	*s = st
	return nil
}

// Snapshot is a point-in-time copy of the session as reported by the backend.
// A newer snapshot replaces an older one entirely.
type Snapshot struct {
	Status             Status `json:"status"`
	WorkedTodaySeconds int64  `json:"worked_today_seconds"`
	LastEventType      string `json:"last_event_type,omitempty"`
	Username           string `json:"username,omitempty"`
	Day                string `json:"day,omitempty"` // YYYY-MM-DD, backend UTC day
}

// EventType is a state-changing event sent to the backend.
type EventType string

const (
	EventStart  EventType = "start"
	EventPause  EventType = "pause"
	EventResume EventType = "resume"
	EventEnd    EventType = "end"
)

// EventTypes lists every event in display order.
var EventTypes = []EventType{EventStart, EventPause, EventResume, EventEnd}

// ParseEventType accepts an event name in any letter case.
func ParseEventType(s string) (EventType, error) {
	lower := EventType(strings.ToLower(strings.TrimSpace(s)))
	for _, e := range EventTypes {
		if e == lower {
			return e, nil
		}
	}
	return "", fmt.Errorf("unknown event type %q (want start, pause, resume or end)", s)
}

// Wire returns the event name as sent to the backend. upper selects the
// upper-case form (START, PAUSE, ...).
func (e EventType) Wire(upper bool) string {
	if upper {
		return strings.ToUpper(string(e))
	}
	return string(e)
}

// Label returns the upper-case form used in user-facing messages.
func (e EventType) Label() string {
	return strings.ToUpper(string(e))
}

// FormatWorked renders a number of seconds as HH:MM:SS. Hours are not
// wrapped at 24. Negative input renders as 00:00:00.
func FormatWorked(totalSeconds int64) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}
