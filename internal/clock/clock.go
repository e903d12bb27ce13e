// Package clock formats the wall-clock line shown in the tracker.
package clock

import "time"

// Layout is the wall-clock display format.
const Layout = "15:04:05"

// Clock returns the current time. Tests substitute a fixed clock.
type Clock func() time.Time

// System is the real wall clock.
var System Clock = time.Now

// Display formats the clock's current local time.
func (c Clock) Display() string {
	return Format(c())
}

// Format renders t in local time as HH:MM:SS.
func Format(t time.Time) string {
	return t.Local().Format(Layout)
}
