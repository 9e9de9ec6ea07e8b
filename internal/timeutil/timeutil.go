// Package timeutil holds the calendar helpers shared by the session and streak
// engines. Every day comparison is made in one reference location passed in by
// the caller; there is no per-user timezone.
package timeutil

import (
	"fmt"
	"strings"
	"time"
)

// naive date-time layouts accepted from clients, most specific first
var localLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// LocalToUTC reads the wall-clock components of a local date-time string and
// returns the instant with those same components in UTC. The components are
// copied, not shifted by any offset: "2024-05-01T09:30" becomes 09:30Z even if
// the string carried "+08:00". Stored timestamps depend on this.
func LocalToUTC(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date-time")
	}
	for _, layout := range localLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		return time.Date(t.Year(), t.Month(), t.Day(),
			t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC), nil
	}
	return time.Time{}, fmt.Errorf("invalid date-time %q", s)
}

// LoadLocation resolves the reference zone name from config. "" and "Local"
// mean the server's zone.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", name, err)
	}
	return loc, nil
}

// StartOfDay returns midnight of t's calendar day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// IsSameDay reports whether a and b fall on the same calendar day in loc.
func IsSameDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

// IsYesterday reports whether a falls on the calendar day before ref in loc.
func IsYesterday(a, ref time.Time, loc *time.Location) bool {
	y, m, d := ref.In(loc).Date()
	prev := time.Date(y, m, d-1, 12, 0, 0, 0, loc)
	return IsSameDay(a, prev, loc)
}
