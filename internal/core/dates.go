// Package core holds the client record domain: the entity itself, form
// validation and the calendar-day date handling.
//
// This file contains the date normalization rules. A date picked in a form is
// a calendar day with no time-of-day; what gets stored is the instant of
// local midnight of that day. Browser date inputs parse "YYYY-MM-DD" as UTC
// midnight, so the original tool compensated by adding the timezone offset in
// minutes back onto the parsed instant. NormalizeDay reproduces that exact
// arithmetic so existing exported files keep their meaning.
package core

import (
	"time"
)

const dayLayout = "2006-01-02"

// NormalizeDay converts a calendar-day string (YYYY-MM-DD) into the stored
// instant: local midnight of that day in loc. The string is parsed as UTC
// midnight and then shifted by the zone offset at that instant
// (stored = parsed + offset_minutes_west * 60000 ms).
func NormalizeDay(s string, loc *time.Location) (time.Time, error) {
	utc, err := time.ParseInLocation(dayLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	_, offset := utc.In(loc).Zone() // seconds east of UTC
	return utc.Add(-time.Duration(offset) * time.Second), nil
}

// FormatDay renders a stored instant back to its YYYY-MM-DD calendar day in
// loc. This is the reverse path used to pre-populate the edit form; no
// normalization is applied here, only formatting.
func FormatDay(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(dayLayout)
}

// DueToday reports whether t falls on the same calendar day as now in loc.
func DueToday(t, now time.Time, loc *time.Location) bool {
	ty, tm, td := t.In(loc).Date()
	ny, nm, nd := now.In(loc).Date()
	return ty == ny && tm == nm && td == nd
}
