// Package dates normalizes the date representations that cross the API
// boundary and formats them for display.
package dates

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Display fallbacks used when a date is missing or could not be parsed.
const (
	UnknownDate      = "Unknown date"
	UnknownDateRange = "Unknown date range"
)

// KeyLayout is the layout of day keys (yyyy-MM-dd) used in URLs and maps.
const KeyLayout = "2006-01-02"

var (
	zoneMu sync.RWMutex
	zone   = time.Local
)

// Zone returns the location used to decide which calendar day an instant falls on.
func Zone() *time.Location {
	zoneMu.RLock()
	defer zoneMu.RUnlock()
	return zone
}

// SetZone changes the day-normalization location. A nil location resets it to time.Local.
func SetZone(loc *time.Location) {
	zoneMu.Lock()
	defer zoneMu.Unlock()
	if loc == nil {
		loc = time.Local
	}
	zone = loc
}

// LoadZone resolves a timezone name. An empty name or "Local" yields time.Local.
func LoadZone(name string) (*time.Location, error) {
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", name, err)
	}
	return loc, nil
}

// Day truncates t to the first instant of its calendar day in Zone().
func Day(t time.Time) time.Time {
	y, m, d := t.In(Zone()).Date()
	return Date(y, m, d)
}

// Date returns the first instant of the civil day y-m-d in Zone(). Out of
// range values are normalized the way time.Date does. That instant is
// midnight unless a DST change skips midnight, in which case the day starts
// at the transition.
func Date(y int, m time.Month, d int) time.Time {
	loc := Zone()
	// Noon always exists, so it pins down the normalized civil date.
	y, m, d = time.Date(y, m, d, 12, 0, 0, 0, loc).Date()

	start := time.Date(y, m, d, 0, 0, 0, 0, loc)
	if sy, sm, sd := start.Date(); sy != y || sm != m || sd != d {
		// Midnight fell into the gap and resolved onto the previous day.
		if _, end := start.ZoneBounds(); !end.IsZero() {
			start = end
		}
	}
	return start
}

// AddDays returns the start of the calendar day n days after t's day.
func AddDays(t time.Time, n int) time.Time {
	y, m, d := t.In(Zone()).Date()
	return Date(y, m, d+n)
}

// EndOfDay returns the last nanosecond of t's calendar day in Zone().
func EndOfDay(t time.Time) time.Time {
	return AddDays(t, 1).Add(-time.Nanosecond)
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return Day(a).Equal(Day(b))
}

// Key returns the yyyy-MM-dd key of t's calendar day.
func Key(t time.Time) string {
	return Day(t).Format(KeyLayout)
}

// ParseKey parses a yyyy-MM-dd key as the start of that day in Zone().
func ParseKey(key string) (time.Time, error) {
	t, err := time.Parse(KeyLayout, strings.TrimSpace(key))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want yyyy-mm-dd): %w", key, err)
	}
	return Date(t.Date()), nil
}

// FormatISO renders t as RFC 3339 with nanoseconds in UTC, the form the API expects.
func FormatISO(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// Layouts carrying their own offset. Go accepts a fractional second after the
// seconds field even when the layout omits it.
var zonedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05-07",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05Z0700",
	"2006-01-02 15:04:05-07",
}

// Layouts without an offset are read in Zone().
var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	KeyLayout,
}

// ParseFlexible parses strict ISO-8601/RFC 3339 strings as well as the
// Postgres "YYYY-MM-DD HH:MM:SS.sss-TZ" rendering.
func ParseFlexible(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	for _, layout := range localLayouts {
		if layout == KeyLayout {
			if t, err := ParseKey(s); err == nil {
				return t, nil
			}
			continue
		}
		if t, err := time.ParseInLocation(layout, s, Zone()); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date format: %q", s)
}

// Format renders t with a Go layout, or UnknownDate when t is the zero time.
func Format(t time.Time, layout string) string {
	if t.IsZero() {
		return UnknownDate
	}
	return t.In(Zone()).Format(layout)
}

// FormatShort renders "Jan 15, 2025".
func FormatShort(t time.Time) string {
	return Format(t, "Jan 2, 2006")
}

// FormatDateTime renders "Jan 15, 2025 3:45 PM".
func FormatDateTime(t time.Time) string {
	return Format(t, "Jan 2, 2006 3:04 PM")
}

// FormatRange renders a compact range, e.g. "Jan 15 - 20, 2025",
// "Jan 15 - Feb 2, 2025" or "Dec 30, 2024 - Jan 2, 2025".
func FormatRange(start, end time.Time) string {
	if start.IsZero() || end.IsZero() {
		return UnknownDateRange
	}
	start, end = start.In(Zone()), end.In(Zone())

	if start.Year() == end.Year() {
		if start.Month() == end.Month() {
			return fmt.Sprintf("%s - %s", start.Format("Jan 2"), end.Format("2, 2006"))
		}
		return fmt.Sprintf("%s - %s", start.Format("Jan 2"), end.Format("Jan 2, 2006"))
	}
	return fmt.Sprintf("%s - %s", start.Format("Jan 2, 2006"), end.Format("Jan 2, 2006"))
}
