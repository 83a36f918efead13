// Package calendar associates transits with calendar days and derives what a
// calendar cell or day view needs to render. Everything here is a pure
// function of already-fetched data.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/transit-journal/internal/dates"
)

// Granularity selects how many days a Window covers.
type Granularity int

const (
	// Week covers Monday through Sunday.
	Week Granularity = iota
	// Month covers every day of the calendar month.
	Month
)

// ParseGranularity accepts "week" or "month".
func ParseGranularity(s string) (Granularity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "week", "":
		return Week, nil
	case "month":
		return Month, nil
	default:
		return Week, fmt.Errorf("invalid granularity %q (want week or month)", s)
	}
}

func (g Granularity) String() string {
	if g == Month {
		return "month"
	}
	return "week"
}

// Window is the span of days shown by one calendar page.
type Window struct {
	first       time.Time
	last        time.Time
	granularity Granularity
}

// NewWindow returns the week (Monday start) or month containing ref.
func NewWindow(ref time.Time, g Granularity) Window {
	y, m, d := ref.In(dates.Zone()).Date()

	switch g {
	case Month:
		return Window{first: dates.Date(y, m, 1), last: dates.Date(y, m+1, 0), granularity: Month}
	default:
		// time.Weekday starts on Sunday; shift so Monday is 0.
		offset := (int(dates.Date(y, m, d).Weekday()) + 6) % 7
		return Window{first: dates.Date(y, m, d-offset), last: dates.Date(y, m, d-offset+6), granularity: Week}
	}
}

// Granularity returns the window's span kind.
func (w Window) Granularity() Granularity {
	return w.granularity
}

// Days returns every day in the window, in order. Each call returns a new slice.
func (w Window) Days() []time.Time {
	var days []time.Time
	for d := w.first; !d.After(w.last); d = dates.AddDays(d, 1) {
		days = append(days, d)
	}
	return days
}

// Len returns the number of days in the window.
func (w Window) Len() int {
	return len(w.Days())
}

// Start is midnight of the first day, the lower fetch bound.
func (w Window) Start() time.Time {
	return w.first
}

// End is the last instant of the last day, the upper fetch bound.
func (w Window) End() time.Time {
	return dates.EndOfDay(w.last)
}

// First returns the first day of the window.
func (w Window) First() time.Time {
	return w.first
}

// Last returns the last day of the window.
func (w Window) Last() time.Time {
	return w.last
}

// Contains reports whether t falls on one of the window's days.
func (w Window) Contains(t time.Time) bool {
	d := dates.Day(t)
	return !d.Before(w.first) && !d.After(w.last)
}

// Next returns the following week or month.
func (w Window) Next() Window {
	if w.granularity == Month {
		return NewWindow(dates.AddDays(w.last, 1), Month)
	}
	return NewWindow(dates.AddDays(w.first, 7), Week)
}

// Prev returns the preceding week or month.
func (w Window) Prev() Window {
	if w.granularity == Month {
		return NewWindow(dates.AddDays(w.first, -1), Month)
	}
	return NewWindow(dates.AddDays(w.first, -7), Week)
}

// Key identifies the window, e.g. "week:2025-03-10" or "month:2025-03-01".
func (w Window) Key() string {
	return w.granularity.String() + ":" + dates.Key(w.first)
}

// Title renders "March 2025" for months and "Mar 10 - 16, 2025" for weeks.
func (w Window) Title() string {
	if w.granularity == Month {
		return w.first.Format("January 2006")
	}
	return dates.FormatRange(w.first, w.last)
}
