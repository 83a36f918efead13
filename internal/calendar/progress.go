package calendar

import (
	"math"
	"time"

	"github.com/Veraticus/transit-journal/internal/dates"
	"github.com/Veraticus/transit-journal/internal/model"
)

// Progress returns how far now is through the transit, as a percentage in [0, 100].
func Progress(t model.Transit, now time.Time) float64 {
	if t.StartDate.IsZero() || t.EndDate.IsZero() || now.Before(t.StartDate) {
		return 0
	}
	total := t.EndDate.Sub(t.StartDate)
	if total <= 0 {
		return 100
	}
	pct := float64(now.Sub(t.StartDate)) / float64(total) * 100
	return math.Min(100, math.Max(0, pct))
}

// DaysUntilExact counts calendar days from now to the exact date. Negative
// values mean the exact date has passed.
func DaysUntilExact(t model.Transit, now time.Time) int {
	if t.ExactDate.IsZero() {
		return 0
	}
	hours := dates.Day(t.ExactDate).Sub(dates.Day(now)).Hours()
	return int(math.Round(hours / 24))
}
