package calendar

import (
	"time"

	"github.com/Veraticus/transit-journal/internal/model"
)

// DayIndicators is what a calendar cell renders for one day.
type DayIndicators struct {
	TransitCount      int
	DotCount          int // TransitCount capped at the display budget
	Overflow          int // TransitCount - DotCount
	JournalEntryCount int
	HasExactToday     bool
	HasJournalEntry   bool
}

// Indicators derives a cell's counts and flags from the transits active on
// day and the journal entries keyed to it.
func Indicators(day time.Time, active []model.Transit, entries []model.JournalEntry) DayIndicators {
	return IndicatorsWithBudget(day, active, entries, DefaultDisplayBudget)
}

// IndicatorsWithBudget is Indicators with a custom dot budget.
func IndicatorsWithBudget(day time.Time, active []model.Transit, entries []model.JournalEntry, budget int) DayIndicators {
	if budget < 1 {
		budget = DefaultDisplayBudget
	}

	ind := DayIndicators{
		TransitCount:      len(active),
		DotCount:          min(len(active), budget),
		JournalEntryCount: len(entries),
		HasJournalEntry:   len(entries) > 0,
	}
	ind.Overflow = ind.TransitCount - ind.DotCount

	for _, t := range active {
		if IsExactOn(t, day) {
			ind.HasExactToday = true
			break
		}
	}

	return ind
}
