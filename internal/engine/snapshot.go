package engine

import (
	"maps"
	"sync"
	"time"

	"github.com/Veraticus/transit-journal/internal/calendar"
	"github.com/Veraticus/transit-journal/internal/dates"
	"github.com/Veraticus/transit-journal/internal/model"
)

// Snapshot is everything fetched for one calendar window. It is never
// mutated after it is built; changes produce a new Snapshot with a new
// Generation.
type Snapshot struct {
	Window   calendar.Window
	LoadedAt time.Time
	// Transits overlapping the window, as returned by the API.
	Transits []model.Transit
	// EntriesByDay holds journal entries keyed by yyyy-MM-dd. Days whose
	// fetch failed are absent.
	EntriesByDay map[string][]model.JournalEntry
	// FailedDays lists day keys whose journal entries could not be loaded.
	FailedDays []string

	cells      []DayCell
	budget     int
	Generation uint64
	cellsOnce  sync.Once
}

// DayCell is what one calendar cell renders.
type DayCell struct {
	Date time.Time
	Key  string
	// Active transits, most important first.
	Active     []model.Transit
	Shown      []model.Transit
	Indicators calendar.DayIndicators
	IsToday    bool
}

// Cells derives the calendar cells. The result is computed once per
// snapshot and shared; callers must not modify it. "Today" is the day the
// snapshot was loaded.
func (s *Snapshot) Cells() []DayCell {
	s.cellsOnce.Do(func() {
		loadedAt := s.LoadedAt
		if loadedAt.IsZero() {
			loadedAt = time.Now()
		}
		today := dates.Day(loadedAt)
		byDay := calendar.GroupByDay(s.Window, s.Transits)

		days := s.Window.Days()
		s.cells = make([]DayCell, 0, len(days))
		for _, day := range days {
			key := dates.Key(day)
			active := calendar.SortByImportance(byDay[key])
			shown, _ := calendar.Compact(active, s.budget)
			s.cells = append(s.cells, DayCell{
				Date:       day,
				Key:        key,
				Active:     active,
				Shown:      shown,
				Indicators: calendar.IndicatorsWithBudget(day, active, s.EntriesByDay[key], s.budget),
				IsToday:    day.Equal(today),
			})
		}
	})
	return s.cells
}

// Cell returns the cell for day, if day is in the window.
func (s *Snapshot) Cell(day time.Time) (DayCell, bool) {
	if !s.Window.Contains(day) {
		return DayCell{}, false
	}
	key := dates.Key(day)
	for _, c := range s.Cells() {
		if c.Key == key {
			return c, true
		}
	}
	return DayCell{}, false
}

// Entries returns the journal entries loaded for day.
func (s *Snapshot) Entries(day time.Time) []model.JournalEntry {
	return s.EntriesByDay[dates.Key(day)]
}

// TotalEntries counts every journal entry in the window.
func (s *Snapshot) TotalEntries() int {
	total := 0
	for _, entries := range s.EntriesByDay {
		total += len(entries)
	}
	return total
}

// TypeCounts maps TransitType keys to the number of entries written about
// them anywhere in the window.
func (s *Snapshot) TypeCounts() map[string]int {
	return calendar.JournalCountsByDay(nil, s.EntriesByDay)
}

// withDayEntries returns a copy of s whose entries for day are replaced.
func (s *Snapshot) withDayEntries(day time.Time, entries []model.JournalEntry, generation uint64) *Snapshot {
	key := dates.Key(day)

	byDay := maps.Clone(s.EntriesByDay)
	if byDay == nil {
		byDay = make(map[string][]model.JournalEntry)
	}
	byDay[key] = entries

	failed := make([]string, 0, len(s.FailedDays))
	for _, k := range s.FailedDays {
		if k != key {
			failed = append(failed, k)
		}
	}

	return &Snapshot{
		Window:       s.Window,
		LoadedAt:     s.LoadedAt,
		Transits:     s.Transits,
		EntriesByDay: byDay,
		FailedDays:   failed,
		budget:       s.budget,
		Generation:   generation,
	}
}

// DayDetail is the expanded view of a single selected day.
type DayDetail struct {
	Day       time.Time
	Positions []model.PlanetPosition
	// Transits active on the day, in detail order.
	Transits []model.Transit
	Entries  []model.JournalEntry
	// Counts maps TransitType keys to journal entry counts.
	Counts map[string]int
	// Notice is a user-facing message about partial data.
	Notice string
	// Degraded is set when the daily snapshot failed and Transits were
	// derived from the window's transit list instead.
	Degraded bool
}

// Aspects returns the day's aspect transits matching filter.
func (d *DayDetail) Aspects(filter string) []model.Transit {
	return calendar.FilterByAspect(calendar.AspectsOnly(d.Transits), filter)
}

// ForPlanet narrows the detail to p's position and the transits p takes
// part in. Entries and counts are kept. An empty planet returns d.
func (d *DayDetail) ForPlanet(p model.Planet) *DayDetail {
	if p == "" {
		return d
	}
	narrowed := *d
	narrowed.Positions = nil
	for _, pos := range d.Positions {
		if pos.Planet == p {
			narrowed.Positions = append(narrowed.Positions, pos)
		}
	}
	narrowed.Transits = calendar.FilterByPlanet(d.Transits, p)
	return &narrowed
}

// Badges returns the entry counts shown on a planet card.
func (d *DayDetail) Badges(pos model.PlanetPosition) calendar.BadgeCounts {
	return calendar.PositionBadges(pos, d.Transits, d.Counts)
}
