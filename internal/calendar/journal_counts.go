package calendar

import (
	"github.com/Veraticus/transit-journal/internal/model"
)

// JournalCounts maps TransitType keys to entry counts. Every planet-in-sign
// key implied by positions is present, with zero when nothing was written.
// Entries count under their own TransitTypeID; entries without one are skipped.
func JournalCounts(positions []model.PlanetPosition, entries []model.JournalEntry) map[string]int {
	counts := make(map[string]int, len(positions)+len(entries))
	for _, p := range positions {
		counts[p.TypeID()] = 0
	}
	for _, e := range entries {
		if e.TransitTypeID == "" {
			continue
		}
		counts[e.TransitTypeID]++
	}
	return counts
}

// JournalCountsByDay folds the entries of several days into one count map.
func JournalCountsByDay(positions []model.PlanetPosition, entriesByDay map[string][]model.JournalEntry) map[string]int {
	var all []model.JournalEntry
	for _, entries := range entriesByDay {
		all = append(all, entries...)
	}
	return JournalCounts(positions, all)
}

// BadgeCounts is the pair of counts shown on a planet card.
type BadgeCounts struct {
	Position int
	Aspects  int
}

// PositionBadges returns the entry count for the position's planet-in-sign key
// and the summed counts of every aspect involving the planet.
func PositionBadges(pos model.PlanetPosition, transits []model.Transit, counts map[string]int) BadgeCounts {
	badges := BadgeCounts{Position: counts[pos.TypeID()]}
	for _, t := range GroupByPlanet(transits)[pos.Planet] {
		badges.Aspects += counts[t.TypeID()]
	}
	return badges
}
