package calendar

import (
	"slices"

	"github.com/Veraticus/transit-journal/internal/model"
)

// DefaultDisplayBudget is how many transits a calendar cell shows inline.
const DefaultDisplayBudget = 3

// compareImportance orders by PlanetA rank, then PlanetB rank. A missing
// PlanetB ranks after every body, so planet-in-sign transits trail their tier.
func compareImportance(a, b model.Transit) int {
	if c := a.PlanetA.Importance() - b.PlanetA.Importance(); c != 0 {
		return c
	}
	return a.PlanetB.Importance() - b.PlanetB.Importance()
}

// SortByImportance returns a copy of transits ordered for the compact dot row.
// Equal keys keep their input order.
func SortByImportance(transits []model.Transit) []model.Transit {
	out := slices.Clone(transits)
	slices.SortStableFunc(out, compareImportance)
	return out
}

// compareDetail orders by intensity (descending, when both define it), then
// timing, then PlanetA importance. Over a mix of transits with and without
// intensity this is not transitive, so the result depends on input order.
func compareDetail(a, b model.Transit) int {
	if a.HasIntensity() && b.HasIntensity() && *a.Intensity != *b.Intensity {
		if *a.Intensity > *b.Intensity {
			return -1
		}
		return 1
	}
	if c := a.Timing.Rank() - b.Timing.Rank(); c != 0 {
		return c
	}
	return a.PlanetA.Importance() - b.PlanetA.Importance()
}

// SortForDetail returns a copy of transits ordered for the day detail view.
func SortForDetail(transits []model.Transit) []model.Transit {
	out := slices.Clone(transits)
	slices.SortStableFunc(out, compareDetail)
	return out
}

// Compact ranks transits by importance and keeps at most budget of them.
// overflow is the number left out. A budget below 1 uses DefaultDisplayBudget.
func Compact(transits []model.Transit, budget int) (shown []model.Transit, overflow int) {
	if budget < 1 {
		budget = DefaultDisplayBudget
	}
	sorted := SortByImportance(transits)
	if len(sorted) <= budget {
		return sorted, 0
	}
	return sorted[:budget], len(sorted) - budget
}

// SortPositions returns a copy of positions in order of planet importance.
func SortPositions(positions []model.PlanetPosition) []model.PlanetPosition {
	out := slices.Clone(positions)
	slices.SortStableFunc(out, func(a, b model.PlanetPosition) int {
		return a.Planet.Importance() - b.Planet.Importance()
	})
	return out
}
