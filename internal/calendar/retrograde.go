package calendar

import (
	"time"

	"github.com/Veraticus/transit-journal/internal/dates"
	"github.com/Veraticus/transit-journal/internal/model"
)

// retrogradeDays is a rough typical length of each body's retrograde period.
// The Sun and Moon never go retrograde.
var retrogradeDays = map[model.Planet]int{
	model.Sun:     0,
	model.Moon:    0,
	model.Mercury: 24,
	model.Venus:   42,
	model.Mars:    72,
	model.Jupiter: 120,
	model.Saturn:  140,
	model.Uranus:  155,
	model.Neptune: 158,
	model.Pluto:   160,
}

// RetrogradeDuration returns the typical retrograde length of p in days.
func RetrogradeDuration(p model.Planet) int {
	return retrogradeDays[p]
}

// EstimateDirectDate guesses when p turns direct: today plus half its typical
// retrograde length. This is a placeholder heuristic, not an ephemeris result.
func EstimateDirectDate(p model.Planet, today time.Time) time.Time {
	return dates.AddDays(today, RetrogradeDuration(p)/2)
}

// DirectDate returns the API's direct date when present, otherwise an
// estimate. estimated reports which one was used. Direct bodies return the
// zero time.
func DirectDate(pos model.PlanetPosition, today time.Time) (direct time.Time, estimated bool) {
	if !pos.Retrograde.IsRetrograde {
		return time.Time{}, false
	}
	if !pos.Retrograde.DirectDate.IsZero() {
		return pos.Retrograde.DirectDate, false
	}
	return EstimateDirectDate(pos.Planet, today), true
}
