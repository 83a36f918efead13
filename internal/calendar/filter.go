package calendar

import (
	"strings"
	"time"

	"github.com/Veraticus/transit-journal/internal/dates"
	"github.com/Veraticus/transit-journal/internal/model"
)

// AllAspects is the aspect filter value that keeps every aspect.
const AllAspects = "all"

// IsActiveOn reports whether day falls within [StartDate, EndDate], inclusive,
// comparing calendar days rather than instants.
func IsActiveOn(t model.Transit, day time.Time) bool {
	d := dates.Day(day)
	return !d.Before(dates.Day(t.StartDate)) && !d.After(dates.Day(t.EndDate))
}

// ActiveOn returns the transits active on day, preserving order.
func ActiveOn(transits []model.Transit, day time.Time) []model.Transit {
	var active []model.Transit
	for _, t := range transits {
		if IsActiveOn(t, day) {
			active = append(active, t)
		}
	}
	return active
}

// GroupByDay maps every day key in the window to the transits active that day.
// Days without transits map to an empty slice.
func GroupByDay(w Window, transits []model.Transit) map[string][]model.Transit {
	days := w.Days()
	grouped := make(map[string][]model.Transit, len(days))
	for _, day := range days {
		grouped[dates.Key(day)] = ActiveOn(transits, day)
	}
	return grouped
}

// IsExactOn reports whether the transit's exact date falls on day.
func IsExactOn(t model.Transit, day time.Time) bool {
	return !t.ExactDate.IsZero() && dates.SameDay(t.ExactDate, day)
}

// AspectsOnly keeps the two-body transits.
func AspectsOnly(transits []model.Transit) []model.Transit {
	var aspects []model.Transit
	for _, t := range transits {
		if t.IsAspect() {
			aspects = append(aspects, t)
		}
	}
	return aspects
}

// FilterByAspect keeps aspects of the given type, compared case-insensitively.
// AllAspects or an empty filter keeps every aspect.
func FilterByAspect(transits []model.Transit, filter string) []model.Transit {
	aspects := AspectsOnly(transits)
	filter = strings.TrimSpace(filter)
	if filter == "" || strings.EqualFold(filter, AllAspects) {
		return aspects
	}

	var out []model.Transit
	for _, t := range aspects {
		if strings.EqualFold(string(t.Aspect), filter) {
			out = append(out, t)
		}
	}
	return out
}

// AspectTypes lists the distinct aspect types present, in first-seen order.
func AspectTypes(transits []model.Transit) []model.Aspect {
	seen := make(map[model.Aspect]bool)
	var types []model.Aspect
	for _, t := range AspectsOnly(transits) {
		if t.Aspect == "" || seen[t.Aspect] {
			continue
		}
		seen[t.Aspect] = true
		types = append(types, t.Aspect)
	}
	return types
}

// FilterByPlanet keeps the transits p takes part in. An empty planet keeps all.
func FilterByPlanet(transits []model.Transit, p model.Planet) []model.Transit {
	if p == "" {
		return transits
	}
	var out []model.Transit
	for _, t := range transits {
		if t.Involves(p) {
			out = append(out, t)
		}
	}
	return out
}

// GroupByPlanet indexes aspects under each participating body. An aspect
// between a body and itself is listed once.
func GroupByPlanet(transits []model.Transit) map[model.Planet][]model.Transit {
	grouped := make(map[model.Planet][]model.Transit, len(model.Planets))
	for _, p := range model.Planets {
		grouped[p] = nil
	}

	for _, t := range transits {
		if !t.IsAspect() || t.Aspect == "" {
			continue
		}
		grouped[t.PlanetA] = append(grouped[t.PlanetA], t)
		if t.PlanetB != t.PlanetA {
			grouped[t.PlanetB] = append(grouped[t.PlanetB], t)
		}
	}
	return grouped
}
