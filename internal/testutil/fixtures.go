package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/Veraticus/transit-journal/internal/model"
)

// TransitBuilder builds transits fluently for tests.
//
// Example:
//
//	square := testutil.Aspect(model.Mars, model.Square, model.Sun).
//		Between(testutil.Date(2025, 3, 18), testutil.Date(2025, 3, 24)).
//		Exact(testutil.Date(2025, 3, 21)).
//		Build()
type TransitBuilder struct {
	t model.Transit
}

var transitSeq atomic.Int64

// Aspect starts a two-body transit.
func Aspect(a model.Planet, aspect model.Aspect, b model.Planet) *TransitBuilder {
	return &TransitBuilder{t: model.Transit{
		ID:            fmt.Sprintf("transit-%d", transitSeq.Add(1)),
		TransitTypeID: model.AspectTypeID(a, aspect, b),
		PlanetA:       a,
		PlanetB:       b,
		Aspect:        aspect,
		Subtype:       model.SubtypeStandard,
	}}
}

// InSign starts a planet-in-sign transit.
func InSign(p model.Planet, sign model.Sign) *TransitBuilder {
	return &TransitBuilder{t: model.Transit{
		ID:            fmt.Sprintf("transit-%d", transitSeq.Add(1)),
		TransitTypeID: model.PositionTypeID(p, sign),
		PlanetA:       p,
		Sign:          sign,
		Subtype:       model.SubtypeTransit,
	}}
}

// Between sets the start and end dates. The exact date defaults to the start.
func (b *TransitBuilder) Between(start, end time.Time) *TransitBuilder {
	b.t.StartDate, b.t.EndDate = start, end
	if b.t.ExactDate.IsZero() {
		b.t.ExactDate = start
	}
	return b
}

// On makes the transit span a single day.
func (b *TransitBuilder) On(day time.Time) *TransitBuilder {
	return b.Between(day, day).Exact(day)
}

// Exact sets the exact date.
func (b *TransitBuilder) Exact(t time.Time) *TransitBuilder {
	b.t.ExactDate = t
	return b
}

// Intensity sets the intensity.
func (b *TransitBuilder) Intensity(v float64) *TransitBuilder {
	b.t.Intensity = &v
	return b
}

// Timing sets the timing.
func (b *TransitBuilder) Timing(timing model.TransitTiming) *TransitBuilder {
	b.t.Timing = timing
	return b
}

// ID overrides the generated ID.
func (b *TransitBuilder) ID(id string) *TransitBuilder {
	b.t.ID = id
	return b
}

// Build returns the transit.
func (b *TransitBuilder) Build() model.Transit {
	return b.t
}

// Date returns midnight UTC on the given day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Position returns a planet position in sign.
func Position(p model.Planet, sign model.Sign) model.PlanetPosition {
	return model.PlanetPosition{
		Planet: p,
		Sign:   model.SignInfo{Name: sign},
	}
}

// Retrograde returns a retrograde planet position in sign.
func Retrograde(p model.Planet, sign model.Sign) model.PlanetPosition {
	pos := Position(p, sign)
	pos.Retrograde = model.RetrogradeInfo{IsRetrograde: true, Status: "Retrograde"}
	return pos
}

// Entry returns a journal entry for a transit type.
func Entry(id, transitTypeID, content string) model.JournalEntry {
	return model.JournalEntry{
		ID:            id,
		TransitID:     "transit-" + id,
		TransitTypeID: transitTypeID,
		Content:       content,
	}
}
