package model

import (
	"fmt"
	"time"
)

// Transit is a time-bounded astrological event: a planet in a sign, or an
// aspect between two planets. StartDate <= ExactDate <= EndDate is expected
// but never validated.
type Transit struct {
	StartDate     time.Time
	ExactDate     time.Time
	EndDate       time.Time
	Intensity     *float64 // 0-100, strength within the orb
	ID            string
	TransitTypeID string
	Description   string
	PlanetA       Planet
	PlanetB       Planet // empty for a planet-in-sign transit
	Aspect        Aspect
	Sign          Sign
	Subtype       TransitSubtype
	Timing        TransitTiming
}

// IsAspect reports whether the transit relates two bodies.
func (t Transit) IsAspect() bool {
	return t.PlanetB != ""
}

// HasIntensity reports whether the API supplied an intensity.
func (t Transit) HasIntensity() bool {
	return t.Intensity != nil
}

// TypeID returns the server-provided TransitType key, deriving one from the
// participants only when the server omitted it.
func (t Transit) TypeID() string {
	if t.TransitTypeID != "" {
		return t.TransitTypeID
	}
	if t.IsAspect() {
		return AspectTypeID(t.PlanetA, t.Aspect, t.PlanetB)
	}
	return PositionTypeID(t.PlanetA, t.Sign)
}

// Title renders "MARS Square SUN" or "MARS in Aries".
func (t Transit) Title() string {
	if t.IsAspect() {
		return fmt.Sprintf("%s %s %s", t.PlanetA, t.Aspect, t.PlanetB)
	}
	return fmt.Sprintf("%s in %s", t.PlanetA, t.Sign.OrDefault())
}

// Involves reports whether p participates in the transit.
func (t Transit) Involves(p Planet) bool {
	return t.PlanetA == p || t.PlanetB == p
}

// DailySnapshot is the ephemeris state for a single day.
type DailySnapshot struct {
	Date      time.Time
	Positions []PlanetPosition
	Transits  []Transit
}
