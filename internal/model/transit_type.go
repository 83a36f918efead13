package model

import (
	"strings"

	"github.com/google/uuid"
)

const typeIDSeparator = "_"

// PositionTypeID builds the planet-in-sign key, e.g. "MARS_IN_Aries".
// An unresolved sign falls back to DefaultSign.
func PositionTypeID(p Planet, s Sign) string {
	return string(p) + typeIDSeparator + "IN" + typeIDSeparator + string(s.OrDefault())
}

// AspectTypeID builds the aspect key, e.g. "SUN_Square_MARS".
func AspectTypeID(a Planet, aspect Aspect, b Planet) string {
	return string(a) + typeIDSeparator + string(aspect) + typeIDSeparator + string(b)
}

// TransitTypeInfo is what can be recovered from a TransitType key.
type TransitTypeInfo struct {
	PlanetA Planet
	PlanetB Planet
	Aspect  Aspect
	Sign    Sign
}

// IsAspect reports whether the key named an aspect.
func (i TransitTypeInfo) IsAspect() bool {
	return i.PlanetB != ""
}

// ParseTransitTypeID splits a key of the form PLANET_IN_Sign or
// PLANETA_Aspect_PLANETB. Keys that match neither form report false.
func ParseTransitTypeID(id string) (TransitTypeInfo, bool) {
	parts := strings.Split(strings.TrimSpace(id), typeIDSeparator)
	if len(parts) != 3 {
		return TransitTypeInfo{}, false
	}

	a, err := ParsePlanet(parts[0])
	if err != nil {
		return TransitTypeInfo{}, false
	}

	if strings.EqualFold(parts[1], "IN") {
		sign, err := ParseSign(parts[2])
		if err != nil {
			return TransitTypeInfo{}, false
		}
		return TransitTypeInfo{PlanetA: a, Sign: sign}, true
	}

	aspect, err := ParseAspect(parts[1])
	if err != nil {
		return TransitTypeInfo{}, false
	}
	b, err := ParsePlanet(parts[2])
	if err != nil {
		return TransitTypeInfo{}, false
	}
	return TransitTypeInfo{PlanetA: a, PlanetB: b, Aspect: aspect}, true
}

// NewPlaceholderTransitID returns a fresh identifier for journal entries
// attached to a planet position, which has no transit instance of its own.
func NewPlaceholderTransitID() string {
	return uuid.NewString()
}
