// Package model defines the core data types for transits, planet positions and journal entries.
package model

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Planet identifies a celestial body tracked by the ephemeris.
type Planet string

// Planets known to the ephemeris.
const (
	Sun     Planet = "SUN"
	Moon    Planet = "MOON"
	Mercury Planet = "MERCURY"
	Venus   Planet = "VENUS"
	Mars    Planet = "MARS"
	Jupiter Planet = "JUPITER"
	Saturn  Planet = "SATURN"
	Uranus  Planet = "URANUS"
	Neptune Planet = "NEPTUNE"
	Pluto   Planet = "PLUTO"
)

// Planets lists every body in traditional order of astrological importance.
var Planets = []Planet{Sun, Moon, Mercury, Venus, Mars, Jupiter, Saturn, Uranus, Neptune, Pluto}

var titleCaser = cases.Title(language.English)

// ParsePlanet resolves a planet name case-insensitively ("mars", "Mars", "MARS").
func ParsePlanet(s string) (Planet, error) {
	p := Planet(strings.ToUpper(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("unknown planet %q", s)
	}
	return p, nil
}

// Valid reports whether p is one of the known planets.
func (p Planet) Valid() bool {
	return p.Importance() < len(Planets)
}

// Importance returns the rank of p in Planets. Lower is more important.
// Unknown or empty planets rank after every known body.
func (p Planet) Importance() int {
	for i, known := range Planets {
		if known == p {
			return i
		}
	}
	return len(Planets)
}

// Name returns the display form of p, e.g. "Mercury".
func (p Planet) Name() string {
	return titleCaser.String(strings.ToLower(string(p)))
}

func (p Planet) String() string {
	return string(p)
}
