package model

import (
	"fmt"
	"strings"
)

// Aspect is a named angular relationship between two bodies.
type Aspect string

// Major aspects.
const (
	Conjunction Aspect = "Conjunction"
	Sextile     Aspect = "Sextile"
	Square      Aspect = "Square"
	Trine       Aspect = "Trine"
	Opposition  Aspect = "Opposition"
)

// Aspects lists the major aspects.
var Aspects = []Aspect{Conjunction, Sextile, Square, Trine, Opposition}

// ParseAspect resolves an aspect name case-insensitively.
func ParseAspect(s string) (Aspect, error) {
	a := Aspect(canonical(s))
	for _, known := range Aspects {
		if known == a {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown aspect %q", s)
}

// Sign is a zodiac sign.
type Sign string

// Zodiac signs.
const (
	Aries       Sign = "Aries"
	Taurus      Sign = "Taurus"
	Gemini      Sign = "Gemini"
	Cancer      Sign = "Cancer"
	Leo         Sign = "Leo"
	Virgo       Sign = "Virgo"
	Libra       Sign = "Libra"
	Scorpio     Sign = "Scorpio"
	Sagittarius Sign = "Sagittarius"
	Capricorn   Sign = "Capricorn"
	Aquarius    Sign = "Aquarius"
	Pisces      Sign = "Pisces"
)

// Signs lists the zodiac in order.
var Signs = []Sign{Aries, Taurus, Gemini, Cancer, Leo, Virgo, Libra, Scorpio, Sagittarius, Capricorn, Aquarius, Pisces}

// DefaultSign stands in for a sign the API did not resolve.
const DefaultSign = Aries

// ParseSign resolves a sign name case-insensitively.
func ParseSign(s string) (Sign, error) {
	sign := Sign(canonical(s))
	for _, known := range Signs {
		if known == sign {
			return sign, nil
		}
	}
	return "", fmt.Errorf("unknown sign %q", s)
}

// OrDefault returns s, or DefaultSign when s is empty.
func (s Sign) OrDefault() Sign {
	if s == "" {
		return DefaultSign
	}
	return s
}

// TransitSubtype tags what kind of event a transit is.
type TransitSubtype string

// Transit subtypes.
const (
	SubtypeStandard   TransitSubtype = "Standard"
	SubtypeRetrograde TransitSubtype = "Retrograde"
	SubtypeDirect     TransitSubtype = "Direct"
	SubtypeStation    TransitSubtype = "Station"
	SubtypeIngress    TransitSubtype = "Ingress"
	SubtypeTransit    TransitSubtype = "Transit"
)

var subtypes = []TransitSubtype{SubtypeStandard, SubtypeRetrograde, SubtypeDirect, SubtypeStation, SubtypeIngress, SubtypeTransit}

// ParseSubtype resolves a subtype, falling back to SubtypeStandard.
func ParseSubtype(s string) TransitSubtype {
	st := TransitSubtype(canonical(s))
	for _, known := range subtypes {
		if known == st {
			return st
		}
	}
	return SubtypeStandard
}

// TransitTiming describes where a transit is relative to its exact date.
type TransitTiming string

// Transit timings, in display priority order.
const (
	TimingActive     TransitTiming = "Active"
	TimingApplying   TransitTiming = "Applying"
	TimingSeparating TransitTiming = "Separating"
	TimingUpcoming   TransitTiming = "Upcoming"
)

var timings = []TransitTiming{TimingActive, TimingApplying, TimingSeparating, TimingUpcoming}

// ParseTiming resolves a timing label. Unknown labels yield the empty timing.
func ParseTiming(s string) TransitTiming {
	tt := TransitTiming(canonical(s))
	for _, known := range timings {
		if known == tt {
			return tt
		}
	}
	return ""
}

// Rank orders timings Active < Applying < Separating < Upcoming; unknown sorts last.
func (t TransitTiming) Rank() int {
	for i, known := range timings {
		if known == t {
			return i
		}
	}
	return len(timings)
}

func canonical(s string) string {
	return titleCaser.String(strings.ToLower(strings.TrimSpace(s)))
}
