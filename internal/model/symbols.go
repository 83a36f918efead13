package model

var planetSymbols = map[Planet]string{
	Sun:     "☉",
	Moon:    "☽",
	Mercury: "☿",
	Venus:   "♀",
	Mars:    "♂",
	Jupiter: "♃",
	Saturn:  "♄",
	Uranus:  "♅",
	Neptune: "♆",
	Pluto:   "♇",
}

var aspectSymbols = map[Aspect]string{
	Conjunction: "☌",
	Sextile:     "⚹",
	Square:      "□",
	Trine:       "△",
	Opposition:  "☍",
}

var signSymbols = map[Sign]string{
	Aries:       "♈",
	Taurus:      "♉",
	Gemini:      "♊",
	Cancer:      "♋",
	Leo:         "♌",
	Virgo:       "♍",
	Libra:       "♎",
	Scorpio:     "♏",
	Sagittarius: "♐",
	Capricorn:   "♑",
	Aquarius:    "♒",
	Pisces:      "♓",
}

// Symbol returns the glyph for p, or its first letter for unknown bodies.
func (p Planet) Symbol() string {
	return lookupSymbol(planetSymbols, p)
}

// Symbol returns the glyph for a, or its first letter.
func (a Aspect) Symbol() string {
	return lookupSymbol(aspectSymbols, a)
}

// Symbol returns the glyph for s, or its first letter.
func (s Sign) Symbol() string {
	return lookupSymbol(signSymbols, s)
}

func lookupSymbol[K ~string](table map[K]string, k K) string {
	if sym, ok := table[k]; ok {
		return sym
	}
	if k == "" {
		return ""
	}
	return string([]rune(string(k))[:1])
}

// OrdinalSuffix returns "st", "nd", "rd" or "th" for n.
func OrdinalSuffix(n int) string {
	if n < 0 {
		n = -n
	}
	j, k := n%10, n%100
	switch {
	case j == 1 && k != 11:
		return "st"
	case j == 2 && k != 12:
		return "nd"
	case j == 3 && k != 13:
		return "rd"
	default:
		return "th"
	}
}

// Label returns the human description of a timing.
func (t TransitTiming) Label() string {
	switch t {
	case TimingActive:
		return "Currently Active"
	case TimingApplying:
		return "Building In Strength"
	case TimingSeparating:
		return "Diminishing"
	case TimingUpcoming:
		return "Not Yet Active"
	case "":
		return "Unknown"
	default:
		return string(t)
	}
}

// IntensityLevel buckets a transit's intensity.
type IntensityLevel string

// Intensity buckets.
const (
	IntensityUnknown IntensityLevel = ""
	IntensityLow     IntensityLevel = "low"
	IntensityMedium  IntensityLevel = "medium"
	IntensityHigh    IntensityLevel = "high"
)

// IntensityLevel classifies the transit: high above 80, medium above 50.
func (t Transit) IntensityLevel() IntensityLevel {
	if t.Intensity == nil || *t.Intensity == 0 {
		return IntensityUnknown
	}
	switch v := *t.Intensity; {
	case v > 80:
		return IntensityHigh
	case v > 50:
		return IntensityMedium
	default:
		return IntensityLow
	}
}
