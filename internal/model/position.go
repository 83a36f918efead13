package model

import "time"

// SignInfo describes where a body sits within its sign.
type SignInfo struct {
	Name          Sign
	Ruler         Planet
	Element       string
	DegreeInSign  float64
	PercentInSign float64
}

// RetrogradeInfo describes apparent backwards motion.
type RetrogradeInfo struct {
	DirectDate   time.Time // zero when the API does not know
	Status       string
	Speed        float64
	IsRetrograde bool
}

// HouseInfo places a body in a house.
type HouseInfo struct {
	EntryDate time.Time
	ExitDate  time.Time
	Ruler     Planet
	Number    int
	Cusp      float64
}

// SignDuration bounds how long a body stays in its current sign.
type SignDuration struct {
	EntryDate time.Time
	ExitDate  time.Time
}

// Interpretation holds descriptive text for a placement.
type Interpretation struct {
	KeyThemes     []string
	Challenges    []string
	Opportunities []string
}

// PlanetPosition is one body's placement on a given day.
type PlanetPosition struct {
	House          *HouseInfo
	SignDuration   *SignDuration
	Interpretation *Interpretation
	Planet         Planet
	Sign           SignInfo
	Retrograde     RetrogradeInfo
	Longitude      float64
	Latitude       float64
	Distance       float64
	Speed          float64
}

// TypeID returns the planet-in-sign TransitType key for the position.
func (p PlanetPosition) TypeID() string {
	return PositionTypeID(p.Planet, p.Sign.Name)
}

// Title renders "MARS in Aries".
func (p PlanetPosition) Title() string {
	return string(p.Planet) + " in " + string(p.Sign.Name.OrDefault())
}
