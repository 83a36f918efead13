package api

import (
	"log/slog"
	"time"

	"github.com/Veraticus/transit-journal/internal/dates"
	"github.com/Veraticus/transit-journal/internal/model"
)

// The API has shipped both camelCase and snake_case payloads. Each wire type
// decodes both spellings and the to* functions pick whichever is present, so
// the rest of the program only ever sees model types.

type transitsResponse struct {
	Transits []wireTransit `json:"transits"`
}

type positionResponse struct {
	Position *wirePosition `json:"position"`
}

type snapshotResponse struct {
	Date      string         `json:"date"`
	Positions []wirePosition `json:"positions"`
	Transits  []wireTransit  `json:"transits"`
}

type entriesResponse struct {
	Entries []wireEntry `json:"entries"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type wireTransit struct {
	Intensity          *float64 `json:"intensity"`
	ID                 string   `json:"id"`
	TransitTypeID      string   `json:"transitTypeId"`
	TransitTypeIDSnake string   `json:"transit_type_id"`
	PlanetA            string   `json:"planetA"`
	PlanetASnake       string   `json:"planet_a"`
	PlanetB            string   `json:"planetB"`
	PlanetBSnake       string   `json:"planet_b"`
	Aspect             string   `json:"aspect"`
	Sign               string   `json:"sign"`
	Subtype            string   `json:"subtype"`
	Timing             string   `json:"timing"`
	Description        string   `json:"description"`
	StartDate          string   `json:"startDate"`
	StartDateSnake     string   `json:"start_date"`
	ExactDate          string   `json:"exactDate"`
	ExactDateSnake     string   `json:"exact_date"`
	EndDate            string   `json:"endDate"`
	EndDateSnake       string   `json:"end_date"`
}

type wireSign struct {
	Name               string   `json:"name"`
	Ruler              string   `json:"ruler"`
	Element            string   `json:"element"`
	DegreeInSign       *float64 `json:"degreeInSign"`
	DegreeInSignSnake  *float64 `json:"degree_in_sign"`
	PercentInSign      *float64 `json:"percentInSign"`
	PercentInSignSnake *float64 `json:"percent_in_sign"`
}

type wireRetrograde struct {
	IsRetrograde      *bool   `json:"isRetrograde"`
	IsRetrogradeSnake *bool   `json:"is_retrograde"`
	Status            string  `json:"status"`
	Speed             float64 `json:"speed"`
	DirectDate        string  `json:"directDate"`
	DirectDateSnake   string  `json:"direct_date"`
}

type wireHouse struct {
	Number         int     `json:"number"`
	Cusp           float64 `json:"cusp"`
	Ruler          string  `json:"ruler"`
	EntryDate      string  `json:"entryDate"`
	EntryDateSnake string  `json:"entry_date"`
	ExitDate       string  `json:"exitDate"`
	ExitDateSnake  string  `json:"exit_date"`
}

type wireInterpretation struct {
	KeyThemes      []string `json:"keyThemes"`
	KeyThemesSnake []string `json:"key_themes"`
	Challenges     []string `json:"challenges"`
	Opportunities  []string `json:"opportunities"`
}

type wirePosition struct {
	House             *wireHouse          `json:"house"`
	SignDuration      *wireHouse          `json:"signDuration"`
	SignDurationSnake *wireHouse          `json:"sign_duration"`
	Interpretation    *wireInterpretation `json:"interpretation"`
	Planet            string              `json:"planet"`
	Sign              wireSign            `json:"sign"`
	Retrograde        wireRetrograde      `json:"retrograde"`
	Longitude         float64             `json:"longitude"`
	Latitude          float64             `json:"latitude"`
	Distance          float64             `json:"distance"`
	Speed             float64             `json:"speed"`
}

type wireEntry struct {
	ID                 string   `json:"id"`
	TransitID          string   `json:"transitId"`
	TransitIDSnake     string   `json:"transit_id"`
	TransitTypeID      string   `json:"transitTypeId"`
	TransitTypeIDSnake string   `json:"transit_type_id"`
	Content            string   `json:"content"`
	Mood               string   `json:"mood"`
	Tags               []string `json:"tags"`
	CreatedAt          string   `json:"createdAt"`
	CreatedAtSnake     string   `json:"created_at"`
	UpdatedAt          string   `json:"updatedAt"`
	UpdatedAtSnake     string   `json:"updated_at"`
}

func first(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstFloat(values ...*float64) float64 {
	for _, v := range values {
		if v != nil {
			return *v
		}
	}
	return 0
}

// parseDate never fails: an unreadable value becomes the zero time, which the
// dates formatters render as "Unknown date".
func parseDate(field, value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	t, err := dates.ParseFlexible(value)
	if err != nil {
		slog.Debug("Unparseable date from API", "field", field, "value", value, "error", err)
		return time.Time{}
	}
	return t
}

func parsePlanet(value string) model.Planet {
	if value == "" {
		return ""
	}
	p, err := model.ParsePlanet(value)
	if err != nil {
		slog.Debug("Unknown planet from API", "value", value)
		return model.Planet(value)
	}
	return p
}

func parseSign(value string) model.Sign {
	if value == "" {
		return ""
	}
	s, err := model.ParseSign(value)
	if err != nil {
		slog.Debug("Unknown sign from API", "value", value)
		return ""
	}
	return s
}

func parseAspect(value string) model.Aspect {
	if value == "" {
		return ""
	}
	a, err := model.ParseAspect(value)
	if err != nil {
		slog.Debug("Unknown aspect from API", "value", value)
		return model.Aspect(value)
	}
	return a
}

func (w wireTransit) toModel() model.Transit {
	t := model.Transit{
		ID:            w.ID,
		TransitTypeID: first(w.TransitTypeID, w.TransitTypeIDSnake),
		PlanetA:       parsePlanet(first(w.PlanetA, w.PlanetASnake)),
		PlanetB:       parsePlanet(first(w.PlanetB, w.PlanetBSnake)),
		Aspect:        parseAspect(w.Aspect),
		Sign:          parseSign(w.Sign),
		Subtype:       model.ParseSubtype(w.Subtype),
		Timing:        model.ParseTiming(w.Timing),
		Description:   w.Description,
		StartDate:     parseDate("startDate", first(w.StartDate, w.StartDateSnake)),
		ExactDate:     parseDate("exactDate", first(w.ExactDate, w.ExactDateSnake)),
		EndDate:       parseDate("endDate", first(w.EndDate, w.EndDateSnake)),
	}
	if w.Intensity != nil {
		v := *w.Intensity
		t.Intensity = &v
	}
	return t
}

func toTransits(ws []wireTransit) []model.Transit {
	out := make([]model.Transit, 0, len(ws))
	for _, w := range ws {
		out = append(out, w.toModel())
	}
	return out
}

func (w wirePosition) toModel() model.PlanetPosition {
	p := model.PlanetPosition{
		Planet:    parsePlanet(w.Planet),
		Longitude: w.Longitude,
		Latitude:  w.Latitude,
		Distance:  w.Distance,
		Speed:     w.Speed,
		Sign: model.SignInfo{
			Name:          parseSign(w.Sign.Name),
			Ruler:         parsePlanet(w.Sign.Ruler),
			Element:       w.Sign.Element,
			DegreeInSign:  firstFloat(w.Sign.DegreeInSign, w.Sign.DegreeInSignSnake),
			PercentInSign: firstFloat(w.Sign.PercentInSign, w.Sign.PercentInSignSnake),
		},
		Retrograde: model.RetrogradeInfo{
			Status:     w.Retrograde.Status,
			Speed:      w.Retrograde.Speed,
			DirectDate: parseDate("directDate", first(w.Retrograde.DirectDate, w.Retrograde.DirectDateSnake)),
		},
	}

	switch {
	case w.Retrograde.IsRetrograde != nil:
		p.Retrograde.IsRetrograde = *w.Retrograde.IsRetrograde
	case w.Retrograde.IsRetrogradeSnake != nil:
		p.Retrograde.IsRetrograde = *w.Retrograde.IsRetrogradeSnake
	}

	if w.House != nil {
		p.House = &model.HouseInfo{
			Number:    w.House.Number,
			Cusp:      w.House.Cusp,
			Ruler:     parsePlanet(w.House.Ruler),
			EntryDate: parseDate("house.entryDate", first(w.House.EntryDate, w.House.EntryDateSnake)),
			ExitDate:  parseDate("house.exitDate", first(w.House.ExitDate, w.House.ExitDateSnake)),
		}
	}

	duration := w.SignDuration
	if duration == nil {
		duration = w.SignDurationSnake
	}
	if duration != nil {
		p.SignDuration = &model.SignDuration{
			EntryDate: parseDate("signDuration.entryDate", first(duration.EntryDate, duration.EntryDateSnake)),
			ExitDate:  parseDate("signDuration.exitDate", first(duration.ExitDate, duration.ExitDateSnake)),
		}
	}

	if w.Interpretation != nil {
		themes := w.Interpretation.KeyThemes
		if len(themes) == 0 {
			themes = w.Interpretation.KeyThemesSnake
		}
		p.Interpretation = &model.Interpretation{
			KeyThemes:     themes,
			Challenges:    w.Interpretation.Challenges,
			Opportunities: w.Interpretation.Opportunities,
		}
	}

	return p
}

func toPositions(ws []wirePosition) []model.PlanetPosition {
	out := make([]model.PlanetPosition, 0, len(ws))
	for _, w := range ws {
		out = append(out, w.toModel())
	}
	return out
}

func (w wireEntry) toModel() model.JournalEntry {
	return model.JournalEntry{
		ID:            w.ID,
		TransitID:     first(w.TransitID, w.TransitIDSnake),
		TransitTypeID: first(w.TransitTypeID, w.TransitTypeIDSnake),
		Content:       w.Content,
		Mood:          w.Mood,
		Tags:          w.Tags,
		CreatedAt:     parseDate("createdAt", first(w.CreatedAt, w.CreatedAtSnake)),
		UpdatedAt:     parseDate("updatedAt", first(w.UpdatedAt, w.UpdatedAtSnake)),
	}
}

func toEntries(ws []wireEntry) []model.JournalEntry {
	out := make([]model.JournalEntry, 0, len(ws))
	for _, w := range ws {
		out = append(out, w.toModel())
	}
	return out
}
