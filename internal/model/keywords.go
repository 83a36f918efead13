package model

import (
	"fmt"
	"strings"
)

// PlanetKeywords are the themes associated with each body.
var PlanetKeywords = map[Planet][]string{
	Sun:     {"Identity", "Vitality", "Purpose"},
	Moon:    {"Emotions", "Intuition", "Nurturing"},
	Mercury: {"Communication", "Learning", "Thinking"},
	Venus:   {"Values", "Love", "Beauty"},
	Mars:    {"Action", "Desire", "Energy"},
	Jupiter: {"Expansion", "Growth", "Opportunity"},
	Saturn:  {"Structure", "Limitation", "Responsibility"},
	Uranus:  {"Innovation", "Breakthroughs", "Freedom"},
	Neptune: {"Spirituality", "Dreams", "Inspiration"},
	Pluto:   {"Transformation", "Power", "Rebirth"},
}

// AspectMeanings summarizes each aspect.
var AspectMeanings = map[Aspect]string{
	Conjunction: "Blending of energies",
	Sextile:     "Opportunity and harmony",
	Square:      "Tension and growth",
	Trine:       "Flow and ease",
	Opposition:  "Balance and awareness",
}

var planetPrompts = map[Planet]string{
	Sun:     "How is your sense of self or purpose evolving?",
	Moon:    "What emotions are you experiencing more strongly?",
	Mercury: "How are your communication patterns changing?",
	Venus:   "What relationship dynamics are you noticing?",
	Mars:    "Where are you directing your energy and action?",
	Jupiter: "What opportunities for growth are appearing?",
	Saturn:  "What structures or limitations are you confronting?",
	Uranus:  "What unexpected changes are happening?",
	Neptune: "How is your spiritual awareness shifting?",
	Pluto:   "What deeper transformations are occurring?",
}

// MoodOptions are the predefined moods offered when writing an entry.
var MoodOptions = []string{
	"Reflective",
	"Energized",
	"Challenged",
	"Inspired",
	"Frustrated",
	"Peaceful",
	"Confused",
	"Determined",
	"Anxious",
	"Creative",
	"Balanced",
	"Uncertain",
}

// TransitKeywords builds a "Focus on: ..." line for the bodies involved.
func TransitKeywords(a, b Planet, aspect Aspect) string {
	msg := "Focus on: " + strings.Join(PlanetKeywords[a], ", ")

	if kw := PlanetKeywords[b]; len(kw) > 0 {
		msg += " and " + strings.Join(kw, ", ")
		if meaning := AspectMeanings[aspect]; meaning != "" {
			msg += " (" + meaning + ")"
		}
	}

	return msg
}

// JournalPrompts suggests questions to write about.
func JournalPrompts(a, b Planet) []string {
	var prompts []string
	if p, ok := planetPrompts[a]; ok {
		prompts = append(prompts, p)
	}
	if b != "" {
		prompts = append(prompts, fmt.Sprintf("How are the themes of %s and %s interacting in your life?", a, b))
	}
	return prompts
}

// TypePrompts suggests questions for a TransitType key. Unparseable keys get none.
func TypePrompts(transitTypeID string) []string {
	info, ok := ParseTransitTypeID(transitTypeID)
	if !ok {
		return nil
	}
	return JournalPrompts(info.PlanetA, info.PlanetB)
}

// SuggestedTags derives tags from a TransitType key: the planets involved,
// the aspect, and retrograde/ingress markers.
func SuggestedTags(transitTypeID string) []string {
	if transitTypeID == "" {
		return nil
	}

	var tags []string
	if info, ok := ParseTransitTypeID(transitTypeID); ok {
		tags = append(tags, strings.ToLower(string(info.PlanetA)))
		if info.IsAspect() {
			tags = append(tags, strings.ToLower(string(info.PlanetB)), strings.ToLower(string(info.Aspect)))
		}
	} else {
		// Subtype keys such as MERCURY_RETROGRADE name a single body.
		for _, part := range strings.Split(transitTypeID, typeIDSeparator) {
			if p, err := ParsePlanet(part); err == nil {
				tags = append(tags, strings.ToLower(string(p)))
			}
		}
	}

	upper := strings.ToUpper(transitTypeID)
	for _, marker := range []TransitSubtype{SubtypeRetrograde, SubtypeIngress} {
		if strings.Contains(upper, strings.ToUpper(string(marker))) {
			tags = append(tags, strings.ToLower(string(marker)))
		}
	}

	return NormalizeTags(tags)
}
