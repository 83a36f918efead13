package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/Veraticus/transit-journal/internal/engine"
	"github.com/Veraticus/transit-journal/internal/model"
)

// JournalTarget is something a journal entry can be attached to: an aspect
// instance or a planet's placement.
type JournalTarget struct {
	Label     string
	TransitID string
	TypeID    string
	Prompt    string
}

// JournalTargets lists the day's aspects followed by its planet placements.
// Placements have no transit instance, so they get a placeholder ID.
func JournalTargets(detail *engine.DayDetail) []JournalTarget {
	if detail == nil {
		return nil
	}

	targets := make([]JournalTarget, 0, len(detail.Transits)+len(detail.Positions))
	for _, t := range detail.Aspects("") {
		targets = append(targets, TargetForTransit(t))
	}
	for _, pos := range detail.Positions {
		targets = append(targets, JournalTarget{
			Label:     fmt.Sprintf("%s %s in %s", pos.Planet.Symbol(), pos.Planet.Name(), pos.Sign.Name.OrDefault()),
			TransitID: model.NewPlaceholderTransitID(),
			TypeID:    pos.TypeID(),
			Prompt:    strings.Join(model.TypePrompts(pos.TypeID()), " "),
		})
	}
	return targets
}

// TargetForTransit builds the target for one transit.
func TargetForTransit(t model.Transit) JournalTarget {
	target := JournalTarget{TransitID: t.ID, TypeID: t.TypeID()}
	if t.IsAspect() {
		target.Label = fmt.Sprintf("%s %s %s  %s %s %s",
			t.PlanetA.Symbol(), t.Aspect.Symbol(), t.PlanetB.Symbol(),
			t.PlanetA.Name(), t.Aspect, t.PlanetB.Name())
		target.Prompt = model.TransitKeywords(t.PlanetA, t.PlanetB, t.Aspect)
	} else {
		target.Label = fmt.Sprintf("%s %s in %s", t.PlanetA.Symbol(), t.PlanetA.Name(), t.Sign.OrDefault())
		target.Prompt = strings.Join(model.TypePrompts(t.TypeID()), " ")
	}
	if target.TransitID == "" {
		target.TransitID = model.NewPlaceholderTransitID()
	}
	return target
}

// JournalDraft holds the values edited by the journal form.
type JournalDraft struct {
	Content string
	Mood    string
	Tags    string
	Target  int
}

// NewJournalForm builds the entry form over draft. The target select is
// skipped when there is only one target.
func NewJournalForm(draft *JournalDraft, targets []JournalTarget) *huh.Form {
	var fields []huh.Field

	if len(targets) > 1 {
		options := make([]huh.Option[int], 0, len(targets))
		for i, t := range targets {
			options = append(options, huh.NewOption(t.Label, i))
		}
		fields = append(fields, huh.NewSelect[int]().
			Title("Transit").
			Options(options...).
			Value(&draft.Target))
	}

	description := "What are you noticing?"
	if len(targets) == 1 && targets[0].Prompt != "" {
		description = targets[0].Prompt
	}

	moods := append([]huh.Option[string]{huh.NewOption("None", "")}, huh.NewOptions(model.MoodOptions...)...)

	fields = append(fields,
		huh.NewText().
			Title("Entry").
			Description(description).
			Value(&draft.Content).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return model.ErrEmptyContent
				}
				return nil
			}),
		huh.NewSelect[string]().
			Title("Mood").
			Options(moods...).
			Value(&draft.Mood),
		huh.NewInput().
			Title("Tags").
			Description("Comma separated. Leave blank for suggested tags.").
			Value(&draft.Tags),
	)

	return huh.NewForm(huh.NewGroup(fields...)).WithTheme(huh.ThemeDracula())
}

// Request turns a completed draft into a create request.
func (d *JournalDraft) Request(targets []JournalTarget) (model.CreateJournalEntryRequest, error) {
	if d.Target < 0 || d.Target >= len(targets) {
		return model.CreateJournalEntryRequest{}, errors.New("no transit selected")
	}
	target := targets[d.Target]

	tags := model.SplitTags(d.Tags)
	if len(tags) == 0 {
		tags = model.SuggestedTags(target.TypeID)
	}

	req := model.CreateJournalEntryRequest{
		TransitID:     target.TransitID,
		TransitTypeID: target.TypeID,
		Content:       d.Content,
		Mood:          d.Mood,
		Tags:          tags,
	}
	req.Normalize()
	return req, req.Validate()
}
