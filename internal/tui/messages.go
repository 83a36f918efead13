package tui

import (
	"github.com/Veraticus/transit-journal/internal/engine"
	"github.com/Veraticus/transit-journal/internal/model"
	"github.com/Veraticus/transit-journal/internal/viewstate"
)

// Fetch results carry the token they were requested with so that a result
// for a selection the user has already left can be dropped.
type windowLoadedMsg struct {
	err   error
	snap  *engine.Snapshot
	token viewstate.Token
}

type dayLoadedMsg struct {
	err    error
	detail *engine.DayDetail
	token  viewstate.Token
}

type entrySavedMsg struct {
	err   error
	snap  *engine.Snapshot
	entry *model.JournalEntry
	token viewstate.Token
}
