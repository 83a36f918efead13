package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/transit-journal/internal/calendar"
	"github.com/Veraticus/transit-journal/internal/engine"
	"github.com/Veraticus/transit-journal/internal/model"
	"github.com/Veraticus/transit-journal/internal/viewstate"
)

// loadWindow fetches the transits and journal entries of w.
func (m Model) loadWindow(tok viewstate.Token, w calendar.Window) tea.Cmd {
	ctx, eng, timeout := m.ctx, m.engine, m.config.RequestTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		snap, err := eng.LoadWindow(ctx, w)
		return windowLoadedMsg{token: tok, snap: snap, err: err}
	}
}

// loadDay fetches the detail of day. windowTransits is the fallback used
// when the daily snapshot is unavailable.
func (m Model) loadDay(tok viewstate.Token, day time.Time, windowTransits []model.Transit) tea.Cmd {
	ctx, eng, timeout := m.ctx, m.engine, m.config.RequestTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		detail, err := eng.LoadDay(ctx, day, windowTransits)
		return dayLoadedMsg{token: tok, detail: detail, err: err}
	}
}

// saveEntry creates an entry and returns the snapshot with day's entries refreshed.
func (m Model) saveEntry(tok viewstate.Token, snap *engine.Snapshot, day time.Time, req model.CreateJournalEntryRequest) tea.Cmd {
	ctx, eng, timeout := m.ctx, m.engine, m.config.RequestTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		next, entry, err := eng.CreateEntry(ctx, snap, day, req)
		return entrySavedMsg{token: tok, snap: next, entry: entry, err: err}
	}
}
