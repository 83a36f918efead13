package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/transit-journal/internal/calendar"
	"github.com/Veraticus/transit-journal/internal/cli"
	"github.com/Veraticus/transit-journal/internal/dates"
	"github.com/Veraticus/transit-journal/internal/engine"
)

var weekdays = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return m.renderLoading()
	}
	if m.state == StateForm && m.form != nil {
		return m.renderForm()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		m.renderGrid(),
		m.renderPane(),
		m.renderStatusBar(),
		m.help.View(m.keymap),
	)
}

// renderLoading renders the loading screen.
func (m Model) renderLoading() string {
	content := lipgloss.JoinVertical(
		lipgloss.Center,
		m.theme.Title.Render(cli.MoonIcon+" Transit Journal"),
		"",
		m.spinner.View()+" "+m.theme.Subtitle.Render("Loading transits..."),
	)
	if m.status != "" {
		content = lipgloss.JoinVertical(lipgloss.Center, content, "", m.theme.StatusError.Render(m.status))
	}

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) renderForm() string {
	title := m.theme.Title.Render(fmt.Sprintf("%s New entry for %s", cli.JournalIcon, dates.FormatShort(m.cursor)))
	hint := m.theme.Subtitle.Render("Esc to cancel")
	return m.theme.BorderedBox.
		Width(max(m.width-2, 20)).
		Render(lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View(), hint))
}

func (m Model) renderHeader() string {
	w := m.store.Window()
	title := m.theme.Title.Render(cli.MoonIcon + " " + w.Title())
	planet := "all"
	if p := m.store.PlanetFilter(); p != "" {
		planet = p.Name()
	}
	filter := m.theme.Subtitle.Render("aspects: " + m.store.AspectFilter() + "  planets: " + planet)
	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", filter)
}

// loadedCells returns the snapshot's cells when it matches the visible window.
func (m Model) loadedCells() map[string]engine.DayCell {
	if m.snap == nil || m.snap.Window.Key() != m.store.Window().Key() {
		return nil
	}
	cells := make(map[string]engine.DayCell, m.snap.Window.Len())
	for _, c := range m.snap.Cells() {
		cells[c.Key] = c
	}
	return cells
}

func (m Model) cellWidth() int {
	return max((m.width-2)/7-4, 6)
}

// cellLines is the content height of one cell.
func (m Model) cellLines() int {
	if m.store.Window().Granularity() == calendar.Month {
		return 2
	}
	return 2 + m.engineBudget()
}

func (m Model) engineBudget() int {
	if m.engine == nil {
		return calendar.DefaultDisplayBudget
	}
	return m.engine.Config().DisplayBudget
}

func (m Model) gridHeight() int {
	w := m.store.Window()
	rows := 1
	if w.Granularity() == calendar.Month {
		lead := (int(w.First().Weekday()) + 6) % 7
		rows = (lead + w.Len() + 6) / 7
	}
	return 1 + rows*(m.cellLines()+2)
}

func (m Model) renderGrid() string {
	w := m.store.Window()
	cells := m.loadedCells()
	width := m.cellWidth()

	header := make([]string, 0, len(weekdays))
	for _, d := range weekdays {
		header = append(header, m.theme.Bold.Width(width+4).Align(lipgloss.Center).Render(d))
	}
	rows := []string{lipgloss.JoinHorizontal(lipgloss.Top, header...)}

	var row []string
	if w.Granularity() == calendar.Month {
		for i := 0; i < (int(w.First().Weekday())+6)%7; i++ {
			row = append(row, m.theme.OutsideCell.Width(width).Height(m.cellLines()).Render(""))
		}
	}
	for _, day := range w.Days() {
		cell, loaded := cells[dates.Key(day)]
		row = append(row, m.renderCell(day, cell, loaded))
		if len(row) == 7 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderCell(day time.Time, cell engine.DayCell, loaded bool) string {
	style := m.theme.Cell
	switch {
	case day.Equal(m.cursor):
		style = m.theme.CursorCell
	case loaded && cell.IsToday:
		style = m.theme.TodayCell
	}

	number := fmt.Sprintf("%d", day.Day())
	if loaded && cell.IsToday {
		number += " today"
	}
	lines := []string{m.theme.Bold.Render(number)}

	if loaded {
		lines = append(lines, m.renderSummary(cell.Indicators))
		if m.store.Window().Granularity() == calendar.Week {
			for _, t := range cell.Shown {
				lines = append(lines, cli.TransitGlyphs(t))
			}
		}
	}

	return style.Width(m.cellWidth()).Height(m.cellLines()).Render(strings.Join(lines, "\n"))
}

func (m Model) renderSummary(ind calendar.DayIndicators) string {
	parts := make([]string, 0, 4)
	if ind.DotCount > 0 {
		parts = append(parts, strings.Repeat(cli.DotIcon, ind.DotCount))
	}
	if ind.Overflow > 0 {
		parts = append(parts, m.theme.Subtitle.Render(fmt.Sprintf("+%d", ind.Overflow)))
	}
	if ind.HasExactToday {
		parts = append(parts, m.theme.Exact.Render(cli.ExactIcon))
	}
	if ind.HasJournalEntry {
		parts = append(parts, m.theme.Journal.Render(fmt.Sprintf("%s%d", cli.JournalIcon, ind.JournalEntryCount)))
	}
	return strings.Join(parts, " ")
}

func (m Model) renderPane() string {
	var content string
	switch {
	case m.detail == nil && m.loadingDay:
		content = m.spinner.View() + " " + m.theme.Subtitle.Render("Loading "+dates.FormatShort(m.cursor)+"...")
	case m.detail == nil:
		content = m.theme.Subtitle.Render("No details for " + dates.FormatShort(m.cursor))
	default:
		content = m.viewport.View()
	}
	return m.theme.BorderedBox.Width(max(m.width-2, 10)).Render(content)
}

// renderStatusBar renders the bottom status bar.
func (m Model) renderStatusBar() string {
	left := m.theme.StatusInfo.Render(strings.ToUpper(m.store.Window().Granularity().String()))

	var center string
	switch {
	case m.lastError != nil:
		center = m.theme.StatusError.Render(m.status)
	case m.loadingWin || m.loadingDay:
		center = m.spinner.View() + " Loading"
	case m.detail != nil && m.detail.Notice != "":
		center = m.theme.StatusWarning.Render(m.detail.Notice)
	case m.status != "":
		center = m.theme.StatusPending.Render(m.status)
	}

	right := m.theme.Subtitle.Render(dates.FormatShort(m.cursor))

	spacing := max(m.width-lipgloss.Width(left)-lipgloss.Width(center)-lipgloss.Width(right)-2, 2)
	leftPad := spacing / 2

	return " " + left + strings.Repeat(" ", leftPad) + center + strings.Repeat(" ", spacing-leftPad) + right
}
