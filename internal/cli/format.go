package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/Veraticus/transit-journal/internal/calendar"
	"github.com/Veraticus/transit-journal/internal/dates"
	"github.com/Veraticus/transit-journal/internal/engine"
	"github.com/Veraticus/transit-journal/internal/model"
)

var weekdayHeaders = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// TransitName renders "Mars Square Sun" or "Venus in Pisces".
func TransitName(t model.Transit) string {
	if t.IsAspect() {
		return fmt.Sprintf("%s %s %s", t.PlanetA.Name(), t.Aspect, t.PlanetB.Name())
	}
	return fmt.Sprintf("%s in %s", t.PlanetA.Name(), t.Sign.OrDefault())
}

// TransitGlyphs renders "♂ □ ☉" or "♀ ♓".
func TransitGlyphs(t model.Transit) string {
	if t.IsAspect() {
		return fmt.Sprintf("%s %s %s", t.PlanetA.Symbol(), t.Aspect.Symbol(), t.PlanetB.Symbol())
	}
	return fmt.Sprintf("%s %s", t.PlanetA.Symbol(), t.Sign.OrDefault().Symbol())
}

// TransitLine renders one transit for a list, marking it when exact on day.
func TransitLine(t model.Transit, day time.Time) string {
	var b strings.Builder
	b.WriteString(TransitGlyphs(t))
	b.WriteString("  ")
	b.WriteString(IntensityStyle(t.IntensityLevel()).Render(TransitName(t)))

	if calendar.IsExactOn(t, day) {
		b.WriteString(" " + ExactStyle.Render(ExactIcon+" exact"))
	}
	if t.Intensity != nil {
		fmt.Fprintf(&b, " %s", SubtleStyle.Render(fmt.Sprintf("%.0f%%", *t.Intensity)))
	}
	if t.Timing != "" {
		fmt.Fprintf(&b, " %s", SubtleStyle.Render(t.Timing.Label()))
	}
	return b.String()
}

// RenderWindow renders a loaded window: a day list for weeks, a grid for months.
func RenderWindow(snap *engine.Snapshot) string {
	if snap.Window.Granularity() == calendar.Month {
		return RenderMonth(snap)
	}
	return RenderWeek(snap)
}

// RenderWeek lists each day of the window with its most important transits.
func RenderWeek(snap *engine.Snapshot) string {
	var b strings.Builder
	b.WriteString(FormatTitle(snap.Window.Title()))
	b.WriteString("\n")

	for _, cell := range snap.Cells() {
		header := fmt.Sprintf("%s %s", cell.Date.Format("Mon"), dates.FormatShort(cell.Date))
		if cell.IsToday {
			header = BoldStyle.Render(header + " (today)")
		}
		b.WriteString(header)
		if ind := cell.Indicators; ind.HasJournalEntry {
			fmt.Fprintf(&b, "  %s", InfoStyle.Render(fmt.Sprintf("%s %d", JournalIcon, ind.JournalEntryCount)))
		}
		b.WriteString("\n")

		if len(cell.Shown) == 0 {
			b.WriteString("  " + SubtleStyle.Render("No transits") + "\n")
		}
		for _, t := range cell.Shown {
			b.WriteString("  " + TransitLine(t, cell.Date) + "\n")
		}
		if cell.Indicators.Overflow > 0 {
			b.WriteString("  " + SubtleStyle.Render(fmt.Sprintf("+%d more", cell.Indicators.Overflow)) + "\n")
		}
	}

	b.WriteString(windowFooter(snap))
	return b.String()
}

// RenderMonth renders a Monday-first month grid.
func RenderMonth(snap *engine.Snapshot) string {
	cells := snap.Cells()
	if len(cells) == 0 {
		return ""
	}

	header := make([]string, 0, len(weekdayHeaders))
	for _, h := range weekdayHeaders {
		header = append(header, TableHeaderStyle.Width(CellStyle.GetWidth()+2).Render(h))
	}

	rows := []string{lipgloss.JoinHorizontal(lipgloss.Top, header...)}
	lead := (int(cells[0].Date.Weekday()) + 6) % 7

	var row []string
	for i := 0; i < lead; i++ {
		row = append(row, CellStyle.Render(""))
	}
	for _, cell := range cells {
		row = append(row, renderCell(cell))
		if len(row) == 7 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}

	return FormatTitle(snap.Window.Title()) + "\n" +
		lipgloss.JoinVertical(lipgloss.Left, rows...) + "\n" +
		windowFooter(snap)
}

// CellSummary is the short indicator line of a calendar cell, e.g. "••• +2 ★ ✎1".
func CellSummary(ind calendar.DayIndicators) string {
	parts := make([]string, 0, 4)
	if ind.DotCount > 0 {
		parts = append(parts, strings.Repeat(DotIcon, ind.DotCount))
	}
	if ind.Overflow > 0 {
		parts = append(parts, fmt.Sprintf("+%d", ind.Overflow))
	}
	if ind.HasExactToday {
		parts = append(parts, ExactIcon)
	}
	if ind.HasJournalEntry {
		parts = append(parts, fmt.Sprintf("%s%d", JournalIcon, ind.JournalEntryCount))
	}
	return strings.Join(parts, " ")
}

func renderCell(cell engine.DayCell) string {
	style := CellStyle
	if cell.IsToday {
		style = TodayCellStyle
	}

	lines := []string{BoldStyle.Render(fmt.Sprintf("%d", cell.Date.Day())), CellSummary(cell.Indicators)}
	for _, t := range cell.Shown {
		lines = append(lines, TransitGlyphs(t))
	}
	return style.Render(strings.Join(lines, "\n"))
}

func windowFooter(snap *engine.Snapshot) string {
	footer := SubtleStyle.Render(engine.Describe(snap))
	if len(snap.FailedDays) > 0 {
		footer += "\n" + FormatWarning(fmt.Sprintf("Journal entries unavailable for %s", strings.Join(snap.FailedDays, ", ")))
	}
	return footer + "\n"
}

// RenderDay renders the detail view of one day. aspectFilter narrows the
// aspect list; calendar.AllAspects keeps all.
func RenderDay(detail *engine.DayDetail, aspectFilter string, now time.Time) string {
	var b strings.Builder
	b.WriteString(FormatTitle(detail.Day.Format("Monday, January 2, 2006")))
	b.WriteString("\n")

	if detail.Notice != "" {
		b.WriteString(FormatWarning(detail.Notice) + "\n\n")
	}

	if len(detail.Positions) > 0 {
		b.WriteString(BoldStyle.Render("Planets") + "\n")
		for _, pos := range detail.Positions {
			b.WriteString("  " + PositionLine(pos, detail.Badges(pos), now) + "\n")
		}
		b.WriteString("\n")
	}

	aspects := detail.Aspects(aspectFilter)
	heading := "Aspects"
	if aspectFilter != "" && !strings.EqualFold(aspectFilter, calendar.AllAspects) {
		heading = fmt.Sprintf("Aspects (%s)", aspectFilter)
	}
	b.WriteString(BoldStyle.Render(heading) + "\n")
	if len(aspects) == 0 {
		b.WriteString("  " + SubtleStyle.Render("No aspects") + "\n")
	}
	for _, t := range aspects {
		b.WriteString("  " + TransitLine(t, detail.Day))
		if n := detail.Counts[t.TypeID()]; n > 0 {
			fmt.Fprintf(&b, " %s", InfoStyle.Render(fmt.Sprintf("%s %d", JournalIcon, n)))
		}
		b.WriteString("\n")
		fmt.Fprintf(&b, "    %s\n", SubtleStyle.Render(progressLine(t, now)))
	}

	if types := calendar.AspectTypes(detail.Transits); len(types) > 1 {
		names := make([]string, 0, len(types))
		for _, a := range types {
			names = append(names, string(a))
		}
		b.WriteString(SubtleStyle.Render("Filter by: "+strings.Join(names, ", ")) + "\n")
	}

	b.WriteString("\n" + BoldStyle.Render("Journal") + "\n")
	b.WriteString(RenderEntries(detail.Entries, now))
	return b.String()
}

func progressLine(t model.Transit, now time.Time) string {
	line := fmt.Sprintf("%s  %.0f%% through", dates.FormatRange(t.StartDate, t.EndDate), calendar.Progress(t, now))
	switch days := calendar.DaysUntilExact(t, now); {
	case t.ExactDate.IsZero():
	case days > 0:
		line += fmt.Sprintf(", exact in %d %s", days, plural(days, "day"))
	case days < 0:
		line += fmt.Sprintf(", exact %d %s ago", -days, plural(-days, "day"))
	default:
		line += ", exact today"
	}
	return line
}

// PositionLine renders "☉ Sun  Aries 12°  4th house  ✎ 2/1".
func PositionLine(pos model.PlanetPosition, badges calendar.BadgeCounts, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %-8s %s %s %.0f°", pos.Planet.Symbol(), pos.Planet.Name(),
		pos.Sign.Name.OrDefault().Symbol(), pos.Sign.Name.OrDefault(), pos.Sign.DegreeInSign)

	if pos.House != nil && pos.House.Number > 0 {
		fmt.Fprintf(&b, "  %d%s house", pos.House.Number, model.OrdinalSuffix(pos.House.Number))
	}
	if pos.Retrograde.IsRetrograde {
		direct, estimated := calendar.DirectDate(pos, now)
		label := "direct " + dates.FormatShort(direct)
		if estimated {
			label += " (est.)"
		}
		b.WriteString("  " + WarningStyle.Render(RetroIcon+" "+label))
	}
	if badges.Position > 0 || badges.Aspects > 0 {
		b.WriteString("  " + InfoStyle.Render(fmt.Sprintf("%s %d/%d", JournalIcon, badges.Position, badges.Aspects)))
	}
	return b.String()
}

// RenderPlanet renders a planet's placement, aspects and related entries.
func RenderPlanet(detail *engine.PlanetDetail, day, now time.Time) string {
	pos := detail.Position

	var b strings.Builder
	b.WriteString(FormatTitle(fmt.Sprintf("%s %s on %s", pos.Planet.Symbol(), pos.Planet.Name(), dates.FormatShort(day))))
	b.WriteString("\n")
	b.WriteString(PositionLine(*pos, calendar.BadgeCounts{}, now) + "\n")

	if pos.Sign.Ruler != "" || pos.Sign.Element != "" {
		fmt.Fprintf(&b, "%s\n", SubtleStyle.Render(fmt.Sprintf("Ruler %s, %s, %.0f%% through the sign",
			pos.Sign.Ruler.Name(), pos.Sign.Element, pos.Sign.PercentInSign)))
	}
	if pos.SignDuration != nil {
		fmt.Fprintf(&b, "%s\n", SubtleStyle.Render("In "+string(pos.Sign.Name.OrDefault())+" "+
			dates.FormatRange(pos.SignDuration.EntryDate, pos.SignDuration.ExitDate)))
	}
	if kw := model.PlanetKeywords[pos.Planet]; len(kw) > 0 {
		fmt.Fprintf(&b, "%s\n", SubtleStyle.Render("Themes: "+strings.Join(kw, ", ")))
	}
	if detail.Estimated {
		b.WriteString(SubtleStyle.Render("Direct date is estimated from the typical retrograde length.") + "\n")
	}

	b.WriteString("\n" + BoldStyle.Render("Aspects") + "\n")
	if len(detail.Aspects) == 0 {
		b.WriteString("  " + SubtleStyle.Render("No aspects") + "\n")
	}
	for _, t := range detail.Aspects {
		b.WriteString("  " + TransitLine(t, day) + "\n")
	}

	fmt.Fprintf(&b, "\n%s\n", BoldStyle.Render("Journal for "+pos.Title()))
	b.WriteString(RenderEntries(detail.Entries, now))
	return b.String()
}

// RenderEntries lists journal entries with relative timestamps.
func RenderEntries(entries []model.JournalEntry, now time.Time) string {
	if len(entries) == 0 {
		return "  " + SubtleStyle.Render("No journal entries yet") + "\n"
	}

	var b strings.Builder
	for _, e := range entries {
		meta := []string{EntryAge(e.CreatedAt, now)}
		if e.Mood != "" {
			meta = append(meta, e.Mood)
		}
		if e.TransitTypeID != "" {
			meta = append(meta, e.TransitTypeID)
		}
		fmt.Fprintf(&b, "  %s %s\n", JournalIcon, SubtleStyle.Render(strings.Join(meta, " · ")))
		for _, line := range strings.Split(strings.TrimSpace(e.Content), "\n") {
			fmt.Fprintf(&b, "    %s\n", line)
		}
		if len(e.Tags) > 0 {
			fmt.Fprintf(&b, "    %s\n", InfoStyle.Render("#"+strings.Join(e.Tags, " #")))
		}
		if e.ID != "" {
			fmt.Fprintf(&b, "    %s\n", SubtleStyle.Render("id "+e.ID))
		}
	}
	return b.String()
}

// EntryAge renders a timestamp relative to now, e.g. "3 days ago".
func EntryAge(t, now time.Time) string {
	if t.IsZero() {
		return dates.UnknownDate
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
