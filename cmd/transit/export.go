package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/transit-journal/internal/calendar"
	"github.com/Veraticus/transit-journal/internal/cli"
	"github.com/Veraticus/transit-journal/internal/dates"
	"github.com/Veraticus/transit-journal/internal/engine"
)

// monthDigest is the exported summary of one month.
type monthDigest struct {
	Month      string         `json:"month"`
	ExportedAt time.Time      `json:"exportedAt"`
	Days       []dayDigest    `json:"days"`
	TypeCounts map[string]int `json:"journalCountsByType"`
	FailedDays []string       `json:"failedDays,omitempty"`
}

type dayDigest struct {
	Date         string           `json:"date"`
	Transits     []transitDigest  `json:"transits"`
	Overflow     int              `json:"overflow,omitempty"`
	HasExact     bool             `json:"hasExact"`
	JournalCount int              `json:"journalCount"`
	Entries      []entryReference `json:"entries,omitempty"`
}

type transitDigest struct {
	TypeID    string   `json:"transitTypeId"`
	Name      string   `json:"name"`
	Glyphs    string   `json:"glyphs"`
	Exact     string   `json:"exactDate,omitempty"`
	Intensity *float64 `json:"intensity,omitempty"`
}

type entryReference struct {
	ID            string `json:"id"`
	TransitTypeID string `json:"transitTypeId"`
}

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a month of transits and journal counts as JSON",
		Long: `Fetch a month's transits and every day's journal entries, then write a
JSON digest of each day: its most important transits, whether an aspect is
exact and which entries were written.`,
		RunE: runExport,
	}
	cmd.Flags().String("month", "", "month to export, yyyy-MM (default: this month)")
	cmd.Flags().StringP("out", "o", "", "output file (default: transits-<month>.json)")
	return cmd
}

func runExport(cmd *cobra.Command, _ []string) error {
	monthValue, _ := cmd.Flags().GetString("month")
	month, err := parseMonth(monthValue, time.Now())
	if err != nil {
		return err
	}
	window := calendar.NewWindow(month, calendar.Month)

	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		out = fmt.Sprintf("transits-%s.json", window.First().Format("2006-01"))
	}

	svc, err := initServices()
	if err != nil {
		return err
	}

	interrupts := cli.NewInterruptHandler(cmd.ErrOrStderr())
	ctx := interrupts.HandleInterrupts(cmd.Context(), "Export", "Nothing was written.")
	defer interrupts.Stop()

	progress := cli.NewDayProgress(cmd.ErrOrStderr(), window.Len(), "Fetching journal entries...")
	snap, err := svc.engine.LoadWindow(ctx, window, engine.WithDayProgress(progress.Done))
	progress.Finish()
	if err != nil {
		if interrupts.WasInterrupted() {
			return nil
		}
		return err
	}

	data, err := json.MarshalIndent(buildDigest(snap, time.Now()), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode digest: %w", err)
	}
	if err := os.WriteFile(out, append(data, '\n'), 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}

	summary := fmt.Sprintf("  • %s\n  • Written to %s", engine.Describe(snap), out)
	if len(snap.FailedDays) > 0 {
		summary += "\n" + cli.FormatWarning(fmt.Sprintf("%d days without journal entries: %s",
			len(snap.FailedDays), strings.Join(snap.FailedDays, ", ")))
	}
	return printOut(cmd.OutOrStdout(), cli.RenderBox("Export complete", summary))
}

// buildDigest summarizes every cell of snap.
func buildDigest(snap *engine.Snapshot, now time.Time) monthDigest {
	digest := monthDigest{
		Month:      snap.Window.First().Format("2006-01"),
		ExportedAt: now.UTC(),
		TypeCounts: snap.TypeCounts(),
		FailedDays: snap.FailedDays,
	}

	for _, cell := range snap.Cells() {
		day := dayDigest{
			Date:         cell.Key,
			Transits:     make([]transitDigest, 0, len(cell.Shown)),
			Overflow:     cell.Indicators.Overflow,
			HasExact:     cell.Indicators.HasExactToday,
			JournalCount: cell.Indicators.JournalEntryCount,
		}
		for _, t := range cell.Shown {
			td := transitDigest{
				TypeID:    t.TypeID(),
				Name:      cli.TransitName(t),
				Glyphs:    cli.TransitGlyphs(t),
				Intensity: t.Intensity,
			}
			if !t.ExactDate.IsZero() {
				td.Exact = dates.Key(t.ExactDate)
			}
			day.Transits = append(day.Transits, td)
		}
		for _, e := range snap.Entries(cell.Date) {
			day.Entries = append(day.Entries, entryReference{ID: e.ID, TransitTypeID: e.TransitTypeID})
		}
		digest.Days = append(digest.Days, day)
	}
	return digest
}
