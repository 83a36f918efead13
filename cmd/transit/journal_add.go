package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/transit-journal/internal/cli"
	"github.com/Veraticus/transit-journal/internal/model"
	"github.com/Veraticus/transit-journal/internal/tui"
)

var errNothingToJournal = errors.New("no transits on this day to journal about")

type addOptions struct {
	transitID string
	typeID    string
	content   string
	mood      string
	tags      string
}

func journalAddCmd() *cobra.Command {
	var opts addOptions

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Write a journal entry about a transit",
		Long: `Write a journal entry about one of the transits of --date.

Without --content an interactive form asks for the transit, text, mood and
tags. With --content the entry is saved directly; pass --transit-type when
the day has more than one transit.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			day, err := dateFlag(cmd)
			if err != nil {
				return err
			}
			svc, err := initServices()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			targets := explicitTargets(opts)
			if targets == nil {
				detail, err := svc.engine.LoadDay(ctx, day, nil)
				if err != nil {
					return err
				}
				targets = tui.JournalTargets(detail)
			}

			var req model.CreateJournalEntryRequest
			if opts.content != "" {
				req, err = directRequest(opts, targets)
			} else {
				req, err = formRequest(cmd, targets)
			}
			if err != nil {
				return err
			}

			entry, err := svc.client.CreateEntry(ctx, req)
			if err != nil {
				return err
			}

			msg := fmt.Sprintf("Saved entry %s for %s", entry.ID, entry.TransitTypeID)
			if len(entry.Tags) > 0 {
				msg += " #" + strings.Join(entry.Tags, " #")
			}
			return printOut(cmd.OutOrStdout(), cli.FormatSuccess(msg))
		},
	}

	addDateFlag(cmd)
	cmd.Flags().StringVar(&opts.content, "content", "", "entry text; skips the form")
	cmd.Flags().StringVar(&opts.typeID, "transit-type", "", "transit type ID, e.g. MARS_Square_SUN or VENUS_IN_Pisces")
	cmd.Flags().StringVar(&opts.transitID, "transit", "", "transit instance ID (with --transit-type)")
	cmd.Flags().StringVar(&opts.mood, "mood", "", "mood: "+strings.Join(model.MoodOptions, ", "))
	cmd.Flags().StringVar(&opts.tags, "tags", "", "comma-separated tags (default: suggested from the transit)")

	return cmd
}

// explicitTargets returns the target named by --transit-type, or nil.
func explicitTargets(opts addOptions) []tui.JournalTarget {
	if opts.typeID == "" {
		return nil
	}
	target := tui.JournalTarget{
		Label:     opts.typeID,
		TransitID: opts.transitID,
		TypeID:    opts.typeID,
		Prompt:    strings.Join(model.TypePrompts(opts.typeID), " "),
	}
	if target.TransitID == "" {
		target.TransitID = model.NewPlaceholderTransitID()
	}
	return []tui.JournalTarget{target}
}

// directRequest builds a request from flags. The day must have exactly one
// target unless --transit-type picked it.
func directRequest(opts addOptions, targets []tui.JournalTarget) (model.CreateJournalEntryRequest, error) {
	switch len(targets) {
	case 0:
		return model.CreateJournalEntryRequest{}, errNothingToJournal
	case 1:
	default:
		return model.CreateJournalEntryRequest{}, fmt.Errorf("%d transits on this day; choose one with --transit-type", len(targets))
	}

	draft := tui.JournalDraft{Content: opts.content, Mood: opts.mood, Tags: opts.tags}
	return draft.Request(targets)
}

func formRequest(cmd *cobra.Command, targets []tui.JournalTarget) (model.CreateJournalEntryRequest, error) {
	if len(targets) == 0 {
		return model.CreateJournalEntryRequest{}, errNothingToJournal
	}

	draft := &tui.JournalDraft{}
	if err := tui.NewJournalForm(draft, targets).RunWithContext(cmd.Context()); err != nil {
		return model.CreateJournalEntryRequest{}, fmt.Errorf("journal form: %w", err)
	}
	return draft.Request(targets)
}
