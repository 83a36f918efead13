package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/Veraticus/transit-journal/internal/api"
	"github.com/Veraticus/transit-journal/internal/cli"
	"github.com/Veraticus/transit-journal/internal/model"
)

func journalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Write and browse journal entries",
		Long:  `Write journal entries about transits and browse the ones you have written.`,
	}

	cmd.AddCommand(journalAddCmd())
	cmd.AddCommand(journalListCmd())
	cmd.AddCommand(journalRecentCmd())
	cmd.AddCommand(journalTagCmd())
	cmd.AddCommand(journalSearchCmd())
	cmd.AddCommand(journalEditCmd())
	cmd.AddCommand(journalDeleteCmd())

	return cmd
}

func journalListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List entries for a day, transit or transit type",
		Long: `List journal entries. With --transit, entries for one transit instance;
with --type, entries for a transit type such as MARS_Square_SUN or
VENUS_IN_Pisces; otherwise entries written about --date.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			transitID, _ := cmd.Flags().GetString("transit")
			typeID, _ := cmd.Flags().GetString("type")
			if transitID != "" && typeID != "" {
				return errors.New("use either --transit or --type, not both")
			}

			svc, err := initServices()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			var entries []model.JournalEntry
			switch {
			case transitID != "":
				entries, err = svc.client.EntriesForTransit(ctx, transitID)
			case typeID != "":
				entries, err = svc.client.EntriesForTransitType(ctx, typeID)
			default:
				day, derr := dateFlag(cmd)
				if derr != nil {
					return derr
				}
				entries, err = svc.client.EntriesForDate(ctx, day)
			}
			if err != nil {
				return err
			}
			return printOut(cmd.OutOrStdout(), cli.RenderEntries(entries, time.Now()))
		},
	}
	addDateFlag(cmd)
	cmd.Flags().String("transit", "", "transit instance ID")
	cmd.Flags().String("type", "", "transit type ID")
	return cmd
}

func journalRecentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recent",
		Short: "Show the newest entries",
		RunE: func(cmd *cobra.Command, _ []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			svc, err := initServices()
			if err != nil {
				return err
			}
			entries, err := svc.client.RecentEntries(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return printOut(cmd.OutOrStdout(), cli.RenderEntries(entries, time.Now()))
		},
	}
	cmd.Flags().Int("limit", api.DefaultRecentLimit, "maximum number of entries")
	return cmd
}

func journalTagCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag <tag>",
		Short: "Show entries with a tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			svc, err := initServices()
			if err != nil {
				return err
			}
			entries, err := svc.client.EntriesByTag(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}
			return printOut(cmd.OutOrStdout(), cli.RenderEntries(entries, time.Now()))
		},
	}
	cmd.Flags().Int("limit", 20, "maximum number of entries")
	return cmd
}

func journalSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search entry text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			svc, err := initServices()
			if err != nil {
				return err
			}
			entries, err := svc.client.SearchEntries(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}
			return printOut(cmd.OutOrStdout(), cli.RenderEntries(entries, time.Now()))
		},
	}
	cmd.Flags().Int("limit", 20, "maximum number of entries")
	return cmd
}

func journalEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change an entry's content, mood or tags",
		Long:  `Change an entry. Only the flags you pass are updated.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := updateRequest(cmd)
			if err != nil {
				return err
			}

			svc, err := initServices()
			if err != nil {
				return err
			}
			entry, err := svc.client.UpdateEntry(cmd.Context(), args[0], req)
			if err != nil {
				return err
			}

			return printOut(cmd.OutOrStdout(), cli.FormatSuccess("Updated entry "+entry.ID))
		},
	}
	cmd.Flags().String("content", "", "new entry text")
	cmd.Flags().String("mood", "", "new mood (empty clears it)")
	cmd.Flags().String("tags", "", "comma-separated tags, replacing the old ones")
	return cmd
}

// updateRequest builds an update from the flags that were set.
func updateRequest(cmd *cobra.Command) (model.UpdateJournalEntryRequest, error) {
	var req model.UpdateJournalEntryRequest
	flags := cmd.Flags()

	if flags.Changed("content") {
		content, _ := flags.GetString("content")
		req.Content = &content
	}
	if flags.Changed("mood") {
		mood, _ := flags.GetString("mood")
		req.Mood = &mood
	}
	if flags.Changed("tags") {
		tags, _ := flags.GetString("tags")
		req.Tags = model.SplitTags(tags)
	}

	if err := req.Validate(); err != nil {
		return req, fmt.Errorf("invalid update: %w", err)
	}
	return req, nil
}

func journalDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			yes, _ := cmd.Flags().GetBool("yes")

			if !yes {
				confirmed := false
				form := huh.NewForm(huh.NewGroup(
					huh.NewConfirm().
						Title(fmt.Sprintf("Delete journal entry %s?", id)).
						Description("This cannot be undone.").
						Affirmative("Delete").
						Negative("Keep").
						Value(&confirmed),
				)).WithTheme(huh.ThemeDracula())
				if err := form.RunWithContext(cmd.Context()); err != nil {
					return fmt.Errorf("confirmation failed: %w", err)
				}
				if !confirmed {
					return printOut(cmd.OutOrStdout(), cli.FormatInfo("Kept entry "+id))
				}
			}

			svc, err := initServices()
			if err != nil {
				return err
			}
			if err := svc.client.DeleteEntry(cmd.Context(), id); err != nil {
				return err
			}
			return printOut(cmd.OutOrStdout(), cli.FormatSuccess("Deleted entry "+id))
		},
	}
	cmd.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")
	return cmd
}
