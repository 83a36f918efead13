package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/transit-journal/internal/calendar"
	"github.com/Veraticus/transit-journal/internal/cli"
	"github.com/Veraticus/transit-journal/internal/dates"
	"github.com/Veraticus/transit-journal/internal/model"
	"github.com/Veraticus/transit-journal/internal/viewstate"
)

func weekCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "week",
		Short: "Show the transits of a week",
		Long: `Show the Monday-to-Sunday week containing --date. Each day lists its most
important transits, exact aspects and how many journal entries were written.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWindow(cmd, calendar.Week)
		},
	}
	addDateFlag(cmd)
	return cmd
}

func monthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "month",
		Short: "Show the transits of a month",
		Long:  `Show a month grid of transit activity for the month containing --date.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWindow(cmd, calendar.Month)
		},
	}
	addDateFlag(cmd)
	return cmd
}

func runWindow(cmd *cobra.Command, g calendar.Granularity) error {
	day, err := dateFlag(cmd)
	if err != nil {
		return err
	}
	svc, err := initServices()
	if err != nil {
		return err
	}

	snap, err := svc.engine.LoadWindow(cmd.Context(), calendar.NewWindow(day, g))
	if err != nil {
		return err
	}
	return printOut(cmd.OutOrStdout(), cli.RenderWindow(snap))
}

func dayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "day",
		Short: "Show planet positions and aspects for a day",
		Long: `Show every planet's sign, house and retrograde outlook for --date, followed
by the aspects active that day and the journal entries written about it.`,
		RunE: runDay,
	}
	addDateFlag(cmd)
	cmd.Flags().String("aspect", calendar.AllAspects, "only show aspects of this type (all, conjunction, square, ...)")
	cmd.Flags().String("planet", "all", "only show this planet's position and aspects (all, sun, moon, ...)")
	cmd.Flags().Bool("detail", false, "list the journal entries of each aspect")
	return cmd
}

func runDay(cmd *cobra.Command, _ []string) error {
	day, err := dateFlag(cmd)
	if err != nil {
		return err
	}

	// The store validates and canonicalizes the filter value.
	state := viewstate.New(day, calendar.Week)
	filter, _ := cmd.Flags().GetString("aspect")
	if err := state.SetAspectFilter(filter); err != nil {
		return err
	}
	planet, _ := cmd.Flags().GetString("planet")
	if err := state.SetPlanetFilter(planet); err != nil {
		return err
	}
	showDetail, _ := cmd.Flags().GetBool("detail")

	svc, err := initServices()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	detail, err := svc.engine.LoadDay(ctx, day, nil)
	if err != nil {
		// Retry with the day's transit list so positions degrade instead of failing.
		transits, terr := svc.client.Transits(ctx, day, dates.EndOfDay(day))
		if terr != nil {
			return err
		}
		if detail, err = svc.engine.LoadDay(ctx, day, transits); err != nil {
			return err
		}
	}

	detail = detail.ForPlanet(state.PlanetFilter())

	out := cmd.OutOrStdout()
	if err := printOut(out, cli.RenderDay(detail, state.AspectFilter(), time.Now())); err != nil {
		return err
	}
	if !showDetail {
		return nil
	}

	for _, t := range detail.Aspects(state.AspectFilter()) {
		entries, err := svc.engine.TransitEntries(ctx, t)
		if err != nil {
			return err
		}
		section := cli.FormatTitle(cli.TransitName(t)) + "\n" + cli.RenderEntries(entries, time.Now())
		if err := printOut(out, section); err != nil {
			return err
		}
	}
	return nil
}

func planetCmd() *cobra.Command {
	names := make([]string, 0, len(model.Planets))
	for _, p := range model.Planets {
		names = append(names, strings.ToLower(string(p)))
	}

	cmd := &cobra.Command{
		Use:       "planet <name>",
		Short:     "Show one planet's placement",
		Long:      fmt.Sprintf("Show a planet's sign, house, retrograde outlook and aspects.\n\nPlanets: %s", strings.Join(names, ", ")),
		Args:      cobra.ExactArgs(1),
		ValidArgs: names,
		RunE: func(cmd *cobra.Command, args []string) error {
			planet, err := model.ParsePlanet(args[0])
			if err != nil {
				return err
			}
			day, err := dateFlag(cmd)
			if err != nil {
				return err
			}
			svc, err := initServices()
			if err != nil {
				return err
			}

			detail, err := svc.engine.LoadPlanet(cmd.Context(), planet, day)
			if err != nil {
				return err
			}
			return printOut(cmd.OutOrStdout(), cli.RenderPlanet(detail, day, time.Now()))
		},
	}
	addDateFlag(cmd)
	return cmd
}
