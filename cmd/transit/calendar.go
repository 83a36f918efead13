package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/transit-journal/internal/calendar"
	"github.com/Veraticus/transit-journal/internal/tui"
	"github.com/Veraticus/transit-journal/internal/tui/themes"
)

func calendarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Browse transits in an interactive calendar",
		Long: `Open the interactive calendar. Move between days with the arrow keys or
h/j/k/l, switch between week and month with m, filter aspects with f and
press a to write a journal entry about the selected day.

Logs are written to ~/.config/transit/transit.log unless logging.file is set.`,
		RunE: runCalendar,
	}
	addDateFlag(cmd)
	cmd.Flags().String("view", "", "week or month (default: calendar.granularity)")
	cmd.Flags().String("theme", "default", "color theme (default, catppuccin-mocha)")
	return cmd
}

func runCalendar(cmd *cobra.Command, _ []string) error {
	day, err := dateFlag(cmd)
	if err != nil {
		return err
	}

	granularity := appConfig.Calendar.Granularity
	if view, _ := cmd.Flags().GetString("view"); view != "" {
		if granularity, err = calendar.ParseGranularity(view); err != nil {
			return err
		}
	}
	themeName, _ := cmd.Flags().GetString("theme")

	svc, err := initServices()
	if err != nil {
		return err
	}

	slog.Info("Starting calendar", "day", day.Format(time.DateOnly), "view", granularity)
	err = tui.Run(cmd.Context(),
		tui.WithEngine(svc.engine),
		tui.WithStart(day, granularity),
		tui.WithTheme(themes.GetTheme(themeName)),
		tui.WithRequestTimeout(appConfig.API.Timeout*time.Duration(appConfig.API.RetryAttempts)),
	)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("calendar: %w", err)
	}
	return nil
}
