package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/transit-journal/internal/api"
	"github.com/Veraticus/transit-journal/internal/config"
	"github.com/Veraticus/transit-journal/internal/dates"
	"github.com/Veraticus/transit-journal/internal/engine"
)

// fetchConcurrency bounds the per-day journal requests of a window load.
const fetchConcurrency = 4

// services are the clients a command talks to.
type services struct {
	client *api.Client
	engine *engine.Engine
}

// initServices builds the API client and calendar engine from the loaded config.
func initServices() (*services, error) {
	if appConfig == nil {
		return nil, errors.New("configuration not loaded")
	}
	return newServices(appConfig)
}

func newServices(cfg *config.Config) (*services, error) {
	client, err := api.NewClient(cfg.API)
	if err != nil {
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}

	eng := engine.NewWithConfig(client, engine.Config{
		DisplayBudget:    cfg.Calendar.DisplayBudget,
		FetchConcurrency: fetchConcurrency,
	})
	return &services{client: client, engine: eng}, nil
}

// addDateFlag registers --date on cmd.
func addDateFlag(cmd *cobra.Command) {
	cmd.Flags().String("date", "", "day to show, yyyy-MM-dd (default: today)")
}

// dateFlag reads --date, defaulting to today in the configured zone.
func dateFlag(cmd *cobra.Command) (time.Time, error) {
	value, err := cmd.Flags().GetString("date")
	if err != nil {
		return time.Time{}, err
	}
	return parseDay(value, time.Now())
}

func parseDay(value string, now time.Time) (time.Time, error) {
	if value == "" {
		return dates.Day(now), nil
	}
	t, err := dates.ParseFlexible(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date: %w", err)
	}
	return dates.Day(t), nil
}

// parseMonth reads a yyyy-MM month, defaulting to the current one.
func parseMonth(value string, now time.Time) (time.Time, error) {
	if value == "" {
		return dates.Day(now), nil
	}
	t, err := time.Parse("2006-01", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --month %q (want yyyy-MM)", value)
	}
	return dates.Date(t.Year(), t.Month(), 1), nil
}

func printOut(w io.Writer, s string) error {
	if _, err := fmt.Fprintln(w, s); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
