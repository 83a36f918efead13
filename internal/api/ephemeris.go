package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Veraticus/transit-journal/internal/common"
	"github.com/Veraticus/transit-journal/internal/dates"
	"github.com/Veraticus/transit-journal/internal/model"
)

// Transits returns every transit overlapping [start, end]. When planets are
// given, only transits involving them are requested.
func (c *Client) Transits(ctx context.Context, start, end time.Time, planets ...model.Planet) ([]model.Transit, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end %s before start %s", common.ErrInvalidRequest, dates.FormatISO(end), dates.FormatISO(start))
	}

	query := url.Values{}
	query.Set("startDate", dates.FormatISO(start))
	query.Set("endDate", dates.FormatISO(end))
	query.Set("orb", strconv.FormatFloat(c.orb, 'f', -1, 64))
	if len(planets) > 0 {
		names := make([]string, 0, len(planets))
		for _, p := range planets {
			names = append(names, string(p))
		}
		query.Set("planets", strings.Join(names, ","))
	}

	var resp transitsResponse
	if err := c.get(ctx, "/ephemeris/transits", query, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch transits: %w", err)
	}
	return toTransits(resp.Transits), nil
}

// PlanetPosition returns one body's placement on date. A zero date asks the
// server for the current position.
func (c *Client) PlanetPosition(ctx context.Context, planet model.Planet, date time.Time) (*model.PlanetPosition, error) {
	query := url.Values{}
	query.Set("planet", string(planet))
	if !date.IsZero() {
		query.Set("date", dates.FormatISO(date))
	}

	var resp positionResponse
	if err := c.get(ctx, "/ephemeris/planet", query, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch %s position: %w", planet.Name(), err)
	}
	if resp.Position == nil {
		return nil, fmt.Errorf("failed to fetch %s position: %w", planet.Name(), &APIError{
			Method:  http.MethodGet,
			Path:    "/ephemeris/planet",
			Status:  http.StatusNotFound,
			Message: "response had no position",
		})
	}

	pos := resp.Position.toModel()
	return &pos, nil
}

// DailySnapshot returns every position and transit for the day containing date.
func (c *Client) DailySnapshot(ctx context.Context, date time.Time) (*model.DailySnapshot, error) {
	day := dates.Day(date)

	query := url.Values{}
	query.Set("date", dates.FormatISO(day))

	var resp snapshotResponse
	if err := c.get(ctx, "/ephemeris/daily-snapshot", query, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch daily snapshot for %s: %w", dates.Key(day), err)
	}

	snapshot := &model.DailySnapshot{
		Date:      day,
		Positions: toPositions(resp.Positions),
		Transits:  toTransits(resp.Transits),
	}
	if resp.Date != "" {
		if d := parseDate("date", resp.Date); !d.IsZero() {
			snapshot.Date = dates.Day(d)
		}
	}
	if len(snapshot.Positions) == 0 && len(snapshot.Transits) == 0 {
		return nil, fmt.Errorf("failed to fetch daily snapshot for %s: %w", dates.Key(day), errEmptySnapshot)
	}
	return snapshot, nil
}

var errEmptySnapshot = errors.New("snapshot has no positions or transits")
