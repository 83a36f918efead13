// Package service defines the interfaces between the presentation layer and
// the remote Ephemeris/Journal API.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/transit-journal/internal/model"
)

// Ephemeris supplies transits and planet positions. It never computes them locally.
type Ephemeris interface {
	Transits(ctx context.Context, start, end time.Time, planets ...model.Planet) ([]model.Transit, error)
	PlanetPosition(ctx context.Context, planet model.Planet, date time.Time) (*model.PlanetPosition, error)
	DailySnapshot(ctx context.Context, date time.Time) (*model.DailySnapshot, error)
}

// Journal reads and writes journal entries. The server is the source of truth.
type Journal interface {
	CreateEntry(ctx context.Context, req model.CreateJournalEntryRequest) (*model.JournalEntry, error)
	UpdateEntry(ctx context.Context, id string, req model.UpdateJournalEntryRequest) (*model.JournalEntry, error)
	DeleteEntry(ctx context.Context, id string) error

	EntriesForTransit(ctx context.Context, transitID string) ([]model.JournalEntry, error)
	EntriesForTransitType(ctx context.Context, transitTypeID string) ([]model.JournalEntry, error)
	EntriesForDate(ctx context.Context, day time.Time) ([]model.JournalEntry, error)
	RecentEntries(ctx context.Context, limit int) ([]model.JournalEntry, error)
	EntriesByTag(ctx context.Context, tag string, limit int) ([]model.JournalEntry, error)
	SearchEntries(ctx context.Context, query string, limit int) ([]model.JournalEntry, error)
}

// Backend is the full remote API.
type Backend interface {
	Ephemeris
	Journal
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

// DateRange represents a time period with start and end dates.
type DateRange struct {
	Start time.Time
	End   time.Time
}
