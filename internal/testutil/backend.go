// Package testutil provides test doubles and fixtures shared across packages.
package testutil

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/Veraticus/transit-journal/internal/model"
	"github.com/Veraticus/transit-journal/internal/service"
)

// MockBackend is a testify mock of service.Backend.
//
// Example:
//
//	backend := new(testutil.MockBackend)
//	backend.On("Transits", mock.Anything, mock.Anything, mock.Anything).Return(transits, nil)
//	backend.On("EntriesForDate", mock.Anything, mock.Anything).Return([]model.JournalEntry{}, nil)
type MockBackend struct {
	mock.Mock
}

var _ service.Backend = (*MockBackend)(nil)

// Transits records the call. Planet filters are passed as one []model.Planet
// argument, nil when absent.
func (m *MockBackend) Transits(ctx context.Context, start, end time.Time, planets ...model.Planet) ([]model.Transit, error) {
	var args mock.Arguments
	if len(planets) > 0 {
		args = m.Called(ctx, start, end, planets)
	} else {
		args = m.Called(ctx, start, end)
	}
	if v, ok := args.Get(0).([]model.Transit); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBackend) PlanetPosition(ctx context.Context, planet model.Planet, date time.Time) (*model.PlanetPosition, error) {
	args := m.Called(ctx, planet, date)
	if v, ok := args.Get(0).(*model.PlanetPosition); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBackend) DailySnapshot(ctx context.Context, date time.Time) (*model.DailySnapshot, error) {
	args := m.Called(ctx, date)
	if v, ok := args.Get(0).(*model.DailySnapshot); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBackend) CreateEntry(ctx context.Context, req model.CreateJournalEntryRequest) (*model.JournalEntry, error) {
	args := m.Called(ctx, req)
	if v, ok := args.Get(0).(*model.JournalEntry); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBackend) UpdateEntry(ctx context.Context, id string, req model.UpdateJournalEntryRequest) (*model.JournalEntry, error) {
	args := m.Called(ctx, id, req)
	if v, ok := args.Get(0).(*model.JournalEntry); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBackend) DeleteEntry(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBackend) EntriesForTransit(ctx context.Context, transitID string) ([]model.JournalEntry, error) {
	return m.entries(m.Called(ctx, transitID))
}

func (m *MockBackend) EntriesForTransitType(ctx context.Context, transitTypeID string) ([]model.JournalEntry, error) {
	return m.entries(m.Called(ctx, transitTypeID))
}

func (m *MockBackend) EntriesForDate(ctx context.Context, day time.Time) ([]model.JournalEntry, error) {
	return m.entries(m.Called(ctx, day))
}

func (m *MockBackend) RecentEntries(ctx context.Context, limit int) ([]model.JournalEntry, error) {
	return m.entries(m.Called(ctx, limit))
}

func (m *MockBackend) EntriesByTag(ctx context.Context, tag string, limit int) ([]model.JournalEntry, error) {
	return m.entries(m.Called(ctx, tag, limit))
}

func (m *MockBackend) SearchEntries(ctx context.Context, query string, limit int) ([]model.JournalEntry, error) {
	return m.entries(m.Called(ctx, query, limit))
}

func (m *MockBackend) entries(args mock.Arguments) ([]model.JournalEntry, error) {
	if v, ok := args.Get(0).([]model.JournalEntry); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

// OnDay matches a time argument falling on the same instant as day.
func OnDay(day time.Time) any {
	return mock.MatchedBy(func(t time.Time) bool { return t.Equal(day) })
}
