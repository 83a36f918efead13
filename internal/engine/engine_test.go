package engine

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/transit-journal/internal/calendar"
	"github.com/Veraticus/transit-journal/internal/common"
	"github.com/Veraticus/transit-journal/internal/dates"
	"github.com/Veraticus/transit-journal/internal/model"
	"github.com/Veraticus/transit-journal/internal/testutil"
)

func setupEngine(t *testing.T) (*Engine, *testutil.MockBackend) {
	t.Helper()
	prev := dates.Zone()
	dates.SetZone(time.UTC)
	t.Cleanup(func() { dates.SetZone(prev) })

	backend := new(testutil.MockBackend)
	t.Cleanup(func() { backend.AssertExpectations(t) })

	e := New(backend)
	e.now = func() time.Time { return testutil.Date(2025, 3, 12).Add(9 * time.Hour) }
	return e, backend
}

func weekOf(day int) calendar.Window {
	return calendar.NewWindow(testutil.Date(2025, 3, day), calendar.Week)
}

func TestEngine_LoadWindow(t *testing.T) {
	e, backend := setupEngine(t)
	w := weekOf(12)

	square := testutil.Aspect(model.Mars, model.Square, model.Sun).
		Between(testutil.Date(2025, 3, 18), testutil.Date(2025, 3, 24)).
		Exact(testutil.Date(2025, 3, 21)).Build()
	venus := testutil.InSign(model.Venus, model.Aries).
		Between(testutil.Date(2025, 3, 11), testutil.Date(2025, 3, 13)).
		Exact(testutil.Date(2025, 3, 12)).Build()
	moonTrine := testutil.Aspect(model.Moon, model.Trine, model.Jupiter).On(testutil.Date(2025, 3, 12)).Build()
	sunSextile := testutil.Aspect(model.Sun, model.Sextile, model.Saturn).Between(testutil.Date(2025, 3, 10), testutil.Date(2025, 3, 16)).Build()
	plutoSquare := testutil.Aspect(model.Pluto, model.Square, model.Mars).Between(testutil.Date(2025, 3, 1), testutil.Date(2025, 3, 30)).Build()

	backend.On("Transits", mock.Anything, testutil.OnDay(w.Start()), testutil.OnDay(w.End())).
		Return([]model.Transit{square, venus, moonTrine, sunSextile, plutoSquare}, nil).Once()

	entry := testutil.Entry("e1", venus.TransitTypeID, "Felt warm")
	for _, day := range w.Days() {
		var entries []model.JournalEntry
		if day.Equal(testutil.Date(2025, 3, 12)) {
			entries = []model.JournalEntry{entry}
		}
		backend.On("EntriesForDate", mock.Anything, testutil.OnDay(day)).Return(entries, nil).Once()
	}

	var (
		mu       sync.Mutex
		progress []string
	)
	snap, err := e.LoadWindow(context.Background(), w, WithDayProgress(func(key string) {
		mu.Lock()
		defer mu.Unlock()
		progress = append(progress, key)
	}))
	require.NoError(t, err)

	assert.Len(t, progress, 7)
	assert.Empty(t, snap.FailedDays)
	assert.Equal(t, 1, snap.TotalEntries())
	assert.Equal(t, map[string]int{venus.TransitTypeID: 1}, snap.TypeCounts())
	assert.NotZero(t, snap.Generation)

	cells := snap.Cells()
	require.Len(t, cells, 7)
	assert.Equal(t, "2025-03-10", cells[0].Key)
	assert.Equal(t, "2025-03-16", cells[6].Key)

	wed, ok := snap.Cell(testutil.Date(2025, 3, 12))
	require.True(t, ok)
	assert.True(t, wed.IsToday)
	assert.Equal(t, calendar.DayIndicators{
		TransitCount:      4,
		DotCount:          3,
		Overflow:          1,
		JournalEntryCount: 1,
		HasExactToday:     true,
		HasJournalEntry:   true,
	}, wed.Indicators)

	// Sun, Moon, Venus, Pluto by importance; the budget keeps the first three.
	require.Len(t, wed.Active, 4)
	assert.Equal(t, []model.Planet{model.Sun, model.Moon, model.Venus}, []model.Planet{
		wed.Shown[0].PlanetA, wed.Shown[1].PlanetA, wed.Shown[2].PlanetA,
	})

	mon, ok := snap.Cell(testutil.Date(2025, 3, 10))
	require.True(t, ok)
	assert.Equal(t, 2, mon.Indicators.TransitCount)
	assert.True(t, mon.Indicators.HasExactToday)

	_, ok = snap.Cell(testutil.Date(2025, 3, 21))
	assert.False(t, ok, "days outside the window have no cell")
}

func TestEngine_LoadWindowCellsComputedOnce(t *testing.T) {
	e, backend := setupEngine(t)
	backend.On("Transits", mock.Anything, mock.Anything, mock.Anything).Return([]model.Transit{}, nil)
	backend.On("EntriesForDate", mock.Anything, mock.Anything).Return([]model.JournalEntry{}, nil)

	snap, err := e.LoadWindow(context.Background(), weekOf(12))
	require.NoError(t, err)

	first := snap.Cells()
	second := snap.Cells()
	assert.Same(t, &first[0], &second[0])
}

func TestEngine_LoadWindowJournalDayFails(t *testing.T) {
	e, backend := setupEngine(t)
	w := weekOf(12)

	backend.On("Transits", mock.Anything, mock.Anything, mock.Anything).Return([]model.Transit{}, nil)
	backend.On("EntriesForDate", mock.Anything, testutil.OnDay(testutil.Date(2025, 3, 14))).
		Return(nil, common.ErrServer)
	backend.On("EntriesForDate", mock.Anything, mock.Anything).Return([]model.JournalEntry{}, nil)

	snap, err := e.LoadWindow(context.Background(), w)
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-03-14"}, snap.FailedDays)
	assert.NotContains(t, snap.EntriesByDay, "2025-03-14")
}

func TestEngine_LoadWindowTransitsFail(t *testing.T) {
	e, backend := setupEngine(t)

	backend.On("Transits", mock.Anything, mock.Anything, mock.Anything).Return(nil, common.ErrServer)
	backend.On("EntriesForDate", mock.Anything, mock.Anything).Return([]model.JournalEntry{}, nil).Maybe()

	snap, err := e.LoadWindow(context.Background(), weekOf(12))
	require.Error(t, err)
	assert.Nil(t, snap)
	assert.ErrorIs(t, err, common.ErrServer)
	assert.Equal(t, MsgTransitsFailed, common.UserMessage(err, ""))
}

func TestEngine_LoadWindowGenerationsIncrease(t *testing.T) {
	e, backend := setupEngine(t)
	backend.On("Transits", mock.Anything, mock.Anything, mock.Anything).Return([]model.Transit{}, nil)
	backend.On("EntriesForDate", mock.Anything, mock.Anything).Return([]model.JournalEntry{}, nil)

	a, err := e.LoadWindow(context.Background(), weekOf(12))
	require.NoError(t, err)
	b, err := e.LoadWindow(context.Background(), weekOf(19))
	require.NoError(t, err)

	assert.Greater(t, b.Generation, a.Generation)
}

func TestEngine_LoadDay(t *testing.T) {
	day := testutil.Date(2025, 3, 21)
	square := testutil.Aspect(model.Mars, model.Square, model.Sun).
		Between(testutil.Date(2025, 3, 18), testutil.Date(2025, 3, 24)).
		Exact(day).Intensity(40).Build()
	trine := testutil.Aspect(model.Venus, model.Trine, model.Jupiter).
		Between(testutil.Date(2025, 3, 20), testutil.Date(2025, 3, 22)).
		Intensity(90).Build()
	past := testutil.Aspect(model.Sun, model.Opposition, model.Neptune).
		Between(testutil.Date(2025, 3, 1), testutil.Date(2025, 3, 5)).Build()

	entries := []model.JournalEntry{
		testutil.Entry("e1", square.TransitTypeID, "Short fuse"),
		testutil.Entry("e2", square.TransitTypeID, "Argued"),
		testutil.Entry("e3", "MARS_IN_Aries", "Energy"),
		{ID: "e4", Content: "no type"},
	}

	tests := []struct {
		snapshotErr   error
		window        []model.Transit
		name          string
		wantNotice    string
		wantTransits  []string
		wantPositions int
		wantDegraded  bool
		wantErr       bool
	}{
		{
			name:          "snapshot available",
			wantTransits:  []string{trine.ID, square.ID},
			wantPositions: 2,
		},
		{
			name:         "snapshot fails, fall back to window transits",
			snapshotErr:  common.ErrServer,
			window:       []model.Transit{past, square, trine},
			wantTransits: []string{trine.ID, square.ID},
			wantDegraded: true,
			wantNotice:   MsgSnapshotFallback,
		},
		{
			name:        "snapshot fails with nothing to fall back on",
			snapshotErr: common.ErrServer,
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, backend := setupEngine(t)

			if tt.snapshotErr != nil {
				backend.On("DailySnapshot", mock.Anything, testutil.OnDay(day)).Return(nil, tt.snapshotErr)
			} else {
				backend.On("DailySnapshot", mock.Anything, testutil.OnDay(day)).Return(&model.DailySnapshot{
					Date: day,
					Positions: []model.PlanetPosition{
						testutil.Position(model.Mars, model.Aries),
						testutil.Position(model.Sun, ""),
					},
					Transits: []model.Transit{past, square, trine},
				}, nil)
			}
			backend.On("EntriesForDate", mock.Anything, testutil.OnDay(day)).Return(entries, nil)

			detail, err := e.LoadDay(context.Background(), day.Add(14*time.Hour), tt.window)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, MsgTransitsFailed, common.UserMessage(err, ""))
				return
			}
			require.NoError(t, err)

			assert.True(t, detail.Day.Equal(day))
			assert.Equal(t, tt.wantDegraded, detail.Degraded)
			assert.Equal(t, tt.wantNotice, detail.Notice)
			assert.Len(t, detail.Positions, tt.wantPositions)

			ids := make([]string, 0, len(detail.Transits))
			for _, tr := range detail.Transits {
				ids = append(ids, tr.ID)
			}
			assert.Equal(t, tt.wantTransits, ids)

			assert.Equal(t, 2, detail.Counts[square.TransitTypeID])
			assert.Equal(t, 1, detail.Counts["MARS_IN_Aries"])
			if tt.wantPositions > 0 {
				assert.Equal(t, model.Sun, detail.Positions[0].Planet)
				count, ok := detail.Counts["SUN_IN_Aries"]
				assert.True(t, ok, "positions always get a key")
				assert.Zero(t, count)
			}
		})
	}
}

func TestEngine_LoadDayEntriesFail(t *testing.T) {
	e, backend := setupEngine(t)
	day := testutil.Date(2025, 3, 21)

	backend.On("DailySnapshot", mock.Anything, mock.Anything).Return(nil, common.ErrTransport)
	backend.On("EntriesForDate", mock.Anything, mock.Anything).Return(nil, common.ErrTransport)

	detail, err := e.LoadDay(context.Background(), day, []model.Transit{})
	require.NoError(t, err)
	assert.True(t, detail.Degraded)
	assert.Equal(t, MsgSnapshotFallback+" "+MsgEntriesFailed, detail.Notice)
	assert.Empty(t, detail.Transits)
	assert.Empty(t, detail.Counts)
}

func TestDayDetail_AspectsAndBadges(t *testing.T) {
	square := testutil.Aspect(model.Mars, model.Square, model.Sun).Build()
	trine := testutil.Aspect(model.Venus, model.Trine, model.Mars).Build()
	sign := testutil.InSign(model.Mars, model.Aries).Build()

	detail := &DayDetail{
		Transits: []model.Transit{square, trine, sign},
		Counts: map[string]int{
			"MARS_IN_Aries":      2,
			square.TransitTypeID: 1,
			trine.TransitTypeID:  3,
			"VENUS_IN_Taurus":    0,
		},
	}

	assert.Len(t, detail.Aspects(calendar.AllAspects), 2)
	assert.Equal(t, []model.Transit{trine}, detail.Aspects("TRINE"))

	badges := detail.Badges(testutil.Position(model.Mars, model.Aries))
	assert.Equal(t, calendar.BadgeCounts{Position: 2, Aspects: 4}, badges)
}

func TestDayDetail_ForPlanet(t *testing.T) {
	square := testutil.Aspect(model.Mars, model.Square, model.Sun).Build()
	trine := testutil.Aspect(model.Venus, model.Trine, model.Jupiter).Build()
	sign := testutil.InSign(model.Mars, model.Aries).Build()

	detail := &DayDetail{
		Positions: []model.PlanetPosition{
			testutil.Position(model.Sun, model.Pisces),
			testutil.Position(model.Mars, model.Aries),
			testutil.Position(model.Venus, model.Taurus),
		},
		Transits: []model.Transit{square, trine, sign},
		Entries:  []model.JournalEntry{testutil.Entry("e1", "VENUS_Trine_JUPITER", "Warm")},
	}

	assert.Same(t, detail, detail.ForPlanet(""))

	mars := detail.ForPlanet(model.Mars)
	require.Len(t, mars.Positions, 1)
	assert.Equal(t, model.Mars, mars.Positions[0].Planet)
	assert.Equal(t, []model.Transit{square, sign}, mars.Transits)
	assert.Equal(t, []model.Transit{square}, mars.Aspects(calendar.AllAspects))
	assert.Len(t, mars.Entries, 1)

	assert.Len(t, detail.Positions, 3, "the original detail is untouched")
	assert.Len(t, detail.Transits, 3)

	pluto := detail.ForPlanet(model.Pluto)
	assert.Empty(t, pluto.Positions)
	assert.Empty(t, pluto.Transits)
}

func TestEngine_LoadPlanet(t *testing.T) {
	e, backend := setupEngine(t)
	day := testutil.Date(2025, 3, 12)

	mercury := testutil.Retrograde(model.Mercury, model.Aries)
	square := testutil.Aspect(model.Mercury, model.Square, model.Mars).On(day).Build()

	backend.On("PlanetPosition", mock.Anything, model.Mercury, testutil.OnDay(day)).Return(&mercury, nil)
	backend.On("Transits", mock.Anything, testutil.OnDay(day), mock.Anything, []model.Planet{model.Mercury}).
		Return([]model.Transit{square}, nil)
	backend.On("EntriesForTransitType", mock.Anything, "MERCURY_IN_Aries").
		Return([]model.JournalEntry{testutil.Entry("e1", "MERCURY_IN_Aries", "Miscommunication")}, nil)

	detail, err := e.LoadPlanet(context.Background(), model.Mercury, day)
	require.NoError(t, err)

	assert.True(t, detail.Estimated)
	assert.True(t, detail.DirectDate.Equal(testutil.Date(2025, 3, 24)), "today + 12 days")
	assert.Equal(t, []model.Transit{square}, detail.Aspects)
	assert.Len(t, detail.Entries, 1)
}

func TestEngine_LoadPlanetFails(t *testing.T) {
	e, backend := setupEngine(t)

	backend.On("PlanetPosition", mock.Anything, model.Pluto, mock.Anything).Return(nil, common.ErrNotFound)
	backend.On("Transits", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, nil).Maybe()

	_, err := e.LoadPlanet(context.Background(), model.Pluto, testutil.Date(2025, 3, 12))
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.Equal(t, MsgPositionFailed, common.UserMessage(err, ""))
}

func TestEngine_TransitEntries(t *testing.T) {
	e, backend := setupEngine(t)
	square := testutil.Aspect(model.Mars, model.Square, model.Sun).ID("t1").Build()

	shared := testutil.Entry("e1", square.TransitTypeID, "both")
	backend.On("EntriesForTransit", mock.Anything, "t1").Return([]model.JournalEntry{shared}, nil)
	backend.On("EntriesForTransitType", mock.Anything, square.TransitTypeID).
		Return([]model.JournalEntry{testutil.Entry("e0", square.TransitTypeID, "older"), shared}, nil)

	entries, err := e.TransitEntries(context.Background(), square)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "e1", entries[0].ID)
	assert.Equal(t, "e0", entries[1].ID)
}

func TestEngine_CreateEntryRefetches(t *testing.T) {
	e, backend := setupEngine(t)
	w := weekOf(12)
	day := testutil.Date(2025, 3, 12)

	backend.On("Transits", mock.Anything, mock.Anything, mock.Anything).Return([]model.Transit{}, nil)
	backend.On("EntriesForDate", mock.Anything, mock.Anything).Return([]model.JournalEntry{}, nil).Times(7)

	snap, err := e.LoadWindow(context.Background(), w)
	require.NoError(t, err)

	req := model.CreateJournalEntryRequest{TransitID: "t1", TransitTypeID: "MARS_IN_Aries", Content: "New"}
	created := testutil.Entry("e9", "MARS_IN_Aries", "New")
	backend.On("CreateEntry", mock.Anything, req).Return(&created, nil).Once()
	backend.On("EntriesForDate", mock.Anything, testutil.OnDay(day)).Return([]model.JournalEntry{created}, nil).Once()

	next, entry, err := e.CreateEntry(context.Background(), snap, day, req)
	require.NoError(t, err)

	assert.Equal(t, "e9", entry.ID)
	assert.Greater(t, next.Generation, snap.Generation)
	assert.Len(t, next.Entries(day), 1)
	assert.Empty(t, snap.Entries(day), "the previous snapshot is not modified")

	cell, ok := next.Cell(day)
	require.True(t, ok)
	assert.True(t, cell.Indicators.HasJournalEntry)
}

func TestEngine_WriteFailures(t *testing.T) {
	e, backend := setupEngine(t)
	day := testutil.Date(2025, 3, 12)
	content := "edit"

	backend.On("CreateEntry", mock.Anything, mock.Anything).Return(nil, common.ErrInvalidRequest)
	backend.On("UpdateEntry", mock.Anything, "e1", mock.Anything).Return(nil, common.ErrNotFound)
	backend.On("DeleteEntry", mock.Anything, "e1").Return(common.ErrServer)

	_, _, err := e.CreateEntry(context.Background(), nil, day, model.CreateJournalEntryRequest{})
	assert.Equal(t, MsgSaveFailed, common.UserMessage(err, ""))

	_, _, err = e.UpdateEntry(context.Background(), nil, day, "e1", model.UpdateJournalEntryRequest{Content: &content})
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = e.DeleteEntry(context.Background(), nil, day, "e1")
	assert.Equal(t, MsgDeleteFailed, common.UserMessage(err, ""))
}

func TestEngine_DeleteEntryRefreshFails(t *testing.T) {
	e, backend := setupEngine(t)
	day := testutil.Date(2025, 3, 12)
	snap := &Snapshot{Window: weekOf(12), EntriesByDay: map[string][]model.JournalEntry{}}

	backend.On("DeleteEntry", mock.Anything, "e1").Return(nil)
	backend.On("EntriesForDate", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

	next, err := e.DeleteEntry(context.Background(), snap, day, "e1")
	assert.Same(t, snap, next)
	assert.Equal(t, MsgEntriesFailed, common.UserMessage(err, ""))
}
