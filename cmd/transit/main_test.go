package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/transit-journal/internal/api"
	"github.com/Veraticus/transit-journal/internal/calendar"
	"github.com/Veraticus/transit-journal/internal/config"
	"github.com/Veraticus/transit-journal/internal/dates"
	"github.com/Veraticus/transit-journal/internal/engine"
	"github.com/Veraticus/transit-journal/internal/model"
	"github.com/Veraticus/transit-journal/internal/testutil"
	"github.com/Veraticus/transit-journal/internal/tui"
)

func utcZone(t *testing.T) {
	t.Helper()
	prev := dates.Zone()
	dates.SetZone(time.UTC)
	t.Cleanup(func() { dates.SetZone(prev) })
}

func TestParseDay(t *testing.T) {
	utcZone(t)
	now := time.Date(2025, 3, 12, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		value   string
		want    time.Time
		wantErr bool
	}{
		{name: "empty is today", value: "", want: testutil.Date(2025, 3, 12)},
		{name: "date", value: "2025-04-01", want: testutil.Date(2025, 4, 1)},
		{name: "timestamp", value: "2025-04-01T18:00:00Z", want: testutil.Date(2025, 4, 1)},
		{name: "garbage", value: "next tuesday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDay(tt.value, now)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}
}

func TestParseMonth(t *testing.T) {
	utcZone(t)

	got, err := parseMonth("2025-02", time.Now())
	require.NoError(t, err)
	assert.Equal(t, "month:2025-02-01", calendar.NewWindow(got, calendar.Month).Key())

	_, err = parseMonth("February", time.Now())
	assert.Error(t, err)
}

func TestUpdateRequest(t *testing.T) {
	tests := []struct {
		name    string
		args    map[string]string
		check   func(t *testing.T, req model.UpdateJournalEntryRequest)
		wantErr bool
	}{
		{
			name: "content only",
			args: map[string]string{"content": "Calmer today"},
			check: func(t *testing.T, req model.UpdateJournalEntryRequest) {
				require.NotNil(t, req.Content)
				assert.Equal(t, "Calmer today", *req.Content)
				assert.Nil(t, req.Mood)
				assert.Nil(t, req.Tags)
			},
		},
		{
			name: "mood and tags",
			args: map[string]string{"mood": "Energized", "tags": "work, focus"},
			check: func(t *testing.T, req model.UpdateJournalEntryRequest) {
				assert.Nil(t, req.Content)
				require.NotNil(t, req.Mood)
				assert.Equal(t, "Energized", *req.Mood)
				assert.Equal(t, []string{"work", "focus"}, req.Tags)
			},
		},
		{name: "nothing set", args: map[string]string{}, wantErr: true},
		{name: "blank content", args: map[string]string{"content": "  "}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := journalEditCmd()
			for k, v := range tt.args {
				require.NoError(t, cmd.Flags().Set(k, v))
			}

			req, err := updateRequest(cmd)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, req)
		})
	}
}

func TestDirectRequest(t *testing.T) {
	square := tui.JournalTarget{TransitID: "t-1", TypeID: "MARS_Square_SUN"}
	trine := tui.JournalTarget{TransitID: "t-2", TypeID: "MOON_Trine_JUPITER"}

	req, err := directRequest(addOptions{content: "Pushed hard", mood: "Challenged"}, []tui.JournalTarget{square})
	require.NoError(t, err)
	assert.Equal(t, "t-1", req.TransitID)
	assert.Equal(t, "Challenged", req.Mood)
	assert.Equal(t, []string{"mars", "sun", "square"}, req.Tags)

	_, err = directRequest(addOptions{content: "x"}, nil)
	assert.ErrorIs(t, err, errNothingToJournal)

	_, err = directRequest(addOptions{content: "x"}, []tui.JournalTarget{square, trine})
	assert.ErrorContains(t, err, "--transit-type")
}

func TestExplicitTargets(t *testing.T) {
	assert.Nil(t, explicitTargets(addOptions{}))

	targets := explicitTargets(addOptions{typeID: "VENUS_IN_Pisces"})
	require.Len(t, targets, 1)
	assert.Equal(t, "VENUS_IN_Pisces", targets[0].TypeID)
	assert.NotEmpty(t, targets[0].TransitID)
	assert.Contains(t, targets[0].Prompt, "relationship")

	targets = explicitTargets(addOptions{typeID: "MARS_Square_SUN", transitID: "t-9"})
	assert.Equal(t, "t-9", targets[0].TransitID)
}

func TestBuildDigest(t *testing.T) {
	utcZone(t)

	exactDay := testutil.Date(2025, 3, 12)
	square := testutil.Aspect(model.Mars, model.Square, model.Sun).On(exactDay).Build()
	entry := testutil.Entry("e1", square.TypeID(), "Tense")

	backend := new(testutil.MockBackend)
	backend.On("Transits", mock.Anything, mock.Anything, mock.Anything).Return([]model.Transit{square}, nil)
	backend.On("EntriesForDate", mock.Anything, testutil.OnDay(exactDay)).Return([]model.JournalEntry{entry}, nil)
	backend.On("EntriesForDate", mock.Anything, mock.Anything).Return([]model.JournalEntry{}, nil)

	eng := engine.New(backend)
	eng.SetClock(func() time.Time { return exactDay })

	var progressed int
	snap, err := eng.LoadWindow(context.Background(), calendar.NewWindow(exactDay, calendar.Month),
		engine.WithDayProgress(func(string) { progressed++ }))
	require.NoError(t, err)
	assert.Equal(t, 31, progressed)

	exportedAt := time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC)
	digest := buildDigest(snap, exportedAt)

	assert.Equal(t, "2025-03", digest.Month)
	assert.Equal(t, exportedAt, digest.ExportedAt)
	require.Len(t, digest.Days, 31)
	assert.Empty(t, digest.FailedDays)
	assert.Equal(t, map[string]int{"MARS_Square_SUN": 1}, digest.TypeCounts)

	day := digest.Days[11]
	assert.Equal(t, "2025-03-12", day.Date)
	require.Len(t, day.Transits, 1)
	assert.Equal(t, "MARS_Square_SUN", day.Transits[0].TypeID)
	assert.Equal(t, "Mars Square Sun", day.Transits[0].Name)
	assert.Equal(t, "2025-03-12", day.Transits[0].Exact)
	assert.True(t, day.HasExact)
	assert.Equal(t, 1, day.JournalCount)
	assert.Equal(t, []entryReference{{ID: "e1", TransitTypeID: "MARS_Square_SUN"}}, day.Entries)

	assert.Empty(t, digest.Days[0].Transits)
	assert.Zero(t, digest.Days[0].JournalCount)
}

// serveTransits points appConfig at a fake API whose only data is transits.
// Daily snapshots 404, so day views fall back to the transit list.
func serveTransits(t *testing.T, transits string) {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/api/ephemeris/transits":
			_, _ = w.Write([]byte(`{"transits": ` + transits + `}`))
		case strings.HasPrefix(r.URL.Path, "/api/journal/entries/date/"):
			_, _ = w.Write([]byte(`{"entries": []}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	prev := appConfig
	appConfig = &config.Config{
		API: api.Config{
			BaseURL:       server.URL + "/api",
			Timeout:       5 * time.Second,
			RetryAttempts: 1,
			Orb:           api.DefaultOrb,
		},
		Calendar: config.CalendarConfig{DisplayBudget: calendar.DefaultDisplayBudget},
	}
	t.Cleanup(func() { appConfig = prev })
}

const marsSquareSun = `{"id": "t1", "transitTypeId": "MARS_Square_SUN",
	"planetA": "MARS", "planetB": "SUN", "aspect": "Square",
	"startDate": "2025-03-12", "exactDate": "2025-03-12", "endDate": "2025-03-12"}`

const moonTrineJupiter = `{"id": "t2", "transitTypeId": "MOON_Trine_JUPITER",
	"planetA": "MOON", "planetB": "JUPITER", "aspect": "Trine",
	"startDate": "2025-03-11", "exactDate": "2025-03-12", "endDate": "2025-03-13"}`

func TestWeekCommand(t *testing.T) {
	utcZone(t)
	serveTransits(t, "["+marsSquareSun+"]")

	var out bytes.Buffer
	cmd := weekCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--date", "2025-03-12"})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	text := out.String()
	assert.Contains(t, text, "Mar 10 - 16, 2025")
	assert.Contains(t, text, "Wed Mar 12, 2025")
	assert.Contains(t, text, "Mars Square Sun")
	assert.Contains(t, text, "No transits")
}

func TestDayCommand_PlanetFilter(t *testing.T) {
	utcZone(t)
	serveTransits(t, "["+marsSquareSun+", "+moonTrineJupiter+"]")

	tests := []struct {
		name    string
		args    []string
		want    []string
		notWant []string
		wantErr bool
	}{
		{
			name: "all planets",
			args: []string{"--date", "2025-03-12"},
			want: []string{"Mars Square Sun", "Moon Trine Jupiter"},
		},
		{
			name:    "moon only",
			args:    []string{"--date", "2025-03-12", "--planet", "moon"},
			want:    []string{"Moon Trine Jupiter"},
			notWant: []string{"Mars Square Sun"},
		},
		{
			name:    "sun only",
			args:    []string{"--date", "2025-03-12", "--planet", "Sun"},
			want:    []string{"Mars Square Sun"},
			notWant: []string{"Moon Trine Jupiter"},
		},
		{name: "unknown planet", args: []string{"--planet", "vulcan"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			cmd := dayCmd()
			cmd.SetOut(&out)
			cmd.SetErr(&out)
			cmd.SetArgs(tt.args)

			err := cmd.ExecuteContext(context.Background())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			text := out.String()
			for _, w := range tt.want {
				assert.Contains(t, text, w)
			}
			for _, w := range tt.notWant {
				assert.NotContains(t, text, w)
			}
		})
	}
}
