package dates

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withZone(t *testing.T, loc *time.Location) {
	t.Helper()
	prev := Zone()
	SetZone(loc)
	t.Cleanup(func() { SetZone(prev) })
}

func TestParseFlexible(t *testing.T) {
	withZone(t, time.UTC)

	want := time.Date(2025, 3, 21, 14, 30, 15, 123000000, time.UTC)

	tests := []struct {
		name  string
		input string
	}{
		{name: "rfc3339 with millis", input: "2025-03-21T14:30:15.123Z"},
		{name: "rfc3339 with offset", input: "2025-03-21T16:30:15.123+02:00"},
		{name: "compact offset", input: "2025-03-21T09:30:15.123-0500"},
		{name: "postgres short offset", input: "2025-03-21 16:30:15.123+02"},
		{name: "postgres negative offset", input: "2025-03-21 09:30:15.123-05"},
		{name: "postgres colon offset", input: "2025-03-21 09:30:15.123-05:00"},
		{name: "postgres utc", input: "2025-03-21 14:30:15.123+00"},
		{name: "surrounding whitespace", input: "  2025-03-21T14:30:15.123Z\n"},
		{name: "no zone uses configured zone", input: "2025-03-21T14:30:15.123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFlexible(tt.input)
			require.NoError(t, err)
			assert.True(t, want.Equal(got), "got %s", got)
		})
	}
}

func TestParseFlexible_DateOnly(t *testing.T) {
	loc := time.FixedZone("EST", -5*3600)
	withZone(t, loc)

	got, err := ParseFlexible("2025-03-10")
	require.NoError(t, err)
	assert.True(t, time.Date(2025, 3, 10, 0, 0, 0, 0, loc).Equal(got))
}

func TestParseFlexible_Invalid(t *testing.T) {
	for _, input := range []string{"", "   ", "yesterday", "2025-13-45", "21/03/2025"} {
		_, err := ParseFlexible(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestParseFlexible_RoundTrip(t *testing.T) {
	instants := []time.Time{
		time.Date(2025, 3, 21, 0, 0, 0, 0, time.UTC),
		time.Date(1999, 12, 31, 23, 59, 59, 999999999, time.UTC),
		time.Date(2030, 6, 15, 8, 5, 0, 42, time.FixedZone("X", 7*3600)),
		time.Date(2024, 2, 29, 12, 0, 0, 0, time.Local),
	}

	for _, d := range instants {
		got, err := ParseFlexible(FormatISO(d))
		require.NoError(t, err)
		assert.True(t, d.Equal(got), "round trip of %s gave %s", d, got)
	}
}

func TestParseFlexible_PostgresMatchesISO(t *testing.T) {
	pg, err := ParseFlexible("2025-03-21 10:00:00.000-07")
	require.NoError(t, err)
	iso, err := ParseFlexible("2025-03-21T17:00:00.000Z")
	require.NoError(t, err)

	assert.True(t, pg.Equal(iso))
}

func TestDayNormalization(t *testing.T) {
	loc := time.FixedZone("PDT", -7*3600)
	withZone(t, loc)

	// 02:00 UTC on Mar 21 is still Mar 20 in PDT.
	instant := time.Date(2025, 3, 21, 2, 0, 0, 0, time.UTC)

	assert.Equal(t, "2025-03-20", Key(instant))
	assert.True(t, Day(instant).Equal(time.Date(2025, 3, 20, 0, 0, 0, 0, loc)))
	assert.True(t, EndOfDay(instant).Equal(time.Date(2025, 3, 20, 23, 59, 59, 999999999, loc)))
	assert.True(t, SameDay(instant, time.Date(2025, 3, 20, 9, 0, 0, 0, loc)))
	assert.False(t, SameDay(instant, time.Date(2025, 3, 21, 9, 0, 0, 0, loc)))
}

func TestDay_MidnightSkippedByDST(t *testing.T) {
	tests := []struct {
		zone string
		date time.Time
		hour int
	}{
		// Chile springs forward at midnight.
		{zone: "America/Santiago", date: time.Date(2025, 9, 7, 0, 0, 0, 0, time.UTC), hour: 1},
		{zone: "America/Sao_Paulo", date: time.Date(2018, 11, 4, 0, 0, 0, 0, time.UTC), hour: 1},
		{zone: "America/Santiago", date: time.Date(2025, 9, 6, 0, 0, 0, 0, time.UTC), hour: 0},
	}

	for _, tt := range tests {
		t.Run(tt.zone+" "+tt.date.Format(KeyLayout), func(t *testing.T) {
			loc, err := time.LoadLocation(tt.zone)
			require.NoError(t, err)
			withZone(t, loc)

			noon := time.Date(tt.date.Year(), tt.date.Month(), tt.date.Day(), 12, 0, 0, 0, loc)
			start := Day(noon)

			assert.Equal(t, tt.date.Format(KeyLayout), Key(noon))
			assert.Equal(t, tt.date.Day(), start.In(loc).Day())
			assert.Equal(t, tt.hour, start.In(loc).Hour())
			assert.True(t, SameDay(start, noon))
			assert.False(t, SameDay(start.Add(-time.Nanosecond), noon))

			parsed, err := ParseKey(tt.date.Format(KeyLayout))
			require.NoError(t, err)
			assert.True(t, parsed.Equal(start))

			flexible, err := ParseFlexible(tt.date.Format(KeyLayout))
			require.NoError(t, err)
			assert.True(t, flexible.Equal(start))
		})
	}
}

func TestAddDays_AcrossDSTGap(t *testing.T) {
	loc, err := time.LoadLocation("America/Santiago")
	require.NoError(t, err)
	withZone(t, loc)

	sat := Date(2025, time.September, 6)
	keys := make([]string, 0, 4)
	for i := range 4 {
		keys = append(keys, Key(AddDays(sat, i)))
	}
	assert.Equal(t, []string{"2025-09-06", "2025-09-07", "2025-09-08", "2025-09-09"}, keys)

	assert.True(t, EndOfDay(sat).Add(time.Nanosecond).Equal(Date(2025, time.September, 7)))
	assert.Equal(t, "2025-10-01", Key(Date(2025, time.September, 31)))
}

func TestParseKey(t *testing.T) {
	withZone(t, time.UTC)

	got, err := ParseKey("2025-03-12")
	require.NoError(t, err)
	assert.True(t, time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC).Equal(got))

	_, err = ParseKey("03/12/2025")
	assert.Error(t, err)
}

func TestLoadZone(t *testing.T) {
	loc, err := LoadZone("")
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	loc, err = LoadZone("UTC")
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())

	_, err = LoadZone("Not/AZone")
	assert.Error(t, err)
}

func TestFormatting(t *testing.T) {
	withZone(t, time.UTC)

	at := time.Date(2025, 1, 15, 15, 45, 0, 0, time.UTC)

	assert.Equal(t, "Jan 15, 2025", FormatShort(at))
	assert.Equal(t, "Jan 15, 2025 3:45 PM", FormatDateTime(at))
	assert.Equal(t, UnknownDate, FormatShort(time.Time{}))
	assert.Equal(t, UnknownDate, FormatDateTime(time.Time{}))
}

func TestFormatRange(t *testing.T) {
	withZone(t, time.UTC)

	d := func(y int, m time.Month, day int) time.Time {
		return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name       string
		start, end time.Time
		want       string
	}{
		{name: "same month", start: d(2025, 1, 15), end: d(2025, 1, 20), want: "Jan 15 - 20, 2025"},
		{name: "same year", start: d(2025, 1, 15), end: d(2025, 2, 2), want: "Jan 15 - Feb 2, 2025"},
		{name: "across years", start: d(2024, 12, 30), end: d(2025, 1, 2), want: "Dec 30, 2024 - Jan 2, 2025"},
		{name: "missing end", start: d(2025, 1, 15), want: UnknownDateRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatRange(tt.start, tt.end))
		})
	}
}
