package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestISOWeekOf(t *testing.T) {
	testCases := []struct {
		name     string
		date     string
		expected string
	}{
		{
			name:     "first day of 2024 is already week 1",
			date:     "2024-01-01",
			expected: "2024-W01",
		},
		{
			name:     "Jan 1 2023 is a Sunday and belongs to the previous ISO year",
			date:     "2023-01-01",
			expected: "2022-W52",
		},
		{
			name:     "Dec 29 2020 falls into week 53 of a long ISO year",
			date:     "2020-12-29",
			expected: "2020-W53",
		},
		{
			name:     "Dec 31 2024 belongs to week 1 of the next ISO year",
			date:     "2024-12-31",
			expected: "2025-W01",
		},
		{
			name:     "mid-year date",
			date:     "2024-06-15",
			expected: "2024-W24",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := time.ParseInLocation("2006-01-02", tc.date, time.UTC)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, ISOWeekOf(d))
		})
	}
}

func TestNewRelease(t *testing.T) {
	mergedAt, err := time.Parse(time.RFC3339, "2024-01-05T23:45:00Z")
	require.NoError(t, err)

	r := NewRelease(1234, mergedAt, "alice")

	assert.Equal(t, 1234, r.Number)
	assert.Equal(t, "2024-01-05", r.Date)
	assert.Equal(t, "alice", r.Author)
	assert.Equal(t, 5, r.DayOfWeek) // Friday
	assert.Equal(t, "2024-W01", r.ISOWeek)
	assert.Equal(t, "2024-01", r.Month)
	assert.Equal(t, "2024", r.Year)
}

func TestNewRelease_UsesUTCDate(t *testing.T) {
	// 23:30 in UTC+9 is still the previous day in UTC; derivation must not
	// depend on the machine's local zone.
	jst := time.FixedZone("JST", 9*60*60)
	mergedAt := time.Date(2024, 3, 11, 8, 30, 0, 0, jst) // 2024-03-10 23:30 UTC

	r := NewRelease(1, mergedAt, "bob")

	assert.Equal(t, "2024-03-10", r.Date)
	assert.Equal(t, 0, r.DayOfWeek) // Sunday in UTC
	assert.Equal(t, "2024-W10", r.ISOWeek)
}

func TestParseRelease(t *testing.T) {
	t.Run("re-derives every field from the date", func(t *testing.T) {
		r, err := ParseRelease(42, "2023-01-01", "carol")
		require.NoError(t, err)

		assert.Equal(t, 42, r.Number)
		assert.Equal(t, "2023-01-01", r.Date)
		assert.Equal(t, "carol", r.Author)
		assert.Equal(t, 0, r.DayOfWeek) // Sunday
		assert.Equal(t, "2022-W52", r.ISOWeek)
		assert.Equal(t, "2023-01", r.Month)
		assert.Equal(t, "2023", r.Year)
	})

	t.Run("matches NewRelease for the same calendar date", func(t *testing.T) {
		mergedAt, err := time.Parse(time.RFC3339, "2024-02-29T12:00:00Z")
		require.NoError(t, err)
		fresh := NewRelease(7, mergedAt, "dave")

		parsed, err := ParseRelease(7, fresh.Date, "dave")
		require.NoError(t, err)
		assert.Equal(t, fresh, parsed)
	})

	t.Run("rejects a malformed date", func(t *testing.T) {
		_, err := ParseRelease(1, "2024-13-99", "eve")
		assert.Error(t, err)

		_, err = ParseRelease(1, "not-a-date", "eve")
		assert.Error(t, err)
	})
}
