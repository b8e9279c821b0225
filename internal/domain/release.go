// Package domain contains the core data structures and date derivation
// logic for the release dashboard.
package domain

import (
	"fmt"
	"time"
)

// Release is a normalized merged pull request. All derived fields are pure
// functions of Date and are recomputed on every load, never persisted.
type Release struct {
	Number    int
	Date      string // YYYY-MM-DD, UTC
	Author    string
	DayOfWeek int    // 0-6, 0=Sunday
	ISOWeek   string // YYYY-Www
	Month     string // YYYY-MM
	Year      string // YYYY
}

// NewRelease normalizes a merged pull request into a Release. The merge
// timestamp is reduced to its UTC calendar date so cached and freshly
// fetched data derive identically regardless of the local time zone.
func NewRelease(number int, mergedAt time.Time, author string) Release {
	t := mergedAt.UTC()
	date := t.Format("2006-01-02")
	return Release{
		Number:    number,
		Date:      date,
		Author:    author,
		DayOfWeek: int(t.Weekday()),
		ISOWeek:   ISOWeekOf(t),
		Month:     date[:7],
		Year:      date[:4],
	}
}

// ParseRelease reconstructs a Release from a cached row. Only number, date
// and author are stored; everything else is re-derived from the date.
func ParseRelease(number int, date, author string) (Release, error) {
	t, err := time.ParseInLocation("2006-01-02", date, time.UTC)
	if err != nil {
		return Release{}, fmt.Errorf("invalid release date %q: %w", date, err)
	}
	return NewRelease(number, t, author), nil
}

// ISOWeekOf returns the ISO-8601 week identifier ("YYYY-Www") of t's UTC
// calendar date. Weeks start on Monday; week 1 is the week containing the
// year's first Thursday, so early January can belong to the previous ISO
// year and late December to the next.
func ISOWeekOf(t time.Time) string {
	year, week := t.UTC().ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}
