package usecase

import (
	"fmt"
	"sort"

	"github.com/montanaflynn/stats"

	"github.com/rnaudi/releases/internal/domain"
)

// movingWindow is the trailing window length of the monthly moving average.
const movingWindow = 3

// unknownDate is the sentinel shown when a project has no releases. The
// report layer expects two always-present strings, never nulls.
const unknownDate = "?"

// Aggregate derives the full statistics for one project from its release
// list. The input is expected sorted ascending by date (both the fetcher
// and the cache produce that order) and is not mutated.
func Aggregate(name string, releases []domain.Release) *domain.ProjectStats {
	ps := &domain.ProjectStats{
		Name:      name,
		Total:     len(releases),
		FirstDate: unknownDate,
		LastDate:  unknownDate,
	}
	if len(releases) > 0 {
		ps.FirstDate = releases[0].Date
		ps.LastDate = releases[len(releases)-1].Date
	}

	monthCounts := make(map[string]int)
	yearCounts := make(map[string]int)
	weekCounts := make(map[string]int)
	for _, r := range releases {
		monthCounts[r.Month]++
		yearCounts[r.Year]++
		weekCounts[r.ISOWeek]++
		ps.DayData[r.DayOfWeek]++
	}

	// Only observed months and years appear, ascending; the monthly trend
	// keeps gaps, not zeros, for months with no releases.
	ps.MonthKeys = sortedKeys(monthCounts)
	ps.MonthData = make([]int, len(ps.MonthKeys))
	for i, k := range ps.MonthKeys {
		ps.MonthData[i] = monthCounts[k]
	}
	ps.YearKeys = sortedKeys(yearCounts)
	ps.YearData = make([]int, len(ps.YearKeys))
	for i, k := range ps.YearKeys {
		ps.YearData[i] = yearCounts[k]
	}

	ps.MovingAvg = movingAverage(ps.MonthData)

	// Heatmap rows ascend by year; within an observed year missing months
	// are zero-filled.
	ps.Heatmap = make([]domain.HeatmapRow, 0, len(ps.YearKeys))
	for _, year := range ps.YearKeys {
		row := domain.HeatmapRow{Year: year}
		for m := 0; m < 12; m++ {
			n := monthCounts[fmt.Sprintf("%s-%02d", year, m+1)]
			row.Counts[m] = n
			row.Total += n
			ps.MonthTotals[m] += n
		}
		ps.Heatmap = append(ps.Heatmap, row)
	}

	// Weekly series are shown newest year first. Buckets are keyed by the
	// ISO week identifier scoped to the row's year, so a late-December
	// release can land in the next year's week 1 bucket and week 53 stays
	// present even in short ISO years.
	ps.Weekly = make([]domain.WeeklySeries, 0, len(ps.YearKeys))
	for i := len(ps.YearKeys) - 1; i >= 0; i-- {
		year := ps.YearKeys[i]
		series := domain.WeeklySeries{Year: year}
		for w := 1; w <= 53; w++ {
			series.Counts[w-1] = weekCounts[fmt.Sprintf("%s-W%02d", year, w)]
		}
		ps.Weekly = append(ps.Weekly, series)
	}

	return ps
}

// movingAverage returns the trailing 3-month average aligned to the input,
// rounded to one decimal (half away from zero). The first two entries are
// nil: not enough history.
func movingAverage(monthData []int) []*float64 {
	avg := make([]*float64, len(monthData))
	for i := movingWindow - 1; i < len(monthData); i++ {
		window := make([]float64, movingWindow)
		for j := 0; j < movingWindow; j++ {
			window[j] = float64(monthData[i-movingWindow+1+j])
		}
		// The window is never empty and the mean of counts is never NaN,
		// so neither call can fail.
		mean, _ := stats.Mean(window)
		rounded, _ := stats.Round(mean, 1)
		avg[i] = &rounded
	}
	return avg
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
