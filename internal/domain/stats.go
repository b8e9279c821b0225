package domain

// HeatmapRow is one calendar year of the year-by-month grid. Counts always
// has twelve entries (January through December), zero-filled for months
// with no releases within that year.
type HeatmapRow struct {
	Year   string  `json:"year"`
	Counts [12]int `json:"counts"`
	Total  int     `json:"total"`
}

// WeeklySeries is one calendar year of ISO-week buckets. Counts always has
// 53 entries (weeks 1-53); week 53 stays present even in short ISO years.
type WeeklySeries struct {
	Year   string  `json:"year"`
	Counts [53]int `json:"counts"`
}

// ProjectStats aggregates every Release of one project. It is the payload
// embedded into the rendered report, hence the JSON tags.
//
// MonthKeys/YearKeys carry only observed periods, ascending; the monthly
// trend has gaps rather than zeros for unobserved months. MovingAvg is
// aligned to MonthKeys with nil for the first two entries (insufficient
// history). Weekly rows are ordered newest year first.
type ProjectStats struct {
	Name        string         `json:"name"`
	Total       int            `json:"total"`
	FirstDate   string         `json:"firstDate"` // "?" when the project has no releases
	LastDate    string         `json:"lastDate"`  // "?" when the project has no releases
	MonthKeys   []string       `json:"monthKeys"`
	MonthData   []int          `json:"monthData"`
	MovingAvg   []*float64     `json:"movingAvg"`
	YearKeys    []string       `json:"yearKeys"`
	YearData    []int          `json:"yearData"`
	DayData     [7]int         `json:"dayData"` // indexed by weekday, 0=Sunday
	Heatmap     []HeatmapRow   `json:"heatmap"`
	MonthTotals [12]int        `json:"monthTotals"`
	Weekly      []WeeklySeries `json:"weekly"`
}
