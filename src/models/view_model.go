package models

import "time"

// MWindow is the inclusive [Start, Anchor] date range selected by a range token.
type MWindow struct {
	Range      MRange    `json:"range"`
	Start      time.Time `json:"start"`
	Anchor     time.Time `json:"anchor"`
	Rows       int       `json:"rows"`
	FellBack   bool      `json:"fell_back"`
	Diagnostic string    `json:"diagnostic,omitempty"`
}

// MWindowResult carries the rows that survived windowing plus the window itself.
type MWindowResult struct {
	Window MWindow
	Rows   []MObservation
}

// MMetricsSnapshot holds the comparison statistics of a close-price series.
// Values are unrounded; use the display form for presentation.
type MMetricsSnapshot struct {
	Latest        float64 `json:"latest"`
	Previous      float64 `json:"previous"`
	Change        float64 `json:"change"`
	PercentChange float64 `json:"percent_change"`
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
	Average       float64 `json:"average"`
	StdDev        float64 `json:"std_dev"`
	Empty         bool    `json:"empty"`
}

// MMetricsDisplay is MMetricsSnapshot rendered to two decimals.
type MMetricsDisplay struct {
	Latest        string `json:"latest"`
	Previous      string `json:"previous"`
	Change        string `json:"change"`
	PercentChange string `json:"percent_change"`
	High          string `json:"high"`
	Low           string `json:"low"`
	Average       string `json:"average"`
	StdDev        string `json:"std_dev"`
	ChangeLabel   string `json:"change_label"` // e.g. "+15.00 (15.79%)"
}

// MDistributionTally counts the days of the most recent month by close-open sign.
type MDistributionTally struct {
	Month        string `json:"month,omitempty"` // "2024-03"
	PositiveDays int    `json:"positive_days"`
	NegativeDays int    `json:"negative_days"`
	ZeroDays     int    `json:"zero_days"`
}

// MMonthlyTrend is a pair of parallel series: month labels and mean closes.
type MMonthlyTrend struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// MChartSeries holds the per-bucket series a line chart consumes.
type MChartSeries struct {
	Labels []string  `json:"labels"` // D/M/YYYY
	Close  []float64 `json:"close"`
	Open   []float64 `json:"open"`
	High   []float64 `json:"high"`
	Low    []float64 `json:"low"`
	Volume []float64 `json:"volume"`
}

// MQuoteDetails describes the latest bucket of the resampled series.
type MQuoteDetails struct {
	PreviousClose string `json:"previous_close"`
	Open          string `json:"open"`
	DaysRange     string `json:"days_range"`
	Volume        string `json:"volume"`
	PERatio       string `json:"pe_ratio"`
	PBRatio       string `json:"pb_ratio"`
	Turnover      string `json:"turnover"`
	PointsChange  string `json:"points_change"`
	ChangePercent string `json:"change_percent"`
	DivYield      string `json:"div_yield"`
}

// MViewModel is the complete, consistent output of one recompute.
type MViewModel struct {
	Index          string             `json:"index"`
	DatasetVersion uint64             `json:"dataset_version"`
	Window         MWindow            `json:"window"`
	Granularity    Granularity        `json:"granularity"`
	Buckets        []MBucket          `json:"buckets"`
	Chart          MChartSeries       `json:"chart"`
	Metrics        MMetricsSnapshot   `json:"metrics"`
	Display        MMetricsDisplay    `json:"display"`
	Quote          MQuoteDetails      `json:"quote"`
	Distribution   MDistributionTally `json:"distribution"`
	MonthlyTrend   MMonthlyTrend      `json:"monthly_trend"`
	ComputedAt     time.Time          `json:"computed_at"`
}
