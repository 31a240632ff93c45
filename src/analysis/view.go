package analysis

import (
	"fmt"
	"time"

	"index-observer/src/analysis/core"
	"index-observer/src/models"
)

// -----------------------------------------------------------------------------

// BuildView runs the whole pipeline for one index: window, then resample and
// metrics on one branch, distribution and monthly trend on the other. rows
// must already be restricted to the index and to rows carrying a close. The
// result depends only on the arguments; rows is never modified.
func BuildView(rows []models.MObservation, index string, rng models.MRange, anchor time.Time) models.MViewModel {
	windowed := ApplyWindow(rows, anchor, rng)

	resampler := &TimeSeriesResampler{}
	buckets := resampler.Resample(windowed.Rows, rng)
	metrics := DeriveMetrics(CloseSeries(buckets))

	return models.MViewModel{
		Index:        index,
		Window:       windowed.Window,
		Granularity:  rng.Granularity(),
		Buckets:      buckets,
		Chart:        ChartSeries(buckets),
		Metrics:      metrics,
		Display:      DisplayMetrics(metrics),
		Quote:        QuoteDetails(buckets),
		Distribution: ClassifyRecentMonth(windowed.Rows),
		MonthlyTrend: SummarizeMonthlyTrend(windowed.Rows),
	}
}

// -----------------------------------------------------------------------------

// ChartSeries splits buckets into the parallel series a line chart plots.
func ChartSeries(buckets []models.MBucket) models.MChartSeries {
	s := models.MChartSeries{
		Labels: make([]string, len(buckets)),
		Close:  make([]float64, len(buckets)),
		Open:   make([]float64, len(buckets)),
		High:   make([]float64, len(buckets)),
		Low:    make([]float64, len(buckets)),
		Volume: make([]float64, len(buckets)),
	}
	for i, b := range buckets {
		s.Labels[i] = ChartLabel(b.Date)
		s.Close[i] = b.Close
		s.Open[i] = b.Open
		s.High[i] = b.High
		s.Low[i] = b.Low
		s.Volume[i] = b.Volume
	}
	return s
}

// -----------------------------------------------------------------------------

// ChartLabel formats a bucket date as D/M/YYYY.
func ChartLabel(t time.Time) string {
	if t.IsZero() {
		return "Invalid Date"
	}
	y, m, d := t.UTC().Date()
	return fmt.Sprintf("%d/%d/%d", d, int(m), y)
}

// -----------------------------------------------------------------------------

// QuoteDetails describes the latest bucket, with the bucket before it as the
// previous close.
func QuoteDetails(buckets []models.MBucket) models.MQuoteDetails {
	if len(buckets) == 0 {
		return models.MQuoteDetails{}
	}

	latest := buckets[len(buckets)-1]
	previous := latest
	if len(buckets) > 1 {
		previous = buckets[len(buckets)-2]
	}

	return models.MQuoteDetails{
		PreviousClose: core.Fixed2(previous.Close),
		Open:          core.Fixed2(latest.Open),
		DaysRange:     core.Fixed2(latest.Low) + " - " + core.Fixed2(latest.High),
		Volume:        core.Fixed2(latest.Volume),
		PERatio:       core.Fixed2(latest.PE),
		PBRatio:       core.Fixed2(latest.PB),
		Turnover:      core.Fixed2(latest.Turnover),
		PointsChange:  core.Fixed2(latest.PointsChange),
		ChangePercent: core.Fixed2(latest.ChangePercent),
		DivYield:      core.Fixed2(latest.DivYield),
	}
}
