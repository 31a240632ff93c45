package analysis

import (
	"index-observer/src/analysis/core"
	"index-observer/src/models"
)

// -----------------------------------------------------------------------------

// DeriveMetrics computes the comparison statistics of a close series that is
// ascending by date. With a single value, previous equals latest. An empty
// series yields a zero snapshot marked Empty.
func DeriveMetrics(closes []float64) models.MMetricsSnapshot {
	if len(closes) == 0 {
		return models.MMetricsSnapshot{Empty: true}
	}

	latest := closes[len(closes)-1]
	previous := latest
	if len(closes) > 1 {
		previous = closes[len(closes)-2]
	}
	high, low := core.MaxMin(closes)
	mean, std := core.CalculateMeanStd(closes)

	return models.MMetricsSnapshot{
		Latest:        latest,
		Previous:      previous,
		Change:        latest - previous,
		PercentChange: core.CalculateChangePercent(latest, previous),
		High:          high,
		Low:           low,
		Average:       mean,
		StdDev:        std,
	}
}

// -----------------------------------------------------------------------------

// DisplayMetrics renders a snapshot with two decimals.
func DisplayMetrics(m models.MMetricsSnapshot) models.MMetricsDisplay {
	return models.MMetricsDisplay{
		Latest:        core.Fixed2(m.Latest),
		Previous:      core.Fixed2(m.Previous),
		Change:        core.Fixed2(m.Change),
		PercentChange: core.Fixed2(m.PercentChange),
		High:          core.Fixed2(m.High),
		Low:           core.Fixed2(m.Low),
		Average:       core.Fixed2(m.Average),
		StdDev:        core.Fixed2(m.StdDev),
		ChangeLabel:   core.SignedChangeLabel(m.Change, m.PercentChange),
	}
}
