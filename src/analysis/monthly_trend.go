package analysis

import (
	"sort"
	"time"

	"index-observer/src/analysis/core"
	"index-observer/src/models"
)

// TrendMonths is how many trailing months the monthly trend keeps.
const TrendMonths = 8

// NoDataLabel is the placeholder label of an empty trend.
const NoDataLabel = "No Data"

// -----------------------------------------------------------------------------

// SummarizeMonthlyTrend averages the close of each calendar month in rows and
// keeps the last TrendMonths months. It never returns empty series: with no
// months it returns the single pair ("No Data", 0).
func SummarizeMonthlyTrend(rows []models.MObservation) models.MMonthlyTrend {
	type group struct {
		earliest time.Time
		closes   []float64
	}

	groups := make(map[string]*group)
	for _, row := range rows {
		if !row.HasValidDate() {
			continue
		}
		key := monthKey(row.Date)
		g, ok := groups[key]
		if !ok {
			g = &group{earliest: row.Date}
			groups[key] = g
		}
		if row.Date.Before(g.earliest) {
			g.earliest = row.Date
		}
		g.closes = append(g.closes, models.Num(row.Close))
	}

	if len(groups) == 0 {
		return models.MMonthlyTrend{
			Labels: []string{NoDataLabel},
			Values: []float64{0},
		}
	}

	ordered := make([]*group, 0, len(groups))
	for _, g := range groups {
		ordered = append(ordered, g)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].earliest.Before(ordered[j].earliest)
	})
	if len(ordered) > TrendMonths {
		ordered = ordered[len(ordered)-TrendMonths:]
	}

	trend := models.MMonthlyTrend{
		Labels: make([]string, len(ordered)),
		Values: make([]float64, len(ordered)),
	}
	for i, g := range ordered {
		trend.Labels[i] = g.earliest.Format("Jan")
		trend.Values[i] = core.Mean(g.closes)
	}

	return trend
}
