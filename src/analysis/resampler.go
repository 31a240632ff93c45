package analysis

import (
	"sort"
	"time"

	"index-observer/src/models"
)

// TimeSeriesResampler turns windowed observations into the series a range
// displays: daily rows as-is, or weekly / monthly averages.
type TimeSeriesResampler struct{}

// BucketGroup is one calendar group found while resampling. Date is the date
// of the first member encountered, not the calendar boundary of the group.
type BucketGroup struct {
	Key     string
	Date    time.Time
	Indices []int
}

// -----------------------------------------------------------------------------

// GroupIndices groups positions of dates by the calendar unit g, in order of
// first appearance. Invalid (zero) dates share a single group.
func (r *TimeSeriesResampler) GroupIndices(dates []time.Time, g models.Granularity) []BucketGroup {
	if len(dates) == 0 {
		return []BucketGroup{}
	}

	keyOf := monthKey
	if g == models.GranularityWeek {
		keyOf = weekKey
	}

	var groups []BucketGroup
	position := make(map[string]int)

	for i, d := range dates {
		key := keyOf(d)
		idx, ok := position[key]
		if !ok {
			idx = len(groups)
			position[key] = idx
			groups = append(groups, BucketGroup{Key: key, Date: d})
		}
		groups[idx].Indices = append(groups[idx].Indices, i)
	}

	return groups
}

// -----------------------------------------------------------------------------

// ResampleData returns actual data groupings (convenience function)
func ResampleData[T any](
	r *TimeSeriesResampler,
	dates []time.Time,
	data []T,
	g models.Granularity,
) []struct {
	Data []T
	Date time.Time
} {
	var results []struct {
		Data []T
		Date time.Time
	}

	for _, group := range r.GroupIndices(dates, g) {
		dataSlice := make([]T, 0, len(group.Indices))
		for _, idx := range group.Indices {
			if idx < len(data) {
				dataSlice = append(dataSlice, data[idx])
			}
		}

		results = append(results, struct {
			Data []T
			Date time.Time
		}{
			Data: dataSlice,
			Date: group.Date,
		})
	}

	return results
}

// -----------------------------------------------------------------------------

// Resample converts windowed rows into buckets for range rng. The result is
// ascending by bucket date with invalid dates last. Input is not modified.
func (r *TimeSeriesResampler) Resample(rows []models.MObservation, rng models.MRange) []models.MBucket {
	g := rng.Granularity()

	var buckets []models.MBucket
	if g == models.GranularityDay {
		buckets = make([]models.MBucket, 0, len(rows))
		for _, row := range rows {
			buckets = append(buckets, averageBucket(row.Date, []models.MObservation{row}))
		}
	} else {
		dates := make([]time.Time, len(rows))
		for i, row := range rows {
			dates[i] = row.Date
		}
		for _, group := range ResampleData(r, dates, rows, g) {
			buckets = append(buckets, averageBucket(group.Date, group.Data))
		}
	}

	SortBuckets(buckets)
	return buckets
}

// -----------------------------------------------------------------------------

// SortBuckets orders buckets ascending by date; invalid dates sort last and
// equal dates keep their relative order.
func SortBuckets(buckets []models.MBucket) {
	sort.SliceStable(buckets, func(i, j int) bool {
		return dateLess(buckets[i].Date, buckets[j].Date)
	})
}

// -----------------------------------------------------------------------------

func dateLess(a, b time.Time) bool {
	switch {
	case a.IsZero():
		return false
	case b.IsZero():
		return true
	default:
		return a.Before(b)
	}
}

// -----------------------------------------------------------------------------

// averageBucket builds one bucket whose numeric fields are the mean of the
// members' coerced values.
func averageBucket(date time.Time, members []models.MObservation) models.MBucket {
	b := models.MBucket{Date: date, Members: len(members)}
	if len(members) == 0 {
		return b
	}

	for _, m := range members {
		b.Close += models.Num(m.Close)
		b.Open += models.Num(m.Open)
		b.High += models.Num(m.High)
		b.Low += models.Num(m.Low)
		b.Volume += models.Num(m.Volume)
		b.PE += models.Num(m.PE)
		b.PB += models.Num(m.PB)
		b.Turnover += models.Num(m.Turnover)
		b.PointsChange += models.Num(m.PointsChange)
		b.ChangePercent += models.Num(m.ChangePercent)
		b.DivYield += models.Num(m.DivYield)
	}

	n := float64(len(members))
	b.Close /= n
	b.Open /= n
	b.High /= n
	b.Low /= n
	b.Volume /= n
	b.PE /= n
	b.PB /= n
	b.Turnover /= n
	b.PointsChange /= n
	b.ChangePercent /= n
	b.DivYield /= n

	return b
}

// -----------------------------------------------------------------------------

// CloseSeries extracts the close values of buckets in order.
func CloseSeries(buckets []models.MBucket) []float64 {
	out := make([]float64, len(buckets))
	for i, b := range buckets {
		out[i] = b.Close
	}
	return out
}
