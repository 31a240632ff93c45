package analysis

import (
	"testing"
	"time"

	"index-observer/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var anchor = day("2024-03-23")

func TestWindowStart(t *testing.T) {
	tests := []struct {
		rng  models.MRange
		want string
	}{
		{models.Range1D, "2024-03-22"},
		{models.Range1W, "2024-03-16"},
		{models.Range1M, "2024-02-23"},
		{models.Range3M, "2023-12-23"},
		{models.Range1Y, "2023-03-23"},
		{models.Range5Y, "2019-03-23"},
		{models.RangeAll, "1900-01-01"},
		{models.MRange("2W"), "2024-02-23"},
		{models.MRange(""), "2024-02-23"},
	}

	for _, tt := range tests {
		t.Run(string(tt.rng), func(t *testing.T) {
			assert.Equal(t, day(tt.want), WindowStart(anchor, tt.rng))
		})
	}
}

func TestWindowStartNormalisesMonthOverflow(t *testing.T) {
	// Feb 31 does not exist and rolls forward into March.
	assert.Equal(t, day("2024-03-02"), WindowStart(day("2024-03-31"), models.Range1M))
	assert.Equal(t, day("2023-03-01"), WindowStart(day("2024-02-29"), models.Range1Y))
}

func TestWindowStartIgnoresTimeOfDay(t *testing.T) {
	withClock := time.Date(2024, 3, 23, 18, 30, 0, 0, time.UTC)
	assert.Equal(t, day("2024-03-16"), WindowStart(withClock, models.Range1W))
}

func TestApplyWindowKeepsRowsInsideInclusiveBounds(t *testing.T) {
	rows := dailySeries("2024-01-01", 120) // through 2024-04-29

	for _, rng := range append(models.KnownRanges, models.MRange("junk")) {
		t.Run(string(rng), func(t *testing.T) {
			res := ApplyWindow(rows, anchor, rng)
			require.False(t, res.Window.FellBack)
			require.NotEmpty(t, res.Rows)

			start := WindowStart(anchor, rng)
			for _, r := range res.Rows {
				assert.False(t, r.Date.Before(start), "row %s before %s", r.Date, start)
				assert.False(t, r.Date.After(anchor), "row %s after anchor", r.Date)
			}
			assert.Equal(t, len(res.Rows), res.Window.Rows)
		})
	}
}

func TestApplyWindowIncludesBothEnds(t *testing.T) {
	rows := []models.MObservation{
		closeAt("2024-03-15", 1),
		closeAt("2024-03-16", 2),
		closeAt("2024-03-23", 3),
		closeAt("2024-03-24", 4),
	}

	res := ApplyWindow(rows, anchor, models.Range1W)

	require.Len(t, res.Rows, 2)
	assert.Equal(t, day("2024-03-16"), res.Rows[0].Date)
	assert.Equal(t, day("2024-03-23"), res.Rows[1].Date)
}

func TestApplyWindowFallsBackToFullInput(t *testing.T) {
	rows := []models.MObservation{
		closeAt("2020-05-01", 10),
		closeAt("2020-05-04", 11),
		{IndexName: "NIFTY 50", Close: models.Float(12)}, // invalid date
	}

	res := ApplyWindow(rows, anchor, models.Range1W)

	assert.True(t, res.Window.FellBack)
	assert.NotEmpty(t, res.Window.Diagnostic)
	assert.Equal(t, rows, res.Rows)
	assert.Equal(t, 3, res.Window.Rows)
}

func TestApplyWindowSkipsInvalidDates(t *testing.T) {
	rows := []models.MObservation{
		{IndexName: "NIFTY 50", Close: models.Float(1)},
		closeAt("2024-03-20", 2),
	}

	res := ApplyWindow(rows, anchor, models.Range1W)

	require.False(t, res.Window.FellBack)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, 2.0, models.Num(res.Rows[0].Close))
}

func TestApplyWindowOnEmptyInput(t *testing.T) {
	res := ApplyWindow(nil, anchor, models.Range1M)
	assert.True(t, res.Window.FellBack)
	assert.Empty(t, res.Rows)
}
