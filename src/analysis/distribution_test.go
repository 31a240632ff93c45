package analysis

import (
	"testing"

	"index-observer/src/models"

	"github.com/stretchr/testify/assert"
)

func TestClassifyRecentMonth(t *testing.T) {
	rows := []models.MObservation{
		openClose("2024-02-28", 1, 100), // older month, ignored
		openClose("2024-03-01", 10, 12),
		openClose("2024-03-04", 12, 11),
		openClose("2024-03-05", 9, 9),
	}

	got := ClassifyRecentMonth(rows)

	assert.Equal(t, models.MDistributionTally{
		Month:        "2024-03",
		PositiveDays: 1,
		NegativeDays: 1,
		ZeroDays:     1,
	}, got)
}

func TestClassifyRecentMonthPicksLatestRegardlessOfOrder(t *testing.T) {
	rows := []models.MObservation{
		openClose("2024-03-01", 10, 12),
		openClose("2023-12-01", 10, 5),
		openClose("2024-03-02", 10, 15),
		openClose("2023-12-02", 10, 5),
	}

	got := ClassifyRecentMonth(rows)

	assert.Equal(t, "2024-03", got.Month)
	assert.Equal(t, 2, got.PositiveDays)
	assert.Equal(t, 0, got.NegativeDays)
}

func TestClassifyRecentMonthCoercesMissingPrices(t *testing.T) {
	rows := []models.MObservation{
		{IndexName: "X", Date: day("2024-03-01")},                         // both missing: zero day
		{IndexName: "X", Date: day("2024-03-02"), Close: models.Float(5)}, // open missing: positive
		{IndexName: "X", Open: models.Float(9), Close: models.Float(1)},   // invalid date: ignored
	}

	got := ClassifyRecentMonth(rows)

	assert.Equal(t, 1, got.PositiveDays)
	assert.Equal(t, 0, got.NegativeDays)
	assert.Equal(t, 1, got.ZeroDays)
}

func TestClassifyRecentMonthEmpty(t *testing.T) {
	assert.Equal(t, models.MDistributionTally{}, ClassifyRecentMonth(nil))
}
