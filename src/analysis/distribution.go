package analysis

import (
	"index-observer/src/models"
)

// -----------------------------------------------------------------------------

// ClassifyRecentMonth tallies the days of the most recent calendar month in
// rows by the sign of close minus open. Rows with an invalid date belong to
// no month. Missing prices count as 0, so a day missing both is a zero day.
func ClassifyRecentMonth(rows []models.MObservation) models.MDistributionTally {
	latest := -1
	var month []models.MObservation

	for _, row := range rows {
		if !row.HasValidDate() {
			continue
		}
		ord := monthOrdinal(row.Date)
		switch {
		case ord > latest:
			latest = ord
			month = []models.MObservation{row}
		case ord == latest:
			month = append(month, row)
		}
	}

	var tally models.MDistributionTally
	if len(month) == 0 {
		return tally
	}
	tally.Month = monthKey(month[0].Date)

	for _, row := range month {
		delta := models.Num(row.Close) - models.Num(row.Open)
		switch {
		case delta > 0:
			tally.PositiveDays++
		case delta < 0:
			tally.NegativeDays++
		default:
			tally.ZeroDays++
		}
	}

	return tally
}
