package analysis

import (
	"time"

	"index-observer/src/models"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func closeAt(date string, close float64) models.MObservation {
	return models.MObservation{
		IndexName: "NIFTY 50",
		Date:      day(date),
		Close:     models.Float(close),
	}
}

func openClose(date string, open, close float64) models.MObservation {
	o := closeAt(date, close)
	o.Open = models.Float(open)
	return o
}

// dailySeries returns one observation per day from start, closes 1, 2, 3...
func dailySeries(start string, n int) []models.MObservation {
	first := day(start)
	rows := make([]models.MObservation, n)
	for i := range rows {
		rows[i] = closeAt(first.AddDate(0, 0, i).Format("2006-01-02"), float64(i+1))
	}
	return rows
}
