package analysis

import (
	"fmt"
	"time"
)

const invalidKey = "invalid"

// -----------------------------------------------------------------------------

// WeekStart returns the Sunday that opens the week containing t.
func WeekStart(t time.Time) time.Time {
	d := DateOnly(t)
	return d.AddDate(0, 0, -int(d.Weekday()))
}

// -----------------------------------------------------------------------------

func weekKey(t time.Time) string {
	if t.IsZero() {
		return invalidKey
	}
	return WeekStart(t).Format("2006-01-02")
}

// -----------------------------------------------------------------------------

func monthKey(t time.Time) string {
	if t.IsZero() {
		return invalidKey
	}
	y, m, _ := t.UTC().Date()
	return fmt.Sprintf("%04d-%02d", y, int(m))
}

// -----------------------------------------------------------------------------

// monthOrdinal orders (year, month) pairs chronologically.
func monthOrdinal(t time.Time) int {
	y, m, _ := t.UTC().Date()
	return y*12 + int(m) - 1
}
