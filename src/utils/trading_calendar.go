package utils

import (
	"strings"
	"time"

	"github.com/scmhub/calendar"
)

// MaxSnapDays bounds how far back ResolveAnchor looks for a session.
const MaxSnapDays = 31

// TradingCalendar decides which calendar dates were trading sessions,
// using scmhub/calendar.
type TradingCalendar struct {
	Calendar *calendar.Calendar
	Fallback bool
	Timezone *time.Location
}

// -----------------------------------------------------------------------------

// NewTradingCalendar loads the calendar of the exchange identified by mic
// (ISO 10383, e.g. "xnys"). Unknown codes fall back to a Mon-Fri week.
func NewTradingCalendar(mic string) *TradingCalendar {
	mic = strings.ToLower(strings.TrimSpace(mic))
	if mic == "" {
		mic = "xnys"
	}

	cal := calendar.GetCalendar(mic)
	if cal == nil {
		return &TradingCalendar{Fallback: true, Timezone: time.UTC}
	}

	return &TradingCalendar{Calendar: cal, Fallback: false, Timezone: cal.Loc}
}

// -----------------------------------------------------------------------------

// IsTradingDay reports whether the calendar date of date was a session.
// Only year, month and day are used.
func (tc *TradingCalendar) IsTradingDay(date time.Time) bool {
	loc := tc.Timezone
	if loc == nil {
		loc = time.UTC
	}
	// noon keeps the date stable across the exchange's UTC offset
	local := time.Date(date.Year(), date.Month(), date.Day(), 12, 0, 0, 0, loc)

	if tc.Fallback {
		weekday := local.Weekday()
		return weekday != time.Saturday && weekday != time.Sunday
	}
	return tc.Calendar.IsBusinessDay(local)
}

// -----------------------------------------------------------------------------

// LastSession returns date itself when it was a session, otherwise the
// closest earlier session within MaxSnapDays. The result is a UTC date.
func (tc *TradingCalendar) LastSession(date time.Time) time.Time {
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	for i := 0; i < MaxSnapDays; i++ {
		candidate := d.AddDate(0, 0, -i)
		if tc.IsTradingDay(candidate) {
			return candidate
		}
	}
	return d
}

// -----------------------------------------------------------------------------

// ResolveAnchor turns the configured anchor into the date windows end on.
// With snap set, a weekend or holiday anchor moves back to the last session
// of the exchange mic.
func ResolveAnchor(date time.Time, snap bool, mic string) time.Time {
	if !snap {
		return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	}
	return NewTradingCalendar(mic).LastSession(date)
}
