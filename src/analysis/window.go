package analysis

import (
	"fmt"
	"time"

	"index-observer/src/models"
)

// EpochAll is the start date used for the ALL range; it predates any
// realistic index history.
var EpochAll = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// -----------------------------------------------------------------------------

// DateOnly truncates t to its UTC calendar date.
func DateOnly(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// -----------------------------------------------------------------------------

// WindowStart returns the first date included by range r relative to anchor.
// Unknown tokens get the one-month default.
func WindowStart(anchor time.Time, r models.MRange) time.Time {
	anchor = DateOnly(anchor)
	switch r {
	case models.Range1D:
		return anchor.AddDate(0, 0, -1)
	case models.Range1W:
		return anchor.AddDate(0, 0, -7)
	case models.Range1M:
		return anchor.AddDate(0, -1, 0)
	case models.Range3M:
		return anchor.AddDate(0, -3, 0)
	case models.Range1Y:
		return anchor.AddDate(-1, 0, 0)
	case models.Range5Y:
		return anchor.AddDate(-5, 0, 0)
	case models.RangeAll:
		return EpochAll
	default:
		return anchor.AddDate(0, -1, 0)
	}
}

// -----------------------------------------------------------------------------

// ApplyWindow keeps the rows dated within [start, anchor], preserving input
// order. Rows with an invalid date never match. When nothing matches, the
// full input is returned and the window is flagged as a fallback.
func ApplyWindow(rows []models.MObservation, anchor time.Time, r models.MRange) models.MWindowResult {
	anchor = DateOnly(anchor)
	start := WindowStart(anchor, r)

	window := models.MWindow{
		Range:  r,
		Start:  start,
		Anchor: anchor,
	}

	filtered := make([]models.MObservation, 0, len(rows))
	for _, row := range rows {
		if !row.HasValidDate() {
			continue
		}
		d := DateOnly(row.Date)
		if !d.Before(start) && !d.After(anchor) {
			filtered = append(filtered, row)
		}
	}

	if len(filtered) == 0 {
		window.Rows = len(rows)
		window.FellBack = true
		window.Diagnostic = fmt.Sprintf(
			"no observations between %s and %s for range %s; falling back to all %d observations",
			start.Format("2006-01-02"), anchor.Format("2006-01-02"), r, len(rows),
		)
		return models.MWindowResult{Window: window, Rows: rows}
	}

	window.Rows = len(filtered)
	return models.MWindowResult{Window: window, Rows: filtered}
}
