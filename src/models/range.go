package models

import "strings"

// MRange is the symbolic range selector chosen in the UI.
type MRange string

const (
	Range1D  MRange = "1D"
	Range1W  MRange = "1W"
	Range1M  MRange = "1M"
	Range3M  MRange = "3M"
	Range1Y  MRange = "1Y"
	Range5Y  MRange = "5Y"
	RangeAll MRange = "ALL"
)

// KnownRanges lists the selectors offered to clients, shortest first.
var KnownRanges = []MRange{Range1D, Range1W, Range1M, Range3M, Range1Y, Range5Y, RangeAll}

// -----------------------------------------------------------------------------

// ParseRange normalises user input. Unknown tokens are kept as-is; the engine
// treats them with its default policy rather than rejecting them.
func ParseRange(s string) MRange {
	return MRange(strings.ToUpper(strings.TrimSpace(s)))
}

// -----------------------------------------------------------------------------

// IsKnown reports whether r is one of KnownRanges.
func (r MRange) IsKnown() bool {
	for _, k := range KnownRanges {
		if r == k {
			return true
		}
	}
	return false
}

// -----------------------------------------------------------------------------

// Granularity is the resampling unit a range maps to.
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

// Granularity returns the resampling unit for r. ALL and unknown tokens fall
// through to monthly buckets.
func (r MRange) Granularity() Granularity {
	switch r {
	case Range1D, Range1W, Range1M, Range1Y:
		return GranularityDay
	case Range3M:
		return GranularityWeek
	default:
		return GranularityMonth
	}
}
