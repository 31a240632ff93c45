package core

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// -----------------------------------------------------------------------------

// CalculateChangePercent returns the change from previous to current in
// percent. A previous value of exactly 0 yields 0 instead of Inf/NaN.
func CalculateChangePercent(current, previous float64) float64 {
	if previous == 0 {
		return 0.0
	}
	return (current - previous) / previous * 100
}

// -----------------------------------------------------------------------------

// Round2 rounds v to two decimals, half away from zero on its shortest
// decimal representation.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// -----------------------------------------------------------------------------

// Fixed2 formats v with exactly two decimals.
func Fixed2(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// -----------------------------------------------------------------------------

// SignedChangeLabel renders a change and its percentage, e.g. "+15.00 (15.79%)".
func SignedChangeLabel(change, percent float64) string {
	sign := ""
	if change >= 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s%s (%s%%)", sign, Fixed2(change), Fixed2(percent))
}
