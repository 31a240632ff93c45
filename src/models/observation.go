package models

import (
	"math"
	"time"
)

// MObservation is one daily record of a market index as delivered by ingestion.
// Numeric fields are nil when the source cell was missing or non-numeric.
type MObservation struct {
	IndexName     string    `json:"index_name"`
	Date          time.Time `json:"index_date"` // zero value marks an unparseable date
	Close         *float64  `json:"closing_index_value"`
	Open          *float64  `json:"open_index_value"`
	High          *float64  `json:"high_index_value"`
	Low           *float64  `json:"low_index_value"`
	Volume        *float64  `json:"volume"`
	PE            *float64  `json:"pe_ratio"`
	PB            *float64  `json:"pb_ratio"`
	Turnover      *float64  `json:"turnover_rs_cr"`
	PointsChange  *float64  `json:"points_change"`
	ChangePercent *float64  `json:"change_percent"`
	DivYield      *float64  `json:"div_yield"`
}

// -----------------------------------------------------------------------------

// HasValidDate reports whether the observation carries a parseable date.
func (o MObservation) HasValidDate() bool {
	return !o.Date.IsZero()
}

// -----------------------------------------------------------------------------

// Float returns a pointer to v, used to build observations in code and tests.
func Float(v float64) *float64 {
	return &v
}

// -----------------------------------------------------------------------------

// Num coerces a nullable numeric field to a usable float. Missing, NaN and
// infinite values all become 0.
func Num(v *float64) float64 {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return 0
	}
	return *v
}
