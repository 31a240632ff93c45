package models

import "time"

// MBucket is one point of a resampled series. For daily ranges it mirrors a
// single observation; for weekly and monthly ranges every numeric field is the
// mean of the member observations and Date is the first member's date.
type MBucket struct {
	Date          time.Time `json:"date"`
	Close         float64   `json:"close"`
	Open          float64   `json:"open"`
	High          float64   `json:"high"`
	Low           float64   `json:"low"`
	Volume        float64   `json:"volume"`
	PE            float64   `json:"pe_ratio"`
	PB            float64   `json:"pb_ratio"`
	Turnover      float64   `json:"turnover"`
	PointsChange  float64   `json:"points_change"`
	ChangePercent float64   `json:"change_percent"`
	DivYield      float64   `json:"div_yield"`
	Members       int       `json:"members"`
}
