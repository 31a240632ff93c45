package models

// MProcessingMetrics describes the most recent recompute for health reporting.
type MProcessingMetrics struct {
	RecomputeSeconds float64 `json:"recompute_seconds"`
	WindowedRows     int     `json:"windowed_rows"`
	Buckets          int     `json:"buckets"`
	CacheHit         bool    `json:"cache_hit"`
}
