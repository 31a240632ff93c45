package core

import "math"

// -----------------------------------------------------------------------------

// Mean returns the arithmetic mean of data, or 0 for an empty slice.
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range data {
		sum += v
	}
	return sum / float64(len(data))
}

// -----------------------------------------------------------------------------

// MaxMin returns the largest and smallest values of data. Both are 0 for an
// empty slice.
func MaxMin(data []float64) (float64, float64) {
	if len(data) == 0 {
		return 0, 0
	}
	high := math.Inf(-1)
	low := math.Inf(1)
	for _, v := range data {
		if v > high {
			high = v
		}
		if v < low {
			low = v
		}
	}
	return high, low
}

// -----------------------------------------------------------------------------

// CalculateMeanStd computes mean and population standard deviation.
func CalculateMeanStd(data []float64) (float64, float64) {
	if len(data) == 0 {
		return 0, 0
	}

	mean := Mean(data)

	// For single element, return std = 0
	if len(data) == 1 {
		return mean, 0
	}

	varianceSum := 0.0
	for _, v := range data {
		varianceSum += (v - mean) * (v - mean)
	}
	std := math.Sqrt(varianceSum / float64(len(data)))
	return mean, std
}
