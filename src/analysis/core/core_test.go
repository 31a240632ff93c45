package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMeanAndMaxMin(t *testing.T) {
	data := []float64{100, 105, 95, 110}

	assert.Equal(t, 102.5, Mean(data))
	high, low := MaxMin(data)
	assert.Equal(t, 110.0, high)
	assert.Equal(t, 95.0, low)

	assert.Equal(t, 0.0, Mean(nil))
	high, low = MaxMin(nil)
	assert.Equal(t, 0.0, high)
	assert.Equal(t, 0.0, low)
}

func TestCalculateMeanStd(t *testing.T) {
	mean, std := CalculateMeanStd([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	assert.Equal(t, 5.0, mean)
	assert.Equal(t, 2.0, std)

	mean, std = CalculateMeanStd([]float64{3})
	assert.Equal(t, 3.0, mean)
	assert.Equal(t, 0.0, std)
}

func TestCalculateChangePercent(t *testing.T) {
	assert.InDelta(t, 15.789, CalculateChangePercent(110, 95), 0.001)
	assert.Equal(t, 0.0, CalculateChangePercent(110, 0))
	assert.Equal(t, 0.0, CalculateChangePercent(0, 0))
	assert.False(t, math.IsNaN(CalculateChangePercent(0, 0)))
}

func TestRoundingAndFormatting(t *testing.T) {
	assert.Equal(t, 15.79, Round2(15.789473684210526))
	assert.Equal(t, -1.24, Round2(-1.235))
	assert.Equal(t, "102.50", Fixed2(102.5))
	assert.Equal(t, "0.00", Fixed2(0))
	assert.Equal(t, "+15.00 (15.79%)", SignedChangeLabel(15, 15.789473684210526))
	assert.Equal(t, "-5.00 (-4.76%)", SignedChangeLabel(-5, -4.761904761904762))
	assert.Equal(t, "+0.00 (0.00%)", SignedChangeLabel(0, 0))
}
