package indicator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMA_AlignedWithInput(t *testing.T) {
	result := SMA([]float64{10, 20, 30, 40}, 2)

	require.Len(t, result, 4)
	assert.True(t, math.IsNaN(result[0]))
	assert.InDelta(t, 15, result[1], 1e-9)
	assert.InDelta(t, 25, result[2], 1e-9)
	assert.InDelta(t, 35, result[3], 1e-9)
}

func TestSMA_SeriesShorterThanPeriod(t *testing.T) {
	result := SMA([]float64{10, 20}, 5)

	require.Len(t, result, 2)
	for _, v := range result {
		assert.True(t, math.IsNaN(v))
	}
}

func TestSMA_ConstantSeries(t *testing.T) {
	result := SMA([]float64{7, 7, 7, 7, 7}, 3)

	for i := 2; i < len(result); i++ {
		assert.InDelta(t, 7, result[i], 1e-9)
	}
}

func TestEMA_SeededWithFirstValue(t *testing.T) {
	series := []float64{10, 12, 14}
	result := EMA(series, 3)

	require.Len(t, result, 3)
	assert.InDelta(t, 10, result[0], 1e-9)

	// k = 2/(3+1) = 0.5
	assert.InDelta(t, 11, result[1], 1e-9)
	assert.InDelta(t, 12.5, result[2], 1e-9)
}

func TestEMA_Empty(t *testing.T) {
	assert.Nil(t, EMA(nil, 5))
}

func TestWMA_WeightsRecentPricesHigher(t *testing.T) {
	result := WMA([]float64{1, 2, 3}, 3)

	require.Len(t, result, 3)
	assert.True(t, math.IsNaN(result[0]))
	assert.True(t, math.IsNaN(result[1]))

	// (3*3 + 2*2 + 1*1) / 6
	assert.InDelta(t, 14.0/6.0, result[2], 1e-9)
}

func TestWMA_AboveSMAOnRisingSeries(t *testing.T) {
	series := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	wma := WMA(series, 4)
	sma := SMA(series, 4)

	for i := 3; i < len(series); i++ {
		assert.Greater(t, wma[i], sma[i])
	}
}
