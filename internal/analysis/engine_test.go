package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/defailabz/mvp-backend/internal/domain"
	"github.com/defailabz/mvp-backend/internal/indicator"
)

func TestRecommend(t *testing.T) {
	tests := []struct {
		name     string
		rsi      float64
		momentum float64
		trend    float64
		didi     DidiIndex
		want     Signal
	}{
		{
			name: "oversold with uptrend",
			rsi:  25, momentum: 0, trend: 1,
			didi: DidiIndex{Signal: SignalNeutral},
			want: SignalBuy,
		},
		{
			name: "overbought after run-up",
			rsi:  80, momentum: 25, trend: 1,
			didi: DidiIndex{Signal: SignalNeutral},
			want: SignalSell,
		},
		{
			name: "didi buy outweighs overbought rsi",
			rsi:  75, momentum: 0, trend: 0,
			didi: DidiIndex{Signal: SignalBuy},
			want: SignalBuy,
		},
		{
			name: "didi sell outweighs oversold rsi",
			rsi:  25, momentum: 0, trend: 0,
			didi: DidiIndex{Signal: SignalSell},
			want: SignalSell,
		},
		{
			name: "everything flat",
			rsi:  50, momentum: 0, trend: 0,
			didi: DidiIndex{Signal: SignalNeutral},
			want: SignalNeutral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Recommend(tt.rsi, tt.momentum, tt.trend, tt.didi))
		})
	}
}

func TestConfidence_CappedAt100(t *testing.T) {
	confidence := Confidence(100, 500, 50, 0, 100)
	assert.InDelta(t, 100, confidence, 1e-9)
}

func TestConfidence_VolatilityDiscounts(t *testing.T) {
	calm := Confidence(80, 20, 2, 0, 10)
	noisy := Confidence(80, 20, 2, 30, 10)

	assert.Greater(t, calm, noisy)
}

func TestConfidence_NeutralInputsScoreLow(t *testing.T) {
	confidence := Confidence(50, 0, 0, 0, 0)
	assert.Zero(t, confidence)
}

func TestEngineAnalyze_PopulatesReport(t *testing.T) {
	series := make(domain.PriceSeries, 60)
	for i := range series {
		series[i] = 100 + float64(i%7)
	}

	report := NewEngine().Analyze(series)

	assert.GreaterOrEqual(t, report.RSI, 0.0)
	assert.LessOrEqual(t, report.RSI, 100.0)
	assert.GreaterOrEqual(t, report.Confidence, 0.0)
	assert.LessOrEqual(t, report.Confidence, 100.0)
	assert.NotEmpty(t, report.Recommendation)
	assert.Nil(t, report.Fibonacci)
}

func TestEngineAnalyzeCandles_AddsPatternsAndFibonacci(t *testing.T) {
	candles := make([]domain.Candle, 60)
	for i := range candles {
		price := 100 + float64(i)
		candles[i] = domain.Candle{Open: price, Close: price + 1, High: price + 2, Low: price - 2}
	}

	report := NewEngine().AnalyzeCandles(candles)

	require.NotNil(t, report.Fibonacci)
	assert.NotEmpty(t, report.Fibonacci.Levels)
	assert.NotEmpty(t, report.Recommendation)
}

func TestEngineAnalyzeCandles_AddsStructureExtras(t *testing.T) {
	// zigzag whose last five swings trace Gartley retracement ratios
	prices := []float64{104, 100, 110, 103.82, 107.528, 102.3368, 106}
	candles := make([]domain.Candle, len(prices))
	for i, p := range prices {
		candles[i] = domain.Candle{Open: p, High: p, Low: p, Close: p, Volume: 10}
	}

	report := NewEngine().AnalyzeCandles(candles)

	require.Len(t, report.SwingPoints, 5)
	assert.Equal(t, indicator.SwingLow, report.SwingPoints[0].Type)

	require.Len(t, report.Harmonics, 1)
	assert.Equal(t, "Gartley", report.Harmonics[0].Name)

	// 104 and 103.82 share the rounded 104 bucket
	require.NotEmpty(t, report.VolumeProfile)
	assert.InDelta(t, 104, report.VolumeProfile[0].Price, 1e-9)
	assert.InDelta(t, 20, report.VolumeProfile[0].Volume, 1e-9)
}

func TestEngineAnalyzeCandles_FlagsDivergences(t *testing.T) {
	// a steep climb that stalls: price keeps inching up while the macd
	// histogram rolls over, a bearish divergence
	closes := make([]float64, 50)
	for i := range closes {
		if i < 30 {
			closes[i] = 100 + 5*float64(i)
		} else {
			closes[i] = closes[29] + 0.1*float64(i-29)
		}
	}

	candles := make([]domain.Candle, len(closes))
	for i, p := range closes {
		candles[i] = domain.Candle{Open: p, High: p + 1, Low: p - 1, Close: p, Volume: 1}
	}

	report := NewEngine().AnalyzeCandles(candles)

	require.NotEmpty(t, report.Divergences)
	assert.Equal(t, "bearish", report.Divergences[0].Type)
}
