package indicator

import (
	"math"

	"github.com/defailabz/mvp-backend/internal/domain"
)

// Ichimoku periods.
const (
	tenkanPeriod = 9
	kijunPeriod  = 26
	senkouPeriod = 52
)

// IchimokuResult aggregates the five Ichimoku lines, each aligned with the
// input candles (NaN before a window fills).
type IchimokuResult struct {
	TenkanSen  []float64
	KijunSen   []float64
	SenkouA    []float64
	SenkouB    []float64
	ChikouSpan []float64
}

// Ichimoku computes the Ichimoku cloud lines over candle highs and lows.
// Chikou span is the close shifted back by the kijun period.
func Ichimoku(candles []domain.Candle) IchimokuResult {
	highs := make([]float64, len(candles))
	lows := make([]float64, len(candles))
	for i, c := range candles {
		highs[i] = c.High
		lows[i] = c.Low
	}

	tenkan := midlineSeries(highs, lows, tenkanPeriod)
	kijun := midlineSeries(highs, lows, kijunPeriod)

	senkouA := nanSlice(len(candles))
	for i := range candles {
		if !math.IsNaN(tenkan[i]) && !math.IsNaN(kijun[i]) {
			senkouA[i] = (tenkan[i] + kijun[i]) / 2
		}
	}

	chikou := nanSlice(len(candles))
	for i := kijunPeriod; i < len(candles); i++ {
		chikou[i-kijunPeriod] = candles[i].Close
	}

	return IchimokuResult{
		TenkanSen:  tenkan,
		KijunSen:   kijun,
		SenkouA:    senkouA,
		SenkouB:    midlineSeries(highs, lows, senkouPeriod),
		ChikouSpan: chikou,
	}
}

// midlineSeries is (highest high + lowest low) / 2 over a rolling window.
func midlineSeries(highs, lows []float64, period int) []float64 {
	out := nanSlice(len(highs))
	if period <= 0 || len(highs) < period {
		return out
	}

	for i := period - 1; i < len(highs); i++ {
		high := highs[i-period+1]
		low := lows[i-period+1]
		for j := i - period + 2; j <= i; j++ {
			if highs[j] > high {
				high = highs[j]
			}
			if lows[j] < low {
				low = lows[j]
			}
		}
		out[i] = (high + low) / 2
	}

	return out
}
