// Package indicator provides technical indicator calculations over price
// series.
//
// All functions are pure: they take the full series, allocate their result
// and share no state between calls. Where a window has not filled yet the
// output holds NaN, keeping every result aligned index-for-index with its
// input.
package indicator

import "math"

// SMA computes the simple moving average. The first period-1 entries are NaN.
func SMA(series []float64, period int) []float64 {
	out := nanSlice(len(series))
	if period <= 0 || len(series) < period {
		return out
	}

	var sum float64
	for i, price := range series {
		sum += price
		if i >= period {
			sum -= series[i-period]
		}
		if i >= period-1 {
			out[i] = sum / float64(period)
		}
	}

	return out
}

// EMA computes the exponential moving average with smoothing constant
// k = 2/(period+1), seeded with the first raw value.
func EMA(series []float64, period int) []float64 {
	if len(series) == 0 {
		return nil
	}

	k := 2.0 / float64(period+1)
	out := make([]float64, len(series))
	out[0] = series[0]
	for i := 1; i < len(series); i++ {
		out[i] = series[i]*k + out[i-1]*(1-k)
	}

	return out
}

// WMA computes the linearly weighted moving average, most recent price
// weighted highest. The first period-1 entries are NaN.
func WMA(series []float64, period int) []float64 {
	out := nanSlice(len(series))
	if period <= 0 || len(series) < period {
		return out
	}

	denominator := float64(period*(period+1)) / 2

	for i := period - 1; i < len(series); i++ {
		var sum float64
		for j := 0; j < period; j++ {
			sum += series[i-j] * float64(period-j)
		}
		out[i] = sum / denominator
	}

	return out
}

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}
