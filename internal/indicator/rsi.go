package indicator

// DefaultRSIPeriod is the conventional Wilder lookback.
const DefaultRSIPeriod = 14

// RSISeries computes the Wilder relative strength index over the whole
// series. The result is aligned with the input; entries before the first
// full window are NaN. A zero average loss is defined as RSI=100.
func RSISeries(series []float64, period int) []float64 {
	out := nanSlice(len(series))
	if period <= 0 || len(series) <= period {
		return out
	}

	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		delta := series[i] - series[i-1]
		if delta > 0 {
			avgGain += delta
		} else {
			avgLoss -= delta
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)
	out[period] = rsiValue(avgGain, avgLoss)

	p := float64(period)
	for i := period + 1; i < len(series); i++ {
		delta := series[i] - series[i-1]
		gain, loss := 0.0, 0.0
		if delta > 0 {
			gain = delta
		} else {
			loss = -delta
		}

		// Wilder's smoothing: avg = (prevAvg*(period-1) + current) / period
		avgGain = (avgGain*(p-1) + gain) / p
		avgLoss = (avgLoss*(p-1) + loss) / p
		out[i] = rsiValue(avgGain, avgLoss)
	}

	return out
}

// RSI returns the most recent RSI value, or 50 when the series is too short
// to fill one window (no signal either way).
func RSI(series []float64, period int) float64 {
	if period <= 0 || len(series) <= period {
		return 50
	}

	values := RSISeries(series, period)
	return values[len(values)-1]
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100
	}

	rs := avgGain / avgLoss
	return 100 - (100 / (1 + rs))
}
