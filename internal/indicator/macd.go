package indicator

// Default MACD periods.
const (
	DefaultMACDFast   = 12
	DefaultMACDSlow   = 26
	DefaultMACDSignal = 9
)

// MACDResult holds the three MACD outputs, each aligned with the input series.
type MACDResult struct {
	Line      []float64
	Signal    []float64
	Histogram []float64
}

// LastHistogram returns the most recent histogram value, or 0 for an empty result.
func (r MACDResult) LastHistogram() float64 {
	if len(r.Histogram) == 0 {
		return 0
	}
	return r.Histogram[len(r.Histogram)-1]
}

// MACD computes the moving average convergence/divergence: fast EMA minus
// slow EMA as the line, its EMA as the signal, their difference as the
// histogram.
func MACD(series []float64, fast, slow, signal int) MACDResult {
	if len(series) == 0 {
		return MACDResult{}
	}

	fastEMA := EMA(series, fast)
	slowEMA := EMA(series, slow)

	line := make([]float64, len(series))
	for i := range series {
		line[i] = fastEMA[i] - slowEMA[i]
	}

	signalLine := EMA(line, signal)

	histogram := make([]float64, len(series))
	for i := range series {
		histogram[i] = line[i] - signalLine[i]
	}

	return MACDResult{
		Line:      line,
		Signal:    signalLine,
		Histogram: histogram,
	}
}
