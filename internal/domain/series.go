package domain

import "time"

// Candle is one OHLCV bar of a price series.
type Candle struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// PriceSeries is an ordered sequence of closing prices. It is fetched per
// analysis request, consumed once and discarded; nothing persists it.
type PriceSeries []float64

// Last returns the most recent price, or 0 for an empty series.
func (s PriceSeries) Last() float64 {
	if len(s) == 0 {
		return 0
	}
	return s[len(s)-1]
}

// Closes extracts the closing prices from a candle sequence.
func Closes(candles []Candle) PriceSeries {
	out := make(PriceSeries, len(candles))
	for i, c := range candles {
		out[i] = c.Close
	}
	return out
}
