package indicator

import (
	"math"

	"github.com/defailabz/mvp-backend/internal/domain"
)

// SwingType labels a swing point.
type SwingType string

const (
	SwingHigh SwingType = "high"
	SwingLow  SwingType = "low"
)

// SwingPoint is a local extreme of the candle series.
type SwingPoint struct {
	Type  SwingType `json:"type"`
	Price float64   `json:"price"`
	Index int       `json:"index"`
}

// FindSwingPoints returns every candle whose high (or low) exceeds both
// neighbors.
func FindSwingPoints(candles []domain.Candle) []SwingPoint {
	var swings []SwingPoint
	for i := 1; i < len(candles)-1; i++ {
		if candles[i].High > candles[i-1].High && candles[i].High > candles[i+1].High {
			swings = append(swings, SwingPoint{Type: SwingHigh, Price: candles[i].High, Index: i})
		}
		if candles[i].Low < candles[i-1].Low && candles[i].Low < candles[i+1].Low {
			swings = append(swings, SwingPoint{Type: SwingLow, Price: candles[i].Low, Index: i})
		}
	}
	return swings
}

// HarmonicPattern flags a recognized harmonic formation over swing points.
type HarmonicPattern struct {
	Name        string       `json:"name"`
	Points      []SwingPoint `json:"points"`
	Reliability float64      `json:"reliability"`
}

// HarmonicPatterns checks the last five swings against Gartley and
// Butterfly retracement ratios.
func HarmonicPatterns(candles []domain.Candle) []HarmonicPattern {
	swings := FindSwingPoints(candles)
	if len(swings) < 5 {
		return nil
	}

	tail := swings[len(swings)-5:]
	legs := swingLegs(tail)

	var patterns []HarmonicPattern
	if isGartley(legs) {
		patterns = append(patterns, HarmonicPattern{Name: "Gartley", Points: tail, Reliability: 0.85})
	}
	if isButterfly(legs) {
		patterns = append(patterns, HarmonicPattern{Name: "Butterfly", Points: tail, Reliability: 0.8})
	}

	return patterns
}

// swingLegs returns the absolute XA/AB/BC/CD leg lengths of an XABCD tail.
func swingLegs(points []SwingPoint) [4]float64 {
	var legs [4]float64
	for i := 0; i < 4; i++ {
		legs[i] = math.Abs(points[i+1].Price - points[i].Price)
	}
	return legs
}

func isGartley(legs [4]float64) bool {
	xa, ab, bc, cd := legs[0], legs[1], legs[2], legs[3]
	if xa == 0 || ab == 0 || bc == 0 {
		return false
	}

	return near(ab/xa, 0.618, 0.1) &&
		ratioWithin(bc/ab, 0.382, 0.886) &&
		ratioWithin(cd/bc, 1.13, 1.618)
}

func isButterfly(legs [4]float64) bool {
	xa, ab, bc, cd := legs[0], legs[1], legs[2], legs[3]
	if xa == 0 || ab == 0 || bc == 0 {
		return false
	}

	return near(ab/xa, 0.786, 0.1) &&
		ratioWithin(bc/ab, 0.382, 0.886) &&
		ratioWithin(cd/bc, 1.618, 2.618)
}

func near(value, target, tolerance float64) bool {
	return math.Abs(value-target) <= tolerance
}

func ratioWithin(value, lo, hi float64) bool {
	return value >= lo && value <= hi
}

// Divergence marks price and an oscillator disagreeing at one index.
type Divergence struct {
	Type        string  `json:"type"` // "bullish" or "bearish"
	Index       int     `json:"index"`
	Reliability float64 `json:"reliability"`
}

// DetectDivergences compares price direction against indicator direction
// step by step. Price up with indicator down is bearish; the inverse bullish.
func DetectDivergences(prices, indicatorValues []float64) []Divergence {
	n := len(prices)
	if len(indicatorValues) < n {
		n = len(indicatorValues)
	}

	var divergences []Divergence
	for i := 1; i < n; i++ {
		if math.IsNaN(indicatorValues[i]) || math.IsNaN(indicatorValues[i-1]) {
			continue
		}

		if prices[i] > prices[i-1] && indicatorValues[i] < indicatorValues[i-1] {
			divergences = append(divergences, Divergence{Type: "bearish", Index: i, Reliability: 0.8})
		}
		if prices[i] < prices[i-1] && indicatorValues[i] > indicatorValues[i-1] {
			divergences = append(divergences, Divergence{Type: "bullish", Index: i, Reliability: 0.8})
		}
	}

	return divergences
}
