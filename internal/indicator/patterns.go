package indicator

import (
	"math"

	"github.com/defailabz/mvp-backend/internal/domain"
)

// Pattern flags a recognized candlestick formation.
type Pattern struct {
	Name         string  `json:"name"`
	Significance string  `json:"significance"`
	Reliability  float64 `json:"reliability"`
}

// IsDoji reports a candle whose body is under a tenth of its full range.
func IsDoji(c domain.Candle) bool {
	wick := c.High - c.Low
	if wick == 0 {
		return false
	}

	body := math.Abs(c.Open - c.Close)
	return body/wick < 0.1
}

// IsHammer reports a candle with a long lower wick and a short upper wick.
func IsHammer(c domain.Candle) bool {
	body := math.Abs(c.Open - c.Close)
	if body == 0 {
		return false
	}

	lowerWick := math.Min(c.Open, c.Close) - c.Low
	upperWick := c.High - math.Max(c.Open, c.Close)
	return lowerWick > body*2 && upperWick < body*0.5
}

// IsEngulfing reports whether current fully engulfs the previous candle's body.
func IsEngulfing(prev, current domain.Candle) bool {
	return current.Open < prev.Close &&
		current.Close > prev.Open &&
		math.Abs(current.Close-current.Open) > math.Abs(prev.Close-prev.Open)
}

// CandlestickPatterns inspects the tail of the series for the patterns the
// dashboard surfaces.
func CandlestickPatterns(candles []domain.Candle) []Pattern {
	if len(candles) == 0 {
		return nil
	}

	var patterns []Pattern
	last := candles[len(candles)-1]

	if IsDoji(last) {
		patterns = append(patterns, Pattern{
			Name:         "Doji",
			Significance: "Indecisão no mercado",
			Reliability:  0.6,
		})
	}

	if IsHammer(last) {
		patterns = append(patterns, Pattern{
			Name:         "Hammer",
			Significance: "Possível reversão de baixa",
			Reliability:  0.7,
		})
	}

	if len(candles) >= 2 && IsEngulfing(candles[len(candles)-2], last) {
		patterns = append(patterns, Pattern{
			Name:         "Engulfing",
			Significance: "Forte sinal de reversão",
			Reliability:  0.8,
		})
	}

	return patterns
}
