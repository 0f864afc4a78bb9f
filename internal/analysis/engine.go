// Package analysis turns a price series into a buy/sell/neutral
// recommendation with a confidence score.
package analysis

import (
	"math"

	"github.com/defailabz/mvp-backend/internal/domain"
	"github.com/defailabz/mvp-backend/internal/indicator"
)

// Report is the full technical read the dashboard renders.
type Report struct {
	RSI            float64              `json:"rsi"`
	Momentum       float64              `json:"momentum"`
	TrendStrength  float64              `json:"trend_strength"`
	Volatility     float64              `json:"volatility"`
	DidiIndex      DidiIndex            `json:"didi_index"`
	MACDHistogram  float64              `json:"macd_histogram"`
	Recommendation Signal               `json:"recommendation"`
	Confidence     float64              `json:"confidence"`
	Patterns       []indicator.Pattern  `json:"patterns,omitempty"`
	Fibonacci      *indicator.FibonacciResult `json:"fibonacci,omitempty"`
	SwingPoints    []indicator.SwingPoint      `json:"swing_points,omitempty"`
	Harmonics      []indicator.HarmonicPattern `json:"harmonics,omitempty"`
	Divergences    []indicator.Divergence      `json:"divergences,omitempty"`
	VolumeProfile  []indicator.VolumeLevel     `json:"volume_profile,omitempty"`
}

// Engine produces a Report from a price series. Implementations are pure
// and safe for concurrent use.
type Engine interface {
	Analyze(series domain.PriceSeries) Report
	AnalyzeCandles(candles []domain.Candle) Report
}

type engine struct{}

// NewEngine constructs the default indicator engine.
func NewEngine() Engine {
	return engine{}
}

// Analyze implements Engine over closing prices only.
func (engine) Analyze(series domain.PriceSeries) Report {
	rsi := indicator.RSI(series, indicator.DefaultRSIPeriod)
	momentum := indicator.Momentum(series)
	trend := indicator.TrendSlope(series)
	volatility := indicator.Volatility(series)
	didi := ComputeDidiIndex(series)
	macd := indicator.MACD(series, indicator.DefaultMACDFast, indicator.DefaultMACDSlow, indicator.DefaultMACDSignal)

	return Report{
		RSI:            rsi,
		Momentum:       momentum,
		TrendStrength:  math.Abs(trend),
		Volatility:     volatility,
		DidiIndex:      didi,
		MACDHistogram:  macd.LastHistogram(),
		Recommendation: Recommend(rsi, momentum, trend, didi),
		Confidence:     Confidence(rsi, momentum, trend, volatility, didi.Strength),
	}
}

// AnalyzeCandles implements Engine with the OHLCV extras layered on top.
func (e engine) AnalyzeCandles(candles []domain.Candle) Report {
	closes := domain.Closes(candles)
	report := e.Analyze(closes)
	report.Patterns = indicator.CandlestickPatterns(candles)

	highs := make([]float64, len(candles))
	lows := make([]float64, len(candles))
	for i, c := range candles {
		highs[i] = c.High
		lows[i] = c.Low
	}
	fib := indicator.Fibonacci(highs, lows)
	report.Fibonacci = &fib

	report.SwingPoints = indicator.FindSwingPoints(candles)
	report.Harmonics = indicator.HarmonicPatterns(candles)
	report.VolumeProfile = indicator.VolumeProfile(candles)

	// the histogram lags price, so decelerating moves show up as divergences
	macd := indicator.MACD(closes, indicator.DefaultMACDFast, indicator.DefaultMACDSlow, indicator.DefaultMACDSignal)
	report.Divergences = indicator.DetectDivergences(closes, macd.Histogram)

	return report
}

// Recommend applies the signed voting scheme: RSI extremes, trend slope
// sign, momentum magnitude, and the Didi signal counted twice.
func Recommend(rsi, momentum, trend float64, didi DidiIndex) Signal {
	signals := 0

	if rsi > 70 {
		signals--
	}
	if rsi < 30 {
		signals++
	}

	if trend > 0 {
		signals++
	}
	if trend < 0 {
		signals--
	}

	// A large run-up votes against buying; a large drawdown votes for it.
	if momentum > 10 {
		signals--
	}
	if momentum < -10 {
		signals++
	}

	if didi.Signal == SignalBuy {
		signals += 2
	}
	if didi.Signal == SignalSell {
		signals -= 2
	}

	switch {
	case signals > 0:
		return SignalBuy
	case signals < 0:
		return SignalSell
	default:
		return SignalNeutral
	}
}

// Confidence blends indicator strengths and discounts them by volatility,
// capped at 100.
func Confidence(rsi, momentum, trend, volatility, didiStrength float64) float64 {
	rsiStrength := math.Abs(50-rsi) * 2
	trendStrength := math.Abs(trend) * 10
	momentumStrength := math.Min(math.Abs(momentum), 100)
	volatilityImpact := math.Min(volatility*2, 100)
	didiImpact := math.Min(didiStrength, 100)

	confidence := (rsiStrength + trendStrength + momentumStrength + didiImpact) / 4
	return math.Min(confidence*(1-volatilityImpact/200), 100)
}
