package analysis

import (
	"math"

	"github.com/defailabz/mvp-backend/internal/indicator"
)

// Didi Index periods: short, medium, long simple moving averages.
const (
	didiShortPeriod  = 3
	didiMediumPeriod = 8
	didiLongPeriod   = 20
)

// Signal is a discretionary buy/sell/neutral call.
type Signal string

const (
	SignalBuy     Signal = "COMPRA"
	SignalSell    Signal = "VENDA"
	SignalNeutral Signal = "NEUTRO"
)

// DidiIndex is the three-moving-average crossover heuristic. Strength is the
// percentage separation between the short and long averages.
type DidiIndex struct {
	Signal   Signal  `json:"signal"`
	Strength float64 `json:"strength"`
	SMA3     float64 `json:"sma3"`
	SMA8     float64 `json:"sma8"`
	SMA20    float64 `json:"sma20"`
}

// ComputeDidiIndex evaluates the 3/8/20 SMA alignment at the series tail. A
// signal fires only on a fresh crossover: the averages must be aligned now
// and must not have been aligned the same way one bar earlier.
func ComputeDidiIndex(prices []float64) DidiIndex {
	out := DidiIndex{Signal: SignalNeutral}
	if len(prices) < didiLongPeriod+1 {
		return out
	}

	sma3 := indicator.SMA(prices, didiShortPeriod)
	sma8 := indicator.SMA(prices, didiMediumPeriod)
	sma20 := indicator.SMA(prices, didiLongPeriod)

	last := len(prices) - 1
	cur3, cur8, cur20 := sma3[last], sma8[last], sma20[last]
	prev3, prev8, prev20 := sma3[last-1], sma8[last-1], sma20[last-1]

	out.SMA3, out.SMA8, out.SMA20 = cur3, cur8, cur20

	if anyNaN(cur3, cur8, cur20, prev3, prev8, prev20) || cur20 == 0 {
		return out
	}

	switch {
	case cur3 > cur8 && cur8 > cur20:
		if prev3 <= prev8 || prev8 <= prev20 {
			out.Signal = SignalBuy
			out.Strength = math.Abs((cur3 - cur20) / cur20 * 100)
		}
	case cur3 < cur8 && cur8 < cur20:
		if prev3 >= prev8 || prev8 >= prev20 {
			out.Signal = SignalSell
			out.Strength = math.Abs((cur20 - cur3) / cur20 * 100)
		}
	}

	return out
}

func anyNaN(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}
