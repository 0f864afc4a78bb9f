package indicator

import "math"

// Default Bollinger parameters.
const (
	DefaultBollingerPeriod = 20
	DefaultBollingerStdDev = 2.0
)

// Band is one Bollinger band sample.
type Band struct {
	Upper  float64
	Middle float64
	Lower  float64
}

// BollingerBands computes middle=SMA(period) with upper/lower offset by
// stdDev standard deviations of the same window. Entries before the first
// full window hold NaN in all three fields.
func BollingerBands(series []float64, period int, stdDev float64) []Band {
	out := make([]Band, len(series))
	sma := SMA(series, period)

	for i := range series {
		if math.IsNaN(sma[i]) {
			out[i] = Band{Upper: math.NaN(), Middle: math.NaN(), Lower: math.NaN()}
			continue
		}

		window := series[i-period+1 : i+1]
		sigma := StdDev(window)
		out[i] = Band{
			Upper:  sma[i] + stdDev*sigma,
			Middle: sma[i],
			Lower:  sma[i] - stdDev*sigma,
		}
	}

	return out
}
