package indicator

// FibLevel pairs a Fibonacci ratio with the price it maps to.
type FibLevel struct {
	Level float64 `json:"level"`
	Price float64 `json:"price"`
}

// FibonacciResult holds the retracement and extension grids derived from
// the series extremes.
type FibonacciResult struct {
	Levels       []FibLevel `json:"levels"`
	Extensions   []FibLevel `json:"extensions"`
	Retracements []FibLevel `json:"retracements"`
}

var (
	fibLevels       = []float64{0, 0.236, 0.382, 0.5, 0.618, 0.786, 1}
	fibExtensions   = []float64{1.618, 2.618, 3.618, 4.236}
	fibRetracements = []float64{0.236, 0.382, 0.5, 0.618, 0.786}
)

// Fibonacci maps the classic ratios onto the high/low range of the series.
// Levels and retracements step down from the high; extensions project above it.
func Fibonacci(highs, lows []float64) FibonacciResult {
	if len(highs) == 0 || len(lows) == 0 {
		return FibonacciResult{}
	}

	high := highs[0]
	for _, v := range highs {
		if v > high {
			high = v
		}
	}

	low := lows[0]
	for _, v := range lows {
		if v < low {
			low = v
		}
	}

	diff := high - low

	result := FibonacciResult{}
	for _, level := range fibLevels {
		result.Levels = append(result.Levels, FibLevel{Level: level, Price: high - diff*level})
	}
	for _, level := range fibExtensions {
		result.Extensions = append(result.Extensions, FibLevel{Level: level, Price: high + diff*(level-1)})
	}
	for _, level := range fibRetracements {
		result.Retracements = append(result.Retracements, FibLevel{Level: level, Price: high - diff*level})
	}

	return result
}
