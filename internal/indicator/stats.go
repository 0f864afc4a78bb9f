package indicator

import "math"

// StdDev computes the population standard deviation of data.
func StdDev(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}

	var mean float64
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))

	var sumSquares float64
	for _, v := range data {
		diff := v - mean
		sumSquares += diff * diff
	}

	return math.Sqrt(sumSquares / float64(len(data)))
}

// Volatility is the standard deviation of the percentage returns of the
// series. The first return is taken as zero.
func Volatility(series []float64) float64 {
	if len(series) < 2 {
		return 0
	}

	returns := make([]float64, len(series))
	for i := 1; i < len(series); i++ {
		if series[i-1] == 0 {
			continue
		}
		returns[i] = (series[i] - series[i-1]) / series[i-1] * 100
	}

	return StdDev(returns)
}

// TrendSlope fits a least-squares line through the series against its index
// and returns the slope. Positive means up-trend.
func TrendSlope(series []float64) float64 {
	n := float64(len(series))
	if n < 2 {
		return 0
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, y := range series {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	denominator := n*sumXX - sumX*sumX
	if denominator == 0 {
		return 0
	}

	return (n*sumXY - sumX*sumY) / denominator
}

// Momentum is the percentage change from the first to the last price.
func Momentum(series []float64) float64 {
	if len(series) < 2 || series[0] == 0 {
		return 0
	}

	return (series[len(series)-1] - series[0]) / series[0] * 100
}
