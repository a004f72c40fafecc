package tokenomics

import "math"

const maxSquaredDeviation = 100

// Volatility returns the coefficient of variation of the finite, positive
// entries of prices, capped at 1. Fewer than two usable prices give 0.
func Volatility(prices []float64) float64 {
	valid := make([]float64, 0, len(prices))
	for _, p := range prices {
		if math.IsNaN(p) || math.IsInf(p, 0) || p <= 0 {
			continue
		}
		valid = append(valid, p)
	}
	if len(valid) < 2 {
		return 0
	}

	sum := 0.0
	for _, p := range valid {
		sum += p
	}
	mean := sum / float64(len(valid))
	if mean == 0 {
		return 0
	}

	variance := 0.0
	for _, p := range valid {
		d := p - mean
		variance += math.Min(maxSquaredDeviation, d*d)
	}
	variance /= float64(len(valid))

	return math.Min(1, math.Sqrt(variance)/mean)
}
