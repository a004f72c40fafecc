package tokenomics

import (
	"encoding/json"
	"math"
)

// NewSeededRandom returns a generator of values in [0, 1) that is fully
// determined by seed. Each call advances the seed by one.
func NewSeededRandom(seed int64) func() float64 {
	return func() float64 {
		x := math.Sin(float64(seed)) * 10000
		seed++
		return x - math.Floor(x)
	}
}

// Seed derives the noise seed of a run from the parameters: the sum of the
// JSON-encoded lengths of the four sections.
func Seed(p Parameters) int64 {
	sections := []any{p.System, p.Market, p.Fees, p.Provider}
	var seed int64
	for _, s := range sections {
		data, err := json.Marshal(s)
		if err != nil {
			continue
		}
		seed += int64(len(data))
	}
	return seed
}
