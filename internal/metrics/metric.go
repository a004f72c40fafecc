// Package metrics holds run observers: accumulators fed one state per
// simulated month that summarize a whole run in a single number.
package metrics

import "github.com/san-kum/tokensim/internal/tokenomics"

type Metric interface {
	tokenomics.Observer
	Name() string
	Value() float64
	Reset()
}

// Standard returns a fresh set of every run observer.
func Standard() []Metric {
	return []Metric{
		NewPegDeviation(),
		NewMinStability(),
		NewPeakRstb(),
		NewUnlockMonotonicity(),
		NewFinite(),
	}
}

// Observers adapts a metric set for tokenomics.Engine.
func Observers(ms []Metric) []tokenomics.Observer {
	out := make([]tokenomics.Observer, len(ms))
	for i, m := range ms {
		out[i] = m
	}
	return out
}

// Values collects the current value of each metric by name.
func Values(ms []Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}
