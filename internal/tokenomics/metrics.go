package tokenomics

import (
	"fmt"
	"time"
)

// Metrics is a snapshot of the simulated economy at the end of a month.
type Metrics struct {
	TotalCU           float64   `json:"totalCU"`
	CirculatingRstb   float64   `json:"circulatingRstb"`
	CirculatingSstb   float64   `json:"circulatingSstb"`
	SstbPrice         float64   `json:"sstbPrice"`
	RstbPrice         float64   `json:"rstbPrice"`
	TreasuryAssets    float64   `json:"treasuryAssets"`
	TVL               float64   `json:"tvl"`
	CumulativeRevenue float64   `json:"cumulativeRevenue"`
	MonthlyRevenue    float64   `json:"monthlyRevenue"`
	ProviderCount     float64   `json:"providerCount"`
	ProviderROI       float64   `json:"providerROI"`
	SstbStability     float64   `json:"sstbStability"`
	MarketVolatility  float64   `json:"marketVolatility"`
	Timestamp         time.Time `json:"timestamp"`
	StakedCU          float64   `json:"stakedCU"`
	StakedSstb        float64   `json:"stakedSstb"`
	StakedRstb        float64   `json:"stakedRstb"`
	SstbUnlocked      float64   `json:"sstbUnlocked"`
	RstbUnlocked      float64   `json:"rstbUnlocked"`
}

type metricField struct {
	name string
	ref  func(m *Metrics) *float64
}

var metricFields = []metricField{
	{"totalCU", func(m *Metrics) *float64 { return &m.TotalCU }},
	{"circulatingRstb", func(m *Metrics) *float64 { return &m.CirculatingRstb }},
	{"circulatingSstb", func(m *Metrics) *float64 { return &m.CirculatingSstb }},
	{"sstbPrice", func(m *Metrics) *float64 { return &m.SstbPrice }},
	{"rstbPrice", func(m *Metrics) *float64 { return &m.RstbPrice }},
	{"treasuryAssets", func(m *Metrics) *float64 { return &m.TreasuryAssets }},
	{"tvl", func(m *Metrics) *float64 { return &m.TVL }},
	{"cumulativeRevenue", func(m *Metrics) *float64 { return &m.CumulativeRevenue }},
	{"monthlyRevenue", func(m *Metrics) *float64 { return &m.MonthlyRevenue }},
	{"providerCount", func(m *Metrics) *float64 { return &m.ProviderCount }},
	{"providerROI", func(m *Metrics) *float64 { return &m.ProviderROI }},
	{"sstbStability", func(m *Metrics) *float64 { return &m.SstbStability }},
	{"marketVolatility", func(m *Metrics) *float64 { return &m.MarketVolatility }},
	{"stakedCU", func(m *Metrics) *float64 { return &m.StakedCU }},
	{"stakedSstb", func(m *Metrics) *float64 { return &m.StakedSstb }},
	{"stakedRstb", func(m *Metrics) *float64 { return &m.StakedRstb }},
	{"sstbUnlocked", func(m *Metrics) *float64 { return &m.SstbUnlocked }},
	{"rstbUnlocked", func(m *Metrics) *float64 { return &m.RstbUnlocked }},
}

// MetricNames lists the numeric metrics in declaration order.
func MetricNames() []string {
	names := make([]string, len(metricFields))
	for i, f := range metricFields {
		names[i] = f.name
	}
	return names
}

// Field resolves a numeric metric by its JSON name.
func (m Metrics) Field(name string) (float64, bool) {
	for _, f := range metricFields {
		if f.name == name {
			return *f.ref(&m), true
		}
	}
	return 0, false
}

// Values returns the numeric metrics in MetricNames order.
func (m Metrics) Values() []float64 {
	vals := make([]float64, len(metricFields))
	for i, f := range metricFields {
		vals[i] = *f.ref(&m)
	}
	return vals
}

// MetricsFromValues is the inverse of Values.
func MetricsFromValues(vals []float64) (Metrics, error) {
	var m Metrics
	if len(vals) != len(metricFields) {
		return m, fmt.Errorf("expected %d metric values, got %d", len(metricFields), len(vals))
	}
	for i, f := range metricFields {
		*f.ref(&m) = vals[i]
	}
	return m, nil
}

// Trajectory holds one snapshot per month; index 0 is the initial state.
type Trajectory []Metrics

func (t Trajectory) Final() Metrics {
	if len(t) == 0 {
		return InitialState().Snapshot(time.Time{})
	}
	return t[len(t)-1]
}

// Series extracts one metric across the trajectory.
func (t Trajectory) Series(name string) []float64 {
	out := make([]float64, 0, len(t))
	for _, m := range t {
		v, ok := m.Field(name)
		if !ok {
			return nil
		}
		out = append(out, v)
	}
	return out
}
