package tokenomics

import "time"

// State is everything the monthly transition reads and writes.
type State struct {
	Month int

	TotalCU  float64
	StakedCU float64

	CirculatingSstb float64
	CirculatingRstb float64
	SstbUnlocked    float64
	RstbUnlocked    float64
	StakedSstb      float64
	StakedRstb      float64

	SstbPrice    float64
	RstbPrice    float64
	PriceHistory []float64

	TreasuryAssets    float64
	TVL               float64
	MonthlyRevenue    float64
	CumulativeRevenue float64

	ProviderCount float64
	ProviderROI   float64

	SstbStability    float64
	MarketVolatility float64
}

// InitialState is the month-0 economy. It does not depend on parameters.
func InitialState() State {
	return State{
		TotalCU:         initialCU,
		StakedCU:        initialCU * initialStakedCU,
		CirculatingSstb: initialSstb,
		CirculatingRstb: initialRstb,
		SstbUnlocked:    initialSstb,
		RstbUnlocked:    initialRstb,
		StakedSstb:      initialSstb * initialStakedSstb,
		StakedRstb:      initialRstb * initialStakedRstb,
		SstbPrice:       SstbTargetPrice,
		RstbPrice:       RstbLaunchPrice,
		PriceHistory:    []float64{SstbTargetPrice},
		TreasuryAssets:  initialTreasury,
		TVL:             initialSstb,
		ProviderCount:   initialProviders,
		SstbStability:   initialStability,
	}
}

func (s State) Clone() State {
	c := s
	c.PriceHistory = make([]float64, len(s.PriceHistory))
	copy(c.PriceHistory, s.PriceHistory)
	return c
}

func (s State) Snapshot(ts time.Time) Metrics {
	return Metrics{
		TotalCU:           s.TotalCU,
		CirculatingRstb:   s.CirculatingRstb,
		CirculatingSstb:   s.CirculatingSstb,
		SstbPrice:         s.SstbPrice,
		RstbPrice:         s.RstbPrice,
		TreasuryAssets:    s.TreasuryAssets,
		TVL:               s.TVL,
		CumulativeRevenue: s.CumulativeRevenue,
		MonthlyRevenue:    s.MonthlyRevenue,
		ProviderCount:     s.ProviderCount,
		ProviderROI:       s.ProviderROI,
		SstbStability:     s.SstbStability,
		MarketVolatility:  s.MarketVolatility,
		Timestamp:         ts,
		StakedCU:          s.StakedCU,
		StakedSstb:        s.StakedSstb,
		StakedRstb:        s.StakedRstb,
		SstbUnlocked:      s.SstbUnlocked,
		RstbUnlocked:      s.RstbUnlocked,
	}
}
