package tokenomics

import (
	"math"
	"time"
)

// Observer is notified after every simulated month.
type Observer interface {
	OnMonth(month int, s State)
}

// Engine runs the monthly model. The zero value is usable: snapshots carry a
// zero timestamp and nobody is notified.
type Engine struct {
	Now       func() time.Time
	Observers []Observer
}

func (e *Engine) now() time.Time {
	if e == nil || e.Now == nil {
		return time.Time{}
	}
	return e.Now()
}

// Calculate runs months steps and returns the final snapshot. A non-positive
// horizon returns the initial state.
func (e *Engine) Calculate(p Parameters, months int) Metrics {
	if months <= 0 {
		return InitialState().Snapshot(e.now())
	}
	s := e.run(p, months, nil)
	return s.Snapshot(e.now())
}

// Simulate returns the snapshot after every month, starting with month 0.
func (e *Engine) Simulate(p Parameters, months int) Trajectory {
	if months < 0 {
		months = 0
	}
	tr := make(Trajectory, 0, months+1)
	tr = append(tr, InitialState().Snapshot(e.now()))
	if months == 0 {
		return tr
	}
	e.run(p, months, func(s State) {
		tr = append(tr, s.Snapshot(e.now()))
	})
	return tr
}

func (e *Engine) run(p Parameters, months int, each func(State)) State {
	rnd := NewSeededRandom(Seed(p))
	safe := p.Clamp()

	s := InitialState()
	for m := 1; m <= months; m++ {
		s = Step(safe, s, rnd)
		if each != nil {
			each(s)
		}
		if e != nil {
			for _, o := range e.Observers {
				o.OnMonth(m, s)
			}
		}
	}
	return s
}

// Calculate runs the model with a zero timestamp and no observers.
func Calculate(p Parameters, months int) Metrics {
	var e Engine
	return e.Calculate(p, months)
}

// Simulate is Engine.Simulate on the zero Engine.
func Simulate(p Parameters, months int) Trajectory {
	var e Engine
	return e.Simulate(p, months)
}

// Step advances prev by one month. rnd is drawn exactly three times: market
// volatility, the sSTB price shock and the rSTB growth noise.
func Step(p Parameters, prev State, rnd func() float64) State {
	s := prev.Clone()
	s.Month = prev.Month + 1
	month := s.Month
	sys, mkt, fee, prov := p.System, p.Market, p.Fees, p.Provider

	shock := 1.0
	if month%6 == 0 {
		shock = 3
	}
	s.MarketVolatility = math.Min(0.5, 0.05+float64(month)/120+rnd()*0.1*shock)

	prevCU := s.TotalCU
	s.TotalCU = prevCU * (1 + sys.MonthlyGrowthRate)
	newCU := s.TotalCU - prevCU
	s.StakedCU += newCU * math.Min(0.9, 0.7+fee.StakingRewardRate*5)

	// Rewards use last month's rSTB staking ratio.
	tier := tierFor(safeDiv(s.StakedCU, s.ProviderCount))
	boost := safeDiv(prev.StakedRstb, prev.CirculatingRstb)
	apy := tier.baseAPY + (tier.boostedAPY-tier.baseAPY)*boost
	rewards := s.StakedCU * apy / 12

	progress := math.Min(1, s.TotalCU/cuMilestoneTarget)
	// Both ledgers index by the sSTB schedule length.
	yearIndex := min(month/12, len(sstbEmission)-1)
	s.SstbUnlocked = math.Min(SstbTotalSupply, s.SstbUnlocked+emission(SstbTotalSupply, sstbAllocation.community, sstbEmission[yearIndex], progress))
	s.RstbUnlocked = math.Min(RstbTotalSupply, s.RstbUnlocked+emission(RstbTotalSupply, rstbAllocation.community, rstbEmission[yearIndex], progress))

	s.SstbUnlocked = vest(s.SstbUnlocked, SstbTotalSupply, month, sstbTeamVesting)
	s.RstbUnlocked = vest(s.RstbUnlocked, RstbTotalSupply, month, rstbTeamVesting, rstbAdvisorVesting)
	s.SstbUnlocked = vest(s.SstbUnlocked, SstbTotalSupply, month, sstbInvestorVesting)
	s.RstbUnlocked = vest(s.RstbUnlocked, RstbTotalSupply, month, rstbInvestorVesting)
	if month <= liquidityMiningMonths {
		s.SstbUnlocked = math.Min(SstbTotalSupply, s.SstbUnlocked+SstbTotalSupply*sstbAllocation.liquidityMining/liquidityMiningMonths)
	}

	s.CirculatingSstb = math.Min(s.SstbUnlocked, SstbTotalSupply)
	s.CirculatingRstb = math.Min(s.RstbUnlocked, RstbTotalSupply)
	if month == sys.Milestone1Month {
		s.CirculatingSstb = math.Min(SstbTotalSupply, s.CirculatingSstb+milestoneBonusSstb)
	}

	txRevenue := s.TotalCU * txPerCU * fee.TransactionFee * revenuePerTx
	bridgeRevenue := s.CirculatingSstb * bridgedShare * fee.BridgeFee
	s.MonthlyRevenue = txRevenue + bridgeRevenue
	s.CumulativeRevenue += s.MonthlyRevenue

	// Burns shrink circulation only; unlocked totals never go down.
	sstbBurn := math.Min(s.CirculatingSstb*0.01, s.MonthlyRevenue*0.1)
	rstbBurn := math.Min(s.CirculatingRstb*0.01, rewards*0.05)
	s.CirculatingSstb = math.Max(0, s.CirculatingSstb-sstbBurn)
	s.CirculatingRstb = math.Max(0, s.CirculatingRstb-rstbBurn)

	s.TreasuryAssets += math.Min(maxTreasuryGrowth, s.MonthlyRevenue*treasuryShare)

	s.SstbPrice = nextSstbPrice(s, mkt, rnd)
	s.PriceHistory = append(s.PriceHistory, s.SstbPrice)
	if len(s.PriceHistory) > priceWindow {
		s.PriceHistory = s.PriceHistory[len(s.PriceHistory)-priceWindow:]
	}
	s.SstbStability = math.Max(0, 100-Volatility(s.PriceHistory)*100)

	sstbIncentive := fee.StakingRewardRate * (s.SstbStability / 100)
	rstbIncentive := fee.StakingRewardRate * math.Min(10, prev.RstbPrice/RstbLaunchPrice)
	s.StakedSstb = math.Min(s.CirculatingSstb, s.CirculatingSstb*math.Min(0.8, initialStakedSstb+sstbIncentive))
	s.StakedRstb = math.Min(s.CirculatingRstb, s.CirculatingRstb*math.Min(0.9, initialStakedRstb+rstbIncentive))

	s.RstbPrice = nextRstbPrice(s, month, rnd)

	s.CirculatingRstb += math.Min(maxRstbIssuance, (s.TotalCU/1e6)*fee.StakingRewardRate*1e5)

	s.TVL = math.Min(s.StakedSstb*s.SstbPrice, SstbTotalSupply*2) +
		math.Min(s.StakedRstb*s.RstbPrice, RstbTotalSupply*maxRstbPrice) +
		math.Min(s.TreasuryAssets*0.8, s.TreasuryAssets*2)

	s.ProviderCount = math.Floor(initialProviders + (s.TotalCU/500_000)*math.Sqrt(float64(month)))
	s.ProviderROI = 0
	if prov.SetupCost > 0 {
		s.ProviderROI = (s.TotalCU*providerRevenuePerCU - prov.MonthlyOpEx) / (prov.SetupCost / amortizationMonths)
	}
	return s
}

func emission(supply, communityShare, yearShare, progress float64) float64 {
	scheduled := supply * communityShare * yearShare / 12 * (0.7 + 0.3*progress)
	return math.Min(supply*maxMonthlyUnlock, scheduled)
}

func vest(unlocked, supply float64, month int, schedules ...vestingSchedule) float64 {
	for _, v := range schedules {
		if v.fires(month) {
			unlocked = math.Min(supply, unlocked+v.tranche())
		}
	}
	return unlocked
}

func tierFor(avgStakedCU float64) stakingTier {
	for _, t := range providerTiers {
		if avgStakedCU >= t.min && avgStakedCU <= t.max {
			return t
		}
	}
	return providerTiers[0]
}

// nextSstbPrice moves the stablecoin toward the treasury-backed price, adds a
// collateral-damped shock, then pulls it back if it leaves the peg band.
func nextSstbPrice(s State, mkt MarketParams, rnd func() float64) float64 {
	price := s.SstbPrice

	var signal float64
	if s.CirculatingSstb > 0 {
		signal = (s.TreasuryAssets/s.CirculatingSstb)*mkt.PriceSensitivity - price
	}

	stabilityFactor := 0.0
	if backed := s.CirculatingSstb * price; backed > 0 {
		measured := s.TreasuryAssets / backed
		if measured > 0 {
			stabilityFactor = math.Min(1, mkt.CollateralRatio/measured)
		} else {
			stabilityFactor = 1
		}
	}

	shock := (rnd()*2 - 1) * s.MarketVolatility * 0.1
	next := price + signal*0.1 + shock*stabilityFactor

	dev := math.Abs(next - SstbTargetPrice)
	if dev <= pegBand {
		return next
	}
	correction := dev * (0.2 + dev*0.5)
	if next > SstbTargetPrice {
		return next - correction
	}
	return next + correction
}

func nextRstbPrice(s State, month int, rnd func() float64) float64 {
	revenueFactor := math.Min(2, 1+s.MonthlyRevenue/1e6)
	cuFactor := math.Min(1.5, 1+s.TotalCU/1e8)
	stakingFactor := math.Min(1.2, 1+safeDiv(s.StakedRstb, s.CirculatingRstb)*0.1)
	growth := math.Min(1.2, 1+0.02*revenueFactor*cuFactor*stakingFactor*(1+rnd()*0.05))

	price := math.Min(maxRstbPrice, s.RstbPrice*growth)
	if month > rstbDampenAfter && price > rstbDampenThreshold {
		price = rstbDampenThreshold + math.Log(price-(rstbDampenThreshold-1))*20
	}
	return price
}

func safeDiv(a, b float64) float64 {
	if b <= 0 || math.IsNaN(b) || math.IsInf(b, 0) {
		return 0
	}
	return a / b
}
