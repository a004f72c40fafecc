package tokenomics

import "math"

// MaxMonths is the longest horizon exposed by the timeframe control.
const MaxMonths = 60

const (
	SstbTotalSupply = 10_000_000_000
	RstbTotalSupply = 1_000_000_000

	SstbTargetPrice = 1.0
	RstbLaunchPrice = 0.1
)

const (
	initialCU         = 1_000_000
	initialSstb       = 500_000_000
	initialRstb       = 50_000_000
	initialTreasury   = 2_000_000
	initialProviders  = 10
	initialStability  = 100
	initialStakedCU   = 0.7
	initialStakedSstb = 0.3
	initialStakedRstb = 0.5

	cuMilestoneTarget    = 10_000_000
	maxMonthlyUnlock     = 0.01
	milestoneBonusSstb   = 2_000_000
	priceWindow          = 12
	txPerCU              = 10
	revenuePerTx         = 0.1
	bridgedShare         = 0.05
	treasuryShare        = 0.6
	maxTreasuryGrowth    = 10_000_000
	pegBand              = 0.1
	maxRstbPrice         = 1000
	rstbDampenAfter      = 24
	rstbDampenThreshold  = 100
	maxRstbIssuance      = 10_000_000
	providerRevenuePerCU = 0.01
	amortizationMonths   = 24
)

var sstbAllocation = struct {
	community, treasury, teamAdvisors, investors, liquidityMining float64
}{0.40, 0.25, 0.15, 0.15, 0.05}

var rstbAllocation = struct {
	community, team, treasury, investors, advisors float64
}{0.40, 0.20, 0.20, 0.15, 0.05}

// Yearly share of the community allocation released by emissions.
var (
	sstbEmission = []float64{0.40, 0.30, 0.20, 0.10}
	rstbEmission = []float64{0.30, 0.25, 0.20, 0.15, 0.10}
)

type stakingTier struct {
	min, max            float64
	baseAPY, boostedAPY float64
}

var providerTiers = []stakingTier{
	{1, 100, 0.05, 0.075},
	{101, 1000, 0.07, 0.105},
	{1001, 10000, 0.10, 0.15},
	{10001, math.Inf(1), 0.12, 0.18},
}

// vestingSchedule releases equal monthly tranches of an allocation after a cliff.
type vestingSchedule struct {
	cliff    int
	tranches int
	amount   float64
}

var (
	sstbTeamVesting     = vestingSchedule{12, 36, SstbTotalSupply * sstbAllocation.teamAdvisors}
	sstbInvestorVesting = vestingSchedule{6, 24, SstbTotalSupply * sstbAllocation.investors}
	rstbTeamVesting     = vestingSchedule{12, 48, RstbTotalSupply * rstbAllocation.team}
	rstbAdvisorVesting  = vestingSchedule{12, 24, RstbTotalSupply * rstbAllocation.advisors}
	rstbInvestorVesting = vestingSchedule{6, 24, RstbTotalSupply * rstbAllocation.investors}
)

const liquidityMiningMonths = 48

// fires reports whether month is a tranche month. The equality guard lets
// month == cliff+tranches through as well, so a schedule pays tranches+1 times.
func (v vestingSchedule) fires(month int) bool {
	if month < v.cliff {
		return false
	}
	elapsed := month - v.cliff
	return min(elapsed, v.tranches) == elapsed
}

func (v vestingSchedule) tranche() float64 {
	return v.amount / float64(v.tranches)
}
