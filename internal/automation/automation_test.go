package automation

import (
	"context"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/san-kum/tokensim/internal/storage"
	"github.com/san-kum/tokensim/internal/tokenomics"
)

const batchYAML = `
name: outlook
description: three views of the first two years
runs:
  - scenario: balancedAscent
    months: 24
  - scenario: cryptoWinter
    months: 12
    parameters:
      feeStructure:
        stakingRewardRate: 0.05
    save_as: winter-high-yield
  - months: 6
`

func writeBatch(t *testing.T, doc string) string {
	path := filepath.Join(t.TempDir(), "batch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))
	return path
}

func TestLoadBatch(t *testing.T) {
	require := require.New(t)

	b, err := LoadBatch(writeBatch(t, batchYAML))
	require.NoError(err)
	require.Equal("outlook", b.Name)
	require.Len(b.Runs, 3)
	require.Equal("winter-high-yield", b.Runs[1].SaveAs)
	require.Equal(0.05, *b.Runs[1].Parameters.Fees.StakingRewardRate)

	_, err = LoadBatch(filepath.Join(t.TempDir(), "none.yaml"))
	require.Error(err)
}

func TestRunBatch(t *testing.T) {
	require := require.New(t)

	b, err := LoadBatch(writeBatch(t, batchYAML))
	require.NoError(err)

	st := storage.NewDirStore(t.TempDir(), zap.NewNop())
	require.NoError(st.Init())

	results, err := RunBatch(context.Background(), b, st, zap.NewNop())
	require.NoError(err)
	require.Len(results, 3)

	require.Equal("balancedAscent", results[0].Label)
	require.Equal(24, results[0].Months)
	require.Equal("winter-high-yield", results[1].Label)
	require.Equal(0.05, results[1].Parameters.Fees.StakingRewardRate)
	require.Equal(0.04, results[1].Parameters.System.MonthlyGrowthRate)
	require.Equal(tokenomics.DefaultParameters(), results[2].Parameters)
	require.Equal(tokenomics.Calculate(tokenomics.DefaultParameters(), 6).Values(), results[2].Final.Values())

	for _, r := range results {
		require.NotEmpty(r.RunID)
		require.Equal(1.0, r.Observed["unlock_monotone"])
	}
	runs, err := st.List()
	require.NoError(err)
	require.Len(runs, 3)
}

func TestRunBatchErrors(t *testing.T) {
	require := require.New(t)

	b := &Batch{Runs: []BatchRun{
		{Scenario: "balancedAscent", Months: 3},
		{Scenario: "nowhere", Months: 3},
	}}
	results, err := RunBatch(context.Background(), b, nil, nil)
	require.ErrorContains(err, "run 2: unknown scenario: nowhere")
	require.Len(results, 1)
	require.Empty(results[0].RunID)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = RunBatch(ctx, b, nil, nil)
	require.ErrorIs(err, context.Canceled)
}

func TestRunStress(t *testing.T) {
	require := require.New(t)

	cfg := StressConfig{Trials: 40, Months: 60, Seed: 7, Workers: 3}
	trials, err := RunStress(context.Background(), cfg, nil)
	require.NoError(err)
	require.Len(trials, 40)

	s := StressStats(trials)
	require.Equal(40, s.Trials)
	require.Equal(40, s.Passed, "summary: %+v", s)
	require.LessOrEqual(s.MaxRstbPrice, 1000.0)

	again, err := RunStress(context.Background(), cfg, nil)
	require.NoError(err)
	for i := range trials {
		require.Equal(trials[i].Parameters, again[i].Parameters)
		require.Equal(trials[i].Final.Values(), again[i].Final.Values())
	}
}

func TestSampleParametersInBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		p := SampleParameters(rng)
		require.Equal(t, p, p.Clamp())
		require.Equal(t, "Medium", p.Provider.ProviderType)
	}
}

func TestStressStats(t *testing.T) {
	trials := []StressTrial{
		{Finite: true, PegHeld: true, RstbCapped: true, UnlockHeld: true, PegDeviation: 0.3},
		{Finite: true, PegHeld: false, RstbCapped: true, UnlockHeld: true, PegDeviation: 1.5},
		{Finite: false, PegHeld: true, RstbCapped: false, UnlockHeld: true, PeakRstb: 2000},
	}
	s := StressStats(trials)
	require.Equal(t, StressSummary{
		Trials: 3, Passed: 1, NonFinite: 1, PegBreaks: 1, RstbBreaks: 1,
		MaxPegDeviation: 1.5, MaxRstbPrice: 2000,
	}, s)
}

func TestRunSweep(t *testing.T) {
	require := require.New(t)

	sweep := &Sweep{
		Base:     tokenomics.DefaultParameters(),
		Category: tokenomics.FeeStructure,
		Param:    "transactionFee",
		Min:      0.005,
		Max:      0.02,
		Points:   4,
	}
	points, err := RunSweep(context.Background(), sweep)
	require.NoError(err)
	require.Len(points, 4)
	require.InDelta(0.005, points[0].ParamValue, 1e-12)
	require.Equal(0.02, points[3].ParamValue)
	for i := 1; i < len(points); i++ {
		require.Greater(points[i].Value, points[i-1].Value, "revenue grows with the fee")
	}

	sweep.Metric = "tvl"
	points, err = RunSweep(context.Background(), sweep)
	require.NoError(err)
	require.Equal(points[0].Final.TVL, points[0].Value)
}

func TestRunSweepErrors(t *testing.T) {
	require := require.New(t)

	base := &Sweep{Base: tokenomics.DefaultParameters(), Category: tokenomics.SystemParameters, Param: "monthlyGrowthRate", Min: 0, Max: 1, Points: 1}
	_, err := RunSweep(context.Background(), base)
	require.Error(err)

	bad := *base
	bad.Points = 3
	bad.Metric = "marketCap"
	_, err = RunSweep(context.Background(), &bad)
	require.ErrorContains(err, "unknown metric: marketCap")

	bad = *base
	bad.Points = 3
	bad.Param = "providerType"
	bad.Category = tokenomics.ProviderEconomics
	_, err = RunSweep(context.Background(), &bad)
	require.ErrorIs(err, tokenomics.ErrNonNumericParameter)
}
