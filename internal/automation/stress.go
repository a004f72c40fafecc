package automation

import (
	"context"
	"math/rand"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/san-kum/tokensim/internal/metrics"
	"github.com/san-kum/tokensim/internal/tokenomics"
)

// StressConfig drives randomized robustness trials: every numeric parameter
// is drawn uniformly from its safe domain.
type StressConfig struct {
	Trials  int
	Months  int
	Seed    int64
	Workers int
}

type StressTrial struct {
	Trial        int
	Parameters   tokenomics.Parameters
	Final        tokenomics.Metrics
	PegDeviation float64
	PeakRstb     float64
	Finite       bool
	PegHeld      bool
	RstbCapped   bool
	UnlockHeld   bool
}

func (t StressTrial) Passed() bool {
	return t.Finite && t.PegHeld && t.RstbCapped && t.UnlockHeld
}

// SampleParameters draws one parameter set from the safe domain.
func SampleParameters(rng *rand.Rand) tokenomics.Parameters {
	p := tokenomics.DefaultParameters()
	for _, c := range tokenomics.Categories() {
		for _, name := range tokenomics.ParamNames(c) {
			b, err := tokenomics.BoundOf(c, name)
			if err != nil {
				continue
			}
			p, _ = p.With(c, name, b.Min+rng.Float64()*(b.Max-b.Min))
		}
	}
	return p
}

// RunStress samples all parameter sets up front so the outcome depends only
// on the seed, then runs the trials concurrently.
func RunStress(ctx context.Context, cfg StressConfig, logger *zap.Logger) ([]StressTrial, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Months <= 0 {
		cfg.Months = tokenomics.MaxMonths
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	trials := make([]StressTrial, cfg.Trials)
	for i := range trials {
		trials[i] = StressTrial{Trial: i, Parameters: SampleParameters(rng)}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i := range trials {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			runTrial(&trials[i], cfg.Months)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s := StressStats(trials)
	logger.Info("stress complete",
		zap.Int64("seed", seed),
		zap.Int("trials", s.Trials),
		zap.Int("passed", s.Passed))
	return trials, nil
}

func runTrial(t *StressTrial, months int) {
	peg := metrics.NewPegDeviation()
	peak := metrics.NewPeakRstb()
	unlock := metrics.NewUnlockMonotonicity()
	finite := metrics.NewFinite()

	e := &tokenomics.Engine{Observers: []tokenomics.Observer{peg, peak, unlock, finite}}
	t.Final = e.Calculate(t.Parameters, months)
	t.PegDeviation = peg.Value()
	t.PeakRstb = peak.Value()
	t.Finite = finite.Value() == 1
	t.PegHeld = t.PegDeviation <= 1
	t.RstbCapped = t.PeakRstb <= 1000
	t.UnlockHeld = unlock.Value() == 1
}

type StressSummary struct {
	Trials          int
	Passed          int
	NonFinite       int
	PegBreaks       int
	RstbBreaks      int
	UnlockBreaks    int
	MaxPegDeviation float64
	MaxRstbPrice    float64
}

func StressStats(trials []StressTrial) StressSummary {
	s := StressSummary{Trials: len(trials)}
	for _, t := range trials {
		if t.Passed() {
			s.Passed++
		}
		if !t.Finite {
			s.NonFinite++
		}
		if !t.PegHeld {
			s.PegBreaks++
		}
		if !t.RstbCapped {
			s.RstbBreaks++
		}
		if !t.UnlockHeld {
			s.UnlockBreaks++
		}
		if t.PegDeviation > s.MaxPegDeviation {
			s.MaxPegDeviation = t.PegDeviation
		}
		if t.PeakRstb > s.MaxRstbPrice {
			s.MaxRstbPrice = t.PeakRstb
		}
	}
	return s
}
