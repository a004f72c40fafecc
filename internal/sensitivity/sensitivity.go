// Package sensitivity measures how strongly the simulated economy reacts to
// one parameter: it sweeps the parameter around its current value and
// reports the spread of the key metrics relative to a baseline run.
package sensitivity

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/tokensim/internal/tokenomics"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

const (
	DefaultMonths  = 12
	DefaultSteps   = 10
	DefaultWorkers = 4
)

// KeyMetrics are the metrics whose impact is reported for every analysis.
var KeyMetrics = []string{"totalCU", "sstbPrice", "tvl", "providerROI", "monthlyRevenue"}

// TrackedMetric is the metric followed across the sweep of a section.
func TrackedMetric(category tokenomics.Category) string {
	switch category {
	case tokenomics.SystemParameters:
		return "totalCU"
	case tokenomics.MarketDynamics:
		return "sstbPrice"
	case tokenomics.FeeStructure:
		return "monthlyRevenue"
	case tokenomics.ProviderEconomics:
		return "providerROI"
	}
	return ""
}

type Point struct {
	ParamValue float64            `json:"paramValue"`
	Value      float64            `json:"value"`
	Metrics    tokenomics.Metrics `json:"metrics"`
}

type Result struct {
	Category   tokenomics.Category `json:"category"`
	Param      string              `json:"param"`
	Metric     string              `json:"metric"`
	Baseline   float64             `json:"baseline"`
	Variations []Point             `json:"variations"`
	Impacts    map[string]float64  `json:"impacts"`
}

// MostSensitive returns the key metric with the largest impact. Ties go to
// the metric listed first in KeyMetrics.
func (r *Result) MostSensitive() string {
	best, bestImpact := "", -1.0
	for _, name := range KeyMetrics {
		if v, ok := r.Impacts[name]; ok && v > bestImpact {
			best, bestImpact = name, v
		}
	}
	return best
}

// Analyzer sweeps a parameter of Base. Zero fields take the package defaults.
type Analyzer struct {
	Base    tokenomics.Parameters
	Months  int
	Steps   int
	Workers int
}

// Run analyzes a parameter around the default parameters over one year.
func Run(category tokenomics.Category, param string, rangePercent float64) (*Result, error) {
	a := Analyzer{Base: tokenomics.DefaultParameters()}
	return a.Analyze(context.Background(), category, param, rangePercent)
}

func (a Analyzer) withDefaults() Analyzer {
	if a.Months <= 0 {
		a.Months = DefaultMonths
	}
	if a.Steps <= 0 {
		a.Steps = DefaultSteps
	}
	if a.Workers <= 0 {
		a.Workers = DefaultWorkers
	}
	return a
}

// Grid returns steps+1 evenly spaced values covering v ± rangePercent%,
// ascending, endpoints included.
func Grid(v, rangePercent float64, steps int) []float64 {
	if steps <= 0 {
		steps = DefaultSteps
	}
	r := math.Abs(rangePercent) / 100
	lo, hi := v*(1-r), v*(1+r)
	if lo > hi {
		lo, hi = hi, lo
	}
	step := (hi - lo) / float64(steps)
	grid := make([]float64, steps+1)
	for i := range grid {
		grid[i] = lo + float64(i)*step
	}
	grid[steps] = hi
	return grid
}

func (a Analyzer) Analyze(ctx context.Context, category tokenomics.Category, param string, rangePercent float64) (*Result, error) {
	a = a.withDefaults()

	current, err := a.Base.Value(category, param)
	if err != nil {
		return nil, fmt.Errorf("sensitivity of %s.%s: %w", category, param, err)
	}
	metric := TrackedMetric(category)
	baseline := tokenomics.Calculate(a.Base, a.Months)
	baseValue, _ := baseline.Field(metric)

	grid := Grid(current, rangePercent, a.Steps)
	points := make([]Point, len(grid))

	sem := semaphore.NewWeighted(int64(a.Workers))
	g, ctx := errgroup.WithContext(ctx)
	for i, x := range grid {
		g.Go(func() error {
			if err := sem.Acquire(ctx, 1); err != nil {
				return err
			}
			defer sem.Release(1)

			p, err := a.Base.With(category, param, x)
			if err != nil {
				return err
			}
			applied, _ := p.Value(category, param)
			m := tokenomics.Calculate(p, a.Months)
			v, _ := m.Field(metric)
			points[i] = Point{ParamValue: applied, Value: v, Metrics: m}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("sensitivity of %s.%s: %w", category, param, err)
	}
	sort.SliceStable(points, func(i, j int) bool { return points[i].ParamValue < points[j].ParamValue })

	return &Result{
		Category:   category,
		Param:      param,
		Metric:     metric,
		Baseline:   baseValue,
		Variations: points,
		Impacts:    impacts(baseline, points[0].Metrics, points[len(points)-1].Metrics),
	}, nil
}

// impacts is the larger relative deviation of the two extreme runs from the
// baseline, in percent. A zero baseline reports no impact.
func impacts(base, lo, hi tokenomics.Metrics) map[string]float64 {
	out := make(map[string]float64, len(KeyMetrics))
	for _, name := range KeyMetrics {
		b, _ := base.Field(name)
		l, _ := lo.Field(name)
		h, _ := hi.Field(name)
		if b == 0 {
			out[name] = 0
			continue
		}
		out[name] = math.Max(math.Abs(l-b)/math.Abs(b), math.Abs(h-b)/math.Abs(b)) * 100
	}
	return out
}
