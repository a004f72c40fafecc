package automation

import (
	"context"
	"fmt"

	"github.com/san-kum/tokensim/internal/sensitivity"
	"github.com/san-kum/tokensim/internal/tokenomics"
)

// Sweep runs Base once per point of an explicit [Min, Max] range.
type Sweep struct {
	Base     tokenomics.Parameters
	Category tokenomics.Category
	Param    string
	Min      float64
	Max      float64
	Points   int
	Months   int
	Metric   string
}

type SweepPoint struct {
	ParamValue float64
	Value      float64
	Final      tokenomics.Metrics
}

// RunSweep evaluates the sweep. An empty Metric follows the section's
// tracked metric.
func RunSweep(ctx context.Context, sweep *Sweep) ([]SweepPoint, error) {
	if sweep.Points < 2 {
		return nil, fmt.Errorf("sweep needs at least 2 points, got %d", sweep.Points)
	}
	metric := sweep.Metric
	if metric == "" {
		metric = sensitivity.TrackedMetric(sweep.Category)
	}
	if _, ok := (tokenomics.Metrics{}).Field(metric); !ok {
		return nil, fmt.Errorf("unknown metric: %s", metric)
	}
	months := sweep.Months
	if months <= 0 {
		months = sensitivity.DefaultMonths
	}

	step := (sweep.Max - sweep.Min) / float64(sweep.Points-1)
	results := make([]SweepPoint, 0, sweep.Points)
	for i := 0; i < sweep.Points; i++ {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		x := sweep.Min + float64(i)*step
		if i == sweep.Points-1 {
			x = sweep.Max
		}
		p, err := sweep.Base.With(sweep.Category, sweep.Param, x)
		if err != nil {
			return nil, err
		}
		applied, _ := p.Value(sweep.Category, sweep.Param)
		final := tokenomics.Calculate(p, months)
		v, _ := final.Field(metric)
		results = append(results, SweepPoint{ParamValue: applied, Value: v, Final: final})
	}
	return results, nil
}
