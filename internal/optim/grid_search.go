// Package optim searches parameter grids for the set that best serves one
// final-month metric.
package optim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/tokensim/internal/tokenomics"
)

// Axis is one searched parameter and the values it takes.
type Axis struct {
	Category tokenomics.Category
	Param    string
	Values   []float64
}

// Linspace returns n evenly spaced values covering [lo, hi].
func Linspace(lo, hi float64, n int) []float64 {
	if n < 2 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi
	return out
}

type GridSearch struct {
	axes     []Axis
	months   int
	metric   string
	maximize bool
}

func NewGridSearch(axes []Axis, months int, metric string, maximize bool) *GridSearch {
	return &GridSearch{axes: axes, months: months, metric: metric, maximize: maximize}
}

// Result is the best grid point. Evaluated counts the runs performed.
type Result struct {
	Parameters tokenomics.Parameters
	Score      float64
	Final      tokenomics.Metrics
	Evaluated  int
}

// Search walks the full grid on top of base. Ties keep the earliest point
// and non-finite scores never win.
func (g *GridSearch) Search(ctx context.Context, base tokenomics.Parameters) (*Result, error) {
	if _, ok := (tokenomics.Metrics{}).Field(g.metric); !ok {
		return nil, fmt.Errorf("unknown metric: %s", g.metric)
	}
	for _, a := range g.axes {
		if _, err := base.Value(a.Category, a.Param); err != nil {
			return nil, err
		}
		if len(a.Values) == 0 {
			return nil, fmt.Errorf("axis %s.%s has no values", a.Category, a.Param)
		}
	}

	best := &Result{Score: math.Inf(1)}
	if g.maximize {
		best.Score = math.Inf(-1)
	}
	found := false
	if err := g.searchRecursive(ctx, 0, base, best, &found); err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("no finite %s on the grid", g.metric)
	}
	return best, nil
}

func (g *GridSearch) better(v, best float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	if g.maximize {
		return v > best
	}
	return v < best
}

func (g *GridSearch) searchRecursive(ctx context.Context, depth int, current tokenomics.Parameters, best *Result, found *bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if depth == len(g.axes) {
		final := tokenomics.Calculate(current, g.months)
		v, _ := final.Field(g.metric)
		best.Evaluated++
		if g.better(v, best.Score) {
			best.Score = v
			best.Parameters = current
			best.Final = final
			*found = true
		}
		return nil
	}

	axis := g.axes[depth]
	for _, val := range axis.Values {
		next, err := current.With(axis.Category, axis.Param, val)
		if err != nil {
			return err
		}
		if err := g.searchRecursive(ctx, depth+1, next, best, found); err != nil {
			return err
		}
	}
	return nil
}
