package optim

import (
	"context"
	"testing"

	"github.com/san-kum/tokensim/internal/tokenomics"
)

func TestLinspace(t *testing.T) {
	got := Linspace(0, 1, 5)
	want := []float64{0, 0.25, 0.5, 0.75, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Linspace[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if got := Linspace(3, 9, 1); len(got) != 1 || got[0] != 3 {
		t.Errorf("single point: %v", got)
	}
}

func TestGridSearchMaximizesGrowth(t *testing.T) {
	axes := []Axis{{
		Category: tokenomics.SystemParameters,
		Param:    "monthlyGrowthRate",
		Values:   Linspace(0.02, 0.12, 6),
	}}
	res, err := NewGridSearch(axes, 12, "totalCU", true).Search(context.Background(), tokenomics.DefaultParameters())
	if err != nil {
		t.Fatal(err)
	}
	if res.Evaluated != 6 {
		t.Errorf("expected 6 runs, got %d", res.Evaluated)
	}
	if res.Parameters.System.MonthlyGrowthRate != 0.12 {
		t.Errorf("expected the fastest growth to win, got %v", res.Parameters.System.MonthlyGrowthRate)
	}
	if res.Score != res.Final.TotalCU {
		t.Errorf("score %v does not match final totalCU %v", res.Score, res.Final.TotalCU)
	}
}

func TestGridSearchFullGrid(t *testing.T) {
	axes := []Axis{
		{Category: tokenomics.SystemParameters, Param: "monthlyGrowthRate", Values: []float64{0.04, 0.08}},
		{Category: tokenomics.FeeStructure, Param: "transactionFee", Values: []float64{0.005, 0.01, 0.02}},
	}
	res, err := NewGridSearch(axes, 6, "cumulativeRevenue", false).Search(context.Background(), tokenomics.DefaultParameters())
	if err != nil {
		t.Fatal(err)
	}
	if res.Evaluated != 6 {
		t.Errorf("expected 6 runs, got %d", res.Evaluated)
	}
	if res.Parameters.System.MonthlyGrowthRate != 0.04 || res.Parameters.Fees.TransactionFee != 0.005 {
		t.Errorf("expected the lowest revenue corner, got %+v", res.Parameters)
	}
}

func TestGridSearchErrors(t *testing.T) {
	base := tokenomics.DefaultParameters()
	ctx := context.Background()

	if _, err := NewGridSearch(nil, 12, "nope", true).Search(ctx, base); err == nil {
		t.Error("expected unknown metric error")
	}
	bad := []Axis{{Category: "x", Param: "y", Values: []float64{1}}}
	if _, err := NewGridSearch(bad, 12, "tvl", true).Search(ctx, base); err == nil {
		t.Error("expected unknown parameter error")
	}
	empty := []Axis{{Category: tokenomics.FeeStructure, Param: "bridgeFee"}}
	if _, err := NewGridSearch(empty, 12, "tvl", true).Search(ctx, base); err == nil {
		t.Error("expected empty axis error")
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	axes := []Axis{{Category: tokenomics.FeeStructure, Param: "bridgeFee", Values: []float64{0.001}}}
	if _, err := NewGridSearch(axes, 12, "tvl", true).Search(cancelled, base); err == nil {
		t.Error("expected context error")
	}
}
