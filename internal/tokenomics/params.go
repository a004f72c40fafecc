package tokenomics

import (
	"fmt"
	"math"
)

// Category names a parameter section.
type Category string

const (
	SystemParameters  Category = "systemParameters"
	MarketDynamics    Category = "marketDynamics"
	FeeStructure      Category = "feeStructure"
	ProviderEconomics Category = "providerEconomics"
)

// Categories returns the parameter sections in declaration order.
func Categories() []Category {
	return []Category{SystemParameters, MarketDynamics, FeeStructure, ProviderEconomics}
}

type SystemParams struct {
	InitialCUGrowth   float64 `json:"initialCUGrowth" yaml:"initialCUGrowth"`
	MonthlyGrowthRate float64 `json:"monthlyGrowthRate" yaml:"monthlyGrowthRate"`
	Milestone1Month   int     `json:"milestone1Month" yaml:"milestone1Month"`
}

type MarketParams struct {
	PriceSensitivity float64 `json:"priceSensitivity" yaml:"priceSensitivity"`
	DemandElasticity float64 `json:"demandElasticity" yaml:"demandElasticity"`
	CollateralRatio  float64 `json:"collateralRatio" yaml:"collateralRatio"`
}

type FeeParams struct {
	TransactionFee    float64 `json:"transactionFee" yaml:"transactionFee"`
	BridgeFee         float64 `json:"bridgeFee" yaml:"bridgeFee"`
	StakingRewardRate float64 `json:"stakingRewardRate" yaml:"stakingRewardRate"`
}

// ProviderParams describes compute-provider costs. ProviderType is a label
// only and never enters the arithmetic.
type ProviderParams struct {
	SetupCost    float64 `json:"setupCost" yaml:"setupCost"`
	MonthlyOpEx  float64 `json:"monthlyOpEx" yaml:"monthlyOpEx"`
	ProviderType string  `json:"providerType" yaml:"providerType"`
}

// Parameters is the full input of a simulation run. Field order matters:
// it fixes the JSON encoding that seeds the noise generator.
type Parameters struct {
	System   SystemParams   `json:"systemParameters" yaml:"systemParameters"`
	Market   MarketParams   `json:"marketDynamics" yaml:"marketDynamics"`
	Fees     FeeParams      `json:"feeStructure" yaml:"feeStructure"`
	Provider ProviderParams `json:"providerEconomics" yaml:"providerEconomics"`
}

func DefaultParameters() Parameters {
	return Parameters{
		System: SystemParams{
			InitialCUGrowth:   0.15,
			MonthlyGrowthRate: 0.08,
			Milestone1Month:   12,
		},
		Market: MarketParams{
			PriceSensitivity: 1.2,
			DemandElasticity: 0.8,
			CollateralRatio:  1.5,
		},
		Fees: FeeParams{
			TransactionFee:    0.01,
			BridgeFee:         0.005,
			StakingRewardRate: 0.03,
		},
		Provider: ProviderParams{
			SetupCost:    10000,
			MonthlyOpEx:  1000,
			ProviderType: "Medium",
		},
	}
}

// Bound is the safe domain of a numeric knob and the step its control uses.
type Bound struct {
	Min, Max, Step float64
}

type paramField struct {
	category Category
	name     string
	bound    Bound
	integer  bool
	ref      func(p *Parameters) *float64
	intRef   func(p *Parameters) *int
}

// Control steps follow the playground sliders; the ranges are wider than the
// sliders so scripted input is clamped only when it would be meaningless.
var paramFields = []paramField{
	{category: SystemParameters, name: "initialCUGrowth", bound: Bound{0, 1, 0.01},
		ref: func(p *Parameters) *float64 { return &p.System.InitialCUGrowth }},
	{category: SystemParameters, name: "monthlyGrowthRate", bound: Bound{-0.5, 1, 0.01},
		ref: func(p *Parameters) *float64 { return &p.System.MonthlyGrowthRate }},
	{category: SystemParameters, name: "milestone1Month", bound: Bound{0, MaxMonths, 1}, integer: true,
		intRef: func(p *Parameters) *int { return &p.System.Milestone1Month }},
	{category: MarketDynamics, name: "priceSensitivity", bound: Bound{0, 10, 0.1},
		ref: func(p *Parameters) *float64 { return &p.Market.PriceSensitivity }},
	{category: MarketDynamics, name: "demandElasticity", bound: Bound{0, 5, 0.1},
		ref: func(p *Parameters) *float64 { return &p.Market.DemandElasticity }},
	{category: MarketDynamics, name: "collateralRatio", bound: Bound{0, 10, 0.1},
		ref: func(p *Parameters) *float64 { return &p.Market.CollateralRatio }},
	{category: FeeStructure, name: "transactionFee", bound: Bound{0, 1, 0.001},
		ref: func(p *Parameters) *float64 { return &p.Fees.TransactionFee }},
	{category: FeeStructure, name: "bridgeFee", bound: Bound{0, 1, 0.0005},
		ref: func(p *Parameters) *float64 { return &p.Fees.BridgeFee }},
	{category: FeeStructure, name: "stakingRewardRate", bound: Bound{0, 1, 0.005},
		ref: func(p *Parameters) *float64 { return &p.Fees.StakingRewardRate }},
	{category: ProviderEconomics, name: "setupCost", bound: Bound{0, 10_000_000, 1000},
		ref: func(p *Parameters) *float64 { return &p.Provider.SetupCost }},
	{category: ProviderEconomics, name: "monthlyOpEx", bound: Bound{0, 1_000_000, 100},
		ref: func(p *Parameters) *float64 { return &p.Provider.MonthlyOpEx }},
}

func validCategory(c Category) bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

func lookupField(category Category, name string) (paramField, error) {
	if !validCategory(category) {
		return paramField{}, fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}
	for _, f := range paramFields {
		if f.category == category && f.name == name {
			return f, nil
		}
	}
	return paramField{}, fmt.Errorf("%w: %s.%s", ErrNonNumericParameter, category, name)
}

// ParamNames lists the numeric knobs of a section.
func ParamNames(category Category) []string {
	var names []string
	for _, f := range paramFields {
		if f.category == category {
			names = append(names, f.name)
		}
	}
	return names
}

// BoundOf returns the safe domain of a numeric knob.
func BoundOf(category Category, name string) (Bound, error) {
	f, err := lookupField(category, name)
	if err != nil {
		return Bound{}, err
	}
	return f.bound, nil
}

// Value resolves a numeric parameter by section and name.
func (p Parameters) Value(category Category, name string) (float64, error) {
	f, err := lookupField(category, name)
	if err != nil {
		return 0, err
	}
	if f.integer {
		return float64(*f.intRef(&p)), nil
	}
	return *f.ref(&p), nil
}

// With returns a copy of p with one numeric parameter replaced. Integer
// knobs are rounded to the nearest whole value.
func (p Parameters) With(category Category, name string, v float64) (Parameters, error) {
	f, err := lookupField(category, name)
	if err != nil {
		return p, err
	}
	if f.integer {
		*f.intRef(&p) = int(math.Round(v))
	} else {
		*f.ref(&p) = v
	}
	return p, nil
}

// Clamp returns a copy of p with every real-valued knob inside its safe
// domain. Non-finite values fall back to the default. The milestone month is
// left alone: any integer is valid, one outside the horizon never fires.
func (p Parameters) Clamp() Parameters {
	def := DefaultParameters()
	for _, f := range paramFields {
		if f.integer {
			continue
		}
		v := *f.ref(&p)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			v = *f.ref(&def)
		}
		*f.ref(&p) = math.Max(f.bound.Min, math.Min(f.bound.Max, v))
	}
	return p
}
