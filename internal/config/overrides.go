package config

import "github.com/san-kum/tokensim/internal/tokenomics"

// Overrides is a partial parameter set: nil sections and nil fields are left
// untouched when merged.
type Overrides struct {
	System   *SystemOverrides   `yaml:"systemParameters,omitempty" json:"systemParameters,omitempty"`
	Market   *MarketOverrides   `yaml:"marketDynamics,omitempty" json:"marketDynamics,omitempty"`
	Fees     *FeeOverrides      `yaml:"feeStructure,omitempty" json:"feeStructure,omitempty"`
	Provider *ProviderOverrides `yaml:"providerEconomics,omitempty" json:"providerEconomics,omitempty"`
}

type SystemOverrides struct {
	InitialCUGrowth   *float64 `yaml:"initialCUGrowth,omitempty" json:"initialCUGrowth,omitempty"`
	MonthlyGrowthRate *float64 `yaml:"monthlyGrowthRate,omitempty" json:"monthlyGrowthRate,omitempty"`
	Milestone1Month   *int     `yaml:"milestone1Month,omitempty" json:"milestone1Month,omitempty"`
}

type MarketOverrides struct {
	PriceSensitivity *float64 `yaml:"priceSensitivity,omitempty" json:"priceSensitivity,omitempty"`
	DemandElasticity *float64 `yaml:"demandElasticity,omitempty" json:"demandElasticity,omitempty"`
	CollateralRatio  *float64 `yaml:"collateralRatio,omitempty" json:"collateralRatio,omitempty"`
}

type FeeOverrides struct {
	TransactionFee    *float64 `yaml:"transactionFee,omitempty" json:"transactionFee,omitempty"`
	BridgeFee         *float64 `yaml:"bridgeFee,omitempty" json:"bridgeFee,omitempty"`
	StakingRewardRate *float64 `yaml:"stakingRewardRate,omitempty" json:"stakingRewardRate,omitempty"`
}

type ProviderOverrides struct {
	SetupCost    *float64 `yaml:"setupCost,omitempty" json:"setupCost,omitempty"`
	MonthlyOpEx  *float64 `yaml:"monthlyOpEx,omitempty" json:"monthlyOpEx,omitempty"`
	ProviderType *string  `yaml:"providerType,omitempty" json:"providerType,omitempty"`
}

func Float(v float64) *float64 { return &v }
func Int(v int) *int { return &v }
func String(v string) *string { return &v }

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// pick returns a fresh copy of the override value, or of the base when the
// override is nil.
func pick[T any](base, over *T) *T {
	if over != nil {
		v := *over
		return &v
	}
	if base != nil {
		v := *base
		return &v
	}
	return nil
}

// Merge applies o on top of base. Neither argument is modified.
func Merge(base tokenomics.Parameters, o Overrides) tokenomics.Parameters {
	p := base
	if s := o.System; s != nil {
		set(&p.System.InitialCUGrowth, s.InitialCUGrowth)
		set(&p.System.MonthlyGrowthRate, s.MonthlyGrowthRate)
		set(&p.System.Milestone1Month, s.Milestone1Month)
	}
	if m := o.Market; m != nil {
		set(&p.Market.PriceSensitivity, m.PriceSensitivity)
		set(&p.Market.DemandElasticity, m.DemandElasticity)
		set(&p.Market.CollateralRatio, m.CollateralRatio)
	}
	if f := o.Fees; f != nil {
		set(&p.Fees.TransactionFee, f.TransactionFee)
		set(&p.Fees.BridgeFee, f.BridgeFee)
		set(&p.Fees.StakingRewardRate, f.StakingRewardRate)
	}
	if pr := o.Provider; pr != nil {
		set(&p.Provider.SetupCost, pr.SetupCost)
		set(&p.Provider.MonthlyOpEx, pr.MonthlyOpEx)
		set(&p.Provider.ProviderType, pr.ProviderType)
	}
	return p
}

// MergeOverrides layers top over base field by field. The result shares no
// pointers with either input.
func MergeOverrides(base, top Overrides) Overrides {
	var out Overrides
	if base.System != nil || top.System != nil {
		b, t := orZero(base.System), orZero(top.System)
		out.System = &SystemOverrides{
			InitialCUGrowth:   pick(b.InitialCUGrowth, t.InitialCUGrowth),
			MonthlyGrowthRate: pick(b.MonthlyGrowthRate, t.MonthlyGrowthRate),
			Milestone1Month:   pick(b.Milestone1Month, t.Milestone1Month),
		}
	}
	if base.Market != nil || top.Market != nil {
		b, t := orZero(base.Market), orZero(top.Market)
		out.Market = &MarketOverrides{
			PriceSensitivity: pick(b.PriceSensitivity, t.PriceSensitivity),
			DemandElasticity: pick(b.DemandElasticity, t.DemandElasticity),
			CollateralRatio:  pick(b.CollateralRatio, t.CollateralRatio),
		}
	}
	if base.Fees != nil || top.Fees != nil {
		b, t := orZero(base.Fees), orZero(top.Fees)
		out.Fees = &FeeOverrides{
			TransactionFee:    pick(b.TransactionFee, t.TransactionFee),
			BridgeFee:         pick(b.BridgeFee, t.BridgeFee),
			StakingRewardRate: pick(b.StakingRewardRate, t.StakingRewardRate),
		}
	}
	if base.Provider != nil || top.Provider != nil {
		b, t := orZero(base.Provider), orZero(top.Provider)
		out.Provider = &ProviderOverrides{
			SetupCost:    pick(b.SetupCost, t.SetupCost),
			MonthlyOpEx:  pick(b.MonthlyOpEx, t.MonthlyOpEx),
			ProviderType: pick(b.ProviderType, t.ProviderType),
		}
	}
	return out
}

func orZero[T any](v *T) *T {
	if v == nil {
		return new(T)
	}
	return v
}
