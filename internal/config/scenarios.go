package config

import (
	"fmt"
	"os"
	"sort"

	"github.com/san-kum/tokensim/internal/tokenomics"
	"gopkg.in/yaml.v3"
)

// Outcomes are the headline figures a scenario is expected to reach. They
// describe the scenario and never feed the engine.
type Outcomes struct {
	CUTarget float64 `yaml:"cuTarget" json:"cuTarget"`
	StbPrice float64 `yaml:"stbPrice" json:"stbPrice"`
	TVL      float64 `yaml:"tvl" json:"tvl"`
	Timeline string  `yaml:"timeline,omitempty" json:"timeline,omitempty"`
}

type Scenario struct {
	Key         string    `yaml:"-" json:"key"`
	Name        string    `yaml:"name" json:"name"`
	Description string    `yaml:"description" json:"description"`
	Parameters  Overrides `yaml:"parameters" json:"parameters"`
	Outcomes    Outcomes  `yaml:"outcomes" json:"outcomes"`
}

func marketScenario(key, name, desc string, sys SystemOverrides, mkt MarketOverrides, fees FeeOverrides, out Outcomes) Scenario {
	return Scenario{
		Key:         key,
		Name:        name,
		Description: desc,
		Parameters:  Overrides{System: &sys, Market: &mkt, Fees: &fees},
		Outcomes:    out,
	}
}

var Scenarios = map[string]Scenario{
	"computeRevolution": marketScenario("computeRevolution", "Compute Revolution",
		"Rapid growth in compute demand drives system expansion",
		SystemOverrides{Float(0.25), Float(0.12), Int(12)},
		MarketOverrides{Float(0.8), Float(1.2), Float(1.8)},
		FeeOverrides{Float(0.01), Float(0.005), Float(0.04)},
		Outcomes{CUTarget: 20, StbPrice: 2.5, TVL: 150}),
	"balancedAscent": marketScenario("balancedAscent", "Balanced Ascent",
		"Steady growth and stable tokenomics",
		SystemOverrides{Float(0.15), Float(0.08), Int(12)},
		MarketOverrides{Float(1.0), Float(1.0), Float(1.5)},
		FeeOverrides{Float(0.01), Float(0.005), Float(0.03)},
		Outcomes{CUTarget: 12, StbPrice: 1.8, TVL: 100}),
	"cryptoWinter": marketScenario("cryptoWinter", "Crypto Winter",
		"Challenging market conditions with reduced growth",
		SystemOverrides{Float(0.08), Float(0.04), Int(12)},
		MarketOverrides{Float(1.8), Float(0.6), Float(2.0)},
		FeeOverrides{Float(0.01), Float(0.005), Float(0.02)},
		Outcomes{CUTarget: 5, StbPrice: 0.9, TVL: 40}),
	"providerGoldRush": withProvider(marketScenario("providerGoldRush", "Provider Gold Rush",
		"High provider participation drives CU growth",
		SystemOverrides{Float(0.2), Float(0.1), Int(12)},
		MarketOverrides{Float(1.2), Float(1.1), Float(1.4)},
		FeeOverrides{Float(0.01), Float(0.005), Float(0.035)},
		Outcomes{CUTarget: 18, StbPrice: 2.0, TVL: 120}),
		ProviderOverrides{Float(8000), Float(800), String("Medium")}),
	"regulatoryReckoning": marketScenario("regulatoryReckoning", "Regulatory Reckoning",
		"Increased compliance costs affect fee structure",
		SystemOverrides{Float(0.15), Float(0.06), Int(12)},
		MarketOverrides{Float(1.3), Float(0.7), Float(1.7)},
		FeeOverrides{Float(0.015), Float(0.01), Float(0.025)},
		Outcomes{CUTarget: 10, StbPrice: 1.5, TVL: 80}),
}

func withProvider(s Scenario, p ProviderOverrides) Scenario {
	s.Parameters.Provider = &p
	return s
}

// GetScenario returns a built-in scenario or nil.
func GetScenario(key string) *Scenario {
	s, ok := Scenarios[key]
	if !ok {
		return nil
	}
	s.Parameters = MergeOverrides(Overrides{}, s.Parameters)
	return &s
}

func ListScenarios() []string {
	keys := make([]string, 0, len(Scenarios))
	for k := range Scenarios {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ApplyScenario returns the defaults with the scenario's parameters merged in.
// An unknown key yields the plain defaults.
func ApplyScenario(key string) tokenomics.Parameters {
	s := GetScenario(key)
	if s == nil {
		return tokenomics.DefaultParameters()
	}
	return Merge(tokenomics.DefaultParameters(), s.Parameters)
}

// LoadScenarios reads a YAML map of scenarios keyed by name and returns the
// built-in registry extended (or overridden) by them.
func LoadScenarios(path string) (map[string]Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var extra map[string]Scenario
	if err := yaml.Unmarshal(data, &extra); err != nil {
		return nil, fmt.Errorf("parse scenarios %s: %w", path, err)
	}

	out := make(map[string]Scenario, len(Scenarios)+len(extra))
	for k, s := range Scenarios {
		out[k] = s
	}
	for k, s := range extra {
		s.Key = k
		if s.Name == "" {
			s.Name = k
		}
		out[k] = s
	}
	return out, nil
}
