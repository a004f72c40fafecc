package config

import (
	"fmt"
	"os"

	"github.com/san-kum/tokensim/internal/tokenomics"
	"gopkg.in/yaml.v3"
)

const (
	DefaultMonths       = 12
	DefaultRangePercent = 20.0
	DefaultBackend      = "dir"
	DefaultDataDir      = "data"
)

// Config is a run description read from YAML. Parameters are layered as
// defaults, then the scenario, then the file's own overrides.
type Config struct {
	Scenario    string            `yaml:"scenario"`
	Months      int               `yaml:"months"`
	Parameters  Overrides         `yaml:"parameters"`
	Sensitivity SensitivityConfig `yaml:"sensitivity"`
	Store       StoreConfig       `yaml:"store"`
}

type SensitivityConfig struct {
	Category string  `yaml:"category"`
	Param    string  `yaml:"param"`
	Range    float64 `yaml:"range"`
}

type StoreConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
}

func DefaultConfig() *Config {
	return &Config{
		Months: DefaultMonths,
		Sensitivity: SensitivityConfig{
			Category: string(tokenomics.SystemParameters),
			Param:    "monthlyGrowthRate",
			Range:    DefaultRangePercent,
		},
		Store: StoreConfig{
			Backend: DefaultBackend,
			Path:    DefaultDataDir,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the horizon and the scenario name.
func (c *Config) Validate() error {
	if c.Months < 0 || c.Months > tokenomics.MaxMonths {
		return fmt.Errorf("%w: %d (0..%d)", tokenomics.ErrInvalidHorizon, c.Months, tokenomics.MaxMonths)
	}
	if c.Scenario != "" && GetScenario(c.Scenario) == nil {
		return fmt.Errorf("unknown scenario: %s", c.Scenario)
	}
	return nil
}

// Resolve returns the final engine parameters for c.
func (c *Config) Resolve() (tokenomics.Parameters, error) {
	if err := c.Validate(); err != nil {
		return tokenomics.Parameters{}, err
	}
	return Merge(ApplyScenario(c.Scenario), c.Parameters), nil
}
