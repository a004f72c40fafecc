package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/san-kum/tokensim/internal/config"
	"github.com/san-kum/tokensim/internal/storage"
	"github.com/san-kum/tokensim/internal/tokenomics"
)

// resolved is everything a single simulation needs.
type resolved struct {
	label  string
	months int
	params tokenomics.Parameters
}

// scenarioRegistry returns the built-in scenarios, extended by the
// --scenarios file when one is given.
func scenarioRegistry() (map[string]config.Scenario, error) {
	if scenariosFile != "" {
		return config.LoadScenarios(scenariosFile)
	}
	reg := make(map[string]config.Scenario, len(config.Scenarios))
	for _, key := range config.ListScenarios() {
		reg[key] = *config.GetScenario(key)
	}
	return reg, nil
}

// resolveRun layers defaults, the scenario, the config file overrides and
// finally --set flags.
func resolveRun(cmd *cobra.Command, cfg config.Config) (resolved, error) {
	if cmd.Flags().Changed("scenario") {
		cfg.Scenario = scenario
	}
	if cmd.Flags().Changed("months") {
		cfg.Months = months
	}

	var p tokenomics.Parameters
	if scenariosFile == "" {
		var err error
		if p, err = cfg.Resolve(); err != nil {
			return resolved{}, err
		}
	} else {
		if cfg.Months < 0 || cfg.Months > tokenomics.MaxMonths {
			return resolved{}, fmt.Errorf("%w: %d", tokenomics.ErrInvalidHorizon, cfg.Months)
		}
		base, err := scenarioParams(cfg.Scenario)
		if err != nil {
			return resolved{}, err
		}
		p = config.Merge(base, cfg.Parameters)
	}

	p, err := applySets(p, sets)
	if err != nil {
		return resolved{}, err
	}

	label := cfg.Scenario
	if label == "" || len(sets) > 0 {
		label = "custom"
	}
	return resolved{label: label, months: cfg.Months, params: p}, nil
}

func scenarioParams(key string) (tokenomics.Parameters, error) {
	if key == "" {
		return tokenomics.DefaultParameters(), nil
	}
	reg, err := scenarioRegistry()
	if err != nil {
		return tokenomics.Parameters{}, err
	}
	s, ok := reg[key]
	if !ok {
		return tokenomics.Parameters{}, fmt.Errorf("unknown scenario: %s", key)
	}
	return config.Merge(tokenomics.DefaultParameters(), s.Parameters), nil
}

// applySets applies overrides of the form category.param=value.
func applySets(p tokenomics.Parameters, sets []string) (tokenomics.Parameters, error) {
	for _, s := range sets {
		key, raw, ok := strings.Cut(s, "=")
		if !ok {
			return p, fmt.Errorf("invalid --set %q: want category.param=value", s)
		}
		category, name, ok := strings.Cut(key, ".")
		if !ok {
			return p, fmt.Errorf("invalid --set %q: want category.param=value", s)
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return p, fmt.Errorf("invalid --set %q: %w", s, err)
		}
		if p, err = p.With(tokenomics.Category(category), name, v); err != nil {
			return p, err
		}
	}
	return p, nil
}

func openStore() (storage.Store, error) {
	st, err := storage.Open(viper.GetString("store"), viper.GetString("data"), logger)
	if err != nil {
		return nil, err
	}
	if err := st.Init(); err != nil {
		return nil, err
	}
	return st, nil
}

// output opens path for writing, or stdout when path is empty.
func output(path string) (io.Writer, func() error, error) {
	if path == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
