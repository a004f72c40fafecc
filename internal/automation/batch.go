// Package automation runs simulations in bulk: scripted batches from YAML,
// randomized stress trials and one-dimensional parameter sweeps.
package automation

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/tokensim/internal/config"
	"github.com/san-kum/tokensim/internal/metrics"
	"github.com/san-kum/tokensim/internal/storage"
	"github.com/san-kum/tokensim/internal/tokenomics"
)

// Batch is a scripted sequence of runs.
type Batch struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Runs        []BatchRun `yaml:"runs"`
}

// BatchRun is one run of a batch. Parameters are layered over the scenario.
type BatchRun struct {
	Scenario   string           `yaml:"scenario"`
	Months     int              `yaml:"months"`
	Parameters config.Overrides `yaml:"parameters"`
	SaveAs     string           `yaml:"save_as"`
}

type BatchResult struct {
	Label      string
	Months     int
	Parameters tokenomics.Parameters
	Final      tokenomics.Metrics
	Observed   map[string]float64
	RunID      string
}

func LoadBatch(path string) (*Batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var batch Batch
	if err := yaml.Unmarshal(data, &batch); err != nil {
		return nil, err
	}
	return &batch, nil
}

// RunBatch executes the runs in order. When st is non-nil every run is saved,
// labelled by SaveAs or else by its scenario.
func RunBatch(ctx context.Context, batch *Batch, st storage.Store, logger *zap.Logger) ([]BatchResult, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	results := make([]BatchResult, 0, len(batch.Runs))

	for i, run := range batch.Runs {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		cfg := config.Config{Scenario: run.Scenario, Months: run.Months, Parameters: run.Parameters}
		if cfg.Months == 0 {
			cfg.Months = config.DefaultMonths
		}
		p, err := cfg.Resolve()
		if err != nil {
			return results, fmt.Errorf("run %d: %w", i+1, err)
		}

		label := run.SaveAs
		if label == "" {
			label = run.Scenario
		}
		logger.Info("batch run",
			zap.Int("index", i+1),
			zap.Int("of", len(batch.Runs)),
			zap.String("label", label),
			zap.Int("months", cfg.Months))

		observed := metrics.Standard()
		e := &tokenomics.Engine{Observers: metrics.Observers(observed)}
		tr := e.Simulate(p, cfg.Months)

		res := BatchResult{
			Label:      label,
			Months:     cfg.Months,
			Parameters: p,
			Final:      tr.Final(),
			Observed:   metrics.Values(observed),
		}
		if st != nil {
			id, err := st.Save(&storage.Run{Scenario: label, Months: cfg.Months, Parameters: p, Trajectory: tr})
			if err != nil {
				return results, fmt.Errorf("run %d save: %w", i+1, err)
			}
			res.RunID = id
		}
		results = append(results, res)
	}

	return results, nil
}
