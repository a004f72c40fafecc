package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/tokensim/internal/automation"
	"github.com/san-kum/tokensim/internal/optim"
	"github.com/san-kum/tokensim/internal/sensitivity"
	"github.com/san-kum/tokensim/internal/storage"
	"github.com/san-kum/tokensim/internal/tokenomics"
	"github.com/san-kum/tokensim/internal/viz"
)

func analyzeSensitivity(cmd *cobra.Command, args []string) error {
	r, err := resolveRun(cmd, *fileCfg)
	if err != nil {
		return err
	}

	category, param := fileCfg.Sensitivity.Category, fileCfg.Sensitivity.Param
	if len(args) > 0 {
		category = args[0]
	}
	if len(args) > 1 {
		param = args[1]
	}
	pct := fileCfg.Sensitivity.Range
	if cmd.Flags().Changed("range") || pct == 0 {
		pct = rangePct
	}

	a := sensitivity.Analyzer{Base: r.params, Months: r.months, Steps: steps, Workers: workers}
	start := time.Now()
	res, err := a.Analyze(cmd.Context(), tokenomics.Category(category), param, pct)
	if err != nil {
		return err
	}
	logger.Info("sensitivity finished",
		zap.String("param", category+"."+param),
		zap.Float64("range", pct),
		zap.Duration("elapsed", time.Since(start)))

	fmt.Printf("sensitivity of %s.%s (±%g%%, %d months, metric %s)\n\n", category, param, pct, r.months, res.Metric)
	if err := viz.SensitivityTable(os.Stdout, res); err != nil {
		return err
	}
	fmt.Printf("\nmost sensitive: %s\n", res.MostSensitive())
	return nil
}

func sweepParameter(cmd *cobra.Command, args []string) error {
	r, err := resolveRun(cmd, *fileCfg)
	if err != nil {
		return err
	}
	sw := &automation.Sweep{
		Base:     r.params,
		Category: tokenomics.Category(args[0]),
		Param:    args[1],
		Min:      sweepMin,
		Max:      sweepMax,
		Points:   points,
		Months:   r.months,
		Metric:   metric,
	}
	res, err := automation.RunSweep(cmd.Context(), sw)
	if err != nil {
		return err
	}
	name := sw.Metric
	if name == "" {
		name = sensitivity.TrackedMetric(sw.Category)
	}

	series := make([]float64, len(res))
	table := tablewriter.NewWriter(os.Stdout)
	table.Header(sw.Param, name, "sSTB", "TVL")
	for i, pt := range res {
		series[i] = pt.Value
		row := []string{
			strconv.FormatFloat(pt.ParamValue, 'g', 6, 64),
			strconv.FormatFloat(pt.Value, 'g', 8, 64),
			viz.Price(pt.Final.SstbPrice),
			viz.Money(pt.Final.TVL),
		}
		if err := table.Append(row); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}
	fmt.Println()
	fmt.Println(viz.Chart(series, fmt.Sprintf("%s vs %s", name, sw.Param), 60, 10))
	return nil
}

func stressTest(cmd *cobra.Command, args []string) error {
	cfg := automation.StressConfig{Trials: trials, Months: months, Seed: seed, Workers: workers}
	start := time.Now()
	res, err := automation.RunStress(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	s := automation.StressStats(res)
	logger.Info("stress finished", zap.Int("trials", s.Trials), zap.Duration("elapsed", time.Since(start)))

	fmt.Printf("trials:          %d\n", s.Trials)
	fmt.Printf("passed:          %d\n", s.Passed)
	fmt.Printf("non-finite:      %d\n", s.NonFinite)
	fmt.Printf("peg breaks:      %d\n", s.PegBreaks)
	fmt.Printf("rSTB cap breaks: %d\n", s.RstbBreaks)
	fmt.Printf("unlock breaks:   %d\n", s.UnlockBreaks)
	fmt.Printf("max peg dev:     %.4f\n", s.MaxPegDeviation)
	fmt.Printf("max rSTB price:  %s\n", viz.Price(s.MaxRstbPrice))

	if failed := s.Trials - s.Passed; failed > 0 {
		return fmt.Errorf("%d of %d trials failed", failed, s.Trials)
	}
	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	batch, err := automation.LoadBatch(args[0])
	if err != nil {
		return err
	}

	var st storage.Store
	if saveBatch {
		if st, err = openStore(); err != nil {
			return err
		}
		defer st.Close()
	}

	res, err := automation.RunBatch(cmd.Context(), batch, st, logger)
	if err != nil {
		return err
	}

	if batch.Name != "" {
		fmt.Printf("batch: %s\n", batch.Name)
	}
	labels := make([]string, len(res))
	finals := make([]tokenomics.Metrics, len(res))
	for i, r := range res {
		labels[i] = r.Label
		finals[i] = r.Final
		if r.RunID != "" {
			fmt.Printf("  %s saved as %s\n", r.Label, r.RunID)
		}
	}
	return viz.CompareTable(os.Stdout, labels, finals)
}

func optimizeParameters(cmd *cobra.Command, args []string) error {
	r, err := resolveRun(cmd, *fileCfg)
	if err != nil {
		return err
	}
	axes := make([]optim.Axis, 0, len(gridAxes))
	for _, spec := range gridAxes {
		a, err := parseAxis(spec)
		if err != nil {
			return err
		}
		axes = append(axes, a)
	}
	if len(axes) == 0 {
		return fmt.Errorf("at least one --axis is required")
	}

	start := time.Now()
	res, err := optim.NewGridSearch(axes, r.months, optMetric, !minimize).Search(cmd.Context(), r.params)
	if err != nil {
		return err
	}
	logger.Info("grid search finished", zap.Int("evaluated", res.Evaluated), zap.Duration("elapsed", time.Since(start)))

	fmt.Printf("best %s: %s after %d runs\n\n", optMetric, strconv.FormatFloat(res.Score, 'g', 8, 64), res.Evaluated)
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Parameter", "Value")
	for _, a := range axes {
		v, _ := res.Parameters.Value(a.Category, a.Param)
		if err := table.Append([]string{string(a.Category) + "." + a.Param, strconv.FormatFloat(v, 'g', 6, 64)}); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}
	fmt.Println(viz.Summary(res.Final, r.months))
	return nil
}

// parseAxis reads category.param=lo:hi:n.
func parseAxis(s string) (optim.Axis, error) {
	key, rng, ok := strings.Cut(s, "=")
	category, name, ok2 := strings.Cut(key, ".")
	parts := strings.Split(rng, ":")
	if !ok || !ok2 || len(parts) != 3 {
		return optim.Axis{}, fmt.Errorf("invalid --axis %q: want category.param=lo:hi:n", s)
	}
	lo, err1 := strconv.ParseFloat(parts[0], 64)
	hi, err2 := strconv.ParseFloat(parts[1], 64)
	n, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil || n < 1 {
		return optim.Axis{}, fmt.Errorf("invalid --axis %q: want category.param=lo:hi:n", s)
	}
	return optim.Axis{Category: tokenomics.Category(category), Param: name, Values: optim.Linspace(lo, hi, n)}, nil
}
