package main

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/tokensim/internal/export"
	"github.com/san-kum/tokensim/internal/metrics"
	"github.com/san-kum/tokensim/internal/storage"
	"github.com/san-kum/tokensim/internal/tokenomics"
	"github.com/san-kum/tokensim/internal/tui"
	"github.com/san-kum/tokensim/internal/viz"
)

func runSimulation(cmd *cobra.Command, args []string) error {
	r, err := resolveRun(cmd, *fileCfg)
	if err != nil {
		return err
	}

	observers := metrics.Standard()
	engine := &tokenomics.Engine{Now: time.Now, Observers: metrics.Observers(observers)}
	if live {
		renderer := tui.NewLiveRenderer(r.label, r.months, frameRate, os.Stdout)
		renderer.Start()
		defer renderer.Stop()
		engine.Observers = append(engine.Observers, renderer)
	}

	logger.Info("running simulation", zap.String("scenario", r.label), zap.Int("months", r.months))
	start := time.Now()
	tr := engine.Simulate(r.params, r.months)
	logger.Info("simulation finished", zap.Duration("elapsed", time.Since(start)))

	final := tr.Final()
	fmt.Println(viz.Summary(final, r.months))
	if err := viz.MetricsTable(os.Stdout, final); err != nil {
		return err
	}

	fmt.Println("\nrun checks:")
	values := metrics.Values(observers)
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, values[name])
	}

	if noSave {
		return nil
	}
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	runID, err := st.Save(&storage.Run{Scenario: r.label, Months: r.months, Parameters: r.params, Trajectory: tr})
	if err != nil {
		return err
	}
	fmt.Printf("\nrun id: %s\n", runID)
	return nil
}

func forecast(cmd *cobra.Command, args []string) error {
	r, err := resolveRun(cmd, *fileCfg)
	if err != nil {
		return err
	}
	tr := tokenomics.Simulate(r.params, r.months)
	fmt.Printf("forecast: %s, %d months\n\n", r.label, r.months)
	return renderCharts(tr)
}

// renderCharts prints the selected tab (or all of them) and writes the SVG
// when --svg is set.
func renderCharts(tr tokenomics.Trajectory) error {
	tabs := []string{tab}
	if tab == "all" {
		tabs = viz.Tabs()
	}
	for _, t := range tabs {
		chart, err := viz.ForecastCharts(tr, t, svgWidth)
		if err != nil {
			return err
		}
		fmt.Println(chart)
	}

	if svgPath == "" {
		return nil
	}
	lines, err := export.TrajectoryLines(tr, "sstbPrice", "rstbPrice")
	if err != nil {
		return err
	}
	f, err := os.Create(svgPath)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := export.WriteSVG(f, lines, 800, 400); err != nil {
		return err
	}
	fmt.Printf("svg written to %s\n", svgPath)
	return nil
}

func compareScenarios(cmd *cobra.Command, args []string) error {
	if months < 0 || months > tokenomics.MaxMonths {
		return fmt.Errorf("%w: %d", tokenomics.ErrInvalidHorizon, months)
	}
	finals := make([]tokenomics.Metrics, 0, len(args))
	for _, key := range args {
		p, err := scenarioParams(key)
		if err != nil {
			return err
		}
		finals = append(finals, tokenomics.Calculate(p, months))
	}
	fmt.Printf("comparison after %d months\n", months)
	return viz.CompareTable(os.Stdout, args, finals)
}

func listScenarios(cmd *cobra.Command, args []string) error {
	reg, err := scenarioRegistry()
	if err != nil {
		return err
	}
	keys := make([]string, 0, len(reg))
	for k := range reg {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Key", "Name", "Description", "CU Target", "STB", "TVL", "Timeline")
	for _, k := range keys {
		s := reg[k]
		row := []string{
			k,
			s.Name,
			s.Description,
			viz.Compact(s.Outcomes.CUTarget),
			viz.Price(s.Outcomes.StbPrice),
			viz.Money(s.Outcomes.TVL),
			s.Outcomes.Timeline,
		}
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}
