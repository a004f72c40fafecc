package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/san-kum/tokensim/internal/config"
	"github.com/san-kum/tokensim/internal/logging"
	"github.com/san-kum/tokensim/internal/tui"
)

var (
	configFile    string
	scenariosFile string
	scenario      string
	months        int
	sets          []string
	outPath       string

	live      bool
	frameRate int
	noSave    bool

	tab      string
	svgPath  string
	svgWidth int

	rangePct float64
	steps    int
	workers  int
	sweepMin float64
	sweepMax float64
	points   int
	metric   string

	trials    int
	seed      int64
	saveBatch bool
	gridAxes  []string
	optMetric string
	minimize  bool

	fileCfg *config.Config
	logger  = zap.NewNop()
)

func main() {
	rootCmd := &cobra.Command{
		Use:               "tokensim",
		Short:             "tokenomics simulation lab",
		SilenceUsage:      true,
		PersistentPreRunE: initialize,
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.RunPlayground()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("data", config.DefaultDataDir, "data directory")
	flags.String("store", config.DefaultBackend, "store backend (dir|sqlite)")
	flags.String("log-level", "info", "log level")
	flags.StringVar(&configFile, "config", "", "config file path (yaml)")
	flags.StringVar(&scenariosFile, "scenarios", "", "extra scenarios file (yaml)")
	_ = viper.BindPFlag("data", flags.Lookup("data"))
	_ = viper.BindPFlag("store", flags.Lookup("store"))
	_ = viper.BindPFlag("log-level", flags.Lookup("log-level"))

	viper.SetEnvPrefix("TOKENSIM")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation and save it",
		RunE:  runSimulation,
	}
	addRunFlags(runCmd)
	runCmd.Flags().BoolVar(&live, "live", false, "redraw progress every month")
	runCmd.Flags().IntVar(&frameRate, "fps", 0, "live frame rate (0 draws every month)")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	forecastCmd := &cobra.Command{
		Use:   "forecast",
		Short: "chart a forecast without saving it",
		RunE:  forecast,
	}
	addRunFlags(forecastCmd)
	addChartFlags(forecastCmd)

	sensitivityCmd := &cobra.Command{
		Use:   "sensitivity [category] [param]",
		Short: "sweep one parameter around its value",
		Args:  cobra.MaximumNArgs(2),
		RunE:  analyzeSensitivity,
	}
	addRunFlags(sensitivityCmd)
	sensitivityCmd.Flags().Float64Var(&rangePct, "range", config.DefaultRangePercent, "sweep range in percent")
	sensitivityCmd.Flags().IntVar(&steps, "steps", 10, "sweep intervals")
	sensitivityCmd.Flags().IntVar(&workers, "workers", 4, "concurrent runs")

	sweepCmd := &cobra.Command{
		Use:   "sweep [category] [param]",
		Short: "sweep one parameter over an explicit range",
		Args:  cobra.ExactArgs(2),
		RunE:  sweepParameter,
	}
	addRunFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0, "range start")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 1, "range end")
	sweepCmd.Flags().IntVar(&points, "points", 11, "number of points")
	sweepCmd.Flags().StringVar(&metric, "metric", "", "reported metric (default: the section's tracked metric)")

	scenariosCmd := &cobra.Command{
		Use:   "scenarios",
		Short: "list scenarios",
		RunE:  listScenarios,
	}

	compareCmd := &cobra.Command{
		Use:   "compare [scenario] [scenario] ...",
		Short: "compare scenarios at the same horizon",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareScenarios,
	}
	compareCmd.Flags().IntVar(&months, "months", config.DefaultMonths, "forecast horizon")

	stressCmd := &cobra.Command{
		Use:   "stress",
		Short: "run randomized robustness trials",
		RunE:  stressTest,
	}
	stressCmd.Flags().IntVar(&trials, "trials", 100, "number of trials")
	stressCmd.Flags().IntVar(&months, "months", config.DefaultMonths, "forecast horizon")
	stressCmd.Flags().Int64Var(&seed, "seed", 0, "sampling seed (0 uses the clock)")
	stressCmd.Flags().IntVar(&workers, "workers", 4, "concurrent trials")

	batchCmd := &cobra.Command{
		Use:   "batch [file]",
		Short: "run a scripted batch",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}
	batchCmd.Flags().BoolVar(&saveBatch, "save", false, "store every run")

	optimizeCmd := &cobra.Command{
		Use:   "optimize",
		Short: "grid-search parameters for the best final metric",
		RunE:  optimizeParameters,
	}
	addRunFlags(optimizeCmd)
	optimizeCmd.Flags().StringArrayVar(&gridAxes, "axis", nil, "searched parameter (category.param=lo:hi:n)")
	optimizeCmd.Flags().StringVar(&optMetric, "metric", "tvl", "final metric to optimize")
	optimizeCmd.Flags().BoolVar(&minimize, "minimize", false, "minimize instead of maximize")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	addChartFlags(plotCmd)

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	playCmd := &cobra.Command{
		Use:   "play",
		Short: "interactive tokenomics playground",
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.RunPlayground()
		},
	}

	rootCmd.AddCommand(runCmd, forecastCmd, sensitivityCmd, sweepCmd, scenariosCmd, compareCmd,
		stressCmd, batchCmd, optimizeCmd, listCmd, showCmd, plotCmd, exportJSONCmd, exportCSVCmd, playCmd)

	err := rootCmd.Execute()
	_ = logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&scenario, "scenario", "s", "", "scenario to start from")
	cmd.Flags().IntVarP(&months, "months", "m", config.DefaultMonths, "forecast horizon")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "override a parameter (category.param=value)")
}

func addChartFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&tab, "tab", "price", "chart tab (price|supply|unlocked|staking|tvl|all)")
	cmd.Flags().StringVar(&svgPath, "svg", "", "also write the price chart as SVG")
	cmd.Flags().IntVar(&svgWidth, "width", 80, "chart width")
}

// initialize loads the config file and builds the logger. Values from the
// file sit below flags and TOKENSIM_ env vars.
func initialize(cmd *cobra.Command, args []string) error {
	fileCfg = config.DefaultConfig()
	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		fileCfg = cfg
	}
	if fileCfg.Store.Backend != "" {
		viper.SetDefault("store", fileCfg.Store.Backend)
	}
	if fileCfg.Store.Path != "" {
		viper.SetDefault("data", fileCfg.Store.Path)
	}

	l, err := logging.New(viper.GetString("log-level"))
	if err != nil {
		return err
	}
	logger = l
	return nil
}
