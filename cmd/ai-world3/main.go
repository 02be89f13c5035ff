// Command ai-world3 runs the AI-World3 system-dynamics simulator: scenario
// runs, live watching, one-at-a-time sweeps and Latin Hypercube sensitivity
// analysis.
package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/xulfus/ai-world3/internal/scenario"
	"github.com/xulfus/ai-world3/internal/sensitivity"
	"github.com/xulfus/ai-world3/internal/sim"
	"github.com/xulfus/ai-world3/internal/storage"
	"github.com/xulfus/ai-world3/internal/viz"
	"github.com/xulfus/ai-world3/internal/world"
)

var (
	dataDir    string
	horizon    float64
	dt         float64
	overrides  []string
	configFile string
	saveRun    bool
	plotColumn string

	sweepParam  string
	sweepValues []float64
	sweepOut    string

	lhsSamples int
	lhsSeed    int64
	lhsWorkers int
	lhsMetric  string
	lhsOut     string

	frameRate int
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "ai-world3",
		Short:         "AI automation vs social stability simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".ai-world3", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "run one scenario",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScenario,
	}
	runCmd.Flags().Float64Var(&horizon, "time", 100.0, "simulation horizon (years)")
	runCmd.Flags().Float64Var(&dt, "dt", 0.1, "timestep")
	runCmd.Flags().StringArrayVar(&overrides, "set", nil, "parameter override, name=value (repeatable)")
	runCmd.Flags().StringVar(&configFile, "config", "", "run configuration file (yaml)")
	runCmd.Flags().BoolVar(&saveRun, "save", false, "persist the trajectory to the data directory")
	runCmd.Flags().StringVar(&plotColumn, "plot", "", "plot one column after the run")

	watchCmd := &cobra.Command{
		Use:   "watch [scenario]",
		Short: "run one scenario with a live terminal view",
		Args:  cobra.MaximumNArgs(1),
		RunE:  watchScenario,
	}
	watchCmd.Flags().Float64Var(&horizon, "time", 100.0, "simulation horizon (years)")
	watchCmd.Flags().Float64Var(&dt, "dt", 0.1, "timestep")
	watchCmd.Flags().StringArrayVar(&overrides, "set", nil, "parameter override, name=value (repeatable)")
	watchCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	scenariosCmd := &cobra.Command{
		Use:   "scenarios",
		Short: "list scenario presets and their overrides",
		RunE:  listScenarios,
	}

	paramsCmd := &cobra.Command{
		Use:   "params",
		Short: "print the default parameter table",
		RunE:  printParams,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [scenario]",
		Short: "one-at-a-time parameter sweeps",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().Float64Var(&horizon, "time", 100.0, "simulation horizon (years)")
	sweepCmd.Flags().Float64Var(&dt, "dt", 0.5, "timestep")
	sweepCmd.Flags().StringVar(&sweepParam, "param", "", "sweep a single parameter (default: full grid)")
	sweepCmd.Flags().Float64SliceVar(&sweepValues, "values", nil, "grid values for --param")
	sweepCmd.Flags().StringVar(&sweepOut, "output", "", "write results to CSV")

	lhsCmd := &cobra.Command{
		Use:   "lhs [scenario]",
		Short: "Latin Hypercube sensitivity analysis",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLHS,
	}
	lhsCmd.Flags().Float64Var(&horizon, "time", 100.0, "simulation horizon (years)")
	lhsCmd.Flags().Float64Var(&dt, "dt", 0.5, "timestep")
	lhsCmd.Flags().IntVar(&lhsSamples, "samples", 50, "number of samples")
	lhsCmd.Flags().Int64Var(&lhsSeed, "seed", 42, "random seed")
	lhsCmd.Flags().IntVar(&lhsWorkers, "workers", 0, "parallel workers (0 = one per CPU)")
	lhsCmd.Flags().StringVar(&lhsMetric, "metric", "final_stability", "metric for the correlation table")
	lhsCmd.Flags().StringVar(&lhsOut, "output", "", "write samples to CSV")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id] [column]",
		Short: "plot a column of a stored run",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id] [path]",
		Short: "export stored run metadata to JSON",
		Args:  cobra.ExactArgs(2),
		RunE:  exportRun,
	}

	rootCmd.AddCommand(runCmd, watchCmd, scenariosCmd, paramsCmd, sweepCmd, lhsCmd, listCmd, plotCmd, exportCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// resolveParams merges scenario, config file and --set flags into one
// validated parameter set. Explicit flags win over the config file.
func resolveParams(cmd *cobra.Command, args []string) (string, world.Params, sim.Config, error) {
	cfg := scenario.DefaultRunConfig()
	if configFile != "" {
		loaded, err := scenario.Load(configFile)
		if err != nil {
			return "", world.Params{}, sim.Config{}, err
		}
		cfg = loaded
	}
	if len(args) > 0 {
		cfg.Scenario = args[0]
	}
	if cfg.Overrides == nil {
		cfg.Overrides = make(map[string]float64)
	}
	for _, kv := range overrides {
		name, value, err := parseOverride(kv)
		if err != nil {
			return "", world.Params{}, sim.Config{}, err
		}
		cfg.Overrides[name] = value
	}
	if configFile == "" || cmd.Flags().Changed("time") {
		cfg.Horizon = horizon
	}
	if configFile == "" || cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}

	p, err := cfg.Params()
	if err != nil {
		return "", world.Params{}, sim.Config{}, err
	}
	return cfg.Scenario, p, sim.Config{Horizon: cfg.Horizon, Dt: cfg.Dt}, nil
}

func parseOverride(kv string) (string, float64, error) {
	name, raw, ok := strings.Cut(kv, "=")
	if !ok {
		return "", 0, fmt.Errorf("bad override %q, want name=value", kv)
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return "", 0, fmt.Errorf("bad override %q: %w", kv, err)
	}
	return strings.TrimSpace(name), value, nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	name, p, cfg, err := resolveParams(cmd, args)
	if err != nil {
		return err
	}

	tr, err := sim.Run(p, cfg)
	if err != nil {
		return err
	}

	fmt.Println(viz.RenderSummary(name, sensitivity.Summarize(tr)))

	if plotColumn != "" {
		series, err := tr.Series(plotColumn)
		if err != nil {
			return err
		}
		fmt.Println(viz.Plot(series, plotColumn, 70, 12))
	}

	if saveRun {
		store := storage.New(dataDir)
		if err := store.Init(); err != nil {
			return err
		}
		runID, err := store.Save(name, cfg, tr)
		if err != nil {
			return err
		}
		fmt.Printf("saved run: %s\n", runID)
	}
	return nil
}

func watchScenario(cmd *cobra.Command, args []string) error {
	name, p, cfg, err := resolveParams(cmd, args)
	if err != nil {
		return err
	}
	model, err := viz.NewWatch(name, p, cfg, frameRate)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(model).Run()
	return err
}

func listScenarios(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, name := range scenario.List() {
		ov, err := scenario.Presets(scenario.Name(name))
		if err != nil {
			return err
		}
		keys := make([]string, 0, len(ov))
		for k := range ov {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s=%g", k, ov[k]))
		}
		fmt.Fprintf(w, "%s\t%s\n", name, strings.Join(parts, " "))
	}
	return w.Flush()
}

func printParams(cmd *cobra.Command, args []string) error {
	p := world.DefaultParams()
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, name := range p.Names() {
		v, err := p.Value(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%g\n", name, v)
	}
	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	name, p, cfg, err := resolveParams(cmd, args)
	if err != nil {
		return err
	}

	var rows []sensitivity.OATResult
	if sweepParam != "" {
		if len(sweepValues) == 0 {
			return fmt.Errorf("--param requires --values")
		}
		rows, err = sensitivity.OATSweep(p, sweepParam, sweepValues, cfg)
	} else {
		rows, err = sensitivity.MultiOAT(p, sensitivity.DefaultOATGrids(), cfg)
	}
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "param\tvalue\tfinal_stability\tmax_unemployment_rate\tfinal_environment\tfinal_resources")
	for _, row := range rows {
		fmt.Fprintf(w, "%s\t%g\t%.4f\t%.4f\t%.4f\t%.1f\n",
			row.Param, row.Value,
			row.Summary.FinalStability, row.Summary.MaxUnemployment,
			row.Summary.FinalEnvironment, row.Summary.FinalResources)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if sweepOut != "" {
		if err := storage.WriteSweepCSV(sweepOut, rows); err != nil {
			return err
		}
		fmt.Printf("wrote %s (%d rows, scenario %s)\n", sweepOut, len(rows), name)
	}
	return nil
}

func runLHS(cmd *cobra.Command, args []string) error {
	name, p, cfg, err := resolveParams(cmd, args)
	if err != nil {
		return err
	}

	ranges := sensitivity.DefaultLHSRanges()
	samples, err := sensitivity.LHS(p, ranges, sensitivity.LHSConfig{
		Samples: lhsSamples,
		Seed:    lhsSeed,
		Workers: lhsWorkers,
	}, cfg)
	if err != nil {
		return err
	}

	params := make([]string, len(ranges))
	for i, r := range ranges {
		params[i] = r.Name
	}

	cors, err := sensitivity.Correlations(samples, params, lhsMetric)
	if err != nil {
		return err
	}
	fmt.Println(viz.RenderCorrelations(lhsMetric, cors))

	if lhsOut != "" {
		if err := storage.WriteSamplesCSV(lhsOut, samples, params); err != nil {
			return err
		}
		fmt.Printf("wrote %s (%d samples, scenario %s, seed %d)\n", lhsOut, len(samples), name, lhsSeed)
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no stored runs")
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "id\tscenario\thorizon\tdt\tfinal_stability\tfinal_environment")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%g\t%g\t%.4f\t%.4f\n",
			run.ID, run.Scenario, run.Horizon, run.Dt,
			run.Summary.FinalStability, run.Summary.FinalEnvironment)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	column := "stability"
	if len(args) > 1 {
		column = args[1]
	}

	_, header, rows, err := storage.New(dataDir).Load(args[0])
	if err != nil {
		return err
	}

	idx := -1
	for i, name := range header {
		if name == column {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("unknown column: %q", column)
	}

	series := make([]float64, len(rows))
	for i, row := range rows {
		series[i] = row[idx]
	}
	fmt.Println(viz.Plot(series, column, 70, 12))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	if err := storage.New(dataDir).Export(args[0], args[1]); err != nil {
		return err
	}
	fmt.Printf("exported %s -> %s\n", args[0], args[1])
	return nil
}
