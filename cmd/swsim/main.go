package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/swsim/internal/analysis"
	"github.com/san-kum/swsim/internal/automation"
	"github.com/san-kum/swsim/internal/config"
	"github.com/san-kum/swsim/internal/export"
	"github.com/san-kum/swsim/internal/metrics"
	"github.com/san-kum/swsim/internal/ocean"
	"github.com/san-kum/swsim/internal/optim"
	"github.com/san-kum/swsim/internal/sim"
	"github.com/san-kum/swsim/internal/storage"
	"github.com/san-kum/swsim/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	verbose    bool

	rows, cols    int
	dt            float64
	bursts        int
	stepsPerBurst int
	drag          float64
	rotation      string
	wind          string
	perturbation  string
	wrap          bool
	interpolate   bool
	palette       string

	gifPath   string
	svgPath   string
	dumpSteps int

	searchRanges []string
	searchMetric string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "swsim",
		Short:        "shallow-water ocean grid simulator",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".swsim", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run bursts headless and save the run log",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addModelFlags(runCmd)
	runCmd.Flags().StringVar(&gifPath, "gif", "", "write an animated GIF of H to this path")
	runCmd.Flags().StringVar(&svgPath, "svg", "", "write the final height and flow field as SVG")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with the live terminal viewer",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addModelFlags(liveCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id] [metric]",
		Short: "plot a metric series",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&svgPath, "svg", "", "also write the series as SVG")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "dominant oscillation period of each metric",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "print a run's metadata and series as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).ExportJSON(os.Stdout, args[0])
		},
	}

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted list of simulations from YAML",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	searchCmd := &cobra.Command{
		Use:   "search",
		Short: "grid search physical parameters for the smallest final metric",
		Args:  cobra.NoArgs,
		RunE:  searchParams,
	}
	addModelFlags(searchCmd)
	searchCmd.Flags().StringArrayVar(&searchRanges, "param", nil, "parameter range, e.g. drag=0,1e-6,1e-5 (repeatable)")
	searchCmd.Flags().StringVar(&searchMetric, "metric", "kinetic_energy", "metric to minimise")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "print a run's metric series as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tGRID\tROTATION\tWIND\tPERTURB\tWRAP")
			for _, name := range config.ListPresets() {
				c := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%dx%d\t%s\t%s\t%s\t%v\n", name, c.Grid.Rows, c.Grid.Cols,
					c.Schemes.Rotation, c.Schemes.Wind, c.Schemes.Perturbation, c.Schemes.HorizontalWrap)
			}
			return w.Flush()
		},
	}

	dumpCmd := &cobra.Command{
		Use:   "dump",
		Short: "advance a few steps and print every array",
		Args:  cobra.NoArgs,
		RunE:  dumpState,
	}
	addModelFlags(dumpCmd)
	dumpCmd.Flags().IntVarP(&dumpSteps, "advance", "n", 1, "steps to advance before dumping")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "steps per second across grid sizes",
		Args:  cobra.NoArgs,
		RunE:  benchGrid,
	}

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "run simple and interpolated rotation side by side",
		Args:  cobra.NoArgs,
		RunE:  compareRotation,
	}
	addModelFlags(compareCmd)

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, analyzeCmd, exportCSVCmd, exportJSONCmd, presetsCmd, dumpCmd, benchCmd, compareCmd, scenarioCmd, searchCmd)
	return rootCmd
}

func addModelFlags(cmd *cobra.Command) {
	d := config.DefaultConfig()
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "use preset configuration")
	f.IntVar(&rows, "rows", d.Grid.Rows, "grid rows")
	f.IntVar(&cols, "cols", d.Grid.Cols, "grid columns")
	f.Float64Var(&dt, "dt", d.Time.Dt, "timestep in seconds")
	f.IntVar(&bursts, "bursts", d.Time.Bursts, "number of bursts")
	f.IntVar(&stepsPerBurst, "steps", d.Time.StepsPerBurst, "steps per burst")
	f.Float64Var(&drag, "drag", d.Physics.Drag, "linear drag coefficient")
	f.StringVar(&rotation, "rotation", d.Schemes.Rotation, "rotation scheme (none, withlatitude, plusminus, uniform)")
	f.StringVar(&wind, "wind", d.Schemes.Wind, "wind scheme (calm, curled, uniform)")
	f.StringVar(&perturbation, "perturb", d.Schemes.Perturbation, "initial perturbation (none, tower, nsgradient, ewgradient)")
	f.BoolVar(&wrap, "wrap", d.Schemes.HorizontalWrap, "periodic east-west boundary")
	f.BoolVar(&interpolate, "interpolate", d.Schemes.InterpolateRotation, "interpolated rotation scheme")
	f.StringVar(&palette, "palette", d.Render.Palette, "colour palette")
}

// resolveConfig layers preset, then config file, then explicitly set flags.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	f := cmd.Flags()
	if f.Changed("rows") {
		cfg.Grid.Rows = rows
	}
	if f.Changed("cols") {
		cfg.Grid.Cols = cols
	}
	if f.Changed("dt") {
		cfg.Time.Dt = dt
	}
	if f.Changed("bursts") {
		cfg.Time.Bursts = bursts
	}
	if f.Changed("steps") {
		cfg.Time.StepsPerBurst = stepsPerBurst
	}
	if f.Changed("drag") {
		cfg.Physics.Drag = drag
	}
	if f.Changed("rotation") {
		cfg.Schemes.Rotation = rotation
	}
	if f.Changed("wind") {
		cfg.Schemes.Wind = wind
	}
	if f.Changed("perturb") {
		cfg.Schemes.Perturbation = perturbation
	}
	if f.Changed("wrap") {
		cfg.Schemes.HorizontalWrap = wrap
	}
	if f.Changed("interpolate") {
		cfg.Schemes.InterpolateRotation = interpolate
	}
	if f.Changed("palette") {
		cfg.Render.Palette = palette
	}
	return cfg, nil
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	engine, err := ocean.New(cfg.Params())
	if err != nil {
		return err
	}
	runner := sim.New(engine).WithLogger(newLogger())
	for _, m := range metrics.Defaults() {
		runner.AddMetric(m)
	}
	var rec *viz.Recorder
	if gifPath != "" {
		rec = viz.NewRecorder(viz.NewPalette(cfg.Render.Palette, cfg.Render.ColorLimit), 8, 5)
		runner.AddObserver(rec)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %dx%d ocean for %d bursts of %d steps...\n",
		cfg.Grid.Rows, cfg.Grid.Cols, cfg.Time.Bursts, cfg.Time.StepsPerBurst)
	start := time.Now()

	result, err := runner.Run(ctx, cfg.RunConfig())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(preset, cfg, elapsed, result)
	if err != nil {
		return err
	}

	if rec != nil {
		f, err := os.Create(gifPath)
		if err != nil {
			return err
		}
		if err := rec.Encode(f); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Printf("gif: %s (%d frames)\n", gifPath, rec.Frames())
	}
	if svgPath != "" {
		p := viz.NewPalette(cfg.Render.Palette, cfg.Render.ColorLimit)
		svg := export.SnapshotToSVG(result.Final, p, cfg.Render.ArrowScale, 24)
		if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("svg: %s\n", svgPath)
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d (%s)\n", result.Steps, viz.Days(result.Final.Time))
	fmt.Println("\nmetrics:")
	for _, name := range sortedKeys(result.Metrics) {
		fmt.Printf("  %s: %.6g\n", name, result.Metrics[name])
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	name := preset
	if name == "" {
		name = fmt.Sprintf("%dx%d ocean", cfg.Grid.Rows, cfg.Grid.Cols)
	}
	heat := viz.NewHeatMap(viz.NewPalette(cfg.Render.Palette, cfg.Render.ColorLimit), cfg.Render.ArrowScale)
	m, err := viz.NewModel(name, cfg.Params(), cfg.Time.StepsPerBurst, heat)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tGRID\tTIME\tSTEPS\tMODEL TIME\tROTATION\tWIND")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%dx%d\t%s\t%d\t%s\t%s\t%s\n",
			run.ID,
			run.Config.Grid.Rows, run.Config.Grid.Cols,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Steps,
			viz.Days(run.ModelTime),
			run.Config.Schemes.Rotation,
			run.Config.Schemes.Wind,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	metric := "kinetic_energy"
	if len(args) > 1 {
		metric = args[1]
	}

	st := storage.New(dataDir)
	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	data, ok := series.Values[metric]
	if !ok {
		return fmt.Errorf("unknown metric %q (available: %v)", metric, series.Names)
	}
	if len(data) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", runID)
	fmt.Printf("samples: %d\n\n", len(data))
	fmt.Println(asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(metric+" vs burst"),
	))
	if svgPath != "" {
		svg := export.SeriesToSVG(series.Times, data, 800, 300, "#00ff88")
		if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
			return err
		}
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	if len(series.Times) < 2 {
		return fmt.Errorf("run %s has too few samples", runID)
	}
	interval := series.Times[1] - series.Times[0]

	fmt.Printf("run: %s\n", runID)
	fmt.Printf("samples: %d every %gs\n\n", len(series.Times), interval)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tFINAL\tPERIOD")
	for _, name := range series.Names {
		data := series.Values[name]
		period, err := analysis.DominantPeriod(data, interval)
		if err != nil {
			return err
		}
		p := "-"
		if period > 0 {
			p = viz.Days(period)
		}
		fmt.Fprintf(w, "%s\t%.6g\t%s\n", name, data[len(data)-1], p)
	}
	return w.Flush()
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	result := &sim.Result{Times: series.Times, Series: series.Values}
	return storage.WriteSeriesCSV(os.Stdout, result)
}

func dumpState(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	engine, err := ocean.New(cfg.Params())
	if err != nil {
		return err
	}
	engine.Advance(dumpSteps)
	return viz.Dump(os.Stdout, engine)
}

func benchGrid(cmd *cobra.Command, args []string) error {
	sizes := []int{10, 20, 50, 100}
	const steps = 1000

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GRID\tROTATION\tSTEPS\tTIME\tSTEPS/SEC")
	for _, n := range sizes {
		for _, interp := range []bool{false, true} {
			p := ocean.DefaultParams()
			p.Rows, p.Cols = n, n
			p.InterpolateRotation = interp
			engine, err := ocean.New(p)
			if err != nil {
				return err
			}

			start := time.Now()
			engine.Advance(steps)
			elapsed := time.Since(start)

			scheme := "simple"
			if interp {
				scheme = "interpolated"
			}
			fmt.Fprintf(w, "%dx%d\t%s\t%d\t%v\t%.0f\n",
				n, n, scheme, steps, elapsed, steps/elapsed.Seconds())
		}
	}
	return w.Flush()
}

func compareRotation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	simple, interp := cfg.Params(), cfg.Params()
	simple.InterpolateRotation, interp.InterpolateRotation = false, true

	sweep := sim.NewSweep([]ocean.Params{simple, interp}, cfg.RunConfig(), metrics.Defaults)
	results, err := sweep.Run(cmd.Context())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tSIMPLE\tINTERPOLATED")
	for _, name := range sortedKeys(results[0].Metrics) {
		fmt.Fprintf(w, "%s\t%.6g\t%.6g\n", name, results[0].Metrics[name], results[1].Metrics[name])
	}
	return w.Flush()
}

func runScenario(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("scenario %s: %d steps\n", scenario.Name, len(scenario.Steps))
	ids, err := automation.RunScenario(cmd.Context(), scenario, st, newLogger())
	for i, id := range ids {
		fmt.Printf("  %d: %s\n", i+1, id)
	}
	return err
}

func searchParams(cmd *cobra.Command, args []string) error {
	if len(searchRanges) == 0 {
		return fmt.Errorf("at least one --param is required")
	}
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(searchRanges))
	ranges := make([][]float64, 0, len(searchRanges))
	for _, r := range searchRanges {
		name, vals, err := optim.ParseRange(r)
		if err != nil {
			return err
		}
		names = append(names, name)
		ranges = append(ranges, vals)
	}
	search, err := optim.NewGridSearch(names, ranges)
	if err != nil {
		return err
	}

	best, val, err := search.Search(cmd.Context(), cfg.Params(), cfg.RunConfig(), searchMetric)
	if err != nil {
		return err
	}
	if best == nil {
		return fmt.Errorf("every run diverged")
	}

	fmt.Printf("best %s: %.6g\n", searchMetric, val)
	for _, name := range names {
		fmt.Printf("  %s = %g\n", name, best[name])
	}
	return nil
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
