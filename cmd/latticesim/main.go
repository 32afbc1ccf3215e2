package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/latticesim/internal/analysis"
	"github.com/san-kum/latticesim/internal/automation"
	"github.com/san-kum/latticesim/internal/config"
	"github.com/san-kum/latticesim/internal/experiment"
	"github.com/san-kum/latticesim/internal/export"
	"github.com/san-kum/latticesim/internal/lattice"
	"github.com/san-kum/latticesim/internal/metrics"
	"github.com/san-kum/latticesim/internal/optim"
	"github.com/san-kum/latticesim/internal/storage"
	"github.com/san-kum/latticesim/internal/tui"
	"github.com/san-kum/latticesim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	runName    string

	rows, cols  int
	stiffness   float64
	dt          float64
	steps       int
	strategy    string
	updateOrder string
	precision   string
	backend     string
	workers     int
	seed        int64
	sigma       float64
	excitation  string
	probeRow    int
	probeCol    int
	probeAxis   int
	sampleEvery int

	watch     bool
	frameRate int
	progress  int

	svgPath   string
	themeName string
	lag       int

	benchSteps int
	sweepDts   []float64
	sweepTol   float64
	gridParams []string
	gridMetric string
	trials     int
	parallel   int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "latticesim",
		Short: "2-D mass-spring lattice simulator",
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunInteractive()
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".latticesim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation and save it",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addConfigFlags(runCmd)
	runCmd.Flags().StringVar(&runName, "name", "lattice", "run name prefix")
	runCmd.Flags().BoolVar(&watch, "watch", false, "draw the lattice in the terminal while running")
	runCmd.Flags().IntVar(&frameRate, "fps", 15, "frame rate for --watch")
	runCmd.Flags().IntVar(&progress, "progress", 0, "print a status line every N steps (0 = off)")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with the interactive live view",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return viz.Run(cfg)
		},
	}
	addConfigFlags(liveCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot energy and probe traces",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&svgPath, "svg", "", "also write the probe trace as SVG")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of the probe trace",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&lag, "lag", 0, "delay in samples for the phase portrait (0 = quarter period)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).ExportJSON(os.Stdout, args[0])
		},
	}

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [run_id]",
		Short: "draw the final frame of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  snapshotRun,
	}
	snapshotCmd.Flags().StringVar(&svgPath, "svg", "", "also write the frame as SVG")
	snapshotCmd.Flags().StringVar(&themeName, "theme", "",
		"draw a heatmap with this theme instead of the mesh ("+strings.Join(viz.ThemeNames(), ", ")+")")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark strategies, precisions and backends",
		Args:  cobra.NoArgs,
		RunE:  benchLattice,
	}
	addConfigFlags(benchCmd)
	benchCmd.Flags().IntVar(&benchSteps, "bench-steps", 200, "steps per measurement")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "find the largest stable time step",
		Args:  cobra.NoArgs,
		RunE:  sweepDt,
	}
	addConfigFlags(sweepCmd)
	sweepCmd.Flags().Float64SliceVar(&sweepDts, "dts", []float64{0.005, 0.01, 0.02, 0.05, 0.1, 0.2}, "candidate time steps")
	sweepCmd.Flags().Float64Var(&sweepTol, "tol", 0.05, "energy drift tolerance")

	searchCmd := &cobra.Command{
		Use:   "search",
		Short: "grid search parameters for the smallest metric",
		Args:  cobra.NoArgs,
		RunE:  gridSearch,
	}
	addConfigFlags(searchCmd)
	searchCmd.Flags().StringArrayVar(&gridParams, "param", nil, "parameter range as name=v1,v2 (dt, stiffness, sigma); repeatable")
	searchCmd.Flags().StringVar(&gridMetric, "metric", "energy_drift", "metric to minimize")
	_ = searchCmd.MarkFlagRequired("param")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run every step of a YAML scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "run an ensemble of seeds concurrently",
		Args:  cobra.NoArgs,
		RunE:  runMonteCarlo,
	}
	addConfigFlags(monteCarloCmd)
	monteCarloCmd.Flags().IntVar(&trials, "trials", 8, "number of seeds")
	monteCarloCmd.Flags().IntVar(&parallel, "parallel", 0, "concurrent runs (0 = unlimited)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tGRID\tK\tDT\tSTEPS\tLAYOUT\tEXCITATION")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%dx%d\t%g\t%g\t%d\t%s/%s/%s\t%s\n",
					name, p.Rows, p.Cols, p.Stiffness, p.Dt, p.Steps,
					p.Strategy, p.UpdateOrder, p.Precision, p.Excitation)
			}
			return w.Flush()
		},
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "preset picker and live view",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunInteractive()
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, analyzeCmd, exportJSONCmd, snapshotCmd,
		benchCmd, sweepCmd, searchCmd, scenarioCmd, monteCarloCmd, presetsCmd, tuiCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addConfigFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "start from a preset")
	f.IntVar(&rows, "rows", config.DefaultRows, "grid rows")
	f.IntVar(&cols, "cols", config.DefaultCols, "grid columns")
	f.Float64Var(&stiffness, "k", config.DefaultStiffness, "spring stiffness")
	f.Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	f.IntVar(&steps, "steps", config.DefaultSteps, "number of steps")
	f.StringVar(&strategy, "strategy", "rowmajor", "memory layout (rowmajor, morton)")
	f.StringVar(&updateOrder, "order", "pre", "position update order (pre, post)")
	f.StringVar(&precision, "precision", "float64", "float32 or float64")
	f.StringVar(&backend, "backend", "auto", "compute backend (auto, cpu, serial)")
	f.IntVar(&workers, "workers", 0, "cpu backend workers (0 = one per CPU)")
	f.Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	f.Float64Var(&sigma, "sigma", config.DefaultSigma, "excitation amplitude")
	f.StringVar(&excitation, "excitation", "random", "initial excitation (random, pulse, mode)")
	f.IntVar(&probeRow, "probe-row", 0, "probe cell row")
	f.IntVar(&probeCol, "probe-col", 0, "probe cell column")
	f.IntVar(&probeAxis, "probe-axis", 0, "probe axis (0 = x, 1 = y)")
	f.IntVar(&sampleEvery, "sample-every", config.DefaultSampleEvery, "steps between samples")
}

// loadConfig starts from the preset, then the config file, then applies
// the flags the user actually set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.Seed = seed
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

	flags := cmd.Flags()
	set := func(name string, apply func()) {
		if flags.Changed(name) {
			apply()
		}
	}
	set("rows", func() { cfg.Rows = rows })
	set("cols", func() { cfg.Cols = cols })
	set("k", func() { cfg.Stiffness = stiffness })
	set("dt", func() { cfg.Dt = dt })
	set("steps", func() { cfg.Steps = steps })
	set("strategy", func() { cfg.Strategy = strategy })
	set("order", func() { cfg.UpdateOrder = updateOrder })
	set("precision", func() { cfg.Precision = precision })
	set("backend", func() { cfg.Backend = backend })
	set("workers", func() { cfg.Workers = workers })
	set("seed", func() { cfg.Seed = seed })
	set("sigma", func() { cfg.Sigma = sigma })
	set("excitation", func() { cfg.Excitation = excitation })
	set("probe-row", func() { cfg.Probe.Row = probeRow })
	set("probe-col", func() { cfg.Probe.Col = probeCol })
	set("probe-axis", func() { cfg.Probe.Axis = probeAxis })
	set("sample-every", func() { cfg.SampleEvery = sampleEvery })

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	exp, err := experiment.New(cfg)
	if err != nil {
		return err
	}
	defer exp.Close()

	var live *tui.LiveRenderer
	if watch {
		live = tui.NewLiveRenderer(os.Stdout, frameRate)
		exp.AddObserver(live)
		live.Start()
	} else if progress > 0 {
		exp.AddObserver(&progressPrinter{every: progress, total: cfg.Steps})
	}

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("running %dx%d lattice (%s, %s/%s/%s)...\n", cfg.Rows, cfg.Cols,
		exp.Lattice().Backend().Name(), cfg.Strategy, cfg.UpdateOrder, cfg.Precision)
	start := time.Now()
	result, err := exp.Run(ctx)
	if live != nil {
		live.Stop()
	}
	if err != nil && result == nil {
		return err
	}
	elapsed := time.Since(start)
	if err != nil {
		fmt.Printf("interrupted after %d steps\n", result.StepsTaken)
	}

	runID, serr := st.Save(runName, cfg, result, exp.Probe().Trace())
	if serr != nil {
		return serr
	}

	cells := float64(cfg.Rows * cfg.Cols * result.StepsTaken)
	fmt.Printf("completed in %v (%.3g cell-steps/s)\n", elapsed, cells/elapsed.Seconds())
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Printf("energy drift: %.3e\n", result.EnergyDrift)
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6g\n", name, val)
	}
	for _, e := range result.Errors {
		fmt.Printf("error: %v\n", e)
	}
	return nil
}

// progressPrinter prints one line per sample that crosses a multiple of
// every steps.
type progressPrinter struct {
	every, total int
	next         int
}

func (p *progressPrinter) OnStep(f *lattice.Frame, t float64) {
	if f.Step < p.next {
		return
	}
	p.next = (f.Step/p.every + 1) * p.every
	fmt.Printf("  step %d/%d  t=%.4f  E=%.6g\n", f.Step, p.total, t, metrics.TotalEnergy(f))
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
	fmt.Fprintln(w, "ID\tTIME\tGRID\tDT\tSTEPS\tLAYOUT\tDRIFT")
	for _, run := range runs {
		c := run.Config
		fmt.Fprintf(w, "%s\t%s\t%dx%d\t%.4g\t%d\t%s/%s/%s\t%.2e\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			c.Rows, c.Cols,
			c.Dt,
			run.StepsTaken,
			c.Strategy, c.UpdateOrder, c.Precision,
			run.EnergyDrift,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	trace, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}
	if len(trace.Times) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("samples: %d\n\n", len(trace.Times))

	fmt.Println(asciigraph.Plot(trace.Energies,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("total energy"),
	))
	fmt.Println()

	p := meta.Config.Probe
	fmt.Println(asciigraph.Plot(trace.Probe,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("probe [%d,%d] axis %d", p.Row, p.Col, p.Axis)),
	))

	if svgPath != "" {
		svg := export.TraceToSVG(trace.Times, trace.Probe, 800, 300, "#00cccc")
		if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("\nwrote %s\n", svgPath)
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	trace, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}
	if len(trace.Times) < 4 {
		return analysis.ErrShortTrace
	}

	sampleDt := trace.Times[1] - trace.Times[0]
	freq, err := analysis.DominantFrequency(trace.Probe, sampleDt)
	if err != nil {
		return err
	}

	fmt.Printf("frequency analysis: %s\n\n", meta.ID)
	ps := analysis.PowerSpectrum(trace.Probe)
	fmt.Println(asciigraph.Plot(ps[:max(2, len(ps)/4)],
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (probe)"),
	))
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "dominant frequency\t%.4f Hz\n", freq)
	if freq > 0 {
		fmt.Fprintf(w, "period (spectrum)\t%.4f s\n", 1/freq)
	}
	if period := analysis.CrossingPeriod(trace.Probe, trace.Times); period > 0 {
		fmt.Fprintf(w, "period (crossings)\t%.4f s\n", period)
	}
	c := meta.Config
	lowest := analysis.NormalModeFrequency(c.Rows, c.Cols, c.Stiffness, 0, min(1, c.Cols-1))
	if c.Cols == 1 {
		lowest = analysis.NormalModeFrequency(c.Rows, c.Cols, c.Stiffness, min(1, c.Rows-1), 0)
	}
	fmt.Fprintf(w, "lowest normal mode\t%.4f Hz\n", lowest)
	if err := w.Flush(); err != nil {
		return err
	}

	d := lag
	if d <= 0 && freq > 0 {
		d = int(1/(4*freq*sampleDt) + 0.5)
	}
	if d > 0 && d < len(trace.Probe) {
		n := len(trace.Probe)
		portrait := analysis.NewPhasePortrait(trace.Probe[:n-d], trace.Probe[d:])
		fmt.Printf("\ndelay portrait (lag %d samples)\n", d)
		fmt.Println(analysis.PhasePortraitToASCII(portrait, 60, 20))
	}
	return nil
}

func snapshotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	frame, err := st.LoadFrame(args[0])
	if err != nil {
		return err
	}

	_, peak := viz.Magnitudes(frame)
	fmt.Printf("run: %s (%dx%d, peak |u| %.4g)\n\n", args[0], frame.Rows, frame.Cols, peak)

	if themeName != "" {
		fmt.Println(viz.Heatmap(frame, viz.GetTheme(themeName), 60, 20))
	} else {
		canvas := viz.NewCanvas(60, 20)
		gain := 0.0
		if peak > 0 {
			gain = 0.4 / peak
		}
		viz.DrawLattice(canvas, frame, gain)
		fmt.Println(canvas.String())
	}

	if svgPath != "" {
		if err := os.WriteFile(svgPath, []byte(export.FrameToSVG(frame, 20, 0)), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgPath)
	}
	return nil
}

func benchLattice(cmd *cobra.Command, args []string) error {
	base, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	base.Steps = benchSteps

	fmt.Printf("benchmarking %dx%d lattice, %d steps\n\n", base.Rows, base.Cols, benchSteps)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STRATEGY\tPRECISION\tBACKEND\tTIME\tCELL-STEPS/SEC")

	for _, strat := range []string{"rowmajor", "morton"} {
		for _, prec := range []string{"float64", "float32"} {
			for _, be := range []string{"serial", "cpu"} {
				cfg := base.Clone()
				cfg.Strategy, cfg.Precision, cfg.Backend = strat, prec, be
				if err := cfg.Validate(); err != nil {
					fmt.Fprintf(w, "%s\t%s\t%s\tskipped: %v\n", strat, prec, be, err)
					continue
				}
				lat, err := experiment.Build(cfg)
				if err != nil {
					return err
				}
				start := time.Now()
				for i := 0; i < cfg.Steps; i++ {
					lat.Step(cfg.Dt)
				}
				elapsed := time.Since(start)
				name := lat.Backend().Name()
				lat.Close()

				rate := float64(cfg.Rows*cfg.Cols*cfg.Steps) / elapsed.Seconds()
				fmt.Fprintf(w, "%s\t%s\t%s\t%v\t%.3g\n", strat, prec, name, elapsed, rate)
			}
		}
	}
	return w.Flush()
}

func sweepDt(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	points, best, err := optim.StabilitySweep(ctx, cfg, sweepDts, sweepTol)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DT\tDRIFT\tSTABLE")
	for _, p := range points {
		status := "yes"
		switch {
		case p.Failed:
			status = "diverged"
		case !p.Stable:
			status = "no"
		}
		fmt.Fprintf(w, "%.4g\t%.3e\t%s\n", p.Dt, p.Drift, status)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if best == 0 {
		fmt.Printf("\nno time step keeps drift under %g\n", sweepTol)
		return nil
	}
	fmt.Printf("\nlargest stable dt: %g\n", best)
	return nil
}

func gridSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	names, ranges, err := optim.ParseParams(gridParams)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	g := optim.NewGridSearch(names, ranges)
	best, val, err := g.Search(ctx, func(p map[string]float64) (*experiment.Experiment, error) {
		c, err := optim.Apply(cfg, p)
		if err != nil {
			return nil, err
		}
		return experiment.New(c)
	}, gridMetric)
	if err != nil {
		return err
	}
	if best == nil {
		fmt.Println("every combination diverged")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PARAM\tBEST")
	for _, name := range names {
		fmt.Fprintf(w, "%s\t%g\n", name, best[name])
	}
	fmt.Fprintf(w, "%s\t%.6g\n", gridMetric, val)
	return w.Flush()
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("scenario: %s\n", sc.Name)
	if sc.Description != "" {
		fmt.Println(sc.Description)
	}
	results, err := automation.RunScenario(ctx, sc, st, os.Stdout)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\nSTEP\tRUN ID\tSTEPS\tDRIFT")
	for _, r := range results {
		id := r.RunID
		if id == "" {
			id = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%.3e\n", r.Name, id, r.Result.StepsTaken, r.Result.EnergyDrift)
	}
	return w.Flush()
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("running %d seeds of a %dx%d lattice...\n", trials, cfg.Rows, cfg.Cols)
	start := time.Now()
	res, err := automation.RunMonteCarlo(ctx, cfg, trials, parallel)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n\n", time.Since(start))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "trials\t%d\n", res.Trials)
	fmt.Fprintf(w, "stable\t%d\n", res.Stable)
	fmt.Fprintf(w, "diverged\t%d\n", res.Diverged)
	fmt.Fprintf(w, "mean energy\t%.6g\n", res.MeanEnergy)
	fmt.Fprintf(w, "mean drift\t%.3e\n", res.MeanDrift)
	fmt.Fprintf(w, "max drift\t%.3e\n", res.MaxDrift)
	if err := w.Flush(); err != nil {
		return err
	}
	if len(res.FinalEnergy) > 1 {
		fmt.Println()
		fmt.Println(strings.TrimRight(asciigraph.Plot(res.FinalEnergy,
			asciigraph.Height(6),
			asciigraph.Width(60),
			asciigraph.Caption("final energy per seed"),
		), "\n"))
	}
	return nil
}
