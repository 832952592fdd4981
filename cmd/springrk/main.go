package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/springrk/internal/analysis"
	"github.com/san-kum/springrk/internal/automation"
	"github.com/san-kum/springrk/internal/config"
	"github.com/san-kum/springrk/internal/experiment"
	"github.com/san-kum/springrk/internal/export"
	"github.com/san-kum/springrk/internal/metrics"
	"github.com/san-kum/springrk/internal/optim"
	"github.com/san-kum/springrk/internal/spring"
	"github.com/san-kum/springrk/internal/storage"
	"github.com/san-kum/springrk/internal/viz"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	dataDir string
	verbose bool
	// spring parameters
	mass      float64
	tension   float64
	friction  float64
	precision float64
	from      float64
	velocity  float64
	target    float64
	maxDelta  float64
	// run parameters
	fps       int
	maxFrames int
	duration  float64
	// Config file
	configFile string
	// Preset name
	preset string
	// export-json output path
	outFile string
	// overwrite an existing config
	force bool
	// live view color theme
	theme string
	// overlay trajectories in compare
	showPlot bool
	svgFile  string
	// sweep parameters
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
	workers    int
	// tune grid
	tensions     []float64
	frictions    []float64
	tuneMetric   string
	maxOvershoot float64
	// scenario runs are saved unless disabled
	noSave bool
)

// main registers the springrk commands and flags and executes the root
// command, exiting with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:          "springrk",
		Short:        "spring animation lab",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".springrk", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "animate a spring on a virtual clock and save the run",
		Args:  cobra.NoArgs,
		RunE:  runSpring,
	}
	springFlags(runCmd)
	runCmd.Flags().IntVar(&maxFrames, "max-frames", config.DefaultMaxFrames, "frame budget before giving up")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "animate a spring live in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	springFlags(liveCmd)
	liveCmd.Flags().StringVar(&theme, "theme", viz.ThemeNames()[0],
		"color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list spring presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outFile, "out", "o", "", "write to file instead of stdout")

	compareCmd := &cobra.Command{
		Use:   "compare [method1] [method2] ...",
		Short: "compare integrators, harmonica and an easing curve on the same move",
		Long: "Steps the same spring move with each method at a fixed frame rate.\n" +
			"Methods: " + strings.Join(experiment.Methods(), ", ") + ". Defaults to all.",
		RunE: compareMethods,
	}
	compareCmd.Flags().StringVar(&preset, "preset", "", "use preset physics")
	compareCmd.Flags().Float64Var(&mass, "mass", spring.DefaultMass, "mass")
	compareCmd.Flags().Float64Var(&tension, "tension", spring.DefaultTension, "spring stiffness")
	compareCmd.Flags().Float64Var(&friction, "friction", 0, "damping (default critical)")
	compareCmd.Flags().Float64Var(&precision, "precision", spring.DefaultPrecision, "settling energy threshold")
	compareCmd.Flags().Float64Var(&from, "from", 0, "start value")
	compareCmd.Flags().Float64Var(&target, "target", config.DefaultTarget, "target value")
	compareCmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frame rate")
	compareCmd.Flags().Float64Var(&duration, "time", 2.0, "duration in seconds")
	compareCmd.Flags().BoolVar(&showPlot, "plot", false, "overlay the trajectories")
	compareCmd.Flags().StringVar(&svgFile, "svg", "", "also write the trajectories as an SVG chart")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id] [file]",
		Short: "write value and velocity of a saved run as an SVG chart",
		Args:  cobra.ExactArgs(2),
		RunE:  exportSVG,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage config files",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the default config",
		Args:  cobra.ExactArgs(1),
		RunE:  initConfig,
	}
	configInitCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd)

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "damping and frequency analysis of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "value against velocity plot of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run one spring per value of a parameter",
		Long:  "Parameters: " + strings.Join(config.Params, ", ") + ".",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	springFlags(sweepCmd)
	sweepCmd.Flags().IntVar(&maxFrames, "max-frames", config.DefaultMaxFrames, "frame budget per run")
	sweepCmd.Flags().StringVar(&sweepParam, "param", "tension", "parameter to sweep")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 50, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 500, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 10, "number of values")
	sweepCmd.Flags().IntVar(&workers, "workers", 0, "parallel runs (0 = one per CPU)")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run the steps of a scenario file and save each run",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	scenarioCmd.Flags().BoolVar(&noSave, "no-save", false, "do not save the runs")

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "grid search tension and friction for the lowest metric",
		Args:  cobra.NoArgs,
		RunE:  runTune,
	}
	springFlags(tuneCmd)
	tuneCmd.Flags().IntVar(&maxFrames, "max-frames", config.DefaultMaxFrames, "frame budget per run")
	tuneCmd.Flags().Float64SliceVar(&tensions, "tensions", []float64{100, 170, 250, 400}, "tension values")
	tuneCmd.Flags().Float64SliceVar(&frictions, "frictions", []float64{10, 20, 30, 40}, "friction values")
	tuneCmd.Flags().StringVar(&tuneMetric, "metric", "settle_time", "metric to minimize")
	tuneCmd.Flags().Float64Var(&maxOvershoot, "max-overshoot", 0.05, "reject runs overshooting more than this fraction")

	rootCmd.AddCommand(runCmd, liveCmd, presetsCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd, compareCmd, configCmd,
		exportSVGCmd, analyzeCmd, phaseCmd, sweepCmd, scenarioCmd, tuneCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func springFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset physics")
	cmd.Flags().Float64Var(&mass, "mass", spring.DefaultMass, "mass")
	cmd.Flags().Float64Var(&tension, "tension", spring.DefaultTension, "spring stiffness")
	cmd.Flags().Float64Var(&friction, "friction", 0, "damping (default critical)")
	cmd.Flags().Float64Var(&precision, "precision", spring.DefaultPrecision, "settling energy threshold")
	cmd.Flags().Float64Var(&from, "from", 0, "start value")
	cmd.Flags().Float64Var(&velocity, "velocity", 0, "start velocity")
	cmd.Flags().Float64Var(&target, "target", config.DefaultTarget, "target value")
	cmd.Flags().Float64Var(&maxDelta, "max-delta", 0, "largest step in seconds (0 = unlimited)")
	cmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frame rate")
}

// loadConfig starts from the config file, or the defaults, and applies the
// flags the user set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("preset") {
		cfg.Preset = preset
	}
	// physics flags override the preset and the config file
	if flags.Changed("mass") {
		cfg.Spring.Mass = &mass
	}
	if flags.Changed("tension") {
		cfg.Spring.Tension = &tension
	}
	if flags.Changed("friction") {
		cfg.Spring.Friction = &friction
	}
	if flags.Changed("precision") {
		cfg.Spring.Precision = precision
	}
	if flags.Changed("from") {
		cfg.Spring.InitialValue = from
	}
	if flags.Changed("velocity") {
		cfg.Spring.Velocity = velocity
	}
	if flags.Changed("target") {
		cfg.Spring.Target = target
	}
	if flags.Changed("max-delta") {
		cfg.Spring.MaxDelta = maxDelta
	}
	if flags.Changed("fps") {
		cfg.Run.FPS = fps
	}
	if flags.Lookup("max-frames") != nil && flags.Changed("max-frames") {
		cfg.Run.MaxFrames = maxFrames
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger() (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	return zap.NewDevelopment()
}

func runSpring(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log, err := newLogger()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("animating %.4g -> %.4g...\n", cfg.Spring.InitialValue, cfg.Spring.Target)
	start := time.Now()

	result, exp, runErr := automation.Execute(context.Background(), cfg, log)
	if runErr != nil && !errors.Is(runErr, experiment.ErrNotSettled) {
		return runErr
	}

	elapsed := time.Since(start)

	runID, err := st.Save(automation.Metadata(cfg, exp.Spring()), result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d\n", result.Frames)
	fmt.Printf("settled: %v\n", result.Settled)
	fmt.Println("\nmetrics:")
	for _, m := range metrics.Defaults() {
		fmt.Printf("  %s: %.6f\n", m.Name(), result.Metrics[m.Name()])
	}

	return runErr
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// the terminal belongs to the view, so debug logs go to a file
	log := zap.NewNop()
	if verbose {
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return err
		}
		zc := zap.NewDevelopmentConfig()
		zc.OutputPaths = []string{filepath.Join(dataDir, "live.log")}
		zc.ErrorOutputPaths = zc.OutputPaths
		if log, err = zc.Build(); err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()
	}

	m, err := viz.NewModel(viz.Options{
		Preset: cfg.Preset,
		Theme:  theme,
		Spring: cfg.Options(),
		From:   cfg.Spring.InitialValue,
		To:     cfg.Spring.Target,
		FPS:    cfg.Run.FPS,
		Logger: log,
	})
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tMASS\tTENSION\tFRICTION")

	for _, name := range spring.Presets() {
		p, _ := spring.LookupPreset(name)
		fr := fmt.Sprintf("%.2f (critical)", 2*math.Sqrt(p.Mass*p.Tension))
		if p.Friction != nil {
			fr = fmt.Sprintf("%.2f", *p.Friction)
		}
		fmt.Fprintf(w, "%s\t%.2f\t%.1f\t%s\n", name, p.Mass, p.Tension, fr)
	}

	return w.Flush()
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
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tFROM\tTARGET\tFRAMES\tSETTLED")

	for _, run := range runs {
		name := run.Preset
		if name == "" {
			name = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.4g\t%.4g\t%d\t%v\n",
			run.ID,
			name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.From,
			run.Target,
			run.Frames,
			run.Settled,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	samples, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	if samples.Len() == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("spring: m=%.2f k=%.1f c=%.2f\n", meta.Mass, meta.Tension, meta.Friction)
	fmt.Printf("samples: %d\n\n", samples.Len())

	series := []struct {
		caption string
		data    []float64
	}{
		{"value", samples.Values},
		{"velocity", samples.Velocities},
	}
	for _, s := range series {
		graph := asciigraph.Plot(s.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(s.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	samples, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}

	if samples.Len() == 0 {
		return fmt.Errorf("no data to export")
	}

	return storage.WriteCSV(os.Stdout, samples)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	samples, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	if outFile != "" {
		return storage.ExportJSON(outFile, meta, samples)
	}
	return storage.ExportJSONStdout(meta, samples)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	samples, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}

	svg := export.ChartSVG([]export.Series{
		{Name: "value", X: samples.Times, Y: samples.Values},
		{Name: "velocity", X: samples.Times, Y: samples.Velocities},
	}, 800, 400)
	if svg == "" {
		return fmt.Errorf("no data to export")
	}

	return os.WriteFile(args[1], []byte(svg), 0644)
}

func compareMethods(cmd *cobra.Command, args []string) error {
	methods := args
	if len(methods) == 0 {
		methods = experiment.Methods()
	}

	cc := experiment.CompareConfig{
		Mass:      mass,
		Tension:   tension,
		Precision: precision,
		From:      from,
		Target:    target,
		FPS:       fps,
		Duration:  duration,
	}
	if preset != "" {
		p, ok := spring.LookupPreset(preset)
		if !ok {
			return fmt.Errorf("%w: %s", spring.ErrPresetNotFound, preset)
		}
		if !cmd.Flags().Changed("mass") {
			cc.Mass = p.Mass
		}
		if !cmd.Flags().Changed("tension") {
			cc.Tension = p.Tension
		}
		if p.Friction != nil {
			cc.Friction = *p.Friction
		}
	}
	switch {
	case cmd.Flags().Changed("friction"):
		cc.Friction = friction
	case cc.Friction == 0:
		cc.Friction = 2 * math.Sqrt(cc.Mass*cc.Tension)
	}
	if cc.Mass <= 0 {
		return fmt.Errorf("mass must be positive, got %f", cc.Mass)
	}

	start := time.Now()
	trs, err := experiment.Compare(cc, methods)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("comparing %d methods (m=%.2f k=%.1f c=%.2f, %d fps, %.1fs) in %v\n\n",
		len(trs), cc.Mass, cc.Tension, cc.Friction, cc.FPS, cc.Duration, elapsed)
	fmt.Printf("%-12s  %-12s  %-12s  %-12s\n", "method", "final_error", "settle_s", "peak")
	fmt.Println(strings.Repeat("-", 54))

	for _, tr := range trs {
		settle := "-"
		if tr.Settled {
			settle = fmt.Sprintf("%.4f", tr.SettleTime)
		}
		fmt.Printf("%-12s  %12.2e  %12s  %12.4f\n", tr.Method, tr.FinalError, settle, tr.PeakValue)
	}

	if showPlot && len(trs) > 0 {
		data := make([][]float64, len(trs))
		legends := make([]string, len(trs))
		for i, tr := range trs {
			data[i] = tr.Values
			legends[i] = tr.Method
		}
		fmt.Println()
		fmt.Println(asciigraph.PlotMany(data,
			asciigraph.Height(14),
			asciigraph.Width(80),
			asciigraph.SeriesColors(seriesColors(len(trs))...),
			asciigraph.SeriesLegends(legends...),
			asciigraph.Caption("value"),
		))
	}

	if svgFile != "" {
		series := make([]export.Series, len(trs))
		for i, tr := range trs {
			series[i] = export.Series{Name: tr.Method, X: tr.Times, Y: tr.Values}
		}
		if err := os.WriteFile(svgFile, []byte(export.ChartSVG(series, 800, 400)), 0644); err != nil {
			return err
		}
		fmt.Printf("\nwrote %s\n", svgFile)
	}

	return nil
}

func seriesColors(n int) []asciigraph.AnsiColor {
	palette := []asciigraph.AnsiColor{
		asciigraph.Red,
		asciigraph.Green,
		asciigraph.Blue,
		asciigraph.Yellow,
		asciigraph.Magenta,
		asciigraph.Cyan,
	}
	colors := make([]asciigraph.AnsiColor, n)
	for i := range colors {
		colors[i] = palette[i%len(palette)]
	}
	return colors
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := args[0]
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.Save(path, config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	samples, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	if samples.Len() == 0 {
		return fmt.Errorf("no data")
	}

	ch := analysis.Characterize(meta.Mass, meta.Tension, meta.Friction)
	fmt.Printf("analysis: %s\n\n", meta.ID)
	fmt.Printf("regime: %s\n", ch.Regime)
	fmt.Printf("natural frequency: %.3f rad/s\n", ch.NaturalFrequency)
	fmt.Printf("damping ratio: %.3f\n", ch.DampingRatio)

	if ch.Regime != analysis.Underdamped {
		return nil
	}

	fmt.Printf("damped frequency: %.3f hz (period %.3f s)\n", ch.DampedFrequency, 1/ch.DampedFrequency)
	if hz := analysis.DominantFrequency(samples.Values, float64(meta.FPS)); hz > 0 {
		fmt.Printf("measured frequency: %.3f hz\n", hz)
	}
	if zeta, ok := analysis.LogDecrement(samples.Values, meta.Target); ok {
		fmt.Printf("measured damping ratio: %.3f\n", zeta)
	}

	ps := analysis.PowerSpectrum(samples.Values)
	if len(ps) > 8 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(ps[:len(ps)/4],
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("power spectrum (value)"),
		))
	}

	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	samples, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	if samples.Len() == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("phase space plot: %s\n", meta.ID)
	fmt.Printf("x-axis: value, y-axis: velocity\n\n")
	fmt.Print(analysis.NewPhasePortrait(samples.Values, samples.Velocities).ASCII(70, 20))
	fmt.Printf("\nLegend: . = early, o = middle, ● = late\n")

	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log, err := newLogger()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	start := time.Now()
	results, err := automation.RunSweep(context.Background(), &automation.ParameterSweep{
		Base:      cfg,
		ParamName: sweepParam,
		ParamMin:  sweepMin,
		ParamMax:  sweepMax,
		NumSteps:  sweepSteps,
		Workers:   workers,
	}, log)
	if err != nil {
		return err
	}

	fmt.Printf("swept %s over %d values in %v\n\n", sweepParam, len(results), time.Since(start))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tFRAMES\tSETTLED\tSETTLE_S\tOVERSHOOT\tPEAK_ENERGY\n", strings.ToUpper(sweepParam))
	for _, r := range results {
		settled := fmt.Sprintf("%v", r.Settled)
		if r.Diverged {
			settled = "diverged"
		}
		fmt.Fprintf(w, "%.4g\t%d\t%s\t%.4f\t%.4f\t%.4g\n",
			r.ParamValue,
			r.Frames,
			settled,
			r.Metrics["settle_time"],
			r.Metrics["overshoot"],
			r.Metrics["peak_energy"],
		)
	}

	return w.Flush()
}

func runScenario(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	log, err := newLogger()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	var st *storage.Store
	if !noSave {
		st = storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
	}

	fmt.Printf("scenario: %s (%d steps)\n", scenario.Name, len(scenario.Steps))
	results, err := automation.RunScenario(context.Background(), scenario, st, log)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tRUN\tFRAMES\tSETTLE_S")
	for _, r := range results {
		id := r.RunID
		if id == "" {
			id = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%.4f\n", r.Name, id, r.Result.Frames, r.Result.Metrics["settle_time"])
	}
	if ferr := w.Flush(); ferr != nil {
		return ferr
	}

	return err
}

func runTune(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log, err := newLogger()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	g := optim.NewGridSearch([]string{"tension", "friction"}, [][]float64{tensions, frictions})
	accept := func(r *experiment.Result) bool {
		return r.Metrics["overshoot"] <= maxOvershoot
	}

	best, err := g.Search(context.Background(), cfg, tuneMetric, accept, log)
	if err != nil {
		return err
	}

	fmt.Printf("tried %d combinations\n", best.Tried)
	fmt.Printf("best %s: %.4f\n", tuneMetric, best.Score)
	fmt.Printf("  tension: %.4g\n", best.Params["tension"])
	fmt.Printf("  friction: %.4g\n", best.Params["friction"])
	fmt.Printf("  overshoot: %.4f\n", best.Result.Metrics["overshoot"])

	return nil
}
