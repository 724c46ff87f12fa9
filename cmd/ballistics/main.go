package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/ballistics/internal/config"
	"github.com/san-kum/ballistics/internal/optim"
	"github.com/san-kum/ballistics/internal/report"
	"github.com/san-kum/ballistics/internal/sim"
	"github.com/san-kum/ballistics/internal/telemetry"
	"github.com/san-kum/ballistics/internal/tui"
)

var (
	configFile     string
	preset         string
	angleDeg       float64
	azimuthDeg     float64
	targetHeight   float64
	targetDistance float64
	dimension      int
	t1             float64
	samples        int
	tolerance      float64
	integrator     string
	rangeMethod    string
	workers        int
	envOverrides   []string
	format         string
	plot           bool
	showMetrics    bool
	logLevel       string
	logJSON        bool
	trajectoryDir  string
	sweepFrom      float64
	sweepTo        float64
	sweepCount     int
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "ballistics",
		Short:         "projectile trajectories under gravity and drag",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.Float64Var(&angleDeg, "angle", config.DefaultAngleDeg, "launch angle in degrees")
	pf.Float64Var(&azimuthDeg, "azimuth", 0, "heading in degrees (3d)")
	pf.Float64Var(&targetHeight, "target-height", config.DefaultTargetHeight, "target height in meters")
	pf.Float64Var(&targetDistance, "target-distance", config.DefaultTargetDistance, "target distance in meters")
	pf.IntVar(&dimension, "dim", config.DefaultDimension, "spatial dimension (2 or 3)")
	pf.Float64Var(&t1, "t1", 20, "end of the time span in seconds")
	pf.IntVar(&samples, "samples", 1000, "trajectory samples")
	pf.Float64Var(&tolerance, "tolerance", 1e-6, "relative error tolerance")
	pf.StringVar(&integrator, "integrator", "rk45", "integrator (rk45, rk4, euler)")
	pf.StringVar(&rangeMethod, "range-method", "time_of_flight", "closed-form range (time_of_flight, level_ground)")
	pf.IntVar(&workers, "workers", 0, "parallel workers (0 = GOMAXPROCS)")
	pf.StringArrayVar(&envOverrides, "env", nil, "environment override key=value (gravity, air_density, drag_coefficient, cross_section_area)")
	pf.StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	pf.BoolVar(&logJSON, "log-json", false, "log as json")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "simulate every projectile at one launch angle",
		Args:  cobra.NoArgs,
		RunE:  runBatch,
	}
	runCmd.Flags().StringVar(&format, "format", "table", "output format (table, csv, json)")
	runCmd.Flags().BoolVar(&plot, "plot", false, "plot trajectories")
	runCmd.Flags().BoolVar(&showMetrics, "metrics", false, "print simulation counters")
	runCmd.Flags().StringVar(&trajectoryDir, "trajectories", "", "write sampled trajectories as csv into this directory")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "simulate every projectile over a range of launch angles",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", -180, "first angle in degrees")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 180, "last angle in degrees")
	sweepCmd.Flags().IntVar(&sweepCount, "count", 100, "number of angles")
	sweepCmd.Flags().StringVar(&format, "format", "table", "output format (table, csv, json)")
	sweepCmd.Flags().BoolVar(&plot, "plot", false, "plot range over angle")
	sweepCmd.Flags().BoolVar(&showMetrics, "metrics", false, "print simulation counters")

	formulasCmd := &cobra.Command{
		Use:   "formulas",
		Short: "closed-form vacuum metrics",
		Args:  cobra.NoArgs,
		RunE:  printFormulas,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
		},
	}

	configCmd := &cobra.Command{
		Use:   "config [path]",
		Short: "write the effective configuration as yaml",
		Args:  cobra.ExactArgs(1),
		RunE:  saveConfig,
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive angle and target explorer",
		Args:  cobra.NoArgs,
		RunE:  runTUI,
	}

	rootCmd.AddCommand(runCmd, sweepCmd, formulasCmd, presetsCmd, configCmd, tuiCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// loadConfig resolves preset, file and flag overrides, in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %s)", preset, strings.Join(config.ListPresets(), ", "))
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("angle") {
		cfg.AngleDeg = angleDeg
	}
	if flags.Changed("azimuth") {
		cfg.AzimuthDeg = azimuthDeg
	}
	if flags.Changed("target-height") {
		cfg.Target.Height = targetHeight
	}
	if flags.Changed("target-distance") {
		cfg.Target.Distance = targetDistance
	}
	if flags.Changed("dim") {
		cfg.Dimension = dimension
	}
	if flags.Changed("t1") {
		cfg.Solver.T1 = t1
	}
	if flags.Changed("samples") {
		cfg.Solver.Samples = samples
	}
	if flags.Changed("tolerance") {
		cfg.Solver.Tolerance = tolerance
	}
	if flags.Changed("integrator") {
		cfg.Solver.Method = integrator
	}
	if flags.Changed("range-method") {
		cfg.RangeMethod = rangeMethod
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("from") {
		cfg.Sweep.FromDeg = sweepFrom
	}
	if flags.Changed("to") {
		cfg.Sweep.ToDeg = sweepTo
	}
	if flags.Changed("count") {
		cfg.Sweep.Count = sweepCount
	}

	for _, kv := range envOverrides {
		key, val, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, fmt.Errorf("bad --env %q: want key=value", kv)
		}
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return nil, fmt.Errorf("bad --env %q: %w", kv, err)
		}
		if err := cfg.Environment.SetParam(key, f); err != nil {
			return nil, err
		}
	}

	return cfg, cfg.Validate()
}

func setup(cmd *cobra.Command) (*config.Config, *sim.Runner, *telemetry.Registry, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	logger, err := newLogger(os.Stderr, logLevel, logJSON)
	if err != nil {
		return nil, nil, nil, err
	}
	opts, err := cfg.Options()
	if err != nil {
		return nil, nil, nil, err
	}
	reg := telemetry.NewRegistry()
	return cfg, sim.NewRunner(opts, logger, reg), reg, nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	out, err := report.ParseFormat(format)
	if err != nil {
		return err
	}
	cfg, runner, reg, err := setup(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := runner.Run(ctx, cfg.Projectiles, cfg.Angle(), cfg.Target, cfg.Environment)
	if err != nil {
		return err
	}

	if err := report.Write(os.Stdout, out, results, cfg.Target); err != nil {
		return err
	}
	if plot && out == report.FormatTable {
		axis := runner.Options().Dim.VerticalAxis()
		fmt.Println()
		fmt.Println(report.HeightPlots(results, axis, 80, 15))
		for _, res := range results {
			if !res.OK() {
				continue
			}
			fmt.Println(report.Subtle.Render(res.Projectile.Name + ": height over range"))
			fmt.Print(report.PathPlot(res, axis, 80, 12, cfg.Target.Height))
		}
	}
	if trajectoryDir != "" {
		if err := writeTrajectories(trajectoryDir, results); err != nil {
			return err
		}
	}
	return printTelemetry(reg)
}

func runSweep(cmd *cobra.Command, args []string) error {
	out, err := report.ParseFormat(format)
	if err != nil {
		return err
	}
	cfg, runner, reg, err := setup(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	angles := cfg.Angles()
	results, err := runner.Sweep(ctx, cfg.Projectiles, angles, cfg.Target, cfg.Environment)
	if err != nil {
		return err
	}

	if err := report.Write(os.Stdout, out, results, cfg.Target); err != nil {
		return err
	}
	if out == report.FormatTable {
		fmt.Println()
		for _, best := range optim.Search(results, len(angles), optim.ObservedRange) {
			fmt.Printf("%s %s range %s m at %s°\n", report.Subtle.Render("best"),
				best.Projectile.Name, report.Metric(best.Score), report.Metric(sim.Degrees(best.Angle)))
		}
		if plot {
			fmt.Println()
			fmt.Println(report.SweepPlot(results, len(angles), 80, 15))
		}
	}
	return printTelemetry(reg)
}

func printFormulas(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	fmt.Println(report.FormulaTable(cfg.Projectiles, cfg.Angle(), cfg.Environment.Gravity))
	return nil
}

func saveConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", args[0])
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, runner, _, err := setup(cmd)
	if err != nil {
		return err
	}
	return tui.RunInteractive(runner, cfg.Projectiles, cfg.AngleDeg, cfg.Target, cfg.Environment)
}

func writeTrajectories(dir string, results []sim.Result) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	var errs []error
	for _, res := range results {
		if !res.OK() {
			continue
		}
		path := filepath.Join(dir, fmt.Sprintf("%02d_%s.csv", res.Index, slug(res.Projectile.Name)))
		f, err := os.Create(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := report.WriteTrajectoryCSV(f, res.Trajectory); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
		}
		if err := f.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func printTelemetry(reg *telemetry.Registry) error {
	if !showMetrics {
		return nil
	}
	samples, err := reg.Summary()
	if err != nil {
		return err
	}
	fmt.Fprint(os.Stderr, report.Telemetry(samples))
	return nil
}

func slug(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case b.Len() > 0 && !strings.HasSuffix(b.String(), "_"):
			b.WriteRune('_')
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}
