package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/polsim/internal/config"
)

var (
	dataDir    string
	logLevel   string
	configFile string
	modelName  string
	integrator string
	dt         float64
	duration   float64
	replicates int
	seed       int64
	workers    int
	refFile    string
	// plot size
	plotWidth  int
	plotHeight int
	// phase plot axes
	xAxis string
	yAxis string
	// sweep
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
	// convergence
	convSteps []int
	convRef   int
)

var logger = slog.Default()

func main() {
	environ, err := config.LoadEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	rootCmd := &cobra.Command{
		Use:          "polsim",
		Short:        "two-country political contagion simulator",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: config.ParseLevel(logLevel),
			}))
			slog.SetDefault(logger)
		},
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", environ.DataDir, "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", environ.LogLevel, "log level (debug, info, warn, error)")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run a simulation and store the trajectory",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addConfigFlags(runCmd)
	runCmd.Flags().IntVar(&replicates, "replicates", config.DefaultReplicates, "stochastic replicates")
	runCmd.Flags().IntVar(&workers, "workers", environ.Workers, "parallel replicates (0 = all cores)")
	runCmd.Flags().StringVar(&refFile, "reference", "", "observed series csv to compare against")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&plotWidth, "width", 80, "graph width")
	plotCmd.Flags().IntVar(&plotHeight, "height", 10, "graph height")

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "plot two compartment shares against each other",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	phaseCmd.Flags().StringVar(&xAxis, "x-axis", "B", "compartment on the x axis")
	phaseCmd.Flags().StringVar(&yAxis, "y-axis", "D", "compartment on the y axis")
	phaseCmd.Flags().IntVar(&plotWidth, "width", 60, "plot width")
	phaseCmd.Flags().IntVar(&plotHeight, "height", 20, "plot height")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "write a stored trajectory as csv to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "write a stored run as json to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	liveCmd := &cobra.Command{
		Use:   "live [run_id]",
		Short: "replay a stored run in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [model]",
		Short: "list presets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	compareCmd := &cobra.Command{
		Use:   "compare [preset] [integrator...]",
		Short: "compare integrators on the same noise-free configuration",
		RunE:  compareIntegrators,
	}
	addConfigFlags(compareCmd)

	convergenceCmd := &cobra.Command{
		Use:   "convergence [preset]",
		Short: "estimate the observed order of accuracy",
		Args:  cobra.MaximumNArgs(1),
		RunE:  convergence,
	}
	addConfigFlags(convergenceCmd)
	convergenceCmd.Flags().IntSliceVar(&convSteps, "steps", []int{25, 50, 100, 200}, "step counts to test")
	convergenceCmd.Flags().IntVar(&convRef, "ref", 3200, "step count of the reference run")

	sweepCmd := &cobra.Command{
		Use:   "sweep [preset]",
		Short: "sweep one rate and report final shares",
		Args:  cobra.MaximumNArgs(1),
		RunE:  sweep,
	}
	addConfigFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "k1", "rate to vary")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0.1, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 0.9, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 9, "number of values")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a yaml scenario of chained runs",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, phaseCmd, exportCSVCmd, exportJSONCmd,
		liveCmd, presetsCmd, compareCmd, convergenceCmd, sweepCmd, scenarioCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&modelName, "model", "deterministic", "model (deterministic, stochastic)")
	cmd.Flags().StringVar(&integrator, "integrator", "rk4", "integrator")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	cmd.Flags().Int64Var(&seed, "seed", config.DefaultSeed, "random seed")
}

// resolveConfig starts from a preset, a config file or the defaults, then
// applies every flag the user set explicitly.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, string, error) {
	preset := ""
	if len(args) > 0 {
		preset = args[0]
	}
	if preset != "" && configFile != "" {
		return nil, "", fmt.Errorf("use either a preset or --config, not both")
	}

	cfg := config.DefaultConfig()
	switch {
	case preset != "":
		cfg = config.FindPreset(preset)
		if cfg == nil {
			return nil, "", fmt.Errorf("unknown preset: %s (see polsim presets)", preset)
		}
	case configFile != "":
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("model") {
		cfg.Model = modelName
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Lookup("replicates") != nil && flags.Changed("replicates") {
		cfg.Replicates = replicates
	}
	if flags.Lookup("workers") != nil && (flags.Changed("workers") || cfg.Workers == 0) {
		cfg.Workers = workers
	}
	if flags.Lookup("reference") != nil && flags.Changed("reference") {
		cfg.Reference = refFile
	}

	return cfg, preset, nil
}
