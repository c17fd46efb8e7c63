package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/polsim/internal/analysis"
	"github.com/san-kum/polsim/internal/automation"
	"github.com/san-kum/polsim/internal/dynamo"
	"github.com/san-kum/polsim/internal/ensemble"
	"github.com/san-kum/polsim/internal/experiment"
	"github.com/san-kum/polsim/internal/models"
	"github.com/san-kum/polsim/internal/reference"
	"github.com/san-kum/polsim/internal/storage"
	"github.com/san-kum/polsim/internal/viz"
)

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, preset, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	exp, err := experiment.New(cfg, registry)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	meta := storage.RunMetadata{
		Model:      cfg.Model,
		Preset:     preset,
		Integrator: cfg.Integrator,
		Seed:       cfg.Seed,
		Dt:         cfg.Dt,
		Duration:   cfg.Duration,
	}
	meta.Params, err = exp.Params()
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	logger.Info("running", "model", cfg.Model, "preset", preset, "integrator", cfg.Integrator,
		"dt", cfg.Dt, "duration", cfg.Duration)
	start := time.Now()

	var (
		result *dynamo.Result
		runID  string
	)
	if registry.IsStochastic(cfg.Model) && cfg.Replicates > 1 {
		runner := &ensemble.Runner{Workers: cfg.Workers, SeedStart: cfg.Seed, Logger: logger}
		out, err := exp.RunEnsemble(ctx, runner)
		if err != nil {
			return err
		}
		var summary *ensemble.Summary
		runID, summary, err = st.SaveEnsemble(meta, out)
		if err != nil {
			return err
		}
		result = summary.MeanResult()
		fmt.Printf("replicates: %d (%d skipped)\n", len(out.Replicates), out.Skipped)
	} else {
		result, err = exp.Run(ctx)
		if err != nil {
			return err
		}
		runID, err = st.Save(meta, result)
		if err != nil {
			return err
		}
	}

	fmt.Printf("%s %s\n", viz.Title.Render("run id:"), runID)
	fmt.Printf("completed in %v\n", time.Since(start))
	fmt.Printf("steps: %d\n", len(result.States)-1)
	fmt.Println("\nfinal state:")
	fmt.Print(viz.FinalTable(result, 30))

	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %s\n", viz.MetricLabel.Render(name), viz.MetricValue.Render(fmt.Sprintf("%.6g", result.Metrics[name])))
	}

	if cfg.Reference != "" {
		return compareReference(cfg.Reference, result)
	}
	return nil
}

func compareReference(path string, result *dynamo.Result) error {
	series, err := reference.Load(path)
	if err != nil {
		return err
	}
	fit, err := reference.Compare(series, result)
	if err != nil {
		return err
	}

	fmt.Printf("\nreference fit (%d points, RMSE in millions):\n", fit.Points)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  UNAFFILIATED\tDEM\tREP\tOVERALL")
	fmt.Fprintf(w, "  %.3f\t%.3f\t%.3f\t%.3f\n",
		fit.Unaffiliated/reference.Millions, fit.Dem/reference.Millions,
		fit.Rep/reference.Millions, fit.Overall/reference.Millions)
	return w.Flush()
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	registry := experiment.NewRegistry()
	known := registry.ListIntegrators()

	var presetArgs []string
	if len(args) > 0 && !slices.Contains(known, args[0]) {
		presetArgs, args = args[:1], args[1:]
	}
	names := args
	if len(names) == 0 {
		names = known
	}

	cfg, _, err := resolveConfig(cmd, presetArgs)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("comparing integrators for %s (dt=%.4f, duration=%.1f, noise off)\n\n", cfg.Model, cfg.Dt, cfg.Duration)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tB SHARE\tD SHARE\tTOTALS DRIFT\tMIN COMPARTMENT\tTIME MS")

	for _, name := range names {
		c := cfg.Clone()
		c.Integrator = name
		exp, err := experiment.New(c, registry)
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", name, err)
			continue
		}
		solver, err := exp.NewSolver(nil)
		if err != nil {
			return err
		}

		start := time.Now()
		result, err := solver.Solve(ctx, exp.Times())
		elapsed := time.Since(start)
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", name, err)
			continue
		}

		shares := analysis.Shares(result.Final())
		fmt.Fprintf(w, "%s\t%.6f\t%.6f\t%.2e\t%.4g\t%.2f\n", name,
			shares[models.B], shares[models.D],
			result.Metrics["totals_drift"], result.Metrics["min_compartment"],
			float64(elapsed.Microseconds())/1000)
	}
	return w.Flush()
}

func convergence(cmd *cobra.Command, args []string) error {
	cfg, _, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	sys, err := registry.GetModel(cfg, nil)
	if err != nil {
		return err
	}
	integ, err := registry.GetIntegrator(cfg.Integrator)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	conv, err := analysis.ConvergenceOrder(ctx, sys, integ, cfg.GetInitState(),
		cfg.T0, cfg.T0+cfg.Duration, convSteps, convRef)
	if err != nil {
		return err
	}

	fmt.Printf("%s on %s over [%g, %g], reference %d steps\n\n",
		cfg.Integrator, cfg.Model, cfg.T0, cfg.T0+cfg.Duration, convRef)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEPS\tMAX ERROR\tORDER")
	for i, n := range conv.Steps {
		order := "-"
		if i > 0 {
			order = fmt.Sprintf("%.3f", conv.Orders[i-1])
		}
		fmt.Fprintf(w, "%d\t%.3e\t%s\n", n, conv.Errors[i], order)
	}
	return w.Flush()
}

func sweep(cmd *cobra.Command, args []string) error {
	cfg, _, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	results, err := automation.RunSweep(ctx, &automation.ParameterSweep{
		Base:     cfg,
		Param:    sweepParam,
		Min:      sweepMin,
		Max:      sweepMax,
		NumSteps: sweepSteps,
		Logger:   logger,
	}, experiment.NewRegistry())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tV1\tB\tC\tV2\tD\tE\tDRIFT\n", strings.ToUpper(sweepParam))
	for _, r := range results {
		s := r.FinalShares
		fmt.Fprintf(w, "%.4g\t%.4f\t%.4f\t%.4f\t%.4f\t%.4f\t%.4f\t%.2e\n",
			r.ParamValue, s[models.V1], s[models.B], s[models.C], s[models.V2], s[models.D], s[models.E], r.TotalsDrift)
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

	ctx, cancel := signalContext()
	defer cancel()

	registry := experiment.NewRegistry()
	results, err := automation.RunScenario(ctx, scenario, registry, logger)
	if err != nil {
		return err
	}

	fmt.Printf("scenario %s: %d steps\n", scenario.Name, len(results))
	for i, r := range results {
		shares := analysis.Shares(r.Result.Final())
		fmt.Printf("  %d. %-12s B %.4f  C %.4f  D %.4f  E %.4f\n", i+1,
			r.Config.Model, shares[models.B], shares[models.C], shares[models.D], shares[models.E])
		if r.Step.SaveAs == "" {
			continue
		}
		exp, err := experiment.New(r.Config, registry)
		if err != nil {
			return err
		}
		params, err := exp.Params()
		if err != nil {
			return err
		}
		runID, err := st.Save(storage.RunMetadata{
			Model:      r.Config.Model,
			Preset:     r.Step.SaveAs,
			Integrator: r.Config.Integrator,
			Seed:       r.Config.Seed,
			Dt:         r.Config.Dt,
			Duration:   r.Config.Duration,
			Params:     params,
		}, r.Result)
		if err != nil {
			return err
		}
		fmt.Printf("     saved %s as %s\n", r.Step.SaveAs, runID)
	}
	return nil
}
