package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/polsim/internal/analysis"
	"github.com/san-kum/polsim/internal/config"
	"github.com/san-kum/polsim/internal/experiment"
	"github.com/san-kum/polsim/internal/models"
	"github.com/san-kum/polsim/internal/storage"
	"github.com/san-kum/polsim/internal/viz"
)

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
	fmt.Fprintln(w, "ID\tMODEL\tPRESET\tTIME\tDURATION\tDT\tINTEG\tREPS")

	for _, run := range runs {
		reps := "-"
		if run.Replicates > 0 {
			reps = fmt.Sprintf("%d/%d", run.Replicates-run.Skipped, run.Replicates)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.1f\t%.3g\t%s\t%s\n",
			run.ID,
			run.Model,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Integrator,
			reps,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, result, err := st.LoadResult(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("model: %s\n", meta.Model)
	if meta.Replicates > 0 {
		fmt.Printf("mean of %d replicates\n", meta.Replicates-meta.Skipped)
	}
	fmt.Printf("samples: %d\n\n", len(result.States))

	for i := 0; i < models.Dim; i++ {
		fmt.Println(viz.CompartmentChart(result, i, plotWidth, plotHeight))
		fmt.Println()
	}
	for _, country := range []int{1, 2} {
		fmt.Println(viz.PartyShareChart(result, country, plotWidth, plotHeight))
		fmt.Println()
	}
	return nil
}

func compartmentIndex(name string) (int, error) {
	for i, n := range models.CompartmentNames {
		if strings.EqualFold(n, name) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown compartment %q (want one of %v)", name, models.CompartmentNames)
}

func phasePlot(cmd *cobra.Command, args []string) error {
	xIdx, err := compartmentIndex(xAxis)
	if err != nil {
		return err
	}
	yIdx, err := compartmentIndex(yAxis)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	meta, result, err := st.LoadResult(args[0])
	if err != nil {
		return err
	}

	portrait := analysis.SharePortrait(result, xIdx, yIdx)
	fmt.Printf("share plane: %s\n", meta.ID)
	fmt.Printf("x: %s share, y: %s share (o start, x end)\n\n",
		models.CompartmentNames[xIdx], models.CompartmentNames[yIdx])
	fmt.Print(analysis.PortraitToASCII(portrait, plotWidth, plotHeight))
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	_, result, err := st.LoadResult(args[0])
	if err != nil {
		return err
	}
	return storage.WriteStatesCSV(os.Stdout, result)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, result, err := st.LoadResult(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, meta, result)
}

func runLive(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, result, err := st.LoadResult(args[0])
	if err != nil {
		return err
	}

	title := meta.ID
	if meta.Preset != "" {
		title = meta.Preset + " " + meta.ID
	}
	m, err := viz.NewPlayback(title, result)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func listPresets(cmd *cobra.Command, args []string) error {
	modelNames := experiment.NewRegistry().ListModels()
	if len(args) > 0 {
		modelNames = args[:1]
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MODEL\tPRESET\tDT\tDURATION\tREPLICATES\tINITIAL STATE")
	for _, model := range modelNames {
		names := config.ListPresets(model)
		if len(names) == 0 {
			fmt.Fprintf(w, "%s\t(none)\n", model)
			continue
		}
		for _, name := range names {
			cfg := config.GetPreset(model, name)
			reps := "-"
			if model == "stochastic" {
				reps = fmt.Sprintf("%d", cfg.Replicates)
			}
			fmt.Fprintf(w, "%s\t%s\t%g\t%g\t%s\t%v\n",
				model, name, cfg.Dt, cfg.Duration, reps, []float64(cfg.GetInitState()))
		}
	}
	return w.Flush()
}
