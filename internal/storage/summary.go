package storage

import (
	"encoding/csv"
	"io"
	"path/filepath"

	"github.com/san-kum/polsim/internal/ensemble"
	"github.com/san-kum/polsim/internal/models"
)

// SaveEnsemble stores the mean trajectory as the run's states and the full
// per-time statistics in summary.csv.
func (s *Store) SaveEnsemble(meta RunMetadata, out *ensemble.Outcome) (string, *ensemble.Summary, error) {
	summary, err := ensemble.Summarize(out)
	if err != nil {
		return "", nil, err
	}

	meta.Replicates = len(out.Replicates)
	meta.Skipped = out.Skipped

	runID, err := s.Save(meta, summary.MeanResult())
	if err != nil {
		return "", nil, err
	}

	err = writeFile(filepath.Join(s.baseDir, runID, summaryFile), func(w io.Writer) error {
		return WriteSummaryCSV(w, summary)
	})
	if err != nil {
		return "", nil, err
	}
	return runID, summary, nil
}

// WriteSummaryCSV writes, per time, the mean, sd, q05 and q95 of each compartment.
func WriteSummaryCSV(w io.Writer, summary *ensemble.Summary) error {
	cw := csv.NewWriter(w)

	header := []string{"time"}
	for _, name := range models.CompartmentNames {
		header = append(header, "mean_"+name, "sd_"+name, "q05_"+name, "q95_"+name)
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for n, t := range summary.Times {
		row := []string{formatFloat(t)}
		for j := range summary.Mean[n] {
			row = append(row,
				formatFloat(summary.Mean[n][j]),
				formatFloat(summary.StdDev[n][j]),
				formatFloat(summary.Q05[n][j]),
				formatFloat(summary.Q95[n][j]),
			)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
