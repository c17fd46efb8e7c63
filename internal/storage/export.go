package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/polsim/internal/dynamo"
	"github.com/san-kum/polsim/internal/models"
)

type ExportData struct {
	ID           string             `json:"id,omitempty"`
	Model        string             `json:"model"`
	Integrator   string             `json:"integrator"`
	Dt           float64            `json:"dt"`
	Duration     float64            `json:"duration"`
	Steps        int                `json:"steps"`
	Compartments []string           `json:"compartments"`
	Times        []float64          `json:"times"`
	States       [][]float64        `json:"states"`
	Metrics      map[string]float64 `json:"metrics"`
}

func ExportJSON(w io.Writer, meta *RunMetadata, result *dynamo.Result) error {
	data := ExportData{
		ID:           meta.ID,
		Model:        meta.Model,
		Integrator:   meta.Integrator,
		Dt:           meta.Dt,
		Duration:     meta.Duration,
		Steps:        len(result.Times),
		Compartments: models.CompartmentNames[:],
		Times:        result.Times,
		States:       make([][]float64, len(result.States)),
		Metrics:      result.Metrics,
	}
	for i, s := range result.States {
		data.States[i] = s
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
