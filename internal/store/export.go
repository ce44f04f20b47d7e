package store

import (
	"encoding/json"
	"io"
	"os"

	"github.com/enzymekit/kinsim/internal/kin"
)

type ExportData struct {
	Name       string             `json:"name"`
	Integrator string             `json:"integrator"`
	Steps      int                `json:"steps"`
	Species    []string           `json:"species"`
	Times      []float64          `json:"times"`
	States     [][]float64        `json:"states"`
	Params     map[string]float64 `json:"params"`
	Metrics    map[string]float64 `json:"metrics"`
}

func exportData(name, integrator string, params, runMetrics map[string]float64, traj *kin.Trajectory) ExportData {
	data := ExportData{
		Name:       name,
		Integrator: integrator,
		Steps:      traj.Len(),
		Species:    traj.SpeciesNames(),
		Times:      traj.Times(),
		States:     make([][]float64, traj.Len()),
		Params:     params,
		Metrics:    runMetrics,
	}
	for i := range data.States {
		data.States[i] = traj.At(i)
	}
	return data
}

func writeJSON(w io.Writer, data ExportData) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func ExportJSON(path, name, integrator string, params, runMetrics map[string]float64, traj *kin.Trajectory) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return writeJSON(file, exportData(name, integrator, params, runMetrics, traj))
}

func ExportJSONStdout(name, integrator string, params, runMetrics map[string]float64, traj *kin.Trajectory) error {
	return writeJSON(os.Stdout, exportData(name, integrator, params, runMetrics, traj))
}
