package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/enzymekit/kinsim/internal/kin"
)

func testTrajectory() *kin.Trajectory {
	return kin.NewTrajectory(
		[]string{"S", "P"},
		[]float64{0, 0.5, 1},
		[][]float64{{10, 0}, {6, 4}, {2.5, 7.5}},
	)
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save("mm", "rk45",
		map[string]float64{"conversion.kcat": 120},
		map[string]float64{"yield_pct": 75},
		testTrajectory())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Name != "mm" {
		t.Errorf("expected name 'mm', got '%s'", meta.Name)
	}
	if meta.Steps != 3 {
		t.Errorf("expected 3 steps, got %d", meta.Steps)
	}
	if meta.Params["conversion.kcat"] != 120 {
		t.Errorf("expected kcat 120, got %f", meta.Params["conversion.kcat"])
	}
	if meta.Metrics["yield_pct"] != 75 {
		t.Errorf("expected yield 75, got %f", meta.Metrics["yield_pct"])
	}
	if meta.Start != 0 || meta.End != 1 {
		t.Errorf("expected window [0,1], got [%f,%f]", meta.Start, meta.End)
	}
}

func TestStoreRoundTripsTrajectory(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	orig := testTrajectory()
	runID, err := st.Save("mm", "rk45", nil, nil, orig)
	if err != nil {
		t.Fatal(err)
	}

	loaded, err := st.LoadTrajectory(runID)
	if err != nil {
		t.Fatalf("load trajectory failed: %v", err)
	}
	if loaded.Len() != orig.Len() {
		t.Fatalf("expected %d rows, got %d", orig.Len(), loaded.Len())
	}

	for _, name := range orig.SpeciesNames() {
		want, _ := orig.Series(name)
		got, err := loaded.Series(name)
		if err != nil {
			t.Fatalf("species %s missing after round trip", name)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("%s[%d]: expected %g, got %g", name, i, want[i], got[i])
			}
		}
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	if _, err := st.Save("mm", "rk45", nil, nil, testTrajectory()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	runID, err := st.Save("mm", "rk45", nil, nil, testTrajectory())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(tmpDir, runID)
	if _, err := os.Stat(filepath.Join(runDir, "metadata.json")); os.IsNotExist(err) {
		t.Error("metadata.json not created")
	}
	if _, err := os.Stat(filepath.Join(runDir, "trajectory.csv")); os.IsNotExist(err) {
		t.Error("trajectory.csv not created")
	}
}

func TestExportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.json")

	err := ExportJSON(path, "mm", "rk45",
		map[string]float64{"conversion.kcat": 120},
		map[string]float64{"yield_pct": 75},
		testTrajectory())
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var data ExportData
	if err := json.Unmarshal(raw, &data); err != nil {
		t.Fatalf("export is not valid json: %v", err)
	}
	if data.Name != "mm" {
		t.Errorf("expected name 'mm', got '%s'", data.Name)
	}
	if len(data.States) != 3 || len(data.States[0]) != 2 {
		t.Errorf("unexpected state shape: %v", data.States)
	}
	if data.Species[0] != "S" || data.Species[1] != "P" {
		t.Errorf("unexpected species order: %v", data.Species)
	}
}
