package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	orig := GetPreset("mm")

	if err := Save(path, orig); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Name != orig.Name {
		t.Errorf("name: expected %s, got %s", orig.Name, loaded.Name)
	}
	if loaded.Time != orig.Time {
		t.Errorf("time grid: expected %+v, got %+v", orig.Time, loaded.Time)
	}
	if len(loaded.Reactions) != len(orig.Reactions) {
		t.Fatalf("reaction count: expected %d, got %d", len(orig.Reactions), len(loaded.Reactions))
	}
	rc := loaded.Reactions[0]
	if rc.Mechanism != "uni_uni" {
		t.Errorf("mechanism lost in round trip: %s", rc.Mechanism)
	}
	kcat := rc.Params["kcat"]
	if kcat.Value == nil || *kcat.Value != 120 {
		t.Errorf("kcat value lost in round trip: %+v", kcat)
	}
	if kcat.Dist == nil || kcat.Dist.Kind != "normal" {
		t.Errorf("kcat distribution lost in round trip: %+v", kcat.Dist)
	}
	if kcat.Bounds == nil || kcat.Bounds.High != 500 {
		t.Errorf("kcat bounds lost in round trip: %+v", kcat.Bounds)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sparse.yaml")
	if err := os.WriteFile(path, []byte("name: sparse\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Integrator != "rk45" {
		t.Errorf("expected default integrator rk45, got %s", cfg.Integrator)
	}
	if cfg.Time.MaxSteps != DefaultMaxSteps {
		t.Errorf("expected default step budget, got %d", cfg.Time.MaxSteps)
	}
}

func TestBuildRejectsUnknownMechanism(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Reactions = []ReactionConfig{{
		Name:       "bad",
		Mechanism:  "michaelis_morrison",
		Enzyme:     "E",
		Substrates: []string{"S"},
		Products:   []string{"P"},
	}}

	if _, err := NewRegistry().Build(cfg); err == nil {
		t.Fatal("expected unknown mechanism to be rejected")
	}
}

func TestBuildRejectsUnknownIntegrator(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Integrator = "leapfrog"
	if _, err := NewRegistry().Build(cfg); err == nil {
		t.Fatal("expected unknown integrator to be rejected")
	}
}

func TestBuildRejectsWrongSubstrateCount(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Reactions = []ReactionConfig{{
		Name:       "bad",
		Mechanism:  "ordered_bi",
		Enzyme:     "E",
		Substrates: []string{"A"}, // needs two
		Products:   []string{"P"},
	}}

	if _, err := NewRegistry().Build(cfg); err == nil {
		t.Fatal("expected substrate count mismatch to be rejected")
	}
}

func TestBuildRejectsUnknownDistributionKind(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Species = map[string]SpeciesConfig{
		"S": {Value: 1, Dist: &DistConfig{Kind: "cauchy"}},
	}
	if _, err := NewRegistry().Build(cfg); err == nil {
		t.Fatal("expected unknown distribution kind to be rejected")
	}
}

func TestEveryPresetBuildsAndRuns(t *testing.T) {
	registry := NewRegistry()
	for _, name := range ListPresets() {
		t.Run(name, func(t *testing.T) {
			cfg := GetPreset(name)
			if cfg == nil {
				t.Fatalf("preset %s missing", name)
			}

			m, err := registry.Build(cfg)
			if err != nil {
				t.Fatalf("build failed: %v", err)
			}
			if _, err := m.Setup(); err != nil {
				t.Fatalf("setup failed: %v", err)
			}
			traj, err := m.Run(context.Background())
			if err != nil {
				t.Fatalf("run failed: %v", err)
			}
			if traj.Len() != cfg.Time.Steps {
				t.Errorf("expected %d samples, got %d", cfg.Time.Steps, traj.Len())
			}

			final, err := traj.Final(cfg.Metrics.Product)
			if err != nil {
				t.Fatal(err)
			}
			if final <= 0 {
				t.Errorf("expected product formation, final %s = %f", cfg.Metrics.Product, final)
			}
		})
	}
}

func TestGetPresetUnknown(t *testing.T) {
	if GetPreset("nope") != nil {
		t.Error("expected nil for unknown preset")
	}
}
