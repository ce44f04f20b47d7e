package metrics

import (
	"math"
	"testing"

	"github.com/enzymekit/kinsim/internal/kin"
)

// two-point trajectory: S 10 -> 2, P 0 -> 8, E constant 1, over 48 hours
func fixture() *kin.Trajectory {
	return kin.NewTrajectory(
		[]string{"S", "P", "E"},
		[]float64{0, 48},
		[][]float64{{10, 0, 1}, {2, 8, 1}},
	)
}

func fixtureMeta() Meta {
	return Meta{
		MolWeights: map[string]float64{"S": 100, "P": 150, "E": 25000},
		VolumeL:    2,
	}
}

func TestYield(t *testing.T) {
	y, err := Yield(fixture(), "P", "S")
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(y-80) > 1e-12 {
		t.Errorf("expected 80%%, got %f", y)
	}
}

func TestYieldUnknownSpecies(t *testing.T) {
	if _, err := Yield(fixture(), "X", "S"); err == nil {
		t.Error("expected error for unknown product")
	}
}

func TestGramsConversion(t *testing.T) {
	// 8 mM in 2 L = 0.016 mol; at 150 g/mol = 2.4 g
	g, err := fixtureMeta().Grams("P", 8)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(g-2.4) > 1e-12 {
		t.Errorf("expected 2.4 g, got %f", g)
	}
}

func TestSpaceTimeYield(t *testing.T) {
	// 2.4 g over 2 L over 2 days = 0.6 g/L/day
	sty, err := SpaceTimeYield(fixture(), "P", fixtureMeta())
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(sty-0.6) > 1e-12 {
		t.Errorf("expected 0.6 g/L/day, got %f", sty)
	}
}

func TestEFactor(t *testing.T) {
	// waste: S 2 mM * 2 L * 100 = 0.4 g, E 1 mM * 2 L * 25000 = 50 g
	// product: 2.4 g
	ef, err := EFactor(fixture(), "P", fixtureMeta())
	if err != nil {
		t.Fatal(err)
	}
	want := (0.4 + 50.0) / 2.4
	if math.Abs(ef-want) > 1e-9 {
		t.Errorf("expected %f, got %f", want, ef)
	}
}

func TestProductivity(t *testing.T) {
	// 2.4 g product / 50 g enzyme / 48 h
	p, err := Productivity(fixture(), "P", "E", fixtureMeta())
	if err != nil {
		t.Fatal(err)
	}
	want := 2.4 / 50.0 / 48.0
	if math.Abs(p-want) > 1e-12 {
		t.Errorf("expected %f, got %f", want, p)
	}
}

func TestQuantile(t *testing.T) {
	sorted := []float64{1, 2, 3, 4, 5}

	tests := []struct {
		q    float64
		want float64
	}{
		{0, 1},
		{0.25, 2},
		{0.5, 3},
		{1, 5},
	}

	for _, tt := range tests {
		if got := Quantile(sorted, tt.q); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("q=%f: expected %f, got %f", tt.q, tt.want, got)
		}
	}
}

func TestSpread(t *testing.T) {
	trajs := make([]*kin.Trajectory, 0, 5)
	for _, final := range []float64{1, 2, 3, 4, 5} {
		trajs = append(trajs, kin.NewTrajectory(
			[]string{"P"},
			[]float64{0, 1},
			[][]float64{{0}, {final}},
		))
	}

	spread, err := Spread(trajs, "P", 0, 1)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(spread-4) > 1e-12 {
		t.Errorf("expected spread 4, got %f", spread)
	}

	if _, err := Spread(nil, "P", 0, 1); err == nil {
		t.Error("expected error for empty ensemble")
	}
}
