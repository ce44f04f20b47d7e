package reaction

import (
	"errors"
	"math"
	"testing"

	"github.com/enzymekit/kinsim/internal/kin"
)

func uniUniFixture() (*UniUni, kin.State, kin.Index, kin.Params) {
	r := NewUniUni("ox", "E1", "S", []string{"P"}, kin.Param(2.0), kin.Param(1.0))
	y := kin.State{10, 0, 1} // S, P, E1
	idx := kin.Index{"S": 0, "P": 1, "E1": 2}
	p := kin.Params{"ox.kcat": 2.0, "ox.km": 1.0}
	return r, y, idx, p
}

func TestUniUniContributionPlacement(t *testing.T) {
	r, y, idx, p := uniUniFixture()

	dy := r.Contribution(y, idx, p)

	rate := 2.0 * 1.0 * 10.0 / (1.0 + 10.0)
	if math.Abs(dy[0]+rate) > 1e-12 {
		t.Errorf("expected substrate delta %f, got %f", -rate, dy[0])
	}
	if math.Abs(dy[1]-rate) > 1e-12 {
		t.Errorf("expected product delta %f, got %f", rate, dy[1])
	}
	if dy[2] != 0 {
		t.Errorf("expected zero delta at enzyme index, got %f", dy[2])
	}
}

func TestContributionIsPure(t *testing.T) {
	r, y, idx, p := uniUniFixture()
	before := y.Clone()

	_ = r.Contribution(y, idx, p)
	_ = r.Contribution(y, idx, p)

	for i := range y {
		if y[i] != before[i] {
			t.Fatalf("contribution mutated state at index %d", i)
		}
	}
}

func TestContributionOrderInvariance(t *testing.T) {
	// the sum of delta magnitudes must not depend on species ordering, only
	// on a consistent name-to-index mapping
	r := NewPingPongBi("tx", "E", "A", "B", []string{"P", "Q"},
		kin.Param(1), kin.Param(1), kin.Param(1))
	p := kin.Params{"tx.kcat": 1, "tx.kma": 1, "tx.kmb": 1}

	idx1 := kin.Index{"A": 0, "B": 1, "P": 2, "Q": 3, "E": 4}
	y1 := kin.State{2, 3, 0, 0, 1}
	idx2 := kin.Index{"E": 0, "Q": 1, "A": 2, "P": 3, "B": 4}
	y2 := kin.State{1, 0, 2, 3, 3}

	sum := func(dy kin.State) float64 {
		total := 0.0
		for _, v := range dy {
			total += math.Abs(v)
		}
		return total
	}

	s1 := sum(r.Contribution(y1, idx1, p))
	s2 := sum(r.Contribution(y2, idx2, p))
	if math.Abs(s1-s2) > 1e-12 {
		t.Errorf("delta magnitude changed under reindexing: %f vs %f", s1, s2)
	}
	if s1 == 0 {
		t.Error("expected nonzero contribution")
	}
}

func TestRevBiBiNetDirection(t *testing.T) {
	one := kin.Param(1.0)
	r := NewOrderedBiBiRev("iso", "E", "A", "B", "P", "Q",
		one, one, one, one, one, one, one, one)

	idx := kin.Index{"A": 0, "B": 1, "P": 2, "Q": 3, "E": 4}
	p := kin.Params{}
	for name, decl := range r.Parameters() {
		p[name] = decl.Value
	}

	// substrates only: net forward, products rise
	dy := r.Contribution(kin.State{2, 2, 0, 0, 1}, idx, p)
	if dy[0] >= 0 || dy[2] <= 0 {
		t.Errorf("expected forward net rate, got dy=%v", dy)
	}

	// products only: net reverse, substrates rise
	dy = r.Contribution(kin.State{0, 0, 2, 2, 1}, idx, p)
	if dy[0] <= 0 || dy[2] >= 0 {
		t.Errorf("expected reverse net rate, got dy=%v", dy)
	}
}

func TestCompetitiveInhibitionSlowsRate(t *testing.T) {
	plain := NewUniUni("r", "E", "S", []string{"P"}, kin.Param(1), kin.Param(1))
	inhibited := NewUniUniCompetitive("r", "E", "S", "I", []string{"P"},
		kin.Param(1), kin.Param(1), kin.Param(0.5))

	idx := kin.Index{"S": 0, "P": 1, "E": 2, "I": 3}
	p := kin.Params{"r.kcat": 1, "r.km": 1, "r.ki": 0.5}

	free := plain.Contribution(kin.State{5, 0, 1, 0}, idx, p)
	bound := inhibited.Contribution(kin.State{5, 0, 1, 2}, idx, p)

	if -bound[0] >= -free[0] {
		t.Errorf("expected inhibitor to slow rate: %f vs %f", -bound[0], -free[0])
	}

	// zero inhibitor leaves the rate untouched
	unbound := inhibited.Contribution(kin.State{5, 0, 1, 0}, idx, p)
	if math.Abs(unbound[0]-free[0]) > 1e-12 {
		t.Errorf("expected identical rate with no inhibitor: %f vs %f", unbound[0], free[0])
	}
}

func TestValidateRejectsEmptyBindings(t *testing.T) {
	r := NewUniUni("ox", "E1", "S", []string{"P"}, kin.Param(1), kin.Param(1))
	if err := r.Validate(); err != nil {
		t.Fatalf("valid reaction rejected: %v", err)
	}

	r.A = ""
	r.base.species[0] = ""
	if err := r.Validate(); !errors.Is(err, kin.ErrBinding) {
		t.Errorf("expected ErrBinding, got %v", err)
	}

	r2 := NewUniUni("ox", "E1", "S", []string{"P"}, kin.Param(1), kin.Param(1))
	r2.Kcat = "ox.wrong"
	if err := r2.Validate(); !errors.Is(err, kin.ErrBinding) {
		t.Errorf("expected ErrBinding for undeclared parameter, got %v", err)
	}
}

func TestDeclaredParameterNames(t *testing.T) {
	r := NewPingPongBiBiRev("te", "E", "A", "B", "P", "Q",
		kin.Param(1), kin.Param(1), kin.Param(1), kin.Param(1), kin.Param(1),
		kin.Param(1), kin.Param(1), kin.Param(1), kin.Param(1), kin.Param(1))

	want := []string{"te.kcatf", "te.kcatr", "te.kma", "te.kmb", "te.kmp", "te.kmq",
		"te.kia", "te.kib", "te.kip", "te.kiq"}
	decl := r.Parameters()
	for _, name := range want {
		if _, ok := decl[name]; !ok {
			t.Errorf("missing declared parameter %s", name)
		}
	}
	if len(decl) != len(want) {
		t.Errorf("expected %d parameters, got %d", len(want), len(decl))
	}
}
