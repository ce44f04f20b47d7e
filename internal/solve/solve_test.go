package solve

import (
	"errors"
	"math"
	"testing"

	"github.com/enzymekit/kinsim/internal/kin"
)

// decay is y' = -y, solution y(t) = y0 * exp(-t)
type decay struct{}

func (decay) Derivs(y []float64, t float64) []float64 {
	return []float64{-y[0]}
}

// blowup produces a non-finite derivative immediately
type blowup struct{}

func (blowup) Derivs(y []float64, t float64) []float64 {
	return []float64{math.NaN()}
}

func grid(start, end float64, steps int) []float64 {
	times := make([]float64, steps)
	for i := range times {
		times[i] = start + (end-start)*float64(i)/float64(steps-1)
	}
	return times
}

func TestRK4ExponentialDecay(t *testing.T) {
	times := grid(0, 1, 101)
	out, err := NewRK4().Integrate(decay{}, []float64{1.0}, times, 0)
	if err != nil {
		t.Fatalf("integrate failed: %v", err)
	}

	for i, row := range out {
		want := math.Exp(-times[i])
		if math.Abs(row[0]-want) > 1e-6 {
			t.Fatalf("t=%.2f: expected %.8f, got %.8f", times[i], want, row[0])
		}
	}
}

func TestDormandPrinceExponentialDecay(t *testing.T) {
	times := grid(0, 1, 11)
	dp := NewDormandPrince()
	out, err := dp.Integrate(decay{}, []float64{1.0}, times, 100000)
	if err != nil {
		t.Fatalf("integrate failed: %v", err)
	}

	for i, row := range out {
		want := math.Exp(-times[i])
		if math.Abs(row[0]-want) > 1e-6 {
			t.Fatalf("t=%.2f: expected %.8f, got %.8f", times[i], want, row[0])
		}
	}
}

func TestFirstRowIsInitialState(t *testing.T) {
	times := grid(0, 1, 5)
	out, err := NewRK4().Integrate(decay{}, []float64{3.5}, times, 0)
	if err != nil {
		t.Fatalf("integrate failed: %v", err)
	}
	if out[0][0] != 3.5 {
		t.Errorf("expected first row to be y0, got %f", out[0][0])
	}
	if len(out) != len(times) {
		t.Errorf("expected %d rows, got %d", len(times), len(out))
	}
}

func TestStepBudgetExhaustion(t *testing.T) {
	times := grid(0, 10, 101)

	_, err := NewRK4().Integrate(decay{}, []float64{1.0}, times, 5)
	if !errors.Is(err, kin.ErrStepBudget) {
		t.Fatalf("expected ErrStepBudget, got %v", err)
	}

	var ie *kin.IntegrationError
	if !errors.As(err, &ie) {
		t.Fatal("expected IntegrationError with context")
	}
	if len(ie.State) != 1 {
		t.Errorf("expected failing state in error, got %v", ie.State)
	}
}

func TestNonFiniteDerivativeReported(t *testing.T) {
	times := grid(0, 1, 11)

	_, err := NewRK4().Integrate(blowup{}, []float64{1.0}, times, 0)
	if !errors.Is(err, kin.ErrInvalidState) {
		t.Errorf("rk4: expected ErrInvalidState, got %v", err)
	}

	_, err = NewDormandPrince().Integrate(blowup{}, []float64{1.0}, times, 0)
	if !errors.Is(err, kin.ErrInvalidState) {
		t.Errorf("dopri: expected ErrInvalidState, got %v", err)
	}
}

func TestDormandPrinceBudget(t *testing.T) {
	times := grid(0, 100, 1001)
	_, err := NewDormandPrince().Integrate(decay{}, []float64{1.0}, times, 3)
	if !errors.Is(err, kin.ErrStepBudget) {
		t.Fatalf("expected ErrStepBudget, got %v", err)
	}
}
