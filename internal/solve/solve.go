// Package solve drives the numerical integration of a derivative system over
// a caller-supplied time grid. The solvers report step-budget exhaustion and
// non-finite states as errors carrying the offending time and state; they
// never return a silently truncated solution.
package solve

import (
	"github.com/enzymekit/kinsim/internal/kin"
)

// System is anything that can produce a derivative vector for a state and
// time. The model's assembled reaction network implements this.
type System interface {
	Derivs(y []float64, t float64) []float64
}

// Integrator produces the solution sampled exactly at the grid times. The
// first row of the result is y0 at times[0]. maxSteps bounds the total number
// of internal steps across the whole grid.
type Integrator interface {
	Integrate(sys System, y0 []float64, times []float64, maxSteps int) ([][]float64, error)
}

func finite(v []float64) bool {
	return kin.State(v).IsValid()
}

func stateErr(t float64, step int, y []float64, wrapped error) error {
	return &kin.IntegrationError{
		Time:    t,
		Step:    step,
		State:   kin.State(y).Clone(),
		Wrapped: wrapped,
	}
}
