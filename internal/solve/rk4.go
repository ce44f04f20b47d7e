package solve

import "github.com/enzymekit/kinsim/internal/kin"

const defaultSubSteps = 10

// RK4 is the classic fixed-step fourth-order Runge-Kutta method, taking
// SubSteps internal steps per grid interval. Scratch buffers are reused
// across steps since the derivative loop runs thousands of times per run.
type RK4 struct {
	SubSteps int

	k1, k2, k3, k4 []float64
	scratch        []float64
}

func NewRK4() *RK4 {
	return &RK4{SubSteps: defaultSubSteps}
}

func (r *RK4) ensureScratch(n int) {
	if len(r.k1) != n {
		r.k1 = make([]float64, n)
		r.k2 = make([]float64, n)
		r.k3 = make([]float64, n)
		r.k4 = make([]float64, n)
		r.scratch = make([]float64, n)
	}
}

func (r *RK4) Integrate(sys System, y0 []float64, times []float64, maxSteps int) ([][]float64, error) {
	sub := r.SubSteps
	if sub <= 0 {
		sub = defaultSubSteps
	}

	n := len(y0)
	r.ensureScratch(n)

	out := make([][]float64, len(times))
	out[0] = append([]float64(nil), y0...)

	y := append([]float64(nil), y0...)
	steps := 0

	for i := 1; i < len(times); i++ {
		dt := (times[i] - times[i-1]) / float64(sub)
		t := times[i-1]

		for s := 0; s < sub; s++ {
			if maxSteps > 0 && steps >= maxSteps {
				return nil, stateErr(t, steps, y, kin.ErrStepBudget)
			}
			if err := r.step(sys, y, t, dt); err != nil {
				return nil, stateErr(t, steps, y, kin.ErrInvalidState)
			}
			t += dt
			steps++
		}

		if !finite(y) {
			return nil, stateErr(t, steps, y, kin.ErrInvalidState)
		}
		out[i] = append([]float64(nil), y...)
	}

	return out, nil
}

// step advances y in place by one RK4 step of size dt.
func (r *RK4) step(sys System, y []float64, t, dt float64) error {
	n := len(y)

	copy(r.k1, sys.Derivs(y, t))

	for i := 0; i < n; i++ {
		r.scratch[i] = y[i] + dt*0.5*r.k1[i]
	}
	copy(r.k2, sys.Derivs(r.scratch, t+dt*0.5))

	for i := 0; i < n; i++ {
		r.scratch[i] = y[i] + dt*0.5*r.k2[i]
	}
	copy(r.k3, sys.Derivs(r.scratch, t+dt*0.5))

	for i := 0; i < n; i++ {
		r.scratch[i] = y[i] + dt*r.k3[i]
	}
	copy(r.k4, sys.Derivs(r.scratch, t+dt))

	if !finite(r.k1) || !finite(r.k4) {
		return kin.ErrInvalidState
	}

	dt6 := dt / 6.0
	for i := 0; i < n; i++ {
		y[i] += dt6 * (r.k1[i] + 2*r.k2[i] + 2*r.k3[i] + r.k4[i])
	}
	return nil
}
