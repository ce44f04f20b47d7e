// Package sample drives repeated model runs with randomly drawn species and
// parameter values, the consumer the engine's setup/run/reset contract
// exists for. Out-of-bounds draws are rejected and redrawn; individual
// integration failures are counted and skipped without aborting the sweep.
package sample

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"github.com/enzymekit/kinsim/internal/kin"
	"github.com/enzymekit/kinsim/internal/metrics"
	"github.com/enzymekit/kinsim/internal/model"
)

const defaultMaxDraws = 100

// Sweep configures a Monte-Carlo uncertainty sweep.
type Sweep struct {
	Runs     int
	Seed     int64
	MaxDraws int // bounds-rejection retries per sample
}

// Result aggregates the sweep's surviving trajectories and its bookkeeping.
type Result struct {
	Trajectories []*kin.Trajectory
	Rejected     int // draws discarded by the bounds check
	Failed       int // runs discarded for integration failures
	Skipped      int // samples abandoned after MaxDraws rejections
}

// Run sets the model up, then cycles draw/bounds-check/run/reset for every
// sample, reusing the one model instance throughout.
func (s *Sweep) Run(ctx context.Context, m *model.Model) (*Result, error) {
	if s.Runs <= 0 {
		return nil, fmt.Errorf("sample: runs must be positive, got %d", s.Runs)
	}
	maxDraws := s.MaxDraws
	if maxDraws <= 0 {
		maxDraws = defaultMaxDraws
	}

	if _, err := m.Setup(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(s.Seed))
	result := &Result{Trajectories: make([]*kin.Trajectory, 0, s.Runs)}

	for i := 0; i < s.Runs; i++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		ok := false
		for attempt := 0; attempt < maxDraws; attempt++ {
			if err := s.draw(rng, m); err != nil {
				return result, err
			}
			if m.CheckBounds() {
				ok = true
				break
			}
			result.Rejected++
		}
		if !ok {
			result.Skipped++
			if err := m.Reset(); err != nil {
				return result, err
			}
			continue
		}

		traj, err := m.Run(ctx)
		if err != nil {
			var ie *kin.IntegrationError
			if !errors.As(err, &ie) {
				return result, err
			}
			result.Failed++
			if rerr := m.Reset(); rerr != nil {
				return result, rerr
			}
			continue
		}

		result.Trajectories = append(result.Trajectories, traj)
		if err := m.Reset(); err != nil {
			return result, err
		}
	}

	return result, nil
}

// draw samples every species and parameter that declares a distribution and
// writes the values into the model registries.
func (s *Sweep) draw(rng *rand.Rand, m *model.Model) error {
	speciesDraw := make(map[string]float64)
	for _, name := range m.SpeciesNames() {
		sp, _ := m.Species(name)
		if sp.Dist != nil {
			speciesDraw[name] = sp.Dist.Sample(rng)
		}
	}
	if len(speciesDraw) > 0 {
		if err := m.UpdateSpecies(speciesDraw); err != nil {
			return err
		}
	}

	paramDraw := make(map[string]float64)
	for _, name := range m.ParameterNames() {
		p, _ := m.Parameter(name)
		if p.Dist != nil {
			paramDraw[name] = p.Dist.Sample(rng)
		}
	}
	if len(paramDraw) > 0 {
		if err := m.UpdateParameters(paramDraw); err != nil {
			return err
		}
	}
	return nil
}

// Band returns the per-time q-th quantile series of one species across the
// ensemble, for plotting uncertainty envelopes.
func Band(trajs []*kin.Trajectory, name string, q float64) ([]float64, error) {
	if len(trajs) == 0 {
		return nil, fmt.Errorf("sample: empty ensemble")
	}

	series := make([][]float64, 0, len(trajs))
	for _, traj := range trajs {
		s, err := traj.Series(name)
		if err != nil {
			return nil, err
		}
		series = append(series, s)
	}

	n := len(series[0])
	band := make([]float64, n)
	column := make([]float64, len(series))
	for i := 0; i < n; i++ {
		for j, s := range series {
			column[j] = s[i]
		}
		sort.Float64s(column)
		band[i] = metrics.Quantile(column, q)
	}
	return band, nil
}
