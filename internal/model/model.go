// Package model composes independently authored reaction mechanisms into a
// single ODE system and drives the numerical integration. A Model keeps two
// layers of state: persistent name-keyed registries for species and
// parameters, and run-scoped ordered vectors derived from them at Setup. The
// derived state is disposable; every Setup/Run/Reset cycle rebuilds it from
// the registries so repeated sampling runs cannot leak state into each other.
package model

import (
	"context"
	"fmt"

	"github.com/enzymekit/kinsim/internal/kin"
	"github.com/enzymekit/kinsim/internal/solve"
)

type phase int

const (
	phaseEmpty phase = iota
	phaseComposed
	phaseSetUp
	phaseRan
)

// TimeGrid configures the output grid and the solver's internal step budget.
type TimeGrid struct {
	Start    float64
	End      float64
	Steps    int
	MaxSteps int
}

// Times materializes the evenly spaced output grid.
func (g TimeGrid) Times() []float64 {
	times := make([]float64, g.Steps)
	if g.Steps == 1 {
		times[0] = g.Start
		return times
	}
	span := g.End - g.Start
	for i := range times {
		times[i] = g.Start + span*float64(i)/float64(g.Steps-1)
	}
	return times
}

// Validate rejects grids the integrators cannot run, so a degenerate
// configuration fails at setup instead of surfacing mid-integration.
func (g TimeGrid) Validate() error {
	if g.Steps < 2 {
		return fmt.Errorf("model: time grid needs at least 2 samples, got %d", g.Steps)
	}
	if g.End <= g.Start {
		return fmt.Errorf("model: time grid end %g is not after start %g", g.End, g.Start)
	}
	if g.MaxSteps <= 0 {
		return fmt.Errorf("model: step budget must be positive, got %d", g.MaxSteps)
	}
	return nil
}

// SetupReport lists the substitutions Setup performed, so callers can tell
// which species were auto-registered at zero and which parameters fell back
// to their distribution mean.
type SetupReport struct {
	DefaultedSpecies []string
	DefaultedParams  []string
}

type Model struct {
	grid       TimeGrid
	integrator solve.Integrator

	reactions []kin.Reaction

	speciesOrder []string
	species      map[string]kin.Species
	paramOrder   []string
	params       map[string]kin.Parameter

	// run-scoped derived state, rebuilt at every Setup
	names     []string
	index     kin.Index
	runParams kin.Params

	// registry snapshot captured at Setup, restored by Reset
	baseSpecies kin.Params
	baseParams  kin.Params

	traj   *kin.Trajectory
	report *SetupReport
	phase  phase
}

// New returns an empty model with the default time grid (0 to 100 in 100
// points, 10000 solver steps) and an adaptive Dormand-Prince integrator.
func New() *Model {
	return &Model{
		grid:       TimeGrid{Start: 0, End: 100, Steps: 100, MaxSteps: 10000},
		integrator: solve.NewDormandPrince(),
		species:    make(map[string]kin.Species),
		params:     make(map[string]kin.Parameter),
	}
}

func (m *Model) SetTime(start, end float64, steps, maxSteps int) {
	m.grid = TimeGrid{Start: start, End: end, Steps: steps, MaxSteps: maxSteps}
}

func (m *Model) Grid() TimeGrid { return m.grid }

func (m *Model) SetIntegrator(ig solve.Integrator) { m.integrator = ig }

// Append adds a reaction to the ordered collection. Contributions are summed
// in append order, which fixes floating-point rounding across reruns.
// Appending after Setup is refused; Reset first.
func (m *Model) Append(r kin.Reaction) error {
	if m.phase >= phaseSetUp {
		return kin.ErrSealed
	}
	if err := r.Validate(); err != nil {
		return err
	}
	m.reactions = append(m.reactions, r)
	m.phase = phaseComposed
	return nil
}

func (m *Model) Reactions() []kin.Reaction { return m.reactions }

// SetSpecies registers or replaces a species entry before setup.
func (m *Model) SetSpecies(name string, s kin.Species) {
	if _, ok := m.species[name]; !ok {
		m.speciesOrder = append(m.speciesOrder, name)
	}
	m.species[name] = s
}

// SetParameter registers or replaces a parameter entry, overriding whatever a
// reaction declares under the same name.
func (m *Model) SetParameter(name string, p kin.Parameter) {
	if _, ok := m.params[name]; !ok {
		m.paramOrder = append(m.paramOrder, name)
	}
	m.params[name] = p
}

// Setup folds every reaction's declared parameters into the flat parameter
// map, auto-registers referenced-but-missing species at zero, and derives the
// ordered run vectors. It is idempotent and re-runnable; insertion order is
// the ordering contract for the run that follows.
func (m *Model) Setup() (*SetupReport, error) {
	if len(m.reactions) == 0 {
		return nil, fmt.Errorf("model: no reactions composed")
	}
	if err := m.grid.Validate(); err != nil {
		return nil, err
	}

	report := &SetupReport{}

	for _, r := range m.reactions {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("model: reaction %s: %w", r.Name(), err)
		}

		for name, decl := range r.Parameters() {
			if existing, ok := m.params[name]; ok {
				// registry entry wins, but inherit declared bounds and
				// distribution when the registry carries none
				if existing.Bounds == nil {
					existing.Bounds = decl.Bounds
				}
				if existing.Dist == nil {
					existing.Dist = decl.Dist
				}
				if !existing.Set && existing.Dist != nil {
					existing.Value = existing.Dist.Mean()
					existing.Set = true
					report.DefaultedParams = append(report.DefaultedParams, name)
				}
				m.params[name] = existing
				continue
			}
			if !decl.Set {
				if decl.Dist == nil {
					return nil, fmt.Errorf("model: reaction %s: parameter %s has no value and no distribution", r.Name(), name)
				}
				decl.Value = decl.Dist.Mean()
				decl.Set = true
				report.DefaultedParams = append(report.DefaultedParams, name)
			}
			m.paramOrder = append(m.paramOrder, name)
			m.params[name] = decl
		}

		for _, name := range r.SpeciesNames() {
			if _, ok := m.species[name]; ok {
				continue
			}
			m.speciesOrder = append(m.speciesOrder, name)
			m.species[name] = kin.Species{Value: 0}
			report.DefaultedSpecies = append(report.DefaultedSpecies, name)
		}
	}

	m.materialize()
	m.snapshot()

	m.report = report
	m.traj = nil
	m.phase = phaseSetUp
	return report, nil
}

// materialize rebuilds the run-scoped ordered vectors from the registries.
func (m *Model) materialize() {
	m.names = append(m.names[:0], m.speciesOrder...)
	m.index = make(kin.Index, len(m.names))
	for i, name := range m.names {
		m.index[name] = i
	}

	m.runParams = make(kin.Params, len(m.params))
	for name, p := range m.params {
		m.runParams[name] = p.Value
	}
}

// snapshot captures the registry values that Reset restores.
func (m *Model) snapshot() {
	m.baseSpecies = make(kin.Params, len(m.species))
	for name, s := range m.species {
		m.baseSpecies[name] = s.Value
	}
	m.baseParams = make(kin.Params, len(m.params))
	for name, p := range m.params {
		m.baseParams[name] = p.Value
	}
}

// UpdateParameters writes sampled values into the parameter registry and the
// flat run map. Unknown names are configuration errors.
func (m *Model) UpdateParameters(values map[string]float64) error {
	for name, v := range values {
		p, ok := m.params[name]
		if !ok {
			return fmt.Errorf("model: unknown parameter %q", name)
		}
		p.Value = v
		p.Set = true
		m.params[name] = p
		if m.runParams != nil {
			m.runParams[name] = v
		}
	}
	return nil
}

// UpdateSpecies writes sampled starting concentrations into the species
// registry. Unknown names are configuration errors.
func (m *Model) UpdateSpecies(values map[string]float64) error {
	for name, v := range values {
		s, ok := m.species[name]
		if !ok {
			return fmt.Errorf("model: unknown species %q", name)
		}
		s.Value = v
		m.species[name] = s
	}
	return nil
}

// Derivs assembles the derivative vector for the current state by summing
// every reaction's contribution in append order. Called by the integrator,
// potentially thousands of times per run; it must stay side-effect free.
func (m *Model) Derivs(y []float64, t float64) []float64 {
	yprime := make(kin.State, len(y))
	for _, r := range m.reactions {
		yprime.AddInPlace(r.Contribution(kin.State(y), m.index, m.runParams))
	}
	return yprime
}

// Run integrates the composed system over the configured time grid and
// stores the trajectory. A run is not interruptible once started; the context
// is only consulted before integration begins.
func (m *Model) Run(ctx context.Context) (*kin.Trajectory, error) {
	if m.phase < phaseSetUp {
		return nil, kin.ErrNotSetUp
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	y0 := make([]float64, len(m.names))
	for i, name := range m.names {
		y0[i] = m.species[name].Value
	}

	values, err := m.integrator.Integrate(m, y0, m.grid.Times(), m.grid.MaxSteps)
	if err != nil {
		m.traj = nil
		return nil, err
	}

	m.traj = kin.NewTrajectory(m.names, m.grid.Times(), values)
	m.phase = phaseRan
	return m.traj, nil
}

// Reset restores the species and parameter registries to the values captured
// at Setup and clears the trajectory, returning the model to the SetUp
// baseline so the next sampling cycle starts clean.
func (m *Model) Reset() error {
	if m.phase < phaseSetUp {
		return kin.ErrNotSetUp
	}

	for name, v := range m.baseSpecies {
		s := m.species[name]
		s.Value = v
		m.species[name] = s
	}
	for name, v := range m.baseParams {
		p := m.params[name]
		p.Value = v
		m.params[name] = p
	}

	m.materialize()
	m.traj = nil
	m.phase = phaseSetUp
	return nil
}

// CheckBounds verifies the current parameter values against every reaction's
// declared bounds and the species values against registry bounds. A false
// result is the rejected-sample signal for external samplers, not an error.
func (m *Model) CheckBounds() bool {
	for _, r := range m.reactions {
		for name, decl := range r.Parameters() {
			if decl.Bounds == nil {
				continue
			}
			v, ok := m.runParams[name]
			if !ok {
				v = m.params[name].Value
			}
			if !decl.Bounds.Contains(v) {
				return false
			}
		}
	}
	for _, s := range m.species {
		if s.Bounds != nil && !s.Bounds.Contains(s.Value) {
			return false
		}
	}
	for _, p := range m.params {
		if p.Bounds != nil && !p.Bounds.Contains(p.Value) {
			return false
		}
	}
	return true
}

// Accessors for consumers (metrics, samplers, CLI).

func (m *Model) SpeciesNames() []string {
	return append([]string(nil), m.names...)
}

func (m *Model) Index() kin.Index {
	idx := make(kin.Index, len(m.index))
	for k, v := range m.index {
		idx[k] = v
	}
	return idx
}

func (m *Model) Species(name string) (kin.Species, bool) {
	s, ok := m.species[name]
	return s, ok
}

func (m *Model) Parameter(name string) (kin.Parameter, bool) {
	p, ok := m.params[name]
	return p, ok
}

func (m *Model) ParameterNames() []string {
	return append([]string(nil), m.paramOrder...)
}

func (m *Model) Params() kin.Params {
	return m.runParams.Clone()
}

func (m *Model) Trajectory() *kin.Trajectory { return m.traj }

func (m *Model) Report() *SetupReport { return m.report }
