package kin

import "math"

// State is an ordered vector of species concentrations. The ordering is
// established by the model at setup and stays fixed for the whole run.
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// AddInPlace accumulates other into s without allocating. Used by the
// derivative loop, which runs thousands of times per integration.
func (s State) AddInPlace(other State) {
	for i := range other {
		if i < len(s) {
			s[i] += other[i]
		}
	}
}

// Params is the flat parameter map passed to every reaction contribution.
type Params map[string]float64

func (p Params) Clone() Params {
	c := make(Params, len(p))
	for k, v := range p {
		c[k] = v
	}
	return c
}

// Index maps a species name to its position in the state vector.
type Index map[string]int

// Bounds is an inclusive (Low, High) range for a sampled value.
type Bounds struct {
	Low  float64
	High float64
}

func (b Bounds) Contains(v float64) bool {
	return v >= b.Low && v <= b.High
}

// Species is a registry entry: a concentration plus optional sampling
// distribution and bounds.
type Species struct {
	Value  float64
	Dist   Distribution
	Bounds *Bounds
}

// Parameter is a registry entry for a kinetic constant. An unset Value with a
// non-nil Dist is substituted with the distribution mean at setup.
type Parameter struct {
	Value  float64
	Set    bool
	Dist   Distribution
	Bounds *Bounds
}

// Param is shorthand for an explicitly set parameter value.
func Param(v float64) Parameter {
	return Parameter{Value: v, Set: true}
}

// Reaction is the capability every mechanism implements. Contribution must be
// a pure function of its inputs: it returns a vector of the same length as y,
// zero everywhere except at substrate/product indices, holding -/+ the
// computed rate.
type Reaction interface {
	Name() string
	Substrates() []string
	Products() []string
	// SpeciesNames lists every species the mechanism reads, including the
	// enzyme and any modifiers, so the model can register missing ones.
	SpeciesNames() []string
	// Parameters returns the declared kinetic constants keyed by their
	// global names, with defaults, bounds and distributions.
	Parameters() map[string]Parameter
	Contribution(y State, idx Index, p Params) State
	// Validate fails fast on malformed bindings before any integration work.
	Validate() error
}
