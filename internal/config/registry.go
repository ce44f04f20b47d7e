package config

import (
	"fmt"
	"sort"

	"github.com/enzymekit/kinsim/internal/kin"
	"github.com/enzymekit/kinsim/internal/model"
	"github.com/enzymekit/kinsim/internal/reaction"
	"github.com/enzymekit/kinsim/internal/solve"
)

// Registry maps mechanism and integrator names from a run definition to
// their constructors.
type Registry struct {
	mechanisms  map[string]func(ReactionConfig) (kin.Reaction, error)
	integrators map[string]func() solve.Integrator
}

func NewRegistry() *Registry {
	r := &Registry{
		mechanisms:  make(map[string]func(ReactionConfig) (kin.Reaction, error)),
		integrators: make(map[string]func() solve.Integrator),
	}

	r.mechanisms["uni_uni"] = buildUniUni
	r.mechanisms["independent_bi"] = buildIndependentBi
	r.mechanisms["ordered_bi"] = buildOrderedBi
	r.mechanisms["ping_pong_bi"] = buildPingPongBi
	r.mechanisms["ter_ordered"] = buildTerOrdered
	r.mechanisms["ordered_bi_bi_rev"] = buildOrderedBiBiRev
	r.mechanisms["random_bi_bi_rev"] = buildRandomBiBiRev
	r.mechanisms["ping_pong_bi_bi_rev"] = buildPingPongBiBiRev
	r.mechanisms["uni_uni_competitive"] = buildUniUniCompetitive
	r.mechanisms["uni_uni_mixed"] = buildUniUniMixed

	r.integrators["rk4"] = func() solve.Integrator { return solve.NewRK4() }
	r.integrators["rk45"] = func() solve.Integrator { return solve.NewDormandPrince() }

	return r
}

func (r *Registry) GetIntegrator(name string) (solve.Integrator, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn(), nil
}

func (r *Registry) GetReaction(rc ReactionConfig) (kin.Reaction, error) {
	fn, ok := r.mechanisms[rc.Mechanism]
	if !ok {
		return nil, fmt.Errorf("reaction %q: unknown mechanism: %s", rc.Name, rc.Mechanism)
	}
	return fn(rc)
}

func (r *Registry) ListMechanisms() []string {
	names := make([]string, 0, len(r.mechanisms))
	for name := range r.mechanisms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build assembles a ready-to-set-up model from a run definition.
func (r *Registry) Build(cfg *Config) (*model.Model, error) {
	m := model.New()
	m.SetTime(cfg.Time.Start, cfg.Time.End, cfg.Time.Steps, cfg.Time.MaxSteps)

	ig, err := r.GetIntegrator(cfg.Integrator)
	if err != nil {
		return nil, err
	}
	m.SetIntegrator(ig)

	for name, sc := range cfg.Species {
		sp, err := sc.Build()
		if err != nil {
			return nil, fmt.Errorf("species %q: %w", name, err)
		}
		m.SetSpecies(name, sp)
	}

	for _, rc := range cfg.Reactions {
		rx, err := r.GetReaction(rc)
		if err != nil {
			return nil, err
		}
		if err := m.Append(rx); err != nil {
			return nil, fmt.Errorf("reaction %q: %w", rc.Name, err)
		}
	}
	return m, nil
}

func (rc ReactionConfig) param(name string) (kin.Parameter, error) {
	pc, ok := rc.Params[name]
	if !ok {
		// left unset on purpose: setup rejects it unless a distribution
		// or registry value fills it in
		return kin.Parameter{}, nil
	}
	p, err := pc.Build()
	if err != nil {
		return kin.Parameter{}, fmt.Errorf("reaction %q, param %q: %w", rc.Name, name, err)
	}
	return p, nil
}

func (rc ReactionConfig) params(names ...string) ([]kin.Parameter, error) {
	out := make([]kin.Parameter, 0, len(names))
	for _, name := range names {
		p, err := rc.param(name)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (rc ReactionConfig) shape(substrates, products int) error {
	if len(rc.Substrates) != substrates {
		return fmt.Errorf("reaction %q: mechanism %s takes %d substrates, got %d",
			rc.Name, rc.Mechanism, substrates, len(rc.Substrates))
	}
	if products >= 0 && len(rc.Products) != products {
		return fmt.Errorf("reaction %q: mechanism %s takes %d products, got %d",
			rc.Name, rc.Mechanism, products, len(rc.Products))
	}
	if rc.Enzyme == "" {
		return fmt.Errorf("reaction %q: missing enzyme", rc.Name)
	}
	return nil
}

func buildUniUni(rc ReactionConfig) (kin.Reaction, error) {
	if err := rc.shape(1, -1); err != nil {
		return nil, err
	}
	p, err := rc.params("kcat", "km")
	if err != nil {
		return nil, err
	}
	return reaction.NewUniUni(rc.Name, rc.Enzyme, rc.Substrates[0], rc.Products, p[0], p[1]), nil
}

func buildIndependentBi(rc ReactionConfig) (kin.Reaction, error) {
	if err := rc.shape(2, -1); err != nil {
		return nil, err
	}
	p, err := rc.params("kcat", "kma", "kmb")
	if err != nil {
		return nil, err
	}
	return reaction.NewIndependentBi(rc.Name, rc.Enzyme, rc.Substrates[0], rc.Substrates[1],
		rc.Products, p[0], p[1], p[2]), nil
}

func buildOrderedBi(rc ReactionConfig) (kin.Reaction, error) {
	if err := rc.shape(2, -1); err != nil {
		return nil, err
	}
	p, err := rc.params("kcat", "kma", "kmb", "kia")
	if err != nil {
		return nil, err
	}
	return reaction.NewOrderedBi(rc.Name, rc.Enzyme, rc.Substrates[0], rc.Substrates[1],
		rc.Products, p[0], p[1], p[2], p[3]), nil
}

func buildPingPongBi(rc ReactionConfig) (kin.Reaction, error) {
	if err := rc.shape(2, -1); err != nil {
		return nil, err
	}
	p, err := rc.params("kcat", "kma", "kmb")
	if err != nil {
		return nil, err
	}
	return reaction.NewPingPongBi(rc.Name, rc.Enzyme, rc.Substrates[0], rc.Substrates[1],
		rc.Products, p[0], p[1], p[2]), nil
}

func buildTerOrdered(rc ReactionConfig) (kin.Reaction, error) {
	if err := rc.shape(3, -1); err != nil {
		return nil, err
	}
	p, err := rc.params("kcat", "kma", "kmb", "kmc", "kia")
	if err != nil {
		return nil, err
	}
	return reaction.NewTerOrdered(rc.Name, rc.Enzyme,
		rc.Substrates[0], rc.Substrates[1], rc.Substrates[2],
		rc.Products, p[0], p[1], p[2], p[3], p[4]), nil
}

func buildOrderedBiBiRev(rc ReactionConfig) (kin.Reaction, error) {
	if err := rc.shape(2, 2); err != nil {
		return nil, err
	}
	p, err := rc.params("kcatf", "kcatr", "kmb", "kmp", "kia", "kib", "kip", "kiq")
	if err != nil {
		return nil, err
	}
	return reaction.NewOrderedBiBiRev(rc.Name, rc.Enzyme,
		rc.Substrates[0], rc.Substrates[1], rc.Products[0], rc.Products[1],
		p[0], p[1], p[2], p[3], p[4], p[5], p[6], p[7]), nil
}

func buildRandomBiBiRev(rc ReactionConfig) (kin.Reaction, error) {
	if err := rc.shape(2, 2); err != nil {
		return nil, err
	}
	p, err := rc.params("kcatf", "kcatr", "kmb", "kmp", "kia", "kib", "kip", "kiq")
	if err != nil {
		return nil, err
	}
	return reaction.NewRandomBiBiRev(rc.Name, rc.Enzyme,
		rc.Substrates[0], rc.Substrates[1], rc.Products[0], rc.Products[1],
		p[0], p[1], p[2], p[3], p[4], p[5], p[6], p[7]), nil
}

func buildPingPongBiBiRev(rc ReactionConfig) (kin.Reaction, error) {
	if err := rc.shape(2, 2); err != nil {
		return nil, err
	}
	p, err := rc.params("kcatf", "kcatr", "kma", "kmb", "kmp", "kmq", "kia", "kib", "kip", "kiq")
	if err != nil {
		return nil, err
	}
	return reaction.NewPingPongBiBiRev(rc.Name, rc.Enzyme,
		rc.Substrates[0], rc.Substrates[1], rc.Products[0], rc.Products[1],
		p[0], p[1], p[2], p[3], p[4], p[5], p[6], p[7], p[8], p[9]), nil
}

func buildUniUniCompetitive(rc ReactionConfig) (kin.Reaction, error) {
	if err := rc.shape(1, -1); err != nil {
		return nil, err
	}
	if rc.Inhibitor == "" {
		return nil, fmt.Errorf("reaction %q: mechanism %s needs an inhibitor", rc.Name, rc.Mechanism)
	}
	p, err := rc.params("kcat", "km", "ki")
	if err != nil {
		return nil, err
	}
	return reaction.NewUniUniCompetitive(rc.Name, rc.Enzyme, rc.Substrates[0], rc.Inhibitor,
		rc.Products, p[0], p[1], p[2]), nil
}

func buildUniUniMixed(rc ReactionConfig) (kin.Reaction, error) {
	if err := rc.shape(1, -1); err != nil {
		return nil, err
	}
	if rc.Inhibitor == "" {
		return nil, fmt.Errorf("reaction %q: mechanism %s needs an inhibitor", rc.Name, rc.Mechanism)
	}
	p, err := rc.params("kcat", "km", "ki", "alpha")
	if err != nil {
		return nil, err
	}
	return reaction.NewUniUniMixed(rc.Name, rc.Enzyme, rc.Substrates[0], rc.Inhibitor,
		rc.Products, p[0], p[1], p[2], p[3]), nil
}
