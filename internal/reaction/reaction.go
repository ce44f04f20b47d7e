// Package reaction provides the concrete mechanism families that plug into a
// model. Each mechanism binds the generic argument names of a rate law to
// concrete model species and parameter names, and places the computed rate
// into the derivative vector at its substrate and product positions.
package reaction

import (
	"fmt"

	"github.com/enzymekit/kinsim/internal/kin"
)

// Key builds the default global name for a reaction-scoped parameter.
func Key(reaction, arg string) string {
	return reaction + "." + arg
}

// base carries the bookkeeping shared by every mechanism: identity, the
// consumed/produced species lists, the full referenced-species list, and the
// declared parameter registry entries.
type base struct {
	name       string
	substrates []string
	products   []string
	species    []string
	params     map[string]kin.Parameter
}

func newBase(name string, substrates, products, extraSpecies []string, params map[string]kin.Parameter) base {
	species := make([]string, 0, len(substrates)+len(products)+len(extraSpecies))
	species = append(species, substrates...)
	species = append(species, products...)
	species = append(species, extraSpecies...)
	return base{
		name:       name,
		substrates: substrates,
		products:   products,
		species:    species,
		params:     params,
	}
}

func (b *base) Name() string                         { return b.name }
func (b *base) Substrates() []string                 { return b.substrates }
func (b *base) Products() []string                   { return b.products }
func (b *base) SpeciesNames() []string               { return b.species }
func (b *base) Parameters() map[string]kin.Parameter { return b.params }

// delta builds the contribution vector: -rate at every substrate index,
// +rate at every product index, zero elsewhere.
func (b *base) delta(y kin.State, idx kin.Index, rate float64) kin.State {
	out := make(kin.State, len(y))
	for _, s := range b.substrates {
		out[idx[s]] -= rate
	}
	for _, p := range b.products {
		out[idx[p]] += rate
	}
	return out
}

func (b *base) validate(args ...string) error {
	if b.name == "" {
		return fmt.Errorf("%w: reaction has no name", kin.ErrBinding)
	}
	if len(b.substrates) == 0 && len(b.products) == 0 {
		return fmt.Errorf("%w: %s declares no substrates or products", kin.ErrBinding, b.name)
	}
	for _, s := range b.species {
		if s == "" {
			return fmt.Errorf("%w: %s has an empty species binding", kin.ErrBinding, b.name)
		}
	}
	for _, arg := range args {
		if arg == "" {
			return fmt.Errorf("%w: %s has an empty parameter binding", kin.ErrBinding, b.name)
		}
		if _, ok := b.params[arg]; !ok {
			return fmt.Errorf("%w: %s binds undeclared parameter %q", kin.ErrBinding, b.name, arg)
		}
	}
	return nil
}
