// Package metrics derives process-level quantities from a completed
// trajectory. Everything here is a deterministic scalar reduction over the
// trajectory plus static molecular-weight and volume metadata; nothing
// mutates the model.
package metrics

import (
	"fmt"
	"sort"

	"github.com/enzymekit/kinsim/internal/kin"
)

// Meta is the static metadata the reductions need. Concentrations are mM,
// molecular weights g/mol, volume litres. HoursPerUnit converts model time
// into hours (1 when the model already runs in hours).
type Meta struct {
	MolWeights   map[string]float64
	VolumeL      float64
	HoursPerUnit float64
}

func (m Meta) hoursPerUnit() float64 {
	if m.HoursPerUnit <= 0 {
		return 1
	}
	return m.HoursPerUnit
}

// Grams converts a concentration in mM to grams for the given species.
func (m Meta) Grams(name string, concMM float64) (float64, error) {
	mw, ok := m.MolWeights[name]
	if !ok {
		return 0, fmt.Errorf("metrics: no molecular weight for %q", name)
	}
	moles := concMM / 1000.0 * m.VolumeL
	return moles * mw, nil
}

// Yield is the classic conversion percentage: product at final time over
// substrate at initial time.
func Yield(traj *kin.Trajectory, product, substrate string) (float64, error) {
	p, err := traj.Final(product)
	if err != nil {
		return 0, err
	}
	s, err := traj.Initial(substrate)
	if err != nil {
		return 0, err
	}
	if s == 0 {
		return 0, fmt.Errorf("metrics: zero initial substrate %q", substrate)
	}
	return p / s * 100, nil
}

// SpaceTimeYield is grams of product per litre per day over the simulated
// window.
func SpaceTimeYield(traj *kin.Trajectory, product string, meta Meta) (float64, error) {
	conc, err := traj.Final(product)
	if err != nil {
		return 0, err
	}
	grams, err := meta.Grams(product, conc)
	if err != nil {
		return 0, err
	}

	times := traj.Times()
	if len(times) < 2 {
		return 0, fmt.Errorf("metrics: trajectory too short")
	}
	days := (times[len(times)-1] - times[0]) * meta.hoursPerUnit() / 24.0
	if days <= 0 {
		return 0, fmt.Errorf("metrics: non-positive duration")
	}
	return grams / meta.VolumeL / days, nil
}

// EFactor is waste mass over product mass at the final time. Every species
// with a declared molecular weight other than the product counts as waste.
func EFactor(traj *kin.Trajectory, product string, meta Meta) (float64, error) {
	productConc, err := traj.Final(product)
	if err != nil {
		return 0, err
	}
	productG, err := meta.Grams(product, productConc)
	if err != nil {
		return 0, err
	}
	if productG == 0 {
		return 0, fmt.Errorf("metrics: zero product mass")
	}

	waste := 0.0
	for _, name := range traj.SpeciesNames() {
		if name == product {
			continue
		}
		if _, ok := meta.MolWeights[name]; !ok {
			continue
		}
		conc, err := traj.Final(name)
		if err != nil {
			return 0, err
		}
		g, err := meta.Grams(name, conc)
		if err != nil {
			return 0, err
		}
		waste += g
	}
	return waste / productG, nil
}

// Productivity is grams of product per gram of biocatalyst per hour.
func Productivity(traj *kin.Trajectory, product, enzyme string, meta Meta) (float64, error) {
	productConc, err := traj.Final(product)
	if err != nil {
		return 0, err
	}
	productG, err := meta.Grams(product, productConc)
	if err != nil {
		return 0, err
	}

	enzConc, err := traj.Initial(enzyme)
	if err != nil {
		return 0, err
	}
	enzG, err := meta.Grams(enzyme, enzConc)
	if err != nil {
		return 0, err
	}
	if enzG == 0 {
		return 0, fmt.Errorf("metrics: zero enzyme mass")
	}

	times := traj.Times()
	if len(times) < 2 {
		return 0, fmt.Errorf("metrics: trajectory too short")
	}
	hours := (times[len(times)-1] - times[0]) * meta.hoursPerUnit()
	return productG / enzG / hours, nil
}

// Spread reduces an ensemble of sampled trajectories to a single uncertainty
// statistic: the high-minus-low quantile gap of one species at the final
// time.
func Spread(trajs []*kin.Trajectory, name string, qLow, qHigh float64) (float64, error) {
	if len(trajs) == 0 {
		return 0, fmt.Errorf("metrics: empty ensemble")
	}

	finals := make([]float64, 0, len(trajs))
	for _, traj := range trajs {
		v, err := traj.Final(name)
		if err != nil {
			return 0, err
		}
		finals = append(finals, v)
	}
	sort.Float64s(finals)

	return Quantile(finals, qHigh) - Quantile(finals, qLow), nil
}

// Quantile interpolates the q-th quantile of sorted values.
func Quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(pos)
	frac := pos - float64(lo)
	if lo+1 >= len(sorted) {
		return sorted[lo]
	}
	return sorted[lo]*(1-frac) + sorted[lo+1]*frac
}
