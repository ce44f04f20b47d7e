package reaction

import (
	"github.com/enzymekit/kinsim/internal/kin"
	"github.com/enzymekit/kinsim/internal/rates"
)

// UniUniCompetitive is a single-substrate saturation mechanism with a
// competitive inhibitor scaling the apparent Km.
type UniUniCompetitive struct {
	base
	Enzyme    string
	A         string
	Inhibitor string
	Kcat      string
	Km        string
	Ki        string
}

func NewUniUniCompetitive(name, enzyme, a, inhibitor string, products []string, kcat, km, ki kin.Parameter) *UniUniCompetitive {
	r := &UniUniCompetitive{
		Enzyme:    enzyme,
		A:         a,
		Inhibitor: inhibitor,
		Kcat:      Key(name, "kcat"),
		Km:        Key(name, "km"),
		Ki:        Key(name, "ki"),
	}
	r.base = newBase(name, []string{a}, products, []string{enzyme, inhibitor}, map[string]kin.Parameter{
		r.Kcat: kcat,
		r.Km:   km,
		r.Ki:   ki,
	})
	return r
}

func (r *UniUniCompetitive) Contribution(y kin.State, idx kin.Index, p kin.Params) kin.State {
	kmApp := rates.CompetitiveKmApp(p[r.Km], p[r.Ki], y[idx[r.Inhibitor]])
	v := rates.MichaelisMenten(p[r.Kcat], kmApp, y[idx[r.Enzyme]], y[idx[r.A]])
	return r.delta(y, idx, v)
}

func (r *UniUniCompetitive) Validate() error {
	return r.validate(r.Kcat, r.Km, r.Ki)
}

// UniUniMixed is a single-substrate saturation mechanism under mixed-model
// inhibition: both apparent kcat and apparent Km are scaled.
type UniUniMixed struct {
	base
	Enzyme    string
	A         string
	Inhibitor string
	Kcat      string
	Km        string
	Ki        string
	Alpha     string
}

func NewUniUniMixed(name, enzyme, a, inhibitor string, products []string, kcat, km, ki, alpha kin.Parameter) *UniUniMixed {
	r := &UniUniMixed{
		Enzyme:    enzyme,
		A:         a,
		Inhibitor: inhibitor,
		Kcat:      Key(name, "kcat"),
		Km:        Key(name, "km"),
		Ki:        Key(name, "ki"),
		Alpha:     Key(name, "alpha"),
	}
	r.base = newBase(name, []string{a}, products, []string{enzyme, inhibitor}, map[string]kin.Parameter{
		r.Kcat:  kcat,
		r.Km:    km,
		r.Ki:    ki,
		r.Alpha: alpha,
	})
	return r
}

func (r *UniUniMixed) Contribution(y kin.State, idx kin.Index, p kin.Params) kin.State {
	kcatApp, kmApp := rates.MixedApp(p[r.Kcat], p[r.Km], p[r.Ki], p[r.Alpha], y[idx[r.Inhibitor]])
	v := rates.MichaelisMenten(kcatApp, kmApp, y[idx[r.Enzyme]], y[idx[r.A]])
	return r.delta(y, idx, v)
}

func (r *UniUniMixed) Validate() error {
	return r.validate(r.Kcat, r.Km, r.Ki, r.Alpha)
}
