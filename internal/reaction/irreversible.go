package reaction

import (
	"github.com/enzymekit/kinsim/internal/kin"
	"github.com/enzymekit/kinsim/internal/rates"
)

// UniUni is the irreversible single-substrate saturation mechanism
// E + A -> E + products.
type UniUni struct {
	base
	Enzyme string
	A      string
	Kcat   string
	Km     string
}

func NewUniUni(name, enzyme, a string, products []string, kcat, km kin.Parameter) *UniUni {
	r := &UniUni{
		Enzyme: enzyme,
		A:      a,
		Kcat:   Key(name, "kcat"),
		Km:     Key(name, "km"),
	}
	r.base = newBase(name, []string{a}, products, []string{enzyme}, map[string]kin.Parameter{
		r.Kcat: kcat,
		r.Km:   km,
	})
	return r
}

func (r *UniUni) Contribution(y kin.State, idx kin.Index, p kin.Params) kin.State {
	v := rates.MichaelisMenten(p[r.Kcat], p[r.Km], y[idx[r.Enzyme]], y[idx[r.A]])
	return r.delta(y, idx, v)
}

func (r *UniUni) Validate() error {
	return r.validate(r.Kcat, r.Km)
}

// IndependentBi treats its two substrates as independently saturating sites.
type IndependentBi struct {
	base
	Enzyme string
	A, B   string
	Kcat   string
	KmA    string
	KmB    string
}

func NewIndependentBi(name, enzyme, a, b string, products []string, kcat, kma, kmb kin.Parameter) *IndependentBi {
	r := &IndependentBi{
		Enzyme: enzyme,
		A:      a,
		B:      b,
		Kcat:   Key(name, "kcat"),
		KmA:    Key(name, "kma"),
		KmB:    Key(name, "kmb"),
	}
	r.base = newBase(name, []string{a, b}, products, []string{enzyme}, map[string]kin.Parameter{
		r.Kcat: kcat,
		r.KmA:  kma,
		r.KmB:  kmb,
	})
	return r
}

func (r *IndependentBi) Contribution(y kin.State, idx kin.Index, p kin.Params) kin.State {
	v := rates.IndependentBi(p[r.Kcat], p[r.KmA], p[r.KmB], y[idx[r.Enzyme]], y[idx[r.A]], y[idx[r.B]])
	return r.delta(y, idx, v)
}

func (r *IndependentBi) Validate() error {
	return r.validate(r.Kcat, r.KmA, r.KmB)
}

// OrderedBi is the irreversible ordered two-substrate mechanism: A binds
// before B.
type OrderedBi struct {
	base
	Enzyme string
	A, B   string
	Kcat   string
	KmA    string
	KmB    string
	KiA    string
}

func NewOrderedBi(name, enzyme, a, b string, products []string, kcat, kma, kmb, kia kin.Parameter) *OrderedBi {
	r := &OrderedBi{
		Enzyme: enzyme,
		A:      a,
		B:      b,
		Kcat:   Key(name, "kcat"),
		KmA:    Key(name, "kma"),
		KmB:    Key(name, "kmb"),
		KiA:    Key(name, "kia"),
	}
	r.base = newBase(name, []string{a, b}, products, []string{enzyme}, map[string]kin.Parameter{
		r.Kcat: kcat,
		r.KmA:  kma,
		r.KmB:  kmb,
		r.KiA:  kia,
	})
	return r
}

func (r *OrderedBi) Contribution(y kin.State, idx kin.Index, p kin.Params) kin.State {
	v := rates.OrderedBi(p[r.Kcat], p[r.KmA], p[r.KmB], p[r.KiA], y[idx[r.Enzyme]], y[idx[r.A]], y[idx[r.B]])
	return r.delta(y, idx, v)
}

func (r *OrderedBi) Validate() error {
	return r.validate(r.Kcat, r.KmA, r.KmB, r.KiA)
}

// PingPongBi is the irreversible ping-pong two-substrate mechanism.
type PingPongBi struct {
	base
	Enzyme string
	A, B   string
	Kcat   string
	KmA    string
	KmB    string
}

func NewPingPongBi(name, enzyme, a, b string, products []string, kcat, kma, kmb kin.Parameter) *PingPongBi {
	r := &PingPongBi{
		Enzyme: enzyme,
		A:      a,
		B:      b,
		Kcat:   Key(name, "kcat"),
		KmA:    Key(name, "kma"),
		KmB:    Key(name, "kmb"),
	}
	r.base = newBase(name, []string{a, b}, products, []string{enzyme}, map[string]kin.Parameter{
		r.Kcat: kcat,
		r.KmA:  kma,
		r.KmB:  kmb,
	})
	return r
}

func (r *PingPongBi) Contribution(y kin.State, idx kin.Index, p kin.Params) kin.State {
	v := rates.PingPongBi(p[r.Kcat], p[r.KmA], p[r.KmB], y[idx[r.Enzyme]], y[idx[r.A]], y[idx[r.B]])
	return r.delta(y, idx, v)
}

func (r *PingPongBi) Validate() error {
	return r.validate(r.Kcat, r.KmA, r.KmB)
}

// TerOrdered is the irreversible ordered ternary three-substrate mechanism.
type TerOrdered struct {
	base
	Enzyme  string
	A, B, C string
	Kcat    string
	KmA     string
	KmB     string
	KmC     string
	KiA     string
}

func NewTerOrdered(name, enzyme, a, b, c string, products []string, kcat, kma, kmb, kmc, kia kin.Parameter) *TerOrdered {
	r := &TerOrdered{
		Enzyme: enzyme,
		A:      a,
		B:      b,
		C:      c,
		Kcat:   Key(name, "kcat"),
		KmA:    Key(name, "kma"),
		KmB:    Key(name, "kmb"),
		KmC:    Key(name, "kmc"),
		KiA:    Key(name, "kia"),
	}
	r.base = newBase(name, []string{a, b, c}, products, []string{enzyme}, map[string]kin.Parameter{
		r.Kcat: kcat,
		r.KmA:  kma,
		r.KmB:  kmb,
		r.KmC:  kmc,
		r.KiA:  kia,
	})
	return r
}

func (r *TerOrdered) Contribution(y kin.State, idx kin.Index, p kin.Params) kin.State {
	v := rates.TerOrdered(p[r.Kcat], p[r.KmA], p[r.KmB], p[r.KmC], p[r.KiA],
		y[idx[r.Enzyme]], y[idx[r.A]], y[idx[r.B]], y[idx[r.C]])
	return r.delta(y, idx, v)
}

func (r *TerOrdered) Validate() error {
	return r.validate(r.Kcat, r.KmA, r.KmB, r.KmC, r.KiA)
}
